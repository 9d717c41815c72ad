package user

import (
	"context"

	"github.com/google/uuid"

	"github.com/arifhossain/multimart-backend/internal/modules/policy"
)

// Repository defines the interface for account and profile storage.
type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	ListUsers(ctx context.Context, role policy.Role) ([]*User, error)
	UpdateUser(ctx context.Context, u *User) error
	UpdateRole(ctx context.Context, id uuid.UUID, role policy.Role) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	DeleteUser(ctx context.Context, id uuid.UUID) error

	CreateProfile(ctx context.Context, p *Profile) error
	GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error)
	UpdateProfile(ctx context.Context, p *Profile) error
}
