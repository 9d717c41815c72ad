package user

import (
	"context"

	"github.com/google/uuid"

	"github.com/arifhossain/multimart-backend/internal/modules/policy"
)

// Service defines the interface for account-related business logic.
type Service interface {
	// Register creates an account and synchronously provisions its profile
	// and cart, returning all three together.
	Register(ctx context.Context, req RegisterRequest) (*Registration, error)

	// ListUsers returns all accounts, optionally filtered by role. Admin only.
	ListUsers(ctx context.Context, caller policy.Caller, role string) ([]*User, error)

	// GetUser retrieves an account by ID. Admin only.
	GetUser(ctx context.Context, caller policy.Caller, id string) (*User, error)

	// UpdateUser edits an account. Admin only.
	UpdateUser(ctx context.Context, caller policy.Caller, id string, req UpdateUserRequest) (*User, error)

	// DeleteUser removes an account. Admin only.
	DeleteUser(ctx context.Context, caller policy.Caller, id string) error

	// Me returns the caller's account with its profile.
	Me(ctx context.Context, caller policy.Caller) (*Account, error)

	// UpdateProfile edits the caller's profile.
	UpdateProfile(ctx context.Context, caller policy.Caller, req UpdateProfileRequest) (*Profile, error)

	// ChangePassword verifies the old password and sets a new one.
	ChangePassword(ctx context.Context, caller policy.Caller, req ChangePasswordRequest) error
}

// CartProvisioner creates the cart that accompanies every new account.
// Implemented by the cart module and wired in main.
type CartProvisioner interface {
	ProvisionCart(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
}
