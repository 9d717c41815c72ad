package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/arifhossain/multimart-backend/internal/modules/policy"
)

// User represents an account in the system.
type User struct {
	ID           uuid.UUID   `json:"id"`
	Email        string      `json:"email"`
	Username     string      `json:"username"`
	PasswordHash string      `json:"-"`
	FirstName    string      `json:"first_name"`
	LastName     string      `json:"last_name"`
	Role         policy.Role `json:"role"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// Caller converts the account into the principal used by the visibility
// policy.
func (u *User) Caller() policy.Caller {
	return policy.Caller{UserID: u.ID, Role: u.Role, Authenticated: true}
}

// Profile holds the contact details attached 1:1 to every account.
type Profile struct {
	UserID      uuid.UUID `json:"user_id"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	Address     string    `json:"address"`
	PhoneNumber string    `json:"phone_number"`
}

// RegisterRequest is the payload for creating a new account.
type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

// Registration bundles everything provisioned for a new account: the
// account itself, its empty profile, and its cart.
type Registration struct {
	User    *User     `json:"user"`
	Profile *Profile  `json:"profile"`
	CartID  uuid.UUID `json:"cart_id"`
}

// UpdateUserRequest is the admin payload for editing an account.
type UpdateUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// UpdateProfileRequest is the payload for editing the caller's profile.
type UpdateProfileRequest struct {
	City        string `json:"city"`
	State       string `json:"state"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
}

// ChangePasswordRequest is the payload for changing the caller's password.
type ChangePasswordRequest struct {
	OldPassword  string `json:"old_password"`
	NewPassword  string `json:"new_password"`
	NewPassword2 string `json:"new_password2"`
}

// Account is the authenticated-user view: the account plus its profile.
type Account struct {
	*User
	Profile *Profile `json:"profile"`
}
