package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/arifhossain/multimart-backend/internal/apperr"
	"github.com/arifhossain/multimart-backend/internal/modules/policy"
)

type service struct {
	repo  Repository
	carts CartProvisioner
}

// NewService creates a new user service.
func NewService(repo Repository, carts CartProvisioner) Service {
	return &service{repo: repo, carts: carts}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*Registration, error) {
	if err := validateRegistration(req); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, apperr.Validation("email", "a user with this email already exists")
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:           uuid.New(),
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         policy.RoleCustomer,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to persist user: %w", err)
	}

	// Explicit provisioning: the profile and cart are created here, in the
	// same call, and returned together with the account.
	p := &Profile{UserID: u.ID}
	if err := s.repo.CreateProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to provision profile: %w", err)
	}
	cartID, err := s.carts.ProvisionCart(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to provision cart: %w", err)
	}

	return &Registration{User: u, Profile: p, CartID: cartID}, nil
}

func validateRegistration(req RegisterRequest) error {
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return apperr.Validation("email", "a valid email is required")
	}
	if req.Username == "" {
		return apperr.Validation("username", "username is required")
	}
	if req.FirstName == "" {
		return apperr.Validation("first_name", "first name is required")
	}
	if req.LastName == "" {
		return apperr.Validation("last_name", "last name is required")
	}
	if len(req.Password) < 8 {
		return apperr.Validation("password", "password must be at least 8 characters")
	}
	if req.Password != req.Password2 {
		return apperr.Validation("password", "password fields didn't match")
	}
	return nil
}

func (s *service) ListUsers(ctx context.Context, caller policy.Caller, role string) ([]*User, error) {
	if err := policy.RequireAdmin(caller); err != nil {
		return nil, err
	}
	return s.repo.ListUsers(ctx, policy.Role(strings.ToUpper(role)))
}

func (s *service) GetUser(ctx context.Context, caller policy.Caller, id string) (*User, error) {
	if err := policy.RequireAdmin(caller); err != nil {
		return nil, err
	}
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.ErrNotFound
	}
	return s.repo.GetUserByID(ctx, uid)
}

func (s *service) UpdateUser(ctx context.Context, caller policy.Caller, id string, req UpdateUserRequest) (*User, error) {
	u, err := s.GetUser(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if req.FirstName != "" {
		u.FirstName = req.FirstName
	}
	if req.LastName != "" {
		u.LastName = req.LastName
	}
	if req.Username != "" {
		u.Username = req.Username
	}
	if req.Email != "" {
		u.Email = req.Email
	}
	if req.Role != "" {
		role := policy.Role(strings.ToUpper(req.Role))
		switch role {
		case policy.RoleCustomer, policy.RoleVendor, policy.RoleAdministrator:
			u.Role = role
		default:
			return nil, apperr.Validation("role", fmt.Sprintf("unknown role %q", req.Role))
		}
	}
	if err := s.repo.UpdateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) DeleteUser(ctx context.Context, caller policy.Caller, id string) error {
	u, err := s.GetUser(ctx, caller, id)
	if err != nil {
		return err
	}
	return s.repo.DeleteUser(ctx, u.ID)
}

func (s *service) Me(ctx context.Context, caller policy.Caller) (*Account, error) {
	if err := policy.RequireAuthenticated(caller); err != nil {
		return nil, err
	}
	u, err := s.repo.GetUserByID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	p, err := s.repo.GetProfile(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	return &Account{User: u, Profile: p}, nil
}

func (s *service) UpdateProfile(ctx context.Context, caller policy.Caller, req UpdateProfileRequest) (*Profile, error) {
	if err := policy.RequireAuthenticated(caller); err != nil {
		return nil, err
	}
	p, err := s.repo.GetProfile(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	p.City = req.City
	p.State = req.State
	p.Address = req.Address
	p.PhoneNumber = req.PhoneNumber
	if err := s.repo.UpdateProfile(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) ChangePassword(ctx context.Context, caller policy.Caller, req ChangePasswordRequest) error {
	if err := policy.RequireAuthenticated(caller); err != nil {
		return err
	}
	if len(req.NewPassword) < 8 {
		return apperr.Validation("new_password", "password must be at least 8 characters")
	}
	if req.NewPassword != req.NewPassword2 {
		return apperr.Validation("new_password", "password fields didn't match")
	}
	u, err := s.repo.GetUserByID(ctx, caller.UserID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.OldPassword)); err != nil {
		return apperr.Validation("old_password", "old password is incorrect")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, u.ID, string(hash))
}
