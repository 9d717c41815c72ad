package user

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/arifhossain/multimart-backend/internal/apperr"
	"github.com/arifhossain/multimart-backend/internal/modules/policy"
)

type memRepo struct {
	users    map[uuid.UUID]*User
	profiles map[uuid.UUID]*Profile
}

func newMemRepo() *memRepo {
	return &memRepo{users: map[uuid.UUID]*User{}, profiles: map[uuid.UUID]*Profile{}}
}

func (m *memRepo) CreateUser(_ context.Context, u *User) error {
	m.users[u.ID] = u
	return nil
}

func (m *memRepo) GetUserByID(_ context.Context, id uuid.UUID) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return u, nil
}

func (m *memRepo) GetUserByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (m *memRepo) ListUsers(_ context.Context, role policy.Role) ([]*User, error) {
	out := make([]*User, 0, len(m.users))
	for _, u := range m.users {
		if role != "" && u.Role != role {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (m *memRepo) UpdateUser(_ context.Context, u *User) error {
	m.users[u.ID] = u
	return nil
}

func (m *memRepo) UpdateRole(_ context.Context, id uuid.UUID, role policy.Role) error {
	u, ok := m.users[id]
	if !ok {
		return apperr.ErrNotFound
	}
	u.Role = role
	return nil
}

func (m *memRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	u, ok := m.users[id]
	if !ok {
		return apperr.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (m *memRepo) DeleteUser(_ context.Context, id uuid.UUID) error {
	delete(m.users, id)
	return nil
}

func (m *memRepo) CreateProfile(_ context.Context, p *Profile) error {
	m.profiles[p.UserID] = p
	return nil
}

func (m *memRepo) GetProfile(_ context.Context, userID uuid.UUID) (*Profile, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return p, nil
}

func (m *memRepo) UpdateProfile(_ context.Context, p *Profile) error {
	m.profiles[p.UserID] = p
	return nil
}

type memCarts struct {
	provisioned map[uuid.UUID]uuid.UUID
}

func newMemCarts() *memCarts {
	return &memCarts{provisioned: map[uuid.UUID]uuid.UUID{}}
}

func (m *memCarts) ProvisionCart(_ context.Context, userID uuid.UUID) (uuid.UUID, error) {
	id := uuid.New()
	m.provisioned[userID] = id
	return id, nil
}

func registerRequest() RegisterRequest {
	return RegisterRequest{
		FirstName: "Amina",
		LastName:  "Rahman",
		Username:  "amina",
		Email:     "amina@example.com",
		Password:  "correct horse",
		Password2: "correct horse",
	}
}

func adminCaller() policy.Caller {
	return policy.Caller{UserID: uuid.New(), Role: policy.RoleAdministrator, Authenticated: true}
}

func TestRegisterProvisionsProfileAndCart(t *testing.T) {
	repo := newMemRepo()
	carts := newMemCarts()
	svc := NewService(repo, carts)

	reg, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	assert.Equal(t, policy.RoleCustomer, reg.User.Role, "new accounts start as customers")
	assert.NotNil(t, reg.Profile)
	assert.Equal(t, reg.User.ID, reg.Profile.UserID)
	assert.Equal(t, carts.provisioned[reg.User.ID], reg.CartID)

	// The stored password is a bcrypt hash, never the plaintext.
	stored := repo.users[reg.User.ID]
	assert.NotEqual(t, "correct horse", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct horse")))
}

func TestRegisterValidation(t *testing.T) {
	svc := NewService(newMemRepo(), newMemCarts())

	tests := []struct {
		name      string
		mutate    func(*RegisterRequest)
		wantField string
	}{
		{"missing email", func(r *RegisterRequest) { r.Email = "" }, "email"},
		{"malformed email", func(r *RegisterRequest) { r.Email = "not-an-email" }, "email"},
		{"missing username", func(r *RegisterRequest) { r.Username = "" }, "username"},
		{"short password", func(r *RegisterRequest) { r.Password, r.Password2 = "short", "short" }, "password"},
		{"password mismatch", func(r *RegisterRequest) { r.Password2 = "different horse" }, "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := registerRequest()
			tt.mutate(&req)
			_, err := svc.Register(context.Background(), req)
			var vErr *apperr.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewService(newMemRepo(), newMemCarts())

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	req := registerRequest()
	req.Username = "amina2"
	_, err = svc.Register(context.Background(), req)
	var vErr *apperr.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "email", vErr.Field)
}

func TestAdminEndpointsGated(t *testing.T) {
	svc := NewService(newMemRepo(), newMemCarts())

	_, err := svc.ListUsers(context.Background(), policy.Anonymous(), "")
	assert.True(t, errors.Is(err, apperr.ErrUnauthenticated))

	customer := policy.Caller{UserID: uuid.New(), Role: policy.RoleCustomer, Authenticated: true}
	_, err = svc.ListUsers(context.Background(), customer, "")
	assert.True(t, errors.Is(err, apperr.ErrPermissionDenied))

	_, err = svc.GetUser(context.Background(), customer, uuid.New().String())
	assert.True(t, errors.Is(err, apperr.ErrPermissionDenied))
}

func TestUpdateUserRole(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, newMemCarts())

	reg, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	u, err := svc.UpdateUser(context.Background(), adminCaller(), reg.User.ID.String(), UpdateUserRequest{Role: "vendor"})
	require.NoError(t, err)
	assert.Equal(t, policy.RoleVendor, u.Role)

	_, err = svc.UpdateUser(context.Background(), adminCaller(), reg.User.ID.String(), UpdateUserRequest{Role: "wizard"})
	var vErr *apperr.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "role", vErr.Field)
}

func TestMeReturnsAccountWithProfile(t *testing.T) {
	svc := NewService(newMemRepo(), newMemCarts())

	reg, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	account, err := svc.Me(context.Background(), reg.User.Caller())
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, account.ID)
	assert.NotNil(t, account.Profile)

	_, err = svc.Me(context.Background(), policy.Anonymous())
	assert.True(t, errors.Is(err, apperr.ErrUnauthenticated))
}

func TestChangePassword(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, newMemCarts())

	reg, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	caller := reg.User.Caller()

	err = svc.ChangePassword(context.Background(), caller, ChangePasswordRequest{
		OldPassword:  "wrong horse",
		NewPassword:  "fresh password",
		NewPassword2: "fresh password",
	})
	var vErr *apperr.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "old_password", vErr.Field)

	err = svc.ChangePassword(context.Background(), caller, ChangePasswordRequest{
		OldPassword:  "correct horse",
		NewPassword:  "fresh password",
		NewPassword2: "fresh password",
	})
	require.NoError(t, err)

	stored := repo.users[reg.User.ID]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("fresh password")))
}
