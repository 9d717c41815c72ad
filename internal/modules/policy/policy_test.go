package policy

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/arifhossain/multimart-backend/internal/apperr"
)

func TestCanReadDecisionTable(t *testing.T) {
	ownerID := uuid.New()
	owner := Caller{UserID: ownerID, Role: RoleVendor, Authenticated: true}
	other := Caller{UserID: uuid.New(), Role: RoleCustomer, Authenticated: true}
	admin := Caller{UserID: uuid.New(), Role: RoleAdministrator, Authenticated: true}

	tests := []struct {
		name   string
		caller Caller
		kind   Kind
		status string
		want   error
	}{
		{"anonymous active product", Anonymous(), KindProduct, "ACTIVE", nil},
		{"anonymous discontinued product", Anonymous(), KindProduct, "DISCONTINUED", nil},
		{"anonymous draft product", Anonymous(), KindProduct, "DRAFT", apperr.ErrNotFound},
		{"authenticated non-owner draft", other, KindProduct, "DRAFT", apperr.ErrPermissionDenied},
		{"owner draft", owner, KindProduct, "DRAFT", nil},
		{"admin draft", admin, KindProduct, "DRAFT", nil},
		{"anonymous inactive product", Anonymous(), KindProduct, "INACTIVE", apperr.ErrNotFound},
		{"anonymous active vendor", Anonymous(), KindVendor, "ACTIVE", nil},
		{"anonymous pending vendor", Anonymous(), KindVendor, "PENDING", apperr.ErrNotFound},
		{"non-owner suspended vendor", other, KindVendor, "SUSPENDED", apperr.ErrPermissionDenied},
		{"anonymous active review", Anonymous(), KindReview, "ACTIVE", nil},
		{"anonymous inactive review", Anonymous(), KindReview, "INACTIVE", apperr.ErrNotFound},
		{"owner inactive review", owner, KindReview, "INACTIVE", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanRead(tt.caller, tt.kind, tt.status, ownerID)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanWrite(t *testing.T) {
	ownerID := uuid.New()

	assert.Equal(t, apperr.ErrNotFound, CanWrite(Anonymous(), ownerID),
		"anonymous writers are told the record does not exist")

	other := Caller{UserID: uuid.New(), Authenticated: true}
	assert.Equal(t, apperr.ErrPermissionDenied, CanWrite(other, ownerID))

	owner := Caller{UserID: ownerID, Authenticated: true}
	assert.NoError(t, CanWrite(owner, ownerID))

	admin := Caller{UserID: uuid.New(), Role: RoleAdministrator, Authenticated: true}
	assert.NoError(t, CanWrite(admin, ownerID))
}

func TestAdminWinsOverOwnership(t *testing.T) {
	// An administrator who also happens to be the owner is allowed via the
	// admin branch, ownership notwithstanding.
	id := uuid.New()
	adminOwner := Caller{UserID: id, Role: RoleAdministrator, Authenticated: true}
	assert.NoError(t, CanRead(adminOwner, KindProduct, "DRAFT", id))
}

func TestRequireAuthenticated(t *testing.T) {
	assert.Equal(t, apperr.ErrUnauthenticated, RequireAuthenticated(Anonymous()))
	assert.NoError(t, RequireAuthenticated(Caller{UserID: uuid.New(), Authenticated: true}))
}

func TestRequireAdmin(t *testing.T) {
	assert.Equal(t, apperr.ErrUnauthenticated, RequireAdmin(Anonymous()))

	customer := Caller{UserID: uuid.New(), Role: RoleCustomer, Authenticated: true}
	assert.Equal(t, apperr.ErrPermissionDenied, RequireAdmin(customer))

	admin := Caller{UserID: uuid.New(), Role: RoleAdministrator, Authenticated: true}
	assert.NoError(t, RequireAdmin(admin))
}

func TestReadable(t *testing.T) {
	assert.True(t, Readable(KindProduct, "ACTIVE"))
	assert.True(t, Readable(KindProduct, "DISCONTINUED"))
	assert.False(t, Readable(KindProduct, "DRAFT"))
	assert.False(t, Readable(KindVendor, "REJECTED"))
	assert.False(t, Readable(KindReview, "INACTIVE"))
}
