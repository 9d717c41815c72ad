package policy

import (
	"github.com/google/uuid"

	"github.com/arifhossain/multimart-backend/internal/apperr"
)

// Role is the role attribute carried by an authenticated caller.
type Role string

const (
	RoleCustomer      Role = "CUSTOMER"
	RoleVendor        Role = "VENDOR"
	RoleAdministrator Role = "ADMINISTRATOR"
)

// Caller is the principal making a request. The zero value is an
// anonymous caller.
type Caller struct {
	UserID        uuid.UUID
	Role          Role
	Authenticated bool
}

// Anonymous returns the unauthenticated caller.
func Anonymous() Caller { return Caller{} }

func (c Caller) IsAdmin() bool {
	return c.Authenticated && c.Role == RoleAdministrator
}

// Owns reports whether the caller is the owning user of a record.
func (c Caller) Owns(ownerID uuid.UUID) bool {
	return c.Authenticated && c.UserID == ownerID
}

// Kind identifies an entity type in the visibility table.
type Kind string

const (
	KindProduct Kind = "PRODUCT"
	KindVendor  Kind = "VENDOR"
	KindReview  Kind = "REVIEW"
)

// publicStatuses is the read-visibility decision table: an entity whose
// status appears here is readable by anyone, including anonymous callers.
// Every other status is restricted to the administrator or the owning
// user. Reviews carry an active flag rather than a status enum; it maps
// to ACTIVE/INACTIVE here so one table covers all three entity kinds.
var publicStatuses = map[Kind]map[string]bool{
	KindProduct: {"ACTIVE": true, "DISCONTINUED": true},
	KindVendor:  {"ACTIVE": true},
	KindReview:  {"ACTIVE": true},
}

// Readable reports whether the status is publicly visible for the kind.
func Readable(kind Kind, status string) bool {
	return publicStatuses[kind][status]
}

// CanRead decides read access to a single entity. Public statuses are open
// to everyone; restricted statuses fall through to the ownership rule.
func CanRead(c Caller, kind Kind, status string, ownerID uuid.UUID) error {
	if publicStatuses[kind][status] {
		return nil
	}
	return restricted(c, ownerID)
}

// CanWrite decides write access: only the owning user or an administrator.
func CanWrite(c Caller, ownerID uuid.UUID) error {
	return restricted(c, ownerID)
}

// restricted applies the shared tie-break: administrator wins regardless
// of ownership, ownership wins over generic authentication, authenticated
// non-owners are told the record is forbidden, and anonymous callers are
// told it does not exist at all.
func restricted(c Caller, ownerID uuid.UUID) error {
	switch {
	case c.IsAdmin():
		return nil
	case c.Owns(ownerID):
		return nil
	case c.Authenticated:
		return apperr.ErrPermissionDenied
	default:
		return apperr.ErrNotFound
	}
}

// RequireAuthenticated gates endpoints that need a logged-in caller.
func RequireAuthenticated(c Caller) error {
	if !c.Authenticated {
		return apperr.ErrUnauthenticated
	}
	return nil
}

// RequireAdmin gates administrator-only collection endpoints. These are
// not tied to a specific record, so anonymous callers get a plain 401
// rather than the anti-enumeration not-found.
func RequireAdmin(c Caller) error {
	if !c.Authenticated {
		return apperr.ErrUnauthenticated
	}
	if c.Role != RoleAdministrator {
		return apperr.ErrPermissionDenied
	}
	return nil
}
