package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors shared by every module.
var (
	// ErrNotFound covers both genuinely absent records and records hidden
	// from anonymous callers, so existence cannot be probed.
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied is returned to authenticated callers who can see
	// that a record exists but may not act on it.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrUnauthenticated is returned when an endpoint requires a logged-in
	// caller and none is present.
	ErrUnauthenticated = errors.New("authentication required")
)

// ValidationError carries field-level detail so the caller can resubmit.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validation builds a ValidationError for a single field.
func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// StateConflictError signals an invalid lifecycle transition.
type StateConflictError struct {
	Message string `json:"message"`
}

func (e *StateConflictError) Error() string { return e.Message }

// StateConflict builds a StateConflictError.
func StateConflict(format string, args ...interface{}) error {
	return &StateConflictError{Message: fmt.Sprintf(format, args...)}
}

// StockExceededError is returned when a cart mutation would push a line
// quantity past the product's current stock. Quantity is the line's
// quantity as it stands, so the client can reconcile its state.
type StockExceededError struct {
	Quantity int `json:"quantity"`
}

func (e *StockExceededError) Error() string {
	return "quantity exceeds available stock"
}

// MinimumQuantityError is returned when decrementing a line already at the
// minimum quantity of 1.
type MinimumQuantityError struct {
	Quantity int `json:"quantity"`
}

func (e *MinimumQuantityError) Error() string {
	return "cannot decrement quantity, minimum quantity is 1"
}

// Payload returns the JSON body for a failed request. Typed errors keep
// their field-level detail; quantity-carrying errors echo the current
// quantity so the client can reconcile its state.
func Payload(err error) interface{} {
	var (
		validation *ValidationError
		conflict   *StateConflictError
		stock      *StockExceededError
		minimum    *MinimumQuantityError
	)
	switch {
	case errors.As(err, &validation):
		return validation
	case errors.As(err, &conflict):
		return conflict
	case errors.As(err, &stock):
		return map[string]interface{}{"message": stock.Error(), "quantity": stock.Quantity}
	case errors.As(err, &minimum):
		return map[string]interface{}{"message": minimum.Error(), "quantity": minimum.Quantity}
	default:
		return map[string]string{"error": err.Error()}
	}
}

// HTTPStatus maps the error taxonomy onto HTTP status codes.
func HTTPStatus(err error) int {
	var (
		validation *ValidationError
		conflict   *StateConflictError
		stock      *StockExceededError
		minimum    *MinimumQuantityError
	)
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.As(err, &validation), errors.As(err, &stock), errors.As(err, &minimum):
		return http.StatusBadRequest
	case errors.As(err, &conflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
