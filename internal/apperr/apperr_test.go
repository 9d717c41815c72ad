package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", ErrNotFound), http.StatusNotFound},
		{"permission denied", ErrPermissionDenied, http.StatusForbidden},
		{"unauthenticated", ErrUnauthenticated, http.StatusUnauthorized},
		{"validation", Validation("price", "too low"), http.StatusBadRequest},
		{"stock exceeded", &StockExceededError{Quantity: 3}, http.StatusBadRequest},
		{"minimum quantity", &MinimumQuantityError{Quantity: 1}, http.StatusBadRequest},
		{"state conflict", StateConflict("cannot transition"), http.StatusConflict},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestPayloadQuantityErrors(t *testing.T) {
	payload := Payload(&StockExceededError{Quantity: 7})
	body, ok := payload.(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, 7, body["quantity"])
	assert.Equal(t, "quantity exceeds available stock", body["message"])

	payload = Payload(&MinimumQuantityError{Quantity: 1})
	body, ok = payload.(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, 1, body["quantity"])
}

func TestPayloadValidation(t *testing.T) {
	payload := Payload(Validation("email", "email is required"))
	vErr, ok := payload.(*ValidationError)
	assert.True(t, ok)
	assert.Equal(t, "email", vErr.Field)
}
