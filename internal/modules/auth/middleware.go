package auth

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/arifhossain/multimart-backend/internal/modules/policy"
	"github.com/arifhossain/multimart-backend/internal/modules/user"
)

// Middleware resolves an optional Bearer token into the caller stored on
// the request context. Requests without a valid access token proceed as
// the anonymous caller; the visibility policy decides what they may see.
func Middleware(userRepo user.Repository, secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := ParseToken(strings.TrimPrefix(header, "Bearer "), secret)
			if err != nil || claims.TokenType != tokenTypeAccess {
				next.ServeHTTP(w, r)
				return
			}
			id, err := uuid.Parse(claims.Subject)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			u, err := userRepo.GetUserByID(r.Context(), id)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			ctx := policy.WithCaller(r.Context(), u.Caller())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
