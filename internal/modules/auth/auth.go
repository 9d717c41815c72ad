package auth

import (
	"context"
	"errors"

	"github.com/dgrijalva/jwt-go"
)

// Service defines the interface for authentication-related business logic.
type Service interface {
	// Login verifies credentials and issues an access/refresh token pair.
	Login(ctx context.Context, email, password string) (*TokenPair, error)

	// Refresh exchanges a valid refresh token for a new pair.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}

// TokenPair is the issued access/refresh token pair.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Claims are the JWT claims carried by both token types.
type Claims struct {
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
	jwt.StandardClaims
}

// ErrInvalidCredentials is returned when the email or password is wrong,
// or when a presented token is missing, expired, or of the wrong type.
var ErrInvalidCredentials = errors.New("invalid credentials")
