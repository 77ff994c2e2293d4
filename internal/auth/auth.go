package auth

import (
	"errors"
)

// UserContextKey is the key used to store the authenticated user in the Gin context
const UserContextKey = "user"

var (
	// ErrInvalidCredentials covers both unknown usernames and wrong passwords,
	// so signin failures do not reveal whether an account exists.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken covers malformed, expired, badly signed and
	// wrong-type tokens.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrUserNotFound indicates a valid token whose subject no longer exists.
	ErrUserNotFound = errors.New("user not found")

	// ErrUnauthorized indicates a request with no authenticated user.
	ErrUnauthorized = errors.New("unauthorized")
)

// SigninRequest represents a signin request
type SigninRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

// TokenPair is the signin/register response
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
