package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenKind distinguishes access tokens from refresh tokens.
type TokenKind string

const (
	// TokenAccess is the short-lived credential for API calls
	TokenAccess TokenKind = "access"
	// TokenRefresh is the longer-lived credential used solely to mint new
	// access tokens
	TokenRefresh TokenKind = "refresh"
)

// Claims represents the JWT claims carried by both token kinds
type Claims struct {
	TokenType TokenKind `json:"type"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed, time-limited tokens. The secret
// is process-wide and read-only after startup.
type TokenService struct {
	secret []byte
	issuer string
}

// NewTokenService creates a token service signing with the given secret
func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		issuer: "eventum",
	}
}

// Issue creates a signed token of the given kind for the subject (username).
func (s *TokenService) Issue(subject string, kind TokenKind, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		TokenType: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token and returns its subject. Malformed,
// expired, badly signed and wrong-kind tokens all fail with ErrInvalidToken.
func (s *TokenService) Verify(tokenString string, kind TokenKind) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.TokenType != kind {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
