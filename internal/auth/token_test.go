package auth

import (
	"errors"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret")

	token, err := svc.Issue("alice", TokenAccess, time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	subject, err := svc.Verify(token, TokenAccess)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if subject != "alice" {
		t.Errorf("expected subject alice, got %q", subject)
	}
}

func TestTokenExpiry(t *testing.T) {
	svc := NewTokenService("test-secret")

	token, err := svc.Issue("alice", TokenAccess, -time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := svc.Verify(token, TokenAccess); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenWrongKind(t *testing.T) {
	svc := NewTokenService("test-secret")

	refresh, err := svc.Issue("alice", TokenRefresh, time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// A refresh token must not pass as an access token, and vice versa.
	if _, err := svc.Verify(refresh, TokenAccess); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong kind, got %v", err)
	}

	access, err := svc.Issue("alice", TokenAccess, time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := svc.Verify(access, TokenRefresh); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong kind, got %v", err)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewTokenService("secret-a").Issue("alice", TokenAccess, time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := NewTokenService("secret-b").Verify(token, TokenAccess); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestTokenMalformed(t *testing.T) {
	svc := NewTokenService("test-secret")

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := svc.Verify(token, TokenAccess); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken for %q, got %v", token, err)
		}
	}
}
