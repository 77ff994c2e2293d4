package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/eventum-io/eventum/internal/config"
	"github.com/eventum-io/eventum/internal/models"
	"github.com/eventum-io/eventum/internal/store"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testAuthenticator builds an in-memory DB and an authenticator over it.
func testAuthenticator(t *testing.T) (*Authenticator, *store.Stores) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Event{},
		&models.EventMember{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	stores := store.New(db)
	a := NewAuthenticator(stores, config.AuthConfig{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  60,
		RefreshTokenTTL: 60 * 24,
	})
	return a, stores
}

func TestRegisterAndSignin(t *testing.T) {
	a, _ := testAuthenticator(t)

	user, err := a.Register("Alice", "alice", "pw1", models.RoleUser)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role.Name != models.RoleUser {
		t.Errorf("expected role USER, got %s", user.Role.Name)
	}
	if user.PasswordHash == "pw1" {
		t.Fatal("password must be stored hashed")
	}

	signed, pair, err := a.Signin("alice", "pw1")
	if err != nil {
		t.Fatalf("signin: %v", err)
	}
	if signed.Username != "alice" {
		t.Errorf("expected signed-in user alice, got %q", signed.Username)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Error("expected both access and refresh tokens")
	}
}

func TestSignin_InvalidCredentials(t *testing.T) {
	a, _ := testAuthenticator(t)

	if _, err := a.Register("Alice", "alice", "pw1", models.RoleUser); err != nil {
		t.Fatalf("register: %v", err)
	}

	// Unknown username and wrong password must be indistinguishable.
	_, _, unknownErr := a.Signin("nobody", "pw1")
	_, _, wrongErr := a.Signin("alice", "wrong")

	if !errors.Is(unknownErr, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown user, got %v", unknownErr)
	}
	if !errors.Is(wrongErr, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for wrong password, got %v", wrongErr)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	a, _ := testAuthenticator(t)

	if _, err := a.Register("Alice", "alice", "pw1", models.RoleUser); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := a.Register("Other", "alice", "pw2", models.RoleUser)
	if !errors.Is(err, store.ErrDuplicateUsername) {
		t.Errorf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestRegister_UnknownRole(t *testing.T) {
	a, _ := testAuthenticator(t)

	if _, err := a.Register("Alice", "alice", "pw1", models.RoleName("ROOT")); err == nil {
		t.Error("expected register with unknown role to fail")
	}
}

func TestRefresh(t *testing.T) {
	a, _ := testAuthenticator(t)

	if _, err := a.Register("Alice", "alice", "pw1", models.RoleUser); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, pair, err := a.Signin("alice", "pw1")
	if err != nil {
		t.Fatalf("signin: %v", err)
	}

	access, err := a.Refresh(pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}

	user, err := a.CurrentUser(access)
	if err != nil {
		t.Fatalf("current user: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("expected alice, got %q", user.Username)
	}

	// An access token must be rejected at the refresh endpoint.
	if _, err := a.Refresh(pair.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken refreshing with an access token, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	a, _ := testAuthenticator(t)

	user, err := a.Register("Alice", "alice", "pw1", models.RoleUser)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := a.ChangePassword(user, "pw1", "pw2"); err != nil {
		t.Fatalf("change password: %v", err)
	}

	if _, _, err := a.Signin("alice", "pw1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected old password to be rejected, got %v", err)
	}
	if _, _, err := a.Signin("alice", "pw2"); err != nil {
		t.Errorf("signin with new password: %v", err)
	}
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	a, _ := testAuthenticator(t)

	user, err := a.Register("Alice", "alice", "pw1", models.RoleUser)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := a.ChangePassword(user, "wrong", "pw2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := a.Signin("alice", "pw1"); err != nil {
		t.Errorf("password must be unchanged after failed attempt: %v", err)
	}
}

func TestCurrentUser_DeletedSubject(t *testing.T) {
	a, stores := testAuthenticator(t)

	user, err := a.Register("Alice", "alice", "pw1", models.RoleUser)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	_, pair, err := a.Signin("alice", "pw1")
	if err != nil {
		t.Fatalf("signin: %v", err)
	}

	if !stores.Users.Delete(user.ID) {
		t.Fatal("delete user")
	}

	if _, err := a.CurrentUser(pair.AccessToken); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestCurrentUser_InvalidToken(t *testing.T) {
	a, _ := testAuthenticator(t)

	if _, err := a.CurrentUser("garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}

	// Token signed with the right secret but already expired.
	expired, err := a.Tokens().Issue("alice", TokenAccess, -time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := a.CurrentUser(expired); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}
