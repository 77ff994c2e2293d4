package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/eventum-io/eventum/internal/config"
	"github.com/eventum-io/eventum/internal/models"
	"github.com/eventum-io/eventum/internal/store"
)

// Authenticator orchestrates signin, registration and token refresh over the
// user and role stores.
type Authenticator struct {
	users      *store.UserStore
	roles      *store.RoleStore
	tokens     *TokenService
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewAuthenticator creates an authenticator from configuration
func NewAuthenticator(stores *store.Stores, cfg config.AuthConfig) *Authenticator {
	return &Authenticator{
		users:      stores.Users,
		roles:      stores.Roles,
		tokens:     NewTokenService(cfg.JWTSecret),
		accessTTL:  time.Duration(cfg.AccessTokenTTL) * time.Minute,
		refreshTTL: time.Duration(cfg.RefreshTokenTTL) * time.Minute,
	}
}

// Tokens exposes the underlying token service
func (a *Authenticator) Tokens() *TokenService {
	return a.tokens
}

// Signin verifies the credentials and returns the resolved user with a
// fresh token pair. Unknown usernames and wrong passwords surface as the
// same ErrInvalidCredentials.
func (a *Authenticator) Signin(username, password string) (*models.User, *TokenPair, error) {
	user, err := a.users.GetByUsername(username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			slog.Warn("Signin attempt with non-existent username", "username", username)
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !VerifyPassword(user.PasswordHash, password) {
		slog.Warn("Signin attempt with incorrect password", "username", username)
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := a.issuePair(user.Username)
	if err != nil {
		return nil, nil, err
	}

	slog.Info("User signed in", "user_id", user.ID, "username", user.Username)
	return &user, pair, nil
}

// Register resolves (or lazily creates) the named role, hashes the password
// and creates the user. A taken username fails with store.ErrDuplicateUsername.
func (a *Authenticator) Register(firstName, username, password string, roleName models.RoleName) (*models.User, error) {
	role, err := a.roles.GetOrCreate(roleName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve role: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		FirstName:    firstName,
		Username:     username,
		PasswordHash: hash,
		RoleID:       role.ID,
	}
	if err := a.users.Create(&user); err != nil {
		return nil, err
	}
	user.Role = role

	slog.Info("User registered", "user_id", user.ID, "username", user.Username, "role", role.Name)
	return &user, nil
}

// ChangePassword verifies the current password and stores a bcrypt hash of
// the new one. Legacy digests are replaced by bcrypt here as well.
func (a *Authenticator) ChangePassword(user *models.User, currentPassword, newPassword string) error {
	if !VerifyPassword(user.PasswordHash, currentPassword) {
		slog.Warn("Password change with incorrect current password", "user_id", user.ID)
		return ErrInvalidCredentials
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	if err := a.users.Update(user); err != nil {
		return err
	}

	slog.Info("Password changed", "user_id", user.ID, "username", user.Username)
	return nil
}

// IssueTokens returns a fresh token pair for an already-verified user.
func (a *Authenticator) IssueTokens(username string) (*TokenPair, error) {
	return a.issuePair(username)
}

// Refresh mints a new access token from a valid refresh token.
func (a *Authenticator) Refresh(refreshToken string) (string, error) {
	subject, err := a.tokens.Verify(refreshToken, TokenRefresh)
	if err != nil {
		return "", err
	}

	// The subject must still exist; a deleted user's refresh token is dead.
	if _, err := a.users.GetByUsername(subject); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidToken
		}
		return "", err
	}

	return a.tokens.Issue(subject, TokenAccess, a.accessTTL)
}

// CurrentUser resolves the user an access token belongs to.
func (a *Authenticator) CurrentUser(accessToken string) (*models.User, error) {
	subject, err := a.tokens.Verify(accessToken, TokenAccess)
	if err != nil {
		return nil, err
	}

	user, err := a.users.GetByUsername(subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (a *Authenticator) issuePair(username string) (*TokenPair, error) {
	access, err := a.tokens.Issue(username, TokenAccess, a.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := a.tokens.Issue(username, TokenRefresh, a.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
