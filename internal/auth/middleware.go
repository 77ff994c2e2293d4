package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/eventum-io/eventum/internal/models"
	"github.com/gin-gonic/gin"
)

// Middleware returns a Gin middleware that authenticates the request. It
// extracts the bearer token, resolves the user and stores it in the context;
// missing, malformed or expired tokens abort with 401.
func (a *Authenticator) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization"})
			c.Abort()
			return
		}

		user, err := a.CurrentUser(tokenString)
		if err != nil {
			slog.Warn("Rejected token", "error", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(UserContextKey, user)
		c.Next()
	}
}

// RequireRoles returns a Gin middleware that rejects with 403 unless the
// authenticated user's role is in the allow-list. It must run after
// Middleware.
func RequireRoles(allowed ...models.RoleName) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := UserFromContext(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		for _, role := range allowed {
			if user.Role.Name == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		c.Abort()
	}
}

// UserFromContext extracts the authenticated user from the Gin context.
func UserFromContext(c *gin.Context) (*models.User, error) {
	value, exists := c.Get(UserContextKey)
	if !exists {
		return nil, ErrUnauthorized
	}

	user, ok := value.(*models.User)
	if !ok {
		return nil, ErrUnauthorized
	}
	return user, nil
}

// bearerToken extracts the token from the Authorization header. The second
// return value is false when the header is present but not a bearer scheme.
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", true
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}
