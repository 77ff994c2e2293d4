package handlers

import (
	"errors"
	"net/http"

	"github.com/eventum-io/eventum/internal/audit"
	"github.com/eventum-io/eventum/internal/auth"
	"github.com/eventum-io/eventum/internal/models"
	"github.com/eventum-io/eventum/internal/store"
	"github.com/gin-gonic/gin"
)

// AuthHandler serves signin, registration and token refresh.
type AuthHandler struct {
	recorder      *audit.Recorder
	authenticator *auth.Authenticator
}

// NewAuthHandler creates an auth handler
func NewAuthHandler(recorder *audit.Recorder, authenticator *auth.Authenticator) *AuthHandler {
	return &AuthHandler{recorder: recorder, authenticator: authenticator}
}

// RefreshRequest carries the refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest carries the current and replacement passwords
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// RefreshResponse carries the new access token
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}

// Signin godoc
// @Summary User signin
// @Description Authenticate with username and password, returns an access/refresh token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body auth.SigninRequest true "Credentials"
// @Success 200 {object} auth.TokenPair
// @Failure 401 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /auth/signin [post]
func (h *AuthHandler) Signin(c *gin.Context) {
	var req auth.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "username and password are required"})
		return
	}

	user, pair, err := h.authenticator.Signin(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.recorder.Record(0, audit.ActionSigninFailed, "user:"+req.Username, nil)
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	h.recorder.Record(user.ID, audit.ActionSignin, "user:"+req.Username, nil)

	c.JSON(http.StatusOK, pair)
}

// Register godoc
// @Summary Register a user
// @Description Create a USER account and return an access/refresh token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param user body auth.RegisterRequest true "User details"
// @Success 201 {object} auth.TokenPair
// @Failure 401 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	h.register(c, models.RoleUser)
}

// RegisterAdmin godoc
// @Summary Register an administrator (admin only)
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param user body auth.RegisterRequest true "User details"
// @Success 201 {object} auth.TokenPair
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /auth/register/admin [post]
func (h *AuthHandler) RegisterAdmin(c *gin.Context) {
	h.register(c, models.RoleAdmin)
}

func (h *AuthHandler) register(c *gin.Context, role models.RoleName) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "first_name, username and password are required"})
		return
	}

	user, err := h.authenticator.Register(req.FirstName, req.Username, req.Password, role)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateUsername) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "registration failed"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	pair, err := h.authenticator.IssueTokens(user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	h.recorder.Record(user.ID, audit.ActionRegister, "user:"+user.Username,
		map[string]interface{}{"role": role})

	c.JSON(http.StatusCreated, pair)
}

// Refresh godoc
// @Summary Refresh the access token
// @Description Mint a new access token from a valid refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param token body RefreshRequest true "Refresh token"
// @Success 200 {object} RefreshResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "refresh_token is required"})
		return
	}

	accessToken, err := h.authenticator.Refresh(req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid or expired refresh token"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, RefreshResponse{AccessToken: accessToken})
}

// ChangePassword godoc
// @Summary Change the current user's password
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Param passwords body ChangePasswordRequest true "Current and new password"
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /users/me/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	user, err := auth.UserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "current_password and new_password are required"})
		return
	}

	if err := h.authenticator.ChangePassword(user, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	h.recorder.Record(user.ID, audit.ActionChangePassword, "user:"+user.Username, nil)

	c.Status(http.StatusNoContent)
}

// Me godoc
// @Summary Get the current user
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} ErrorResponse
// @Router /users/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := auth.UserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	c.JSON(http.StatusOK, user)
}
