package handlers

import (
	"net/http"

	"github.com/eventum-io/eventum/internal/store"
	"github.com/gin-gonic/gin"
)

// AdminHandler serves the admin-only user and role endpoints.
type AdminHandler struct {
	users *store.UserStore
	roles *store.RoleStore
}

// NewAdminHandler creates an admin handler
func NewAdminHandler(stores *store.Stores) *AdminHandler {
	return &AdminHandler{users: stores.Users, roles: stores.Roles}
}

// ListUsers godoc
// @Summary List all users (admin only)
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.User
// @Failure 403 {object} ErrorResponse
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.users.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, users)
}

// ListRoles godoc
// @Summary List all roles (admin only)
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Role
// @Failure 403 {object} ErrorResponse
// @Router /admin/roles [get]
func (h *AdminHandler) ListRoles(c *gin.Context) {
	roles, err := h.roles.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch roles"})
		return
	}

	c.JSON(http.StatusOK, roles)
}

// DeleteRole godoc
// @Summary Delete a role (admin only)
// @Tags admin
// @Security BearerAuth
// @Param id path int true "Role ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /admin/roles/{id} [delete]
func (h *AdminHandler) DeleteRole(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if !h.roles.Delete(id) {
		c.JSON(http.StatusConflict, ErrorResponse{Error: "failed to delete role"})
		return
	}

	c.Status(http.StatusNoContent)
}
