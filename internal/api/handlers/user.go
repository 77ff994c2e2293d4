package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/eventum-io/eventum/internal/audit"
	"github.com/eventum-io/eventum/internal/auth"
	"github.com/eventum-io/eventum/internal/service"
	"github.com/gin-gonic/gin"
)

// UserEventsHandler serves the authenticated user's enrollments.
type UserEventsHandler struct {
	recorder *audit.Recorder
	members  *service.MemberService
}

// NewUserEventsHandler creates a user events handler
func NewUserEventsHandler(recorder *audit.Recorder, members *service.MemberService) *UserEventsHandler {
	return &UserEventsHandler{recorder: recorder, members: members}
}

// ListMyEvents godoc
// @Summary List the current user's events
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {array} service.UserEvent
// @Failure 404 {object} ErrorResponse
// @Router /users/me/events [get]
func (h *UserEventsHandler) ListMyEvents(c *gin.Context) {
	user, err := auth.UserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	events, err := h.members.ListForUser(user.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "failed to read events"})
		return
	}

	c.JSON(http.StatusOK, events)
}

// Enroll godoc
// @Summary Enroll the current user in an event
// @Tags users
// @Security BearerAuth
// @Param event_id path int true "Event ID"
// @Success 201
// @Failure 409 {object} ErrorResponse
// @Router /users/me/events/{event_id} [post]
func (h *UserEventsHandler) Enroll(c *gin.Context) {
	user, err := auth.UserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	eventID, ok := pathID(c, "event_id")
	if !ok {
		return
	}

	member, err := h.members.Enroll(eventID, user.ID)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyEnrolled) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "already enrolled"})
			return
		}
		c.JSON(http.StatusConflict, ErrorResponse{Error: "failed to enroll"})
		return
	}

	h.recorder.Record(user.ID, audit.ActionEnroll,
		"event:"+strconv.FormatUint(uint64(eventID), 10), nil)

	c.JSON(http.StatusCreated, member)
}

// Unenroll godoc
// @Summary Cancel the current user's enrollment
// @Tags users
// @Security BearerAuth
// @Param event_id path int true "Event ID"
// @Success 204
// @Failure 409 {object} ErrorResponse
// @Router /users/me/events/{event_id} [delete]
func (h *UserEventsHandler) Unenroll(c *gin.Context) {
	user, err := auth.UserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	eventID, ok := pathID(c, "event_id")
	if !ok {
		return
	}

	if !h.members.Unenroll(eventID, user.ID) {
		c.JSON(http.StatusConflict, ErrorResponse{Error: "failed to unenroll"})
		return
	}

	h.recorder.Record(user.ID, audit.ActionUnenroll,
		"event:"+strconv.FormatUint(uint64(eventID), 10), nil)

	c.Status(http.StatusNoContent)
}
