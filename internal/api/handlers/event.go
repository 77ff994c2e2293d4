package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/eventum-io/eventum/internal/audit"
	"github.com/eventum-io/eventum/internal/auth"
	"github.com/eventum-io/eventum/internal/service"
	"github.com/gin-gonic/gin"
)

// EventHandler serves the event CRUD endpoints.
type EventHandler struct {
	recorder *audit.Recorder
	events   *service.EventService
}

// NewEventHandler creates an event handler
func NewEventHandler(recorder *audit.Recorder, events *service.EventService) *EventHandler {
	return &EventHandler{recorder: recorder, events: events}
}

// CreateEventRequest is the create-event body
type CreateEventRequest struct {
	Name       string    `json:"name" binding:"required"`
	StartedAt  time.Time `json:"started_at" binding:"required"`
	FinishedAt time.Time `json:"finished_at" binding:"required"`
}

// EventMemberName is one enrolled member in an event response
type EventMemberName struct {
	Name string `json:"name"`
}

// EventResponse is an event with its enrolled members' names
type EventResponse struct {
	ID         uint              `json:"id"`
	Name       string            `json:"name"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
	Members    []EventMemberName `json:"members"`
}

func toEventResponse(detail service.EventDetail) EventResponse {
	members := make([]EventMemberName, 0, len(detail.Members))
	for _, name := range detail.Members {
		members = append(members, EventMemberName{Name: name})
	}
	return EventResponse{
		ID:         detail.Event.ID,
		Name:       detail.Event.Name,
		StartedAt:  detail.Event.StartedAt,
		FinishedAt: detail.Event.FinishedAt,
		Members:    members,
	}
}

// ListEvents godoc
// @Summary List all events
// @Tags events
// @Produce json
// @Success 200 {array} EventResponse
// @Router /events [get]
func (h *EventHandler) ListEvents(c *gin.Context) {
	details, err := h.events.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list events"})
		return
	}

	responses := make([]EventResponse, 0, len(details))
	for _, detail := range details {
		responses = append(responses, toEventResponse(detail))
	}
	c.JSON(http.StatusOK, responses)
}

// GetEvent godoc
// @Summary Get an event
// @Tags events
// @Param id path int true "Event ID"
// @Produce json
// @Success 200 {object} EventResponse
// @Failure 404 {object} ErrorResponse
// @Router /events/{id} [get]
func (h *EventHandler) GetEvent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	detail, err := h.events.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to read event"})
		return
	}

	c.JSON(http.StatusOK, toEventResponse(*detail))
}

// CreateEvent godoc
// @Summary Create an event (admin only)
// @Tags events
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param event body CreateEventRequest true "Event details"
// @Success 201 {object} EventResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /events [post]
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "name, started_at and finished_at are required"})
		return
	}

	event, err := h.events.Create(req.Name, req.StartedAt, req.FinishedAt)
	if err != nil {
		if errors.Is(err, service.ErrInvalidEventWindow) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusConflict, ErrorResponse{Error: "failed to create event"})
		return
	}

	if user, err := auth.UserFromContext(c); err == nil {
		h.recorder.Record(user.ID, audit.ActionCreateEvent,
			"event:"+strconv.FormatUint(uint64(event.ID), 10),
			map[string]interface{}{"name": event.Name})
	}

	c.JSON(http.StatusCreated, toEventResponse(service.EventDetail{Event: *event}))
}

// DeleteEvent godoc
// @Summary Delete an event and its memberships (admin only)
// @Tags events
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /events/{id} [delete]
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if !h.events.Delete(id) {
		c.JSON(http.StatusConflict, ErrorResponse{Error: "failed to delete event"})
		return
	}

	if user, err := auth.UserFromContext(c); err == nil {
		h.recorder.Record(user.ID, audit.ActionDeleteEvent,
			"event:"+strconv.FormatUint(uint64(id), 10), nil)
	}

	c.Status(http.StatusNoContent)
}

// pathID parses a numeric path parameter, answering 400 itself on garbage.
func pathID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + name})
		return 0, false
	}
	return uint(id), true
}
