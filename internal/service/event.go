package service

import (
	"errors"
	"log/slog"
	"time"

	"github.com/eventum-io/eventum/internal/models"
	"github.com/eventum-io/eventum/internal/store"
	"gorm.io/gorm"
)

// EventDetail is an event together with its enrolled members' display names.
type EventDetail struct {
	Event   models.Event
	Members []string
}

// EventService orchestrates event creation, read composition and cascading
// deletion.
type EventService struct {
	db      *gorm.DB
	events  *store.EventStore
	members *store.MemberStore
}

// NewEventService creates an event service.
func NewEventService(db *gorm.DB, stores *store.Stores) *EventService {
	return &EventService{
		db:      db,
		events:  stores.Events,
		members: stores.Members,
	}
}

// Create validates the event window and persists the event.
func (s *EventService) Create(name string, startedAt, finishedAt time.Time) (*models.Event, error) {
	if !startedAt.Before(finishedAt) {
		return nil, ErrInvalidEventWindow
	}

	event := models.Event{
		Name:       name,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
	}
	if err := s.events.Create(&event); err != nil {
		return nil, &ConflictError{Message: "failed to create event"}
	}

	slog.Info("Event created", "event_id", event.ID, "name", event.Name)
	return &event, nil
}

// Get returns the event with its members' display names attached.
func (s *EventService) Get(id uint) (*EventDetail, error) {
	event, err := s.events.GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.withMembers(event)
}

// List returns all events, each with attached member names. An empty slice,
// not an error, when none exist.
func (s *EventService) List() ([]EventDetail, error) {
	events, err := s.events.List()
	if err != nil {
		return nil, err
	}

	details := make([]EventDetail, 0, len(events))
	for _, event := range events {
		detail, err := s.withMembers(event)
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

// Delete removes the event and all its membership rows inside one
// transaction, so a crash cannot leave orphaned members. Returns false when
// the event does not exist or the delete failed.
func (s *EventService) Delete(id uint) bool {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&models.EventMember{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Event{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		slog.Error("Failed to delete event", "event_id", id, "error", err)
		return false
	}

	slog.Info("Event deleted", "event_id", id)
	return true
}

func (s *EventService) withMembers(event models.Event) (*EventDetail, error) {
	members, err := s.members.ListByEvent(event.ID)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(members))
	for _, m := range members {
		names = append(names, m.User.FirstName)
	}
	return &EventDetail{Event: event, Members: names}, nil
}
