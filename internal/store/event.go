package store

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/eventum-io/eventum/internal/models"
	"gorm.io/gorm"
)

// EventStore persists Event entities.
type EventStore struct {
	db *gorm.DB
}

// Create inserts a new event.
func (s *EventStore) Create(event *models.Event) error {
	if err := s.db.Create(event).Error; err != nil {
		slog.Error("Failed to create event", "name", event.Name, "error", err)
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

// GetByID returns the event, or ErrNotFound.
func (s *EventStore) GetByID(id uint) (models.Event, error) {
	var event models.Event
	if err := s.db.First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Event{}, ErrNotFound
		}
		slog.Error("Failed to read event", "id", id, "error", err)
		return models.Event{}, fmt.Errorf("failed to read event: %w", err)
	}
	return event, nil
}

// List returns all events ordered by start time.
func (s *EventStore) List() ([]models.Event, error) {
	var events []models.Event
	if err := s.db.Order("started_at").Find(&events).Error; err != nil {
		slog.Error("Failed to list events", "error", err)
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}
