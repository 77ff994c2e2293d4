package store

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/eventum-io/eventum/internal/models"
	"gorm.io/gorm"
)

// MemberStore persists EventMember join entities.
type MemberStore struct {
	db *gorm.DB
}

// Create inserts a new membership row.
func (s *MemberStore) Create(member *models.EventMember) error {
	if err := s.db.Create(member).Error; err != nil {
		slog.Error("Failed to create event member",
			"event_id", member.EventID, "user_id", member.UserID, "error", err)
		return fmt.Errorf("failed to create event member: %w", err)
	}
	return nil
}

// Get returns the membership for the (event, user) pair, or ErrNotFound.
func (s *MemberStore) Get(eventID, userID uint) (models.EventMember, error) {
	var member models.EventMember
	err := s.db.Preload("User").Preload("Event").
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.EventMember{}, ErrNotFound
		}
		slog.Error("Failed to read event member",
			"event_id", eventID, "user_id", userID, "error", err)
		return models.EventMember{}, fmt.Errorf("failed to read event member: %w", err)
	}
	return member, nil
}

// ListByUser returns all memberships of one user, with users and events
// preloaded for presentation.
func (s *MemberStore) ListByUser(userID uint) ([]models.EventMember, error) {
	var members []models.EventMember
	err := s.db.Preload("User").Preload("Event").
		Where("user_id = ?", userID).
		Order("id").
		Find(&members).Error
	if err != nil {
		slog.Error("Failed to list event members", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list event members: %w", err)
	}
	return members, nil
}

// ListByEvent returns all memberships of one event.
func (s *MemberStore) ListByEvent(eventID uint) ([]models.EventMember, error) {
	var members []models.EventMember
	err := s.db.Preload("User").Preload("Event").
		Where("event_id = ?", eventID).
		Order("id").
		Find(&members).Error
	if err != nil {
		slog.Error("Failed to list event members", "event_id", eventID, "error", err)
		return nil, fmt.Errorf("failed to list event members: %w", err)
	}
	return members, nil
}

// Delete removes the membership for the (event, user) pair. Returns false
// when no row matched or the delete failed.
func (s *MemberStore) Delete(eventID, userID uint) bool {
	result := s.db.Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&models.EventMember{})
	if result.Error != nil {
		slog.Error("Failed to delete event member",
			"event_id", eventID, "user_id", userID, "error", result.Error)
		return false
	}
	return result.RowsAffected > 0
}
