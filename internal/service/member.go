package service

import (
	"errors"

	"github.com/eventum-io/eventum/internal/models"
	"github.com/eventum-io/eventum/internal/store"
)

// UserEvent is one membership entry from the enrolled user's point of view.
type UserEvent struct {
	EventID   uint   `json:"event_id"`
	EventName string `json:"name"`
}

// MemberService orchestrates enrollments.
type MemberService struct {
	events  *store.EventStore
	members *store.MemberStore
}

// NewMemberService creates a membership service.
func NewMemberService(stores *store.Stores) *MemberService {
	return &MemberService{
		events:  stores.Events,
		members: stores.Members,
	}
}

// Enroll creates the membership for the (event, user) pair. Enrolling twice
// fails with ErrAlreadyEnrolled; the unique index backs this up against
// races. The event must exist.
func (s *MemberService) Enroll(eventID, userID uint) (*models.EventMember, error) {
	if _, err := s.events.GetByID(eventID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if _, err := s.members.Get(eventID, userID); err == nil {
		return nil, ErrAlreadyEnrolled
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	member := models.EventMember{EventID: eventID, UserID: userID}
	if err := s.members.Create(&member); err != nil {
		return nil, &ConflictError{Message: "failed to enroll"}
	}
	return &member, nil
}

// Unenroll deletes the membership. Returns false when no row matched or the
// delete failed.
func (s *MemberService) Unenroll(eventID, userID uint) bool {
	return s.members.Delete(eventID, userID)
}

// ListForUser returns the user's memberships resolved to event names.
func (s *MemberService) ListForUser(userID uint) ([]UserEvent, error) {
	members, err := s.members.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	events := make([]UserEvent, 0, len(members))
	for _, m := range members {
		events = append(events, UserEvent{
			EventID:   m.EventID,
			EventName: m.Event.Name,
		})
	}
	return events, nil
}

// ListForEvent returns the memberships of one event, with users and events
// preloaded.
func (s *MemberService) ListForEvent(eventID uint) ([]models.EventMember, error) {
	return s.members.ListByEvent(eventID)
}
