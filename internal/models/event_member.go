package models

import (
	"time"
)

// EventMember represents one user's enrollment in one event.
// The composite unique index keeps a (user, event) pair down to a single row.
type EventMember struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_event_members_user_event" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	EventID   uint      `gorm:"not null;uniqueIndex:idx_event_members_user_event" json:"event_id"`
	Event     Event     `gorm:"foreignKey:EventID" json:"event,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
