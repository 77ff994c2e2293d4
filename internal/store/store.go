// Package store contains the gorm-backed repositories for the domain
// entities. Raw persistence errors are logged and mapped here; callers only
// see the typed errors below or wrapped failures.
package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateUsername indicates the username is already taken.
	ErrDuplicateUsername = errors.New("username already exists")
)

// Stores bundles all repositories over one database handle.
type Stores struct {
	Roles   *RoleStore
	Users   *UserStore
	Events  *EventStore
	Members *MemberStore
}

// New creates all stores bound to the given database.
func New(db *gorm.DB) *Stores {
	return &Stores{
		Roles:   &RoleStore{db: db},
		Users:   &UserStore{db: db},
		Events:  &EventStore{db: db},
		Members: &MemberStore{db: db},
	}
}

// isUniqueViolation reports whether err is a unique-constraint violation.
// gorm translates these for some dialects; the string checks cover the rest
// (sqlite "UNIQUE constraint failed", postgres "duplicate key value").
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
