package service

import "errors"

var (
	// ErrNotFound indicates the requested resource was not found.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyEnrolled indicates a (user, event) pair already has a
	// membership row.
	ErrAlreadyEnrolled = errors.New("already enrolled")

	// ErrInvalidEventWindow indicates started_at is not before finished_at.
	ErrInvalidEventWindow = errors.New("event must start before it finishes")
)

// ConflictError represents a persistence-layer failure surfaced to the
// transport as a conflict (HTTP 409).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }
