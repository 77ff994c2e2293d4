// Package queue provides the transport for audit log entries between the
// request handlers and the background writer. Two backends exist: an
// in-process channel for single-instance deployments and a Valkey list for
// deployments where several instances share one audit trail.
package queue

import (
	"context"
	"errors"

	"github.com/eventum-io/eventum/internal/models"
)

// ErrClosed is returned when the queue has been closed.
var ErrClosed = errors.New("queue is closed")

// Queue transports audit log entries.
type Queue interface {
	// Enqueue adds an entry to the queue.
	Enqueue(ctx context.Context, entry *models.AuditLog) error

	// Dequeue retrieves the next entry from the queue. It returns
	// context.DeadlineExceeded when no entry is available within the
	// backend's poll interval.
	Dequeue(ctx context.Context) (*models.AuditLog, error)

	// Close closes the queue and releases resources.
	Close() error
}
