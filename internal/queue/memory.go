package queue

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/eventum-io/eventum/internal/models"
)

// MemoryQueue implements an in-process audit entry queue. Closure is
// signaled through the done channel; the entries channel itself is never
// closed, so producers racing Close cannot hit a send on a closed channel.
type MemoryQueue struct {
	entries chan *models.AuditLog
	done    chan struct{}
	once    sync.Once
}

// NewMemoryQueue creates a new in-memory queue.
func NewMemoryQueue(bufferSize int) *MemoryQueue {
	if bufferSize <= 0 {
		bufferSize = 256
	}

	q := &MemoryQueue{
		entries: make(chan *models.AuditLog, bufferSize),
		done:    make(chan struct{}),
	}

	slog.Info("Initialized in-memory audit queue", "buffer_size", bufferSize)
	return q
}

// Enqueue adds an entry to the queue. A full queue fails after a short
// timeout rather than blocking the request.
func (q *MemoryQueue) Enqueue(ctx context.Context, entry *models.AuditLog) error {
	select {
	case <-q.done:
		return ErrClosed
	default:
	}

	select {
	case q.entries <- entry:
		return nil
	case <-q.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(time.Second):
		return context.DeadlineExceeded
	}
}

// Dequeue retrieves the next entry from the queue. Entries buffered before
// Close are still delivered; only a drained, closed queue fails with
// ErrClosed.
func (q *MemoryQueue) Dequeue(ctx context.Context) (*models.AuditLog, error) {
	select {
	case entry := <-q.entries:
		return entry, nil
	default:
	}

	select {
	case entry := <-q.entries:
		return entry, nil
	case <-q.done:
		return nil, ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close closes the queue. Entries still buffered can be drained before
// Dequeue starts returning ErrClosed.
func (q *MemoryQueue) Close() error {
	q.once.Do(func() {
		close(q.done)
		slog.Info("Memory audit queue closed")
	})
	return nil
}
