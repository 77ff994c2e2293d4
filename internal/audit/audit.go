// Package audit records who did what to which resource. Handlers hand
// entries to a Recorder, which enqueues them; a background Writer drains the
// queue into the audit_logs table so a slow database never delays a request.
package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/eventum-io/eventum/internal/models"
	"github.com/eventum-io/eventum/internal/queue"
	"gorm.io/gorm"
)

// Audit actions constants
const (
	ActionSignin         = "signin"
	ActionSigninFailed   = "signin_failed"
	ActionRegister       = "register"
	ActionChangePassword = "change_password"
	ActionCreateEvent    = "create_event"
	ActionDeleteEvent    = "delete_event"
	ActionEnroll         = "enroll"
	ActionUnenroll       = "unenroll"
)

// Recorder builds audit entries and hands them to the queue.
type Recorder struct {
	q queue.Queue
}

// NewRecorder creates a recorder over the given queue.
func NewRecorder(q queue.Queue) *Recorder {
	return &Recorder{q: q}
}

// Record enqueues one audit entry. Failures are logged and swallowed; an
// audit backlog must not fail the request that triggered it.
func (r *Recorder) Record(userID uint, action, resource string, details interface{}) {
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		detailsJSON = []byte("{}")
	}

	entry := models.AuditLog{
		UserID:      userID,
		Action:      action,
		Resource:    resource,
		DetailsJSON: string(detailsJSON),
		Timestamp:   time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := r.q.Enqueue(ctx, &entry); err != nil {
		slog.Warn("Failed to enqueue audit entry",
			"action", action, "resource", resource, "error", err)
	}
}

// Writer drains the queue into the database.
type Writer struct {
	db *gorm.DB
	q  queue.Queue
}

// NewWriter creates a writer over the given queue and database.
func NewWriter(db *gorm.DB, q queue.Queue) *Writer {
	return &Writer{db: db, q: q}
}

// Start processes entries until the context is canceled or the queue is
// closed and drained.
func (w *Writer) Start(ctx context.Context) error {
	slog.Info("Audit writer started")

	for {
		select {
		case <-ctx.Done():
			slog.Info("Audit writer stopped")
			return ctx.Err()
		default:
			entry, err := w.q.Dequeue(ctx)
			if err != nil {
				switch err {
				case context.DeadlineExceeded:
					// Poll timeout, nothing queued.
					continue
				case queue.ErrClosed:
					slog.Info("Audit queue closed, writer stopped")
					return nil
				case context.Canceled:
					slog.Info("Audit writer stopped")
					return err
				default:
					slog.Error("Failed to dequeue audit entry", "error", err)
					time.Sleep(time.Second)
					continue
				}
			}

			if err := w.db.Create(entry).Error; err != nil {
				slog.Error("Failed to persist audit entry",
					"action", entry.Action, "resource", entry.Resource, "error", err)
			}
		}
	}
}
