package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/eventum-io/eventum/internal/models"
	"github.com/valkey-io/valkey-go"
)

// ValkeyQueue implements a shared audit entry queue backed by a Valkey list,
// so several server instances can feed one audit trail.
type ValkeyQueue struct {
	client valkey.Client
	key    string
}

// NewValkeyQueue creates a new Valkey-backed queue.
func NewValkeyQueue(addr string) (*ValkeyQueue, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{addr},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Valkey: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pingCmd := client.B().Ping().Build()
	if err := client.Do(ctx, pingCmd).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping Valkey: %w", err)
	}

	q := &ValkeyQueue{
		client: client,
		key:    "eventum:audit",
	}

	slog.Info("Initialized Valkey audit queue", "address", addr, "queue_key", q.key)
	return q, nil
}

// Enqueue pushes the JSON-encoded entry onto the list (RPUSH for FIFO).
func (q *ValkeyQueue) Enqueue(ctx context.Context, entry *models.AuditLog) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal audit entry: %w", err)
	}

	cmd := q.client.B().Rpush().Key(q.key).Element(string(data)).Build()
	if err := q.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("failed to push audit entry to Valkey: %w", err)
	}
	return nil
}

// Dequeue pops the next entry with a blocking pop. An empty queue surfaces
// as context.DeadlineExceeded so the writer treats it as a normal poll
// timeout.
func (q *ValkeyQueue) Dequeue(ctx context.Context) (*models.AuditLog, error) {
	cmd := q.client.B().Blpop().Key(q.key).Timeout(5).Build()
	result := q.client.Do(ctx, cmd)

	// BLPOP returns [key, value]; a timeout surfaces as a nil message error.
	values, err := result.AsStrSlice()
	if err != nil {
		return nil, context.DeadlineExceeded
	}
	if len(values) < 2 {
		return nil, fmt.Errorf("invalid BLPOP result: expected 2 values, got %d", len(values))
	}

	var entry models.AuditLog
	if err := json.Unmarshal([]byte(values[1]), &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal audit entry: %w", err)
	}
	return &entry, nil
}

// Close closes the Valkey connection.
func (q *ValkeyQueue) Close() error {
	q.client.Close()
	slog.Info("Valkey audit queue closed")
	return nil
}
