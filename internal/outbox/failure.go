package outbox

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DLQWriter persists failed events for investigation and replay.
type DLQWriter struct {
	pool      *pgxpool.Pool
	baseDelay time.Duration
}

// NewDLQWriter initialises a writer backed by the provided connection pool.
// baseDelay seeds the backoff of events that already went through a replay;
// zero selects one minute.
func NewDLQWriter(pool *pgxpool.Pool, baseDelay time.Duration) *DLQWriter {
	if baseDelay <= 0 {
		baseDelay = time.Minute
	}
	return &DLQWriter{pool: pool, baseDelay: baseDelay}
}

// Write records a failed outbox message in the DLQ alongside the supplied
// reason. A first failure is eligible for replay immediately; a replayed
// event keeps its retry count and waits out the backoff for it.
func (w *DLQWriter) Write(ctx context.Context, msg Message, reason string) error {
	var delay time.Duration
	if msg.RetryCount > 0 {
		delay = backoffDelay(w.baseDelay, msg.RetryCount)
	}

	_, err := w.pool.Exec(ctx,
		`INSERT INTO outbox_dlq (user_id, event_id, event_type, topic, payload, reason, aggregate_type, aggregate_id, schema_subject, partition_key, retry_count, last_attempt_at, next_retry_at)
         VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11, NOW(), NOW() + $12::interval)`,
		msg.UserID, msg.EventID, msg.EventType, msg.Topic, msg.Payload, reason, msg.AggregateType, msg.AggregateID, msg.SchemaSubject, msg.PartitionKey,
		msg.RetryCount, delay,
	)
	return err
}
