// Package postgres stores training documents in PostgreSQL and records their
// domain events in the transactional outbox.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kevin0018/LiftPath/internal/domain"
	"github.com/kevin0018/LiftPath/internal/events"
)

const uniqueViolation = "23505"

// Repository provides Postgres-backed persistence for routines, weekly plans,
// daily workouts, progress entries and outbox events.
type Repository struct {
	pool *pgxpool.Pool
}

var _ domain.Store = (*Repository)(nil)

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// inTx runs fn inside a transaction on a pooled connection and commits when
// fn succeeds.
func (r *Repository) inTx(ctx context.Context, fn func(pgx.Tx) error) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// outboxEvent is one row destined for the outbox table.
type outboxEvent struct {
	userID        string
	aggregateType string
	aggregateID   string
	eventType     string
	partitionKey  string
	payload       any
}

func (r *Repository) insertOutbox(ctx context.Context, tx pgx.Tx, event outboxEvent) error {
	body, err := json.Marshal(event.payload)
	if err != nil {
		return err
	}

	route, ok := events.RouteFor(event.eventType)
	if !ok {
		return fmt.Errorf("unknown event type: %s", event.eventType)
	}

	const stmt = `INSERT INTO outbox (user_id, aggregate_type, aggregate_id, event_type, topic, schema_subject, partition_key, payload, dedupe_key)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`

	_, err = tx.Exec(ctx, stmt,
		event.userID,
		event.aggregateType,
		event.aggregateID,
		event.eventType,
		route.Topic,
		route.Subject,
		event.partitionKey,
		body,
		fmt.Sprintf("%s:%s", event.aggregateID, event.eventType),
	)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
