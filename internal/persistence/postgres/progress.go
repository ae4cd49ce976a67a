package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kevin0018/LiftPath/internal/domain"
	"github.com/kevin0018/LiftPath/internal/events"
)

// AppendProgressEntry inserts the entry and its outbox event atomically.
func (r *Repository) AppendProgressEntry(ctx context.Context, entry domain.ProgressEntry) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`INSERT INTO progress_entries (entry_id, routine_id, exercise_id, user_id, recorded_at, reps, weight, notes)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			entry.ID, entry.RoutineID, entry.ExerciseID, entry.UserID, entry.Date, entry.Reps, entry.Weight, entry.Notes,
		); err != nil {
			return err
		}

		return r.insertOutbox(ctx, tx, outboxEvent{
			userID:        entry.UserID,
			aggregateType: "progress_entry",
			aggregateID:   entry.ID,
			eventType:     events.TypeProgressRecorded,
			partitionKey:  fmt.Sprintf("%s:%s", entry.RoutineID, entry.ExerciseID),
			payload: events.ProgressRecorded{
				EntryID:    entry.ID,
				UserID:     entry.UserID,
				RoutineID:  entry.RoutineID,
				ExerciseID: entry.ExerciseID,
				Reps:       entry.Reps,
				Weight:     entry.Weight,
				Notes:      entry.Notes,
				RecordedAt: entry.Date,
			},
		})
	})
}

// ListProgressEntries returns entries for the exercise, most recent first.
// A non-positive limit returns all of them.
func (r *Repository) ListProgressEntries(ctx context.Context, routineID, exerciseID string, limit int) ([]domain.ProgressEntry, error) {
	args := []any{routineID, exerciseID}
	query := `SELECT entry_id, routine_id, exercise_id, user_id, recorded_at, reps, weight, notes
        FROM progress_entries WHERE routine_id=$1 AND exercise_id=$2
        ORDER BY recorded_at DESC, seq DESC`
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]domain.ProgressEntry, 0)
	for rows.Next() {
		var e domain.ProgressEntry
		if err := rows.Scan(&e.ID, &e.RoutineID, &e.ExerciseID, &e.UserID, &e.Date, &e.Reps, &e.Weight, &e.Notes); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
