package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/kevin0018/LiftPath/internal/domain"
)

const routineColumns = `routine_id, user_id, name, description, exercises, created_at, updated_at`

// ListRoutinesByOwner returns every routine owned by userID.
func (r *Repository) ListRoutinesByOwner(ctx context.Context, userID string) ([]domain.WorkoutRoutine, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+routineColumns+` FROM routines WHERE user_id=$1 ORDER BY updated_at DESC, routine_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routines := make([]domain.WorkoutRoutine, 0)
	for rows.Next() {
		routine, err := scanRoutine(rows)
		if err != nil {
			return nil, err
		}
		routines = append(routines, routine)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return routines, nil
}

// GetRoutine retrieves a routine by id, or nil when it does not exist.
func (r *Repository) GetRoutine(ctx context.Context, routineID string) (*domain.WorkoutRoutine, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+routineColumns+` FROM routines WHERE routine_id=$1`, routineID)
	routine, err := scanRoutine(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &routine, nil
}

// CreateRoutine inserts a routine document.
func (r *Repository) CreateRoutine(ctx context.Context, routine domain.WorkoutRoutine) error {
	exercises, err := marshalExercises(routine.Exercises)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO routines (`+routineColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		routine.ID, routine.UserID, routine.Name, routine.Description, exercises, routine.CreatedAt, routine.UpdatedAt,
	)
	return err
}

// UpdateRoutine rewrites the routine document, including its whole exercise list.
func (r *Repository) UpdateRoutine(ctx context.Context, routine domain.WorkoutRoutine) error {
	exercises, err := marshalExercises(routine.Exercises)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE routines SET name=$2, description=$3, exercises=$4, updated_at=$5 WHERE routine_id=$1`,
		routine.ID, routine.Name, routine.Description, exercises, routine.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRoutineNotFound
	}
	return nil
}

// DeleteRoutine removes a routine. Deleting a missing routine is not an error.
func (r *Repository) DeleteRoutine(ctx context.Context, routineID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM routines WHERE routine_id=$1`, routineID)
	return err
}

func scanRoutine(row pgx.Row) (domain.WorkoutRoutine, error) {
	var (
		routine domain.WorkoutRoutine
		raw     []byte
	)
	if err := row.Scan(&routine.ID, &routine.UserID, &routine.Name, &routine.Description, &raw, &routine.CreatedAt, &routine.UpdatedAt); err != nil {
		return domain.WorkoutRoutine{}, err
	}
	routine.Exercises = make([]domain.Exercise, 0)
	if err := json.Unmarshal(raw, &routine.Exercises); err != nil {
		return domain.WorkoutRoutine{}, err
	}
	return routine, nil
}

func marshalExercises(exercises []domain.Exercise) ([]byte, error) {
	if exercises == nil {
		exercises = []domain.Exercise{}
	}
	return json.Marshal(exercises)
}
