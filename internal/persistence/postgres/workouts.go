package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/kevin0018/LiftPath/internal/domain"
	"github.com/kevin0018/LiftPath/internal/events"
)

const workoutColumns = `workout_id, user_id, workout_date, day_of_week, routine_id, routine_name, exercises, completed, created_at, updated_at`

// FindDailyWorkout returns the user's workout for date, or nil.
func (r *Repository) FindDailyWorkout(ctx context.Context, userID, date string) (*domain.DailyWorkout, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+workoutColumns+` FROM daily_workouts WHERE user_id=$1 AND workout_date=$2`, userID, date)
	return optionalWorkout(scanWorkout(row))
}

// GetDailyWorkoutByID returns a workout by id, or nil.
func (r *Repository) GetDailyWorkoutByID(ctx context.Context, workoutID string) (*domain.DailyWorkout, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+workoutColumns+` FROM daily_workouts WHERE workout_id=$1`, workoutID)
	return optionalWorkout(scanWorkout(row))
}

// CreateDailyWorkout inserts the workout and its creation event in one
// transaction. A second workout for the same user and date fails with
// domain.ErrAlreadyExists.
func (r *Repository) CreateDailyWorkout(ctx context.Context, workout domain.DailyWorkout) error {
	exercises, err := marshalDailyExercises(workout.Exercises)
	if err != nil {
		return err
	}

	err = r.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `INSERT INTO daily_workouts (`+workoutColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
			workout.ID,
			workout.UserID,
			workout.Date,
			workout.DayOfWeek,
			workout.RoutineID,
			workout.RoutineName,
			exercises,
			workout.Completed,
			workout.CreatedAt,
			workout.UpdatedAt,
		); err != nil {
			return err
		}

		return r.insertOutbox(ctx, tx, outboxEvent{
			userID:        workout.UserID,
			aggregateType: "daily_workout",
			aggregateID:   workout.ID,
			eventType:     events.TypeDailyWorkoutCreated,
			partitionKey:  workout.UserID,
			payload: events.DailyWorkoutCreated{
				WorkoutID:     workout.ID,
				UserID:        workout.UserID,
				Date:          workout.Date,
				DayOfWeek:     workout.DayOfWeek,
				RoutineID:     workout.RoutineID,
				RoutineName:   workout.RoutineName,
				ExerciseCount: len(workout.Exercises),
				CreatedAt:     workout.CreatedAt,
			},
		})
	})
	if isUniqueViolation(err) {
		return domain.ErrAlreadyExists
	}
	return err
}

// UpdateDailyWorkout rewrites the exercise list and completion flag. Applied
// status changes are recorded in the outbox in the same transaction.
func (r *Repository) UpdateDailyWorkout(ctx context.Context, workout domain.DailyWorkout, change domain.ExerciseStatusChange) error {
	exercises, err := marshalDailyExercises(workout.Exercises)
	if err != nil {
		return err
	}

	return r.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE daily_workouts SET exercises=$2, completed=$3, updated_at=$4 WHERE workout_id=$1`,
			workout.ID, exercises, workout.Completed, workout.UpdatedAt,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrWorkoutNotFound
		}
		if !change.Applied {
			return nil
		}

		return r.insertOutbox(ctx, tx, outboxEvent{
			userID:        change.UserID,
			aggregateType: "daily_workout",
			aggregateID:   change.WorkoutID,
			eventType:     events.TypeExerciseStatusChanged,
			partitionKey:  change.WorkoutID,
			payload: events.ExerciseStatusChanged{
				WorkoutID:        change.WorkoutID,
				UserID:           change.UserID,
				ExerciseID:       change.ExerciseID,
				Status:           string(change.Status),
				Applied:          change.Applied,
				WorkoutCompleted: change.WorkoutCompleted,
				OccurredAt:       change.OccurredAt,
			},
		})
	})
}

// ListDailyWorkouts returns the user's workouts with from <= date <= to.
func (r *Repository) ListDailyWorkouts(ctx context.Context, userID, from, to string) ([]domain.DailyWorkout, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+workoutColumns+` FROM daily_workouts
        WHERE user_id=$1 AND workout_date >= $2 AND workout_date <= $3
        ORDER BY workout_date`,
		userID, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts := make([]domain.DailyWorkout, 0)
	for rows.Next() {
		workout, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, workout)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return workouts, nil
}

func scanWorkout(row pgx.Row) (domain.DailyWorkout, error) {
	var (
		w   domain.DailyWorkout
		raw []byte
	)
	if err := row.Scan(&w.ID, &w.UserID, &w.Date, &w.DayOfWeek, &w.RoutineID, &w.RoutineName, &raw, &w.Completed, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return domain.DailyWorkout{}, err
	}
	w.Exercises = make([]domain.DailyExercise, 0)
	if err := json.Unmarshal(raw, &w.Exercises); err != nil {
		return domain.DailyWorkout{}, err
	}
	return w, nil
}

func optionalWorkout(w domain.DailyWorkout, err error) (*domain.DailyWorkout, error) {
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}

func marshalDailyExercises(exercises []domain.DailyExercise) ([]byte, error) {
	if exercises == nil {
		exercises = []domain.DailyExercise{}
	}
	return json.Marshal(exercises)
}
