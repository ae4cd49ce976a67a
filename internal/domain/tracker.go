package domain

import (
	"context"
	"fmt"

	"github.com/kevin0018/LiftPath/internal/observability"
)

// SetExerciseStatus updates one exercise of a daily workout and recomputes
// whether the workout is complete. notes replaces the exercise notes only
// when non-nil. An exerciseID that matches nothing leaves the exercise list
// unchanged and is not an error.
func (s *Service) SetExerciseStatus(ctx context.Context, workoutID, exerciseID string, status ExerciseStatus, notes *string) (*DailyWorkout, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	workout, err := s.store.GetDailyWorkoutByID(ctx, workoutID)
	if err != nil {
		return nil, fmt.Errorf("get daily workout %s: %w", workoutID, err)
	}
	if workout == nil {
		return nil, ErrWorkoutNotFound
	}
	if workout.UserID != userID {
		return nil, ErrNotAuthorized
	}

	now := s.timestamp()
	applied := false
	exercises := make([]DailyExercise, len(workout.Exercises))
	for i, ex := range workout.Exercises {
		if ex.ID == exerciseID {
			applied = true
			ex.Status = status
			ex.CompletedAt = nil
			if status == ExerciseStatusCompleted {
				ts := now
				ex.CompletedAt = &ts
			}
			if notes != nil {
				ex.Notes = *notes
			}
		}
		exercises[i] = ex
	}

	wasCompleted := workout.Completed
	workout.Exercises = exercises
	workout.Completed = allResolved(exercises)
	workout.UpdatedAt = now

	change := ExerciseStatusChange{
		WorkoutID:        workout.ID,
		UserID:           userID,
		ExerciseID:       exerciseID,
		Status:           status,
		Applied:          applied,
		WorkoutCompleted: workout.Completed,
		OccurredAt:       now,
	}
	if err := s.store.UpdateDailyWorkout(ctx, *workout, change); err != nil {
		return nil, fmt.Errorf("update daily workout %s: %w", workoutID, err)
	}
	if applied {
		observability.RecordExerciseStatus(string(status), workout.Completed && !wasCompleted)
	}
	return workout, nil
}
