package domain

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// RoutineInput captures the editable fields of a routine.
type RoutineInput struct {
	Name        string
	Description string
	Exercises   []ExerciseInput
}

// RoutinePatch updates routine metadata; nil fields are left untouched.
type RoutinePatch struct {
	Name        *string
	Description *string
}

// ExerciseInput captures the editable fields of an exercise.
type ExerciseInput struct {
	Name   string
	Sets   Optional[int]
	Reps   Optional[string]
	Weight Optional[string]
	Notes  string
}

// Validate ensures the exercise can be stored.
func (in ExerciseInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: exercise name is required", ErrInvalidInput)
	}
	if sets, ok := in.Sets.Get(); ok && sets <= 0 {
		return fmt.Errorf("%w: sets must be > 0", ErrInvalidInput)
	}
	return nil
}

func (in ExerciseInput) apply(ex Exercise) Exercise {
	ex.Name = strings.TrimSpace(in.Name)
	ex.Sets = in.Sets
	ex.Reps = in.Reps
	ex.Weight = in.Weight
	ex.Notes = in.Notes
	return ex
}

// ListRoutines returns the caller's routines, most recently updated first.
func (s *Service) ListRoutines(ctx context.Context) ([]WorkoutRoutine, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}
	routines, err := s.store.ListRoutinesByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list routines: %w", err)
	}
	slices.SortStableFunc(routines, func(a, b WorkoutRoutine) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return routines, nil
}

// GetRoutine fetches a routine owned by the caller.
func (s *Service) GetRoutine(ctx context.Context, routineID string) (*WorkoutRoutine, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}
	return s.ownedRoutine(ctx, userID, routineID)
}

// CreateRoutine stores a new routine for the caller.
func (s *Service) CreateRoutine(ctx context.Context, input RoutineInput) (*WorkoutRoutine, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}
	return s.createRoutine(ctx, userID, input)
}

func (s *Service) createRoutine(ctx context.Context, userID string, input RoutineInput) (*WorkoutRoutine, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: routine name is required", ErrInvalidInput)
	}

	exercises := make([]Exercise, 0, len(input.Exercises))
	for _, in := range input.Exercises {
		if err := in.Validate(); err != nil {
			return nil, err
		}
		exercises = append(exercises, in.apply(Exercise{ID: uuid.NewString()}))
	}

	now := s.timestamp()
	routine := WorkoutRoutine{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		UserID:      userID,
		Exercises:   exercises,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateRoutine(ctx, routine); err != nil {
		return nil, fmt.Errorf("create routine: %w", err)
	}
	return &routine, nil
}

// UpdateRoutine changes a routine's name or description.
func (s *Service) UpdateRoutine(ctx context.Context, routineID string, patch RoutinePatch) (*WorkoutRoutine, error) {
	return s.mutateRoutine(ctx, routineID, func(routine *WorkoutRoutine) error {
		if patch.Name != nil {
			name := strings.TrimSpace(*patch.Name)
			if name == "" {
				return fmt.Errorf("%w: routine name is required", ErrInvalidInput)
			}
			routine.Name = name
		}
		if patch.Description != nil {
			routine.Description = *patch.Description
		}
		return nil
	})
}

// DeleteRoutine removes a routine owned by the caller. Weekly plans that
// still reference it degrade to rest days when materialized.
func (s *Service) DeleteRoutine(ctx context.Context, routineID string) error {
	userID, err := s.userID(ctx)
	if err != nil {
		return err
	}
	if _, err := s.ownedRoutine(ctx, userID, routineID); err != nil {
		return err
	}
	if err := s.store.DeleteRoutine(ctx, routineID); err != nil {
		return fmt.Errorf("delete routine %s: %w", routineID, err)
	}
	return nil
}

// AddExercise appends an exercise to a routine.
func (s *Service) AddExercise(ctx context.Context, routineID string, input ExerciseInput) (*Exercise, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	var added Exercise
	_, err := s.mutateRoutine(ctx, routineID, func(routine *WorkoutRoutine) error {
		added = input.apply(Exercise{ID: uuid.NewString()})
		routine.Exercises = append(routine.Exercises, added)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &added, nil
}

// UpdateExercise replaces the editable fields of an exercise, keeping its id
// and last-performed tracking.
func (s *Service) UpdateExercise(ctx context.Context, routineID, exerciseID string, input ExerciseInput) (*Exercise, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	var updated Exercise
	_, err := s.mutateRoutine(ctx, routineID, func(routine *WorkoutRoutine) error {
		idx := routine.exerciseIndex(exerciseID)
		if idx < 0 {
			return ErrExerciseNotFound
		}
		routine.Exercises[idx] = input.apply(routine.Exercises[idx])
		updated = routine.Exercises[idx]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteExercise removes an exercise from a routine. Daily workouts that
// already snapshotted it are not affected.
func (s *Service) DeleteExercise(ctx context.Context, routineID, exerciseID string) error {
	_, err := s.mutateRoutine(ctx, routineID, func(routine *WorkoutRoutine) error {
		idx := routine.exerciseIndex(exerciseID)
		if idx < 0 {
			return ErrExerciseNotFound
		}
		routine.Exercises = slices.Delete(routine.Exercises, idx, idx+1)
		return nil
	})
	return err
}

func (s *Service) mutateRoutine(ctx context.Context, routineID string, mutate func(*WorkoutRoutine) error) (*WorkoutRoutine, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}
	routine, err := s.ownedRoutine(ctx, userID, routineID)
	if err != nil {
		return nil, err
	}
	if err := mutate(routine); err != nil {
		return nil, err
	}
	routine.UpdatedAt = s.timestamp()
	if err := s.store.UpdateRoutine(ctx, *routine); err != nil {
		return nil, fmt.Errorf("update routine %s: %w", routineID, err)
	}
	return routine, nil
}

// ownedRoutine loads a routine and enforces that userID owns it.
func (s *Service) ownedRoutine(ctx context.Context, userID, routineID string) (*WorkoutRoutine, error) {
	routine, err := s.store.GetRoutine(ctx, routineID)
	if err != nil {
		return nil, fmt.Errorf("get routine %s: %w", routineID, err)
	}
	if routine == nil {
		return nil, ErrRoutineNotFound
	}
	if routine.UserID != userID {
		return nil, ErrNotAuthorized
	}
	return routine, nil
}

// findRoutineByKeyword returns the id of the first routine whose name
// contains keyword, ignoring case.
func findRoutineByKeyword(routines []WorkoutRoutine, keyword string) string {
	keyword = strings.ToLower(keyword)
	for _, r := range routines {
		if strings.Contains(strings.ToLower(r.Name), keyword) {
			return r.ID
		}
	}
	return ""
}
