// Package memory provides an in-process domain.Store for local development
// and tests.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/kevin0018/LiftPath/internal/domain"
)

// Store keeps every document in memory. Returned values are copies.
type Store struct {
	mu       sync.RWMutex
	routines map[string]domain.WorkoutRoutine
	plans    map[string]domain.WeeklyPlanConfig
	workouts map[string]domain.DailyWorkout
	byDate   map[workoutKey]string
	progress []domain.ProgressEntry
	changes  []domain.ExerciseStatusChange
}

type workoutKey struct {
	userID string
	date   string
}

var _ domain.Store = (*Store)(nil)

// NewStore constructs an empty store.
func NewStore() *Store {
	return &Store{
		routines: make(map[string]domain.WorkoutRoutine),
		plans:    make(map[string]domain.WeeklyPlanConfig),
		workouts: make(map[string]domain.DailyWorkout),
		byDate:   make(map[workoutKey]string),
	}
}

// ListRoutinesByOwner implements domain.RoutineStore. Routines are returned
// most recently updated first, ties broken by id.
func (s *Store) ListRoutinesByOwner(_ context.Context, userID string) ([]domain.WorkoutRoutine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.WorkoutRoutine, 0)
	for _, r := range s.routines {
		if r.UserID == userID {
			out = append(out, r.Clone())
		}
	}
	slices.SortFunc(out, func(a, b domain.WorkoutRoutine) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

// GetRoutine implements domain.RoutineStore.
func (s *Store) GetRoutine(_ context.Context, routineID string) (*domain.WorkoutRoutine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.routines[routineID]
	if !ok {
		return nil, nil
	}
	clone := r.Clone()
	return &clone, nil
}

// CreateRoutine implements domain.RoutineStore.
func (s *Store) CreateRoutine(_ context.Context, routine domain.WorkoutRoutine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routines[routine.ID] = routine.Clone()
	return nil
}

// UpdateRoutine implements domain.RoutineStore.
func (s *Store) UpdateRoutine(_ context.Context, routine domain.WorkoutRoutine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.routines[routine.ID]; !ok {
		return domain.ErrRoutineNotFound
	}
	s.routines[routine.ID] = routine.Clone()
	return nil
}

// DeleteRoutine implements domain.RoutineStore.
func (s *Store) DeleteRoutine(_ context.Context, routineID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.routines, routineID)
	return nil
}

// FindWeeklyPlan implements domain.WeeklyPlanStore.
func (s *Store) FindWeeklyPlan(_ context.Context, userID string) (*domain.WeeklyPlanConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	plan, ok := s.plans[userID]
	if !ok {
		return nil, nil
	}
	return &plan, nil
}

// UpsertWeeklyPlan implements domain.WeeklyPlanStore. The first plan stored
// for a user keeps its id and creation time.
func (s *Store) UpsertWeeklyPlan(_ context.Context, plan domain.WeeklyPlanConfig) (*domain.WeeklyPlanConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.plans[plan.UserID]; ok {
		plan.ID = existing.ID
		plan.CreatedAt = existing.CreatedAt
	}
	s.plans[plan.UserID] = plan
	return &plan, nil
}

// FindDailyWorkout implements domain.DailyWorkoutStore.
func (s *Store) FindDailyWorkout(_ context.Context, userID, date string) (*domain.DailyWorkout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byDate[workoutKey{userID: userID, date: date}]
	if !ok {
		return nil, nil
	}
	w := s.workouts[id].Clone()
	return &w, nil
}

// GetDailyWorkoutByID implements domain.DailyWorkoutStore.
func (s *Store) GetDailyWorkoutByID(_ context.Context, workoutID string) (*domain.DailyWorkout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.workouts[workoutID]
	if !ok {
		return nil, nil
	}
	clone := w.Clone()
	return &clone, nil
}

// CreateDailyWorkout implements domain.DailyWorkoutStore.
func (s *Store) CreateDailyWorkout(_ context.Context, workout domain.DailyWorkout) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := workoutKey{userID: workout.UserID, date: workout.Date}
	if _, ok := s.byDate[key]; ok {
		return domain.ErrAlreadyExists
	}
	s.workouts[workout.ID] = workout.Clone()
	s.byDate[key] = workout.ID
	return nil
}

// UpdateDailyWorkout implements domain.DailyWorkoutStore.
func (s *Store) UpdateDailyWorkout(_ context.Context, workout domain.DailyWorkout, change domain.ExerciseStatusChange) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.workouts[workout.ID]; !ok {
		return domain.ErrWorkoutNotFound
	}
	s.workouts[workout.ID] = workout.Clone()
	s.changes = append(s.changes, change)
	return nil
}

// ListDailyWorkouts implements domain.DailyWorkoutStore.
func (s *Store) ListDailyWorkouts(_ context.Context, userID, from, to string) ([]domain.DailyWorkout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.DailyWorkout, 0)
	for _, w := range s.workouts {
		if w.UserID == userID && w.Date >= from && w.Date <= to {
			out = append(out, w.Clone())
		}
	}
	return out, nil
}

// AppendProgressEntry implements domain.ProgressStore.
func (s *Store) AppendProgressEntry(_ context.Context, entry domain.ProgressEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress = append(s.progress, entry)
	return nil
}

// ListProgressEntries implements domain.ProgressStore, newest first.
func (s *Store) ListProgressEntries(_ context.Context, routineID, exerciseID string, limit int) ([]domain.ProgressEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.ProgressEntry, 0)
	for i := len(s.progress) - 1; i >= 0; i-- {
		entry := s.progress[i]
		if entry.RoutineID != routineID || entry.ExerciseID != exerciseID {
			continue
		}
		out = append(out, entry)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// StatusChanges returns the exercise status changes recorded so far.
func (s *Store) StatusChanges() []domain.ExerciseStatusChange {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.ExerciseStatusChange(nil), s.changes...)
}
