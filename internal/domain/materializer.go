package domain

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/kevin0018/LiftPath/internal/observability"
)

// GetOrCreateDailyWorkout returns the caller's workout for date, creating it
// from the weekly plan when date is today. A nil workout with a nil error
// means no workout applies: a rest day, a stale routine reference, or a date
// other than today without a stored record.
func (s *Service) GetOrCreateDailyWorkout(ctx context.Context, date string) (*DailyWorkout, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}
	day, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	date = day.Format(DateLayout)

	existing, err := s.store.FindDailyWorkout(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("find daily workout: %w", err)
	}
	if existing != nil {
		observability.RecordMaterialization(observability.OutcomeExisting)
		return existing, nil
	}
	if date != s.Today() {
		observability.RecordMaterialization(observability.OutcomeNotToday)
		return nil, nil
	}

	plan, err := s.store.FindWeeklyPlan(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find weekly plan: %w", err)
	}
	if plan == nil {
		plan, err = s.initializeWeeklyPlan(ctx, userID, PPLRoutines{})
		if err != nil {
			return nil, fmt.Errorf("initialize weekly plan: %w", err)
		}
	}

	routineID := plan.RoutineFor(day.Weekday())
	if routineID == "" {
		observability.RecordMaterialization(observability.OutcomeRest)
		return nil, nil
	}

	routine, err := s.store.GetRoutine(ctx, routineID)
	if err != nil {
		return nil, fmt.Errorf("get routine %s: %w", routineID, err)
	}
	if routine == nil || routine.UserID != userID {
		observability.RecordMaterialization(observability.OutcomeStaleRoutine)
		s.logger.WithFields(log.Fields{
			"user_id":    userID,
			"routine_id": routineID,
			"date":       date,
		}).Warn("weekly plan references a missing routine")
		return nil, nil
	}

	workout := s.snapshot(userID, day, *routine)
	if err := s.store.CreateDailyWorkout(ctx, workout); err != nil {
		if !errors.Is(err, ErrAlreadyExists) {
			return nil, fmt.Errorf("create daily workout: %w", err)
		}
		// A concurrent request materialized the same date first.
		winner, findErr := s.store.FindDailyWorkout(ctx, userID, date)
		if findErr != nil {
			return nil, fmt.Errorf("find daily workout after conflict: %w", findErr)
		}
		if winner == nil {
			return nil, ErrAlreadyExists
		}
		observability.RecordMaterialization(observability.OutcomeExisting)
		return winner, nil
	}
	observability.RecordMaterialization(observability.OutcomeCreated)
	return &workout, nil
}

// GenerateTodaysWorkout materializes the workout for the current date.
func (s *Service) GenerateTodaysWorkout(ctx context.Context) (*DailyWorkout, error) {
	return s.GetOrCreateDailyWorkout(ctx, s.Today())
}

// GetDailyWorkout looks up the caller's workout for date without creating it.
func (s *Service) GetDailyWorkout(ctx context.Context, date string) (*DailyWorkout, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}
	day, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	workout, err := s.store.FindDailyWorkout(ctx, userID, day.Format(DateLayout))
	if err != nil {
		return nil, fmt.Errorf("find daily workout: %w", err)
	}
	return workout, nil
}

// CreateDailyWorkout materializes routineID for an arbitrary date. It fails
// with ErrAlreadyExists when the caller already has a workout for date.
func (s *Service) CreateDailyWorkout(ctx context.Context, date, routineID string) (*DailyWorkout, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}
	day, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	existing, err := s.store.FindDailyWorkout(ctx, userID, day.Format(DateLayout))
	if err != nil {
		return nil, fmt.Errorf("find daily workout: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyExists
	}
	routine, err := s.ownedRoutine(ctx, userID, routineID)
	if err != nil {
		return nil, err
	}

	workout := s.snapshot(userID, day, *routine)
	if err := s.store.CreateDailyWorkout(ctx, workout); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("create daily workout: %w", err)
	}
	observability.RecordMaterialization(observability.OutcomeCreated)
	return &workout, nil
}

// ListDailyWorkouts returns the caller's workouts between from and to
// inclusive, oldest first.
func (s *Service) ListDailyWorkouts(ctx context.Context, from, to string) ([]DailyWorkout, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}
	start, err := ParseDate(from)
	if err != nil {
		return nil, err
	}
	end, err := ParseDate(to)
	if err != nil {
		return nil, err
	}
	if start.After(end) {
		return nil, fmt.Errorf("%w: from %s is after to %s", ErrInvalidInput, from, to)
	}

	workouts, err := s.store.ListDailyWorkouts(ctx, userID, start.Format(DateLayout), end.Format(DateLayout))
	if err != nil {
		return nil, fmt.Errorf("list daily workouts: %w", err)
	}
	slices.SortFunc(workouts, func(a, b DailyWorkout) int {
		return strings.Compare(a.Date, b.Date)
	})
	return workouts, nil
}

// snapshot freezes the routine's exercises into a pending checklist for day.
// Missing sets, reps or weight are replaced by their defaults here and
// nowhere else.
func (s *Service) snapshot(userID string, day time.Time, routine WorkoutRoutine) DailyWorkout {
	exercises := make([]DailyExercise, 0, len(routine.Exercises))
	for _, ex := range routine.Exercises {
		exercises = append(exercises, DailyExercise{
			ID:         uuid.NewString(),
			RoutineID:  routine.ID,
			ExerciseID: ex.ID,
			Name:       ex.Name,
			Sets:       positiveOr(ex.Sets, DefaultSets),
			Reps:       nonBlankOr(ex.Reps, DefaultReps),
			Weight:     nonBlankOr(ex.Weight, DefaultWeight),
			Status:     ExerciseStatusPending,
		})
	}

	now := s.timestamp()
	return DailyWorkout{
		ID:          uuid.NewString(),
		UserID:      userID,
		Date:        day.Format(DateLayout),
		DayOfWeek:   DayOfWeek(day),
		RoutineID:   routine.ID,
		RoutineName: routine.Name,
		Exercises:   exercises,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func positiveOr(o Optional[int], fallback int) int {
	if v, ok := o.Get(); ok && v > 0 {
		return v
	}
	return fallback
}

func nonBlankOr(o Optional[string], fallback string) string {
	if v, ok := o.Get(); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}
