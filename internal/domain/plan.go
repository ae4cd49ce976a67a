package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GetWeeklyPlan returns the caller's plan, or nil when none exists yet.
func (s *Service) GetWeeklyPlan(ctx context.Context) (*WeeklyPlanConfig, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}
	plan, err := s.store.FindWeeklyPlan(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find weekly plan: %w", err)
	}
	return plan, nil
}

// SaveWeeklyPlan creates or updates the caller's plan. Every non-empty
// routine id in the patch must reference a routine the caller owns.
func (s *Service) SaveWeeklyPlan(ctx context.Context, patch WeeklyPlanPatch) (*WeeklyPlanConfig, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}
	for day, routineID := range patch {
		if day < time.Sunday || day > time.Saturday {
			return nil, fmt.Errorf("%w: unknown weekday %d", ErrInvalidInput, day)
		}
		if routineID == "" {
			continue
		}
		if _, err := s.ownedRoutine(ctx, userID, routineID); err != nil {
			return nil, fmt.Errorf("%s: %w", WeekdayName(day), err)
		}
	}
	return s.saveWeeklyPlan(ctx, userID, patch)
}

// RoutineForDay returns the routine assigned to day, or "" for rest days and
// users without a plan.
func (s *Service) RoutineForDay(ctx context.Context, day time.Weekday) (string, error) {
	plan, err := s.GetWeeklyPlan(ctx)
	if err != nil {
		return "", err
	}
	if plan == nil {
		return "", nil
	}
	return plan.RoutineFor(day), nil
}

// saveWeeklyPlan looks the plan up first and then creates or updates it, so a
// user never ends up with two plan documents.
func (s *Service) saveWeeklyPlan(ctx context.Context, userID string, patch WeeklyPlanPatch) (*WeeklyPlanConfig, error) {
	existing, err := s.store.FindWeeklyPlan(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find weekly plan: %w", err)
	}

	now := s.timestamp()
	plan := WeeklyPlanConfig{ID: uuid.NewString(), UserID: userID, CreatedAt: now}
	if existing != nil {
		plan = *existing
	}
	for day, routineID := range patch {
		plan.Assign(day, routineID)
	}
	plan.UpdatedAt = now

	saved, err := s.store.UpsertWeeklyPlan(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("save weekly plan: %w", err)
	}
	return saved, nil
}
