package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kevin0018/LiftPath/internal/domain"
)

func TestSaveWeeklyPlanMergesPatches(t *testing.T) {
	f := newFixture(t)
	ctx := asUser("alice")
	a := f.routine(t, "alice", "A", exercise("Bench"))
	b := f.routine(t, "alice", "B", exercise("Squat"))

	none, err := f.service.GetWeeklyPlan(ctx)
	require.NoError(t, err)
	require.Nil(t, none)

	first, err := f.service.SaveWeeklyPlan(ctx, domain.WeeklyPlanPatch{time.Monday: a.ID, time.Wednesday: b.ID})
	require.NoError(t, err)

	f.now = f.now.Add(time.Hour)
	second, err := f.service.SaveWeeklyPlan(ctx, domain.WeeklyPlanPatch{time.Wednesday: "", time.Friday: b.ID})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, first.CreatedAt, second.CreatedAt)
	require.Equal(t, f.now, second.UpdatedAt)
	require.Equal(t, a.ID, second.Monday)
	require.Equal(t, "", second.Wednesday)
	require.Equal(t, b.ID, second.Friday)

	day, err := f.service.RoutineForDay(ctx, time.Friday)
	require.NoError(t, err)
	require.Equal(t, b.ID, day)

	rest, err := f.service.RoutineForDay(ctx, time.Sunday)
	require.NoError(t, err)
	require.Equal(t, "", rest)
}

func TestSaveWeeklyPlanRejectsForeignRoutines(t *testing.T) {
	f := newFixture(t)
	bobs := f.routine(t, "bob", "Bob's push", exercise("Bench"))

	_, err := f.service.SaveWeeklyPlan(asUser("alice"), domain.WeeklyPlanPatch{time.Monday: bobs.ID})
	require.ErrorIs(t, err, domain.ErrNotAuthorized)

	_, err = f.service.SaveWeeklyPlan(asUser("alice"), domain.WeeklyPlanPatch{time.Monday: "missing"})
	require.ErrorIs(t, err, domain.ErrRoutineNotFound)
}

func TestRoutineForDayWithoutPlan(t *testing.T) {
	f := newFixture(t)
	id, err := f.service.RoutineForDay(asUser("alice"), time.Monday)
	require.NoError(t, err)
	require.Equal(t, "", id)
}
