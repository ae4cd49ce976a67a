package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kevin0018/LiftPath/internal/domain"
)

func TestCreateRoutineValidates(t *testing.T) {
	f := newFixture(t)
	ctx := asUser("alice")

	_, err := f.service.CreateRoutine(ctx, domain.RoutineInput{Name: "  "})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.service.CreateRoutine(ctx, domain.RoutineInput{
		Name:      "Push",
		Exercises: []domain.ExerciseInput{{Name: "Bench", Sets: domain.Some(0)}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListRoutinesNewestFirstAndOwnerScoped(t *testing.T) {
	f := newFixture(t)
	older := f.routine(t, "alice", "Push")
	f.now = f.now.Add(time.Minute)
	newer := f.routine(t, "alice", "Pull")
	f.routine(t, "bob", "Legs")

	routines, err := f.service.ListRoutines(asUser("alice"))
	require.NoError(t, err)
	require.Len(t, routines, 2)
	require.Equal(t, newer.ID, routines[0].ID)
	require.Equal(t, older.ID, routines[1].ID)
}

func TestRoutineOwnershipEnforced(t *testing.T) {
	f := newFixture(t)
	routine := f.routine(t, "alice", "Push", exercise("Bench"))
	bob := asUser("bob")

	_, err := f.service.GetRoutine(bob, routine.ID)
	require.ErrorIs(t, err, domain.ErrNotAuthorized)

	_, err = f.service.AddExercise(bob, routine.ID, exercise("Dip"))
	require.ErrorIs(t, err, domain.ErrNotAuthorized)

	require.ErrorIs(t, f.service.DeleteRoutine(bob, routine.ID), domain.ErrNotAuthorized)

	_, err = f.service.GetRoutine(bob, "missing")
	require.ErrorIs(t, err, domain.ErrRoutineNotFound)
}

func TestExerciseLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := asUser("alice")
	routine := f.routine(t, "alice", "Push", exercise("Bench"))

	added, err := f.service.AddExercise(ctx, routine.ID, domain.ExerciseInput{Name: "Dip"})
	require.NoError(t, err)
	require.False(t, added.Sets.IsSet())

	updated, err := f.service.UpdateExercise(ctx, routine.ID, added.ID, domain.ExerciseInput{Name: "Weighted Dip", Reps: domain.Some("6-8")})
	require.NoError(t, err)
	require.Equal(t, added.ID, updated.ID)
	require.Equal(t, "Weighted Dip", updated.Name)

	_, err = f.service.UpdateExercise(ctx, routine.ID, "missing", exercise("X"))
	require.ErrorIs(t, err, domain.ErrExerciseNotFound)

	require.NoError(t, f.service.DeleteExercise(ctx, routine.ID, routine.Exercises[0].ID))
	got, err := f.service.GetRoutine(ctx, routine.ID)
	require.NoError(t, err)
	require.Len(t, got.Exercises, 1)
	require.Equal(t, "Weighted Dip", got.Exercises[0].Name)

	name := "Push A"
	renamed, err := f.service.UpdateRoutine(ctx, routine.ID, domain.RoutinePatch{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Push A", renamed.Name)

	require.NoError(t, f.service.DeleteRoutine(ctx, routine.ID))
	_, err = f.service.GetRoutine(ctx, routine.ID)
	require.ErrorIs(t, err, domain.ErrRoutineNotFound)
}
