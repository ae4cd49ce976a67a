package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kevin0018/LiftPath/internal/domain"
)

func threeExerciseWorkout(t *testing.T, f *fixture) *domain.DailyWorkout {
	t.Helper()
	routine := f.routine(t, "alice", "Full Body", exercise("Squat"), exercise("Bench"), exercise("Row"))
	workout, err := f.service.CreateDailyWorkout(asUser("alice"), "2024-06-03", routine.ID)
	require.NoError(t, err)
	return workout
}

func strPtr(s string) *string { return &s }

func TestSetExerciseStatusCompletesWorkout(t *testing.T) {
	f := newFixture(t)
	ctx := asUser("alice")
	workout := threeExerciseWorkout(t, f)
	ex := workout.Exercises

	_, err := f.service.SetExerciseStatus(ctx, workout.ID, ex[1].ID, domain.ExerciseStatusSkipped, nil)
	require.NoError(t, err)
	partial, err := f.service.SetExerciseStatus(ctx, workout.ID, ex[2].ID, domain.ExerciseStatusSkipped, nil)
	require.NoError(t, err)
	require.False(t, partial.Completed)

	f.now = f.now.Add(45 * time.Minute)
	done, err := f.service.SetExerciseStatus(ctx, workout.ID, ex[0].ID, domain.ExerciseStatusCompleted, strPtr("felt strong"))
	require.NoError(t, err)
	require.True(t, done.Completed)
	require.Equal(t, "felt strong", done.Exercises[0].Notes)
	require.NotNil(t, done.Exercises[0].CompletedAt)
	require.Equal(t, f.now, *done.Exercises[0].CompletedAt)
	require.Equal(t, f.now, done.UpdatedAt)
	require.Nil(t, done.Exercises[1].CompletedAt)

	reopened, err := f.service.SetExerciseStatus(ctx, workout.ID, ex[0].ID, domain.ExerciseStatusPending, nil)
	require.NoError(t, err)
	require.False(t, reopened.Completed)
	require.Nil(t, reopened.Exercises[0].CompletedAt)
	require.Equal(t, "felt strong", reopened.Exercises[0].Notes)

	stored, err := f.service.GetDailyWorkout(ctx, "2024-06-03")
	require.NoError(t, err)
	require.Equal(t, reopened.Exercises, stored.Exercises)
	require.False(t, stored.Completed)

	changes := f.store.StatusChanges()
	require.Len(t, changes, 4)
	require.True(t, changes[2].WorkoutCompleted)
	require.Equal(t, domain.ExerciseStatusPending, changes[3].Status)
}

func TestSetExerciseStatusUnknownExerciseIsNoop(t *testing.T) {
	f := newFixture(t)
	ctx := asUser("alice")
	workout := threeExerciseWorkout(t, f)

	got, err := f.service.SetExerciseStatus(ctx, workout.ID, "ex-missing", domain.ExerciseStatusCompleted, strPtr("ignored"))
	require.NoError(t, err)
	require.Equal(t, workout.Exercises, got.Exercises)
	require.False(t, got.Completed)

	changes := f.store.StatusChanges()
	require.Len(t, changes, 1)
	require.False(t, changes[0].Applied)
}

func TestSetExerciseStatusErrors(t *testing.T) {
	f := newFixture(t)
	workout := threeExerciseWorkout(t, f)
	exID := workout.Exercises[0].ID

	_, err := f.service.SetExerciseStatus(asUser("alice"), "missing", exID, domain.ExerciseStatusCompleted, nil)
	require.ErrorIs(t, err, domain.ErrWorkoutNotFound)

	_, err = f.service.SetExerciseStatus(asUser("alice"), workout.ID, exID, domain.ExerciseStatus("done"), nil)
	require.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = f.service.SetExerciseStatus(asUser("bob"), workout.ID, exID, domain.ExerciseStatusCompleted, nil)
	require.ErrorIs(t, err, domain.ErrNotAuthorized)
}

func TestSetExerciseStatusOnEmptyWorkout(t *testing.T) {
	f := newFixture(t)
	ctx := asUser("alice")
	routine := f.routine(t, "alice", "Empty")
	workout, err := f.service.CreateDailyWorkout(ctx, "2024-06-03", routine.ID)
	require.NoError(t, err)

	got, err := f.service.SetExerciseStatus(ctx, workout.ID, "anything", domain.ExerciseStatusSkipped, nil)
	require.NoError(t, err)
	require.True(t, got.Completed)
}
