package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/kevin0018/LiftPath/internal/domain"
)

func TestRecordProgressRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := asUser("alice")
	routine := f.routine(t, "alice", "Push", exercise("Bench"))
	exID := routine.Exercises[0].ID

	first, err := f.service.RecordProgress(ctx, routine.ID, exID, domain.ProgressInput{Reps: "5", Weight: "100"})
	require.NoError(t, err)

	f.now = f.now.Add(24 * time.Hour)
	latest, err := f.service.RecordProgress(ctx, routine.ID, exID, domain.ProgressInput{Reps: "6", Weight: "102.5", Notes: "paused reps"})
	require.NoError(t, err)

	history, err := f.service.ProgressHistory(ctx, routine.ID, exID, 3)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, *latest, history[0])
	require.Equal(t, *first, history[1])
	require.Equal(t, "alice", history[0].UserID)
	require.Equal(t, "paused reps", history[0].Notes)
	require.Equal(t, f.now, history[0].Date)
}

func TestRecordProgressUpdatesExerciseSummary(t *testing.T) {
	f := newFixture(t)
	ctx := asUser("alice")
	routine := f.routine(t, "alice", "Push", exercise("Bench"), exercise("Dip"))
	exID := routine.Exercises[0].ID

	_, err := f.service.RecordProgress(ctx, routine.ID, exID, domain.ProgressInput{Reps: "5", Weight: "100"})
	require.NoError(t, err)
	_, err = f.service.RecordProgress(ctx, routine.ID, exID, domain.ProgressInput{Reps: "8"})
	require.NoError(t, err)

	got, err := f.service.GetRoutine(ctx, routine.ID)
	require.NoError(t, err)
	bench := got.Exercises[0]
	require.Equal(t, "8", bench.CurrentReps)
	require.Equal(t, "100", bench.CurrentWeight)
	require.NotNil(t, bench.LastPerformed)
	require.Equal(t, f.now, *bench.LastPerformed)
	require.Nil(t, got.Exercises[1].LastPerformed)
}

func TestRecordProgressToleratesRoutineRefreshFailure(t *testing.T) {
	f := newFixture(t)
	routine := f.routine(t, "alice", "Push", exercise("Bench"))
	exID := routine.Exercises[0].ID

	store := &storeWithErrors{Store: f.store, updateRoutineErr: errors.New("routine row locked")}
	logger, hook := test.NewNullLogger()
	service := domain.NewService(store, contextUser,
		domain.WithClock(func() time.Time { return monday }),
		domain.WithLogger(logger),
	)

	entry, err := service.RecordProgress(asUser("alice"), routine.ID, exID, domain.ProgressInput{Reps: "6"})
	require.NoError(t, err)
	require.NotNil(t, entry)

	history, err := service.ProgressHistory(asUser("alice"), routine.ID, exID, 0)
	require.NoError(t, err)
	require.Equal(t, []domain.ProgressEntry{*entry}, history)

	got, err := service.GetRoutine(asUser("alice"), routine.ID)
	require.NoError(t, err)
	require.Nil(t, got.Exercises[0].LastPerformed, "routine keeps its previous state")

	last := hook.LastEntry()
	require.NotNil(t, last)
	require.Equal(t, logrus.WarnLevel, last.Level)
	require.Equal(t, routine.ID, last.Data["routine_id"])
	require.Equal(t, exID, last.Data["exercise_id"])
	require.Equal(t, entry.ID, last.Data["entry_id"])
}

func TestProgressHistoryLimit(t *testing.T) {
	f := newFixture(t)
	ctx := asUser("alice")
	routine := f.routine(t, "alice", "Push", exercise("Bench"))
	exID := routine.Exercises[0].ID

	for _, reps := range []string{"5", "6", "7", "8"} {
		_, err := f.service.RecordProgress(ctx, routine.ID, exID, domain.ProgressInput{Reps: reps})
		require.NoError(t, err)
	}

	recent, err := f.service.ProgressHistory(ctx, routine.ID, exID, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	require.Equal(t, "8", recent[0].Reps)
	require.Equal(t, "6", recent[2].Reps)

	all, err := f.service.ProgressHistory(ctx, routine.ID, exID, 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
}

func TestRecordProgressErrors(t *testing.T) {
	f := newFixture(t)
	routine := f.routine(t, "alice", "Push", exercise("Bench"))
	exID := routine.Exercises[0].ID

	_, err := f.service.RecordProgress(asUser("bob"), routine.ID, exID, domain.ProgressInput{Reps: "5"})
	require.ErrorIs(t, err, domain.ErrNotAuthorized)

	_, err = f.service.RecordProgress(asUser("alice"), "missing", exID, domain.ProgressInput{Reps: "5"})
	require.ErrorIs(t, err, domain.ErrRoutineNotFound)

	_, err = f.service.RecordProgress(asUser("alice"), routine.ID, "missing", domain.ProgressInput{Reps: "5"})
	require.ErrorIs(t, err, domain.ErrExerciseNotFound)

	_, err = f.service.RecordProgress(asUser("alice"), routine.ID, exID, domain.ProgressInput{Notes: "nothing logged"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.service.ProgressHistory(asUser("bob"), routine.ID, exID, 3)
	require.ErrorIs(t, err, domain.ErrNotAuthorized)
}
