package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kevin0018/LiftPath/internal/domain"
)

func TestCreateDailyWorkoutRejectsDuplicateDate(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	first := domain.DailyWorkout{ID: "w1", UserID: "alice", Date: "2024-06-03"}
	require.NoError(t, store.CreateDailyWorkout(ctx, first))

	err := store.CreateDailyWorkout(ctx, domain.DailyWorkout{ID: "w2", UserID: "alice", Date: "2024-06-03"})
	require.ErrorIs(t, err, domain.ErrAlreadyExists)

	require.NoError(t, store.CreateDailyWorkout(ctx, domain.DailyWorkout{ID: "w3", UserID: "bob", Date: "2024-06-03"}))

	found, err := store.FindDailyWorkout(ctx, "alice", "2024-06-03")
	require.NoError(t, err)
	require.Equal(t, "w1", found.ID)
}

func TestReturnedDocumentsAreCopies(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.CreateRoutine(ctx, domain.WorkoutRoutine{
		ID:        "r1",
		UserID:    "alice",
		Name:      "Push",
		Exercises: []domain.Exercise{{ID: "e1", Name: "Bench"}},
	}))

	got, err := store.GetRoutine(ctx, "r1")
	require.NoError(t, err)
	got.Exercises[0].Name = "mutated"

	again, err := store.GetRoutine(ctx, "r1")
	require.NoError(t, err)
	require.Equal(t, "Bench", again.Exercises[0].Name)
}

func TestListRoutinesByOwnerMostRecentlyUpdatedFirst(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	base := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)

	for _, r := range []struct {
		id      string
		updated time.Duration
	}{
		{"r-old", 0},
		{"r-new", 3 * time.Hour},
		{"r-mid-b", time.Hour},
		{"r-mid-a", time.Hour},
	} {
		require.NoError(t, store.CreateRoutine(ctx, domain.WorkoutRoutine{
			ID: r.id, UserID: "alice", Name: r.id, CreatedAt: base, UpdatedAt: base.Add(r.updated),
		}))
	}
	require.NoError(t, store.CreateRoutine(ctx, domain.WorkoutRoutine{ID: "r-bob", UserID: "bob", UpdatedAt: base}))

	for range 5 {
		routines, err := store.ListRoutinesByOwner(ctx, "alice")
		require.NoError(t, err)

		ids := make([]string, 0, len(routines))
		for _, r := range routines {
			ids = append(ids, r.ID)
		}
		require.Equal(t, []string{"r-new", "r-mid-a", "r-mid-b", "r-old"}, ids)
	}
}

func TestUpsertWeeklyPlanKeepsIdentity(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	created := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := store.UpsertWeeklyPlan(ctx, domain.WeeklyPlanConfig{ID: "p1", UserID: "alice", Monday: "r1", CreatedAt: created})
	require.NoError(t, err)

	saved, err := store.UpsertWeeklyPlan(ctx, domain.WeeklyPlanConfig{ID: "p2", UserID: "alice", Monday: "r2"})
	require.NoError(t, err)
	require.Equal(t, "p1", saved.ID)
	require.Equal(t, created, saved.CreatedAt)
	require.Equal(t, "r2", saved.Monday)
}

func TestListProgressEntriesNewestFirst(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	for _, id := range []string{"p1", "p2", "p3", "p4"} {
		require.NoError(t, store.AppendProgressEntry(ctx, domain.ProgressEntry{ID: id, RoutineID: "r1", ExerciseID: "e1"}))
	}
	require.NoError(t, store.AppendProgressEntry(ctx, domain.ProgressEntry{ID: "other", RoutineID: "r1", ExerciseID: "e2"}))

	entries, err := store.ListProgressEntries(ctx, "r1", "e1", 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, "p4", entries[0].ID)
	require.Equal(t, "p2", entries[2].ID)

	all, err := store.ListProgressEntries(ctx, "r1", "e1", 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
}

func TestListDailyWorkoutsFiltersRange(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	for i, date := range []string{"2024-06-01", "2024-06-03", "2024-06-09"} {
		require.NoError(t, store.CreateDailyWorkout(ctx, domain.DailyWorkout{
			ID:     string(rune('a' + i)),
			UserID: "alice",
			Date:   date,
		}))
	}

	workouts, err := store.ListDailyWorkouts(ctx, "alice", "2024-06-02", "2024-06-09")
	require.NoError(t, err)
	require.Len(t, workouts, 2)
}
