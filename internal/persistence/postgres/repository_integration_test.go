//go:build integration

package postgres

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/kevin0018/LiftPath/internal/domain"
	"github.com/kevin0018/LiftPath/internal/events"
)

func newTestRepository(t *testing.T) (*Repository, *pgxpool.Pool) {
	t.Helper()
	ctx := context.Background()

	pg, err := postgrescontainer.Run(ctx, "postgres:16-alpine",
		postgrescontainer.WithDatabase("training"),
		postgrescontainer.WithUsername("liftpath"),
		postgrescontainer.WithPassword("liftpath"),
		postgrescontainer.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, waitForDatabase(ctx, connStr))

	runMigrations(t, ctx, connStr)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return NewRepository(pool), pool
}

func TestDailyWorkoutUniquePerUserAndDate(t *testing.T) {
	repo, pool := newTestRepository(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)
	userID := uuid.NewString()

	workout := domain.DailyWorkout{
		ID:          uuid.NewString(),
		UserID:      userID,
		Date:        "2024-06-03",
		DayOfWeek:   1,
		RoutineID:   uuid.NewString(),
		RoutineName: "Push Day",
		Exercises: []domain.DailyExercise{{
			ID:     uuid.NewString(),
			Name:   "Bench Press",
			Sets:   4,
			Reps:   "8-10",
			Weight: "0",
			Status: domain.ExerciseStatusPending,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.CreateDailyWorkout(ctx, workout))

	duplicate := workout
	duplicate.ID = uuid.NewString()
	require.ErrorIs(t, repo.CreateDailyWorkout(ctx, duplicate), domain.ErrAlreadyExists)

	stored, err := repo.FindDailyWorkout(ctx, userID, "2024-06-03")
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Equal(t, workout.ID, stored.ID)
	require.Equal(t, workout.Exercises, stored.Exercises)

	var outboxCount int
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM outbox WHERE aggregate_id=$1 AND event_type=$2`,
		workout.ID, events.TypeDailyWorkoutCreated,
	).Scan(&outboxCount))
	require.Equal(t, 1, outboxCount)
}

func TestStatusChangeRewritesExercisesAndEmitsEvent(t *testing.T) {
	repo, pool := newTestRepository(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	workout := domain.DailyWorkout{
		ID:        uuid.NewString(),
		UserID:    "alice",
		Date:      "2024-06-04",
		DayOfWeek: 2,
		Exercises: []domain.DailyExercise{
			{ID: "ex-1", Name: "Row", Sets: 3, Reps: "8", Weight: "60", Status: domain.ExerciseStatusPending},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.CreateDailyWorkout(ctx, workout))

	completedAt := now.Add(time.Minute)
	workout.Exercises[0].Status = domain.ExerciseStatusCompleted
	workout.Exercises[0].CompletedAt = &completedAt
	workout.Completed = true
	workout.UpdatedAt = completedAt
	require.NoError(t, repo.UpdateDailyWorkout(ctx, workout, domain.ExerciseStatusChange{
		WorkoutID:        workout.ID,
		UserID:           "alice",
		ExerciseID:       "ex-1",
		Status:           domain.ExerciseStatusCompleted,
		Applied:          true,
		WorkoutCompleted: true,
		OccurredAt:       completedAt,
	}))

	stored, err := repo.GetDailyWorkoutByID(ctx, workout.ID)
	require.NoError(t, err)
	require.True(t, stored.Completed)
	require.True(t, completedAt.Equal(*stored.Exercises[0].CompletedAt))

	var key string
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT partition_key FROM outbox WHERE event_type=$1`, events.TypeExerciseStatusChanged,
	).Scan(&key))
	require.Equal(t, workout.ID, key)
}

func TestWeeklyPlanUpsertKeepsSingleDocument(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	first, err := repo.UpsertWeeklyPlan(ctx, domain.WeeklyPlanConfig{ID: "plan-1", UserID: "alice", Monday: "r1", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)

	second, err := repo.UpsertWeeklyPlan(ctx, domain.WeeklyPlanConfig{ID: "plan-2", UserID: "alice", Tuesday: "r2", CreatedAt: now, UpdatedAt: now.Add(time.Hour)})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, "", second.Monday)
	require.Equal(t, "r2", second.Tuesday)
}

func TestProgressEntriesNewestFirst(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Millisecond)

	for i, reps := range []string{"5", "6", "7", "8"} {
		require.NoError(t, repo.AppendProgressEntry(ctx, domain.ProgressEntry{
			ID:         uuid.NewString(),
			RoutineID:  "r1",
			ExerciseID: "e1",
			UserID:     "alice",
			Date:       base.Add(time.Duration(i) * time.Hour),
			Reps:       reps,
		}))
	}

	entries, err := repo.ListProgressEntries(ctx, "r1", "e1", 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, "8", entries[0].Reps)
	require.Equal(t, "6", entries[2].Reps)
}

func runMigrations(t *testing.T, ctx context.Context, connStr string) {
	t.Helper()
	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	defer pool.Close()

	contents, err := os.ReadFile(resolvePath(t, "../../../db/postgres/migrations/0001_init.up.sql"))
	require.NoError(t, err)
	_, err = pool.Exec(ctx, string(contents))
	require.NoError(t, err)
}

func resolvePath(t *testing.T, rel string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Join(filepath.Dir(file), rel)
}

func waitForDatabase(ctx context.Context, connStr string) error {
	deadline := time.Now().Add(30 * time.Second)
	for {
		pool, err := pgxpool.New(ctx, connStr)
		if err == nil {
			err = pool.Ping(ctx)
			pool.Close()
			if err == nil {
				return nil
			}
		}
		if time.Now().After(deadline) {
			return err
		}
		time.Sleep(time.Second)
	}
}
