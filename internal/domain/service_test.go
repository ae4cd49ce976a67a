package domain_test

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/kevin0018/LiftPath/internal/cache"
	"github.com/kevin0018/LiftPath/internal/domain"
	"github.com/kevin0018/LiftPath/internal/persistence/memory"
)

type userKey struct{}

func asUser(userID string) context.Context {
	return context.WithValue(context.Background(), userKey{}, userID)
}

func contextUser(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userKey{}).(string)
	return id, ok
}

// monday is 2024-06-03, a Monday.
var monday = time.Date(2024, time.June, 3, 9, 30, 0, 0, time.UTC)

type fixture struct {
	store   *memory.Store
	service *domain.Service
	logs    *test.Hook
	now     time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger, hook := test.NewNullLogger()
	f := &fixture{store: memory.NewStore(), logs: hook, now: monday}
	f.service = domain.NewService(f.store, contextUser,
		domain.WithClock(func() time.Time { return f.now }),
		domain.WithLocation(time.UTC),
		domain.WithSeedMarker(cache.NewSeedMarker(0)),
		domain.WithLogger(logger),
	)
	return f
}

func (f *fixture) routine(t *testing.T, userID, name string, exercises ...domain.ExerciseInput) *domain.WorkoutRoutine {
	t.Helper()
	routine, err := f.service.CreateRoutine(asUser(userID), domain.RoutineInput{Name: name, Exercises: exercises})
	require.NoError(t, err)
	return routine
}

func exercise(name string) domain.ExerciseInput {
	return domain.ExerciseInput{Name: name, Sets: domain.Some(4), Reps: domain.Some("5"), Weight: domain.Some("100")}
}

func TestOperationsRequireAuthentication(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.GetOrCreateDailyWorkout(ctx, "2024-06-03")
	require.ErrorIs(t, err, domain.ErrNotAuthenticated)

	_, err = f.service.SetExerciseStatus(ctx, "w", "e", domain.ExerciseStatusCompleted, nil)
	require.ErrorIs(t, err, domain.ErrNotAuthenticated)

	_, err = f.service.InitializeWeeklyPlanWithPPL(ctx, domain.PPLRoutines{})
	require.ErrorIs(t, err, domain.ErrNotAuthenticated)

	_, err = f.service.RecordProgress(ctx, "r", "e", domain.ProgressInput{Reps: "5"})
	require.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestNewServiceWithoutIdentityIsUnauthenticated(t *testing.T) {
	service := domain.NewService(memory.NewStore(), nil)
	_, err := service.ListRoutines(asUser("alice"))
	require.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestTodayUsesConfiguredLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	late := time.Date(2024, time.June, 2, 20, 0, 0, 0, time.UTC)

	service := domain.NewService(memory.NewStore(), contextUser,
		domain.WithClock(func() time.Time { return late }),
		domain.WithLocation(tokyo),
	)
	require.Equal(t, "2024-06-03", service.Today())

	utc := domain.NewService(memory.NewStore(), contextUser,
		domain.WithClock(func() time.Time { return late }),
		domain.WithLocation(time.UTC),
	)
	require.Equal(t, "2024-06-02", utc.Today())
}

func TestLoggerOptionIsOptional(t *testing.T) {
	service := domain.NewService(memory.NewStore(), contextUser, domain.WithLogger(logrus.New()))
	require.NotNil(t, service)
}

// storeWithErrors injects failures in front of the memory store.
type storeWithErrors struct {
	*memory.Store
	findWorkoutErr   error
	createWorkoutErr error
	createRoutineErr func(name string) error
	updateRoutineErr error
}

func (s *storeWithErrors) UpdateRoutine(ctx context.Context, routine domain.WorkoutRoutine) error {
	if s.updateRoutineErr != nil {
		return s.updateRoutineErr
	}
	return s.Store.UpdateRoutine(ctx, routine)
}

func (s *storeWithErrors) FindDailyWorkout(ctx context.Context, userID, date string) (*domain.DailyWorkout, error) {
	if s.findWorkoutErr != nil {
		return nil, s.findWorkoutErr
	}
	return s.Store.FindDailyWorkout(ctx, userID, date)
}

func (s *storeWithErrors) CreateDailyWorkout(ctx context.Context, workout domain.DailyWorkout) error {
	if s.createWorkoutErr != nil {
		return s.createWorkoutErr
	}
	return s.Store.CreateDailyWorkout(ctx, workout)
}

func (s *storeWithErrors) CreateRoutine(ctx context.Context, routine domain.WorkoutRoutine) error {
	if s.createRoutineErr != nil {
		if err := s.createRoutineErr(routine.Name); err != nil {
			return err
		}
	}
	return s.Store.CreateRoutine(ctx, routine)
}
