// Package domain implements routine management, weekly plan resolution and
// daily workout tracking.
package domain

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/kevin0018/LiftPath/internal/cache"
)

// CurrentUser resolves the authenticated user id from the request context.
type CurrentUser func(ctx context.Context) (string, bool)

// RoutineStore persists routines. Lookups return (nil, nil) when absent.
type RoutineStore interface {
	ListRoutinesByOwner(ctx context.Context, userID string) ([]WorkoutRoutine, error)
	GetRoutine(ctx context.Context, routineID string) (*WorkoutRoutine, error)
	CreateRoutine(ctx context.Context, routine WorkoutRoutine) error
	UpdateRoutine(ctx context.Context, routine WorkoutRoutine) error
	DeleteRoutine(ctx context.Context, routineID string) error
}

// WeeklyPlanStore persists the single weekly plan of each user.
type WeeklyPlanStore interface {
	FindWeeklyPlan(ctx context.Context, userID string) (*WeeklyPlanConfig, error)
	UpsertWeeklyPlan(ctx context.Context, plan WeeklyPlanConfig) (*WeeklyPlanConfig, error)
}

// DailyWorkoutStore persists materialized workouts. CreateDailyWorkout must
// fail with ErrAlreadyExists when the user already has a workout for the date.
type DailyWorkoutStore interface {
	FindDailyWorkout(ctx context.Context, userID, date string) (*DailyWorkout, error)
	GetDailyWorkoutByID(ctx context.Context, workoutID string) (*DailyWorkout, error)
	CreateDailyWorkout(ctx context.Context, workout DailyWorkout) error
	UpdateDailyWorkout(ctx context.Context, workout DailyWorkout, change ExerciseStatusChange) error
	ListDailyWorkouts(ctx context.Context, userID, from, to string) ([]DailyWorkout, error)
}

// ProgressStore appends and lists progress entries, most recent first.
type ProgressStore interface {
	AppendProgressEntry(ctx context.Context, entry ProgressEntry) error
	ListProgressEntries(ctx context.Context, routineID, exerciseID string, limit int) ([]ProgressEntry, error)
}

// Store bundles every collaborator the service depends on.
type Store interface {
	RoutineStore
	WeeklyPlanStore
	DailyWorkoutStore
	ProgressStore
}

type seedMarker interface {
	Seeded(userID string) bool
	MarkSeeded(userID string)
}

// Service orchestrates routine, plan and daily workout workflows.
type Service struct {
	store       Store
	currentUser CurrentUser
	now         func() time.Time
	location    *time.Location
	seeds       seedMarker
	logger      log.FieldLogger
}

// Option configures optional Service behaviour.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithLocation sets the zone used to decide which calendar date is "today".
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithSeedMarker replaces the process-local default routine seeding cache.
func WithSeedMarker(marker seedMarker) Option {
	return func(s *Service) {
		s.seeds = marker
	}
}

// WithLogger overrides the logger used to report tolerated failures.
func WithLogger(logger log.FieldLogger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService constructs a Service.
func NewService(store Store, currentUser CurrentUser, opts ...Option) *Service {
	s := &Service{
		store:       store,
		currentUser: currentUser,
		now:         time.Now,
		location:    time.Local,
		seeds:       cache.NewSeedMarker(0),
		logger:      log.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) userID(ctx context.Context) (string, error) {
	if s.currentUser == nil {
		return "", ErrNotAuthenticated
	}
	id, ok := s.currentUser(ctx)
	if !ok || id == "" {
		return "", ErrNotAuthenticated
	}
	return id, nil
}

// Today returns the current calendar date in the configured location.
func (s *Service) Today() string {
	return FormatDate(s.now(), s.location)
}

func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}
