package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "training_service"

var (
	workoutsMaterialized = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "daily_workouts",
		Name:      "materialization_total",
		Help:      "Daily workout lookups by outcome (existing, created, rest, stale_routine, not_today).",
	}, []string{"outcome"})

	exerciseStatusChanges = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "daily_workouts",
		Name:      "exercise_status_changes_total",
		Help:      "Exercise status updates applied to daily workouts, labeled by status.",
	}, []string{"status"})

	workoutsCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "daily_workouts",
		Name:      "completed_total",
		Help:      "Daily workouts transitioned to completed.",
	})

	progressRecorded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "progress",
		Name:      "entries_recorded_total",
		Help:      "Progress entries appended.",
	})

	progressWatermark = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "progress",
		Name:      "last_entry_recorded_timestamp_seconds",
		Help:      "Unix timestamp of the most recent progress entry.",
	})

	defaultRoutinesSeeded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "seeder",
		Name:      "default_routines_created_total",
		Help:      "Default push-pull-legs routines created, labeled by role.",
	}, []string{"role"})

	seedFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "seeder",
		Name:      "default_routine_failures_total",
		Help:      "Default routine creations that failed and were skipped, labeled by role.",
	}, []string{"role"})
)

func init() {
	prometheus.MustRegister(
		workoutsMaterialized,
		exerciseStatusChanges,
		workoutsCompleted,
		progressRecorded,
		progressWatermark,
		defaultRoutinesSeeded,
		seedFailures,
	)
}

// Materialization outcomes.
const (
	OutcomeExisting     = "existing"
	OutcomeCreated      = "created"
	OutcomeRest         = "rest"
	OutcomeStaleRoutine = "stale_routine"
	OutcomeNotToday     = "not_today"
)

// RecordMaterialization counts a daily workout lookup by outcome.
func RecordMaterialization(outcome string) {
	workoutsMaterialized.WithLabelValues(outcome).Inc()
}

// RecordExerciseStatus counts an applied status change and, when the change
// finished the workout, the completion.
func RecordExerciseStatus(status string, workoutCompleted bool) {
	exerciseStatusChanges.WithLabelValues(status).Inc()
	if workoutCompleted {
		workoutsCompleted.Inc()
	}
}

// RecordProgress updates progress counters and the watermark gauge.
func RecordProgress(ts time.Time) {
	progressRecorded.Inc()
	if ts.IsZero() {
		return
	}
	progressWatermark.Set(float64(ts.Unix()))
}

// RecordDefaultRoutineSeeded counts a default routine created for role.
func RecordDefaultRoutineSeeded(role string) {
	defaultRoutinesSeeded.WithLabelValues(role).Inc()
}

// RecordSeedFailure counts a skipped default routine for role.
func RecordSeedFailure(role string) {
	seedFailures.WithLabelValues(role).Inc()
}
