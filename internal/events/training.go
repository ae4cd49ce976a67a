// Package events defines the payloads published for training domain changes.
package events

import "time"

// Event types written to the outbox.
const (
	TypeDailyWorkoutCreated   = "daily_workout.created"
	TypeExerciseStatusChanged = "daily_workout.exercise_status_changed"
	TypeProgressRecorded      = "progress.recorded"
)

// Topics the outbox relays to.
const (
	TopicDailyWorkouts  = "daily_workout_events"
	TopicStatusChanges  = "daily_workout_status_changed"
	TopicProgressEvents = "exercise_progress_events"
)

// DailyWorkoutCreated is emitted when a routine is materialized for a date.
type DailyWorkoutCreated struct {
	WorkoutID     string    `json:"workout_id"`
	UserID        string    `json:"user_id"`
	Date          string    `json:"date"`
	DayOfWeek     int       `json:"day_of_week"`
	RoutineID     string    `json:"routine_id"`
	RoutineName   string    `json:"routine_name"`
	ExerciseCount int       `json:"exercise_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// ExerciseStatusChanged tracks per-exercise status updates on a daily workout.
type ExerciseStatusChanged struct {
	WorkoutID        string    `json:"workout_id"`
	UserID           string    `json:"user_id"`
	ExerciseID       string    `json:"exercise_id"`
	Status           string    `json:"status"`
	Applied          bool      `json:"applied"`
	WorkoutCompleted bool      `json:"workout_completed"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// ProgressRecorded is emitted for every appended progress entry.
type ProgressRecorded struct {
	EntryID    string    `json:"entry_id"`
	UserID     string    `json:"user_id"`
	RoutineID  string    `json:"routine_id"`
	ExerciseID string    `json:"exercise_id"`
	Reps       string    `json:"reps,omitempty"`
	Weight     string    `json:"weight,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Route tells the outbox where an event type is published.
type Route struct {
	Topic   string
	Subject string
	// KeyOrdered topics need records sharing a key kept on one partition.
	KeyOrdered bool
}

var routes = map[string]Route{
	TypeDailyWorkoutCreated:   {Topic: TopicDailyWorkouts, Subject: TopicDailyWorkouts + "-value", KeyOrdered: true},
	TypeExerciseStatusChanged: {Topic: TopicStatusChanges, Subject: TopicStatusChanges + "-value", KeyOrdered: true},
	TypeProgressRecorded:      {Topic: TopicProgressEvents, Subject: TopicProgressEvents + "-value"},
}

// RouteFor returns the route of eventType.
func RouteFor(eventType string) (Route, bool) {
	route, ok := routes[eventType]
	return route, ok
}

// TopicKeyOrdered reports whether topic carries key-ordered records. Topics
// this service does not publish to are treated as ordered.
func TopicKeyOrdered(topic string) bool {
	for _, route := range routes {
		if route.Topic == topic {
			return route.KeyOrdered
		}
	}
	return true
}
