package domain

import "time"

// ExerciseStatus is the per-day state of one exercise.
type ExerciseStatus string

const (
	ExerciseStatusPending   ExerciseStatus = "pending"
	ExerciseStatusCompleted ExerciseStatus = "completed"
	ExerciseStatusSkipped   ExerciseStatus = "skipped"
)

// Valid reports whether s is one of the known statuses.
func (s ExerciseStatus) Valid() bool {
	switch s {
	case ExerciseStatusPending, ExerciseStatusCompleted, ExerciseStatusSkipped:
		return true
	}
	return false
}

// Resolved reports whether the exercise was explicitly completed or skipped.
func (s ExerciseStatus) Resolved() bool {
	return s == ExerciseStatusCompleted || s == ExerciseStatusSkipped
}

// Snapshot defaults applied to exercises that lack sets, reps or weight.
const (
	DefaultSets   = 3
	DefaultReps   = "8-12"
	DefaultWeight = "0"
)

// DailyExercise is a frozen copy of a routine exercise for one date.
type DailyExercise struct {
	ID          string         `json:"id"`
	RoutineID   string         `json:"routineId"`
	ExerciseID  string         `json:"exerciseId"`
	Name        string         `json:"name"`
	Sets        int            `json:"sets"`
	Reps        string         `json:"reps"`
	Weight      string         `json:"weight"`
	Status      ExerciseStatus `json:"status"`
	Notes       string         `json:"notes"`
	CompletedAt *time.Time     `json:"completedAt"`
}

// DailyWorkout is the checklist materialized for a user and calendar date.
type DailyWorkout struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Date        string          `json:"date"`
	DayOfWeek   int             `json:"dayOfWeek"`
	RoutineID   string          `json:"routineId"`
	RoutineName string          `json:"routineName"`
	Exercises   []DailyExercise `json:"exercises"`
	Completed   bool            `json:"completed"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ExerciseStatusChange describes one SetExerciseStatus mutation. Stores use it
// to emit change events alongside the document write.
type ExerciseStatusChange struct {
	WorkoutID        string
	UserID           string
	ExerciseID       string
	Status           ExerciseStatus
	Applied          bool
	WorkoutCompleted bool
	OccurredAt       time.Time
}

// allResolved reports whether every exercise is completed or skipped.
func allResolved(exercises []DailyExercise) bool {
	for _, ex := range exercises {
		if !ex.Status.Resolved() {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the workout.
func (w DailyWorkout) Clone() DailyWorkout {
	out := w
	out.Exercises = make([]DailyExercise, len(w.Exercises))
	for i, ex := range w.Exercises {
		if ex.CompletedAt != nil {
			ts := *ex.CompletedAt
			ex.CompletedAt = &ts
		}
		out.Exercises[i] = ex
	}
	return out
}
