package domain

import "errors"

var (
	// ErrNotAuthenticated is returned when no user is attached to the request context.
	ErrNotAuthenticated = errors.New("user not authenticated")
	// ErrNotAuthorized is returned when the caller does not own the targeted document.
	ErrNotAuthorized = errors.New("not authorized")
	// ErrRoutineNotFound is returned when a routine cannot be located.
	ErrRoutineNotFound = errors.New("routine not found")
	// ErrExerciseNotFound is returned when an exercise is missing from its routine.
	ErrExerciseNotFound = errors.New("exercise not found")
	// ErrWorkoutNotFound is returned when a daily workout cannot be located.
	ErrWorkoutNotFound = errors.New("daily workout not found")
	// ErrAlreadyExists is returned when a daily workout already exists for the user and date.
	ErrAlreadyExists = errors.New("daily workout already exists for date")
	// ErrInvalidInput wraps validation failures on caller supplied data.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidStatus is returned for exercise statuses outside pending/completed/skipped.
	ErrInvalidStatus = errors.New("invalid exercise status")
	// ErrInvalidDate is returned when a date is not formatted as YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
)

// IsNotFound reports whether err denotes any missing routine, exercise or workout.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRoutineNotFound) ||
		errors.Is(err, ErrExerciseNotFound) ||
		errors.Is(err, ErrWorkoutNotFound)
}
