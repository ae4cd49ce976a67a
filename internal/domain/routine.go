package domain

import "time"

// Exercise is a single movement inside a routine. Sets, reps and weight are
// optional in stored documents.
type Exercise struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Sets          Optional[int]    `json:"sets"`
	Reps          Optional[string] `json:"reps"`
	Weight        Optional[string] `json:"weight"`
	Notes         string           `json:"notes"`
	CurrentReps   string           `json:"currentReps"`
	CurrentWeight string           `json:"currentWeight"`
	LastPerformed *time.Time       `json:"lastPerformed"`
}

// WorkoutRoutine is a user owned, reusable template of exercises.
type WorkoutRoutine struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	UserID      string     `json:"userId"`
	Exercises   []Exercise `json:"exercises"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (r WorkoutRoutine) exerciseIndex(exerciseID string) int {
	for i, ex := range r.Exercises {
		if ex.ID == exerciseID {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy so callers can mutate the exercise list freely.
func (r WorkoutRoutine) Clone() WorkoutRoutine {
	out := r
	out.Exercises = make([]Exercise, len(r.Exercises))
	for i, ex := range r.Exercises {
		if ex.LastPerformed != nil {
			ts := *ex.LastPerformed
			ex.LastPerformed = &ts
		}
		out.Exercises[i] = ex
	}
	return out
}
