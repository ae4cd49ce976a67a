package api

import (
	"fmt"
	"net/http"

	"github.com/kevin0018/LiftPath/internal/domain"
)

// WeeklyPlanRequest maps lowercase weekday names to routine ids. Omitted
// weekdays are unchanged; an empty id marks a rest day.
type WeeklyPlanRequest map[string]string

func (req WeeklyPlanRequest) patch() (domain.WeeklyPlanPatch, error) {
	patch := make(domain.WeeklyPlanPatch, len(req))
	for name, routineID := range req {
		day, ok := domain.ParseWeekday(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown weekday %q", domain.ErrInvalidInput, name)
		}
		patch[day] = routineID
	}
	return patch, nil
}

// PPLRequest optionally pins the routines used by the Push-Pull-Legs rotation.
type PPLRequest struct {
	Push string `json:"push"`
	Pull string `json:"pull"`
	Legs string `json:"legs"`
}

// CreateDailyWorkoutRequest is the payload for POST /v1/daily-workouts.
type CreateDailyWorkoutRequest struct {
	Date      string `json:"date"`
	RoutineID string `json:"routineId"`
}

// ExerciseStatusRequest is the payload for updating an exercise status.
type ExerciseStatusRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

// ListDailyWorkoutsResponse packages list results.
type ListDailyWorkoutsResponse struct {
	Items []domain.DailyWorkout `json:"items"`
}

func (h *Handler) getWeeklyPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.service.GetWeeklyPlan(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	if plan == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (h *Handler) saveWeeklyPlan(w http.ResponseWriter, r *http.Request) {
	var req WeeklyPlanRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	patch, err := req.patch()
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	plan, err := h.service.SaveWeeklyPlan(r.Context(), patch)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (h *Handler) initializePPL(w http.ResponseWriter, r *http.Request) {
	var req PPLRequest
	if err := decodeBody(r, &req, true); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	plan, err := h.service.InitializeWeeklyPlanWithPPL(r.Context(), domain.PPLRoutines{
		Push: req.Push,
		Pull: req.Pull,
		Legs: req.Legs,
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (h *Handler) listDailyWorkouts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	workouts, err := h.service.ListDailyWorkouts(r.Context(), query.Get("from"), query.Get("to"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	if workouts == nil {
		workouts = []domain.DailyWorkout{}
	}
	writeJSON(w, http.StatusOK, ListDailyWorkoutsResponse{Items: workouts})
}

func (h *Handler) todaysWorkout(w http.ResponseWriter, r *http.Request) {
	workout, err := h.service.GenerateTodaysWorkout(r.Context())
	h.writeWorkout(w, r, workout, err)
}

func (h *Handler) dailyWorkoutByDate(w http.ResponseWriter, r *http.Request) {
	workout, err := h.service.GetOrCreateDailyWorkout(r.Context(), r.PathValue("date"))
	h.writeWorkout(w, r, workout, err)
}

// writeWorkout answers 204 when there is nothing to train.
func (h *Handler) writeWorkout(w http.ResponseWriter, r *http.Request, workout *domain.DailyWorkout, err error) {
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	if workout == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

func (h *Handler) createDailyWorkout(w http.ResponseWriter, r *http.Request) {
	var req CreateDailyWorkoutRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	workout, err := h.service.CreateDailyWorkout(r.Context(), req.Date, req.RoutineID)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, workout)
}

func (h *Handler) setExerciseStatus(w http.ResponseWriter, r *http.Request) {
	var req ExerciseStatusRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	workout, err := h.service.SetExerciseStatus(r.Context(), r.PathValue("workoutID"), r.PathValue("exerciseID"),
		domain.ExerciseStatus(req.Status), req.Notes)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, workout)
}
