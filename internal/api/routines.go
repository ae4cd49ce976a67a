package api

import (
	"net/http"

	"github.com/kevin0018/LiftPath/internal/domain"
)

// RoutineRequest is the payload for POST /v1/routines.
type RoutineRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Exercises   []ExerciseRequest `json:"exercises"`
}

// RoutinePatchRequest is the payload for PUT /v1/routines/{routineID}.
type RoutinePatchRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// ExerciseRequest describes an exercise; sets, reps and weight may be omitted.
type ExerciseRequest struct {
	Name   string                  `json:"name"`
	Sets   domain.Optional[int]    `json:"sets"`
	Reps   domain.Optional[string] `json:"reps"`
	Weight domain.Optional[string] `json:"weight"`
	Notes  string                  `json:"notes"`
}

func (r ExerciseRequest) input() domain.ExerciseInput {
	return domain.ExerciseInput{
		Name:   r.Name,
		Sets:   r.Sets,
		Reps:   r.Reps,
		Weight: r.Weight,
		Notes:  r.Notes,
	}
}

// ProgressRequest is the payload for recording progress on an exercise.
type ProgressRequest struct {
	Reps   string `json:"reps"`
	Weight string `json:"weight"`
	Notes  string `json:"notes"`
}

// ListRoutinesResponse packages list results.
type ListRoutinesResponse struct {
	Items []domain.WorkoutRoutine `json:"items"`
}

// ProgressHistoryResponse packages progress entries, newest first.
type ProgressHistoryResponse struct {
	Items []domain.ProgressEntry `json:"items"`
	Limit int                    `json:"limit"`
}

func (h *Handler) listRoutines(w http.ResponseWriter, r *http.Request) {
	routines, err := h.service.ListRoutines(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	if routines == nil {
		routines = []domain.WorkoutRoutine{}
	}
	writeJSON(w, http.StatusOK, ListRoutinesResponse{Items: routines})
}

func (h *Handler) createRoutine(w http.ResponseWriter, r *http.Request) {
	var req RoutineRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	input := domain.RoutineInput{Name: req.Name, Description: req.Description}
	for _, ex := range req.Exercises {
		input.Exercises = append(input.Exercises, ex.input())
	}

	routine, err := h.service.CreateRoutine(r.Context(), input)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, routine)
}

func (h *Handler) getRoutine(w http.ResponseWriter, r *http.Request) {
	routine, err := h.service.GetRoutine(r.Context(), r.PathValue("routineID"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, routine)
}

func (h *Handler) updateRoutine(w http.ResponseWriter, r *http.Request) {
	var req RoutinePatchRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	routine, err := h.service.UpdateRoutine(r.Context(), r.PathValue("routineID"), domain.RoutinePatch{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, routine)
}

func (h *Handler) deleteRoutine(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteRoutine(r.Context(), r.PathValue("routineID")); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addExercise(w http.ResponseWriter, r *http.Request) {
	var req ExerciseRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	exercise, err := h.service.AddExercise(r.Context(), r.PathValue("routineID"), req.input())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, exercise)
}

func (h *Handler) updateExercise(w http.ResponseWriter, r *http.Request) {
	var req ExerciseRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	exercise, err := h.service.UpdateExercise(r.Context(), r.PathValue("routineID"), r.PathValue("exerciseID"), req.input())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, exercise)
}

func (h *Handler) deleteExercise(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteExercise(r.Context(), r.PathValue("routineID"), r.PathValue("exerciseID")); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) recordProgress(w http.ResponseWriter, r *http.Request) {
	var req ProgressRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	entry, err := h.service.RecordProgress(r.Context(), r.PathValue("routineID"), r.PathValue("exerciseID"), domain.ProgressInput{
		Reps:   req.Reps,
		Weight: req.Weight,
		Notes:  req.Notes,
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (h *Handler) progressHistory(w http.ResponseWriter, r *http.Request) {
	limit := progressLimit(r)
	entries, err := h.service.ProgressHistory(r.Context(), r.PathValue("routineID"), r.PathValue("exerciseID"), limit)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	if entries == nil {
		entries = []domain.ProgressEntry{}
	}
	writeJSON(w, http.StatusOK, ProgressHistoryResponse{Items: entries, Limit: limit})
}
