// Package api exposes HTTP handlers for the training service.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/kevin0018/LiftPath/internal/auth"
	"github.com/kevin0018/LiftPath/internal/domain"
)

const (
	defaultProgressLimit = 3
	maxProgressLimit     = 100
)

// Handler coordinates HTTP requests with the domain service.
type Handler struct {
	service *domain.Service
	logger  log.FieldLogger
}

// NewHandler builds a Handler.
func NewHandler(service *domain.Service, logger log.FieldLogger) *Handler {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", healthz)

	mux.HandleFunc("GET /v1/routines", h.read(h.listRoutines))
	mux.HandleFunc("POST /v1/routines", h.write(h.createRoutine))
	mux.HandleFunc("GET /v1/routines/{routineID}", h.read(h.getRoutine))
	mux.HandleFunc("PUT /v1/routines/{routineID}", h.write(h.updateRoutine))
	mux.HandleFunc("DELETE /v1/routines/{routineID}", h.write(h.deleteRoutine))
	mux.HandleFunc("POST /v1/routines/{routineID}/exercises", h.write(h.addExercise))
	mux.HandleFunc("PUT /v1/routines/{routineID}/exercises/{exerciseID}", h.write(h.updateExercise))
	mux.HandleFunc("DELETE /v1/routines/{routineID}/exercises/{exerciseID}", h.write(h.deleteExercise))
	mux.HandleFunc("POST /v1/routines/{routineID}/exercises/{exerciseID}/progress", h.write(h.recordProgress))
	mux.HandleFunc("GET /v1/routines/{routineID}/exercises/{exerciseID}/progress", h.read(h.progressHistory))

	mux.HandleFunc("GET /v1/weekly-plan", h.read(h.getWeeklyPlan))
	mux.HandleFunc("PUT /v1/weekly-plan", h.write(h.saveWeeklyPlan))
	mux.HandleFunc("POST /v1/weekly-plan/ppl", h.write(h.initializePPL))

	mux.HandleFunc("GET /v1/daily-workouts", h.read(h.listDailyWorkouts))
	mux.HandleFunc("POST /v1/daily-workouts", h.write(h.createDailyWorkout))
	mux.HandleFunc("GET /v1/daily-workouts/today", h.write(h.todaysWorkout))
	mux.HandleFunc("GET /v1/daily-workouts/{date}", h.write(h.dailyWorkoutByDate))
	mux.HandleFunc("PUT /v1/daily-workouts/{workoutID}/exercises/{exerciseID}/status", h.write(h.setExerciseStatus))
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// read requires training:read or training:write.
func (h *Handler) read(next http.HandlerFunc) http.HandlerFunc {
	return h.requireScope(next, auth.ScopeTrainingRead, auth.ScopeTrainingWrite)
}

// write requires training:write. Materializing a daily workout may create
// it, so those reads sit behind write as well.
func (h *Handler) write(next http.HandlerFunc) http.HandlerFunc {
	return h.requireScope(next, auth.ScopeTrainingWrite)
}

func (h *Handler) requireScope(next http.HandlerFunc, accepted ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.FromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
			return
		}
		for _, scope := range accepted {
			if claims.HasScope(scope) {
				next(w, r)
				return
			}
		}
		writeError(w, http.StatusForbidden, "forbidden", "scope "+accepted[0]+" required")
	}
}

// writeDomainError maps service errors onto HTTP statuses.
func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		writeError(w, http.StatusUnauthorized, "unauthorized", err.Error())
	case errors.Is(err, domain.ErrNotAuthorized):
		writeError(w, http.StatusForbidden, "forbidden", err.Error())
	case domain.IsNotFound(err):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidDate):
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
	default:
		h.logger.WithError(err).WithField("path", r.URL.Path).Error("request failed")
		writeError(w, http.StatusInternalServerError, "server_error", "internal error")
	}
}

// decodeBody parses a JSON body. An empty body leaves dst untouched when
// allowEmpty is set.
func decodeBody(r *http.Request, dst interface{}, allowEmpty bool) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) && allowEmpty {
		return nil
	}
	return err
}

func progressLimit(r *http.Request) int {
	limit := defaultProgressLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = min(parsed, maxProgressLimit)
		}
	}
	return limit
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
