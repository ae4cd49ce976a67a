package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/kevin0018/LiftPath/internal/observability"
)

// ProgressEntry is an immutable record of one performed exercise.
type ProgressEntry struct {
	ID         string    `json:"id"`
	RoutineID  string    `json:"routineId"`
	ExerciseID string    `json:"exerciseId"`
	UserID     string    `json:"userId"`
	Date       time.Time `json:"date"`
	Reps       string    `json:"reps"`
	Weight     string    `json:"weight"`
	Notes      string    `json:"notes"`
}

// ProgressInput is the caller supplied part of a progress entry.
type ProgressInput struct {
	Reps   string
	Weight string
	Notes  string
}

// RecordProgress appends a progress entry for an exercise and refreshes the
// exercise's last known reps, weight and performed time on its routine. The
// entry is the record of truth; a failed routine refresh is logged and the
// entry still returned.
func (s *Service) RecordProgress(ctx context.Context, routineID, exerciseID string, input ProgressInput) (*ProgressEntry, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Reps) == "" && strings.TrimSpace(input.Weight) == "" {
		return nil, fmt.Errorf("%w: reps or weight is required", ErrInvalidInput)
	}
	routine, err := s.ownedRoutine(ctx, userID, routineID)
	if err != nil {
		return nil, err
	}
	idx := routine.exerciseIndex(exerciseID)
	if idx < 0 {
		return nil, ErrExerciseNotFound
	}

	now := s.timestamp()
	entry := ProgressEntry{
		ID:         uuid.NewString(),
		RoutineID:  routineID,
		ExerciseID: exerciseID,
		UserID:     userID,
		Date:       now,
		Reps:       input.Reps,
		Weight:     input.Weight,
		Notes:      input.Notes,
	}
	if err := s.store.AppendProgressEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("append progress entry: %w", err)
	}

	ex := &routine.Exercises[idx]
	if input.Reps != "" {
		ex.CurrentReps = input.Reps
	}
	if input.Weight != "" {
		ex.CurrentWeight = input.Weight
	}
	performed := now
	ex.LastPerformed = &performed
	routine.UpdatedAt = now
	if err := s.store.UpdateRoutine(ctx, *routine); err != nil {
		s.logger.WithError(err).WithFields(log.Fields{
			"user_id":     userID,
			"routine_id":  routineID,
			"exercise_id": exerciseID,
			"entry_id":    entry.ID,
		}).Warn("progress recorded but routine exercise state not refreshed")
	}

	observability.RecordProgress(now)
	return &entry, nil
}

// ProgressHistory lists progress entries for an exercise, most recent first.
// A limit <= 0 returns every entry.
func (s *Service) ProgressHistory(ctx context.Context, routineID, exerciseID string, limit int) ([]ProgressEntry, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedRoutine(ctx, userID, routineID); err != nil {
		return nil, err
	}
	entries, err := s.store.ListProgressEntries(ctx, routineID, exerciseID, limit)
	if err != nil {
		return nil, fmt.Errorf("list progress entries: %w", err)
	}
	return entries, nil
}
