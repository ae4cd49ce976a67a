package domain

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/kevin0018/LiftPath/internal/observability"
)

// Role keywords matched case-insensitively against routine names.
const (
	rolePush = "push"
	rolePull = "pull"
	roleLegs = "leg"
)

// PPLRoutines carries explicit routine ids for the Push-Pull-Legs roles.
// Empty fields are resolved by routine name.
type PPLRoutines struct {
	Push string
	Pull string
	Legs string
}

type roleAssignment struct {
	role      string
	routineID string
}

// explicit lists the roles the caller supplied an id for.
func (p PPLRoutines) explicit() []roleAssignment {
	out := make([]roleAssignment, 0, 3)
	for _, a := range []roleAssignment{{rolePush, p.Push}, {rolePull, p.Pull}, {roleLegs, p.Legs}} {
		if a.routineID != "" {
			out = append(out, a)
		}
	}
	return out
}

func (p PPLRoutines) complete() bool {
	return p.Push != "" && p.Pull != "" && p.Legs != ""
}

func (p PPLRoutines) resolve(routines []WorkoutRoutine) PPLRoutines {
	if p.Push == "" {
		p.Push = findRoutineByKeyword(routines, rolePush)
	}
	if p.Pull == "" {
		p.Pull = findRoutineByKeyword(routines, rolePull)
	}
	if p.Legs == "" {
		p.Legs = findRoutineByKeyword(routines, roleLegs)
	}
	return p
}

// rotation builds the six day split with Sunday as rest. Unresolved roles
// are written as rest days.
func (p PPLRoutines) rotation() WeeklyPlanPatch {
	return WeeklyPlanPatch{
		time.Monday:    p.Push,
		time.Tuesday:   p.Pull,
		time.Wednesday: p.Legs,
		time.Thursday:  p.Push,
		time.Friday:    p.Pull,
		time.Saturday:  p.Legs,
		time.Sunday:    "",
	}
}

// InitializeWeeklyPlanWithPPL writes the default Push-Pull-Legs rotation to
// the caller's plan, creating default routines for roles no existing routine
// covers. Explicit ids must name routines the caller owns.
func (s *Service) InitializeWeeklyPlanWithPPL(ctx context.Context, ids PPLRoutines) (*WeeklyPlanConfig, error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}
	return s.initializeWeeklyPlan(ctx, userID, ids)
}

func (s *Service) initializeWeeklyPlan(ctx context.Context, userID string, ids PPLRoutines) (*WeeklyPlanConfig, error) {
	for _, a := range ids.explicit() {
		if _, err := s.ownedRoutine(ctx, userID, a.routineID); err != nil {
			return nil, fmt.Errorf("%s routine: %w", a.role, err)
		}
	}

	if !ids.complete() {
		routines, err := s.store.ListRoutinesByOwner(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("list routines: %w", err)
		}
		ids = ids.resolve(routines)

		if !ids.complete() && !s.seeds.Seeded(userID) {
			s.seedDefaultRoutines(ctx, userID, routines)
			s.seeds.MarkSeeded(userID)

			routines, err = s.store.ListRoutinesByOwner(ctx, userID)
			if err != nil {
				return nil, fmt.Errorf("list routines: %w", err)
			}
			ids = ids.resolve(routines)
		}
	}

	plan, err := s.saveWeeklyPlan(ctx, userID, ids.rotation())
	if err != nil {
		return nil, err
	}
	s.logger.WithFields(log.Fields{
		"user_id": userID,
		"push":    ids.Push,
		"pull":    ids.Pull,
		"legs":    ids.Legs,
	}).Info("weekly plan initialized with push-pull-legs rotation")
	return plan, nil
}

// seedDefaultRoutines creates the default routine of every role that no
// routine in existing covers. Failures are logged and skipped.
func (s *Service) seedDefaultRoutines(ctx context.Context, userID string, existing []WorkoutRoutine) {
	for _, tmpl := range defaultRoutines {
		if findRoutineByKeyword(existing, tmpl.role) != "" {
			continue
		}
		_, err := s.createRoutine(ctx, userID, RoutineInput{
			Name:        tmpl.name,
			Description: tmpl.desc,
			Exercises:   tmpl.exercises,
		})
		if err != nil {
			observability.RecordSeedFailure(tmpl.role)
			s.logger.WithError(err).WithFields(log.Fields{
				"user_id": userID,
				"routine": tmpl.name,
			}).Warn("default routine seeding failed")
			continue
		}
		observability.RecordDefaultRoutineSeeded(tmpl.role)
	}
}
