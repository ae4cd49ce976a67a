package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/kevin0018/LiftPath/internal/domain"
)

const planColumns = `plan_id, user_id, monday, tuesday, wednesday, thursday, friday, saturday, sunday, created_at, updated_at`

// FindWeeklyPlan returns the user's plan, or nil when none exists.
func (r *Repository) FindWeeklyPlan(ctx context.Context, userID string) (*domain.WeeklyPlanConfig, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+planColumns+` FROM weekly_plans WHERE user_id=$1`, userID)
	plan, err := scanPlan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

// UpsertWeeklyPlan creates the user's plan or overwrites every weekday of the
// existing one. The stored id and creation time win on conflict.
func (r *Repository) UpsertWeeklyPlan(ctx context.Context, plan domain.WeeklyPlanConfig) (*domain.WeeklyPlanConfig, error) {
	const stmt = `INSERT INTO weekly_plans (` + planColumns + `)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        ON CONFLICT (user_id) DO UPDATE SET
            monday=EXCLUDED.monday,
            tuesday=EXCLUDED.tuesday,
            wednesday=EXCLUDED.wednesday,
            thursday=EXCLUDED.thursday,
            friday=EXCLUDED.friday,
            saturday=EXCLUDED.saturday,
            sunday=EXCLUDED.sunday,
            updated_at=EXCLUDED.updated_at
        RETURNING ` + planColumns

	row := r.pool.QueryRow(ctx, stmt,
		plan.ID, plan.UserID,
		plan.Monday, plan.Tuesday, plan.Wednesday, plan.Thursday, plan.Friday, plan.Saturday, plan.Sunday,
		plan.CreatedAt, plan.UpdatedAt,
	)
	saved, err := scanPlan(row)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func scanPlan(row pgx.Row) (domain.WeeklyPlanConfig, error) {
	var p domain.WeeklyPlanConfig
	err := row.Scan(&p.ID, &p.UserID, &p.Monday, &p.Tuesday, &p.Wednesday, &p.Thursday, &p.Friday, &p.Saturday, &p.Sunday, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
