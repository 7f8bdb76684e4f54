package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"weighttrack/internal/domain"

	"github.com/lib/pq"
)

const goalColumns = "g.id, g.person_id, g.start_date, g.end_date, g.target_weight_kg, g.start_weight_kg, g.lock_start_to_first_log, g.created_at"

func scanGoal(row interface{ Scan(...any) error }) (*domain.Goal, error) {
	var (
		g           domain.Goal
		start, end  time.Time
		startWeight sql.NullFloat64
	)
	err := row.Scan(&g.ID, &g.PersonID, &start, &end, &g.TargetWeightKg, &startWeight, &g.LockStartToFirstLog, &g.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	g.StartDate = domain.DateOf(start.UTC())
	g.EndDate = domain.DateOf(end.UTC())
	g.StartWeightKg = floatPtr(startWeight)
	return &g, nil
}

// CreateGoal inserts a new goal.
func (d *DB) CreateGoal(ctx context.Context, g domain.Goal) (*domain.Goal, error) {
	return scanGoal(d.sql.QueryRowContext(ctx,
		`INSERT INTO goals AS g (person_id, start_date, end_date, target_weight_kg, start_weight_kg, lock_start_to_first_log, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING `+goalColumns,
		g.PersonID, g.StartDate.Time, g.EndDate.Time, g.TargetWeightKg, nullFloat(g.StartWeightKg), g.LockStartToFirstLog, time.Now().UTC(),
	))
}

// GetGoal returns the goal if its person belongs to userID.
func (d *DB) GetGoal(ctx context.Context, userID, id int64) (*domain.Goal, error) {
	return scanGoal(d.sql.QueryRowContext(ctx,
		`SELECT `+goalColumns+` FROM goals g
		 JOIN persons p ON p.id = g.person_id
		 WHERE g.id = $1 AND p.user_id = $2`,
		id, userID,
	))
}

// UpdateGoal replaces the dates, weights and lock flag of a goal.
func (d *DB) UpdateGoal(ctx context.Context, userID int64, g domain.Goal) (*domain.Goal, error) {
	return scanGoal(d.sql.QueryRowContext(ctx,
		`UPDATE goals AS g SET start_date = $1, end_date = $2, target_weight_kg = $3, start_weight_kg = $4, lock_start_to_first_log = $5
		 FROM persons p
		 WHERE p.id = g.person_id AND g.id = $6 AND p.user_id = $7
		 RETURNING `+goalColumns,
		g.StartDate.Time, g.EndDate.Time, g.TargetWeightKg, nullFloat(g.StartWeightKg), g.LockStartToFirstLog, g.ID, userID,
	))
}

// DeleteGoal removes a goal; its milestones cascade.
func (d *DB) DeleteGoal(ctx context.Context, userID, id int64) (bool, error) {
	res, err := d.sql.ExecContext(ctx,
		`DELETE FROM goals g USING persons p
		 WHERE p.id = g.person_id AND g.id = $1 AND p.user_id = $2;`,
		id, userID,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ListGoals returns the person's goals, most recently created first.
func (d *DB) ListGoals(ctx context.Context, personID int64) ([]domain.Goal, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+goalColumns+" FROM goals g WHERE g.person_id = $1 ORDER BY g.created_at DESC, g.id DESC;", personID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Goal{}
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *g)
	}
	return out, rows.Err()
}

const milestoneColumns = "m.id, m.goal_id, m.title, m.target_date, m.target_weight_kg, m.note"

func scanMilestone(row interface{ Scan(...any) error }) (*domain.Milestone, error) {
	var (
		m      domain.Milestone
		target time.Time
		note   sql.NullString
	)
	err := row.Scan(&m.ID, &m.GoalID, &m.Title, &target, &m.TargetWeightKg, &note)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	m.TargetDate = domain.DateOf(target.UTC())
	m.Note = stringPtr(note)
	return &m, nil
}

// AddMilestone inserts a new milestone.
func (d *DB) AddMilestone(ctx context.Context, m domain.Milestone) (*domain.Milestone, error) {
	return scanMilestone(d.sql.QueryRowContext(ctx,
		`INSERT INTO milestones AS m (goal_id, title, target_date, target_weight_kg, note)
		 VALUES ($1, $2, $3, $4, $5) RETURNING `+milestoneColumns,
		m.GoalID, m.Title, m.TargetDate.Time, m.TargetWeightKg, nullString(m.Note),
	))
}

// GetMilestone returns the milestone if its goal's person belongs to userID.
func (d *DB) GetMilestone(ctx context.Context, userID, id int64) (*domain.Milestone, error) {
	return scanMilestone(d.sql.QueryRowContext(ctx,
		`SELECT `+milestoneColumns+` FROM milestones m
		 JOIN goals g ON g.id = m.goal_id
		 JOIN persons p ON p.id = g.person_id
		 WHERE m.id = $1 AND p.user_id = $2`,
		id, userID,
	))
}

// UpdateMilestone replaces the fields of a milestone. It stays on its goal.
func (d *DB) UpdateMilestone(ctx context.Context, userID int64, m domain.Milestone) (*domain.Milestone, error) {
	return scanMilestone(d.sql.QueryRowContext(ctx,
		`UPDATE milestones AS m SET title = $1, target_date = $2, target_weight_kg = $3, note = $4
		 FROM goals g JOIN persons p ON p.id = g.person_id
		 WHERE g.id = m.goal_id AND m.id = $5 AND p.user_id = $6
		 RETURNING `+milestoneColumns,
		m.Title, m.TargetDate.Time, m.TargetWeightKg, nullString(m.Note), m.ID, userID,
	))
}

// DeleteMilestone removes a milestone.
func (d *DB) DeleteMilestone(ctx context.Context, userID, id int64) (bool, error) {
	res, err := d.sql.ExecContext(ctx,
		`DELETE FROM milestones m USING goals g, persons p
		 WHERE g.id = m.goal_id AND p.id = g.person_id AND m.id = $1 AND p.user_id = $2;`,
		id, userID,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ListMilestones returns the milestones of the given goals ordered by id.
func (d *DB) ListMilestones(ctx context.Context, goalIDs []int64) ([]domain.Milestone, error) {
	out := []domain.Milestone{}
	if len(goalIDs) == 0 {
		return out, nil
	}
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+milestoneColumns+" FROM milestones m WHERE m.goal_id = ANY($1) ORDER BY m.id;", pq.Array(goalIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanMilestone(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}
