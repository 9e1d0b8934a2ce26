package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"paytrack/internal/core"
)

const goalColumns = `g.id, g.name, g.target_cents,
	COALESCE(SUM(c.amount_cents), 0) AS saved_cents,
	g.auto_allocate_cents, g.priority, g.deadline, g.notes, g.created_at`

func (r *SQLiteRepository) CreateGoal(ctx context.Context, g core.Goal) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO goals (name, target_cents, auto_allocate_cents, priority, deadline, notes)
		VALUES (?, ?, ?, ?, ?, ?)`,
		g.Name, g.Target.Cents, g.AutoAllocate.Cents, string(g.Priority),
		nullDate(g.Deadline), g.Notes)
	if err != nil {
		return 0, fmt.Errorf("insert goal: %w", err)
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) GetGoal(ctx context.Context, id int64) (core.Goal, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+goalColumns+`
		FROM goals g LEFT JOIN contributions c ON c.goal_id = g.id
		WHERE g.id = ?
		GROUP BY g.id`, id)
	g, err := scanGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Goal{}, core.NotFound("goal", id)
	}
	if err != nil {
		return core.Goal{}, fmt.Errorf("get goal: %w", err)
	}
	return g, nil
}

func (r *SQLiteRepository) ListGoals(ctx context.Context) ([]core.Goal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+goalColumns+`
		FROM goals g LEFT JOIN contributions c ON c.goal_id = g.id
		GROUP BY g.id
		ORDER BY CASE g.priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END, g.id`)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var out []core.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) UpdateGoal(ctx context.Context, g core.Goal) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE goals
		SET name = ?, target_cents = ?, auto_allocate_cents = ?, priority = ?,
			deadline = ?, notes = ?
		WHERE id = ?`,
		g.Name, g.Target.Cents, g.AutoAllocate.Cents, string(g.Priority),
		nullDate(g.Deadline), g.Notes, g.ID)
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	return requireRow(res, "goal", g.ID)
}

// DeleteGoal removes the goal, its contributions and its allocation keys in
// one transaction.
func (r *SQLiteRepository) DeleteGoal(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM goal_allocations WHERE goal_id = ?`, id); err != nil {
		return fmt.Errorf("delete goal allocations: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM contributions WHERE goal_id = ?`, id); err != nil {
		return fmt.Errorf("delete contributions: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	if err := requireRow(res, "goal", id); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *SQLiteRepository) AddContribution(ctx context.Context, c core.Contribution) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO contributions (goal_id, amount_cents, date, notes)
		VALUES (?, ?, ?, ?)`,
		c.GoalID, c.Amount.Cents, c.Date.String(), c.Notes)
	if err != nil {
		return 0, fmt.Errorf("insert contribution: %w", err)
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) ListContributions(ctx context.Context, goalID int64) ([]core.Contribution, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, goal_id, amount_cents, date, notes
		FROM contributions WHERE goal_id = ?
		ORDER BY date DESC, id DESC`, goalID)
	if err != nil {
		return nil, fmt.Errorf("list contributions: %w", err)
	}
	defer rows.Close()

	var out []core.Contribution
	for rows.Next() {
		var (
			c    core.Contribution
			date string
		)
		if err := rows.Scan(&c.ID, &c.GoalID, &c.Amount.Cents, &date, &c.Notes); err != nil {
			return nil, fmt.Errorf("scan contribution: %w", err)
		}
		if c.Date, err = core.ParseDate(date); err != nil {
			return nil, fmt.Errorf("stored contribution date %q: %w", date, err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ApplyAllocation inserts the contribution and the (goal, period) key in one
// transaction. A second call for the same key is a no-op.
func (r *SQLiteRepository) ApplyAllocation(ctx context.Context, c core.Contribution, periodStart core.Date) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM goal_allocations
		WHERE goal_id = ? AND period_start = ?`, c.GoalID, periodStart.String()).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check allocation: %w", err)
	}
	if exists > 0 {
		return false, nil
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO contributions (goal_id, amount_cents, date, notes)
		VALUES (?, ?, ?, ?)`,
		c.GoalID, c.Amount.Cents, c.Date.String(), c.Notes)
	if err != nil {
		return false, fmt.Errorf("insert allocation contribution: %w", err)
	}
	contribID, err := res.LastInsertId()
	if err != nil {
		return false, fmt.Errorf("allocation contribution id: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO goal_allocations (goal_id, period_start, contribution_id)
		VALUES (?, ?, ?)`, c.GoalID, periodStart.String(), contribID)
	if err != nil {
		return false, fmt.Errorf("insert allocation key: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit allocation: %w", err)
	}
	return true, nil
}

func scanGoal(row rowScanner) (core.Goal, error) {
	var (
		g        core.Goal
		priority string
		deadline sql.NullString
		created  sql.NullTime
	)
	err := row.Scan(&g.ID, &g.Name, &g.Target.Cents, &g.Saved.Cents,
		&g.AutoAllocate.Cents, &priority, &deadline, &g.Notes, &created)
	if err != nil {
		return core.Goal{}, err
	}
	g.Priority = core.Priority(priority)
	if deadline.Valid && deadline.String != "" {
		if g.Deadline, err = core.ParseDate(deadline.String); err != nil {
			return core.Goal{}, fmt.Errorf("stored deadline %q: %w", deadline.String, err)
		}
	}
	g.CreatedAt = created.Time
	return g, nil
}
