package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"paytrack/internal/core"
)

func (r *SQLiteRepository) CreateWorkplace(ctx context.Context, w core.Workplace) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO workplaces (name, base_rate_cents, weekend_multiplier,
			public_holiday_multiplier, overtime_multiplier, overtime_threshold)
		VALUES (?, ?, ?, ?, ?, ?)`,
		w.Name, w.BaseRate.Cents, w.WeekendMultiplier,
		w.PublicHolidayMultiplier, w.OvertimeMultiplier, w.OvertimeThreshold)
	if err != nil {
		return 0, fmt.Errorf("insert workplace: %w", err)
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) GetWorkplace(ctx context.Context, id int64) (core.Workplace, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, base_rate_cents, weekend_multiplier,
			public_holiday_multiplier, overtime_multiplier, overtime_threshold, created_at
		FROM workplaces WHERE id = ?`, id)
	w, err := scanWorkplace(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Workplace{}, core.NotFound("workplace", id)
	}
	if err != nil {
		return core.Workplace{}, fmt.Errorf("get workplace: %w", err)
	}
	return w, nil
}

func (r *SQLiteRepository) ListWorkplaces(ctx context.Context) ([]core.Workplace, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, base_rate_cents, weekend_multiplier,
			public_holiday_multiplier, overtime_multiplier, overtime_threshold, created_at
		FROM workplaces ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list workplaces: %w", err)
	}
	defer rows.Close()

	var out []core.Workplace
	for rows.Next() {
		w, err := scanWorkplace(rows)
		if err != nil {
			return nil, fmt.Errorf("scan workplace: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) UpdateWorkplace(ctx context.Context, w core.Workplace) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE workplaces
		SET name = ?, base_rate_cents = ?, weekend_multiplier = ?,
			public_holiday_multiplier = ?, overtime_multiplier = ?, overtime_threshold = ?
		WHERE id = ?`,
		w.Name, w.BaseRate.Cents, w.WeekendMultiplier,
		w.PublicHolidayMultiplier, w.OvertimeMultiplier, w.OvertimeThreshold, w.ID)
	if err != nil {
		return fmt.Errorf("update workplace: %w", err)
	}
	return requireRow(res, "workplace", w.ID)
}

func (r *SQLiteRepository) DeleteWorkplace(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM workplaces WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete workplace: %w", err)
	}
	return requireRow(res, "workplace", id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorkplace(row rowScanner) (core.Workplace, error) {
	var (
		w       core.Workplace
		created sql.NullTime
	)
	err := row.Scan(&w.ID, &w.Name, &w.BaseRate.Cents, &w.WeekendMultiplier,
		&w.PublicHolidayMultiplier, &w.OvertimeMultiplier, &w.OvertimeThreshold, &created)
	if err != nil {
		return core.Workplace{}, err
	}
	w.CreatedAt = created.Time
	return w, nil
}

// requireRow converts a zero-row write into a NotFoundError.
func requireRow(res sql.Result, entity string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return core.NotFound(entity, id)
	}
	return nil
}
