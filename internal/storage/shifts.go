package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"paytrack/internal/core"
)

const shiftColumns = `s.id, s.workplace_id, w.name, s.date, s.start_time, s.end_time,
	s.hours, s.day_type, s.overtime, s.shift_type,
	s.regular_pay_cents, s.overtime_pay_cents, s.total_pay_cents, s.notes, s.version, s.created_at`

func (r *SQLiteRepository) CreateShift(ctx context.Context, s core.Shift) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO shifts (workplace_id, date, start_time, end_time, hours,
			day_type, overtime, shift_type,
			regular_pay_cents, overtime_pay_cents, total_pay_cents, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.WorkplaceID, s.Date.String(), s.Start.String(), s.End.String(), s.Hours,
		string(s.Day), boolToInt(s.Overtime), s.ShiftType,
		s.RegularPay.Cents, s.OvertimePay.Cents, s.TotalPay.Cents, s.Notes)
	if err != nil {
		return 0, fmt.Errorf("insert shift: %w", err)
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) GetShift(ctx context.Context, id int64) (core.Shift, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+shiftColumns+`
		FROM shifts s JOIN workplaces w ON w.id = s.workplace_id
		WHERE s.id = ?`, id)
	s, err := scanShift(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Shift{}, core.NotFound("shift", id)
	}
	if err != nil {
		return core.Shift{}, fmt.Errorf("get shift: %w", err)
	}
	return s, nil
}

func (r *SQLiteRepository) ListShifts(ctx context.Context, f core.ShiftFilter) ([]core.Shift, error) {
	var (
		where []string
		args  []any
	)
	if !f.From.IsZero() {
		where = append(where, "s.date >= ?")
		args = append(args, f.From.String())
	}
	if !f.To.IsZero() {
		where = append(where, "s.date <= ?")
		args = append(args, f.To.String())
	}
	if f.WorkplaceID != 0 {
		where = append(where, "s.workplace_id = ?")
		args = append(args, f.WorkplaceID)
	}

	query := `SELECT ` + shiftColumns + `
		FROM shifts s JOIN workplaces w ON w.id = s.workplace_id`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY s.date DESC, s.start_time DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	defer rows.Close()

	var out []core.Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shift: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) UpdateShift(ctx context.Context, s core.Shift) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE shifts
		SET workplace_id = ?, date = ?, start_time = ?, end_time = ?, hours = ?,
			day_type = ?, overtime = ?, shift_type = ?,
			regular_pay_cents = ?, overtime_pay_cents = ?, total_pay_cents = ?, notes = ?,
			sync_status = 'pending', version = version + 1
		WHERE id = ?`,
		s.WorkplaceID, s.Date.String(), s.Start.String(), s.End.String(), s.Hours,
		string(s.Day), boolToInt(s.Overtime), s.ShiftType,
		s.RegularPay.Cents, s.OvertimePay.Cents, s.TotalPay.Cents, s.Notes, s.ID)
	if err != nil {
		return fmt.Errorf("update shift: %w", err)
	}
	return requireRow(res, "shift", s.ID)
}

func (r *SQLiteRepository) DeleteShift(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shifts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete shift: %w", err)
	}
	return requireRow(res, "shift", id)
}

func (r *SQLiteRepository) CountShiftsForWorkplace(ctx context.Context, workplaceID int64) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM shifts WHERE workplace_id = ?`, workplaceID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count shifts: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) MarkShiftSynced(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE shifts SET sync_status = 'synced' WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark shift synced: %w", err)
	}
	return requireRow(res, "shift", id)
}

func (r *SQLiteRepository) MarkShiftSyncError(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE shifts SET sync_status = 'error' WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark shift sync error: %w", err)
	}
	return requireRow(res, "shift", id)
}

// ListPendingShifts returns shifts that have not yet been exported,
// oldest first so retries stay ordered.
func (r *SQLiteRepository) ListPendingShifts(ctx context.Context, limit int) ([]core.Shift, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+shiftColumns+`
		FROM shifts s JOIN workplaces w ON w.id = s.workplace_id
		WHERE s.sync_status = 'pending'
		ORDER BY s.id ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending shifts: %w", err)
	}
	defer rows.Close()

	var out []core.Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shift: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanShift(row rowScanner) (core.Shift, error) {
	var (
		s        core.Shift
		date     string
		start    string
		end      string
		day      string
		overtime int
		created  sql.NullTime
	)
	err := row.Scan(&s.ID, &s.WorkplaceID, &s.WorkplaceName, &date, &start, &end,
		&s.Hours, &day, &overtime, &s.ShiftType,
		&s.RegularPay.Cents, &s.OvertimePay.Cents, &s.TotalPay.Cents, &s.Notes, &s.Version, &created)
	if err != nil {
		return core.Shift{}, err
	}
	if s.Date, err = core.ParseDate(date); err != nil {
		return core.Shift{}, fmt.Errorf("stored date %q: %w", date, err)
	}
	if s.Start, err = core.ParseClockTime(start); err != nil {
		return core.Shift{}, fmt.Errorf("stored start time %q: %w", start, err)
	}
	if s.End, err = core.ParseClockTime(end); err != nil {
		return core.Shift{}, fmt.Errorf("stored end time %q: %w", end, err)
	}
	s.Day = core.DayType(day)
	s.Overtime = overtime != 0
	s.CreatedAt = created.Time
	return s, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
