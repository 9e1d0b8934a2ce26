package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"paytrack/internal/core"
)

func (r *SQLiteRepository) CreateExpense(ctx context.Context, e core.Expense) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO expenses (category, amount_cents, due_date, is_recurring, notes)
		VALUES (?, ?, ?, ?, ?)`,
		e.Category, e.Amount.Cents, nullDate(e.DueDate), boolToInt(e.Recurring), e.Notes)
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) GetExpense(ctx context.Context, id int64) (core.Expense, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, category, amount_cents, due_date, is_recurring, notes, created_at
		FROM expenses WHERE id = ?`, id)
	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, core.NotFound("expense", id)
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense: %w", err)
	}
	return e, nil
}

func (r *SQLiteRepository) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, category, amount_cents, due_date, is_recurring, notes, created_at
		FROM expenses ORDER BY is_recurring DESC, due_date ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) UpdateExpense(ctx context.Context, e core.Expense) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE expenses
		SET category = ?, amount_cents = ?, due_date = ?, is_recurring = ?, notes = ?
		WHERE id = ?`,
		e.Category, e.Amount.Cents, nullDate(e.DueDate), boolToInt(e.Recurring), e.Notes, e.ID)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return requireRow(res, "expense", e.ID)
}

func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return requireRow(res, "expense", id)
}

func scanExpense(row rowScanner) (core.Expense, error) {
	var (
		e         core.Expense
		due       sql.NullString
		recurring int
		created   sql.NullTime
	)
	err := row.Scan(&e.ID, &e.Category, &e.Amount.Cents, &due, &recurring, &e.Notes, &created)
	if err != nil {
		return core.Expense{}, err
	}
	if due.Valid && due.String != "" {
		if e.DueDate, err = core.ParseDate(due.String); err != nil {
			return core.Expense{}, fmt.Errorf("stored due date %q: %w", due.String, err)
		}
	}
	e.Recurring = recurring != 0
	e.CreatedAt = created.Time
	return e, nil
}

func nullDate(d core.Date) any {
	if d.IsZero() {
		return nil
	}
	return d.String()
}
