// Package storage persists paytrack entities in SQLite and exposes narrow
// store interfaces so services can be tested against fakes.
package storage

import (
	"context"

	"paytrack/internal/core"
)

type WorkplaceStore interface {
	CreateWorkplace(ctx context.Context, w core.Workplace) (int64, error)
	GetWorkplace(ctx context.Context, id int64) (core.Workplace, error)
	ListWorkplaces(ctx context.Context) ([]core.Workplace, error)
	UpdateWorkplace(ctx context.Context, w core.Workplace) error
	DeleteWorkplace(ctx context.Context, id int64) error
}

type ShiftStore interface {
	CreateShift(ctx context.Context, s core.Shift) (int64, error)
	GetShift(ctx context.Context, id int64) (core.Shift, error)
	ListShifts(ctx context.Context, f core.ShiftFilter) ([]core.Shift, error)
	UpdateShift(ctx context.Context, s core.Shift) error
	DeleteShift(ctx context.Context, id int64) error
	CountShiftsForWorkplace(ctx context.Context, workplaceID int64) (int64, error)
	MarkShiftSynced(ctx context.Context, id int64) error
	MarkShiftSyncError(ctx context.Context, id int64) error
	ListPendingShifts(ctx context.Context, limit int) ([]core.Shift, error)
}

type ExpenseStore interface {
	CreateExpense(ctx context.Context, e core.Expense) (int64, error)
	GetExpense(ctx context.Context, id int64) (core.Expense, error)
	ListExpenses(ctx context.Context) ([]core.Expense, error)
	UpdateExpense(ctx context.Context, e core.Expense) error
	DeleteExpense(ctx context.Context, id int64) error
}

type GoalStore interface {
	CreateGoal(ctx context.Context, g core.Goal) (int64, error)
	GetGoal(ctx context.Context, id int64) (core.Goal, error)
	ListGoals(ctx context.Context) ([]core.Goal, error)
	UpdateGoal(ctx context.Context, g core.Goal) error
	// DeleteGoal cascades: the goal's contributions and allocation keys go
	// with it.
	DeleteGoal(ctx context.Context, id int64) error
	AddContribution(ctx context.Context, c core.Contribution) (int64, error)
	ListContributions(ctx context.Context, goalID int64) ([]core.Contribution, error)
	// ApplyAllocation records an auto-allocation contribution exactly once
	// per (goal, period start); applied is false when the period was
	// already allocated.
	ApplyAllocation(ctx context.Context, c core.Contribution, periodStart core.Date) (applied bool, err error)
}
