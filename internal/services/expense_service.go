package services

import (
	"context"
	"fmt"
	"sort"

	"paytrack/internal/core"
	"paytrack/internal/storage"
)

// ExpenseService manages the budget lines that fortnight summaries subtract.
type ExpenseService struct {
	expenses storage.ExpenseStore
}

func NewExpenseService(expenses storage.ExpenseStore) *ExpenseService {
	return &ExpenseService{expenses: expenses}
}

func (s *ExpenseService) Create(ctx context.Context, e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	id, err := s.expenses.CreateExpense(ctx, e)
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}
	return s.expenses.GetExpense(ctx, id)
}

func (s *ExpenseService) Get(ctx context.Context, id int64) (core.Expense, error) {
	return s.expenses.GetExpense(ctx, id)
}

func (s *ExpenseService) List(ctx context.Context) ([]core.Expense, error) {
	return s.expenses.ListExpenses(ctx)
}

func (s *ExpenseService) Update(ctx context.Context, e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	if err := s.expenses.UpdateExpense(ctx, e); err != nil {
		return core.Expense{}, err
	}
	return s.expenses.GetExpense(ctx, e.ID)
}

func (s *ExpenseService) Delete(ctx context.Context, id int64) error {
	return s.expenses.DeleteExpense(ctx, id)
}

// CategoryTotal is the aggregate of one expense category.
type CategoryTotal struct {
	Category string
	Total    core.Money
	Count    int
}

// Breakdown totals expenses per category, ordered by total descending with
// category name breaking ties.
func (s *ExpenseService) Breakdown(ctx context.Context) ([]CategoryTotal, core.Money, error) {
	all, err := s.expenses.ListExpenses(ctx)
	if err != nil {
		return nil, core.Money{}, err
	}

	byCategory := make(map[string]CategoryTotal)
	var order []string
	var recurring core.Money
	for _, e := range all {
		if e.Recurring {
			recurring = recurring.Add(e.Amount)
		}
		c, seen := byCategory[e.Category]
		if !seen {
			order = append(order, e.Category)
			c.Category = e.Category
		}
		c.Total = c.Total.Add(e.Amount)
		c.Count++
		byCategory[e.Category] = c
	}

	out := make([]CategoryTotal, 0, len(order))
	for _, name := range order {
		out = append(out, byCategory[name])
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total.Cents != out[j].Total.Cents {
			return out[i].Total.Cents > out[j].Total.Cents
		}
		return out[i].Category < out[j].Category
	})
	return out, recurring, nil
}
