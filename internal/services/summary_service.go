package services

import (
	"context"
	"fmt"

	"paytrack/internal/core"
	"paytrack/internal/storage"
)

// SummaryService resolves fortnight periods from the configured anchor and
// composes the read-side reports.
type SummaryService struct {
	shifts   storage.ShiftStore
	expenses storage.ExpenseStore
	goals    storage.GoalStore
	goalSvc  *GoalService
	anchor   core.Date
}

func NewSummaryService(
	shifts storage.ShiftStore,
	expenses storage.ExpenseStore,
	goals storage.GoalStore,
	goalSvc *GoalService,
	anchor core.Date,
) *SummaryService {
	return &SummaryService{
		shifts:   shifts,
		expenses: expenses,
		goals:    goals,
		goalSvc:  goalSvc,
		anchor:   anchor,
	}
}

// Period resolves the fortnight containing the given day.
func (s *SummaryService) Period(today core.Date) core.Period {
	return core.PeriodFor(today, s.anchor)
}

// Fortnight builds the financial summary for the period containing today,
// applying any auto-allocations the period has not seen yet. The goal
// snapshot is taken before allocating so the reported allocation total
// matches what this period's pass applied.
func (s *SummaryService) Fortnight(ctx context.Context, today core.Date) (core.FortnightSummary, error) {
	p := s.Period(today)

	goals, err := s.goals.ListGoals(ctx)
	if err != nil {
		return core.FortnightSummary{}, fmt.Errorf("list goals: %w", err)
	}
	if err := s.goalSvc.EnsureAllocations(ctx, p); err != nil {
		return core.FortnightSummary{}, err
	}

	shifts, err := s.shifts.ListShifts(ctx, core.ShiftFilter{From: p.Start, To: p.End})
	if err != nil {
		return core.FortnightSummary{}, fmt.Errorf("list shifts: %w", err)
	}
	expenses, err := s.expenses.ListExpenses(ctx)
	if err != nil {
		return core.FortnightSummary{}, fmt.Errorf("list expenses: %w", err)
	}

	return core.Summarize(p, shifts, expenses, goals), nil
}

// Stats builds the all-time overview.
func (s *SummaryService) Stats(ctx context.Context, today core.Date) (core.Stats, error) {
	shifts, err := s.shifts.ListShifts(ctx, core.ShiftFilter{})
	if err != nil {
		return core.Stats{}, fmt.Errorf("list shifts: %w", err)
	}
	expenses, err := s.expenses.ListExpenses(ctx)
	if err != nil {
		return core.Stats{}, fmt.Errorf("list expenses: %w", err)
	}
	goals, err := s.goals.ListGoals(ctx)
	if err != nil {
		return core.Stats{}, fmt.Errorf("list goals: %w", err)
	}
	return core.BuildStats(shifts, expenses, goals, today), nil
}

// Monthly groups shifts into calendar-month earning buckets, trimmed to the
// most recent twelve months with any activity.
func (s *SummaryService) Monthly(ctx context.Context) ([]core.BucketEarnings, error) {
	shifts, err := s.shifts.ListShifts(ctx, core.ShiftFilter{})
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	buckets := core.MonthlyBuckets(shifts)
	if len(buckets) > 12 {
		buckets = buckets[len(buckets)-12:]
	}
	return buckets, nil
}

// Weekly groups all shifts into ISO-week earning buckets.
func (s *SummaryService) Weekly(ctx context.Context) ([]core.BucketEarnings, error) {
	shifts, err := s.shifts.ListShifts(ctx, core.ShiftFilter{})
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	return core.WeeklyBuckets(shifts), nil
}
