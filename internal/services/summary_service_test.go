package services

import (
	"context"
	"testing"

	"paytrack/internal/core"
)

func newSummaryFixture(t *testing.T) (*SummaryService, *fakeShiftStore, *fakeExpenseStore, *fakeGoalStore) {
	t.Helper()
	shifts := newFakeShiftStore()
	expenses := newFakeExpenseStore()
	goals := newFakeGoalStore()
	goalSvc := NewGoalService(goals)
	svc := NewSummaryService(shifts, expenses, goals, goalSvc, mustDate(t, "2026-01-05"))
	return svc, shifts, expenses, goals
}

func TestSummaryServicePeriodResolution(t *testing.T) {
	svc, _, _, _ := newSummaryFixture(t)

	p := svc.Period(mustDate(t, "2026-01-19"))
	if p.Start.String() != "2026-01-19" || p.End.String() != "2026-02-01" {
		t.Errorf("period = %s..%s, want 2026-01-19..2026-02-01", p.Start, p.End)
	}

	// Days before the anchor resolve to earlier fortnights, not the first one.
	p = svc.Period(mustDate(t, "2026-01-04"))
	if p.Start.String() != "2025-12-22" || p.End.String() != "2026-01-04" {
		t.Errorf("pre-anchor period = %s..%s, want 2025-12-22..2026-01-04", p.Start, p.End)
	}
}

func TestSummaryServiceFortnight(t *testing.T) {
	svc, shifts, expenses, goals := newSummaryFixture(t)
	ctx := context.Background()

	// Two shifts inside the period, one outside.
	for _, s := range []core.Shift{
		{WorkplaceID: 1, Date: mustDate(t, "2026-01-06"), Hours: 8, TotalPay: core.Money{Cents: 70000}},
		{WorkplaceID: 1, Date: mustDate(t, "2026-01-12"), Hours: 8, TotalPay: core.Money{Cents: 50000}},
		{WorkplaceID: 1, Date: mustDate(t, "2026-01-20"), Hours: 8, TotalPay: core.Money{Cents: 99900}},
	} {
		if _, err := shifts.CreateShift(ctx, s); err != nil {
			t.Fatalf("CreateShift: %v", err)
		}
	}

	// Rent hits every fortnight, the rego only in its due period.
	if _, err := expenses.CreateExpense(ctx, core.Expense{
		Category: "rent", Amount: core.Money{Cents: 40000}, Recurring: true,
	}); err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}
	if _, err := expenses.CreateExpense(ctx, core.Expense{
		Category: "car rego", Amount: core.Money{Cents: 10000}, DueDate: mustDate(t, "2026-01-10"),
	}); err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}
	if _, err := expenses.CreateExpense(ctx, core.Expense{
		Category: "insurance", Amount: core.Money{Cents: 33300}, DueDate: mustDate(t, "2026-03-01"),
	}); err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}

	if _, err := goals.CreateGoal(ctx, core.Goal{
		Name:         "car",
		Target:       core.Money{Cents: 1000000},
		AutoAllocate: core.Money{Cents: 30000},
		Priority:     core.PriorityHigh,
	}); err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}

	got, err := svc.Fortnight(ctx, mustDate(t, "2026-01-10"))
	if err != nil {
		t.Fatalf("Fortnight: %v", err)
	}

	if got.PeriodStart.String() != "2026-01-05" || got.PeriodEnd.String() != "2026-01-18" {
		t.Errorf("period = %s..%s, want 2026-01-05..2026-01-18", got.PeriodStart, got.PeriodEnd)
	}
	if got.TotalEarned.Cents != 120000 {
		t.Errorf("TotalEarned = %d, want 120000", got.TotalEarned.Cents)
	}
	if got.TotalExpenses.Cents != 50000 {
		t.Errorf("TotalExpenses = %d, want 50000", got.TotalExpenses.Cents)
	}
	if got.GoalAllocations.Cents != 30000 {
		t.Errorf("GoalAllocations = %d, want 30000", got.GoalAllocations.Cents)
	}
	if got.NetAfterGoals.Cents != 40000 {
		t.Errorf("NetAfterGoals = %d, want 40000", got.NetAfterGoals.Cents)
	}

	// Reading the summary twice never double-allocates.
	if _, err := svc.Fortnight(ctx, mustDate(t, "2026-01-11")); err != nil {
		t.Fatalf("Fortnight repeat: %v", err)
	}
	g, err := goals.GetGoal(ctx, 1)
	if err != nil {
		t.Fatalf("GetGoal: %v", err)
	}
	if g.Saved.Cents != 30000 {
		t.Errorf("Saved = %d, want single allocation of 30000", g.Saved.Cents)
	}
}

func TestSummaryServiceStats(t *testing.T) {
	svc, shifts, _, _ := newSummaryFixture(t)
	ctx := context.Background()

	for _, s := range []core.Shift{
		{WorkplaceID: 1, Date: mustDate(t, "2026-01-06"), Hours: 8, TotalPay: core.Money{Cents: 24000}},
		{WorkplaceID: 1, Date: mustDate(t, "2026-01-10"), Hours: 4, TotalPay: core.Money{Cents: 18000}},
	} {
		if _, err := shifts.CreateShift(ctx, s); err != nil {
			t.Fatalf("CreateShift: %v", err)
		}
	}

	got, err := svc.Stats(ctx, mustDate(t, "2026-01-10"))
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if got.TotalEarned.Cents != 42000 {
		t.Errorf("TotalEarned = %d, want 42000", got.TotalEarned.Cents)
	}
	if got.TotalHours != 12 {
		t.Errorf("TotalHours = %v, want 12", got.TotalHours)
	}
	if got.AverageRate != 35 {
		t.Errorf("AverageRate = %v, want 35", got.AverageRate)
	}
	// Trailing week covers 2026-01-04..2026-01-10: both shifts.
	if got.ThisWeek.Shifts != 2 {
		t.Errorf("ThisWeek.Shifts = %d, want 2", got.ThisWeek.Shifts)
	}
}

func TestSummaryServiceMonthly(t *testing.T) {
	svc, shifts, _, _ := newSummaryFixture(t)
	ctx := context.Background()

	for _, s := range []core.Shift{
		{WorkplaceID: 1, Date: mustDate(t, "2026-01-06"), Hours: 8, TotalPay: core.Money{Cents: 24000}},
		{WorkplaceID: 1, Date: mustDate(t, "2026-01-20"), Hours: 8, TotalPay: core.Money{Cents: 24000}},
		{WorkplaceID: 1, Date: mustDate(t, "2026-02-02"), Hours: 8, TotalPay: core.Money{Cents: 24000}},
	} {
		if _, err := shifts.CreateShift(ctx, s); err != nil {
			t.Fatalf("CreateShift: %v", err)
		}
	}

	buckets, err := svc.Monthly(ctx)
	if err != nil {
		t.Fatalf("Monthly: %v", err)
	}
	if len(buckets) != 2 {
		t.Fatalf("len(buckets) = %d, want 2", len(buckets))
	}
	if buckets[0].Key != "2026-01" || buckets[0].Count != 2 {
		t.Errorf("bucket[0] = %+v, want 2026-01 with 2 shifts", buckets[0])
	}
	if buckets[1].Key != "2026-02" || buckets[1].Earned.Cents != 24000 {
		t.Errorf("bucket[1] = %+v, want 2026-02 earning 24000", buckets[1])
	}
}
