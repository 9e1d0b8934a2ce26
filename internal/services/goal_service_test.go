package services

import (
	"context"
	"testing"

	"paytrack/internal/core"
)

func TestGoalServiceContribute(t *testing.T) {
	goals := newFakeGoalStore()
	svc := NewGoalService(goals)
	ctx := context.Background()

	g, err := svc.Create(ctx, core.Goal{
		Name:   "emergency fund",
		Target: core.Money{Cents: 500000},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.Priority != core.PriorityMedium {
		t.Errorf("default priority = %q, want medium", g.Priority)
	}

	g, err = svc.Contribute(ctx, core.Contribution{
		GoalID: g.ID,
		Amount: core.Money{Cents: 25000},
		Date:   mustDate(t, "2026-01-05"),
	})
	if err != nil {
		t.Fatalf("Contribute: %v", err)
	}
	if g.Saved.Cents != 25000 {
		t.Errorf("Saved = %d, want 25000", g.Saved.Cents)
	}

	if _, err := svc.Contribute(ctx, core.Contribution{
		GoalID: g.ID,
		Amount: core.Money{Cents: -100},
		Date:   mustDate(t, "2026-01-05"),
	}); !core.IsValidation(err) {
		t.Errorf("negative contribution err = %v, want validation error", err)
	}

	if _, err := svc.Contribute(ctx, core.Contribution{
		GoalID: 999,
		Amount: core.Money{Cents: 100},
		Date:   mustDate(t, "2026-01-05"),
	}); !core.IsNotFound(err) {
		t.Errorf("unknown goal err = %v, want not found", err)
	}
}

func TestGoalServiceEnsureAllocationsIdempotent(t *testing.T) {
	goals := newFakeGoalStore()
	svc := NewGoalService(goals)
	ctx := context.Background()

	g, err := svc.Create(ctx, core.Goal{
		Name:         "car",
		Target:       core.Money{Cents: 1000000},
		AutoAllocate: core.Money{Cents: 20000},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	period := core.Period{Start: mustDate(t, "2026-01-05"), End: mustDate(t, "2026-01-18")}

	for i := 0; i < 3; i++ {
		if err := svc.EnsureAllocations(ctx, period); err != nil {
			t.Fatalf("EnsureAllocations #%d: %v", i+1, err)
		}
	}

	g, err = svc.Get(ctx, g.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if g.Saved.Cents != 20000 {
		t.Errorf("Saved = %d, want a single 20000 allocation", g.Saved.Cents)
	}

	// The next fortnight allocates again.
	next := core.Period{Start: mustDate(t, "2026-01-19"), End: mustDate(t, "2026-02-01")}
	if err := svc.EnsureAllocations(ctx, next); err != nil {
		t.Fatalf("EnsureAllocations next: %v", err)
	}
	g, err = svc.Get(ctx, g.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if g.Saved.Cents != 40000 {
		t.Errorf("Saved = %d, want 40000 after two periods", g.Saved.Cents)
	}
}

func TestGoalServiceEnsureAllocationsSkipsCompleted(t *testing.T) {
	goals := newFakeGoalStore()
	svc := NewGoalService(goals)
	ctx := context.Background()

	g, err := svc.Create(ctx, core.Goal{
		Name:         "bike",
		Target:       core.Money{Cents: 30000},
		AutoAllocate: core.Money{Cents: 20000},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Contribute(ctx, core.Contribution{
		GoalID: g.ID,
		Amount: core.Money{Cents: 30000},
		Date:   mustDate(t, "2026-01-02"),
	}); err != nil {
		t.Fatalf("Contribute: %v", err)
	}

	period := core.Period{Start: mustDate(t, "2026-01-05"), End: mustDate(t, "2026-01-18")}
	if err := svc.EnsureAllocations(ctx, period); err != nil {
		t.Fatalf("EnsureAllocations: %v", err)
	}

	g, err = svc.Get(ctx, g.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if g.Saved.Cents != 30000 {
		t.Errorf("Saved = %d, completed goal should not allocate", g.Saved.Cents)
	}
}
