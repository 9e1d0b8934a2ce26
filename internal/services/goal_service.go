package services

import (
	"context"
	"fmt"
	"log/slog"

	"paytrack/internal/core"
	"paytrack/internal/storage"
)

// GoalService manages savings goals, manual contributions and the lazy
// per-fortnight auto-allocation pass.
type GoalService struct {
	goals storage.GoalStore
}

func NewGoalService(goals storage.GoalStore) *GoalService {
	return &GoalService{goals: goals}
}

func (s *GoalService) Create(ctx context.Context, g core.Goal) (core.Goal, error) {
	if g.Priority == "" {
		g.Priority = core.PriorityMedium
	}
	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}
	id, err := s.goals.CreateGoal(ctx, g)
	if err != nil {
		return core.Goal{}, fmt.Errorf("create goal: %w", err)
	}
	return s.goals.GetGoal(ctx, id)
}

func (s *GoalService) Get(ctx context.Context, id int64) (core.Goal, error) {
	return s.goals.GetGoal(ctx, id)
}

func (s *GoalService) List(ctx context.Context) ([]core.Goal, error) {
	return s.goals.ListGoals(ctx)
}

func (s *GoalService) Update(ctx context.Context, g core.Goal) (core.Goal, error) {
	if g.Priority == "" {
		g.Priority = core.PriorityMedium
	}
	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}
	if err := s.goals.UpdateGoal(ctx, g); err != nil {
		return core.Goal{}, err
	}
	return s.goals.GetGoal(ctx, g.ID)
}

// Delete removes the goal and its whole contribution history.
func (s *GoalService) Delete(ctx context.Context, id int64) error {
	return s.goals.DeleteGoal(ctx, id)
}

// Contribute records a manual contribution and returns the refreshed goal.
func (s *GoalService) Contribute(ctx context.Context, c core.Contribution) (core.Goal, error) {
	if _, err := s.goals.GetGoal(ctx, c.GoalID); err != nil {
		return core.Goal{}, err
	}
	if err := c.Validate(); err != nil {
		return core.Goal{}, err
	}
	if _, err := s.goals.AddContribution(ctx, c); err != nil {
		return core.Goal{}, fmt.Errorf("add contribution: %w", err)
	}
	return s.goals.GetGoal(ctx, c.GoalID)
}

func (s *GoalService) Contributions(ctx context.Context, goalID int64) ([]core.Contribution, error) {
	if _, err := s.goals.GetGoal(ctx, goalID); err != nil {
		return nil, err
	}
	return s.goals.ListContributions(ctx, goalID)
}

// EnsureAllocations applies each goal's auto-allocation for the period, at
// most once per goal and period. Safe to call on every summary read.
func (s *GoalService) EnsureAllocations(ctx context.Context, p core.Period) error {
	goals, err := s.goals.ListGoals(ctx)
	if err != nil {
		return fmt.Errorf("list goals: %w", err)
	}

	for _, g := range goals {
		c, ok := g.AllocationFor(p)
		if !ok {
			continue
		}
		applied, err := s.goals.ApplyAllocation(ctx, c, p.Start)
		if err != nil {
			return fmt.Errorf("apply allocation for goal %d: %w", g.ID, err)
		}
		if applied {
			slog.InfoContext(ctx, "Applied fortnight allocation",
				"goal_id", g.ID,
				"period_start", p.Start.String(),
				"amount_cents", c.Amount.Cents)
		}
	}
	return nil
}
