package core

// Goal accounting. A goal is active while saved < target and completed once
// saved >= target; completion is terminal for auto-allocation, but manual
// contributions remain accepted (remaining just floors at zero).

// Completed reports whether the goal has reached its target.
func (g Goal) Completed() bool {
	return g.Saved.Cents >= g.Target.Cents
}

// Progress returns percent saved, clamped to [0, 100]. A non-positive target
// reports 0 rather than dividing by zero.
func (g Goal) Progress() float64 {
	if g.Target.Cents <= 0 {
		return 0
	}
	p := float64(g.Saved.Cents) / float64(g.Target.Cents) * 100
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}

// Remaining returns the amount still to save, floored at zero.
func (g Goal) Remaining() Money {
	r := g.Target.Sub(g.Saved)
	if r.Cents < 0 {
		return Money{}
	}
	return r
}

// ETAFortnights estimates the fortnights until completion at the current
// auto-allocation amount, rounding up. ok is false when nothing is allocated
// per fortnight (no finite estimate exists).
func (g Goal) ETAFortnights() (n int, ok bool) {
	if g.AutoAllocate.Cents <= 0 {
		return 0, false
	}
	rem := g.Remaining().Cents
	if rem == 0 {
		return 0, true
	}
	n = int((rem + g.AutoAllocate.Cents - 1) / g.AutoAllocate.Cents)
	return n, true
}

// AllocationFor returns the contribution the goal earns for a fortnight, or
// ok=false when none applies: completed goals and goals created after the
// period stop accruing.
func (g Goal) AllocationFor(p Period) (Contribution, bool) {
	if g.Completed() || g.AutoAllocate.Cents <= 0 {
		return Contribution{}, false
	}
	if !g.CreatedAt.IsZero() && DateOf(g.CreatedAt).After(p.End.Time) {
		return Contribution{}, false
	}
	return Contribution{
		GoalID: g.ID,
		Amount: g.AutoAllocate,
		Date:   p.Start,
		Notes:  "auto allocation",
	}, true
}
