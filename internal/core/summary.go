package core

// FortnightSummary is the single-period financial picture: what came in from
// shifts, what goes out to expenses and goal allocations, and what is left.
type FortnightSummary struct {
	PeriodStart     Date  `json:"period_start"`
	PeriodEnd       Date  `json:"period_end"`
	TotalEarned     Money `json:"total_earned"`
	TotalExpenses   Money `json:"total_expenses"`
	GoalAllocations Money `json:"goal_allocations"`
	NetAfterGoals   Money `json:"net_after_goals"`
}

// Summarize composes the fortnight summary from entity snapshots. Recurring
// expenses count every period; one-off expenses only when due inside it.
// Allocations count for goals still active and already created by the period.
// A negative net is a valid deficit, not an error.
func Summarize(p Period, shifts []Shift, expenses []Expense, goals []Goal) FortnightSummary {
	s := FortnightSummary{PeriodStart: p.Start, PeriodEnd: p.End}

	for _, sh := range shifts {
		if p.Contains(sh.Date) {
			s.TotalEarned = s.TotalEarned.Add(sh.TotalPay)
		}
	}
	for _, e := range expenses {
		if e.Recurring || (!e.DueDate.IsZero() && p.Contains(e.DueDate)) {
			s.TotalExpenses = s.TotalExpenses.Add(e.Amount)
		}
	}
	for _, g := range goals {
		if c, ok := g.AllocationFor(p); ok {
			s.GoalAllocations = s.GoalAllocations.Add(c.Amount)
		}
	}
	s.NetAfterGoals = s.TotalEarned.Sub(s.TotalExpenses).Sub(s.GoalAllocations)
	return s
}
