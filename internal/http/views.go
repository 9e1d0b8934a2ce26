package http

import (
	"time"

	"paytrack/internal/core"
)

// JSON views for domain entities. Money marshals as a two decimal dollar
// figure via core.Money.

type workplaceView struct {
	ID                      int64      `json:"id"`
	Name                    string     `json:"name"`
	BaseRate                core.Money `json:"base_rate"`
	WeekendMultiplier       float64    `json:"weekend_multiplier"`
	PublicHolidayMultiplier float64    `json:"public_holiday_multiplier"`
	OvertimeMultiplier      float64    `json:"overtime_multiplier"`
	OvertimeThreshold       float64    `json:"overtime_threshold"`
	CreatedAt               time.Time  `json:"created_at"`
}

func viewWorkplace(w core.Workplace) workplaceView {
	return workplaceView{
		ID:                      w.ID,
		Name:                    w.Name,
		BaseRate:                w.BaseRate,
		WeekendMultiplier:       w.WeekendMultiplier,
		PublicHolidayMultiplier: w.PublicHolidayMultiplier,
		OvertimeMultiplier:      w.OvertimeMultiplier,
		OvertimeThreshold:       w.OvertimeThreshold,
		CreatedAt:               w.CreatedAt,
	}
}

func viewWorkplaces(list []core.Workplace) []workplaceView {
	out := make([]workplaceView, len(list))
	for i, w := range list {
		out[i] = viewWorkplace(w)
	}
	return out
}

type shiftView struct {
	ID          int64      `json:"id"`
	WorkplaceID int64      `json:"workplace_id"`
	Workplace   string     `json:"workplace"`
	Date        string     `json:"date"`
	StartTime   string     `json:"start_time"`
	EndTime     string     `json:"end_time"`
	Hours       float64    `json:"hours"`
	ShiftType   string     `json:"shift_type"`
	Overtime    bool       `json:"overtime"`
	RegularPay  core.Money `json:"regular_pay"`
	OvertimePay core.Money `json:"overtime_pay"`
	TotalPay    core.Money `json:"total_pay"`
	Notes       string     `json:"notes,omitempty"`
}

func viewShift(s core.Shift) shiftView {
	return shiftView{
		ID:          s.ID,
		WorkplaceID: s.WorkplaceID,
		Workplace:   s.WorkplaceName,
		Date:        s.Date.String(),
		StartTime:   s.Start.String(),
		EndTime:     s.End.String(),
		Hours:       s.Hours,
		ShiftType:   s.ShiftType,
		Overtime:    s.Overtime,
		RegularPay:  s.RegularPay,
		OvertimePay: s.OvertimePay,
		TotalPay:    s.TotalPay,
		Notes:       s.Notes,
	}
}

func viewShifts(list []core.Shift) []shiftView {
	out := make([]shiftView, len(list))
	for i, s := range list {
		out[i] = viewShift(s)
	}
	return out
}

type expenseView struct {
	ID        int64      `json:"id"`
	Category  string     `json:"category"`
	Amount    core.Money `json:"amount"`
	DueDate   string     `json:"due_date,omitempty"`
	Recurring bool       `json:"recurring"`
	Notes     string     `json:"notes,omitempty"`
}

func viewExpense(e core.Expense) expenseView {
	v := expenseView{
		ID:        e.ID,
		Category:  e.Category,
		Amount:    e.Amount,
		Recurring: e.Recurring,
		Notes:     e.Notes,
	}
	if !e.DueDate.IsZero() {
		v.DueDate = e.DueDate.String()
	}
	return v
}

func viewExpenses(list []core.Expense) []expenseView {
	out := make([]expenseView, len(list))
	for i, e := range list {
		out[i] = viewExpense(e)
	}
	return out
}

type goalView struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Target        core.Money `json:"target"`
	Saved         core.Money `json:"saved"`
	Remaining     core.Money `json:"remaining"`
	Progress      float64    `json:"progress"`
	Completed     bool       `json:"completed"`
	AutoAllocate  core.Money `json:"auto_allocate"`
	Priority      string     `json:"priority"`
	Deadline      string     `json:"deadline,omitempty"`
	ETAFortnights *int       `json:"eta_fortnights,omitempty"`
	Notes         string     `json:"notes,omitempty"`
}

func viewGoal(g core.Goal) goalView {
	v := goalView{
		ID:           g.ID,
		Name:         g.Name,
		Target:       g.Target,
		Saved:        g.Saved,
		Remaining:    g.Remaining(),
		Progress:     g.Progress(),
		Completed:    g.Completed(),
		AutoAllocate: g.AutoAllocate,
		Priority:     string(g.Priority),
		Notes:        g.Notes,
	}
	if !g.Deadline.IsZero() {
		v.Deadline = g.Deadline.String()
	}
	if eta, ok := g.ETAFortnights(); ok {
		v.ETAFortnights = &eta
	}
	return v
}

func viewGoals(list []core.Goal) []goalView {
	out := make([]goalView, len(list))
	for i, g := range list {
		out[i] = viewGoal(g)
	}
	return out
}

type contributionView struct {
	ID     int64      `json:"id"`
	GoalID int64      `json:"goal_id"`
	Amount core.Money `json:"amount"`
	Date   string     `json:"date"`
	Notes  string     `json:"notes,omitempty"`
}

func viewContributions(list []core.Contribution) []contributionView {
	out := make([]contributionView, len(list))
	for i, c := range list {
		out[i] = contributionView{
			ID:     c.ID,
			GoalID: c.GoalID,
			Amount: c.Amount,
			Date:   c.Date.String(),
			Notes:  c.Notes,
		}
	}
	return out
}

type bucketView struct {
	Period string     `json:"period"`
	Shifts int        `json:"shifts"`
	Hours  float64    `json:"hours"`
	Earned core.Money `json:"earned"`
}

func viewBuckets(list []core.BucketEarnings) []bucketView {
	out := make([]bucketView, len(list))
	for i, b := range list {
		out[i] = bucketView{
			Period: b.Key,
			Shifts: b.Count,
			Hours:  b.Hours,
			Earned: b.Earned,
		}
	}
	return out
}
