package core

import (
	"strings"
	"time"
)

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type (
	// Priority orders goals for display and allocation reporting.
	Priority string

	// Date is a calendar day with no time-of-day component. Always UTC
	// midnight internally.
	Date struct {
		time.Time
	}

	// ClockTime is a time of day in minutes since midnight, parsed from
	// "HH:MM" strings.
	ClockTime int

	// Workplace holds the rate configuration pay is computed from. Editing
	// a workplace never recomputes pay already stored on past shifts.
	Workplace struct {
		ID                      int64
		Name                    string
		BaseRate                Money
		WeekendMultiplier       float64
		PublicHolidayMultiplier float64
		OvertimeMultiplier      float64
		OvertimeThreshold       float64 // hours; 0 means every hour is overtime
		CreatedAt               time.Time
	}

	// Shift is a worked span at a workplace. Hours, ShiftType and TotalPay
	// are derived server-side from the workplace rates; caller-supplied pay
	// is never trusted.
	Shift struct {
		ID            int64
		WorkplaceID   int64
		WorkplaceName string
		Date          Date
		Start         ClockTime
		End           ClockTime
		Hours         float64
		Day           DayType
		Overtime      bool
		ShiftType     string
		RegularPay    Money
		OvertimePay   Money
		TotalPay      Money
		Notes         string
		Version       int64
		CreatedAt     time.Time
	}

	// Expense is a budget line. Recurring expenses hit every fortnight;
	// one-off expenses only the period containing their due date. A one-off
	// without a due date is recorded but counts toward no period.
	Expense struct {
		ID        int64
		Category  string
		Amount    Money
		DueDate   Date // zero when no due date
		Recurring bool
		Notes     string
		CreatedAt time.Time
	}

	// Goal is a savings target. Saved is derived as the sum of all
	// contributions ever applied to the goal.
	Goal struct {
		ID           int64
		Name         string
		Target       Money
		Saved        Money
		AutoAllocate Money // per fortnight
		Priority     Priority
		Deadline     Date // zero when open-ended
		Notes        string
		CreatedAt    time.Time
	}

	// Contribution is an immutable ledger entry against a goal, either
	// manual or auto-allocated.
	Contribution struct {
		ID     int64
		GoalID int64
		Amount Money
		Date   Date
		Notes  string
	}
)

// NewDate creates a Date at UTC midnight.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time.Time to its calendar day in UTC.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses an ISO 8601 date (2006-01-02).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, Validationf("invalid date %q, want YYYY-MM-DD", s)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format("2006-01-02")
}

// AddDays returns the date n days later (or earlier for negative n).
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

// DaysSince returns the whole number of days from other to d.
func (d Date) DaysSince(other Date) int {
	return int(d.Time.Sub(other.Time) / (24 * time.Hour))
}

func (d Date) IsZero() bool { return d.Time.IsZero() }

// ParseClockTime parses "HH:MM" into minutes since midnight.
func ParseClockTime(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, Validationf("invalid time %q, want HH:MM", s)
	}
	return ClockTime(t.Hour()*60 + t.Minute()), nil
}

func (c ClockTime) String() string {
	return time.Date(0, 1, 1, int(c)/60, int(c)%60, 0, 0, time.UTC).Format("15:04")
}

// HoursUntil returns the span to end in decimal hours. Negative when end is
// not after c.
func (c ClockTime) HoursUntil(end ClockTime) float64 {
	return float64(end-c) / 60.0
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Rank maps priorities to a sortable weight, highest first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

func (w Workplace) Validate() error {
	if strings.TrimSpace(w.Name) == "" {
		return Validationf("workplace name is required")
	}
	if w.BaseRate.Cents <= 0 {
		return Validationf("base rate must be positive")
	}
	if w.WeekendMultiplier < 0 || w.PublicHolidayMultiplier < 0 || w.OvertimeMultiplier < 0 {
		return Validationf("rate multipliers must be non-negative")
	}
	if w.OvertimeThreshold < 0 {
		return Validationf("overtime threshold must be non-negative")
	}
	return nil
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.Category) == "" {
		return Validationf("expense category is required")
	}
	if e.Amount.Cents < 0 {
		return Validationf("expense amount must be non-negative")
	}
	return nil
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return Validationf("goal name is required")
	}
	if g.Target.Cents <= 0 {
		return Validationf("goal target must be positive")
	}
	if g.AutoAllocate.Cents < 0 {
		return Validationf("auto-allocate amount must be non-negative")
	}
	if !g.Priority.Valid() {
		return Validationf("priority must be high, medium or low")
	}
	return nil
}

func (c Contribution) Validate() error {
	if c.GoalID <= 0 {
		return Validationf("contribution needs a goal")
	}
	if c.Amount.Cents <= 0 {
		return Validationf("contribution amount must be positive")
	}
	if c.Date.IsZero() {
		return Validationf("contribution date is required")
	}
	return nil
}
