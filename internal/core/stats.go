package core

import (
	"sort"
	"time"
)

// ShiftFilter narrows a shift collection by date range and/or workplace.
// Zero fields mean no constraint.
type ShiftFilter struct {
	From        Date
	To          Date
	WorkplaceID int64
}

// FilterShifts returns the shifts matching f, preserving input order. The
// input slice is never mutated.
func FilterShifts(shifts []Shift, f ShiftFilter) []Shift {
	out := make([]Shift, 0, len(shifts))
	for _, s := range shifts {
		if !f.From.IsZero() && s.Date.Before(f.From.Time) {
			continue
		}
		if !f.To.IsZero() && s.Date.After(f.To.Time) {
			continue
		}
		if f.WorkplaceID != 0 && s.WorkplaceID != f.WorkplaceID {
			continue
		}
		out = append(out, s)
	}
	return out
}

// ShiftTotals are the basic reductions over a set of shifts.
type ShiftTotals struct {
	Count       int
	Hours       float64
	Earned      Money
	AverageRate float64 // dollars per hour; 0 when no hours
}

// Totalize reduces shifts to totals. An empty slice yields zeroes.
func Totalize(shifts []Shift) ShiftTotals {
	var t ShiftTotals
	for _, s := range shifts {
		t.Count++
		t.Hours += s.Hours
		t.Earned = t.Earned.Add(s.TotalPay)
	}
	if t.Hours > 0 {
		t.AverageRate = t.Earned.Dollars() / t.Hours
	}
	return t
}

// DayEarnings is the total earned on a single calendar day.
type DayEarnings struct {
	Date   Date
	Earned Money
}

// BestDay returns the day with the highest earnings, ties broken by the
// earliest date. ok is false for an empty input.
func BestDay(shifts []Shift) (best DayEarnings, ok bool) {
	byDay := make(map[string]DayEarnings)
	for _, s := range shifts {
		k := s.Date.String()
		d := byDay[k]
		d.Date = s.Date
		d.Earned = d.Earned.Add(s.TotalPay)
		byDay[k] = d
	}
	for _, d := range byDay {
		switch {
		case !ok,
			d.Earned.Cents > best.Earned.Cents,
			d.Earned.Cents == best.Earned.Cents && d.Date.Before(best.Date.Time):
			best = d
			ok = true
		}
	}
	return best, ok
}

// TopWorkplace returns the workplace with the most shifts, ties broken by the
// first workplace encountered in input order. ok is false for an empty input.
func TopWorkplace(shifts []Shift) (name string, count int, ok bool) {
	counts := make(map[int64]int)
	names := make(map[int64]string)
	var order []int64
	for _, s := range shifts {
		if _, seen := counts[s.WorkplaceID]; !seen {
			order = append(order, s.WorkplaceID)
			names[s.WorkplaceID] = s.WorkplaceName
		}
		counts[s.WorkplaceID]++
	}
	for _, id := range order {
		if !ok || counts[id] > count {
			name, count, ok = names[id], counts[id], true
		}
	}
	return name, count, ok
}

// BucketEarnings is one aggregation bucket keyed by its starting day
// (ISO week Monday or first of month).
type BucketEarnings struct {
	Key    string // "2026-01-05" for weeks, "2026-01" for months
	Start  Date
	Count  int
	Hours  float64
	Earned Money
}

// WeeklyBuckets groups shifts by ISO week, keyed by the week's Monday,
// sorted ascending.
func WeeklyBuckets(shifts []Shift) []BucketEarnings {
	return bucketize(shifts, func(d Date) (string, Date) {
		offset := (int(d.Weekday()) - int(time.Monday) + 7) % 7
		start := d.AddDays(-offset)
		return start.String(), start
	})
}

// MonthlyBuckets groups shifts by calendar month, keyed "YYYY-MM", sorted
// ascending.
func MonthlyBuckets(shifts []Shift) []BucketEarnings {
	return bucketize(shifts, func(d Date) (string, Date) {
		start := NewDate(d.Year(), int(d.Month()), 1)
		return start.Format("2006-01"), start
	})
}

func bucketize(shifts []Shift, keyFn func(Date) (string, Date)) []BucketEarnings {
	byKey := make(map[string]BucketEarnings)
	for _, s := range shifts {
		k, start := keyFn(s.Date)
		b := byKey[k]
		b.Key = k
		b.Start = start
		b.Count++
		b.Hours += s.Hours
		b.Earned = b.Earned.Add(s.TotalPay)
		byKey[k] = b
	}
	out := make([]BucketEarnings, 0, len(byKey))
	for _, b := range byKey {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// WeekStats summarizes the trailing seven days for the dashboard.
type WeekStats struct {
	Shifts int     `json:"shifts"`
	Hours  float64 `json:"hours"`
	Earned Money   `json:"earned"`
}

// Stats is the all-time overview exposed by the stats endpoint.
type Stats struct {
	TotalEarned       Money     `json:"total_earned"`
	TotalHours        float64   `json:"total_hours"`
	AverageRate       float64   `json:"average_rate"`
	GoalsSaved        Money     `json:"goals_saved"`
	FortnightExpenses Money     `json:"fortnight_expenses"`
	ActiveGoals       int       `json:"active_goals"`
	ThisWeek          WeekStats `json:"this_week"`
}

// BuildStats composes the overview from full entity snapshots. today anchors
// the trailing-week window (today-6 .. today inclusive).
func BuildStats(shifts []Shift, expenses []Expense, goals []Goal, today Date) Stats {
	all := Totalize(shifts)
	week := Totalize(FilterShifts(shifts, ShiftFilter{From: today.AddDays(-6), To: today}))

	var st Stats
	st.TotalEarned = all.Earned
	st.TotalHours = all.Hours
	st.AverageRate = all.AverageRate
	st.ThisWeek = WeekStats{Shifts: week.Count, Hours: week.Hours, Earned: week.Earned}
	for _, e := range expenses {
		if e.Recurring {
			st.FortnightExpenses = st.FortnightExpenses.Add(e.Amount)
		}
	}
	for _, g := range goals {
		st.GoalsSaved = st.GoalsSaved.Add(g.Saved)
		if !g.Completed() {
			st.ActiveGoals++
		}
	}
	return st
}
