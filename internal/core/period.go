package core

// Period is one fortnight: 14 consecutive days anchored to a known pay-period
// start. End is inclusive (start + 13 days).
type Period struct {
	Start Date
	End   Date
}

// PeriodFor resolves the fortnight containing today, given the anchor date of
// any known fortnight start. Works for dates before the anchor too: the index
// division floors toward negative infinity, not toward zero.
func PeriodFor(today, anchor Date) Period {
	days := today.DaysSince(anchor)
	idx := days / 14
	if days < 0 && days%14 != 0 {
		idx--
	}
	start := anchor.AddDays(idx * 14)
	return Period{Start: start, End: start.AddDays(13)}
}

// Contains reports whether d falls inside the period, boundaries included.
func (p Period) Contains(d Date) bool {
	return !d.Before(p.Start.Time) && !d.After(p.End.Time)
}

// Next returns the adjacent following fortnight.
func (p Period) Next() Period {
	return Period{Start: p.Start.AddDays(14), End: p.End.AddDays(14)}
}
