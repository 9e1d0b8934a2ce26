package core

import "time"

const (
	DayWeekday       DayType = "weekday"
	DayWeekend       DayType = "weekend"
	DayPublicHoliday DayType = "public_holiday"
)

// DayType classifies a calendar day for rate selection.
type DayType string

// HolidayTable is a fixed, versioned set of public holiday dates for one
// jurisdiction. Dates outside the covered years fall back to the
// weekday/weekend rule.
type HolidayTable struct {
	Region string
	dates  map[string]struct{}
}

// Australian public holidays 2026. Matches the payroll calendar the rates
// were configured against; update yearly.
var australia2026 = []string{
	"2026-01-01", "2026-01-26", "2026-04-03", "2026-04-04", "2026-04-06",
	"2026-04-25", "2026-06-08", "2026-12-25", "2026-12-26", "2026-12-28",
}

// AustralianHolidays returns the holiday table for the Australian calendar.
func AustralianHolidays() HolidayTable {
	return NewHolidayTable("AU", australia2026)
}

// NewHolidayTable builds a table from ISO dates. Malformed entries are
// ignored rather than classifying real days incorrectly.
func NewHolidayTable(region string, isoDates []string) HolidayTable {
	t := HolidayTable{Region: region, dates: make(map[string]struct{}, len(isoDates))}
	for _, s := range isoDates {
		if _, err := time.Parse("2006-01-02", s); err != nil {
			continue
		}
		t.dates[s] = struct{}{}
	}
	return t
}

// Classify maps a date to exactly one DayType. A public holiday wins over a
// weekend when both apply. Pure function of the date and the table.
func (t HolidayTable) Classify(d Date) DayType {
	if _, ok := t.dates[d.String()]; ok {
		return DayPublicHoliday
	}
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return DayWeekend
	}
	return DayWeekday
}

// IsHoliday reports whether the exact date is in the table.
func (t HolidayTable) IsHoliday(d Date) bool {
	_, ok := t.dates[d.String()]
	return ok
}
