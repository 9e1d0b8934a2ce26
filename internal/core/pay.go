package core

// PayBreakdown is the result of rating one shift against a workplace's
// configuration.
type PayBreakdown struct {
	Hours       float64
	Day         DayType
	Overtime    bool
	ShiftType   string // day type plus "_overtime" suffix when applicable
	RegularPay  Money
	OvertimePay Money
	TotalPay    Money
}

// ComputePay rates a shift. The applicable rate is the base rate adjusted for
// the day classification; the overtime multiplier stacks multiplicatively on
// top of that adjusted rate (a Saturday overtime hour earns
// base*weekend*overtime). Threshold 0 means every hour is overtime.
func ComputePay(w Workplace, date Date, start, end ClockTime, holidays HolidayTable) (PayBreakdown, error) {
	if err := w.Validate(); err != nil {
		return PayBreakdown{}, err
	}
	hours := start.HoursUntil(end)
	if hours <= 0 {
		return PayBreakdown{}, Validationf("end time %s must be after start time %s", end, start)
	}

	day := holidays.Classify(date)
	rate := w.BaseRate.Dollars()
	switch day {
	case DayWeekend:
		rate *= w.WeekendMultiplier
	case DayPublicHoliday:
		rate *= w.PublicHolidayMultiplier
	}

	b := PayBreakdown{Hours: hours, Day: day, ShiftType: string(day)}
	var regular, overtime float64
	if hours > w.OvertimeThreshold {
		regular = w.OvertimeThreshold * rate
		overtime = (hours - w.OvertimeThreshold) * rate * w.OvertimeMultiplier
		b.Overtime = true
		b.ShiftType += "_overtime"
	} else {
		regular = hours * rate
	}
	b.RegularPay = FromDollars(regular)
	b.OvertimePay = FromDollars(overtime)
	// The total rounds once, over the exact sum. Rounding the two components
	// first and adding can land a cent away from round(regular + overtime).
	b.TotalPay = FromDollars(regular + overtime)
	return b, nil
}
