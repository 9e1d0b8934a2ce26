package core

import "testing"

func TestPeriodFor(t *testing.T) {
	anchor := NewDate(2024, 1, 1)

	tests := []struct {
		name      string
		today     Date
		wantStart Date
		wantEnd   Date
	}{
		{"anchor day starts period zero", NewDate(2024, 1, 1), NewDate(2024, 1, 1), NewDate(2024, 1, 14)},
		{"last day of period zero", NewDate(2024, 1, 14), NewDate(2024, 1, 1), NewDate(2024, 1, 14)},
		{"fifteenth day begins period one", NewDate(2024, 1, 15), NewDate(2024, 1, 15), NewDate(2024, 1, 28)},
		{"mid period one", NewDate(2024, 1, 20), NewDate(2024, 1, 15), NewDate(2024, 1, 28)},
		{"day before anchor", NewDate(2023, 12, 31), NewDate(2023, 12, 18), NewDate(2023, 12, 31)},
		{"two weeks before anchor", NewDate(2023, 12, 18), NewDate(2023, 12, 18), NewDate(2023, 12, 31)},
		{"far before anchor", NewDate(2023, 12, 17), NewDate(2023, 12, 4), NewDate(2023, 12, 17)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PeriodFor(tt.today, anchor)
			if !p.Start.Equal(tt.wantStart.Time) || !p.End.Equal(tt.wantEnd.Time) {
				t.Errorf("PeriodFor(%s) = [%s, %s], want [%s, %s]",
					tt.today, p.Start, p.End, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestPeriodInvariants(t *testing.T) {
	anchor := NewDate(2024, 1, 1)
	// start <= date <= end and a 13-day span, for a wide range around the anchor.
	d := NewDate(2023, 6, 1)
	for i := 0; i < 400; i++ {
		p := PeriodFor(d, anchor)
		if !p.Contains(d) {
			t.Fatalf("period [%s, %s] does not contain %s", p.Start, p.End, d)
		}
		if p.End.DaysSince(p.Start) != 13 {
			t.Fatalf("period [%s, %s] span != 13 days", p.Start, p.End)
		}
		d = d.AddDays(1)
	}
}

func TestPeriodsAreAdjacent(t *testing.T) {
	anchor := NewDate(2024, 1, 1)
	p1 := PeriodFor(NewDate(2024, 3, 5), anchor)
	p2 := PeriodFor(NewDate(2024, 3, 5).AddDays(14), anchor)
	if !p2.Start.Equal(p1.End.AddDays(1).Time) {
		t.Errorf("periods not adjacent: %s then %s", p1.End, p2.Start)
	}
	if p1.Contains(p2.Start) || p2.Contains(p1.End) {
		t.Error("adjacent periods overlap")
	}
	if next := p1.Next(); !next.Start.Equal(p2.Start.Time) || !next.End.Equal(p2.End.Time) {
		t.Errorf("Next() = [%s, %s], want [%s, %s]", next.Start, next.End, p2.Start, p2.End)
	}
}
