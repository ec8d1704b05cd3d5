package calendar_test

import (
	"testing"
	"time"

	"github.com/warp/timesheet-engine/calendar"
)

// =============================================================================
// PERIOD BASICS
// =============================================================================

func TestPeriod_ContainsInclusiveBounds(t *testing.T) {
	p := calendar.Period{
		Start: calendar.NewDate(2025, time.June, 10),
		End:   calendar.NewDate(2025, time.June, 20),
	}

	if !p.Contains(p.Start) || !p.Contains(p.End) {
		t.Error("period must contain both bounds")
	}
	if p.Contains(p.Start.AddDays(-1)) || p.Contains(p.End.AddDays(1)) {
		t.Error("period must not contain days outside the bounds")
	}
	if got := p.DayCount(); got != 11 {
		t.Errorf("DayCount = %d, want 11", got)
	}
}

func TestPeriod_Intersect(t *testing.T) {
	a := calendar.Period{
		Start: calendar.NewDate(2025, time.January, 1),
		End:   calendar.NewDate(2025, time.June, 30),
	}
	b := calendar.Period{
		Start: calendar.NewDate(2025, time.June, 1),
		End:   calendar.NewDate(2025, time.December, 31),
	}

	got, ok := a.Intersect(b)
	if !ok {
		t.Fatal("overlapping periods must intersect")
	}
	if got.Start.String() != "2025-06-01" || got.End.String() != "2025-06-30" {
		t.Errorf("got %s, want [2025-06-01, 2025-06-30]", got)
	}

	c := calendar.Period{
		Start: calendar.NewDate(2026, time.January, 1),
		End:   calendar.NewDate(2026, time.January, 31),
	}
	if _, ok := a.Intersect(c); ok {
		t.Error("disjoint periods must not intersect")
	}
}

// =============================================================================
// STANDARD PERIODS
// =============================================================================

func TestDaysInYear(t *testing.T) {
	if got := calendar.DaysInYear(2025); got != 365 {
		t.Errorf("2025 has %d days, want 365", got)
	}
	if got := calendar.DaysInYear(2024); got != 366 {
		t.Errorf("2024 has %d days, want 366", got)
	}
}

func TestMonth_LeapFebruary(t *testing.T) {
	feb := calendar.Month(2024, time.February)
	if got := feb.DayCount(); got != 29 {
		t.Errorf("February 2024 has %d days, want 29", got)
	}
	if feb.End.String() != "2024-02-29" {
		t.Errorf("February 2024 ends on %s, want 2024-02-29", feb.End)
	}
}

func TestStartOfWeek(t *testing.T) {
	// GIVEN: Jan 6 2025 is a Monday
	monday := calendar.NewDate(2025, time.January, 6)

	// THEN: Every day of that week maps back to the same Monday
	for offset := 0; offset < 7; offset++ {
		d := monday.AddDays(offset)
		if got := calendar.StartOfWeek(d); !got.Equal(monday) {
			t.Errorf("StartOfWeek(%s) = %s, want %s", d, got, monday)
		}
	}

	// AND: A Sunday belongs to the week of the previous Monday
	sunday := calendar.NewDate(2025, time.January, 5)
	if got := calendar.StartOfWeek(sunday); got.String() != "2024-12-30" {
		t.Errorf("StartOfWeek(Sunday Jan 5) = %s, want 2024-12-30", got)
	}
}

func TestWeeksOfMonth_ClippedToMonthBounds(t *testing.T) {
	// GIVEN: January 2025 starts on a Wednesday
	// WHEN: Listing its weeks
	// THEN: The first and last weeks are clipped to Jan 1 and Jan 31
	weeks := calendar.WeeksOfMonth(2025, time.January)

	if len(weeks) != 5 {
		t.Fatalf("January 2025 has %d weeks, want 5", len(weeks))
	}
	if weeks[0].Start.String() != "2025-01-01" || weeks[0].End.String() != "2025-01-05" {
		t.Errorf("first week = %s, want [2025-01-01, 2025-01-05]", weeks[0])
	}
	if weeks[1].Start.String() != "2025-01-06" || weeks[1].End.String() != "2025-01-12" {
		t.Errorf("second week = %s, want [2025-01-06, 2025-01-12]", weeks[1])
	}
	if weeks[4].Start.String() != "2025-01-27" || weeks[4].End.String() != "2025-01-31" {
		t.Errorf("last week = %s, want [2025-01-27, 2025-01-31]", weeks[4])
	}
}

func TestWeeksOfMonth_CoverEveryDayOnce(t *testing.T) {
	weeks := calendar.WeeksOfMonth(2025, time.June)

	total := 0
	for _, w := range weeks {
		total += w.DayCount()
	}
	if total != 30 {
		t.Errorf("weeks of June 2025 cover %d days, want 30", total)
	}
}
