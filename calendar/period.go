package calendar

import "time"

// =============================================================================
// PERIOD - Inclusive date interval
// =============================================================================

// Period is an inclusive date interval [Start, End]. All report math is
// computed over a period: a week, a month, a year, or a contract's active
// range clipped to one of those.
type Period struct {
	Start Date
	End   Date
}

// IsValid reports whether End is on or after Start.
func (p Period) IsValid() bool { return p.Start.BeforeOrEqual(p.End) }

// Contains returns true if the day falls within [Start, End].
func (p Period) Contains(d Date) bool {
	return d.AfterOrEqual(p.Start) && d.BeforeOrEqual(p.End)
}

// DayCount returns the inclusive number of days in the period.
func (p Period) DayCount() int {
	if !p.IsValid() {
		return 0
	}
	return DaysBetween(p.Start, p.End) + 1
}

// Days walks the period day by day, inclusive on both ends.
func (p Period) Days() []Date {
	var days []Date
	for d := p.Start; d.BeforeOrEqual(p.End); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

// Intersect clips this period to another. The second return value is false
// when the periods do not overlap.
func (p Period) Intersect(q Period) (Period, bool) {
	r := Period{Start: Max(p.Start, q.Start), End: Min(p.End, q.End)}
	if !r.IsValid() {
		return Period{}, false
	}
	return r, true
}

func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}

// =============================================================================
// STANDARD PERIODS
// =============================================================================

// Year returns the calendar-year period [Jan 1, Dec 31].
func Year(year int) Period {
	return Period{Start: NewDate(year, time.January, 1), End: NewDate(year, time.December, 31)}
}

// DaysInYear returns the actual day count of a calendar year (365 or 366).
func DaysInYear(year int) int { return Year(year).DayCount() }

// Month returns the calendar-month period [1st, last day].
func Month(year int, month time.Month) Period {
	start := NewDate(year, month, 1)
	return Period{Start: start, End: start.AddMonths(1).AddDays(-1)}
}

// StartOfWeek returns the Monday on or before the given day.
func StartOfWeek(d Date) Date {
	offset := (int(d.Weekday()) + 6) % 7 // Monday = 0
	return d.AddDays(-offset)
}

// WeeksOfMonth lists a month's weeks, Monday-start, with the first and last
// week clipped to the month's actual bounds. Built by walking from the
// Monday on/before the 1st to the month's last day.
func WeeksOfMonth(year int, month time.Month) []Period {
	m := Month(year, month)
	var weeks []Period
	for cur := StartOfWeek(m.Start); cur.BeforeOrEqual(m.End); cur = cur.AddDays(7) {
		week := Period{
			Start: Max(cur, m.Start),
			End:   Min(cur.AddDays(6), m.End),
		}
		weeks = append(weeks, week)
	}
	return weeks
}
