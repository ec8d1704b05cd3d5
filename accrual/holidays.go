/*
Package accrual is the attendance-accrual engine.

PURPOSE:
  Turns contract terms, holiday calendars and approved leave into the
  per-day figures every report is built from: which days carry an
  expectation, how much leave credit a day earns, how an annual allowance
  prorates across a partial-year contract.

KEY CONCEPTS:
  - Effective holiday: a public or custom holiday that actually applies to
    a member on a weekday inside the target period (holidays.go)
  - Proration: allowance scaled by the contract's share of the year
    (proration.go)
  - Expected hours: daily contract hours minus daily leave credit, on
    weekdays not covered by holidays or approved leave (expected.go)

DESIGN PRINCIPLES:
  1. Pure functions of explicit inputs; no clocks, no stores
  2. Weekends never contribute: not to expectations, not to credits
  3. Zero denominators yield zero credit, never an error

SEE ALSO:
  - ../report: aggregates these figures into calendar and table rows
*/
package accrual

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/warp/timesheet-engine/calendar"
	"github.com/warp/timesheet-engine/workforce"
)

// =============================================================================
// HOLIDAY RESOLVER
// =============================================================================

// Holiday is a resolved holiday effective for one member: its date, display
// name, and the credited fraction of a day (1.0 full, 0.5 half).
type Holiday struct {
	Date     calendar.Date
	Name     string
	Fraction decimal.Decimal
}

// EffectiveHolidays merges the public and custom holiday calendars for one
// member over a period. A holiday is effective when its date falls inside
// the period, lands on a weekday, and — for custom holidays — its scope
// matches the member's team membership. The result is ordered by date, with
// custom holidays after public ones on the same day (the last name applied
// to a day wins in reports).
func EffectiveHolidays(
	public []workforce.PublicHoliday,
	custom []workforce.CustomHoliday,
	member workforce.Member,
	period calendar.Period,
) []Holiday {
	var out []Holiday
	for _, h := range public {
		if period.Contains(h.Date) && h.Date.IsWorkday() {
			out = append(out, Holiday{Date: h.Date, Name: h.Name, Fraction: h.Type.Fraction()})
		}
	}
	for _, h := range custom {
		if period.Contains(h.Date) && h.Date.IsWorkday() && h.AppliesToMember(member) {
			out = append(out, Holiday{Date: h.Date, Name: h.Name, Fraction: h.Type.Fraction()})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// HolidaySet indexes effective holidays by date for membership tests.
type HolidaySet map[calendar.Date]Holiday

// NewHolidaySet builds the per-date index. When several holidays share a
// date, the later entry in the resolved order is kept.
func NewHolidaySet(holidays []Holiday) HolidaySet {
	set := make(HolidaySet, len(holidays))
	for _, h := range holidays {
		set[h.Date] = h
	}
	return set
}

func (s HolidaySet) Contains(d calendar.Date) bool { _, ok := s[d]; return ok }

// =============================================================================
// WORKING DAYS
// =============================================================================

// WorkingDays counts the weekdays in a period that are not effective
// holidays. This is the denominator for per-day leave credit in team
// reports.
func WorkingDays(period calendar.Period, holidays HolidaySet) int {
	n := 0
	for d := period.Start; d.BeforeOrEqual(period.End); d = d.AddDays(1) {
		if d.IsWeekend() || holidays.Contains(d) {
			continue
		}
		n++
	}
	return n
}
