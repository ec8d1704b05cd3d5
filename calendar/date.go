/*
Package calendar provides day-granularity date and interval utilities.

PURPOSE:
  Every calculation in this system is keyed on calendar days: contracts,
  holidays, leave requests and time entries all carry date-only semantics.
  This package normalizes everything to a single Date type (midnight UTC)
  so interval membership tests never suffer timezone off-by-one errors.

KEY CONCEPTS IN THIS FILE (date.go):
  - Date: a calendar day (no time-of-day, no location)
  - Parsing: accepts plain dates and full RFC 3339 timestamps, both
    truncated to the day

DESIGN PRINCIPLES:
  1. Day granularity only: no hour/minute arithmetic leaks into the engine
  2. Weekends are structural: Saturday/Sunday never count as working days
  3. Pure values: Date is comparable and safe as a map key

SEE ALSO:
  - period.go: Inclusive date intervals and week/month/year bucketing
*/
package calendar

import (
	"fmt"
	"time"
)

// Date is a single calendar day, stored at midnight UTC.
type Date struct {
	t time.Time
}

const dateLayout = "2006-01-02"

// NewDate builds a Date from year, month, day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime truncates a time.Time to its calendar day.
func FromTime(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Today returns the current calendar day.
func Today() Date {
	return FromTime(time.Now())
}

// ParseDate accepts "2006-01-02" or a full RFC 3339 timestamp and
// truncates to the day. Any other input is a descriptive error.
func ParseDate(s string) (Date, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return FromTime(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return FromTime(t), nil
	}
	return Date{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD or RFC 3339", s)
}

// Comparison
func (d Date) Before(other Date) bool        { return d.t.Before(other.t) }
func (d Date) After(other Date) bool         { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool         { return d.t.Equal(other.t) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.After(other) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.Before(other) }

// Arithmetic
func (d Date) AddDays(n int) Date   { return FromTime(d.t.AddDate(0, 0, n)) }
func (d Date) AddMonths(n int) Date { return FromTime(d.t.AddDate(0, n, 0)) }
func (d Date) AddYears(n int) Date  { return FromTime(d.t.AddDate(n, 0, 0)) }

// Properties
func (d Date) Year() int             { return d.t.Year() }
func (d Date) Month() time.Month     { return d.t.Month() }
func (d Date) Day() int              { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }
func (d Date) IsZero() bool          { return d.t.IsZero() }

// IsWeekend reports whether the day is Saturday or Sunday. Weekend days
// never accrue expected hours, leave credit, or holiday credit.
func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsWorkday is the weekday test used by every accrual walk.
func (d Date) IsWorkday() bool { return !d.IsWeekend() }

// Min returns the earlier of two dates.
func Min(a, b Date) Date {
	if a.Before(b) {
		return a
	}
	return b
}

// Max returns the later of two dates.
func Max(a, b Date) Date {
	if a.After(b) {
		return a
	}
	return b
}

// DaysBetween returns the signed day count from one date to another.
// DaysBetween(Jan 1, Jan 3) == 2.
func DaysBetween(from, to Date) int {
	return int(to.t.Sub(from.t).Hours() / 24)
}

func (d Date) String() string { return d.t.Format(dateLayout) }

// Time exposes the underlying midnight-UTC instant for formatting.
func (d Date) Time() time.Time { return d.t }
