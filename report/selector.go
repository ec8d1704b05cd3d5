/*
Package report is the aggregation engine.

PURPOSE:
  Combines the accrual engine's per-day figures with logged time entries
  into the two report shapes the dashboard consumes:
  - Individual view: a per-day calendar map for one member's month
  - Team view: consolidated, project-level and task-level rows for a
    role-scoped member set over a week, month or year

DESIGN PRINCIPLES:
  1. Pure over a Snapshot: same snapshot, same selector, same report
  2. The viewer is an input: role scoping is engine policy, not caller
     courtesy
  3. Remaining hours may go negative; nothing is clamped

SEE ALSO:
  - individual.go, team.go: The two report builders
  - export.go: PDF rendering of team report rows
*/
package report

import (
	"fmt"
	"time"

	"github.com/warp/timesheet-engine/calendar"
	"github.com/warp/timesheet-engine/workforce"
)

// =============================================================================
// PERIOD SELECTOR
// =============================================================================

type PeriodKind string

const (
	KindWeek  PeriodKind = "week"
	KindMonth PeriodKind = "month"
	KindYear  PeriodKind = "year"
)

// Selector picks the reporting period for the team view. Month is required
// for week and month kinds; WeekIndex indexes the month's Monday-start week
// list (clipped to the month's bounds).
type Selector struct {
	Kind      PeriodKind
	Year      int
	Month     time.Month
	WeekIndex int
}

// Period resolves the selector to a concrete date interval.
func (s Selector) Period() (calendar.Period, error) {
	if s.Year <= 0 {
		return calendar.Period{}, fmt.Errorf("%w: year %d", workforce.ErrInvalidPeriod, s.Year)
	}
	switch s.Kind {
	case KindYear:
		return calendar.Year(s.Year), nil

	case KindMonth:
		if s.Month < time.January || s.Month > time.December {
			return calendar.Period{}, fmt.Errorf("%w: month %d", workforce.ErrInvalidPeriod, s.Month)
		}
		return calendar.Month(s.Year, s.Month), nil

	case KindWeek:
		if s.Month < time.January || s.Month > time.December {
			return calendar.Period{}, fmt.Errorf("%w: month %d", workforce.ErrInvalidPeriod, s.Month)
		}
		weeks := calendar.WeeksOfMonth(s.Year, s.Month)
		if s.WeekIndex < 0 || s.WeekIndex >= len(weeks) {
			return calendar.Period{}, fmt.Errorf("%w: week index %d of %d", workforce.ErrInvalidPeriod, s.WeekIndex, len(weeks))
		}
		return weeks[s.WeekIndex], nil

	default:
		return calendar.Period{}, fmt.Errorf("%w: kind %q", workforce.ErrInvalidPeriod, s.Kind)
	}
}

// Title renders the selector for report headers and export sheets.
func (s Selector) Title() string {
	switch s.Kind {
	case KindYear:
		return fmt.Sprintf("Report for %d", s.Year)
	case KindMonth:
		return fmt.Sprintf("Report for %s %d", s.Month, s.Year)
	case KindWeek:
		if p, err := s.Period(); err == nil {
			return fmt.Sprintf("Report for W%d (%d-%d) %s %d",
				s.WeekIndex+1, p.Start.Day(), p.End.Day(), s.Month, s.Year)
		}
	}
	return "Report"
}
