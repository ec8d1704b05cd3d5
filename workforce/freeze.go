package workforce

import (
	"time"

	"github.com/warp/timesheet-engine/calendar"
)

// =============================================================================
// FREEZE RULES - Windows where time entries are locked against edits
// =============================================================================

// FreezeRule locks time-entry creation and editing for a team (or all
// teams) within a date range. A recurring rule instead freezes everything
// up to the most recent occurrence of a weekday, rolling forward week by
// week.
type FreezeRule struct {
	ID           string
	TeamID       string // AppliesToAllTeams or a specific team ID
	Range        calendar.Period
	RecurringDay *time.Weekday
}

// appliesTo resolves the rule's team scope against a member.
func (r FreezeRule) appliesTo(m Member) bool {
	if r.TeamID == AppliesToAllTeams {
		return m.TeamID != ""
	}
	return m.TeamID != "" && r.TeamID == m.TeamID
}

// coveredEnd is the last frozen day: the fixed range end, or for recurring
// rules the most recent occurrence of the freeze weekday on or before today.
func (r FreezeRule) coveredEnd(today calendar.Date) calendar.Date {
	if r.RecurringDay == nil {
		return r.Range.End
	}
	d := today
	for d.Weekday() != *r.RecurringDay {
		d = d.AddDays(-1)
	}
	return d
}

// Frozen reports whether the given day is locked for the member by any rule.
func Frozen(day calendar.Date, member Member, rules []FreezeRule, today calendar.Date) bool {
	for _, rule := range rules {
		if !rule.appliesTo(member) {
			continue
		}
		window := calendar.Period{Start: rule.Range.Start, End: rule.coveredEnd(today)}
		if window.Contains(day) {
			return true
		}
	}
	return false
}
