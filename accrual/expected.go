package accrual

import (
	"github.com/warp/timesheet-engine/calendar"
	"github.com/warp/timesheet-engine/workforce"
)

// =============================================================================
// EXPECTED HOURS - Per-day obligation after holiday and leave exclusions
// =============================================================================

// DailyExpected is the expected hours for a plain working day: daily
// contract hours minus the daily leave credit.
func DailyExpected(contract workforce.Contract, p Proration) workforce.Amount {
	return contract.DailyHours().Sub(p.DailyLeaveHours)
}

// LeaveChecker answers whether a member is on approved leave on a day.
// *workforce.Snapshot satisfies this.
type LeaveChecker interface {
	OnApprovedLeave(memberID string, d calendar.Date) bool
}

// ExpectedByDay walks a period inclusively and assigns expected hours to
// every weekday not covered by an effective holiday or approved leave.
// Weekends and covered days carry no expectation and are absent from the
// result. The walk is deterministic: same inputs, same map.
func ExpectedByDay(
	member workforce.Member,
	period calendar.Period,
	holidays HolidaySet,
	leave LeaveChecker,
	expected workforce.Amount,
) map[calendar.Date]workforce.Amount {
	out := make(map[calendar.Date]workforce.Amount)
	for d := period.Start; d.BeforeOrEqual(period.End); d = d.AddDays(1) {
		if d.IsWeekend() {
			continue
		}
		if holidays.Contains(d) || leave.OnApprovedLeave(member.ID, d) {
			continue
		}
		out[d] = expected
	}
	return out
}
