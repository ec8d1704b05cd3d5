package report

import (
	"time"

	"github.com/warp/timesheet-engine/accrual"
	"github.com/warp/timesheet-engine/calendar"
	"github.com/warp/timesheet-engine/workforce"
)

// =============================================================================
// INDIVIDUAL VIEW - One member's month as a per-day calendar map
// =============================================================================

// DayCell is one day of the individual calendar: logged hours (entries plus
// holiday/leave credit), the day's expectation, and the flags the calendar
// highlights on.
type DayCell struct {
	Day           int
	Logged        workforce.Amount
	Expected      workforce.Amount
	HolidayName   string
	PersonalLeave bool
	Weekend       bool
	Entries       []workforce.TimeEntry
}

// IndividualReport is the monthly calendar view for a single member.
type IndividualReport struct {
	Member    workforce.Member
	Year      int
	Month     time.Month
	Proration accrual.Proration

	// DailyExpectedHours is the uniform expectation for an uncovered
	// weekday this year: daily contract hours minus daily leave credit.
	DailyExpectedHours workforce.Amount

	// Days is keyed by day of month, one cell per calendar day.
	Days map[int]*DayCell
}

// Individual builds the monthly calendar report for the selected member.
// The viewer's role scopes which members may be selected; an unknown or
// invisible member id returns ErrMemberNotFound. An empty memberID selects
// the viewer.
func Individual(
	snap *workforce.Snapshot,
	viewer workforce.Member,
	memberID string,
	year int,
	month time.Month,
	today calendar.Date,
) (*IndividualReport, error) {
	if memberID == "" {
		memberID = viewer.ID
	}
	member, ok := snap.MemberByID(memberID)
	if !ok || !workforce.CanSee(viewer, memberID, snap.Members) {
		return nil, workforce.ErrMemberNotFound
	}

	// The selectable range is the contract's active interval: a month
	// entirely before the start snaps to the start month, one entirely
	// after the horizon snaps to the horizon month.
	active := member.Contract.ActiveRange(today)
	monthRange := calendar.Month(year, month)
	if monthRange.End.Before(active.Start) {
		year, month = active.Start.Year(), active.Start.Month()
		monthRange = calendar.Month(year, month)
	} else if monthRange.Start.After(active.End) {
		year, month = active.End.Year(), active.End.Month()
		monthRange = calendar.Month(year, month)
	}

	proration, err := accrual.ProrateLeave(member.Contract, year, snap.AnnualLeaveAllowance, today)
	if err != nil {
		return nil, err
	}
	expected := accrual.DailyExpected(member.Contract, proration)

	holidays := accrual.NewHolidaySet(accrual.EffectiveHolidays(
		snap.PublicHolidays, snap.CustomHolidays, member, monthRange))

	// Expectation only accrues on days the contract covers; a mid-month
	// start leaves the leading days at zero.
	covered := monthRange
	if span, ok := monthRange.Intersect(active); ok {
		covered = span
	}
	expectedByDay := accrual.ExpectedByDay(member, covered, holidays, snap, expected)

	rep := &IndividualReport{
		Member:             member,
		Year:               year,
		Month:              month,
		Proration:          proration,
		DailyExpectedHours: expected,
		Days:               make(map[int]*DayCell, monthRange.DayCount()),
	}

	for d := monthRange.Start; d.BeforeOrEqual(monthRange.End); d = d.AddDays(1) {
		cell := &DayCell{
			Day:     d.Day(),
			Logged:  workforce.ZeroHours(),
			Weekend: d.IsWeekend(),
		}
		if e, ok := expectedByDay[d]; ok {
			cell.Expected = e
		} else {
			cell.Expected = workforce.ZeroHours()
		}

		// Logged entries for the day.
		for _, entry := range snap.EntriesFor(member.ID, calendar.Period{Start: d, End: d}) {
			cell.Entries = append(cell.Entries, entry)
			cell.Logged = cell.Logged.Add(entry.Duration)
		}

		// Holiday credit: the credit fraction of the daily expectation,
		// counted toward the logged total without an actual entry.
		if h, ok := holidays[d]; ok {
			cell.HolidayName = h.Name
			if active.Contains(d) {
				cell.Logged = cell.Logged.Add(expected.Mul(h.Fraction))
			}
		}

		// Approved personal leave: full daily expectation credited on
		// weekdays; weekend leave days are flagged but earn nothing.
		if snap.OnApprovedLeave(member.ID, d) {
			cell.PersonalLeave = true
			if d.IsWorkday() && active.Contains(d) {
				cell.Logged = cell.Logged.Add(expected)
			}
		}

		rep.Days[cell.Day] = cell
	}
	return rep, nil
}
