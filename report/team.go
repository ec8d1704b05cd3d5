package report

import (
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/warp/timesheet-engine/accrual"
	"github.com/warp/timesheet-engine/calendar"
	"github.com/warp/timesheet-engine/workforce"
)

// =============================================================================
// TEAM VIEW - Consolidated, project-level and task-level rows
// =============================================================================

// ConsolidatedRow is one member's hour summary for the selected period.
// Remaining may be negative, signaling overage; it is never clamped.
type ConsolidatedRow struct {
	Member    workforce.Member
	Assigned  workforce.Amount
	Leave     workforce.Amount
	Expected  workforce.Amount
	Logged    workforce.Amount
	Remaining workforce.Amount
}

// GroupRow is one (member, group) aggregate, where the group is a project
// or task name extracted from the composite entry label.
type GroupRow struct {
	Member workforce.Member
	Group  string
	Logged workforce.Amount
}

// TeamReport is the full team view for one period.
type TeamReport struct {
	Selector     Selector
	Period       calendar.Period
	Consolidated []ConsolidatedRow
	ByProject    []GroupRow
	ByTask       []GroupRow
}

// unspecifiedTask substitutes for an empty task name in the task-level
// breakdown only; project grouping keeps the raw (possibly whole) label.
const unspecifiedTask = "Unspecified"

// Team builds the period report for every member the viewer may see.
// Super Admins see the whole workforce, Team Leads their direct reports
// plus themselves, Employees only themselves.
func Team(
	snap *workforce.Snapshot,
	viewer workforce.Member,
	sel Selector,
	today calendar.Date,
) (*TeamReport, error) {
	period, err := sel.Period()
	if err != nil {
		return nil, err
	}

	visible := workforce.VisibleMembers(viewer, snap.Members)
	yearRange := calendar.Year(sel.Year)

	rep := &TeamReport{Selector: sel, Period: period}

	// Period entries per visible member, one pass over the snapshot.
	entriesByMember := make(map[string][]workforce.TimeEntry, len(visible))
	for _, m := range visible {
		entriesByMember[m.ID] = snap.EntriesFor(m.ID, period)
	}

	for _, m := range visible {
		if err := m.Contract.Validate(); err != nil {
			return nil, fmt.Errorf("member %s: %w", m.ID, err)
		}
		daily := m.Contract.DailyHours()

		// Holidays effective for this member across the whole year; the
		// year-wide working-day count is the leave-credit denominator.
		holidays := accrual.NewHolidaySet(accrual.EffectiveHolidays(
			snap.PublicHolidays, snap.CustomHolidays, m, yearRange))
		workingDaysInYear := accrual.WorkingDays(yearRange, holidays)
		workingDaysInPeriod := accrual.WorkingDays(period, holidays)

		assigned := daily.MulInt(workingDaysInPeriod)
		yearlyLeaveHours := snap.AnnualLeaveAllowance.InHours(daily)
		dailyLeaveCredit := yearlyLeaveHours.DivInt(workingDaysInYear)
		leave := dailyLeaveCredit.MulInt(workingDaysInPeriod)
		expected := assigned.Sub(leave)

		logged := workforce.ZeroHours()
		for _, e := range entriesByMember[m.ID] {
			logged = logged.Add(e.Duration)
		}

		rep.Consolidated = append(rep.Consolidated, ConsolidatedRow{
			Member:    m,
			Assigned:  assigned,
			Leave:     leave,
			Expected:  expected,
			Logged:    logged,
			Remaining: expected.Sub(logged),
		})
	}

	rep.ByProject = groupEntries(visible, entriesByMember, func(e workforce.TimeEntry) string {
		return e.ProjectName()
	})
	rep.ByTask = groupEntries(visible, entriesByMember, func(e workforce.TimeEntry) string {
		if name := e.TaskName(); name != "" {
			return name
		}
		return unspecifiedTask
	})

	sortRows(rep)
	return rep, nil
}

// groupEntries sums durations by (member, group key), preserving one row
// per distinct pair.
func groupEntries(
	members []workforce.Member,
	entriesByMember map[string][]workforce.TimeEntry,
	keyOf func(workforce.TimeEntry) string,
) []GroupRow {
	type groupKey struct {
		memberID string
		group    string
	}
	sums := make(map[groupKey]workforce.Amount)
	var order []groupKey

	for _, m := range members {
		for _, e := range entriesByMember[m.ID] {
			k := groupKey{memberID: m.ID, group: keyOf(e)}
			if _, ok := sums[k]; !ok {
				order = append(order, k)
				sums[k] = workforce.ZeroHours()
			}
			sums[k] = sums[k].Add(e.Duration)
		}
	}

	byID := make(map[string]workforce.Member, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}

	rows := make([]GroupRow, 0, len(order))
	for _, k := range order {
		rows = append(rows, GroupRow{Member: byID[k.memberID], Group: k.group, Logged: sums[k]})
	}
	return rows
}

// sortRows orders every row set by member display name (locale-aware,
// ascending), with group name and member id as deterministic tie-breaks.
func sortRows(rep *TeamReport) {
	c := collate.New(language.English)

	sort.SliceStable(rep.Consolidated, func(i, j int) bool {
		a, b := rep.Consolidated[i].Member, rep.Consolidated[j].Member
		if r := c.CompareString(a.Name, b.Name); r != 0 {
			return r < 0
		}
		return a.ID < b.ID
	})

	byMemberThenGroup := func(rows []GroupRow) func(i, j int) bool {
		return func(i, j int) bool {
			a, b := rows[i], rows[j]
			if r := c.CompareString(a.Member.Name, b.Member.Name); r != 0 {
				return r < 0
			}
			if a.Member.ID != b.Member.ID {
				return a.Member.ID < b.Member.ID
			}
			return a.Group < b.Group
		}
	}
	sort.SliceStable(rep.ByProject, byMemberThenGroup(rep.ByProject))
	sort.SliceStable(rep.ByTask, byMemberThenGroup(rep.ByTask))
}
