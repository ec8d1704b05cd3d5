package workforce

import "github.com/warp/timesheet-engine/calendar"

// =============================================================================
// SNAPSHOT - The consistent input set for one engine invocation
// =============================================================================

// Snapshot is everything a report computation consumes, materialized in
// memory. The engine never reaches into ambient stores: callers load a
// snapshot (from SQLite, a fixture, anywhere) and hand it over. Identical
// snapshots always produce identical reports, so callers may memoize.
type Snapshot struct {
	Members         []Member
	TimeEntries     []TimeEntry
	HolidayRequests []HolidayRequest
	PublicHolidays  []PublicHoliday
	CustomHolidays  []CustomHoliday
	FreezeRules     []FreezeRule
	PushMessages    []PushMessage

	// AnnualLeaveAllowance is the process-wide leave allowance in days per
	// year, shared by all members and prorated per contract.
	AnnualLeaveAllowance Amount
}

// MemberByID looks up a member. The second return value is false for
// unknown IDs.
func (s *Snapshot) MemberByID(id string) (Member, bool) {
	for _, m := range s.Members {
		if m.ID == id {
			return m, true
		}
	}
	return Member{}, false
}

// EntriesFor returns the member's time entries within the period, in input
// order.
func (s *Snapshot) EntriesFor(memberID string, period calendar.Period) []TimeEntry {
	var out []TimeEntry
	for _, e := range s.TimeEntries {
		if e.MemberID == memberID && period.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out
}

// OnApprovedLeave reports whether the member has approved leave covering
// the day.
func (s *Snapshot) OnApprovedLeave(memberID string, d calendar.Date) bool {
	for _, r := range s.HolidayRequests {
		if r.CoversApproved(memberID, d) {
			return true
		}
	}
	return false
}

// ApprovedRequestsFor returns the member's approved leave requests.
func (s *Snapshot) ApprovedRequestsFor(memberID string) []HolidayRequest {
	var out []HolidayRequest
	for _, r := range s.HolidayRequests {
		if r.MemberID == memberID && r.Status == StatusApproved {
			out = append(out, r)
		}
	}
	return out
}
