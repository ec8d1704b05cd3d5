/*
Package workforce defines the data model shared by the reporting engine.

PURPOSE:
  Members, contracts, time entries, holidays and leave requests arrive from
  external collaborators as already-loaded collections. This package gives
  them precise types and the small amount of behavior that belongs on the
  data itself: contract validation, holiday applicability, task-label
  splitting, role-based visibility.

KEY CONCEPTS IN THIS FILE (types.go):
  - Member/Contract: identity, role, reporting line, contract terms
  - TimeEntry: logged hours against a composite "Project - Task" label
  - HolidayRequest: leave with an approval status; only Approved counts
  - PublicHoliday/CustomHoliday: full/half-day credit, scoped applicability

DESIGN PRINCIPLES:
  1. Date-only semantics: every date is a calendar.Date, never a timestamp
  2. No ambient state: everything an engine call needs is in a Snapshot
  3. Closed enumerations for roles, statuses and holiday types

SEE ALSO:
  - snapshot.go: The per-invocation input snapshot
  - policy.go: Role-based visibility
  - errors.go: Data-integrity errors surfaced by validation
*/
package workforce

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/warp/timesheet-engine/calendar"
)

// =============================================================================
// ROLES
// =============================================================================

type Role string

const (
	RoleEmployee   Role = "Employee"
	RoleTeamLead   Role = "Team Lead"
	RoleSuperAdmin Role = "Super Admin"
)

// ParseRole maps a stored role string onto the closed enumeration.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleEmployee, RoleTeamLead, RoleSuperAdmin:
		return Role(s), nil
	}
	return "", &FieldError{Field: "role", Value: s, Reason: "unknown role"}
}

// =============================================================================
// MEMBER & CONTRACT
// =============================================================================

// Contract holds a member's working terms. End == nil means open-ended;
// calculations then use "today" as the horizon.
type Contract struct {
	Start       calendar.Date
	End         *calendar.Date
	WeeklyHours Amount
}

var five = decimal.NewFromInt(5)

// DailyHours is the contract's daily obligation: weekly hours over a
// five-day week.
func (c Contract) DailyHours() Amount {
	return Amount{Value: c.WeeklyHours.Value.Div(five), Unit: UnitHours}
}

// Horizon returns the contract end, or today for open-ended contracts.
func (c Contract) Horizon(today calendar.Date) calendar.Date {
	if c.End != nil {
		return *c.End
	}
	return today
}

// ActiveRange is the contract's active interval with the open end resolved.
func (c Contract) ActiveRange(today calendar.Date) calendar.Period {
	return calendar.Period{Start: c.Start, End: c.Horizon(today)}
}

// Validate surfaces data-integrity problems instead of silently defaulting.
func (c Contract) Validate() error {
	if c.Start.IsZero() {
		return &ContractError{Reason: "missing start date"}
	}
	if c.End != nil && c.End.Before(c.Start) {
		return &ContractError{Reason: "end date before start date"}
	}
	if !c.WeeklyHours.IsPositive() {
		return &ContractError{Reason: "weekly hours must be positive"}
	}
	return nil
}

// Member is one person in the workforce.
type Member struct {
	ID        string
	Name      string
	Email     string
	Role      Role
	ReportsTo string // manager's member ID, empty if none
	TeamID    string // empty if not on a team
	Contract  Contract
}

// =============================================================================
// TIME ENTRIES
// =============================================================================

// TimeEntry is one logged block of work. Task carries the composite
// "Project - Task" label inherited from the tracking UI.
type TimeEntry struct {
	ID       string
	MemberID string
	Date     calendar.Date
	Start    string // "HH:MM", informational only
	End      string
	Task     string
	Duration Amount // hours, >= 0
	Remarks  string
}

const taskSeparator = " - "

// ProjectName is the text before the first " - " separator, or the whole
// label when no separator is present.
func (e TimeEntry) ProjectName() string {
	name, _, _ := strings.Cut(e.Task, taskSeparator)
	return name
}

// TaskName is the remainder after the first separator. Empty when the label
// has no separator; aggregation substitutes "Unspecified" at that level.
func (e TimeEntry) TaskName() string {
	_, task, _ := strings.Cut(e.Task, taskSeparator)
	return task
}

// =============================================================================
// HOLIDAY REQUESTS (personal leave)
// =============================================================================

type RequestStatus string

const (
	StatusPending  RequestStatus = "Pending"
	StatusApproved RequestStatus = "Approved"
	StatusRejected RequestStatus = "Rejected"
)

// HolidayRequest is a member's leave request over an inclusive date range.
type HolidayRequest struct {
	ID       string
	MemberID string
	Range    calendar.Period
	Status   RequestStatus
}

// CoversApproved reports whether this request is approved leave for the
// member on the given day.
func (r HolidayRequest) CoversApproved(memberID string, d calendar.Date) bool {
	return r.MemberID == memberID && r.Status == StatusApproved && r.Range.Contains(d)
}

// =============================================================================
// HOLIDAYS
// =============================================================================

type HolidayType string

const (
	HolidayFullDay HolidayType = "Full Day"
	HolidayHalfDay HolidayType = "Half Day"
)

var half = decimal.NewFromFloat(0.5)

// Fraction is the credited share of a day's expected hours: 1.0 for a full
// day, 0.5 for a half day.
func (t HolidayType) Fraction() decimal.Decimal {
	if t == HolidayHalfDay {
		return half
	}
	return decimal.NewFromInt(1)
}

// PublicHoliday applies to all members unconditionally.
type PublicHoliday struct {
	ID      string
	Country string
	Name    string
	Date    calendar.Date
	Type    HolidayType
}

// Applicability scopes for custom holidays, freeze rules and push messages.
const (
	AppliesToAllMembers = "all-members"
	AppliesToAllTeams   = "all-teams"
)

// CustomHoliday is an organization-defined holiday scoped to all members,
// all teams, or one specific team.
type CustomHoliday struct {
	ID        string
	Country   string
	Name      string
	Date      calendar.Date
	Type      HolidayType
	AppliesTo string // AppliesToAllMembers, AppliesToAllTeams, or a team ID
}

// AppliesToMember resolves the scope against a member's team membership.
func (h CustomHoliday) AppliesToMember(m Member) bool {
	switch h.AppliesTo {
	case AppliesToAllMembers:
		return true
	case AppliesToAllTeams:
		return m.TeamID != ""
	default:
		return h.AppliesTo == m.TeamID
	}
}
