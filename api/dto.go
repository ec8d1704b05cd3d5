/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication, decoupling the domain
  model from the external contract. Report hour figures are serialized as
  fixed two-decimal strings so identical snapshots produce byte-identical
  responses.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

SEE ALSO:
  - handlers.go: Uses these types
  - ../report: The row shapes these mirror
*/
package api

import (
	"github.com/warp/timesheet-engine/report"
	"github.com/warp/timesheet-engine/workforce"
)

// =============================================================================
// MEMBERS
// =============================================================================

// MemberDTO represents a member in API responses.
type MemberDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email,omitempty"`
	Role        string  `json:"role"`
	ReportsTo   string  `json:"reports_to,omitempty"`
	TeamID      string  `json:"team_id,omitempty"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date,omitempty"`
	WeeklyHours string  `json:"weekly_hours"`
}

// CreateMemberRequest is the request to create or replace a member.
type CreateMemberRequest struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Role        string  `json:"role"`
	ReportsTo   string  `json:"reports_to"`
	TeamID      string  `json:"team_id"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date"`
	WeeklyHours float64 `json:"weekly_hours"`
}

// =============================================================================
// TIME ENTRIES
// =============================================================================

// TimeEntryDTO represents a logged time entry.
type TimeEntryDTO struct {
	ID       string  `json:"id"`
	MemberID string  `json:"member_id"`
	Date     string  `json:"date"`
	Start    string  `json:"start_time,omitempty"`
	End      string  `json:"end_time,omitempty"`
	Task     string  `json:"task"`
	Duration float64 `json:"duration"`
	Remarks  string  `json:"remarks,omitempty"`
}

// LogTimeRequest is the request to create or update a time entry.
type LogTimeRequest struct {
	MemberID string  `json:"member_id"`
	Date     string  `json:"date"`
	Start    string  `json:"start_time"`
	End      string  `json:"end_time"`
	Task     string  `json:"task"`
	Duration float64 `json:"duration"`
	Remarks  string  `json:"remarks"`
}

// =============================================================================
// LEAVE REQUESTS
// =============================================================================

// HolidayRequestDTO represents a leave request.
type HolidayRequestDTO struct {
	ID        string `json:"id"`
	MemberID  string `json:"member_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
}

// SubmitRequestRequest is the request to submit a leave request.
type SubmitRequestRequest struct {
	MemberID  string `json:"member_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// =============================================================================
// HOLIDAYS
// =============================================================================

// HolidayDTO represents either holiday calendar entry; AppliesTo is empty
// for public holidays.
type HolidayDTO struct {
	ID        string `json:"id"`
	Country   string `json:"country,omitempty"`
	Name      string `json:"name"`
	Date      string `json:"date"`
	Type      string `json:"type"`
	AppliesTo string `json:"applies_to,omitempty"`
}

// CreateHolidayRequest creates a public or custom holiday; a non-empty
// AppliesTo makes it custom.
type CreateHolidayRequest struct {
	Country   string `json:"country"`
	Name      string `json:"name"`
	Date      string `json:"date"`
	Type      string `json:"type"`
	AppliesTo string `json:"applies_to"`
}

// =============================================================================
// REPORTS
// =============================================================================

// DayCellDTO is one day of the individual calendar view.
type DayCellDTO struct {
	Day           int            `json:"day"`
	Logged        string         `json:"logged_hours"`
	Expected      string         `json:"expected_hours"`
	HolidayName   string         `json:"holiday_name,omitempty"`
	PersonalLeave bool           `json:"personal_leave,omitempty"`
	Weekend       bool           `json:"weekend,omitempty"`
	Entries       []TimeEntryDTO `json:"entries,omitempty"`
}

// IndividualReportDTO is the monthly calendar view for one member.
type IndividualReportDTO struct {
	Member             MemberDTO          `json:"member"`
	Year               int                `json:"year"`
	Month              int                `json:"month"`
	DailyExpectedHours string             `json:"daily_expected_hours"`
	AllowanceDays      string             `json:"prorated_allowance_days"`
	Days               map[int]DayCellDTO `json:"days"`
}

// ConsolidatedRowDTO is one member's hour summary for the period.
type ConsolidatedRowDTO struct {
	Member    MemberDTO `json:"member"`
	Assigned  string    `json:"assigned_hours"`
	Leave     string    `json:"leave_hours"`
	Expected  string    `json:"expected_hours"`
	Logged    string    `json:"logged_hours"`
	Remaining string    `json:"remaining_hours"`
}

// GroupRowDTO is one (member, project-or-task) aggregate.
type GroupRowDTO struct {
	Member MemberDTO `json:"member"`
	Group  string    `json:"group"`
	Logged string    `json:"logged_hours"`
}

// TeamReportDTO is the full team view for one period.
type TeamReportDTO struct {
	Title        string               `json:"title"`
	PeriodStart  string               `json:"period_start"`
	PeriodEnd    string               `json:"period_end"`
	Consolidated []ConsolidatedRowDTO `json:"consolidated"`
	ByProject    []GroupRowDTO        `json:"by_project"`
	ByTask       []GroupRowDTO        `json:"by_task"`
}

// FreezeRuleDTO is an edit-lock window over logged time.
type FreezeRuleDTO struct {
	ID           string `json:"id"`
	TeamID       string `json:"team_id,omitempty"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	RecurringDay string `json:"recurring_day,omitempty"`
}

// CreateFreezeRuleRequest creates a freeze rule. RecurringDay, when set,
// names a weekday ("Friday") and freezes everything up to its most recent
// occurrence instead of a fixed end date.
type CreateFreezeRuleRequest struct {
	TeamID       string `json:"team_id"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	RecurringDay string `json:"recurring_day"`
}

// PushMessageDTO is an active broadcast for the viewer.
type PushMessageDTO struct {
	ID      string `json:"id"`
	Context string `json:"context,omitempty"`
	Body    string `json:"body"`
}

// ScenarioDTO represents a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AllowanceRequest sets the process-wide annual leave allowance.
type AllowanceRequest struct {
	Days float64 `json:"days"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toMemberDTO(m workforce.Member) MemberDTO {
	dto := MemberDTO{
		ID:          m.ID,
		Name:        m.Name,
		Email:       m.Email,
		Role:        string(m.Role),
		ReportsTo:   m.ReportsTo,
		TeamID:      m.TeamID,
		StartDate:   m.Contract.Start.String(),
		WeeklyHours: m.Contract.WeeklyHours.String(),
	}
	if m.Contract.End != nil {
		end := m.Contract.End.String()
		dto.EndDate = &end
	}
	return dto
}

func toTimeEntryDTO(e workforce.TimeEntry) TimeEntryDTO {
	return TimeEntryDTO{
		ID:       e.ID,
		MemberID: e.MemberID,
		Date:     e.Date.String(),
		Start:    e.Start,
		End:      e.End,
		Task:     e.Task,
		Duration: e.Duration.Float64(),
		Remarks:  e.Remarks,
	}
}

func toIndividualReportDTO(rep *report.IndividualReport) IndividualReportDTO {
	dto := IndividualReportDTO{
		Member:             toMemberDTO(rep.Member),
		Year:               rep.Year,
		Month:              int(rep.Month),
		DailyExpectedHours: rep.DailyExpectedHours.String(),
		AllowanceDays:      rep.Proration.AllowanceDays.String(),
		Days:               make(map[int]DayCellDTO, len(rep.Days)),
	}
	for day, cell := range rep.Days {
		c := DayCellDTO{
			Day:           cell.Day,
			Logged:        cell.Logged.String(),
			Expected:      cell.Expected.String(),
			HolidayName:   cell.HolidayName,
			PersonalLeave: cell.PersonalLeave,
			Weekend:       cell.Weekend,
		}
		for _, e := range cell.Entries {
			c.Entries = append(c.Entries, toTimeEntryDTO(e))
		}
		dto.Days[day] = c
	}
	return dto
}

func toTeamReportDTO(rep *report.TeamReport) TeamReportDTO {
	dto := TeamReportDTO{
		Title:        rep.Selector.Title(),
		PeriodStart:  rep.Period.Start.String(),
		PeriodEnd:    rep.Period.End.String(),
		Consolidated: []ConsolidatedRowDTO{},
		ByProject:    []GroupRowDTO{},
		ByTask:       []GroupRowDTO{},
	}
	for _, row := range rep.Consolidated {
		dto.Consolidated = append(dto.Consolidated, ConsolidatedRowDTO{
			Member:    toMemberDTO(row.Member),
			Assigned:  row.Assigned.String(),
			Leave:     row.Leave.String(),
			Expected:  row.Expected.String(),
			Logged:    row.Logged.String(),
			Remaining: row.Remaining.String(),
		})
	}
	for _, row := range rep.ByProject {
		dto.ByProject = append(dto.ByProject, toGroupRowDTO(row))
	}
	for _, row := range rep.ByTask {
		dto.ByTask = append(dto.ByTask, toGroupRowDTO(row))
	}
	return dto
}

func toGroupRowDTO(row report.GroupRow) GroupRowDTO {
	return GroupRowDTO{
		Member: toMemberDTO(row.Member),
		Group:  row.Group,
		Logged: row.Logged.String(),
	}
}

func toHolidayRequestDTO(r workforce.HolidayRequest) HolidayRequestDTO {
	return HolidayRequestDTO{
		ID:        r.ID,
		MemberID:  r.MemberID,
		StartDate: r.Range.Start.String(),
		EndDate:   r.Range.End.String(),
		Status:    string(r.Status),
	}
}
