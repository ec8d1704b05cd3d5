/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	workforce data for testing and demos. Each scenario creates members,
	time entries, holidays and leave requests that demonstrate specific
	reporting behavior.

AVAILABLE SCENARIOS:

	small-team:      One Super Admin, one Team Lead, two Employees
	mid-year-hire:   Prorated leave allowance for a July 1 start
	holiday-season:  Public + custom holidays, half days, approved leave

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Create members with contracts
 3. Add time entries, holidays and requests
 4. Set the annual leave allowance

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "small-team"}

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: Shared response helpers
  - server.go: Route registration
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/warp/timesheet-engine/calendar"
	"github.com/warp/timesheet-engine/workforce"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "small-team",
		Name:        "Small Team",
		Description: "Super Admin, Team Lead and two Employees logging project time",
	},
	{
		ID:          "mid-year-hire",
		Name:        "Mid-Year Hire",
		Description: "July 1 start showing prorated leave allowance",
	},
	{
		ID:          "holiday-season",
		Name:        "Holiday Season",
		Description: "Public and custom holidays, half days, approved leave",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	if h.currentScenario == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	for _, s := range scenarios {
		if s.ID == h.currentScenario {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeJSON(w, http.StatusOK, ScenarioDTO{
		ID:   h.currentScenario,
		Name: h.currentScenario,
	})
}

// LoadScenario loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScenarioID string `json:"scenario_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()

	// Reset first
	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = ""

	var err error
	switch req.ScenarioID {
	case "small-team":
		err = h.loadSmallTeamScenario(ctx)
	case "mid-year-hire":
		err = h.loadMidYearHireScenario(ctx)
	case "holiday-season":
		err = h.loadHolidaySeasonScenario(ctx)
	default:
		writeError(w, http.StatusBadRequest, "Unknown scenario", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load scenario: %v", err), err)
		return
	}

	h.currentScenario = req.ScenarioID
	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario": req.ScenarioID})
}

// ResetDatabase clears all data without loading a scenario.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = ""
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// LoadDefaultScenario seeds the small-team scenario. Called at startup when
// the database is empty.
func (h *Handler) LoadDefaultScenario(ctx context.Context) error {
	if err := h.loadSmallTeamScenario(ctx); err != nil {
		return err
	}
	h.currentScenario = "small-team"
	return nil
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

func date(year int, month time.Month, day int) calendar.Date {
	return calendar.NewDate(year, month, day)
}

func (h *Handler) loadSmallTeamScenario(ctx context.Context) error {
	year := time.Now().UTC().Year()

	members := []workforce.Member{
		{
			ID: "admin-001", Name: "Sarah Chen", Email: "sarah@example.com",
			Role: workforce.RoleSuperAdmin,
			Contract: workforce.Contract{
				Start:       date(year-3, time.January, 1),
				WeeklyHours: workforce.Hours(40),
			},
		},
		{
			ID: "lead-001", Name: "Marcus Webb", Email: "marcus@example.com",
			Role: workforce.RoleTeamLead, TeamID: "team-platform",
			Contract: workforce.Contract{
				Start:       date(year-2, time.March, 1),
				WeeklyHours: workforce.Hours(40),
			},
		},
		{
			ID: "emp-001", Name: "Anna Keller", Email: "anna@example.com",
			Role: workforce.RoleEmployee, ReportsTo: "lead-001", TeamID: "team-platform",
			Contract: workforce.Contract{
				Start:       date(year-1, time.February, 1),
				WeeklyHours: workforce.Hours(40),
			},
		},
		{
			ID: "emp-002", Name: "Tomás Rivera", Email: "tomas@example.com",
			Role: workforce.RoleEmployee, ReportsTo: "lead-001", TeamID: "team-platform",
			Contract: workforce.Contract{
				Start:       date(year-1, time.June, 15),
				WeeklyHours: workforce.Hours(20),
			},
		},
	}
	for _, m := range members {
		if err := h.Store.SaveMember(ctx, m); err != nil {
			return err
		}
	}

	// A week of logged time against two projects.
	monday := calendar.StartOfWeek(calendar.Today())
	entries := []workforce.TimeEntry{
		{ID: "entry-001", MemberID: "emp-001", Date: monday, Start: "09:00", End: "17:00",
			Task: "Website Redesign - Backend API", Duration: workforce.Hours(8)},
		{ID: "entry-002", MemberID: "emp-001", Date: monday.AddDays(1), Start: "09:00", End: "13:00",
			Task: "Website Redesign - Frontend", Duration: workforce.Hours(4)},
		{ID: "entry-003", MemberID: "emp-001", Date: monday.AddDays(1), Start: "14:00", End: "18:00",
			Task: "Internal Tooling - CI Pipeline", Duration: workforce.Hours(4)},
		{ID: "entry-004", MemberID: "emp-002", Date: monday, Start: "09:00", End: "13:00",
			Task: "Website Redesign - Backend API", Duration: workforce.Hours(4)},
		{ID: "entry-005", MemberID: "lead-001", Date: monday, Start: "09:00", End: "17:00",
			Task: "Planning", Duration: workforce.Hours(8), Remarks: "Quarterly roadmap"},
	}
	for _, e := range entries {
		if err := h.Store.SaveTimeEntry(ctx, e); err != nil {
			return err
		}
	}

	return h.Store.SetAllowance(ctx, workforce.Days(28))
}

func (h *Handler) loadMidYearHireScenario(ctx context.Context) error {
	year := time.Now().UTC().Year()

	members := []workforce.Member{
		{
			ID: "admin-001", Name: "Sarah Chen", Email: "sarah@example.com",
			Role: workforce.RoleSuperAdmin,
			Contract: workforce.Contract{
				Start:       date(year-3, time.January, 1),
				WeeklyHours: workforce.Hours(40),
			},
		},
		{
			// Half the year on contract, so roughly half the allowance.
			ID: "emp-101", Name: "Priya Nair", Email: "priya@example.com",
			Role: workforce.RoleEmployee, ReportsTo: "admin-001",
			Contract: workforce.Contract{
				Start:       date(year, time.July, 1),
				WeeklyHours: workforce.Hours(40),
			},
		},
	}
	for _, m := range members {
		if err := h.Store.SaveMember(ctx, m); err != nil {
			return err
		}
	}
	return h.Store.SetAllowance(ctx, workforce.Days(28))
}

func (h *Handler) loadHolidaySeasonScenario(ctx context.Context) error {
	year := time.Now().UTC().Year()

	members := []workforce.Member{
		{
			ID: "admin-001", Name: "Sarah Chen", Email: "sarah@example.com",
			Role: workforce.RoleSuperAdmin,
			Contract: workforce.Contract{
				Start:       date(year-3, time.January, 1),
				WeeklyHours: workforce.Hours(40),
			},
		},
		{
			ID: "lead-001", Name: "Marcus Webb", Email: "marcus@example.com",
			Role: workforce.RoleTeamLead, TeamID: "team-platform",
			Contract: workforce.Contract{
				Start:       date(year-2, time.March, 1),
				WeeklyHours: workforce.Hours(40),
			},
		},
		{
			ID: "emp-001", Name: "Anna Keller", Email: "anna@example.com",
			Role: workforce.RoleEmployee, ReportsTo: "lead-001", TeamID: "team-platform",
			Contract: workforce.Contract{
				Start:       date(year-1, time.February, 1),
				WeeklyHours: workforce.Hours(40),
			},
		},
	}
	for _, m := range members {
		if err := h.Store.SaveMember(ctx, m); err != nil {
			return err
		}
	}

	publicHolidays := []workforce.PublicHoliday{
		{ID: "ph-001", Country: "DE", Name: "Christmas Day",
			Date: date(year, time.December, 25), Type: workforce.HolidayFullDay},
		{ID: "ph-002", Country: "DE", Name: "Boxing Day",
			Date: date(year, time.December, 26), Type: workforce.HolidayFullDay},
		{ID: "ph-003", Country: "DE", Name: "New Year's Eve",
			Date: date(year, time.December, 31), Type: workforce.HolidayHalfDay},
	}
	for _, ph := range publicHolidays {
		if err := h.Store.SavePublicHoliday(ctx, ph); err != nil {
			return err
		}
	}

	customHolidays := []workforce.CustomHoliday{
		{ID: "ch-001", Name: "Company Anniversary",
			Date: date(year, time.December, 12), Type: workforce.HolidayFullDay,
			AppliesTo: workforce.AppliesToAllMembers},
		{ID: "ch-002", Name: "Platform Offsite",
			Date: date(year, time.December, 5), Type: workforce.HolidayHalfDay,
			AppliesTo: "team-platform"},
	}
	for _, ch := range customHolidays {
		if err := h.Store.SaveCustomHoliday(ctx, ch); err != nil {
			return err
		}
	}

	request := workforce.HolidayRequest{
		ID: "req-001", MemberID: "emp-001",
		Range: calendar.Period{
			Start: date(year, time.December, 29),
			End:   date(year, time.December, 30),
		},
		Status: workforce.StatusApproved,
	}
	if err := h.Store.SaveHolidayRequest(ctx, request); err != nil {
		return err
	}

	message := workforce.PushMessage{
		ID:      "msg-001",
		Context: "Reminder",
		Body:    "Submit December timesheets before the freeze on Jan 5.",
		Window: calendar.Period{
			Start: date(year, time.December, 15),
			End:   date(year+1, time.January, 5),
		},
		Receivers: workforce.AppliesToAllMembers,
	}
	if err := h.Store.SavePushMessage(ctx, message); err != nil {
		return err
	}

	return h.Store.SetAllowance(ctx, workforce.Days(28))
}
