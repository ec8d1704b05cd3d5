/*
handlers_test.go - HTTP-level tests for the API surface

Tests for:
- Viewer resolution and role scoping over the member list
- Time entry lifecycle with permission and freeze gates
- Leave request submission and approval authority
- Report endpoints (JSON and PDF) end to end over a real store
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/warp/timesheet-engine/calendar"
	"github.com/warp/timesheet-engine/store/sqlite"
	"github.com/warp/timesheet-engine/workforce"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestServer(t *testing.T) (*httptest.Server, *sqlite.Store) {
	t.Helper()
	store, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	h := NewHandler(store)
	h.Now = func() calendar.Date { return calendar.NewDate(2026, time.January, 15) }

	srv := httptest.NewServer(NewRouter(h))
	t.Cleanup(srv.Close)
	return srv, store
}

func seedWorkforce(t *testing.T, store *sqlite.Store) {
	t.Helper()
	ctx := context.Background()
	contract := workforce.Contract{
		Start:       calendar.NewDate(2024, time.January, 1),
		WeeklyHours: workforce.Hours(40),
	}
	members := []workforce.Member{
		{ID: "admin-1", Name: "Sarah Chen", Role: workforce.RoleSuperAdmin, Contract: contract},
		{ID: "lead-1", Name: "Marcus Webb", Role: workforce.RoleTeamLead, TeamID: "team-a", Contract: contract},
		{ID: "emp-1", Name: "Anna Keller", Role: workforce.RoleEmployee, ReportsTo: "lead-1", TeamID: "team-a", Contract: contract},
	}
	for _, m := range members {
		if err := store.SaveMember(ctx, m); err != nil {
			t.Fatalf("Failed to seed member: %v", err)
		}
	}
	if err := store.SetAllowance(ctx, workforce.Days(28)); err != nil {
		t.Fatalf("Failed to set allowance: %v", err)
	}
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return out
}

// =============================================================================
// MEMBERS & VIEWER RESOLUTION
// =============================================================================

func TestListMembers_ScopedByRole(t *testing.T) {
	srv, store := newTestServer(t)
	seedWorkforce(t, store)

	// Super Admin sees everyone
	resp := doJSON(t, "GET", srv.URL+"/api/members?viewer=admin-1", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if got := decode[[]MemberDTO](t, resp); len(got) != 3 {
		t.Errorf("admin sees %d members, want 3", len(got))
	}

	// Employee sees only themselves
	resp = doJSON(t, "GET", srv.URL+"/api/members?viewer=emp-1", nil)
	got := decode[[]MemberDTO](t, resp)
	if len(got) != 1 || got[0].ID != "emp-1" {
		t.Errorf("employee sees %v, want only themselves", got)
	}
}

func TestListMembers_UnknownViewer(t *testing.T) {
	srv, store := newTestServer(t)
	seedWorkforce(t, store)

	resp := doJSON(t, "GET", srv.URL+"/api/members?viewer=ghost", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}

	resp = doJSON(t, "GET", srv.URL+"/api/members", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing viewer: status = %d, want 404", resp.StatusCode)
	}
}

// =============================================================================
// TIME ENTRIES
// =============================================================================

func TestLogTime_OwnerSucceeds(t *testing.T) {
	srv, store := newTestServer(t)
	seedWorkforce(t, store)

	resp := doJSON(t, "POST", srv.URL+"/api/entries?viewer=emp-1", LogTimeRequest{
		MemberID: "emp-1",
		Date:     "2025-07-09",
		Task:     "Website Redesign - Backend API",
		Duration: 8,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	entry := decode[TimeEntryDTO](t, resp)
	if entry.ID == "" {
		t.Error("created entry must get a generated id")
	}
	if entry.Duration != 8 {
		t.Errorf("duration = %v, want 8", entry.Duration)
	}
}

func TestLogTime_ForbiddenForOtherMembers(t *testing.T) {
	srv, store := newTestServer(t)
	seedWorkforce(t, store)

	// An employee cannot log against their lead
	resp := doJSON(t, "POST", srv.URL+"/api/entries?viewer=emp-1", LogTimeRequest{
		MemberID: "lead-1", Date: "2025-07-09", Task: "Planning", Duration: 4,
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want 403", resp.StatusCode)
	}

	// A lead can log against a direct report
	resp = doJSON(t, "POST", srv.URL+"/api/entries?viewer=lead-1", LogTimeRequest{
		MemberID: "emp-1", Date: "2025-07-09", Task: "Planning", Duration: 4,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("lead logging for report: status = %d, want 201", resp.StatusCode)
	}
}

func TestLogTime_FrozenDateRejected(t *testing.T) {
	srv, store := newTestServer(t)
	seedWorkforce(t, store)

	err := store.SaveFreezeRule(context.Background(), workforce.FreezeRule{
		ID: "f-1", TeamID: "team-a",
		Range: calendar.Period{
			Start: calendar.NewDate(2025, time.June, 1),
			End:   calendar.NewDate(2025, time.June, 30),
		},
	})
	if err != nil {
		t.Fatalf("Failed to save freeze rule: %v", err)
	}

	resp := doJSON(t, "POST", srv.URL+"/api/entries?viewer=emp-1", LogTimeRequest{
		MemberID: "emp-1", Date: "2025-06-09", Task: "Planning", Duration: 8,
	})
	if resp.StatusCode != http.StatusLocked {
		t.Errorf("status = %d, want 423", resp.StatusCode)
	}
}

func TestLogTime_BadInput(t *testing.T) {
	srv, store := newTestServer(t)
	seedWorkforce(t, store)

	resp := doJSON(t, "POST", srv.URL+"/api/entries?viewer=emp-1", LogTimeRequest{
		MemberID: "emp-1", Date: "09/06/2025", Task: "Planning", Duration: 8,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad date: status = %d, want 400", resp.StatusCode)
	}

	resp = doJSON(t, "POST", srv.URL+"/api/entries?viewer=emp-1", LogTimeRequest{
		MemberID: "emp-1", Date: "2025-07-09", Task: "Planning", Duration: -1,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("negative duration: status = %d, want 400", resp.StatusCode)
	}
}

func TestDeleteEntry_LeadDeletesReportsEntry(t *testing.T) {
	srv, store := newTestServer(t)
	seedWorkforce(t, store)

	entry := workforce.TimeEntry{
		ID: "e-1", MemberID: "emp-1",
		Date: calendar.NewDate(2025, time.July, 9), Task: "Planning",
		Duration: workforce.Hours(8),
	}
	if err := store.SaveTimeEntry(context.Background(), entry); err != nil {
		t.Fatalf("Failed to seed entry: %v", err)
	}

	resp := doJSON(t, "DELETE", srv.URL+"/api/entries/e-1?viewer=lead-1", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", resp.StatusCode)
	}

	got, err := store.GetTimeEntry(context.Background(), "e-1")
	if err != nil {
		t.Fatalf("GetTimeEntry failed: %v", err)
	}
	if got != nil {
		t.Error("entry must be deleted")
	}
}

// =============================================================================
// LEAVE REQUESTS
// =============================================================================

func TestRequestApprovalFlow(t *testing.T) {
	srv, store := newTestServer(t)
	seedWorkforce(t, store)

	// GIVEN: An employee submits a request
	resp := doJSON(t, "POST", srv.URL+"/api/requests?viewer=emp-1", SubmitRequestRequest{
		StartDate: "2025-07-07", EndDate: "2025-07-11",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("submit: status = %d, want 201", resp.StatusCode)
	}
	req := decode[HolidayRequestDTO](t, resp)
	if req.Status != "Pending" {
		t.Errorf("new request status = %q, want Pending", req.Status)
	}
	if req.MemberID != "emp-1" {
		t.Errorf("request member = %q, want the viewer", req.MemberID)
	}

	// WHEN: Another employee tries to approve it
	resp = doJSON(t, "POST", fmt.Sprintf("%s/api/requests/%s/approve?viewer=emp-1", srv.URL, req.ID), nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("self-approval: status = %d, want 403", resp.StatusCode)
	}

	// THEN: The lead approves it
	resp = doJSON(t, "POST", fmt.Sprintf("%s/api/requests/%s/approve?viewer=lead-1", srv.URL, req.ID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("approve: status = %d, want 200", resp.StatusCode)
	}
	approved := decode[HolidayRequestDTO](t, resp)
	if approved.Status != "Approved" {
		t.Errorf("status after approval = %q, want Approved", approved.Status)
	}
}

func TestSubmitRequest_EndBeforeStart(t *testing.T) {
	srv, store := newTestServer(t)
	seedWorkforce(t, store)

	resp := doJSON(t, "POST", srv.URL+"/api/requests?viewer=emp-1", SubmitRequestRequest{
		StartDate: "2025-07-11", EndDate: "2025-07-07",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

// =============================================================================
// REPORTS
// =============================================================================

func TestIndividualReport_Endpoint(t *testing.T) {
	srv, store := newTestServer(t)
	seedWorkforce(t, store)

	resp := doJSON(t, "GET", srv.URL+"/api/reports/individual?viewer=emp-1&year=2025&month=6", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	rep := decode[IndividualReportDTO](t, resp)
	if rep.Member.ID != "emp-1" {
		t.Errorf("report member = %q, want emp-1", rep.Member.ID)
	}
	if len(rep.Days) != 30 {
		t.Errorf("June report has %d days, want 30", len(rep.Days))
	}
	// 40h contract, 28 days allowance, full 2025: 8.00 - 224/365
	if rep.DailyExpectedHours != "7.39" {
		t.Errorf("daily expected = %q, want 7.39", rep.DailyExpectedHours)
	}
}

func TestIndividualReport_VisibilityEnforced(t *testing.T) {
	srv, store := newTestServer(t)
	seedWorkforce(t, store)

	resp := doJSON(t, "GET", srv.URL+"/api/reports/individual?viewer=emp-1&member=lead-1&year=2025&month=6", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for a member outside visibility", resp.StatusCode)
	}
}

func TestTeamReport_Endpoint(t *testing.T) {
	srv, store := newTestServer(t)
	seedWorkforce(t, store)

	resp := doJSON(t, "GET", srv.URL+"/api/reports/team?viewer=admin-1&kind=week&year=2025&month=6&week=2", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	rep := decode[TeamReportDTO](t, resp)
	if rep.PeriodStart != "2025-06-09" || rep.PeriodEnd != "2025-06-15" {
		t.Errorf("period = [%s, %s], want [2025-06-09, 2025-06-15]", rep.PeriodStart, rep.PeriodEnd)
	}
	if len(rep.Consolidated) != 3 {
		t.Errorf("consolidated rows = %d, want 3", len(rep.Consolidated))
	}
	if rep.Consolidated[0].Assigned != "40.00" {
		t.Errorf("assigned = %q, want 40.00", rep.Consolidated[0].Assigned)
	}
}

func TestTeamReport_BadSelector(t *testing.T) {
	srv, store := newTestServer(t)
	seedWorkforce(t, store)

	resp := doJSON(t, "GET", srv.URL+"/api/reports/team?viewer=admin-1&kind=week&year=2025&month=6&week=99", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestExportTeamReport_ReturnsPDF(t *testing.T) {
	srv, store := newTestServer(t)
	seedWorkforce(t, store)

	resp := doJSON(t, "GET", srv.URL+"/api/reports/team/export?viewer=admin-1&kind=month&year=2025&month=6", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content type = %q, want application/pdf", ct)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "%PDF") {
		t.Error("body must be a PDF document")
	}
}

// =============================================================================
// HOLIDAYS, SETTINGS, SCENARIOS
// =============================================================================

func TestCreateHoliday_AdminOnly(t *testing.T) {
	srv, store := newTestServer(t)
	seedWorkforce(t, store)

	resp := doJSON(t, "POST", srv.URL+"/api/holidays?viewer=emp-1", CreateHolidayRequest{
		Name: "Sneaky Day Off", Date: "2025-12-24", Type: "Full Day",
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("employee creating holiday: status = %d, want 403", resp.StatusCode)
	}

	resp = doJSON(t, "POST", srv.URL+"/api/holidays?viewer=admin-1", CreateHolidayRequest{
		Country: "DE", Name: "Christmas Day", Date: "2025-12-25", Type: "Full Day",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	// Custom holiday via applies_to
	resp = doJSON(t, "POST", srv.URL+"/api/holidays?viewer=admin-1", CreateHolidayRequest{
		Name: "Offsite", Date: "2025-12-05", Type: "Half Day", AppliesTo: "team-a",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("custom holiday: status = %d, want 201", resp.StatusCode)
	}

	snap, err := store.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if len(snap.PublicHolidays) != 1 || len(snap.CustomHolidays) != 1 {
		t.Errorf("got %d public / %d custom holidays, want 1 / 1",
			len(snap.PublicHolidays), len(snap.CustomHolidays))
	}
}

func TestSetAllowance_AdminOnly(t *testing.T) {
	srv, store := newTestServer(t)
	seedWorkforce(t, store)

	resp := doJSON(t, "PUT", srv.URL+"/api/settings/allowance?viewer=emp-1", AllowanceRequest{Days: 30})
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("employee: status = %d, want 403", resp.StatusCode)
	}

	resp = doJSON(t, "PUT", srv.URL+"/api/settings/allowance?viewer=admin-1", AllowanceRequest{Days: 30})
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("admin: status = %d, want 204", resp.StatusCode)
	}

	snap, err := store.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if got := snap.AnnualLeaveAllowance.String(); got != "30.00" {
		t.Errorf("allowance = %s, want 30.00", got)
	}
}

func TestScenarios_LoadAndList(t *testing.T) {
	srv, store := newTestServer(t)
	_ = store

	resp := doJSON(t, "GET", srv.URL+"/api/scenarios", nil)
	if got := decode[[]ScenarioDTO](t, resp); len(got) != 3 {
		t.Errorf("scenario list has %d entries, want 3", len(got))
	}

	resp = doJSON(t, "POST", srv.URL+"/api/scenarios/load", map[string]string{"scenario_id": "small-team"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("load: status = %d, want 200", resp.StatusCode)
	}

	snap, err := store.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if len(snap.Members) != 4 {
		t.Errorf("small-team seeds %d members, want 4", len(snap.Members))
	}

	resp = doJSON(t, "GET", srv.URL+"/api/scenarios/current", nil)
	current := decode[ScenarioDTO](t, resp)
	if current.ID != "small-team" {
		t.Errorf("current scenario = %q, want small-team", current.ID)
	}
}

func TestCreateFreezeRule(t *testing.T) {
	srv, store := newTestServer(t)
	seedWorkforce(t, store)

	resp := doJSON(t, "POST", srv.URL+"/api/freezes?viewer=admin-1", CreateFreezeRuleRequest{
		TeamID: "team-a", StartDate: "2025-06-01", EndDate: "2025-06-30",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	resp = doJSON(t, "POST", srv.URL+"/api/freezes?viewer=admin-1", CreateFreezeRuleRequest{
		StartDate: "2025-01-01", RecurringDay: "Friday",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("recurring rule: status = %d, want 201", resp.StatusCode)
	}
	rule := decode[FreezeRuleDTO](t, resp)
	if rule.RecurringDay != "Friday" {
		t.Errorf("recurring day = %q, want Friday", rule.RecurringDay)
	}

	snap, err := store.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if len(snap.FreezeRules) != 2 {
		t.Errorf("freeze rules = %d, want 2", len(snap.FreezeRules))
	}
}

func TestListMessages_ActiveOnly(t *testing.T) {
	srv, store := newTestServer(t)
	seedWorkforce(t, store)

	// Now() is fixed at 2026-01-15; one live window, one expired.
	messages := []workforce.PushMessage{
		{ID: "live", Body: "Live", Receivers: workforce.AppliesToAllMembers,
			Window: calendar.Period{
				Start: calendar.NewDate(2026, time.January, 1),
				End:   calendar.NewDate(2026, time.January, 31),
			}},
		{ID: "expired", Body: "Old", Receivers: workforce.AppliesToAllMembers,
			Window: calendar.Period{
				Start: calendar.NewDate(2025, time.June, 1),
				End:   calendar.NewDate(2025, time.June, 30),
			}},
	}
	for _, m := range messages {
		if err := store.SavePushMessage(context.Background(), m); err != nil {
			t.Fatalf("Failed to seed message: %v", err)
		}
	}

	resp := doJSON(t, "GET", srv.URL+"/api/messages?viewer=emp-1", nil)
	got := decode[[]PushMessageDTO](t, resp)
	if len(got) != 1 || got[0].ID != "live" {
		t.Errorf("active messages = %v, want only \"live\"", got)
	}
}
