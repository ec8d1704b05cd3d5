/*
handlers.go - HTTP API handlers for the timesheet reporting engine

PURPOSE:
  Exposes the reporting engine via REST. Handlers load a consistent
  snapshot from the store per request, resolve the viewer, and delegate to
  the pure engine packages.

ENDPOINTS:
  Members:
    GET    /api/members                 List members visible to the viewer
    POST   /api/members                 Create/replace a member

  Time entries:
    POST   /api/entries                 Log time (freeze + permission checks)
    PUT    /api/entries/{id}            Update an entry
    DELETE /api/entries/{id}            Delete an entry

  Leave requests:
    POST   /api/requests                Submit a leave request
    POST   /api/requests/{id}/approve   Approve (manager roles)
    POST   /api/requests/{id}/reject    Reject (manager roles)

  Holidays:
    GET    /api/holidays                List public + custom holidays
    POST   /api/holidays                Create one (Super Admin)

  Reports:
    GET    /api/reports/individual      Monthly calendar view
    GET    /api/reports/team            Consolidated/project/task rows
    GET    /api/reports/team/export     Same rows as a PDF download

  Misc:
    GET    /api/messages                Active push messages for the viewer
    PUT    /api/settings/allowance      Set annual leave allowance
    GET    /api/scenarios               List demo scenarios
    POST   /api/scenarios/load          Load a demo scenario

VIEWER RESOLUTION:
  There is no authentication protocol here; callers identify the viewer
  with the ?viewer=<member-id> query parameter and the engine's role
  policy scopes what that viewer can see and do.

ERROR HANDLING:
  JSON errors with appropriate status: 400 for bad input, 403 for policy
  violations, 404 for unknown members, 423 for frozen dates, 500 otherwise.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - scenarios.go: Demo data loaders
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/warp/timesheet-engine/calendar"
	"github.com/warp/timesheet-engine/report"
	"github.com/warp/timesheet-engine/store/sqlite"
	"github.com/warp/timesheet-engine/workforce"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store *sqlite.Store

	// Now supplies "today" for open-ended contracts and freeze checks.
	// Overridable in tests for deterministic reports.
	Now func() calendar.Date

	currentScenario string
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{Store: store, Now: calendar.Today}
}

// viewer resolves the ?viewer query parameter against the snapshot.
func (h *Handler) viewer(r *http.Request, snap *workforce.Snapshot) (workforce.Member, error) {
	id := r.URL.Query().Get("viewer")
	if id == "" {
		return workforce.Member{}, fmt.Errorf("%w: missing viewer parameter", workforce.ErrMemberNotFound)
	}
	m, ok := snap.MemberByID(id)
	if !ok {
		return workforce.Member{}, fmt.Errorf("%w: viewer %q", workforce.ErrMemberNotFound, id)
	}
	return m, nil
}

// =============================================================================
// MEMBER HANDLERS
// =============================================================================

// ListMembers returns the members visible to the viewer.
func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Store.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load snapshot", err)
		return
	}
	viewer, err := h.viewer(r, snap)
	if err != nil {
		writeError(w, http.StatusNotFound, "Unknown viewer", err)
		return
	}

	visible := workforce.VisibleMembers(viewer, snap.Members)
	dtos := make([]MemberDTO, len(visible))
	for i, m := range visible {
		dtos[i] = toMemberDTO(m)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateMember creates or replaces a member (Super Admin only).
func (h *Handler) CreateMember(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Store.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load snapshot", err)
		return
	}
	viewer, err := h.viewer(r, snap)
	if err != nil {
		writeError(w, http.StatusNotFound, "Unknown viewer", err)
		return
	}
	if viewer.Role != workforce.RoleSuperAdmin {
		writeError(w, http.StatusForbidden, "Only Super Admins manage members", workforce.ErrForbidden)
		return
	}

	var req CreateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	member, err := memberFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid member", err)
		return
	}
	if err := h.Store.SaveMember(r.Context(), member); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save member", err)
		return
	}
	writeJSON(w, http.StatusCreated, toMemberDTO(member))
}

func memberFromRequest(req CreateMemberRequest) (workforce.Member, error) {
	role, err := workforce.ParseRole(req.Role)
	if err != nil {
		return workforce.Member{}, err
	}
	start, err := calendar.ParseDate(req.StartDate)
	if err != nil {
		return workforce.Member{}, err
	}
	m := workforce.Member{
		ID:        req.ID,
		Name:      req.Name,
		Email:     req.Email,
		Role:      role,
		ReportsTo: req.ReportsTo,
		TeamID:    req.TeamID,
		Contract: workforce.Contract{
			Start:       start,
			WeeklyHours: workforce.Hours(req.WeeklyHours),
		},
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if req.EndDate != nil && *req.EndDate != "" {
		end, err := calendar.ParseDate(*req.EndDate)
		if err != nil {
			return workforce.Member{}, err
		}
		m.Contract.End = &end
	}
	if err := m.Contract.Validate(); err != nil {
		return workforce.Member{}, err
	}
	return m, nil
}

// =============================================================================
// TIME ENTRY HANDLERS
// =============================================================================

// LogTime creates a time entry after permission and freeze checks.
func (h *Handler) LogTime(w http.ResponseWriter, r *http.Request) {
	h.saveEntry(w, r, "")
}

// UpdateEntry replaces an existing entry.
func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	h.saveEntry(w, r, chi.URLParam(r, "id"))
}

func (h *Handler) saveEntry(w http.ResponseWriter, r *http.Request, entryID string) {
	snap, err := h.Store.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load snapshot", err)
		return
	}
	viewer, err := h.viewer(r, snap)
	if err != nil {
		writeError(w, http.StatusNotFound, "Unknown viewer", err)
		return
	}

	var req LogTimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	owner, ok := snap.MemberByID(req.MemberID)
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown member", workforce.ErrMemberNotFound)
		return
	}
	if !workforce.CanEditEntries(viewer, owner) {
		writeError(w, http.StatusForbidden, "Not permitted to log time for this member", workforce.ErrForbidden)
		return
	}
	date, err := calendar.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}
	if req.Duration < 0 {
		writeError(w, http.StatusBadRequest, "Duration must be non-negative", nil)
		return
	}
	if workforce.Frozen(date, owner, snap.FreezeRules, h.Now()) {
		writeError(w, http.StatusLocked, "Date is frozen for edits", workforce.ErrEntryFrozen)
		return
	}

	if entryID == "" {
		entryID = uuid.NewString()
	} else if existing, err := h.Store.GetTimeEntry(r.Context(), entryID); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load entry", err)
		return
	} else if existing == nil {
		writeError(w, http.StatusNotFound, "Entry not found", nil)
		return
	}

	entry := workforce.TimeEntry{
		ID:       entryID,
		MemberID: owner.ID,
		Date:     date,
		Start:    req.Start,
		End:      req.End,
		Task:     req.Task,
		Duration: workforce.Hours(req.Duration),
		Remarks:  req.Remarks,
	}
	if err := h.Store.SaveTimeEntry(r.Context(), entry); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save entry", err)
		return
	}
	writeJSON(w, http.StatusCreated, toTimeEntryDTO(entry))
}

// DeleteEntry removes a time entry, with the same permission and freeze
// gates as creation.
func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Store.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load snapshot", err)
		return
	}
	viewer, err := h.viewer(r, snap)
	if err != nil {
		writeError(w, http.StatusNotFound, "Unknown viewer", err)
		return
	}

	id := chi.URLParam(r, "id")
	entry, err := h.Store.GetTimeEntry(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load entry", err)
		return
	}
	if entry == nil {
		writeError(w, http.StatusNotFound, "Entry not found", nil)
		return
	}
	owner, ok := snap.MemberByID(entry.MemberID)
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown member", workforce.ErrMemberNotFound)
		return
	}
	if !workforce.CanEditEntries(viewer, owner) {
		writeError(w, http.StatusForbidden, "Not permitted to delete this entry", workforce.ErrForbidden)
		return
	}
	if workforce.Frozen(entry.Date, owner, snap.FreezeRules, h.Now()) {
		writeError(w, http.StatusLocked, "Date is frozen for edits", workforce.ErrEntryFrozen)
		return
	}
	if err := h.Store.DeleteTimeEntry(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete entry", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// LEAVE REQUEST HANDLERS
// =============================================================================

// SubmitRequest files a pending leave request for the viewer (or, for
// managers, another visible member).
func (h *Handler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Store.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load snapshot", err)
		return
	}
	viewer, err := h.viewer(r, snap)
	if err != nil {
		writeError(w, http.StatusNotFound, "Unknown viewer", err)
		return
	}

	var req SubmitRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	memberID := req.MemberID
	if memberID == "" {
		memberID = viewer.ID
	}
	if !workforce.CanSee(viewer, memberID, snap.Members) {
		writeError(w, http.StatusForbidden, "Not permitted for this member", workforce.ErrForbidden)
		return
	}
	start, err := calendar.ParseDate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start date", err)
		return
	}
	end, err := calendar.ParseDate(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end date", err)
		return
	}
	rng := calendar.Period{Start: start, End: end}
	if !rng.IsValid() {
		writeError(w, http.StatusBadRequest, "End date before start date", workforce.ErrInvalidPeriod)
		return
	}

	request := workforce.HolidayRequest{
		ID:       uuid.NewString(),
		MemberID: memberID,
		Range:    rng,
		Status:   workforce.StatusPending,
	}
	if err := h.Store.SaveHolidayRequest(r.Context(), request); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save request", err)
		return
	}
	writeJSON(w, http.StatusCreated, toHolidayRequestDTO(request))
}

// ApproveRequest approves a pending leave request.
func (h *Handler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	h.resolveRequest(w, r, workforce.StatusApproved)
}

// RejectRequest rejects a pending leave request.
func (h *Handler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	h.resolveRequest(w, r, workforce.StatusRejected)
}

func (h *Handler) resolveRequest(w http.ResponseWriter, r *http.Request, status workforce.RequestStatus) {
	snap, err := h.Store.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load snapshot", err)
		return
	}
	viewer, err := h.viewer(r, snap)
	if err != nil {
		writeError(w, http.StatusNotFound, "Unknown viewer", err)
		return
	}

	id := chi.URLParam(r, "id")
	var target *workforce.HolidayRequest
	for i := range snap.HolidayRequests {
		if snap.HolidayRequests[i].ID == id {
			target = &snap.HolidayRequests[i]
			break
		}
	}
	if target == nil {
		writeError(w, http.StatusNotFound, "Request not found", nil)
		return
	}
	owner, ok := snap.MemberByID(target.MemberID)
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown member", workforce.ErrMemberNotFound)
		return
	}
	// Approvals need manager authority over the owner, not just visibility.
	if viewer.Role != workforce.RoleSuperAdmin &&
		!(viewer.Role == workforce.RoleTeamLead && owner.ReportsTo == viewer.ID) {
		writeError(w, http.StatusForbidden, "Not permitted to resolve this request", workforce.ErrForbidden)
		return
	}

	if err := h.Store.SetRequestStatus(r.Context(), id, status); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update request", err)
		return
	}
	target.Status = status
	writeJSON(w, http.StatusOK, toHolidayRequestDTO(*target))
}

// =============================================================================
// HOLIDAY HANDLERS
// =============================================================================

// ListHolidays returns both holiday calendars.
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Store.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load snapshot", err)
		return
	}
	dtos := []HolidayDTO{}
	for _, ph := range snap.PublicHolidays {
		dtos = append(dtos, HolidayDTO{
			ID: ph.ID, Country: ph.Country, Name: ph.Name,
			Date: ph.Date.String(), Type: string(ph.Type),
		})
	}
	for _, ch := range snap.CustomHolidays {
		dtos = append(dtos, HolidayDTO{
			ID: ch.ID, Country: ch.Country, Name: ch.Name,
			Date: ch.Date.String(), Type: string(ch.Type), AppliesTo: ch.AppliesTo,
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateHoliday adds a public holiday, or a custom one when applies_to is
// set. Super Admin only.
func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Store.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load snapshot", err)
		return
	}
	viewer, err := h.viewer(r, snap)
	if err != nil {
		writeError(w, http.StatusNotFound, "Unknown viewer", err)
		return
	}
	if viewer.Role != workforce.RoleSuperAdmin {
		writeError(w, http.StatusForbidden, "Only Super Admins manage holidays", workforce.ErrForbidden)
		return
	}

	var req CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	date, err := calendar.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}
	typ := workforce.HolidayType(req.Type)
	if typ != workforce.HolidayFullDay && typ != workforce.HolidayHalfDay {
		writeError(w, http.StatusBadRequest, "Type must be Full Day or Half Day", nil)
		return
	}

	id := uuid.NewString()
	if req.AppliesTo == "" {
		holiday := workforce.PublicHoliday{
			ID: id, Country: req.Country, Name: req.Name, Date: date, Type: typ,
		}
		if err := h.Store.SavePublicHoliday(r.Context(), holiday); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save holiday", err)
			return
		}
		writeJSON(w, http.StatusCreated, HolidayDTO{
			ID: id, Country: req.Country, Name: req.Name, Date: date.String(), Type: req.Type,
		})
		return
	}

	holiday := workforce.CustomHoliday{
		ID: id, Country: req.Country, Name: req.Name, Date: date, Type: typ,
		AppliesTo: req.AppliesTo,
	}
	if err := h.Store.SaveCustomHoliday(r.Context(), holiday); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save holiday", err)
		return
	}
	writeJSON(w, http.StatusCreated, HolidayDTO{
		ID: id, Country: req.Country, Name: req.Name, Date: date.String(),
		Type: req.Type, AppliesTo: req.AppliesTo,
	})
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// IndividualReport returns the monthly calendar view.
// Query: viewer, member (optional), year, month.
func (h *Handler) IndividualReport(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Store.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load snapshot", err)
		return
	}
	viewer, err := h.viewer(r, snap)
	if err != nil {
		writeError(w, http.StatusNotFound, "Unknown viewer", err)
		return
	}

	year, month, err := yearMonthParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year/month", err)
		return
	}

	rep, err := report.Individual(snap, viewer, r.URL.Query().Get("member"), year, month, h.Now())
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toIndividualReportDTO(rep))
}

// TeamReport returns consolidated, project and task rows for the period.
// Query: viewer, kind=week|month|year, year, month, week.
func (h *Handler) TeamReport(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.teamReport(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toTeamReportDTO(rep))
}

// ExportTeamReport streams the team report as a PDF.
func (h *Handler) ExportTeamReport(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.teamReport(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "team_report_"+h.Now().String()+".pdf"))
	if err := report.ExportPDF(w, rep); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to render PDF", err)
	}
}

func (h *Handler) teamReport(w http.ResponseWriter, r *http.Request) (*report.TeamReport, bool) {
	snap, err := h.Store.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load snapshot", err)
		return nil, false
	}
	viewer, err := h.viewer(r, snap)
	if err != nil {
		writeError(w, http.StatusNotFound, "Unknown viewer", err)
		return nil, false
	}

	sel, err := selectorParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period selector", err)
		return nil, false
	}
	rep, err := report.Team(snap, viewer, sel, h.Now())
	if err != nil {
		writeEngineError(w, err)
		return nil, false
	}
	return rep, true
}

func yearMonthParams(r *http.Request) (int, time.Month, error) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		return 0, 0, fmt.Errorf("bad year: %w", err)
	}
	monthNum, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		return 0, 0, fmt.Errorf("bad month: %w", err)
	}
	if monthNum < 1 || monthNum > 12 {
		return 0, 0, fmt.Errorf("month %d out of range", monthNum)
	}
	return year, time.Month(monthNum), nil
}

func selectorParams(r *http.Request) (report.Selector, error) {
	q := r.URL.Query()
	sel := report.Selector{Kind: report.PeriodKind(q.Get("kind"))}
	if sel.Kind == "" {
		sel.Kind = report.KindWeek
	}

	year, err := strconv.Atoi(q.Get("year"))
	if err != nil {
		return sel, fmt.Errorf("bad year: %w", err)
	}
	sel.Year = year

	if sel.Kind != report.KindYear {
		monthNum, err := strconv.Atoi(q.Get("month"))
		if err != nil {
			return sel, fmt.Errorf("bad month: %w", err)
		}
		sel.Month = time.Month(monthNum)
	}
	if sel.Kind == report.KindWeek {
		if weekStr := q.Get("week"); weekStr != "" {
			if sel.WeekIndex, err = strconv.Atoi(weekStr); err != nil {
				return sel, fmt.Errorf("bad week: %w", err)
			}
		}
	}
	return sel, nil
}

// ListPendingRequests returns pending leave requests the viewer can resolve.
func (h *Handler) ListPendingRequests(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Store.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load snapshot", err)
		return
	}
	viewer, err := h.viewer(r, snap)
	if err != nil {
		writeError(w, http.StatusNotFound, "Unknown viewer", err)
		return
	}

	dtos := []HolidayRequestDTO{}
	for _, req := range snap.HolidayRequests {
		if req.Status != workforce.StatusPending {
			continue
		}
		if !workforce.CanSee(viewer, req.MemberID, snap.Members) {
			continue
		}
		dtos = append(dtos, toHolidayRequestDTO(req))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// FREEZE RULES
// =============================================================================

// CreateFreezeRule locks a date window against time-entry edits.
func (h *Handler) CreateFreezeRule(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Store.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load snapshot", err)
		return
	}
	viewer, err := h.viewer(r, snap)
	if err != nil {
		writeError(w, http.StatusNotFound, "Unknown viewer", err)
		return
	}
	if viewer.Role != workforce.RoleSuperAdmin {
		writeError(w, http.StatusForbidden, "Only Super Admins manage freeze rules", workforce.ErrForbidden)
		return
	}

	var req CreateFreezeRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	rule := workforce.FreezeRule{ID: uuid.NewString(), TeamID: req.TeamID}
	if rule.TeamID == "" {
		rule.TeamID = workforce.AppliesToAllTeams
	}
	if rule.Range.Start, err = calendar.ParseDate(req.StartDate); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start date", err)
		return
	}
	if req.RecurringDay != "" {
		day, err := parseWeekday(req.RecurringDay)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid recurring day", err)
			return
		}
		rule.RecurringDay = &day
		rule.Range.End = rule.Range.Start
	} else {
		if rule.Range.End, err = calendar.ParseDate(req.EndDate); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid end date", err)
			return
		}
		if !rule.Range.IsValid() {
			writeError(w, http.StatusBadRequest, "End date before start date", workforce.ErrInvalidPeriod)
			return
		}
	}

	if err := h.Store.SaveFreezeRule(r.Context(), rule); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save freeze rule", err)
		return
	}
	dto := FreezeRuleDTO{
		ID:        rule.ID,
		TeamID:    rule.TeamID,
		StartDate: rule.Range.Start.String(),
		EndDate:   rule.Range.End.String(),
	}
	if rule.RecurringDay != nil {
		dto.RecurringDay = rule.RecurringDay.String()
	}
	writeJSON(w, http.StatusCreated, dto)
}

func parseWeekday(s string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if d.String() == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

// =============================================================================
// MESSAGES, SETTINGS, SCENARIOS
// =============================================================================

// ListMessages returns the push messages active for the viewer today.
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Store.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load snapshot", err)
		return
	}
	viewer, err := h.viewer(r, snap)
	if err != nil {
		writeError(w, http.StatusNotFound, "Unknown viewer", err)
		return
	}

	dtos := []PushMessageDTO{}
	for _, m := range workforce.ActiveMessages(snap.PushMessages, viewer, h.Now()) {
		dtos = append(dtos, PushMessageDTO{ID: m.ID, Context: m.Context, Body: m.Body})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// SetAllowance updates the process-wide annual leave allowance.
func (h *Handler) SetAllowance(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Store.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load snapshot", err)
		return
	}
	viewer, err := h.viewer(r, snap)
	if err != nil {
		writeError(w, http.StatusNotFound, "Unknown viewer", err)
		return
	}
	if viewer.Role != workforce.RoleSuperAdmin {
		writeError(w, http.StatusForbidden, "Only Super Admins change the allowance", workforce.ErrForbidden)
		return
	}

	var req AllowanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Days < 0 {
		writeError(w, http.StatusBadRequest, "Allowance must be non-negative", nil)
		return
	}
	if err := h.Store.SetAllowance(r.Context(), workforce.Days(req.Days)); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save allowance", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Error = message + ": " + err.Error()
	}
	writeJSON(w, status, resp)
}

// writeEngineError maps engine errors onto HTTP statuses.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case workforce.IsNotFound(err):
		writeError(w, http.StatusNotFound, "No member selected", err)
	case errors.Is(err, workforce.ErrForbidden):
		writeError(w, http.StatusForbidden, "Not permitted", err)
	case workforce.IsClientError(err):
		writeError(w, http.StatusBadRequest, "Invalid input", err)
	default:
		writeError(w, http.StatusInternalServerError, "Report failed", err)
	}
}
