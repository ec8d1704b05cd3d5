/*
Package sqlite provides the SQLite-backed snapshot store.

PURPOSE:
  Persists the workforce collections (members, time entries, holiday
  requests, holiday calendars, freeze rules, push messages, settings) and
  materializes them into a workforce.Snapshot per engine invocation. The
  reporting engine itself never touches the database; it only sees the
  snapshot, which is what keeps it pure and memoizable.

KEY TABLES:
  members:          Identity, role, reporting line, contract terms
  time_entries:     Logged hours with the composite "Project - Task" label
  holiday_requests: Leave requests with approval status
  public_holidays:  Country-wide holiday calendar
  custom_holidays:  Organization holidays with applicability scope
  freeze_rules:     Edit-lock windows per team
  push_messages:    Date-windowed broadcasts
  settings:         Process-wide values (annual leave allowance)

CONCURRENCY:
  sync.RWMutex guards writes; Snapshot() reads under the read lock so every
  invocation observes a consistent state.

USAGE:
  store, err := sqlite.New("./data/timesheet.db")
  if err != nil { log.Fatal(err) }
  defer store.Close()
  snap, err := store.Snapshot(ctx)

SEE ALSO:
  - ../../workforce/snapshot.go: The snapshot the engine consumes
  - ../../api: HTTP surface using this store
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/timesheet-engine/calendar"
	"github.com/warp/timesheet-engine/workforce"
)

// Store persists the workforce collections in SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (or creates) the database. Use ":memory:" for tests.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows one writer; a single pooled connection also keeps
	// ":memory:" databases from silently splitting per connection.
	db.SetMaxOpenConns(1)
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS members (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		role TEXT NOT NULL,
		reports_to TEXT,
		team_id TEXT,
		contract_start TEXT NOT NULL,
		contract_end TEXT,
		weekly_hours TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS time_entries (
		id TEXT PRIMARY KEY,
		member_id TEXT NOT NULL,
		date TEXT NOT NULL,
		start_time TEXT,
		end_time TEXT,
		task TEXT NOT NULL,
		duration TEXT NOT NULL,
		remarks TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_entries_member_date
		ON time_entries(member_id, date);

	CREATE TABLE IF NOT EXISTS holiday_requests (
		id TEXT PRIMARY KEY,
		member_id TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		status TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_requests_member
		ON holiday_requests(member_id, status);

	CREATE TABLE IF NOT EXISTS public_holidays (
		id TEXT PRIMARY KEY,
		country TEXT,
		name TEXT NOT NULL,
		date TEXT NOT NULL,
		type TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS custom_holidays (
		id TEXT PRIMARY KEY,
		country TEXT,
		name TEXT NOT NULL,
		date TEXT NOT NULL,
		type TEXT NOT NULL,
		applies_to TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS freeze_rules (
		id TEXT PRIMARY KEY,
		team_id TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		recurring_day INTEGER
	);

	CREATE TABLE IF NOT EXISTS push_messages (
		id TEXT PRIMARY KEY,
		context TEXT,
		body TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		receivers TEXT NOT NULL,
		team_ids_json TEXT
	);

	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

const allowanceKey = "annual_leave_allowance_days"

// =============================================================================
// SNAPSHOT
// =============================================================================

// Snapshot materializes every collection into one consistent in-memory set.
func (s *Store) Snapshot(ctx context.Context) (*workforce.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &workforce.Snapshot{}
	var err error

	if snap.Members, err = s.listMembers(ctx); err != nil {
		return nil, err
	}
	if snap.TimeEntries, err = s.listTimeEntries(ctx); err != nil {
		return nil, err
	}
	if snap.HolidayRequests, err = s.listHolidayRequests(ctx); err != nil {
		return nil, err
	}
	if snap.PublicHolidays, err = s.listPublicHolidays(ctx); err != nil {
		return nil, err
	}
	if snap.CustomHolidays, err = s.listCustomHolidays(ctx); err != nil {
		return nil, err
	}
	if snap.FreezeRules, err = s.listFreezeRules(ctx); err != nil {
		return nil, err
	}
	if snap.PushMessages, err = s.listPushMessages(ctx); err != nil {
		return nil, err
	}
	if snap.AnnualLeaveAllowance, err = s.allowanceLocked(ctx); err != nil {
		return nil, err
	}
	return snap, nil
}

// =============================================================================
// MEMBERS
// =============================================================================

func (s *Store) SaveMember(ctx context.Context, m workforce.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var end any
	if m.Contract.End != nil {
		end = m.Contract.End.String()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO members
			(id, name, email, role, reports_to, team_id, contract_start, contract_end, weekly_hours)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Email, string(m.Role), m.ReportsTo, m.TeamID,
		m.Contract.Start.String(), end, m.Contract.WeeklyHours.Value.String())
	return err
}

func (s *Store) listMembers(ctx context.Context) ([]workforce.Member, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, role, reports_to, team_id,
		       contract_start, contract_end, weekly_hours
		FROM members ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []workforce.Member
	for rows.Next() {
		var m workforce.Member
		var role, start, weekly string
		var email, reportsTo, teamID, end sql.NullString
		if err := rows.Scan(&m.ID, &m.Name, &email, &role, &reportsTo, &teamID, &start, &end, &weekly); err != nil {
			return nil, err
		}
		m.Email = email.String
		m.ReportsTo = reportsTo.String
		m.TeamID = teamID.String
		if m.Role, err = workforce.ParseRole(role); err != nil {
			return nil, fmt.Errorf("member %s: %w", m.ID, err)
		}
		if m.Contract.Start, err = calendar.ParseDate(start); err != nil {
			return nil, fmt.Errorf("member %s: %w", m.ID, err)
		}
		if end.Valid && end.String != "" {
			d, err := calendar.ParseDate(end.String)
			if err != nil {
				return nil, fmt.Errorf("member %s: %w", m.ID, err)
			}
			m.Contract.End = &d
		}
		hours, err := decimal.NewFromString(weekly)
		if err != nil {
			return nil, fmt.Errorf("member %s: bad weekly hours %q", m.ID, weekly)
		}
		m.Contract.WeeklyHours = workforce.Amount{Value: hours, Unit: workforce.UnitHours}
		members = append(members, m)
	}
	return members, rows.Err()
}

// =============================================================================
// TIME ENTRIES
// =============================================================================

func (s *Store) SaveTimeEntry(ctx context.Context, e workforce.TimeEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO time_entries
			(id, member_id, date, start_time, end_time, task, duration, remarks)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.MemberID, e.Date.String(), e.Start, e.End, e.Task,
		e.Duration.Value.String(), e.Remarks)
	return err
}

// GetTimeEntry returns a single entry, or nil when the id is unknown.
func (s *Store) GetTimeEntry(ctx context.Context, id string) (*workforce.TimeEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, member_id, date, start_time, end_time, task, duration, remarks
		FROM time_entries WHERE id = ?`, id)
	e, err := scanTimeEntry(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Store) DeleteTimeEntry(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `DELETE FROM time_entries WHERE id = ?`, id)
	return err
}

func (s *Store) listTimeEntries(ctx context.Context) ([]workforce.TimeEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, member_id, date, start_time, end_time, task, duration, remarks
		FROM time_entries ORDER BY date, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []workforce.TimeEntry
	for rows.Next() {
		e, err := scanTimeEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanTimeEntry(scan func(...any) error) (workforce.TimeEntry, error) {
	var e workforce.TimeEntry
	var date, duration string
	var start, end, remarks sql.NullString
	if err := scan(&e.ID, &e.MemberID, &date, &start, &end, &e.Task, &duration, &remarks); err != nil {
		return e, err
	}
	e.Start = start.String
	e.End = end.String
	e.Remarks = remarks.String

	var err error
	if e.Date, err = calendar.ParseDate(date); err != nil {
		return e, fmt.Errorf("entry %s: %w", e.ID, err)
	}
	d, err := decimal.NewFromString(duration)
	if err != nil {
		return e, fmt.Errorf("entry %s: bad duration %q", e.ID, duration)
	}
	e.Duration = workforce.Amount{Value: d, Unit: workforce.UnitHours}
	return e, nil
}

// =============================================================================
// HOLIDAY REQUESTS
// =============================================================================

func (s *Store) SaveHolidayRequest(ctx context.Context, r workforce.HolidayRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO holiday_requests (id, member_id, start_date, end_date, status)
		VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.MemberID, r.Range.Start.String(), r.Range.End.String(), string(r.Status))
	return err
}

// SetRequestStatus transitions a request's approval status.
func (s *Store) SetRequestStatus(ctx context.Context, id string, status workforce.RequestStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx,
		`UPDATE holiday_requests SET status = ? WHERE id = ?`, string(status), id)
	return err
}

func (s *Store) listHolidayRequests(ctx context.Context) ([]workforce.HolidayRequest, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, member_id, start_date, end_date, status
		FROM holiday_requests ORDER BY start_date, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []workforce.HolidayRequest
	for rows.Next() {
		var r workforce.HolidayRequest
		var start, end, status string
		if err := rows.Scan(&r.ID, &r.MemberID, &start, &end, &status); err != nil {
			return nil, err
		}
		if r.Range.Start, err = calendar.ParseDate(start); err != nil {
			return nil, fmt.Errorf("request %s: %w", r.ID, err)
		}
		if r.Range.End, err = calendar.ParseDate(end); err != nil {
			return nil, fmt.Errorf("request %s: %w", r.ID, err)
		}
		r.Status = workforce.RequestStatus(status)
		requests = append(requests, r)
	}
	return requests, rows.Err()
}

// =============================================================================
// HOLIDAY CALENDARS
// =============================================================================

func (s *Store) SavePublicHoliday(ctx context.Context, h workforce.PublicHoliday) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO public_holidays (id, country, name, date, type)
		VALUES (?, ?, ?, ?, ?)`,
		h.ID, h.Country, h.Name, h.Date.String(), string(h.Type))
	return err
}

func (s *Store) SaveCustomHoliday(ctx context.Context, h workforce.CustomHoliday) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO custom_holidays (id, country, name, date, type, applies_to)
		VALUES (?, ?, ?, ?, ?, ?)`,
		h.ID, h.Country, h.Name, h.Date.String(), string(h.Type), h.AppliesTo)
	return err
}

func (s *Store) listPublicHolidays(ctx context.Context) ([]workforce.PublicHoliday, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, country, name, date, type FROM public_holidays ORDER BY date, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []workforce.PublicHoliday
	for rows.Next() {
		var h workforce.PublicHoliday
		var country sql.NullString
		var date, typ string
		if err := rows.Scan(&h.ID, &country, &h.Name, &date, &typ); err != nil {
			return nil, err
		}
		h.Country = country.String
		if h.Date, err = calendar.ParseDate(date); err != nil {
			return nil, fmt.Errorf("public holiday %s: %w", h.ID, err)
		}
		h.Type = workforce.HolidayType(typ)
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

func (s *Store) listCustomHolidays(ctx context.Context) ([]workforce.CustomHoliday, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, country, name, date, type, applies_to FROM custom_holidays ORDER BY date, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []workforce.CustomHoliday
	for rows.Next() {
		var h workforce.CustomHoliday
		var country sql.NullString
		var date, typ string
		if err := rows.Scan(&h.ID, &country, &h.Name, &date, &typ, &h.AppliesTo); err != nil {
			return nil, err
		}
		h.Country = country.String
		if h.Date, err = calendar.ParseDate(date); err != nil {
			return nil, fmt.Errorf("custom holiday %s: %w", h.ID, err)
		}
		h.Type = workforce.HolidayType(typ)
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

// =============================================================================
// FREEZE RULES & PUSH MESSAGES
// =============================================================================

func (s *Store) SaveFreezeRule(ctx context.Context, r workforce.FreezeRule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var recurring any
	if r.RecurringDay != nil {
		recurring = int(*r.RecurringDay)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO freeze_rules (id, team_id, start_date, end_date, recurring_day)
		VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.TeamID, r.Range.Start.String(), r.Range.End.String(), recurring)
	return err
}

func (s *Store) listFreezeRules(ctx context.Context) ([]workforce.FreezeRule, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, team_id, start_date, end_date, recurring_day FROM freeze_rules ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []workforce.FreezeRule
	for rows.Next() {
		var r workforce.FreezeRule
		var start, end string
		var recurring sql.NullInt64
		if err := rows.Scan(&r.ID, &r.TeamID, &start, &end, &recurring); err != nil {
			return nil, err
		}
		if r.Range.Start, err = calendar.ParseDate(start); err != nil {
			return nil, fmt.Errorf("freeze rule %s: %w", r.ID, err)
		}
		if r.Range.End, err = calendar.ParseDate(end); err != nil {
			return nil, fmt.Errorf("freeze rule %s: %w", r.ID, err)
		}
		if recurring.Valid {
			wd := time.Weekday(recurring.Int64)
			r.RecurringDay = &wd
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

func (s *Store) SavePushMessage(ctx context.Context, m workforce.PushMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	teamIDs, err := json.Marshal(m.TeamIDs)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO push_messages
			(id, context, body, start_date, end_date, receivers, team_ids_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Context, m.Body, m.Window.Start.String(), m.Window.End.String(),
		m.Receivers, string(teamIDs))
	return err
}

func (s *Store) listPushMessages(ctx context.Context) ([]workforce.PushMessage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, context, body, start_date, end_date, receivers, team_ids_json
		FROM push_messages ORDER BY start_date, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []workforce.PushMessage
	for rows.Next() {
		var m workforce.PushMessage
		var ctxt, teamIDs sql.NullString
		var start, end string
		if err := rows.Scan(&m.ID, &ctxt, &m.Body, &start, &end, &m.Receivers, &teamIDs); err != nil {
			return nil, err
		}
		m.Context = ctxt.String
		if m.Window.Start, err = calendar.ParseDate(start); err != nil {
			return nil, fmt.Errorf("push message %s: %w", m.ID, err)
		}
		if m.Window.End, err = calendar.ParseDate(end); err != nil {
			return nil, fmt.Errorf("push message %s: %w", m.ID, err)
		}
		if teamIDs.Valid && teamIDs.String != "" {
			if err := json.Unmarshal([]byte(teamIDs.String), &m.TeamIDs); err != nil {
				return nil, fmt.Errorf("push message %s: %w", m.ID, err)
			}
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// =============================================================================
// SETTINGS
// =============================================================================

// SetAllowance stores the process-wide annual leave allowance in days.
func (s *Store) SetAllowance(ctx context.Context, days workforce.Amount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`,
		allowanceKey, days.Value.String())
	return err
}

func (s *Store) allowanceLocked(ctx context.Context) (workforce.Amount, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, allowanceKey).Scan(&value)
	if err == sql.ErrNoRows {
		return workforce.Days(0), nil
	}
	if err != nil {
		return workforce.Amount{}, err
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return workforce.Amount{}, fmt.Errorf("bad allowance setting %q", value)
	}
	return workforce.Amount{Value: d, Unit: workforce.UnitDays}, nil
}

// =============================================================================
// RESET (scenario loading)
// =============================================================================

// Reset wipes every collection. Used by the demo scenario loader.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{
		"members", "time_entries", "holiday_requests",
		"public_holidays", "custom_holidays",
		"freeze_rules", "push_messages", "settings",
	}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}
