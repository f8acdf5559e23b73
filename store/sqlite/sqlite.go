/*
Package sqlite provides a SQLite-backed implementation of payroll.TimesheetStore.

PURPOSE:
  Holds the edited attendance grids between calculation requests. The
  engine never reads from here; handlers load a timesheet, hand an
  immutable copy to payroll.Calculate and save the edited grid back.

SESSION LIFETIME:
  The default path is ":memory:", so timesheets live only as long as the
  process. A file path keeps them across restarts during development.
  Either way api.SessionSweeper deletes timesheets that have been idle
  longer than SESSION_TTL.

KEY TABLES:
  timesheets:      Defaults, pay parameters (JSON) and timestamps
  timesheet_rows:  Raw cell text per day, cascades on timesheet delete

CONCURRENCY:
  Uses sync.RWMutex for thread-safety, and a single open connection so
  ":memory:" databases are shared by every query.

USAGE:
  store, err := sqlite.New(":memory:")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - payroll/timesheet.go: Interface definition
  - store/memory/memory.go: In-memory implementation for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/shift-payroll/attendance"
	"github.com/warp/shift-payroll/generic"
	"github.com/warp/shift-payroll/payroll"
	"github.com/warp/shift-payroll/shift"
)

// Fixed-width so stored timestamps compare correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000Z"

// Store implements payroll.TimesheetStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ payroll.TimesheetStore = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS timesheets (
		id TEXT PRIMARY KEY,
		employee TEXT NOT NULL DEFAULT '',
		period TEXT NOT NULL DEFAULT '',
		department TEXT NOT NULL,
		shift_code TEXT NOT NULL,
		overtime_step INTEGER NOT NULL DEFAULT 0,
		parameters_json TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_timesheets_updated_at
		ON timesheets(updated_at);

	CREATE TABLE IF NOT EXISTS timesheet_rows (
		timesheet_id TEXT NOT NULL REFERENCES timesheets(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		day INTEGER NOT NULL,
		department TEXT NOT NULL DEFAULT '',
		shift_code TEXT NOT NULL DEFAULT '',
		in1 TEXT NOT NULL DEFAULT '',
		out1 TEXT NOT NULL DEFAULT '',
		in2 TEXT NOT NULL DEFAULT '',
		out2 TEXT NOT NULL DEFAULT '',
		comp_hours TEXT NOT NULL DEFAULT '0',
		PRIMARY KEY (timesheet_id, day)
	);

	CREATE INDEX IF NOT EXISTS idx_timesheet_rows_position
		ON timesheet_rows(timesheet_id, position);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// TIMESHEET STORE (payroll.TimesheetStore interface)
// =============================================================================

// SaveTimesheet inserts or replaces a timesheet and all of its rows atomically.
func (s *Store) SaveTimesheet(ctx context.Context, t payroll.Timesheet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	paramsJSON, err := json.Marshal(t.Parameters)
	if err != nil {
		return fmt.Errorf("failed to encode parameters: %w", err)
	}

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	_, err = sqlTx.ExecContext(ctx, `
		INSERT INTO timesheets
		(id, employee, period, department, shift_code, overtime_step, parameters_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			employee = excluded.employee,
			period = excluded.period,
			department = excluded.department,
			shift_code = excluded.shift_code,
			overtime_step = excluded.overtime_step,
			parameters_json = excluded.parameters_json,
			updated_at = excluded.updated_at
	`,
		t.ID,
		t.Employee,
		t.Period.String(),
		string(t.Department),
		t.ShiftCode,
		t.Overtime.StepMinutes,
		string(paramsJSON),
		formatTime(t.CreatedAt),
		formatTime(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save timesheet: %w", err)
	}

	if _, err := sqlTx.ExecContext(ctx, "DELETE FROM timesheet_rows WHERE timesheet_id = ?", t.ID); err != nil {
		return fmt.Errorf("failed to clear rows: %w", err)
	}

	stmt, err := sqlTx.PrepareContext(ctx, `
		INSERT INTO timesheet_rows
		(timesheet_id, position, day, department, shift_code, in1, out1, in2, out2, comp_hours)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare row insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range t.Rows {
		_, err := stmt.ExecContext(ctx,
			t.ID, i, r.Day, r.Department, r.ShiftCode,
			r.In1, r.Out1, r.In2, r.Out2, r.CompHours.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to save row for day %d: %w", r.Day, err)
		}
	}

	return sqlTx.Commit()
}

// GetTimesheet loads one timesheet with its rows.
func (s *Store) GetTimesheet(ctx context.Context, id string) (*payroll.Timesheet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, employee, period, department, shift_code, overtime_step, parameters_json, created_at, updated_at
		FROM timesheets WHERE id = ?
	`, id)

	t, err := scanTimesheet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", generic.ErrTimesheetNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	t.Rows, err = s.loadRows(ctx, id)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTimesheets returns every timesheet, most recently updated first.
func (s *Store) ListTimesheets(ctx context.Context) ([]payroll.Timesheet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, employee, period, department, shift_code, overtime_step, parameters_json, created_at, updated_at
		FROM timesheets ORDER BY updated_at DESC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list timesheets: %w", err)
	}

	var sheets []payroll.Timesheet
	for rows.Next() {
		t, err := scanTimesheet(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		sheets = append(sheets, t)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	// Rows are loaded after the cursor is closed; the pool has one connection.
	for i := range sheets {
		sheets[i].Rows, err = s.loadRows(ctx, sheets[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return sheets, nil
}

// DeleteTimesheet removes a timesheet and its rows.
func (s *Store) DeleteTimesheet(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM timesheets WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete timesheet: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("%w: %s", generic.ErrTimesheetNotFound, id)
	}
	return nil
}

// DeleteStale removes timesheets last updated before the cutoff.
func (s *Store) DeleteStale(ctx context.Context, before time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM timesheets WHERE updated_at < ?", formatTime(before))
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale timesheets: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// =============================================================================
// HELPERS
// =============================================================================

type scanner interface {
	Scan(dest ...any) error
}

func scanTimesheet(row scanner) (payroll.Timesheet, error) {
	var (
		t          payroll.Timesheet
		period     string
		department string
		step       int
		paramsJSON string
		createdAt  string
		updatedAt  string
	)

	err := row.Scan(&t.ID, &t.Employee, &period, &department, &t.ShiftCode, &step, &paramsJSON, &createdAt, &updatedAt)
	if err != nil {
		return t, err
	}

	t.Period, err = generic.ParsePeriod(period)
	if err != nil {
		return t, err
	}
	t.Department = shift.Department(department)
	t.Overtime = generic.OvertimePolicy{StepMinutes: step}
	if err := json.Unmarshal([]byte(paramsJSON), &t.Parameters); err != nil {
		return t, fmt.Errorf("failed to decode parameters: %w", err)
	}
	t.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	t.UpdatedAt, _ = time.Parse(timeLayout, updatedAt)
	return t, nil
}

func (s *Store) loadRows(ctx context.Context, id string) ([]attendance.Row, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT day, department, shift_code, in1, out1, in2, out2, comp_hours
		FROM timesheet_rows WHERE timesheet_id = ? ORDER BY position ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query rows: %w", err)
	}
	defer rows.Close()

	var out []attendance.Row
	for rows.Next() {
		var (
			r    attendance.Row
			comp string
		)
		if err := rows.Scan(&r.Day, &r.Department, &r.ShiftCode, &r.In1, &r.Out1, &r.In2, &r.Out2, &comp); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		r.CompHours = generic.ParseDecimalOrZero(comp)
		out = append(out, r)
	}
	return out, rows.Err()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
