package payroll

import (
	"context"
	"time"

	"github.com/warp/shift-payroll/attendance"
	"github.com/warp/shift-payroll/generic"
	"github.com/warp/shift-payroll/shift"
)

// =============================================================================
// TIMESHEET - The edited grid owned by the client between calculations
// =============================================================================

// DefaultShiftCode is the shift every fresh row starts on.
const DefaultShiftCode = "A"

// Timesheet is one employee's month: the shift defaults, the pay
// parameters and the raw rows. It is session state only.
type Timesheet struct {
	ID         string
	Employee   string
	Period     generic.Period
	Department shift.Department
	ShiftCode  string
	Overtime   generic.OvertimePolicy
	Parameters Parameters
	Rows       []attendance.Row
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewTimesheet returns a timesheet with one blank row per day of the
// period, default shift A and default pay parameters.
func NewTimesheet(id, employee string, period generic.Period, department shift.Department) Timesheet {
	now := time.Now().UTC()
	return Timesheet{
		ID:         id,
		Employee:   employee,
		Period:     period,
		Department: department,
		ShiftCode:  DefaultShiftCode,
		Overtime:   generic.SteppedOvertime(generic.DefaultOvertimeStep),
		Parameters: DefaultParameters(),
		Rows:       attendance.BlankRows(period),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Validate checks the rows and parameters.
func (t Timesheet) Validate() error {
	if err := attendance.ValidateRows(t.Rows, t.Period); err != nil {
		return err
	}
	if t.Overtime.StepMinutes < 0 {
		return generic.NewFieldError(generic.ErrInvalidParameters, "overtime_step_minutes", "must not be negative")
	}
	return t.Parameters.Validate()
}

// Evaluator builds the day evaluator for this timesheet's defaults.
func (t Timesheet) Evaluator(catalog *shift.Catalog) *attendance.Evaluator {
	return attendance.NewEvaluator(catalog, t.Department, t.ShiftCode, t.Overtime)
}

// WithNormalizedRows returns a copy whose rows carry the canonical time
// text from a run, so the client can redisplay corrected input.
func (t Timesheet) WithNormalizedRows(run Run) Timesheet {
	byDay := make(map[int]attendance.Row, len(run.Days))
	for _, d := range run.Days {
		byDay[d.Day] = d.Normalized
	}
	rows := make([]attendance.Row, len(t.Rows))
	for i, r := range t.Rows {
		if n, ok := byDay[r.Day]; ok {
			r = n
		}
		rows[i] = r
	}
	t.Rows = rows
	return t
}

// =============================================================================
// STORE - Session persistence for timesheets
// =============================================================================

// TimesheetStore keeps timesheets for the lifetime of a session.
type TimesheetStore interface {
	// SaveTimesheet inserts or replaces a timesheet and its rows.
	SaveTimesheet(ctx context.Context, t Timesheet) error

	// GetTimesheet returns generic.ErrTimesheetNotFound when id is unknown.
	GetTimesheet(ctx context.Context, id string) (*Timesheet, error)

	// ListTimesheets returns all timesheets, most recently updated first.
	ListTimesheets(ctx context.Context) ([]Timesheet, error)

	// DeleteTimesheet returns generic.ErrTimesheetNotFound when id is unknown.
	DeleteTimesheet(ctx context.Context, id string) error

	// DeleteStale removes timesheets not updated since before.
	DeleteStale(ctx context.Context, before time.Time) (int, error)
}
