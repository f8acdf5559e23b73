package payroll

import (
	"github.com/warp/shift-payroll/attendance"
	"github.com/warp/shift-payroll/shift"
)

// NoAttendanceNote is reported when no row has a clock-in.
const NoAttendanceNote = "no attendance entered"

// Run is one complete calculation pass: per-day results, the monthly
// result and display-only notes.
type Run struct {
	Days   []attendance.DayResult
	Result Result
	Notes  []string
}

// Calculate validates the timesheet, evaluates every row and aggregates
// the month. Bad cells and unknown shifts only add notes; the error is
// reserved for malformed timesheets.
func Calculate(t Timesheet, catalog *shift.Catalog) (Run, error) {
	if err := t.Validate(); err != nil {
		return Run{}, err
	}

	days := t.Evaluator(catalog).EvaluateAll(t.Rows)
	run := Run{
		Days:   days,
		Result: Aggregate(days, t.Parameters),
	}
	for _, d := range days {
		run.Notes = append(run.Notes, d.Notes...)
	}
	if run.Result.DaysWorked == 0 {
		run.Notes = append(run.Notes, NoAttendanceNote)
	}
	return run, nil
}
