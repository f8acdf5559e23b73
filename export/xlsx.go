/*
Package export moves timesheets in and out of office formats.

PURPOSE:
  Managers keep attendance in spreadsheets. ReadRowsXLSX imports a grid
  from an uploaded workbook, WriteXLSX hands back the normalized grid
  with per-day hours and a summary sheet, and WritePayslipPDF renders a
  one-page payslip from a calculation run.

WORKBOOK LAYOUT (import and export):
  Row 1 is a header and is skipped on import. Columns:
    A Day | B Department | C Shift | D In1 | E Out1 | F In2 | G Out2 | H CompHours
  Time cells may be text ("1500", "15:00") or Excel time values
  (fractions of a day, optionally with a date part).

SEE ALSO:
  - pdf.go: Payslip rendering
  - api/handlers.go: Upload and download endpoints
*/
package export

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/warp/shift-payroll/attendance"
	"github.com/warp/shift-payroll/generic"
	"github.com/warp/shift-payroll/payroll"
	"github.com/xuri/excelize/v2"
)

const (
	AttendanceSheet = "Attendance"
	SummarySheet    = "Summary"
)

var attendanceHeader = []interface{}{"Day", "Department", "Shift", "In1", "Out1", "In2", "Out2", "CompHours"}

// =============================================================================
// IMPORT
// =============================================================================

// ReadRowsXLSX reads attendance rows from the active sheet of a workbook.
// Blank lines are skipped. Day numbers are not range-checked here;
// attendance.ValidateRows does that against the timesheet's period.
func ReadRowsXLSX(r io.Reader) ([]attendance.Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to open workbook: %v", generic.ErrInvalidWorkbook, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: unable to read sheet %q: %v", generic.ErrInvalidWorkbook, sheet, err)
	}

	var out []attendance.Row
	for index, cells := range rows {
		// header
		if index == 0 {
			continue
		}
		if blankLine(cells) {
			continue
		}

		row, err := parseLine(cells)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", generic.ErrInvalidWorkbook, index+1, err)
		}
		out = append(out, row)
	}
	return out, nil
}

func parseLine(cells []string) (attendance.Row, error) {
	cell := func(i int) string {
		if i < len(cells) {
			return strings.TrimSpace(cells[i])
		}
		return ""
	}

	day, err := strconv.ParseFloat(cell(0), 64)
	if err != nil || day != math.Trunc(day) {
		return attendance.Row{}, fmt.Errorf("invalid day %q", cell(0))
	}

	row := attendance.Row{
		Day:        int(day),
		Department: cell(1),
		ShiftCode:  cell(2),
		In1:        timeCell(cell(3)),
		Out1:       timeCell(cell(4)),
		In2:        timeCell(cell(5)),
		Out2:       timeCell(cell(6)),
		CompHours:  decimal.Zero,
	}
	if raw := cell(7); raw != "" {
		comp, err := decimal.NewFromString(raw)
		if err != nil {
			return attendance.Row{}, fmt.Errorf("invalid comp hours %q", raw)
		}
		row.CompHours = comp
	}
	return row, nil
}

// timeCell converts an Excel time value to "HH:MM" and passes anything
// else through untouched for the clock parser to judge. A raw value is a
// time value when it has a fraction or is below one day; Excel writes
// midnight as "0".
func timeCell(raw string) string {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 || math.IsNaN(v) {
		return raw
	}
	if !strings.Contains(raw, ".") && v >= 1 {
		return raw
	}
	_, frac := math.Modf(v)
	minutes := int(math.Round(frac*generic.MinutesPerDay)) % generic.MinutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// weekday returns the short day name, or "" when the month is unknown.
func weekday(p generic.Period, day int) string {
	if p.IsZero() || !p.Contains(day) {
		return ""
	}
	return p.Date(day).Weekday().String()[:3]
}

func blankLine(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// =============================================================================
// EXPORT
// =============================================================================

// WriteXLSX writes the normalized grid with per-day hours, plus a summary
// sheet with the monthly totals.
func WriteXLSX(w io.Writer, t payroll.Timesheet, run payroll.Run) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", AttendanceSheet)
	f.NewSheet(SummarySheet)

	header := append(append([]interface{}{}, attendanceHeader...), "Worked", "Overtime", "Late", "Weekday")
	if err := f.SetSheetRow(AttendanceSheet, "A1", &header); err != nil {
		return err
	}

	for i, d := range run.Days {
		r := d.Normalized
		line := []interface{}{
			r.Day, r.Department, r.ShiftCode, r.In1, r.Out1, r.In2, r.Out2,
			d.CompHours.InexactFloat64(),
			d.WorkedHours().Round(2).InexactFloat64(),
			d.OvertimeHours().Round(2).InexactFloat64(),
			d.LateMinutes,
			weekday(t.Period, r.Day),
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(AttendanceSheet, axis, &line); err != nil {
			return err
		}
	}

	s := run.Result.Display()
	summary := [][]interface{}{
		{"Employee", t.Employee},
		{"Period", t.Period.String()},
		{"Department", string(t.Department)},
		{"Pay mode", string(t.Parameters.Mode)},
		{"Days worked", s.DaysWorked},
		{"Worked hours", s.TotalWorkedHours.InexactFloat64()},
		{"Overtime hours", s.TotalOvertimeHours.InexactFloat64()},
		{"Regular hours", s.RegularHours.InexactFloat64()},
		{"Comp hours", s.TotalCompHours.InexactFloat64()},
		{"Late minutes", s.TotalLateMinutes},
		{"Regular pay", s.RegularPay},
		{"Overtime pay", s.OvertimePay},
		{"Late penalty", s.LatePenalty},
		{"Attendance bonus", s.AttendanceBonus},
		{"Final pay", s.FinalPay},
	}
	for i, line := range summary {
		line := line
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SummarySheet, axis, &line); err != nil {
			return err
		}
	}

	return f.Write(w)
}
