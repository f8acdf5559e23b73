package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/warp/shift-payroll/payroll"
)

// compressPayslip toggles stream compression; tests turn it off to read
// the page text.
var compressPayslip = true

// WritePayslipPDF renders a one-page payslip: header, hour totals, pay
// breakdown and any advisory notes from the run.
func WritePayslipPDF(w io.Writer, t payroll.Timesheet, run payroll.Run) error {
	s := run.Result.Display()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(compressPayslip)
	// Core fonts are cp1252; user text is translated, unknown runes print as '.'.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	line := func(format string, args ...interface{}) {
		pdf.Cell(0, 8, tr(fmt.Sprintf(format, args...)))
		pdf.Ln(7)
	}

	employee := t.Employee
	if employee == "" {
		employee = t.ID
	}
	line("Employee: %s", employee)
	if !t.Period.IsZero() {
		line("Period: %s", t.Period)
	}
	line("Department: %s  Default shift: %s", t.Department, t.ShiftCode)
	line("Pay mode: %s", t.Parameters.Mode)
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 12)
	line("Attendance")
	pdf.SetFont("Helvetica", "", 12)
	line("Days worked: %d", s.DaysWorked)
	line("Worked hours: %s", s.TotalWorkedHours.StringFixed(2))
	line("Overtime hours: %s", s.TotalOvertimeHours.StringFixed(2))
	line("Regular hours: %s", s.RegularHours.StringFixed(2))
	line("Comp hours: %s", s.TotalCompHours.StringFixed(2))
	line("Late minutes: %d", s.TotalLateMinutes)
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 12)
	line("Pay")
	pdf.SetFont("Helvetica", "", 12)
	line("Regular pay: %d", s.RegularPay)
	line("Overtime pay: %d", s.OvertimePay)
	line("Attendance bonus: %d", s.AttendanceBonus)
	line("Late penalty: -%d", s.LatePenalty)
	pdf.SetFont("Helvetica", "B", 12)
	line("Final pay: %d", s.FinalPay)

	if len(run.Notes) > 0 {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "I", 9)
		for _, n := range run.Notes {
			pdf.Cell(0, 5, tr(n))
			pdf.Ln(5)
		}
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to render payslip: %w", err)
	}
	return pdf.Output(w)
}
