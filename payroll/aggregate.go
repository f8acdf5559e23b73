package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/warp/shift-payroll/attendance"
	"github.com/warp/shift-payroll/generic"
)

// =============================================================================
// RESULT
// =============================================================================

// Result is the monthly payout breakdown. Money fields keep full
// precision; use Display for presentation.
//
// Invariant: FinalPay = RegularPay + OvertimePay + AttendanceBonus - LatePenalty.
type Result struct {
	TotalWorkedMinutes   int
	TotalOvertimeMinutes int
	TotalLateMinutes     int
	DaysWorked           int

	TotalWorkedHours   decimal.Decimal
	TotalOvertimeHours decimal.Decimal
	RegularHours       decimal.Decimal
	TotalCompHours     decimal.Decimal

	OvertimeRate    generic.Money
	RegularPay      generic.Money
	OvertimePay     generic.Money
	LatePenalty     generic.Money
	AttendanceBonus generic.Money
	FinalPay        generic.Money
}

// FullAttendance reports whether the bonus was earned.
func (r Result) FullAttendance() bool { return r.TotalLateMinutes == 0 }

// GrossPay is regular plus overtime pay, before bonus and penalty.
func (r Result) GrossPay() generic.Money { return r.RegularPay.Add(r.OvertimePay) }

// =============================================================================
// AGGREGATE
// =============================================================================

// Aggregate sums day results and applies the pay formula. It does not
// modify its inputs, so repeated calls on the same input are identical.
func Aggregate(days []attendance.DayResult, p Parameters) Result {
	var r Result
	comp := decimal.Zero
	for _, d := range days {
		r.TotalWorkedMinutes += d.WorkedMinutes
		r.TotalOvertimeMinutes += d.OvertimeMinutes
		r.TotalLateMinutes += d.LateMinutes
		comp = comp.Add(d.CompHours)
		if d.HasRecord {
			r.DaysWorked++
		}
	}

	regularMinutes := r.TotalWorkedMinutes - r.TotalOvertimeMinutes
	if regularMinutes < 0 {
		regularMinutes = 0
	}

	r.TotalWorkedHours = generic.Hours(r.TotalWorkedMinutes)
	r.TotalOvertimeHours = generic.Hours(r.TotalOvertimeMinutes)
	r.RegularHours = generic.Hours(regularMinutes)
	r.TotalCompHours = comp

	r.OvertimeRate = p.OvertimeRate()
	switch p.Mode {
	case ModeMonthlySalary:
		r.RegularPay = p.MonthlySalary
	default:
		r.RegularPay = perMinute(regularMinutes, p.HourlyWage)
	}
	r.OvertimePay = perMinute(r.TotalOvertimeMinutes, r.OvertimeRate.Mul(p.OvertimeMultiplier))

	r.LatePenalty = decimal.NewFromInt(int64(r.TotalLateMinutes)).Mul(p.LateFeePerMinute)
	r.AttendanceBonus = decimal.Zero
	if r.FullAttendance() {
		r.AttendanceBonus = p.FullAttendanceBonus
	}

	r.FinalPay = r.RegularPay.Add(r.OvertimePay).Add(r.AttendanceBonus).Sub(r.LatePenalty)
	return r
}

// perMinute prices whole minutes at an hourly rate, multiplying before
// dividing by 60 so whole-minute totals stay exact.
func perMinute(minutes int, hourlyRate decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Mul(hourlyRate).Div(decimal.NewFromInt(60))
}

// =============================================================================
// DISPLAY
// =============================================================================

// Summary is the presentation form of a Result: money floored to whole
// currency units, hours rounded to two places.
type Summary struct {
	TotalWorkedHours   decimal.Decimal
	TotalOvertimeHours decimal.Decimal
	RegularHours       decimal.Decimal
	TotalCompHours     decimal.Decimal
	TotalLateMinutes   int
	DaysWorked         int

	GrossPay        int64
	RegularPay      int64
	OvertimePay     int64
	LatePenalty     int64
	AttendanceBonus int64
	FinalPay        int64
	FullAttendance  bool
}

// Display floors every monetary value. Flooring happens here only, never
// during accumulation.
func (r Result) Display() Summary {
	return Summary{
		TotalWorkedHours:   r.TotalWorkedHours.Round(2),
		TotalOvertimeHours: r.TotalOvertimeHours.Round(2),
		RegularHours:       r.RegularHours.Round(2),
		TotalCompHours:     r.TotalCompHours.Round(2),
		TotalLateMinutes:   r.TotalLateMinutes,
		DaysWorked:         r.DaysWorked,
		GrossPay:           generic.Floor(r.GrossPay()),
		RegularPay:         generic.Floor(r.RegularPay),
		OvertimePay:        generic.Floor(r.OvertimePay),
		LatePenalty:        generic.Floor(r.LatePenalty),
		AttendanceBonus:    generic.Floor(r.AttendanceBonus),
		FinalPay:           generic.Floor(r.FinalPay),
		FullAttendance:     r.FullAttendance(),
	}
}
