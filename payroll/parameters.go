/*
Package payroll folds per-day attendance results into a monthly payout.

PURPOSE:
  Sums the Day Evaluator output and applies the pay formula in either
  hourly or monthly-salary mode. All arithmetic uses decimal.Decimal;
  values are floored to whole currency units only by Result.Display.

PAY FORMULA:
  regularHours = max(0, workedHours - overtimeHours)
  hourly:        regularPay = regularHours * hourlyWage
  monthlySalary: regularPay = monthlySalary
  overtimePay  = overtimeHours * overtimeRate * overtimeMultiplier
  latePenalty  = lateMinutes * lateFeePerMinute
  bonus        = fullAttendanceBonus if lateMinutes == 0 else 0
  finalPay     = regularPay + overtimePay + bonus - latePenalty

SEE ALSO:
  - attendance/evaluator.go: Produces DayResult
  - factory/parameters.go: JSON parameter loading
*/
package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp/shift-payroll/generic"
)

// =============================================================================
// PAY MODE
// =============================================================================

// Mode selects how regular pay is computed.
type Mode string

const (
	ModeHourly        Mode = "hourly"
	ModeMonthlySalary Mode = "monthly_salary"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool { return m == ModeHourly || m == ModeMonthlySalary }

// SalaryHoursPerMonth converts a monthly salary to an hourly overtime base.
var SalaryHoursPerMonth = decimal.NewFromInt(240)

// =============================================================================
// PARAMETERS
// =============================================================================

// Parameters are the pay-rate inputs for one calculation run.
type Parameters struct {
	Mode                Mode
	HourlyWage          generic.Money
	MonthlySalary       generic.Money
	OvertimeBaseRate    generic.Money // zero means "derive from the mode"
	OvertimeMultiplier  decimal.Decimal
	LateFeePerMinute    generic.Money
	FullAttendanceBonus generic.Money
}

// DefaultParameters returns the restaurant's standard hourly settings.
func DefaultParameters() Parameters {
	return Parameters{
		Mode:                ModeHourly,
		HourlyWage:          generic.NewMoneyFromInt(190),
		MonthlySalary:       decimal.Zero,
		OvertimeMultiplier:  decimal.RequireFromString("1.34"),
		LateFeePerMinute:    generic.NewMoneyFromInt(5),
		FullAttendanceBonus: generic.NewMoneyFromInt(2000),
	}
}

// OvertimeRate returns the wage overtime is priced at: the explicit
// override when set, else the hourly wage, else monthly salary / 240.
func (p Parameters) OvertimeRate() generic.Money {
	if p.OvertimeBaseRate.IsPositive() {
		return p.OvertimeBaseRate
	}
	if p.Mode == ModeMonthlySalary {
		return p.MonthlySalary.Div(SalaryHoursPerMonth)
	}
	return p.HourlyWage
}

// Validate rejects an unknown mode and negative amounts.
func (p Parameters) Validate() error {
	if !p.Mode.Valid() {
		return generic.NewFieldError(generic.ErrInvalidParameters, "mode", fmt.Sprintf("unknown pay mode %q", p.Mode))
	}
	fields := []struct {
		name string
		v    decimal.Decimal
	}{
		{"hourly_wage", p.HourlyWage},
		{"monthly_salary", p.MonthlySalary},
		{"overtime_base_rate", p.OvertimeBaseRate},
		{"overtime_multiplier", p.OvertimeMultiplier},
		{"late_fee_per_minute", p.LateFeePerMinute},
		{"full_attendance_bonus", p.FullAttendanceBonus},
	}
	for _, f := range fields {
		if f.v.IsNegative() {
			return generic.NewFieldError(generic.ErrInvalidParameters, f.name, "must not be negative")
		}
	}
	return nil
}
