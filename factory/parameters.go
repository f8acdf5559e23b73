package factory

import (
	"github.com/shopspring/decimal"
	"github.com/warp/shift-payroll/payroll"
)

// ParametersJSON is the JSON representation of pay parameters. Omitted
// fields take the values of payroll.DefaultParameters.
//
//	{
//	  "mode": "hourly",
//	  "hourly_wage": 190,
//	  "overtime_multiplier": 1.34,
//	  "late_fee_per_minute": 5,
//	  "full_attendance_bonus": 2000
//	}
type ParametersJSON struct {
	Mode                string           `json:"mode,omitempty"`
	HourlyWage          *decimal.Decimal `json:"hourly_wage,omitempty"`
	MonthlySalary       *decimal.Decimal `json:"monthly_salary,omitempty"`
	OvertimeBaseRate    *decimal.Decimal `json:"overtime_base_rate,omitempty"`
	OvertimeMultiplier  *decimal.Decimal `json:"overtime_multiplier,omitempty"`
	LateFeePerMinute    *decimal.Decimal `json:"late_fee_per_minute,omitempty"`
	FullAttendanceBonus *decimal.Decimal `json:"full_attendance_bonus,omitempty"`
}

// ParametersFromJSON fills defaults and validates.
func ParametersFromJSON(pj ParametersJSON) (payroll.Parameters, error) {
	return MergeParameters(payroll.DefaultParameters(), pj)
}

// MergeParameters applies the fields present in pj on top of base.
func MergeParameters(base payroll.Parameters, pj ParametersJSON) (payroll.Parameters, error) {
	p := base
	if pj.Mode != "" {
		p.Mode = payroll.Mode(pj.Mode)
	}
	set(&p.HourlyWage, pj.HourlyWage)
	set(&p.MonthlySalary, pj.MonthlySalary)
	set(&p.OvertimeBaseRate, pj.OvertimeBaseRate)
	set(&p.OvertimeMultiplier, pj.OvertimeMultiplier)
	set(&p.LateFeePerMinute, pj.LateFeePerMinute)
	set(&p.FullAttendanceBonus, pj.FullAttendanceBonus)

	if err := p.Validate(); err != nil {
		return payroll.Parameters{}, err
	}
	return p, nil
}

// ParametersToJSON converts parameters to their JSON form.
func ParametersToJSON(p payroll.Parameters) ParametersJSON {
	return ParametersJSON{
		Mode:                string(p.Mode),
		HourlyWage:          ptr(p.HourlyWage),
		MonthlySalary:       ptr(p.MonthlySalary),
		OvertimeBaseRate:    ptr(p.OvertimeBaseRate),
		OvertimeMultiplier:  ptr(p.OvertimeMultiplier),
		LateFeePerMinute:    ptr(p.LateFeePerMinute),
		FullAttendanceBonus: ptr(p.FullAttendanceBonus),
	}
}

func set(dst *decimal.Decimal, v *decimal.Decimal) {
	if v != nil {
		*dst = *v
	}
}

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }
