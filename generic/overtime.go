package generic

import "github.com/shopspring/decimal"

// =============================================================================
// OVERTIME POLICY - How raw overtime minutes become payable minutes
// =============================================================================

// DefaultOvertimeStep is the half-hour step most restaurants pay in.
const DefaultOvertimeStep = 30

// OvertimePolicy floors overtime to a whole number of steps.
// StepMinutes == 0 keeps raw minutes.
type OvertimePolicy struct {
	StepMinutes int
}

// RawOvertime pays every overtime minute.
func RawOvertime() OvertimePolicy { return OvertimePolicy{} }

// SteppedOvertime floors overtime to multiples of step minutes.
func SteppedOvertime(step int) OvertimePolicy { return OvertimePolicy{StepMinutes: step} }

// IsStepped reports whether the policy rounds.
func (p OvertimePolicy) IsStepped() bool { return p.StepMinutes > 0 }

// Apply floors minutes to the policy step. Always a floor.
func (p OvertimePolicy) Apply(minutes int) int {
	if minutes <= 0 {
		return 0
	}
	if !p.IsStepped() {
		return minutes
	}
	return minutes - minutes%p.StepMinutes
}

// Hours returns the payable overtime in hours (29m -> 0, 30m -> 0.5 with a 30m step).
func (p OvertimePolicy) Hours(minutes int) decimal.Decimal {
	return Hours(p.Apply(minutes))
}
