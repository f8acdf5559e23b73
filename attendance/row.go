// Package attendance turns one day of raw clock text into worked, late
// and overtime minutes.
package attendance

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp/shift-payroll/generic"
)

// MaxPairs is the number of clock-in/clock-out pairs a day can hold.
const MaxPairs = 2

// Row is one editable day of the attendance grid. Time cells hold raw
// text exactly as typed; any of them may be empty.
type Row struct {
	Day        int
	Department string // optional per-day override
	ShiftCode  string // optional per-day override
	In1        string
	Out1       string
	In2        string
	Out2       string
	CompHours  decimal.Decimal // manual comp-time entry, never derived
}

// IsBlank reports whether no time cell has any text.
func (r Row) IsBlank() bool {
	return r.In1 == "" && r.Out1 == "" && r.In2 == "" && r.Out2 == ""
}

// Normalized returns a copy with every time cell in canonical "HH:MM"
// form. Cells that don't parse become empty.
func (r Row) Normalized() Row {
	n := r
	n.In1 = generic.NormalizeClock(r.In1)
	n.Out1 = generic.NormalizeClock(r.Out1)
	n.In2 = generic.NormalizeClock(r.In2)
	n.Out2 = generic.NormalizeClock(r.Out2)
	return n
}

func (r Row) cells() [MaxPairs][2]string {
	return [MaxPairs][2]string{{r.In1, r.Out1}, {r.In2, r.Out2}}
}

// BlankRows returns one empty row per day of the period.
func BlankRows(period generic.Period) []Row {
	rows := make([]Row, period.Days())
	for i := range rows {
		rows[i] = Row{Day: i + 1}
	}
	return rows
}

// ValidateRows rejects structurally impossible grids: too many rows,
// days outside the period, duplicated days and negative comp hours.
// Bad time text is not an error.
func ValidateRows(rows []Row, period generic.Period) error {
	if len(rows) > period.Days() {
		return fmt.Errorf("%w: %d rows for a %d-day period", generic.ErrTooManyRows, len(rows), period.Days())
	}
	seen := make(map[int]bool, len(rows))
	for i, r := range rows {
		field := fmt.Sprintf("rows[%d].day", i)
		if !period.Contains(r.Day) {
			return generic.NewFieldError(generic.ErrInvalidDay, field, fmt.Sprintf("day %d outside 1-%d", r.Day, period.Days()))
		}
		if seen[r.Day] {
			return generic.NewFieldError(generic.ErrDuplicateDay, field, fmt.Sprintf("day %d appears twice", r.Day))
		}
		seen[r.Day] = true
		if r.CompHours.IsNegative() {
			return generic.NewFieldError(generic.ErrInvalidDay, fmt.Sprintf("rows[%d].comp_hours", i), "must not be negative")
		}
	}
	return nil
}
