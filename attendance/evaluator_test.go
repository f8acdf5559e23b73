package attendance

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-payroll/generic"
	"github.com/warp/shift-payroll/shift"
)

func newFloorEvaluator(code string) *Evaluator {
	return NewEvaluator(shift.DefaultCatalog(), shift.DepartmentFloor, code, generic.SteppedOvertime(generic.DefaultOvertimeStep))
}

func TestEvaluate_BlankDay(t *testing.T) {
	e := newFloorEvaluator("A")

	res := e.Evaluate(Row{Day: 3})

	assert.False(t, res.HasRecord)
	assert.Zero(t, res.WorkedMinutes)
	assert.Zero(t, res.LateMinutes)
	assert.Zero(t, res.OvertimeMinutes)
	assert.Empty(t, res.Notes)
}

func TestEvaluate_SingleShiftWithOvertime(t *testing.T) {
	// GIVEN: Floor A (15:00-23:00), in on time, out 23:30
	e := newFloorEvaluator("A")

	// WHEN
	res := e.Evaluate(Row{Day: 1, In1: "1500", Out1: "2330"})

	// THEN
	assert.True(t, res.HasRecord)
	assert.True(t, res.ShiftMatched)
	assert.Equal(t, 510, res.WorkedMinutes)
	assert.Equal(t, 0, res.LateMinutes)
	assert.Equal(t, 30, res.OvertimeMinutes)
	assert.Equal(t, "8", res.RegularHours().String())
	assert.Equal(t, "15:00", res.Normalized.In1)
	assert.Equal(t, "23:30", res.Normalized.Out1)
}

func TestEvaluate_SplitShift(t *testing.T) {
	// GIVEN: Floor C (11:00-14:30 + 17:00-21:00), 5 minutes late for the
	// first half and 40 minutes over on the second
	e := newFloorEvaluator("C")

	res := e.Evaluate(Row{Day: 2, In1: "11:05", Out1: "14:30", In2: "17:00", Out2: "21:40"})

	assert.Equal(t, 205+280, res.WorkedMinutes)
	assert.Equal(t, 5, res.LateMinutes)
	assert.Equal(t, 40, res.RawOvertimeMinutes)
	assert.Equal(t, 30, res.OvertimeMinutes)
}

func TestEvaluate_SplitShiftEarlyLunchDeparture(t *testing.T) {
	// GIVEN: Kitchen C (10:00-14:00 + 16:30-21:30), leaving lunch at 11:30
	e := NewEvaluator(shift.DefaultCatalog(), shift.DepartmentKitchen, "C", generic.SteppedOvertime(generic.DefaultOvertimeStep))

	// WHEN
	res := e.Evaluate(Row{Day: 3, In1: "10:00", Out1: "11:30", In2: "16:30", Out2: "21:30"})

	// THEN: The early departure is not read as a next-day checkout
	assert.Equal(t, 390, res.WorkedMinutes)
	assert.Equal(t, 0, res.RawOvertimeMinutes)
	assert.Equal(t, 0, res.OvertimeMinutes)
	assert.Equal(t, "6.5", res.RegularHours().String())
}

func TestEvaluate_MidnightCrossing(t *testing.T) {
	// Floor B ends at 00:00; leaving at 00:20 is 20 minutes of overtime
	e := NewEvaluator(shift.DefaultCatalog(), shift.DepartmentFloor, "B", generic.RawOvertime())

	res := e.Evaluate(Row{Day: 5, In1: "17:30", Out1: "00:20"})

	assert.Equal(t, 410, res.WorkedMinutes)
	assert.Equal(t, 20, res.OvertimeMinutes)
	assert.Equal(t, 0, res.LateMinutes)
}

func TestEvaluate_RowOverridesShift(t *testing.T) {
	e := newFloorEvaluator("A")

	res := e.Evaluate(Row{Day: 1, Department: "Kitchen", ShiftCode: "b", In1: "16:10", Out1: "00:30"})

	assert.Equal(t, "kitchen/B", res.Shift.String())
	assert.Equal(t, 10, res.LateMinutes)
	assert.Equal(t, 500, res.WorkedMinutes)
}

func TestEvaluate_UnknownShiftCountsElapsedOnly(t *testing.T) {
	e := newFloorEvaluator("Z")

	res := e.Evaluate(Row{Day: 4, In1: "09:00", Out1: "18:00", In2: "20:00", Out2: "21:00"})

	assert.True(t, res.HasRecord)
	assert.False(t, res.ShiftMatched)
	assert.Equal(t, 600, res.WorkedMinutes)
	assert.Zero(t, res.LateMinutes)
	assert.Zero(t, res.OvertimeMinutes)
	require.Len(t, res.Notes, 1)
	assert.Contains(t, res.Notes[0], "no shift floor/Z")
}

func TestEvaluate_InvalidCellsBecomeNotes(t *testing.T) {
	e := newFloorEvaluator("A")

	res := e.Evaluate(Row{Day: 7, In1: "25:99", Out1: "23:00"})

	assert.False(t, res.HasRecord, "no valid clock-in means no record")
	require.Len(t, res.Notes, 1)
	assert.Contains(t, res.Notes[0], `in1 "25:99"`)
	assert.Equal(t, "", res.Normalized.In1)
}

func TestEvaluate_MissingClockOut(t *testing.T) {
	e := newFloorEvaluator("A")

	res := e.Evaluate(Row{Day: 8, In1: "15:00"})

	assert.True(t, res.HasRecord)
	assert.Zero(t, res.WorkedMinutes)
	require.Len(t, res.Notes, 1)
	assert.Contains(t, res.Notes[0], "no clock-out")
}

func TestEvaluate_SecondPairIgnoredOnSingleShift(t *testing.T) {
	e := newFloorEvaluator("A")

	res := e.Evaluate(Row{Day: 9, In1: "15:00", Out1: "23:00", In2: "23:30", Out2: "23:45"})

	assert.Equal(t, 480, res.WorkedMinutes)
	require.Len(t, res.Notes, 1)
	assert.Contains(t, res.Notes[0], "second pair ignored")
}

func TestEvaluate_CompHoursPassThrough(t *testing.T) {
	e := newFloorEvaluator("A")

	res := e.Evaluate(Row{Day: 1, ShiftCode: "C", CompHours: decimal.RequireFromString("2.5")})
	assert.Equal(t, "2.5", res.CompHours.String())
	assert.False(t, res.HasRecord)
}

func TestEvaluateAll_KeepsOrder(t *testing.T) {
	e := newFloorEvaluator("A")

	out := e.EvaluateAll([]Row{{Day: 2}, {Day: 1, In1: "15:00", Out1: "23:00"}})

	require.Len(t, out, 2)
	assert.Equal(t, 2, out[0].Day)
	assert.Equal(t, 480, out[1].WorkedMinutes)
}

// =============================================================================
// ROWS
// =============================================================================

func TestValidateRows(t *testing.T) {
	feb, err := generic.ParsePeriod("2025-02")
	require.NoError(t, err)

	assert.NoError(t, ValidateRows(BlankRows(feb), feb))
	assert.Len(t, BlankRows(feb), 28)

	tests := []struct {
		name string
		rows []Row
		want error
	}{
		{"too many rows", BlankRows(generic.Period{}), generic.ErrTooManyRows},
		{"day outside period", []Row{{Day: 29}}, generic.ErrInvalidDay},
		{"day zero", []Row{{Day: 0}}, generic.ErrInvalidDay},
		{"duplicate day", []Row{{Day: 3}, {Day: 3}}, generic.ErrDuplicateDay},
		{"negative comp hours", []Row{{Day: 3, CompHours: decimal.NewFromInt(-1)}}, generic.ErrInvalidDay},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRows(tt.rows, feb)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestRow_IsBlankAndNormalized(t *testing.T) {
	assert.True(t, Row{Day: 1, ShiftCode: "A"}.IsBlank())

	r := Row{Day: 1, In1: "930", Out1: "bad", In2: "17:00:00"}
	assert.False(t, r.IsBlank())

	n := r.Normalized()
	assert.Equal(t, "09:30", n.In1)
	assert.Equal(t, "", n.Out1)
	assert.Equal(t, "17:00", n.In2)
	assert.Equal(t, "930", r.In1)
}
