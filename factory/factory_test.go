package factory

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-payroll/generic"
	"github.com/warp/shift-payroll/payroll"
	"github.com/warp/shift-payroll/shift"
)

// =============================================================================
// CATALOG
// =============================================================================

func TestParseCatalog(t *testing.T) {
	doc := `{
		"shifts": [
			{"department": "Floor", "code": "a", "name": "Dinner", "segments": [{"in": "1500", "out": "23:00"}]},
			{"department": "kitchen", "code": "B", "segments": [{"in": "16:00", "out": "00:30"}]},
			{"department": "kitchen", "code": "C", "segments": [{"in": "10:00", "out": "14:00"}, {"in": "16:30", "out": "21:30"}]}
		]
	}`

	c, err := ParseCatalog(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, 3, c.Len())
	segs := c.Lookup(shift.DepartmentFloor, "A")
	require.Len(t, segs, 1)
	assert.Equal(t, "15:00-23:00", segs[0].String())
	assert.True(t, c.Lookup(shift.DepartmentKitchen, "b")[0].Crosses())
	assert.Len(t, c.Lookup(shift.DepartmentKitchen, "C"), 2)
}

func TestParseCatalog_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{shifts`},
		{"unknown field", `{"shifts": [], "extra": 1}`},
		{"empty", `{"shifts": []}`},
		{"bad segment time", `{"shifts": [{"department": "floor", "code": "A", "segments": [{"in": "25:00", "out": "23:00"}]}]}`},
		{"bad department", `{"shifts": [{"department": "bar", "code": "A", "segments": [{"in": "15:00", "out": "23:00"}]}]}`},
		{"duplicate", `{"shifts": [
			{"department": "floor", "code": "A", "segments": [{"in": "15:00", "out": "23:00"}]},
			{"department": "floor", "code": "a", "segments": [{"in": "16:00", "out": "23:00"}]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, generic.ErrInvalidCatalog), "got %v", err)
		})
	}
}

func TestCatalog_RoundTripsDefaults(t *testing.T) {
	// GIVEN: The built-in catalog written out as JSON
	data, err := json.Marshal(CatalogToJSON(shift.DefaultCatalog()))
	require.NoError(t, err)

	// WHEN: Parsed back
	c, err := ParseCatalog(strings.NewReader(string(data)))
	require.NoError(t, err)

	// THEN: Every definition survives
	assert.Equal(t, shift.DefaultCatalog().Definitions(), c.Definitions())
	assert.Contains(t, string(data), `"crosses_midnight":true`)
	assert.Contains(t, string(data), `"scheduled_minutes":450`)
}

func TestLoadCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shifts.json")
	doc := `{"shifts": [{"department": "floor", "code": "A", "segments": [{"in": "15:00", "out": "23:00"}]}]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	c, err := LoadCatalogFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	_, err = LoadCatalogFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

// =============================================================================
// PARAMETERS
// =============================================================================

func TestParametersFromJSON_FillsDefaults(t *testing.T) {
	var pj ParametersJSON
	require.NoError(t, json.Unmarshal([]byte(`{"mode": "monthly_salary", "monthly_salary": 32000}`), &pj))

	p, err := ParametersFromJSON(pj)
	require.NoError(t, err)

	assert.Equal(t, payroll.ModeMonthlySalary, p.Mode)
	assert.Equal(t, "32000", p.MonthlySalary.String())
	assert.Equal(t, "190", p.HourlyWage.String())
	assert.Equal(t, "1.34", p.OvertimeMultiplier.String())
	assert.Equal(t, "2000", p.FullAttendanceBonus.String())
}

func TestMergeParameters_KeepsBase(t *testing.T) {
	base := payroll.DefaultParameters()
	base.HourlyWage = generic.NewMoneyFromInt(210)

	var pj ParametersJSON
	require.NoError(t, json.Unmarshal([]byte(`{"late_fee_per_minute": "7.5"}`), &pj))

	p, err := MergeParameters(base, pj)
	require.NoError(t, err)
	assert.Equal(t, "210", p.HourlyWage.String())
	assert.Equal(t, "7.5", p.LateFeePerMinute.String())
}

func TestParametersFromJSON_Invalid(t *testing.T) {
	tests := []string{
		`{"mode": "weekly"}`,
		`{"hourly_wage": -1}`,
		`{"overtime_multiplier": -0.5}`,
	}
	for _, doc := range tests {
		var pj ParametersJSON
		require.NoError(t, json.Unmarshal([]byte(doc), &pj))

		_, err := ParametersFromJSON(pj)
		assert.True(t, errors.Is(err, generic.ErrInvalidParameters), "%s: got %v", doc, err)
	}
}

func TestParametersToJSON_RoundTrip(t *testing.T) {
	p := payroll.DefaultParameters()
	p.OvertimeBaseRate = generic.NewMoneyFromInt(200)

	back, err := ParametersFromJSON(ParametersToJSON(p))
	require.NoError(t, err)
	assert.True(t, back.OvertimeBaseRate.Equal(p.OvertimeBaseRate))
	assert.True(t, back.HourlyWage.Equal(p.HourlyWage))
	assert.Equal(t, p.Mode, back.Mode)
}
