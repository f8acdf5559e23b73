package api

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-payroll/generic"
	"github.com/warp/shift-payroll/payroll"
	"github.com/warp/shift-payroll/shift"
	"github.com/warp/shift-payroll/store/memory"
)

func TestListScenarios(t *testing.T) {
	_, router := newTestHandler(t)

	rec := doJSON(t, router, http.MethodGet, "/api/scenarios", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	list := decode[[]ScenarioDTO](t, rec)
	require.Len(t, list, len(scenarioBuilders))
	for _, s := range list {
		_, ok := scenarioBuilders[s.ID]
		assert.True(t, ok, "scenario %s has no builder", s.ID)
	}
}

func TestLoadScenario(t *testing.T) {
	tests := []struct {
		name       string
		finalPay   string
		display    int64
		lateMin    int
		overtime   int
		daysWorked int
	}{
		{"hourly-overtime", "3647.3", 3647, 0, 30, 1},
		{"monthly-salary", "34000", 34000, 0, 0, 0},
		// 905 regular minutes at 190 + 30 overtime minutes at 254.6 - 5 late minutes at 5
		{"split-shift", "2968.1333333333333333", 2968, 5, 30, 2},
		// 390 regular minutes at 190 + 20 raw overtime minutes at 254.6 + bonus
		{"midnight-close", "3319.8666666666666667", 3319, 0, 20, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, router := newTestHandler(t)

			rec := doJSON(t, router, http.MethodPost, "/api/scenarios/"+tt.name, nil)
			require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

			resp := decode[ScenarioLoadResponse](t, rec)
			assert.Equal(t, tt.name, resp.Scenario.ID)
			assert.Equal(t, tt.display, resp.Calculation.Summary.FinalPay)
			assert.Equal(t, tt.lateMin, resp.Calculation.Result.TotalLateMinutes)
			assert.Equal(t, tt.overtime, resp.Calculation.Result.TotalOvertimeMinutes)
			assert.Equal(t, tt.daysWorked, resp.Calculation.Result.DaysWorked)
			assert.True(t, resp.Calculation.Result.FinalPay.Round(4).Equal(dec(tt.finalPay).Round(4)),
				"final pay %s", resp.Calculation.Result.FinalPay)

			// Stored and retrievable
			rec = doJSON(t, router, http.MethodGet, "/api/timesheets/"+resp.Timesheet.ID, nil)
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestLoadScenario_Unknown(t *testing.T) {
	_, router := newTestHandler(t)

	rec := doJSON(t, router, http.MethodPost, "/api/scenarios/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestScenarioTimesheet_NormalizesSplitInput(t *testing.T) {
	ts, ok := ScenarioTimesheet("x", "split-shift")
	require.True(t, ok)

	run, err := payroll.Calculate(ts, shift.DefaultCatalog())
	require.NoError(t, err)

	norm := ts.WithNormalizedRows(run)
	assert.Equal(t, "11:05", norm.Rows[0].In1)
	assert.Equal(t, "21:40", norm.Rows[0].Out2)
	assert.Equal(t, "1105", ts.Rows[0].In1, "original timesheet untouched")
}

// =============================================================================
// SESSION SWEEPER
// =============================================================================

func TestSessionSweeper_RunNow(t *testing.T) {
	// GIVEN: One idle and one fresh timesheet
	store := memory.NewMemory()
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	idle := payroll.NewTimesheet("idle", "", generic.Period{}, shift.DepartmentFloor)
	idle.UpdatedAt = now.Add(-13 * time.Hour)
	fresh := payroll.NewTimesheet("fresh", "", generic.Period{}, shift.DepartmentFloor)
	fresh.UpdatedAt = now.Add(-time.Hour)
	require.NoError(t, store.SaveTimesheet(ctx, idle))
	require.NoError(t, store.SaveTimesheet(ctx, fresh))

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	sweeper := NewSessionSweeper(store, logger)
	sweeper.now = func() time.Time { return now }

	// WHEN: Sweeping with a 12h TTL
	deleted := sweeper.RunNow(ctx)

	// THEN: Only the idle one is removed
	assert.Equal(t, 1, deleted)
	_, err := store.GetTimesheet(ctx, "idle")
	assert.True(t, generic.IsNotFound(err))
	_, err = store.GetTimesheet(ctx, "fresh")
	assert.NoError(t, err)
}

func TestSessionSweeper_NextRunTime(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	sweeper := NewSessionSweeper(memory.NewMemory(), logger)
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	sweeper.now = func() time.Time { return now }

	assert.Equal(t, now.Add(15*time.Minute), sweeper.NextRunTime())
}

func TestSessionSweeper_StartStop(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	sweeper := NewSessionSweeper(memory.NewMemory(), logger)
	sweeper.CheckInterval = 10 * time.Millisecond

	sweeper.Start()
	sweeper.Start() // second start is a no-op
	time.Sleep(25 * time.Millisecond)
	sweeper.Stop()
	sweeper.Stop()

	sweeper.Enabled = false
	sweeper.Start()
	assert.Nil(t, sweeper.ticker)
}
