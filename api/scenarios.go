/*
scenarios.go - Demo timesheets for testing and demonstrations

PURPOSE:

	Provides pre-built timesheets that show the pay rules at work. Loading
	a scenario stores a new timesheet and returns it together with its
	calculation, so a client can open it straight in the grid.

AVAILABLE SCENARIOS:

	hourly-overtime:  Floor shift A, one day 15:00-23:30 (final pay 3647.3)
	monthly-salary:   Salary 32000, overtime base 133, no attendance (34000)
	split-shift:      Floor shift C with a late start and overtime on the second segment
	midnight-close:   Floor shift B ending 00:00, clock-out 00:20, raw overtime

USAGE VIA API:

	POST /api/scenarios/hourly-overtime

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description
 2. Add a builder to 'scenarioBuilders'

SEE ALSO:
  - handlers.go: Timesheet handlers
  - payroll/calculate.go: Calculation entry point
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/warp/shift-payroll/generic"
	"github.com/warp/shift-payroll/payroll"
	"github.com/warp/shift-payroll/shift"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "hourly-overtime",
		Name:        "Hourly With Overtime",
		Description: "Floor shift A (15:00-23:00), one day worked 15:00-23:30: half an hour of overtime",
	},
	{
		ID:          "monthly-salary",
		Name:        "Monthly Salary",
		Description: "Salary 32000 with overtime base 133 and no attendance: salary plus bonus",
	},
	{
		ID:          "split-shift",
		Name:        "Split Shift",
		Description: "Floor shift C (11:00-14:30, 17:00-21:00) with a late start and a late finish",
	},
	{
		ID:          "midnight-close",
		Name:        "Midnight Close",
		Description: "Floor shift B (17:30-00:00) clocking out at 00:20 with raw overtime",
	},
}

var scenarioBuilders = map[string]func(t *payroll.Timesheet){
	"hourly-overtime": func(t *payroll.Timesheet) {
		t.Employee = "Hourly demo"
		t.ShiftCode = "A"
		setDay(t, 1, "15:00", "23:30", "", "")
	},
	"monthly-salary": func(t *payroll.Timesheet) {
		t.Employee = "Salary demo"
		t.Parameters.Mode = payroll.ModeMonthlySalary
		t.Parameters.MonthlySalary = decimal.NewFromInt(32000)
		t.Parameters.OvertimeBaseRate = decimal.NewFromInt(133)
	},
	"split-shift": func(t *payroll.Timesheet) {
		t.Employee = "Split demo"
		t.ShiftCode = "C"
		setDay(t, 1, "1105", "1430", "1700", "2140")
		setDay(t, 2, "11:00", "14:30", "17:00", "21:00")
	},
	"midnight-close": func(t *payroll.Timesheet) {
		t.Employee = "Close demo"
		t.ShiftCode = "B"
		t.Overtime = generic.RawOvertime()
		setDay(t, 1, "17:30", "00:20", "", "")
	},
}

func setDay(t *payroll.Timesheet, day int, in1, out1, in2, out2 string) {
	for i := range t.Rows {
		if t.Rows[i].Day == day {
			t.Rows[i].In1, t.Rows[i].Out1 = in1, out1
			t.Rows[i].In2, t.Rows[i].Out2 = in2, out2
			return
		}
	}
}

// ScenarioTimesheet builds the named demo timesheet.
func ScenarioTimesheet(id, name string) (payroll.Timesheet, bool) {
	build, ok := scenarioBuilders[name]
	if !ok {
		return payroll.Timesheet{}, false
	}
	t := payroll.NewTimesheet(id, "", generic.Period{}, shift.DepartmentFloor)
	build(&t)
	return t, true
}

// ScenarioLoadResponse is returned when a scenario is loaded.
type ScenarioLoadResponse struct {
	Scenario    ScenarioDTO         `json:"scenario"`
	Timesheet   TimesheetDTO        `json:"timesheet"`
	Calculation CalculationResponse `json:"calculation"`
}

// ListScenarios returns available scenarios.
// GET /api/scenarios
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// LoadScenario stores a demo timesheet and returns it calculated.
// POST /api/scenarios/{name}
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var dto ScenarioDTO
	for _, s := range scenarios {
		if s.ID == name {
			dto = s
		}
	}

	t, ok := ScenarioTimesheet(h.newID(), name)
	if !ok || dto.ID == "" {
		writeError(w, http.StatusNotFound, "Unknown scenario", nil)
		return
	}
	t.CreatedAt = h.now()
	t.UpdatedAt = t.CreatedAt

	run, err := payroll.Calculate(t, h.Catalog)
	if err != nil {
		h.handleError(w, "Failed to load scenario", err)
		return
	}
	t = t.WithNormalizedRows(run)

	if err := h.Store.SaveTimesheet(r.Context(), t); err != nil {
		h.handleError(w, "Failed to save scenario", err)
		return
	}

	h.Logger.WithFields(logrus.Fields{
		"scenario":     name,
		"timesheet_id": t.ID,
		"final_pay":    run.Result.FinalPay.String(),
	}).Info("scenario loaded")

	writeJSON(w, http.StatusCreated, ScenarioLoadResponse{
		Scenario:    dto,
		Timesheet:   toTimesheetDTO(t),
		Calculation: toCalculationResponse(t.ID, run),
	})
}
