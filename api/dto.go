/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine types (attendance.Row, payroll.Result, ...) from the
  external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

MONEY AND HOURS:
  decimal.Decimal values are encoded as JSON strings ("3647.3") so no
  precision is lost. Requests accept either numbers or strings.

TYPES:
  Grid:        RowDTO
  Timesheet:   TimesheetDTO, CreateTimesheetRequest, UpdateRowsRequest, UpdateSettingsRequest
  Calculation: CalculateRequest, CalculationResponse, DayResultDTO, ResultDTO, SummaryDTO
  Catalog:     factory.CatalogJSON
  Scenarios:   ScenarioDTO

VALIDATION:
  Validation is done in handlers and the engine, not in DTOs. DTOs are
  pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/parameters.go: ParametersJSON type
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/shift-payroll/attendance"
	"github.com/warp/shift-payroll/factory"
	"github.com/warp/shift-payroll/payroll"
)

// =============================================================================
// GRID
// =============================================================================

// RowDTO is one day of the attendance grid.
type RowDTO struct {
	Day        int             `json:"day"`
	Department string          `json:"department,omitempty"`
	Shift      string          `json:"shift,omitempty"`
	In1        string          `json:"in1"`
	Out1       string          `json:"out1"`
	In2        string          `json:"in2"`
	Out2       string          `json:"out2"`
	CompHours  decimal.Decimal `json:"comp_hours"`
}

func (r RowDTO) toRow() attendance.Row {
	return attendance.Row{
		Day:        r.Day,
		Department: r.Department,
		ShiftCode:  r.Shift,
		In1:        r.In1,
		Out1:       r.Out1,
		In2:        r.In2,
		Out2:       r.Out2,
		CompHours:  r.CompHours,
	}
}

func toRowDTO(r attendance.Row) RowDTO {
	return RowDTO{
		Day:        r.Day,
		Department: r.Department,
		Shift:      r.ShiftCode,
		In1:        r.In1,
		Out1:       r.Out1,
		In2:        r.In2,
		Out2:       r.Out2,
		CompHours:  r.CompHours,
	}
}

func toRows(dtos []RowDTO) []attendance.Row {
	rows := make([]attendance.Row, len(dtos))
	for i, d := range dtos {
		rows[i] = d.toRow()
	}
	return rows
}

func toRowDTOs(rows []attendance.Row) []RowDTO {
	dtos := make([]RowDTO, len(rows))
	for i, r := range rows {
		dtos[i] = toRowDTO(r)
	}
	return dtos
}

// =============================================================================
// TIMESHEET
// =============================================================================

// TimesheetDTO represents a session timesheet in API responses.
type TimesheetDTO struct {
	ID                  string                 `json:"id"`
	Employee            string                 `json:"employee"`
	Period              string                 `json:"period,omitempty"`
	Department          string                 `json:"department"`
	ShiftCode           string                 `json:"shift_code"`
	OvertimeStepMinutes int                    `json:"overtime_step_minutes"`
	Parameters          factory.ParametersJSON `json:"parameters"`
	Rows                []RowDTO               `json:"rows"`
	CreatedAt           string                 `json:"created_at"`
	UpdatedAt           string                 `json:"updated_at"`
}

func toTimesheetDTO(t payroll.Timesheet) TimesheetDTO {
	return TimesheetDTO{
		ID:                  t.ID,
		Employee:            t.Employee,
		Period:              t.Period.String(),
		Department:          string(t.Department),
		ShiftCode:           t.ShiftCode,
		OvertimeStepMinutes: t.Overtime.StepMinutes,
		Parameters:          factory.ParametersToJSON(t.Parameters),
		Rows:                toRowDTOs(t.Rows),
		CreatedAt:           t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           t.UpdatedAt.Format(time.RFC3339),
	}
}

// CreateTimesheetRequest creates a timesheet. Rows default to one blank
// row per day of the period.
type CreateTimesheetRequest struct {
	Employee            string                  `json:"employee"`
	Period              string                  `json:"period"` // "2006-01", optional
	Department          string                  `json:"department"`
	ShiftCode           string                  `json:"shift_code"`
	OvertimeStepMinutes *int                    `json:"overtime_step_minutes"`
	Parameters          *factory.ParametersJSON `json:"parameters"`
	Rows                []RowDTO                `json:"rows"`
}

// UpdateRowsRequest replaces every row of a timesheet.
type UpdateRowsRequest struct {
	Rows []RowDTO `json:"rows"`
}

// UpdateSettingsRequest changes shift defaults and pay parameters. Only
// the fields present are applied.
type UpdateSettingsRequest struct {
	Department          string                  `json:"department"`
	ShiftCode           string                  `json:"shift_code"`
	OvertimeStepMinutes *int                    `json:"overtime_step_minutes"`
	Parameters          *factory.ParametersJSON `json:"parameters"`
}

// =============================================================================
// CALCULATION
// =============================================================================

// CalculateRequest is a stateless calculation of one month.
type CalculateRequest struct {
	Period              string                  `json:"period"`
	Department          string                  `json:"department"`
	ShiftCode           string                  `json:"shift_code"`
	OvertimeStepMinutes *int                    `json:"overtime_step_minutes"`
	Parameters          *factory.ParametersJSON `json:"parameters"`
	Rows                []RowDTO                `json:"rows"`
}

// DayResultDTO is the per-day breakdown.
type DayResultDTO struct {
	Day                int             `json:"day"`
	HasRecord          bool            `json:"has_record"`
	Shift              string          `json:"shift,omitempty"`
	ShiftMatched       bool            `json:"shift_matched"`
	WorkedMinutes      int             `json:"worked_minutes"`
	LateMinutes        int             `json:"late_minutes"`
	RawOvertimeMinutes int             `json:"raw_overtime_minutes"`
	OvertimeMinutes    int             `json:"overtime_minutes"`
	WorkedHours        decimal.Decimal `json:"worked_hours"`
	OvertimeHours      decimal.Decimal `json:"overtime_hours"`
	RegularHours       decimal.Decimal `json:"regular_hours"`
	CompHours          decimal.Decimal `json:"comp_hours"`
	Normalized         RowDTO          `json:"normalized"`
	Notes              []string        `json:"notes,omitempty"`
}

func toDayResultDTO(d attendance.DayResult) DayResultDTO {
	dto := DayResultDTO{
		Day:                d.Day,
		HasRecord:          d.HasRecord,
		ShiftMatched:       d.ShiftMatched,
		WorkedMinutes:      d.WorkedMinutes,
		LateMinutes:        d.LateMinutes,
		RawOvertimeMinutes: d.RawOvertimeMinutes,
		OvertimeMinutes:    d.OvertimeMinutes,
		WorkedHours:        d.WorkedHours().Round(2),
		OvertimeHours:      d.OvertimeHours().Round(2),
		RegularHours:       d.RegularHours().Round(2),
		CompHours:          d.CompHours,
		Normalized:         toRowDTO(d.Normalized),
		Notes:              d.Notes,
	}
	if d.HasRecord {
		dto.Shift = d.Shift.String()
	}
	return dto
}

// ResultDTO is the full-precision monthly result.
type ResultDTO struct {
	TotalWorkedMinutes   int             `json:"total_worked_minutes"`
	TotalOvertimeMinutes int             `json:"total_overtime_minutes"`
	TotalLateMinutes     int             `json:"total_late_minutes"`
	DaysWorked           int             `json:"days_worked"`
	TotalWorkedHours     decimal.Decimal `json:"total_worked_hours"`
	TotalOvertimeHours   decimal.Decimal `json:"total_overtime_hours"`
	RegularHours         decimal.Decimal `json:"regular_hours"`
	TotalCompHours       decimal.Decimal `json:"total_comp_hours"`
	OvertimeRate         decimal.Decimal `json:"overtime_rate"`
	RegularPay           decimal.Decimal `json:"regular_pay"`
	OvertimePay          decimal.Decimal `json:"overtime_pay"`
	LatePenalty          decimal.Decimal `json:"late_penalty"`
	AttendanceBonus      decimal.Decimal `json:"attendance_bonus"`
	FinalPay             decimal.Decimal `json:"final_pay"`
}

func toResultDTO(r payroll.Result) ResultDTO {
	return ResultDTO{
		TotalWorkedMinutes:   r.TotalWorkedMinutes,
		TotalOvertimeMinutes: r.TotalOvertimeMinutes,
		TotalLateMinutes:     r.TotalLateMinutes,
		DaysWorked:           r.DaysWorked,
		TotalWorkedHours:     r.TotalWorkedHours,
		TotalOvertimeHours:   r.TotalOvertimeHours,
		RegularHours:         r.RegularHours,
		TotalCompHours:       r.TotalCompHours,
		OvertimeRate:         r.OvertimeRate,
		RegularPay:           r.RegularPay,
		OvertimePay:          r.OvertimePay,
		LatePenalty:          r.LatePenalty,
		AttendanceBonus:      r.AttendanceBonus,
		FinalPay:             r.FinalPay,
	}
}

// SummaryDTO is the display form: money floored to whole units.
type SummaryDTO struct {
	TotalWorkedHours   decimal.Decimal `json:"total_worked_hours"`
	TotalOvertimeHours decimal.Decimal `json:"total_overtime_hours"`
	RegularHours       decimal.Decimal `json:"regular_hours"`
	TotalCompHours     decimal.Decimal `json:"total_comp_hours"`
	TotalLateMinutes   int             `json:"total_late_minutes"`
	DaysWorked         int             `json:"days_worked"`
	GrossPay           int64           `json:"gross_pay"`
	RegularPay         int64           `json:"regular_pay"`
	OvertimePay        int64           `json:"overtime_pay"`
	LatePenalty        int64           `json:"late_penalty"`
	AttendanceBonus    int64           `json:"attendance_bonus"`
	FinalPay           int64           `json:"final_pay"`
	FullAttendance     bool            `json:"full_attendance"`
}

func toSummaryDTO(s payroll.Summary) SummaryDTO {
	return SummaryDTO(s)
}

// CalculationResponse is returned by both calculate endpoints.
type CalculationResponse struct {
	TimesheetID string         `json:"timesheet_id,omitempty"`
	Days        []DayResultDTO `json:"days"`
	Rows        []RowDTO       `json:"rows"` // normalized echo of the input
	Result      ResultDTO      `json:"result"`
	Summary     SummaryDTO     `json:"summary"`
	Notes       []string       `json:"notes"`
}

func toCalculationResponse(id string, run payroll.Run) CalculationResponse {
	resp := CalculationResponse{
		TimesheetID: id,
		Days:        make([]DayResultDTO, len(run.Days)),
		Rows:        make([]RowDTO, len(run.Days)),
		Result:      toResultDTO(run.Result),
		Summary:     toSummaryDTO(run.Result.Display()),
		Notes:       run.Notes,
	}
	for i, d := range run.Days {
		resp.Days[i] = toDayResultDTO(d)
		resp.Rows[i] = toRowDTO(d.Normalized)
	}
	if resp.Notes == nil {
		resp.Notes = []string{}
	}
	return resp
}

// =============================================================================
// SCENARIOS
// =============================================================================

// ScenarioDTO describes a demo timesheet.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
