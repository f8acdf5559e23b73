/*
handlers.go - HTTP API handlers for the shift payroll engine

PURPOSE:
  Exposes the payroll engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to the engine packages.

ENDPOINTS:
  Catalog:
    GET    /api/shifts                          Shift table

  Stateless:
    POST   /api/payroll/calculate               Rows + parameters in, results out

  Timesheets (session state):
    GET    /api/timesheets                      List timesheets
    POST   /api/timesheets                      Create timesheet
    GET    /api/timesheets/{id}                 Get timesheet
    DELETE /api/timesheets/{id}                 Delete timesheet
    PUT    /api/timesheets/{id}/rows            Replace the grid
    PUT    /api/timesheets/{id}/parameters      Change shift defaults / pay parameters
    POST   /api/timesheets/{id}/calculate       Calculate and store normalized cells
    POST   /api/timesheets/{id}/import          Replace the grid from an XLSX upload
    GET    /api/timesheets/{id}/export.xlsx     Download workbook
    GET    /api/timesheets/{id}/payslip.pdf     Download payslip

  Scenarios:
    GET    /api/scenarios                       List demo timesheets
    POST   /api/scenarios/{name}                Create a demo timesheet

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store: Session timesheet storage
  - Catalog: Immutable shift table, shared by every request
  - Logger: Structured request and calculation logging

REQUEST FLOW:
  1. Parse HTTP request
  2. Build or load a payroll.Timesheet
  3. Call payroll.Calculate
  4. Serialize response
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input (generic.IsClientError)
  - 404: Timesheet not found (generic.IsNotFound)
  - 500: Internal errors

  Bad time cells and unknown shifts are never errors; they come back as
  notes on the calculation.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/warp/shift-payroll/export"
	"github.com/warp/shift-payroll/factory"
	"github.com/warp/shift-payroll/generic"
	"github.com/warp/shift-payroll/payroll"
	"github.com/warp/shift-payroll/shift"
)

const (
	maxBodyBytes   = 1 << 20
	maxUploadBytes = 10 << 20

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   payroll.TimesheetStore
	Catalog *shift.Catalog
	Logger  *logrus.Logger

	// OvertimeStep is the rounding step given to new timesheets.
	OvertimeStep int

	newID func() string
	now   func() time.Time
}

// NewHandler creates a new handler with the given store and catalog.
func NewHandler(store payroll.TimesheetStore, catalog *shift.Catalog, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Handler{
		Store:        store,
		Catalog:      catalog,
		Logger:       logger,
		OvertimeStep: generic.DefaultOvertimeStep,
		newID:        uuid.NewString,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// =============================================================================
// CATALOG & STATELESS CALCULATION
// =============================================================================

// ListShifts returns the shift table.
// GET /api/shifts
func (h *Handler) ListShifts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, factory.CatalogToJSON(h.Catalog))
}

// Calculate runs one month without storing anything.
// POST /api/payroll/calculate
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	t, err := h.buildTimesheet("", CreateTimesheetRequest{
		Period:              req.Period,
		Department:          req.Department,
		ShiftCode:           req.ShiftCode,
		OvertimeStepMinutes: req.OvertimeStepMinutes,
		Parameters:          req.Parameters,
		Rows:                req.Rows,
	})
	if err != nil {
		h.handleError(w, "Invalid calculation request", err)
		return
	}

	run, err := payroll.Calculate(t, h.Catalog)
	if err != nil {
		h.handleError(w, "Calculation failed", err)
		return
	}

	h.Logger.WithFields(logrus.Fields{
		"rows":        len(t.Rows),
		"days_worked": run.Result.DaysWorked,
		"final_pay":   run.Result.FinalPay.String(),
	}).Debug("stateless calculation")

	writeJSON(w, http.StatusOK, toCalculationResponse("", run))
}

// =============================================================================
// TIMESHEET HANDLERS
// =============================================================================

// ListTimesheets returns all session timesheets.
// GET /api/timesheets
func (h *Handler) ListTimesheets(w http.ResponseWriter, r *http.Request) {
	sheets, err := h.Store.ListTimesheets(r.Context())
	if err != nil {
		h.handleError(w, "Failed to list timesheets", err)
		return
	}

	dtos := make([]TimesheetDTO, len(sheets))
	for i, t := range sheets {
		dtos[i] = toTimesheetDTO(t)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateTimesheet creates a timesheet with one blank row per day.
// POST /api/timesheets
func (h *Handler) CreateTimesheet(w http.ResponseWriter, r *http.Request) {
	var req CreateTimesheetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	t, err := h.buildTimesheet(h.newID(), req)
	if err != nil {
		h.handleError(w, "Invalid timesheet", err)
		return
	}

	if err := h.Store.SaveTimesheet(r.Context(), t); err != nil {
		h.handleError(w, "Failed to create timesheet", err)
		return
	}

	h.Logger.WithFields(logrus.Fields{
		"timesheet_id": t.ID,
		"department":   t.Department,
		"period":       t.Period.String(),
	}).Info("timesheet created")

	writeJSON(w, http.StatusCreated, toTimesheetDTO(t))
}

// GetTimesheet returns one timesheet.
// GET /api/timesheets/{id}
func (h *Handler) GetTimesheet(w http.ResponseWriter, r *http.Request) {
	t, err := h.Store.GetTimesheet(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, "Failed to get timesheet", err)
		return
	}
	writeJSON(w, http.StatusOK, toTimesheetDTO(*t))
}

// DeleteTimesheet removes a timesheet.
// DELETE /api/timesheets/{id}
func (h *Handler) DeleteTimesheet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.DeleteTimesheet(r.Context(), id); err != nil {
		h.handleError(w, "Failed to delete timesheet", err)
		return
	}
	h.Logger.WithField("timesheet_id", id).Info("timesheet deleted")
	w.WriteHeader(http.StatusNoContent)
}

// UpdateRows replaces the grid of a timesheet.
// PUT /api/timesheets/{id}/rows
func (h *Handler) UpdateRows(w http.ResponseWriter, r *http.Request) {
	var req UpdateRowsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	t, err := h.Store.GetTimesheet(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, "Failed to get timesheet", err)
		return
	}

	t.Rows = toRows(req.Rows)
	h.saveAndRespond(w, r, *t)
}

// UpdateParameters changes the shift defaults, overtime step and pay
// parameters of a timesheet.
// PUT /api/timesheets/{id}/parameters
func (h *Handler) UpdateParameters(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	t, err := h.Store.GetTimesheet(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, "Failed to get timesheet", err)
		return
	}

	if req.Department != "" {
		dept, err := parseDepartment(req.Department)
		if err != nil {
			h.handleError(w, "Invalid department", err)
			return
		}
		t.Department = dept
	}
	if req.ShiftCode != "" {
		t.ShiftCode = shift.NormalizeCode(req.ShiftCode)
	}
	if req.OvertimeStepMinutes != nil {
		t.Overtime = generic.SteppedOvertime(*req.OvertimeStepMinutes)
	}
	if req.Parameters != nil {
		params, err := factory.MergeParameters(t.Parameters, *req.Parameters)
		if err != nil {
			h.handleError(w, "Invalid pay parameters", err)
			return
		}
		t.Parameters = params
	}

	h.saveAndRespond(w, r, *t)
}

// CalculateTimesheet calculates a stored timesheet and writes the
// normalized cells back so the grid shows corrected input.
// POST /api/timesheets/{id}/calculate
func (h *Handler) CalculateTimesheet(w http.ResponseWriter, r *http.Request) {
	t, err := h.Store.GetTimesheet(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, "Failed to get timesheet", err)
		return
	}

	run, err := payroll.Calculate(*t, h.Catalog)
	if err != nil {
		h.handleError(w, "Calculation failed", err)
		return
	}

	updated := t.WithNormalizedRows(run)
	updated.UpdatedAt = h.now()
	if err := h.Store.SaveTimesheet(r.Context(), updated); err != nil {
		h.handleError(w, "Failed to save timesheet", err)
		return
	}

	h.Logger.WithFields(logrus.Fields{
		"timesheet_id":     t.ID,
		"days_worked":      run.Result.DaysWorked,
		"late_minutes":     run.Result.TotalLateMinutes,
		"overtime_minutes": run.Result.TotalOvertimeMinutes,
		"final_pay":        run.Result.FinalPay.String(),
		"notes":            len(run.Notes),
	}).Info("timesheet calculated")

	writeJSON(w, http.StatusOK, toCalculationResponse(t.ID, run))
}

// ImportTimesheet replaces the grid from an XLSX workbook, sent either as
// multipart field "file" or as the raw request body.
// POST /api/timesheets/{id}/import
func (h *Handler) ImportTimesheet(w http.ResponseWriter, r *http.Request) {
	t, err := h.Store.GetTimesheet(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, "Failed to get timesheet", err)
		return
	}

	body, err := uploadBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid upload", err)
		return
	}
	defer body.Close()

	rows, err := export.ReadRowsXLSX(body)
	if err != nil {
		h.handleError(w, "Failed to import workbook", err)
		return
	}

	t.Rows = rows
	h.Logger.WithFields(logrus.Fields{
		"timesheet_id": t.ID,
		"rows":         len(rows),
	}).Info("workbook imported")
	h.saveAndRespond(w, r, *t)
}

// ExportTimesheet downloads the calculated grid as a workbook.
// GET /api/timesheets/{id}/export.xlsx
func (h *Handler) ExportTimesheet(w http.ResponseWriter, r *http.Request) {
	h.download(w, r, xlsxContentType, "xlsx", export.WriteXLSX)
}

// PayslipPDF downloads a one-page payslip.
// GET /api/timesheets/{id}/payslip.pdf
func (h *Handler) PayslipPDF(w http.ResponseWriter, r *http.Request) {
	h.download(w, r, "application/pdf", "pdf", export.WritePayslipPDF)
}

type renderFunc func(io.Writer, payroll.Timesheet, payroll.Run) error

// download renders into a buffer first so failures still get a JSON error.
func (h *Handler) download(w http.ResponseWriter, r *http.Request, contentType, ext string, render renderFunc) {
	t, err := h.Store.GetTimesheet(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, "Failed to get timesheet", err)
		return
	}

	run, err := payroll.Calculate(*t, h.Catalog)
	if err != nil {
		h.handleError(w, "Calculation failed", err)
		return
	}

	var buf bytes.Buffer
	if err := render(&buf, *t, run); err != nil {
		h.handleError(w, "Failed to render "+ext, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", downloadName(*t, ext)))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// =============================================================================
// HELPERS
// =============================================================================

// buildTimesheet turns a create request into a validated timesheet.
func (h *Handler) buildTimesheet(id string, req CreateTimesheetRequest) (payroll.Timesheet, error) {
	period, err := generic.ParsePeriod(req.Period)
	if err != nil {
		return payroll.Timesheet{}, err
	}
	dept, err := parseDepartment(req.Department)
	if err != nil {
		return payroll.Timesheet{}, err
	}

	t := payroll.NewTimesheet(id, strings.TrimSpace(req.Employee), period, dept)
	t.Overtime = generic.SteppedOvertime(h.OvertimeStep)
	if req.ShiftCode != "" {
		t.ShiftCode = shift.NormalizeCode(req.ShiftCode)
	}
	if req.OvertimeStepMinutes != nil {
		t.Overtime = generic.SteppedOvertime(*req.OvertimeStepMinutes)
	}
	if req.Parameters != nil {
		params, err := factory.ParametersFromJSON(*req.Parameters)
		if err != nil {
			return payroll.Timesheet{}, err
		}
		t.Parameters = params
	}
	if req.Rows != nil {
		t.Rows = toRows(req.Rows)
	}
	if h.now != nil {
		t.CreatedAt = h.now()
		t.UpdatedAt = t.CreatedAt
	}

	return t, t.Validate()
}

func (h *Handler) saveAndRespond(w http.ResponseWriter, r *http.Request, t payroll.Timesheet) {
	if err := t.Validate(); err != nil {
		h.handleError(w, "Invalid timesheet", err)
		return
	}
	t.UpdatedAt = h.now()
	if err := h.Store.SaveTimesheet(r.Context(), t); err != nil {
		h.handleError(w, "Failed to save timesheet", err)
		return
	}
	writeJSON(w, http.StatusOK, toTimesheetDTO(t))
}

// parseDepartment defaults an empty department to the floor.
func parseDepartment(s string) (shift.Department, error) {
	if strings.TrimSpace(s) == "" {
		return shift.DepartmentFloor, nil
	}
	dept := shift.NormalizeDepartment(s)
	if !dept.Valid() {
		return "", generic.NewFieldError(generic.ErrInvalidParameters, "department", fmt.Sprintf("unknown department %q", s))
	}
	return dept, nil
}

func uploadBody(w http.ResponseWriter, r *http.Request) (io.ReadCloser, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, err
		}
		return file, nil
	}
	return r.Body, nil
}

func downloadName(t payroll.Timesheet, ext string) string {
	name := t.Employee
	if name == "" {
		name = t.ID
	}
	name = strings.Map(func(r rune) rune {
		if r == ' ' || r == '/' || r == '\\' || r == '"' {
			return '_'
		}
		return r
	}, name)
	if !t.Period.IsZero() {
		name += "-" + t.Period.String()
	}
	return name + "." + ext
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

// handleError maps engine errors to HTTP status codes.
func (h *Handler) handleError(w http.ResponseWriter, message string, err error) {
	switch {
	case generic.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case generic.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		h.Logger.WithError(err).Error(message)
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
