/*
errors.go - Centralized error types for the payroll engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  The calculation itself never fails on bad cells (they degrade to "no
  value"); these errors are raised only at the boundary where a whole
  request is malformed: impossible days, duplicate rows, negative rates.

ERROR CATEGORIES:
  1. Validation errors - request shape or parameter violations
  2. Store errors - session timesheet lookups

USAGE:
  if errors.Is(err, generic.ErrTimesheetNotFound) {
      // 404
  }

SEE ALSO:
  - payroll/parameters.go: Parameter validation
  - attendance/row.go: Row validation
  - api/handlers.go: HTTP status mapping
*/
package generic

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidDay is returned when a row's day is outside 1-31 or past
	// the end of the pay period.
	ErrInvalidDay = errors.New("invalid day")

	// ErrDuplicateDay is returned when two rows claim the same day.
	ErrDuplicateDay = errors.New("duplicate day")

	// ErrTooManyRows is returned when more rows than days are submitted.
	ErrTooManyRows = errors.New("too many rows")

	// ErrInvalidParameters is returned for negative rates or an unknown pay mode.
	ErrInvalidParameters = errors.New("invalid pay parameters")

	// ErrInvalidCatalog is returned when a shift table cannot be built.
	ErrInvalidCatalog = errors.New("invalid shift catalog")

	// ErrTimesheetNotFound is returned when a session timesheet doesn't exist.
	ErrTimesheetNotFound = errors.New("timesheet not found")

	// ErrInvalidPeriod is returned for a malformed pay period.
	ErrInvalidPeriod = errors.New("invalid pay period")

	// ErrInvalidWorkbook is returned when an uploaded spreadsheet can't be read.
	ErrInvalidWorkbook = errors.New("invalid workbook")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// FieldError names the offending field of a rejected request.
type FieldError struct {
	Field  string
	Reason string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// NewFieldError wraps a sentinel with the field that caused it.
func NewFieldError(sentinel error, field, reason string) error {
	return &FieldError{Field: field, Reason: reason, Err: sentinel}
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidDay) ||
		errors.Is(err, ErrDuplicateDay) ||
		errors.Is(err, ErrTooManyRows) ||
		errors.Is(err, ErrInvalidParameters) ||
		errors.Is(err, ErrInvalidCatalog) ||
		errors.Is(err, ErrInvalidPeriod) ||
		errors.Is(err, ErrInvalidWorkbook)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrTimesheetNotFound)
}
