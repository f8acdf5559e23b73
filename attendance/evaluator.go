/*
evaluator.go - Day Evaluator

PURPOSE:
  Combines one day's actual clock times with the scheduled segments of
  the matching shift and produces worked, late and overtime minutes.

ALGORITHM:
  1. Parse up to two (in, out) pairs. Bad text counts as empty.
  2. No valid clock-in in either pair => blank day, all zeros.
  3. Resolve the shift: the row's department/code override, else the
     evaluator defaults. Pair i is matched with segment i; a pair missing
     either time is skipped.
  4. No matching shift => worked time is the raw elapsed time of every
     complete pair; lateness and overtime stay zero.
  5. Overtime is floored by the OvertimePolicy (e.g. 30-minute steps).

  Problems are reported as Notes on the result, never as errors, so one
  bad cell never stops the rest of the month from being calculated.

SEE ALSO:
  - generic/interval.go: Elapsed / late / overtime arithmetic
  - shift/catalog.go: Shift lookup
  - payroll/aggregate.go: Monthly totals
*/
package attendance

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/warp/shift-payroll/generic"
	"github.com/warp/shift-payroll/shift"
)

// =============================================================================
// DAY RESULT
// =============================================================================

// DayResult is the derived outcome of one Row. It is recomputed from
// scratch on every calculation.
type DayResult struct {
	Day       int
	HasRecord bool

	WorkedMinutes      int
	LateMinutes        int
	RawOvertimeMinutes int
	OvertimeMinutes    int // after the overtime policy
	CompHours          decimal.Decimal

	Shift        shift.Key
	ShiftMatched bool

	// Normalized echoes the row with canonical time text.
	Normalized Row
	Notes      []string
}

// WorkedHours returns worked time in hours.
func (d DayResult) WorkedHours() decimal.Decimal { return generic.Hours(d.WorkedMinutes) }

// OvertimeHours returns payable overtime in hours.
func (d DayResult) OvertimeHours() decimal.Decimal { return generic.Hours(d.OvertimeMinutes) }

// RegularHours returns worked hours minus overtime hours, never negative.
func (d DayResult) RegularHours() decimal.Decimal {
	return generic.MaxZero(d.WorkedHours().Sub(d.OvertimeHours()))
}

// =============================================================================
// EVALUATOR
// =============================================================================

// Evaluator evaluates rows against a shift catalog. Department and
// ShiftCode are the defaults for rows that don't override them.
type Evaluator struct {
	Catalog    *shift.Catalog
	Department shift.Department
	ShiftCode  string
	Overtime   generic.OvertimePolicy
}

// NewEvaluator returns an evaluator with the given defaults.
func NewEvaluator(catalog *shift.Catalog, department shift.Department, code string, overtime generic.OvertimePolicy) *Evaluator {
	return &Evaluator{
		Catalog:    catalog,
		Department: department,
		ShiftCode:  code,
		Overtime:   overtime,
	}
}

type clockPair struct {
	in, out       generic.ClockTime
	hasIn, hasOut bool
}

func (p clockPair) complete() bool { return p.hasIn && p.hasOut }

// Evaluate computes one day.
func (e *Evaluator) Evaluate(row Row) DayResult {
	res := DayResult{
		Day:        row.Day,
		CompHours:  generic.MaxZero(row.CompHours),
		Normalized: row.Normalized(),
	}

	if row.IsBlank() {
		return res
	}
	pairs := parsePairs(row, &res.Notes)
	if !pairs[0].hasIn && !pairs[1].hasIn {
		return res
	}
	res.HasRecord = true
	res.Shift = e.resolve(row)

	segments := e.Catalog.Lookup(res.Shift.Department, res.Shift.Code)
	if len(segments) == 0 {
		res.Notes = append(res.Notes, fmt.Sprintf("day %d: no shift %s, counting elapsed time only", row.Day, res.Shift))
		for _, p := range pairs {
			if p.complete() {
				res.WorkedMinutes += generic.ElapsedMinutes(p.in, p.out)
			}
		}
		return res
	}
	res.ShiftMatched = true

	for i, seg := range segments {
		if i >= len(pairs) {
			break
		}
		p := pairs[i]
		if !p.complete() {
			if p.hasIn {
				res.Notes = append(res.Notes, fmt.Sprintf("day %d: segment %d has no clock-out", row.Day, i+1))
			}
			continue
		}
		res.WorkedMinutes += generic.ElapsedMinutes(p.in, p.out)
		res.LateMinutes += generic.LateMinutes(seg.In, p.in)
		res.RawOvertimeMinutes += generic.OvertimeMinutes(seg, p.out)
	}
	if len(segments) < MaxPairs && pairs[1].complete() {
		res.Notes = append(res.Notes, fmt.Sprintf("day %d: shift %s has one segment, second pair ignored", row.Day, res.Shift))
	}
	res.OvertimeMinutes = e.Overtime.Apply(res.RawOvertimeMinutes)
	return res
}

// EvaluateAll evaluates rows in order.
func (e *Evaluator) EvaluateAll(rows []Row) []DayResult {
	out := make([]DayResult, len(rows))
	for i, r := range rows {
		out[i] = e.Evaluate(r)
	}
	return out
}

func (e *Evaluator) resolve(row Row) shift.Key {
	dept := e.Department
	if row.Department != "" {
		dept = shift.NormalizeDepartment(row.Department)
	}
	code := e.ShiftCode
	if row.ShiftCode != "" {
		code = row.ShiftCode
	}
	return shift.Key{Department: shift.NormalizeDepartment(string(dept)), Code: shift.NormalizeCode(code)}
}

func parsePairs(row Row, notes *[]string) [MaxPairs]clockPair {
	var pairs [MaxPairs]clockPair
	for i, cell := range row.cells() {
		pairs[i].in, pairs[i].hasIn = parseCell(row.Day, fmt.Sprintf("in%d", i+1), cell[0], notes)
		pairs[i].out, pairs[i].hasOut = parseCell(row.Day, fmt.Sprintf("out%d", i+1), cell[1], notes)
	}
	return pairs
}

func parseCell(day int, name, text string, notes *[]string) (generic.ClockTime, bool) {
	c, ok := generic.ParseClock(text)
	if !ok && strings.TrimSpace(text) != "" {
		*notes = append(*notes, fmt.Sprintf("day %d: %s %q is not a valid time", day, name, text))
	}
	return c, ok
}
