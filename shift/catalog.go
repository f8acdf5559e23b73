/*
Package shift holds the restaurant's shift table.

PURPOSE:
  Maps (department, shift code) to the ordered scheduled segments of that
  shift. A single shift has one segment; a split (double) shift has two.
  The table is configuration data: built once at process start (from the
  built-in defaults or a JSON file, see factory/catalog.go) and never
  mutated afterwards, so it is safe to share across requests.

LOOKUP RULES:
  - shift codes are matched case-insensitively ("a" == "A")
  - department names are matched case-insensitively
  - unknown combinations return an empty slice; callers fall back to
    elapsed-time-only evaluation

SEE ALSO:
  - attendance/evaluator.go: Consumes Lookup
  - factory/catalog.go: JSON catalog loading
*/
package shift

import (
	"fmt"
	"sort"
	"strings"

	"github.com/warp/shift-payroll/generic"
)

// =============================================================================
// KEYS
// =============================================================================

// Department is the part of the restaurant a shift belongs to.
type Department string

const (
	DepartmentKitchen Department = "kitchen"
	DepartmentFloor   Department = "floor"
)

// Valid reports whether d is a known department.
func (d Department) Valid() bool {
	return d == DepartmentKitchen || d == DepartmentFloor
}

// NormalizeDepartment trims and lower-cases user input.
func NormalizeDepartment(s string) Department {
	return Department(strings.ToLower(strings.TrimSpace(s)))
}

// NormalizeCode trims and upper-cases user input.
func NormalizeCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Key identifies one shift in the catalog.
type Key struct {
	Department Department
	Code       string
}

func (k Key) String() string { return string(k.Department) + "/" + k.Code }

// =============================================================================
// DEFINITION
// =============================================================================

// MaxSegments is the most segments a shift may have (a split shift).
const MaxSegments = 2

// Definition is one shift: its key plus 1-2 ordered segments.
type Definition struct {
	Key      Key
	Name     string
	Segments []generic.Segment
}

// ScheduledMinutes returns the total scheduled length of the shift.
func (d Definition) ScheduledMinutes() int {
	total := 0
	for _, s := range d.Segments {
		total += s.Minutes()
	}
	return total
}

func (d Definition) validate() error {
	if !d.Key.Department.Valid() {
		return fmt.Errorf("%w: unknown department %q", generic.ErrInvalidCatalog, d.Key.Department)
	}
	if len(d.Key.Code) != 1 || d.Key.Code[0] < 'A' || d.Key.Code[0] > 'Z' {
		return fmt.Errorf("%w: shift code %q must be one uppercase letter", generic.ErrInvalidCatalog, d.Key.Code)
	}
	if len(d.Segments) == 0 || len(d.Segments) > MaxSegments {
		return fmt.Errorf("%w: shift %s has %d segments", generic.ErrInvalidCatalog, d.Key, len(d.Segments))
	}
	for _, s := range d.Segments {
		if s.In == s.Out {
			return fmt.Errorf("%w: shift %s has an empty segment %s", generic.ErrInvalidCatalog, d.Key, s)
		}
	}
	return nil
}

// =============================================================================
// CATALOG
// =============================================================================

// Catalog is an immutable shift table.
type Catalog struct {
	shifts map[Key]Definition
}

// NewCatalog validates and indexes definitions. Keys are normalized, and
// a key defined twice is rejected.
func NewCatalog(defs []Definition) (*Catalog, error) {
	c := &Catalog{shifts: make(map[Key]Definition, len(defs))}
	for _, d := range defs {
		d.Key = Key{Department: NormalizeDepartment(string(d.Key.Department)), Code: NormalizeCode(d.Key.Code)}
		if err := d.validate(); err != nil {
			return nil, err
		}
		if _, exists := c.shifts[d.Key]; exists {
			return nil, fmt.Errorf("%w: shift %s defined twice", generic.ErrInvalidCatalog, d.Key)
		}
		d.Segments = append([]generic.Segment(nil), d.Segments...)
		c.shifts[d.Key] = d
	}
	return c, nil
}

// Lookup returns the ordered segments for a department and shift code, or
// an empty slice when no rule matches.
func (c *Catalog) Lookup(department Department, code string) []generic.Segment {
	def, ok := c.Get(department, code)
	if !ok {
		return []generic.Segment{}
	}
	return def.Segments
}

// Get returns a copy of the matching definition.
func (c *Catalog) Get(department Department, code string) (Definition, bool) {
	if c == nil {
		return Definition{}, false
	}
	key := Key{Department: NormalizeDepartment(string(department)), Code: NormalizeCode(code)}
	def, ok := c.shifts[key]
	if !ok {
		return Definition{}, false
	}
	def.Segments = append([]generic.Segment(nil), def.Segments...)
	return def, true
}

// Definitions lists every shift ordered by department then code.
func (c *Catalog) Definitions() []Definition {
	defs := make([]Definition, 0, len(c.shifts))
	for _, d := range c.shifts {
		d.Segments = append([]generic.Segment(nil), d.Segments...)
		defs = append(defs, d)
	}
	sort.Slice(defs, func(i, j int) bool {
		if defs[i].Key.Department != defs[j].Key.Department {
			return defs[i].Key.Department < defs[j].Key.Department
		}
		return defs[i].Key.Code < defs[j].Key.Code
	})
	return defs
}

// Len returns the number of shifts.
func (c *Catalog) Len() int { return len(c.shifts) }
