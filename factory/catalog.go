/*
Package factory provides JSON to Go conversion for shift tables and pay
parameters.

PURPOSE:
  Lets operators replace the built-in shift table with a JSON file at
  process start (CATALOG_PATH) and lets clients send pay parameters as
  plain JSON. The factory validates, fills defaults and produces the
  immutable engine types.

CATALOG JSON SCHEMA:
  {
    "shifts": [
      {
        "department": "floor",
        "code": "A",
        "name": "Dinner",
        "segments": [{"in": "15:00", "out": "23:00"}]
      },
      {
        "department": "kitchen",
        "code": "C",
        "segments": [
          {"in": "10:00", "out": "14:00"},
          {"in": "16:30", "out": "21:30"}
        ]
      }
    ]
  }

  Segment times go through the same parser as attendance cells, so
  "1500" and "15:00" are equivalent. A segment whose out is earlier than
  its in crosses midnight.

SEE ALSO:
  - shift/catalog.go: Catalog type
  - parameters.go: Pay parameter JSON
*/
package factory

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/warp/shift-payroll/generic"
	"github.com/warp/shift-payroll/shift"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// CatalogJSON is the JSON representation of a shift table.
type CatalogJSON struct {
	Shifts []ShiftJSON `json:"shifts"`
}

// ShiftJSON represents one shift definition.
type ShiftJSON struct {
	Department string        `json:"department"`
	Code       string        `json:"code"`
	Name       string        `json:"name,omitempty"`
	Segments   []SegmentJSON `json:"segments"`
	Scheduled  int           `json:"scheduled_minutes,omitempty"` // informational on output
}

// SegmentJSON represents one scheduled segment.
type SegmentJSON struct {
	In      string `json:"in"`
	Out     string `json:"out"`
	Crosses bool   `json:"crosses_midnight,omitempty"` // informational on output
}

// =============================================================================
// CATALOG FACTORY
// =============================================================================

// ParseCatalog parses a JSON document into a Catalog.
func ParseCatalog(r io.Reader) (*shift.Catalog, error) {
	var cj CatalogJSON
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cj); err != nil {
		return nil, fmt.Errorf("%w: failed to parse catalog JSON: %v", generic.ErrInvalidCatalog, err)
	}
	return CatalogFromJSON(cj)
}

// LoadCatalogFile reads a catalog from disk.
func LoadCatalogFile(path string) (*shift.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()
	return ParseCatalog(f)
}

// CatalogFromJSON converts CatalogJSON into a validated Catalog.
func CatalogFromJSON(cj CatalogJSON) (*shift.Catalog, error) {
	if len(cj.Shifts) == 0 {
		return nil, fmt.Errorf("%w: no shifts defined", generic.ErrInvalidCatalog)
	}

	defs := make([]shift.Definition, 0, len(cj.Shifts))
	for i, sj := range cj.Shifts {
		def := shift.Definition{
			Key: shift.Key{
				Department: shift.NormalizeDepartment(sj.Department),
				Code:       shift.NormalizeCode(sj.Code),
			},
			Name: sj.Name,
		}
		for j, segj := range sj.Segments {
			seg, err := parseSegment(segj)
			if err != nil {
				return nil, fmt.Errorf("shifts[%d].segments[%d]: %w", i, j, err)
			}
			def.Segments = append(def.Segments, seg)
		}
		defs = append(defs, def)
	}
	return shift.NewCatalog(defs)
}

// CatalogToJSON converts a Catalog back to its JSON form.
func CatalogToJSON(c *shift.Catalog) CatalogJSON {
	defs := c.Definitions()
	cj := CatalogJSON{Shifts: make([]ShiftJSON, 0, len(defs))}
	for _, d := range defs {
		sj := ShiftJSON{
			Department: string(d.Key.Department),
			Code:       d.Key.Code,
			Name:       d.Name,
			Scheduled:  d.ScheduledMinutes(),
		}
		for _, s := range d.Segments {
			sj.Segments = append(sj.Segments, SegmentJSON{In: s.In.String(), Out: s.Out.String(), Crosses: s.Crosses()})
		}
		cj.Shifts = append(cj.Shifts, sj)
	}
	return cj
}

// =============================================================================
// PARSING HELPERS
// =============================================================================

func parseSegment(sj SegmentJSON) (generic.Segment, error) {
	in, ok := generic.ParseClock(sj.In)
	if !ok {
		return generic.Segment{}, fmt.Errorf("%w: invalid segment start %q", generic.ErrInvalidCatalog, sj.In)
	}
	out, ok := generic.ParseClock(sj.Out)
	if !ok {
		return generic.Segment{}, fmt.Errorf("%w: invalid segment end %q", generic.ErrInvalidCatalog, sj.Out)
	}
	return generic.Segment{In: in, Out: out}, nil
}
