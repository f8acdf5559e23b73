package shift

import "github.com/warp/shift-payroll/generic"

// DefaultCatalog returns the built-in shift table used when no
// CATALOG_PATH is configured.
//
//	floor   A 15:00-23:00
//	floor   B 17:30-00:00               (crosses midnight)
//	floor   C 11:00-14:30 + 17:00-21:00 (split)
//	floor   D 10:30-14:30 + 17:30-00:00 (split, second half crosses)
//	kitchen A 15:00-23:00
//	kitchen B 16:00-00:30               (crosses midnight)
//	kitchen C 10:00-14:00 + 16:30-21:30 (split)
//	kitchen D 09:30-14:00 + 17:00-22:30 (split)
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultDefinitions())
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultDefinitions returns the raw definitions behind DefaultCatalog.
func DefaultDefinitions() []Definition {
	return []Definition{
		{Key: Key{DepartmentFloor, "A"}, Name: "Dinner", Segments: segs(seg(15, 0, 23, 0))},
		{Key: Key{DepartmentFloor, "B"}, Name: "Late dinner", Segments: segs(seg(17, 30, 0, 0))},
		{Key: Key{DepartmentFloor, "C"}, Name: "Split", Segments: segs(seg(11, 0, 14, 30), seg(17, 0, 21, 0))},
		{Key: Key{DepartmentFloor, "D"}, Name: "Split late", Segments: segs(seg(10, 30, 14, 30), seg(17, 30, 0, 0))},
		{Key: Key{DepartmentKitchen, "A"}, Name: "Dinner", Segments: segs(seg(15, 0, 23, 0))},
		{Key: Key{DepartmentKitchen, "B"}, Name: "Close", Segments: segs(seg(16, 0, 0, 30))},
		{Key: Key{DepartmentKitchen, "C"}, Name: "Split", Segments: segs(seg(10, 0, 14, 0), seg(16, 30, 21, 30))},
		{Key: Key{DepartmentKitchen, "D"}, Name: "Prep split", Segments: segs(seg(9, 30, 14, 0), seg(17, 0, 22, 30))},
	}
}

func seg(inH, inM, outH, outM int) generic.Segment {
	return generic.Segment{
		In:  generic.ClockTime{Hour: inH, Minute: inM},
		Out: generic.ClockTime{Hour: outH, Minute: outM},
	}
}

func segs(s ...generic.Segment) []generic.Segment { return s }
