/*
interval.go - Midnight-safe interval arithmetic

PURPOSE:
  All times are placed on an imaginary common day. When an interval ends
  numerically before it starts, the end is moved to the next day. This
  is the only place the engine does cross-day math; lateness, overtime
  and worked time all go through it.

CROSSING RULES:
  Elapsed:   end < start          => end + 24h
  Lateness:  same calendar day     => no correction
  Overtime:  scheduled-out         => +24h if the segment itself crosses
             actual-out            => +24h if it is a morning hour earlier
                                      than the segment start, and the
                                      segment ends in the evening or crosses
  The two overtime corrections are independent of each other.

EXAMPLE:
  ElapsedMinutes(23:00, 00:30)                 = 90
  OvertimeMinutes({17:30, 00:00}, 00:20)       = 20
  OvertimeMinutes({15:00, 23:00}, 00:30)       = 90
  LateMinutes(09:00, 08:50)                    = 0
*/
package generic

// =============================================================================
// SEGMENT - One scheduled work interval
// =============================================================================

// Segment is one contiguous scheduled interval. Out before In means the
// segment runs past midnight.
type Segment struct {
	In  ClockTime
	Out ClockTime
}

// Crosses reports whether the segment ends on the next calendar day.
func (s Segment) Crosses() bool { return s.Out.Before(s.In) }

// Minutes returns the scheduled length of the segment.
func (s Segment) Minutes() int { return ElapsedMinutes(s.In, s.Out) }

func (s Segment) String() string { return s.In.String() + "-" + s.Out.String() }

// =============================================================================
// ARITHMETIC
// =============================================================================

// ElapsedMinutes returns the minutes from start to end, treating an end
// numerically before start as belonging to the next day. Never negative.
func ElapsedMinutes(start, end ClockTime) int {
	e := end.Minutes()
	if e < start.Minutes() {
		e += MinutesPerDay
	}
	return e - start.Minutes()
}

// SignedOffset returns actual minus scheduled in minutes after moving each
// operand to the next day when its flag is set.
func SignedOffset(scheduled, actual ClockTime, scheduledCrosses, actualCrosses bool) int {
	s := scheduled.Minutes()
	if scheduledCrosses {
		s += MinutesPerDay
	}
	a := actual.Minutes()
	if actualCrosses {
		a += MinutesPerDay
	}
	return a - s
}

// LateMinutes compares an actual clock-in with the scheduled one on the
// same day. Early or on-time arrival is zero.
func LateMinutes(scheduledIn, actualIn ClockTime) int {
	return clampZero(SignedOffset(scheduledIn, actualIn, false, false))
}

// OvertimeMinutes compares an actual clock-out with the segment's
// scheduled clock-out. Early or on-time departure is zero.
func OvertimeMinutes(seg Segment, actualOut ClockTime) int {
	return clampZero(SignedOffset(seg.Out, actualOut, seg.Crosses(), checkoutCrossesMidnight(seg, actualOut)))
}

// checkoutCrossesMidnight decides whether a morning checkout belongs to
// the day after the segment started. A checkout after the segment start
// is an early departure on the same day.
func checkoutCrossesMidnight(seg Segment, actualOut ClockTime) bool {
	if !actualOut.IsMorning() || !actualOut.Before(seg.In) {
		return false
	}
	return !seg.Out.IsMorning() || seg.Crosses()
}

func clampZero(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
