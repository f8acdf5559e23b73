package generic

import (
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// CLOCK TIME - Wall-clock value without a date
// =============================================================================

// MinutesPerDay is the length of the imaginary common day used by the
// interval arithmetic.
const MinutesPerDay = 24 * 60

// ClockTime is an hour:minute value in 24-hour form.
// Build it with ParseClock or NewClockTime so it is always in range.
type ClockTime struct {
	Hour   int
	Minute int
}

// NewClockTime returns the clock time for hour:minute, or false when
// either component is out of range.
func NewClockTime(hour, minute int) (ClockTime, bool) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return ClockTime{}, false
	}
	return ClockTime{Hour: hour, Minute: minute}, true
}

// Minutes returns minutes since midnight.
func (c ClockTime) Minutes() int { return c.Hour*60 + c.Minute }

// Before reports whether c is numerically earlier than other on the same day.
func (c ClockTime) Before(other ClockTime) bool { return c.Minutes() < other.Minutes() }

// IsMorning reports whether c falls before noon.
func (c ClockTime) IsMorning() bool { return c.Hour < 12 }

// String returns the canonical "HH:MM" form.
func (c ClockTime) String() string { return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute) }

// =============================================================================
// TIME PARSER
// =============================================================================

// ParseClock normalizes loosely formatted time text.
//
// Accepted forms:
//
//	"15:30", "9:30"     hour:minute
//	"15:30:45"          anything past 5 characters is dropped
//	"1530"              four digits read as HHMM
//	"930"               three digits read as HMM
//
// Blank or unresolvable text returns false. Callers treat that the same
// as an empty cell.
func ParseClock(text string) (ClockTime, bool) {
	s := strings.TrimSpace(text)
	s = strings.ReplaceAll(s, "：", ":")
	if s == "" {
		return ClockTime{}, false
	}

	if isDigits(s) {
		switch len(s) {
		case 4:
			s = s[:2] + ":" + s[2:]
		case 3:
			s = "0" + s[:1] + ":" + s[1:]
		}
	}
	if len(s) > 5 {
		s = s[:5]
	}

	t, err := time.Parse("15:04", s)
	if err != nil {
		return ClockTime{}, false
	}
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}, true
}

// NormalizeClock returns the canonical echo of a cell: "HH:MM" when it
// parses, "" otherwise.
func NormalizeClock(text string) string {
	c, ok := ParseClock(text)
	if !ok {
		return ""
	}
	return c.String()
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
