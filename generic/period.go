package generic

import (
	"fmt"
	"time"
)

// =============================================================================
// PERIOD - The calendar month a timesheet covers
// =============================================================================

// MaxDaysInPeriod bounds a timesheet to one calendar month.
const MaxDaysInPeriod = 31

// Period identifies one pay month. The zero Period is "unspecified" and
// allows every day 1-31.
type Period struct {
	Year  int
	Month time.Month
}

// ParsePeriod reads "2006-01". An empty string is the zero Period.
func ParsePeriod(s string) (Period, error) {
	if s == "" {
		return Period{}, nil
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	return Period{Year: t.Year(), Month: t.Month()}, nil
}

// IsZero reports whether no month was chosen.
func (p Period) IsZero() bool { return p.Year == 0 && p.Month == 0 }

// Days returns the number of days in the month (31 when unspecified).
func (p Period) Days() int {
	if p.IsZero() {
		return MaxDaysInPeriod
	}
	return time.Date(p.Year, p.Month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1).Day()
}

// Contains reports whether day is a valid day number for the period.
func (p Period) Contains(day int) bool {
	return day >= 1 && day <= p.Days()
}

// Date returns the calendar date of a day in the period.
func (p Period) Date(day int) time.Time {
	return time.Date(p.Year, p.Month, day, 0, 0, 0, 0, time.UTC)
}

// String returns "2006-01", or "" for the zero Period.
func (p Period) String() string {
	if p.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}
