package generic_test

import (
	"testing"

	"github.com/warp/shift-payroll/generic"
)

func clock(t *testing.T, s string) generic.ClockTime {
	t.Helper()
	c, ok := generic.ParseClock(s)
	if !ok {
		t.Fatalf("bad clock %q", s)
	}
	return c
}

func segment(t *testing.T, in, out string) generic.Segment {
	return generic.Segment{In: clock(t, in), Out: clock(t, out)}
}

// =============================================================================
// ELAPSED / LATE / OVERTIME
// =============================================================================

func TestElapsedMinutes(t *testing.T) {
	tests := []struct {
		start, end string
		want       int
	}{
		{"23:00", "00:30", 90},
		{"09:00", "17:00", 480},
		{"15:00", "15:00", 0},
		{"17:30", "00:20", 410},
		{"00:00", "23:59", 1439},
	}
	for _, tt := range tests {
		got := generic.ElapsedMinutes(clock(t, tt.start), clock(t, tt.end))
		if got != tt.want {
			t.Errorf("ElapsedMinutes(%s, %s) = %d, want %d", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestLateMinutes_NeverNegative(t *testing.T) {
	if got := generic.LateMinutes(clock(t, "09:00"), clock(t, "08:50")); got != 0 {
		t.Errorf("early arrival: got %d late minutes", got)
	}
	if got := generic.LateMinutes(clock(t, "09:00"), clock(t, "09:05")); got != 5 {
		t.Errorf("got %d late minutes, want 5", got)
	}
}

func TestOvertimeMinutes(t *testing.T) {
	tests := []struct {
		name     string
		seg      generic.Segment
		out      string
		want     int
		describe string
	}{
		{"evening shift, stays late", segment(t, "15:00", "23:00"), "23:30", 30, ""},
		{"evening shift, leaves early", segment(t, "15:00", "23:00"), "22:00", 0, "clamped"},
		{"evening shift, checkout past midnight", segment(t, "15:00", "23:00"), "00:15", 75, "actual crosses"},
		{"crossing shift ending at midnight", segment(t, "17:30", "00:00"), "00:20", 20, "both cross"},
		{"crossing shift, leaves before midnight", segment(t, "17:30", "00:00"), "23:50", 0, "scheduled crosses only"},
		{"crossing shift ending 00:30", segment(t, "16:00", "00:30"), "01:00", 30, ""},
		{"morning segment, stays late", segment(t, "10:00", "14:00"), "14:45", 45, ""},
		{"morning segment ending before noon", segment(t, "06:00", "11:00"), "11:20", 20, "no crossing"},
		{"lunch segment, leaves early before noon", segment(t, "10:00", "14:00"), "11:30", 0, "same day"},
		{"lunch segment, leaves at 11:59", segment(t, "10:30", "14:30"), "11:59", 0, "same day"},
		{"evening shift, checkout 05:00", segment(t, "15:00", "23:00"), "05:00", 360, "actual crosses"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := generic.OvertimeMinutes(tt.seg, clock(t, tt.out))
			if got != tt.want {
				t.Errorf("OvertimeMinutes(%s, %s) = %d, want %d", tt.seg, tt.out, got, tt.want)
			}
		})
	}
}

func TestSignedOffset_IndependentCorrections(t *testing.T) {
	s := clock(t, "00:00")
	a := clock(t, "00:20")
	if got := generic.SignedOffset(s, a, true, true); got != 20 {
		t.Errorf("both shifted: got %d", got)
	}
	if got := generic.SignedOffset(s, a, true, false); got != 20-generic.MinutesPerDay {
		t.Errorf("scheduled only: got %d", got)
	}
	if got := generic.SignedOffset(s, a, false, true); got != 20+generic.MinutesPerDay {
		t.Errorf("actual only: got %d", got)
	}
}

func TestSegment(t *testing.T) {
	seg := segment(t, "17:30", "00:00")
	if !seg.Crosses() {
		t.Error("17:30-00:00 should cross midnight")
	}
	if seg.Minutes() != 390 {
		t.Errorf("Minutes() = %d", seg.Minutes())
	}
	if seg.String() != "17:30-00:00" {
		t.Errorf("String() = %s", seg)
	}
	if segment(t, "11:00", "14:30").Crosses() {
		t.Error("11:00-14:30 should not cross")
	}
}

// =============================================================================
// OVERTIME POLICY
// =============================================================================

func TestOvertimePolicy_StepRounding(t *testing.T) {
	policy := generic.SteppedOvertime(generic.DefaultOvertimeStep)
	tests := []struct {
		raw   int
		hours string
	}{
		{0, "0"},
		{29, "0"},
		{30, "0.5"},
		{59, "0.5"},
		{60, "1"},
		{95, "1.5"},
		{-15, "0"},
	}
	for _, tt := range tests {
		got := policy.Hours(tt.raw)
		if got.String() != tt.hours {
			t.Errorf("Hours(%d) = %s, want %s", tt.raw, got, tt.hours)
		}
	}
}

func TestOvertimePolicy_Raw(t *testing.T) {
	policy := generic.RawOvertime()
	if policy.IsStepped() {
		t.Fatal("raw policy reports stepped")
	}
	if got := policy.Apply(29); got != 29 {
		t.Errorf("Apply(29) = %d", got)
	}
	if got := policy.Apply(-3); got != 0 {
		t.Errorf("Apply(-3) = %d", got)
	}
}
