package generic_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/shift-payroll/generic"
)

func TestParsePeriod(t *testing.T) {
	p, err := generic.ParsePeriod("2024-02")
	if err != nil {
		t.Fatal(err)
	}
	if p.Year != 2024 || p.Month != time.February {
		t.Errorf("got %+v", p)
	}
	if p.Days() != 29 {
		t.Errorf("leap February has %d days", p.Days())
	}
	if p.String() != "2024-02" {
		t.Errorf("String() = %s", p)
	}
	if !p.Contains(29) || p.Contains(30) || p.Contains(0) {
		t.Error("Contains is wrong at the edges")
	}
	if d := p.Date(29); d.Weekday() != time.Thursday {
		t.Errorf("2024-02-29 weekday = %s", d.Weekday())
	}
}

func TestParsePeriod_Empty(t *testing.T) {
	p, err := generic.ParsePeriod("")
	if err != nil {
		t.Fatal(err)
	}
	if !p.IsZero() || p.Days() != generic.MaxDaysInPeriod || p.String() != "" {
		t.Errorf("zero period: %+v days=%d", p, p.Days())
	}
}

func TestParsePeriod_Invalid(t *testing.T) {
	_, err := generic.ParsePeriod("2024/02")
	if !errors.Is(err, generic.ErrInvalidPeriod) {
		t.Fatalf("got %v", err)
	}
	if !generic.IsClientError(err) {
		t.Error("invalid period should be a client error")
	}
}

func TestErrors(t *testing.T) {
	err := generic.NewFieldError(generic.ErrInvalidDay, "rows[0].day", "day 40 outside 1-31")
	if !errors.Is(err, generic.ErrInvalidDay) {
		t.Error("FieldError should unwrap to its sentinel")
	}
	if err.Error() != "rows[0].day: day 40 outside 1-31" {
		t.Errorf("Error() = %s", err)
	}
	if generic.IsNotFound(err) {
		t.Error("field error is not a not-found error")
	}
	if !generic.IsNotFound(generic.ErrTimesheetNotFound) || generic.IsClientError(generic.ErrTimesheetNotFound) {
		t.Error("not-found classification is wrong")
	}
}

func TestMoneyHelpers(t *testing.T) {
	if got := generic.Hours(90); !got.Equal(decimal.RequireFromString("1.5")) {
		t.Errorf("Hours(90) = %s", got)
	}
	if got := generic.Floor(decimal.RequireFromString("3647.9")); got != 3647 {
		t.Errorf("Floor = %d", got)
	}
	if got := generic.MaxZero(decimal.NewFromInt(-3)); !got.IsZero() {
		t.Errorf("MaxZero = %s", got)
	}
}
