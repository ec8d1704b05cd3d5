package workforce_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/warp/timesheet-engine/workforce"
)

func TestAmount_DivByZeroYieldsZero(t *testing.T) {
	// GIVEN: An hour amount and a zero divisor
	// WHEN: Dividing
	// THEN: The result is zero, not a panic or an error
	a := workforce.Hours(224)

	if got := a.Div(decimal.Zero); !got.IsZero() {
		t.Errorf("Div by zero = %s, want 0.00", got)
	}
	if got := a.DivInt(0); !got.IsZero() {
		t.Errorf("DivInt by zero = %s, want 0.00", got)
	}
}

func TestAmount_StringTwoDecimalPlaces(t *testing.T) {
	cases := []struct {
		amount workforce.Amount
		want   string
	}{
		{workforce.Hours(8), "8.00"},
		{workforce.Hours(7.5), "7.50"},
		{workforce.Hours(224).DivInt(365), "0.61"},
		{workforce.ZeroHours(), "0.00"},
		{workforce.Hours(4).Sub(workforce.Hours(10)), "-6.00"},
	}
	for _, c := range cases {
		if got := c.amount.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}

func TestAmount_InHours(t *testing.T) {
	daily := workforce.Hours(8)

	// Days convert at the daily rate
	if got := workforce.Days(28).InHours(daily); got.String() != "224.00" {
		t.Errorf("28 days at 8h/day = %s, want 224.00", got)
	}
	// Hours pass through unchanged
	if got := workforce.Hours(16).InHours(daily); got.String() != "16.00" {
		t.Errorf("16 hours = %s, want 16.00", got)
	}
}

func TestAmount_Half(t *testing.T) {
	if got := workforce.Hours(8).Half(); got.String() != "4.00" {
		t.Errorf("half of 8 = %s, want 4.00", got)
	}
}
