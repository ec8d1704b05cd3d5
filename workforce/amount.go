package workforce

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// AMOUNT - Quantity with unit (hours or days)
// =============================================================================

// Amount is a quantity with a unit. The engine moves between day-denominated
// allowances and hour-denominated schedules, so the unit travels with the
// value. decimal.Decimal keeps repeated credit sums exact.
type Amount struct {
	Value decimal.Decimal
	Unit  Unit
}

type Unit string

const (
	UnitDays  Unit = "days"
	UnitHours Unit = "hours"
)

func NewAmount(value float64, unit Unit) Amount {
	return Amount{Value: decimal.NewFromFloat(value), Unit: unit}
}

func NewAmountFromInt(value int, unit Unit) Amount {
	return Amount{Value: decimal.NewFromInt(int64(value)), Unit: unit}
}

// Hours is shorthand for an hour-denominated amount.
func Hours(value float64) Amount { return NewAmount(value, UnitHours) }

// Days is shorthand for a day-denominated amount.
func Days(value float64) Amount { return NewAmount(value, UnitDays) }

// ZeroHours is the additive identity for hour sums.
func ZeroHours() Amount { return Amount{Value: decimal.Zero, Unit: UnitHours} }

func (a Amount) Zero() Amount                 { return Amount{Value: decimal.Zero, Unit: a.Unit} }
func (a Amount) Add(b Amount) Amount          { return Amount{Value: a.Value.Add(b.Value), Unit: a.Unit} }
func (a Amount) Sub(b Amount) Amount          { return Amount{Value: a.Value.Sub(b.Value), Unit: a.Unit} }
func (a Amount) Mul(s decimal.Decimal) Amount { return Amount{Value: a.Value.Mul(s), Unit: a.Unit} }
func (a Amount) MulInt(n int) Amount          { return a.Mul(decimal.NewFromInt(int64(n))) }
func (a Amount) Neg() Amount                  { return Amount{Value: a.Value.Neg(), Unit: a.Unit} }
func (a Amount) IsZero() bool                 { return a.Value.IsZero() }
func (a Amount) IsNegative() bool             { return a.Value.IsNegative() }
func (a Amount) IsPositive() bool             { return a.Value.IsPositive() }
func (a Amount) GreaterThan(b Amount) bool    { return a.Value.GreaterThan(b.Value) }
func (a Amount) LessThan(b Amount) bool       { return a.Value.LessThan(b.Value) }

// Div divides by a scalar, returning zero when the divisor is zero. Every
// denominator in the engine (working days, contract days) carries this guard.
func (a Amount) Div(s decimal.Decimal) Amount {
	if s.IsZero() {
		return a.Zero()
	}
	return Amount{Value: a.Value.Div(s), Unit: a.Unit}
}

// DivInt divides by an integer count with the same zero guard.
func (a Amount) DivInt(n int) Amount { return a.Div(decimal.NewFromInt(int64(n))) }

// Half returns half the amount (half-day holiday credit).
func (a Amount) Half() Amount { return a.Div(decimal.NewFromInt(2)) }

// InHours converts a day-denominated amount given a per-day hour rate.
func (a Amount) InHours(dailyHours Amount) Amount {
	if a.Unit == UnitHours {
		return a
	}
	return Amount{Value: a.Value.Mul(dailyHours.Value), Unit: UnitHours}
}

// String renders with two decimal places, the display precision used by
// every report surface.
func (a Amount) String() string { return a.Value.StringFixed(2) }

// Float64 returns the value as a float for JSON payloads.
func (a Amount) Float64() float64 {
	f, _ := a.Value.Float64()
	return f
}
