package accrual

import (
	"github.com/shopspring/decimal"
	"github.com/warp/timesheet-engine/calendar"
	"github.com/warp/timesheet-engine/workforce"
)

// =============================================================================
// LEAVE PRORATION - Annual allowance scaled to the contract's year share
// =============================================================================

// Proration is the result of intersecting a contract with a calendar year:
// how many contract days fall in the year, the prorated allowance, and the
// per-day leave credit distributed over those contract days.
type Proration struct {
	Year int

	// ContractDays is the inclusive day count of the contract's active
	// range clipped to the year. Zero when the contract lies outside it.
	ContractDays int

	// AllowanceDays = annual allowance * ContractDays / days-in-year.
	AllowanceDays workforce.Amount

	// YearlyLeaveHours = AllowanceDays * daily contract hours.
	YearlyLeaveHours workforce.Amount

	// DailyLeaveHours = YearlyLeaveHours / ContractDays; zero when the
	// contract has no days in the year. Applied per eligible weekday.
	DailyLeaveHours workforce.Amount
}

// ProrateLeave computes the leave proration for a contract within a target
// year. Open-ended contracts use today as the horizon. The contract must
// validate; malformed contract data fails the invocation.
func ProrateLeave(
	contract workforce.Contract,
	year int,
	allowance workforce.Amount,
	today calendar.Date,
) (Proration, error) {
	if err := contract.Validate(); err != nil {
		return Proration{}, err
	}

	yearRange := calendar.Year(year)
	daysInYear := yearRange.DayCount()

	p := Proration{
		Year:             year,
		AllowanceDays:    allowance.Zero(),
		YearlyLeaveHours: workforce.ZeroHours(),
		DailyLeaveHours:  workforce.ZeroHours(),
	}

	active, ok := contract.ActiveRange(today).Intersect(yearRange)
	if !ok {
		// Contract entirely outside the year: all proration outputs stay zero.
		return p, nil
	}
	p.ContractDays = active.DayCount()

	share := decimal.NewFromInt(int64(p.ContractDays)).
		Div(decimal.NewFromInt(int64(daysInYear)))
	p.AllowanceDays = allowance.Mul(share)
	p.YearlyLeaveHours = p.AllowanceDays.InHours(contract.DailyHours())
	if p.ContractDays > 0 {
		p.DailyLeaveHours = p.YearlyLeaveHours.DivInt(p.ContractDays)
	}
	return p, nil
}
