package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bibbank/vaddi/internal/domain/valueobject"
)

// wholeUnitPrecision is applied before flooring month and day counts so that
// values such as 7/12*12 land on 7 instead of 6.999...
const wholeUnitPrecision = 9

var (
	twelve     = decimal.NewFromInt(12)
	daysInYear = decimal.NewFromInt(360)
)

// InterestRequest is the input to InterestEngine.Compute.
type InterestRequest struct {
	Amount decimal.Decimal
	// AnnualRate is a fraction: 0.12 for 12% per annum.
	AnnualRate decimal.Decimal
	// DurationYears is the 30/360 year fraction of the loan duration.
	DurationYears decimal.Decimal
	Mode          valueobject.InterestMode
}

// InterestEngine computes simple and discretely compounded interest. It is
// stateless and safe for concurrent use.
type InterestEngine struct{}

// NewInterestEngine creates a new InterestEngine.
func NewInterestEngine() *InterestEngine {
	return &InterestEngine{}
}

// Compute returns the interest accrued by req, excluding the principal.
func (e *InterestEngine) Compute(req InterestRequest) (decimal.Decimal, error) {
	switch req.Mode.Type() {
	case valueobject.InterestSimple:
		return SimpleInterest(req.Amount, req.AnnualRate, req.DurationYears), nil
	case valueobject.InterestCompound:
		return CompoundInterest(req.Amount, req.AnnualRate, req.DurationYears, req.Mode.Frequency().Months())
	default:
		return decimal.Zero, fmt.Errorf("%w: %q", valueobject.ErrInvalidInterestType, req.Mode.Type())
	}
}

// SimpleInterest returns amount * rate * years.
func SimpleInterest(amount, annualRate, years decimal.Decimal) decimal.Decimal {
	return amount.Mul(annualRate).Mul(years)
}

// CompoundInterest folds simple interest into the running amount once per
// complete compounding period of frequencyMonths, then applies simple interest
// for the remaining 30/360 days. It returns the accumulated interest only.
func CompoundInterest(amount, annualRate, years decimal.Decimal, frequencyMonths int) (decimal.Decimal, error) {
	if frequencyMonths <= 0 {
		return decimal.Zero, fmt.Errorf("%w: %d months", valueobject.ErrInvalidCompoundFrequency, frequencyMonths)
	}

	totalMonths, totalDays := wholeMonthsAndDays(years)
	freq := decimal.NewFromInt(int64(frequencyMonths))
	completePeriods := decimal.NewFromInt(totalMonths).Div(freq).Floor().IntPart()

	running := amount
	for i := int64(0); i < completePeriods; i++ {
		running = running.Add(running.Mul(annualRate).Mul(freq).Div(twelve))
	}

	remainingDays := totalDays - completePeriods*int64(frequencyMonths)*30
	if remainingDays > 0 {
		running = running.Add(running.Mul(annualRate).Mul(decimal.NewFromInt(remainingDays)).Div(daysInYear))
	}

	return running.Sub(amount), nil
}

// wholeMonthsAndDays splits a year fraction into whole 30-day months and whole
// days.
func wholeMonthsAndDays(years decimal.Decimal) (months, days int64) {
	whole := years.Floor()
	frac := years.Sub(whole)

	months = whole.Mul(twelve).Add(frac.Mul(twelve)).Round(wholeUnitPrecision).Floor().IntPart()
	days = whole.Mul(daysInYear).Add(frac.Mul(daysInYear)).Round(wholeUnitPrecision).Floor().IntPart()
	return months, days
}
