package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RateType says how a raw interest rate was quoted.
type RateType string

const (
	// RateTypePerHundredPerMonth is the informal lending quote: currency units
	// charged per 100 lent, per month ("2 rupees" means 2 per 100 per month).
	RateTypePerHundredPerMonth RateType = "rupee"
	// RateTypePercentPerAnnum is a conventional annual percentage.
	RateTypePercentPerAnnum RateType = "percent"
)

var hundred = decimal.NewFromInt(100)

// ParseRateType validates a raw rate type string.
func ParseRateType(s string) (RateType, error) {
	switch RateType(s) {
	case RateTypePerHundredPerMonth, RateTypePercentPerAnnum:
		return RateType(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRateType, s)
	}
}

// InterestRate is an immutable quoted rate together with its quoting convention.
type InterestRate struct {
	raw      decimal.Decimal
	rateType RateType
}

// NewInterestRate creates a validated InterestRate. Negative rates are rejected.
func NewInterestRate(raw decimal.Decimal, rateType RateType) (InterestRate, error) {
	if raw.IsNegative() {
		return InterestRate{}, fmt.Errorf("interest rate must not be negative")
	}
	if _, err := ParseRateType(string(rateType)); err != nil {
		return InterestRate{}, err
	}
	return InterestRate{raw: raw, rateType: rateType}, nil
}

// Raw returns the rate as quoted.
func (r InterestRate) Raw() decimal.Decimal { return r.raw }

// Type returns the quoting convention.
func (r InterestRate) Type() RateType { return r.rateType }

// AnnualFraction normalizes the quote to an annual fraction:
// raw * (percent per annum ? 1 : 12) / 100. A 2-per-100-per-month quote
// becomes 0.24; a 12% per annum quote becomes 0.12.
func (r InterestRate) AnnualFraction() decimal.Decimal {
	annualized := r.raw
	if r.rateType == RateTypePerHundredPerMonth {
		annualized = annualized.Mul(monthsPerYear)
	}
	return annualized.Div(hundred)
}
