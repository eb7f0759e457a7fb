package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	monthsPerYear = decimal.NewFromInt(12)
	daysPerYear   = decimal.NewFromInt(360)
)

// Duration is an immutable civil duration expressed as years, months and days.
// It doubles as the explicit "period" a caller may supply instead of dates.
// Components are not range-checked: months above 11 or days above 30 are kept
// literally, and negative values pass through unchanged.
type Duration struct {
	Years  int `json:"years"`
	Months int `json:"months"`
	Days   int `json:"days"`
}

// ZeroDuration is the empty duration.
var ZeroDuration = Duration{}

// NewDuration creates a Duration from its components.
func NewDuration(years, months, days int) Duration {
	return Duration{Years: years, Months: months, Days: days}
}

// IsZero reports whether all components are zero.
func (d Duration) IsZero() bool {
	return d == ZeroDuration
}

// FractionalYears converts the duration to years under the 30/360 banking
// convention: years + months/12 + days/360.
func (d Duration) FractionalYears() decimal.Decimal {
	years := decimal.NewFromInt(int64(d.Years))
	months := decimal.NewFromInt(int64(d.Months)).Div(monthsPerYear)
	days := decimal.NewFromInt(int64(d.Days)).Div(daysPerYear)
	return years.Add(months).Add(days)
}

// String renders the duration as "1y 6m 0d".
func (d Duration) String() string {
	return fmt.Sprintf("%dy %dm %dd", d.Years, d.Months, d.Days)
}
