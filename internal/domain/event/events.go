package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bibbank/vaddi/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

const (
	TypeInterestCalculated = "calculator.interest.calculated"
	TypeHistoryPurged      = "calculator.history.purged"
)

// InterestCalculated is raised once per completed calculation.
type InterestCalculated struct {
	events.BaseEvent
	InterestType    string          `json:"interest_type"`
	Principal       decimal.Decimal `json:"principal"`
	Interest        decimal.Decimal `json:"interest"`
	Currency        string          `json:"currency"`
	AnnualRate      decimal.Decimal `json:"annual_rate"`
	Years           int             `json:"years"`
	Months          int             `json:"months"`
	Days            int             `json:"days"`
	FrequencyMonths int             `json:"frequency_months,omitempty"`
}

func NewInterestCalculated(
	calculationID, interestType string,
	principal, interest decimal.Decimal, currency string,
	annualRate decimal.Decimal,
	years, months, days, frequencyMonths int,
) InterestCalculated {
	return InterestCalculated{
		BaseEvent:       events.NewBaseEvent(TypeInterestCalculated, calculationID, "Calculation"),
		InterestType:    interestType,
		Principal:       principal,
		Interest:        interest,
		Currency:        currency,
		AnnualRate:      annualRate,
		Years:           years,
		Months:          months,
		Days:            days,
		FrequencyMonths: frequencyMonths,
	}
}

// HistoryPurged is raised after the retention job removes old calculations.
type HistoryPurged struct {
	events.BaseEvent
	Cutoff  time.Time `json:"cutoff"`
	Deleted int64     `json:"deleted"`
}

func NewHistoryPurged(cutoff time.Time, deleted int64) HistoryPurged {
	return HistoryPurged{
		BaseEvent: events.NewBaseEvent(TypeHistoryPurged, "calculation-history", "CalculationHistory"),
		Cutoff:    cutoff,
		Deleted:   deleted,
	}
}
