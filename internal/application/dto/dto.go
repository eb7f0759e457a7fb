package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// CalculateInterestRequest carries the calculator form. Only the fields for the
// selected duration type and interest type are consulted.
type CalculateInterestRequest struct {
	InterestType            string          `json:"interest_type"`
	RateType                string          `json:"rate_type"`
	Amount                  decimal.Decimal `json:"amount"`
	InterestRate            decimal.Decimal `json:"interest_rate"`
	DurationType            string          `json:"duration_type"`
	Years                   int             `json:"years,omitempty"`
	Months                  int             `json:"months,omitempty"`
	Days                    int             `json:"days,omitempty"`
	StartDate               string          `json:"start_date,omitempty"`
	EndDate                 string          `json:"end_date,omitempty"`
	CompoundFrequency       string          `json:"compound_frequency,omitempty"`
	CompoundFrequencyMonths int             `json:"compound_frequency_months,omitempty"`
	Currency                string          `json:"currency,omitempty"`
}

// GetCalculationRequest identifies a stored calculation.
type GetCalculationRequest struct {
	ID string `json:"id"`
}

// PurgeHistoryRequest removes calculations created before Cutoff.
type PurgeHistoryRequest struct {
	Cutoff time.Time `json:"cutoff"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// DurationBreakdown is the resolved duration.
type DurationBreakdown struct {
	Years  int `json:"years"`
	Months int `json:"months"`
	Days   int `json:"days"`
}

// CalculationResponse is the external representation of a calculation.
// Interest and TotalPayable are rounded to the currency's minor units.
type CalculationResponse struct {
	ID                      string            `json:"id"`
	InterestType            string            `json:"interest_type"`
	RateType                string            `json:"rate_type"`
	Amount                  decimal.Decimal   `json:"amount"`
	InterestRate            decimal.Decimal   `json:"interest_rate"`
	AnnualRate              decimal.Decimal   `json:"annual_rate"`
	DurationType            string            `json:"duration_type"`
	Duration                DurationBreakdown `json:"duration"`
	FractionalYears         decimal.Decimal   `json:"fractional_years"`
	CompoundFrequencyMonths int               `json:"compound_frequency_months,omitempty"`
	Interest                decimal.Decimal   `json:"interest"`
	TotalPayable            decimal.Decimal   `json:"total_payable"`
	Currency                string            `json:"currency"`
	Cached                  bool              `json:"cached"`
	CreatedAt               time.Time         `json:"created_at"`
}

// PurgeHistoryResponse reports the outcome of a retention run.
type PurgeHistoryResponse struct {
	Cutoff  time.Time `json:"cutoff"`
	Deleted int64     `json:"deleted"`
}
