package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bibbank/vaddi/internal/domain/event"
	"github.com/bibbank/vaddi/internal/domain/valueobject"
	"github.com/bibbank/vaddi/pkg/events"
	"github.com/bibbank/vaddi/pkg/money"
)

// ErrCalculationNotFound is returned by repositories for unknown calculation IDs.
var ErrCalculationNotFound = errors.New("calculation not found")

// ---------------------------------------------------------------------------
// Calculation aggregate root
// ---------------------------------------------------------------------------

// Calculation is the immutable record of one interest computation: the inputs
// as the caller quoted them, the resolved duration, and the interest produced.
type Calculation struct {
	id           string
	mode         valueobject.InterestMode
	rate         valueobject.InterestRate
	durationKind valueobject.DurationKind
	duration     valueobject.Duration
	principal    money.Money
	interest     money.Money
	createdAt    time.Time
	recorded     events.EventCollector
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewCalculation records a completed computation and raises InterestCalculated.
func NewCalculation(
	principal money.Money,
	rate valueobject.InterestRate,
	mode valueobject.InterestMode,
	durationKind valueobject.DurationKind,
	duration valueobject.Duration,
	interest decimal.Decimal,
	now time.Time,
) (Calculation, error) {
	if !principal.IsPositive() {
		return Calculation{}, errors.New("principal must be positive")
	}
	if mode.IsCompound() && !mode.Frequency().IsValid() {
		return Calculation{}, valueobject.ErrInvalidCompoundFrequency
	}

	calc := Calculation{
		id:           uuid.New().String(),
		mode:         mode,
		rate:         rate,
		durationKind: durationKind,
		duration:     duration,
		principal:    principal,
		interest:     money.New(interest, principal.Currency()),
		createdAt:    now,
	}

	calc.recorded.Record(event.NewInterestCalculated(
		calc.id, string(mode.Type()),
		principal.Amount(), interest, principal.Currency().Code(),
		rate.AnnualFraction(),
		duration.Years, duration.Months, duration.Days,
		mode.Frequency().Months(),
	))

	return calc, nil
}

// ReconstructCalculation rebuilds a Calculation aggregate from persistence.
func ReconstructCalculation(
	id string,
	mode valueobject.InterestMode,
	rate valueobject.InterestRate,
	durationKind valueobject.DurationKind,
	duration valueobject.Duration,
	principal money.Money,
	interest decimal.Decimal,
	createdAt time.Time,
) Calculation {
	return Calculation{
		id:           id,
		mode:         mode,
		rate:         rate,
		durationKind: durationKind,
		duration:     duration,
		principal:    principal,
		interest:     money.New(interest, principal.Currency()),
		createdAt:    createdAt,
	}
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (c Calculation) ID() string                             { return c.id }
func (c Calculation) Mode() valueobject.InterestMode         { return c.mode }
func (c Calculation) Rate() valueobject.InterestRate         { return c.rate }
func (c Calculation) DurationKind() valueobject.DurationKind { return c.durationKind }
func (c Calculation) Duration() valueobject.Duration         { return c.duration }
func (c Calculation) Principal() money.Money                 { return c.principal }
func (c Calculation) Interest() money.Money                  { return c.interest }
func (c Calculation) CreatedAt() time.Time                   { return c.createdAt }

// FractionalYears returns the duration as a 30/360 year fraction.
func (c Calculation) FractionalYears() decimal.Decimal {
	return c.duration.FractionalYears()
}

// TotalPayable returns principal plus interest.
func (c Calculation) TotalPayable() money.Money {
	// Principal and interest share a currency by construction.
	total, _ := c.principal.Add(c.interest)
	return total
}

// DomainEvents returns the events raised while building the aggregate.
func (c Calculation) DomainEvents() []event.DomainEvent {
	return c.recorded.Events()
}

// ClearDomainEvents returns a copy of the aggregate without pending events.
func (c Calculation) ClearDomainEvents() Calculation {
	c.recorded.ClearEvents()
	return c
}
