package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/bibbank/vaddi/internal/domain/model"
	"github.com/bibbank/vaddi/internal/domain/valueobject"
	"github.com/bibbank/vaddi/pkg/money"
	pkgpostgres "github.com/bibbank/vaddi/pkg/postgres"
)

// CalculationRepo implements port.CalculationRepository.
type CalculationRepo struct {
	db pkgpostgres.Querier
}

// NewCalculationRepo creates a new PostgreSQL-backed calculation repository.
func NewCalculationRepo(db pkgpostgres.Querier) *CalculationRepo {
	return &CalculationRepo{db: db}
}

const selectCalculation = `
	SELECT id, interest_type, compound_frequency, frequency_months,
	       rate_type, interest_rate,
	       duration_type, years, months, days,
	       principal, interest, currency, created_at
	FROM calculations
`

// Save inserts a calculation. Calculations are immutable, so a repeated ID is
// ignored.
func (r *CalculationRepo) Save(ctx context.Context, calc model.Calculation) error {
	query := `
		INSERT INTO calculations (
			id, interest_type, compound_frequency, frequency_months,
			rate_type, interest_rate,
			duration_type, years, months, days,
			principal, interest, currency, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		ON CONFLICT (id) DO NOTHING
	`
	mode := calc.Mode()
	d := calc.Duration()
	_, err := r.db.Exec(ctx, query,
		calc.ID(), string(mode.Type()), string(mode.Frequency().Kind()), mode.Frequency().Months(),
		string(calc.Rate().Type()), calc.Rate().Raw(),
		string(calc.DurationKind()), d.Years, d.Months, d.Days,
		calc.Principal().Amount(), calc.Interest().Amount(), calc.Principal().Currency().Code(), calc.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save calculation: %w", err)
	}
	return nil
}

// FindByID retrieves a calculation by ID.
func (r *CalculationRepo) FindByID(ctx context.Context, id string) (model.Calculation, error) {
	row := r.db.QueryRow(ctx, selectCalculation+` WHERE id = $1`, id)
	calc, err := scanCalculation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Calculation{}, model.ErrCalculationNotFound
	}
	return calc, err
}

// DeleteOlderThan removes calculations created before cutoff and returns the
// number removed.
func (r *CalculationRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM calculations WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete calculations: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanCalculation(row pgx.Row) (model.Calculation, error) {
	var (
		id, interestType, frequencyKind string
		frequencyMonths                 int
		rateType                        string
		rawRate                         decimal.Decimal
		durationType                    string
		years, months, days             int
		principal, interest             decimal.Decimal
		currency                        string
		createdAt                       time.Time
	)

	err := row.Scan(
		&id, &interestType, &frequencyKind, &frequencyMonths,
		&rateType, &rawRate,
		&durationType, &years, &months, &days,
		&principal, &interest, &currency, &createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Calculation{}, err
		}
		return model.Calculation{}, fmt.Errorf("scan calculation: %w", err)
	}

	mode, err := restoreMode(interestType, frequencyKind, frequencyMonths)
	if err != nil {
		return model.Calculation{}, fmt.Errorf("calculation %s: %w", id, err)
	}
	rate, err := valueobject.NewInterestRate(rawRate, valueobject.RateType(rateType))
	if err != nil {
		return model.Calculation{}, fmt.Errorf("calculation %s: %w", id, err)
	}
	cur, err := money.NewCurrency(currency)
	if err != nil {
		return model.Calculation{}, fmt.Errorf("calculation %s: %w", id, err)
	}

	return model.ReconstructCalculation(
		id, mode, rate,
		valueobject.DurationKind(durationType),
		valueobject.NewDuration(years, months, days),
		money.New(principal, cur),
		interest,
		createdAt.UTC(),
	), nil
}

func restoreMode(interestType, frequencyKind string, frequencyMonths int) (valueobject.InterestMode, error) {
	t, err := valueobject.ParseInterestType(interestType)
	if err != nil {
		return valueobject.InterestMode{}, err
	}
	if t == valueobject.InterestSimple {
		return valueobject.SimpleMode(), nil
	}
	freq, err := valueobject.ParseCompoundFrequency(frequencyKind, frequencyMonths)
	if err != nil {
		return valueobject.InterestMode{}, err
	}
	return valueobject.CompoundMode(freq), nil
}
