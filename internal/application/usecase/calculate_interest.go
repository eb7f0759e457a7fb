package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/bibbank/vaddi/internal/application/dto"
	"github.com/bibbank/vaddi/internal/domain/model"
	"github.com/bibbank/vaddi/internal/domain/port"
	"github.com/bibbank/vaddi/internal/domain/service"
	"github.com/bibbank/vaddi/internal/domain/valueobject"
	"github.com/bibbank/vaddi/pkg/money"
)

const tracerName = "github.com/bibbank/vaddi/internal/application/usecase"

// ErrInvalidInput marks request validation failures. Errors wrapping it map to
// InvalidArgument / 400 at the transport edge.
var ErrInvalidInput = errors.New("invalid input")

// CalculateInterestUseCase resolves the loan duration, computes interest, and
// records the calculation.
type CalculateInterestUseCase struct {
	repo            port.CalculationRepository
	publisher       port.EventPublisher
	cache           port.CalculationCache
	metrics         port.MetricsRecorder
	resolver        *service.DurationResolver
	engine          *service.InterestEngine
	defaultCurrency money.Currency
	logger          *slog.Logger
}

// NewCalculateInterestUseCase wires dependencies.
func NewCalculateInterestUseCase(
	repo port.CalculationRepository,
	publisher port.EventPublisher,
	cache port.CalculationCache,
	metrics port.MetricsRecorder,
	resolver *service.DurationResolver,
	engine *service.InterestEngine,
	defaultCurrency money.Currency,
	logger *slog.Logger,
) *CalculateInterestUseCase {
	return &CalculateInterestUseCase{
		repo:            repo,
		publisher:       publisher,
		cache:           cache,
		metrics:         metrics,
		resolver:        resolver,
		engine:          engine,
		defaultCurrency: defaultCurrency,
		logger:          logger,
	}
}

// Execute runs one calculation. A request identical to an earlier one returns
// the stored result with Cached set.
func (uc *CalculateInterestUseCase) Execute(ctx context.Context, req dto.CalculateInterestRequest) (dto.CalculationResponse, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "CalculateInterest",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("interest_type", req.InterestType),
			attribute.String("duration_type", req.DurationType),
		),
	)
	defer span.End()

	resp, err := uc.execute(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		uc.metrics.CalculationFailed(ctx, failureReason(err))
		return dto.CalculationResponse{}, err
	}

	span.SetAttributes(attribute.String("calculation_id", resp.ID), attribute.Bool("cached", resp.Cached))
	uc.metrics.CalculationCompleted(ctx, resp.InterestType, resp.Cached)
	return resp, nil
}

func (uc *CalculateInterestUseCase) execute(ctx context.Context, req dto.CalculateInterestRequest) (dto.CalculationResponse, error) {
	// 1. Validate and build value objects.
	in, err := uc.parse(req)
	if err != nil {
		return dto.CalculationResponse{}, err
	}

	// 2. Serve resubmissions from the cache.
	key := in.cacheKey(uc.resolver.Convention())
	if resp, ok := uc.lookupCached(ctx, key); ok {
		return resp, nil
	}

	// 3. Resolve duration and compute interest.
	duration := uc.resolver.Resolve(in.spec)
	interest, err := uc.engine.Compute(service.InterestRequest{
		Amount:        in.principal.Amount(),
		AnnualRate:    in.rate.AnnualFraction(),
		DurationYears: duration.FractionalYears(),
		Mode:          in.mode,
	})
	if err != nil {
		return dto.CalculationResponse{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	// 4. Record the calculation.
	calc, err := model.NewCalculation(in.principal, in.rate, in.mode, in.spec.Kind(), duration, interest, time.Now().UTC())
	if err != nil {
		return dto.CalculationResponse{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if err := uc.repo.Save(ctx, calc); err != nil {
		return dto.CalculationResponse{}, fmt.Errorf("save calculation: %w", err)
	}

	// 5. Publish and cache; neither affects the answer.
	if err := uc.publisher.Publish(ctx, calc.DomainEvents()...); err != nil {
		uc.logger.Warn("failed to publish calculation events", "calculation_id", calc.ID(), "error", err)
	}
	if err := uc.cache.Remember(ctx, key, calc.ID()); err != nil {
		uc.logger.Warn("failed to cache calculation", "calculation_id", calc.ID(), "error", err)
	}

	uc.logger.Info("interest calculated",
		"calculation_id", calc.ID(),
		"interest_type", in.mode.Type(),
		"duration", duration.String(),
		"interest", calc.Interest().Rounded().String(),
	)

	return toCalculationResponse(calc, false), nil
}

func (uc *CalculateInterestUseCase) lookupCached(ctx context.Context, key string) (dto.CalculationResponse, bool) {
	id, found, err := uc.cache.Lookup(ctx, key)
	if err != nil {
		uc.logger.Warn("calculation cache lookup failed", "error", err)
		return dto.CalculationResponse{}, false
	}
	if !found {
		return dto.CalculationResponse{}, false
	}

	calc, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, model.ErrCalculationNotFound) {
			uc.logger.Warn("failed to load cached calculation", "calculation_id", id, "error", err)
		}
		return dto.CalculationResponse{}, false
	}
	return toCalculationResponse(calc, true), true
}

// calculationInput is a validated request.
type calculationInput struct {
	principal money.Money
	rate      valueobject.InterestRate
	mode      valueobject.InterestMode
	spec      valueobject.DurationSpec
}

func (uc *CalculateInterestUseCase) parse(req dto.CalculateInterestRequest) (calculationInput, error) {
	if !req.Amount.IsPositive() {
		return calculationInput{}, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	currency := uc.defaultCurrency
	if req.Currency != "" {
		c, err := money.NewCurrency(strings.ToUpper(req.Currency))
		if err != nil {
			return calculationInput{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		currency = c
	}

	rateType, err := valueobject.ParseRateType(req.RateType)
	if err != nil {
		return calculationInput{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	rate, err := valueobject.NewInterestRate(req.InterestRate, rateType)
	if err != nil {
		return calculationInput{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	interestType, err := valueobject.ParseInterestType(req.InterestType)
	if err != nil {
		return calculationInput{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	mode := valueobject.SimpleMode()
	if interestType == valueobject.InterestCompound {
		freq, err := valueobject.ParseCompoundFrequency(req.CompoundFrequency, req.CompoundFrequencyMonths)
		if err != nil {
			return calculationInput{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		mode = valueobject.CompoundMode(freq)
	}

	spec, err := uc.durationSpec(req)
	if err != nil {
		return calculationInput{}, err
	}

	return calculationInput{
		principal: money.New(req.Amount, currency),
		rate:      rate,
		mode:      mode,
		spec:      spec,
	}, nil
}

// durationSpec builds the duration choice. A missing or unknown duration type,
// or a date range with a blank end, yields an empty spec that resolves to
// zero; malformed dates are rejected.
func (uc *CalculateInterestUseCase) durationSpec(req dto.CalculateInterestRequest) (valueobject.DurationSpec, error) {
	kind, err := valueobject.ParseDurationKind(req.DurationType)
	if err != nil {
		uc.logger.Warn("duration not specified, using zero duration", "duration_type", req.DurationType)
		return valueobject.DurationSpec{}, nil
	}

	if kind == valueobject.DurationKindPeriod {
		return valueobject.NewPeriodSpec(valueobject.NewDuration(req.Years, req.Months, req.Days)), nil
	}

	if req.StartDate == "" || req.EndDate == "" {
		uc.logger.Warn("date range incomplete, using zero duration",
			"start_date", req.StartDate, "end_date", req.EndDate)
		return valueobject.DurationSpec{}, nil
	}
	start, err := time.Parse(time.DateOnly, req.StartDate)
	if err != nil {
		return valueobject.DurationSpec{}, fmt.Errorf("%w: start date %q: want YYYY-MM-DD", ErrInvalidInput, req.StartDate)
	}
	end, err := time.Parse(time.DateOnly, req.EndDate)
	if err != nil {
		return valueobject.DurationSpec{}, fmt.Errorf("%w: end date %q: want YYYY-MM-DD", ErrInvalidInput, req.EndDate)
	}
	return valueobject.NewDateRangeSpec(start, end), nil
}

// cacheKey renders the validated input canonically so equivalent requests,
// such as "12" and "12.00", share a key. The day count convention is part of
// the key since it changes how date ranges resolve.
func (in calculationInput) cacheKey(convention service.DayCountConvention) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%s|%s|%s|%s|%s|%d",
		convention,
		in.principal.Currency().Code(),
		in.principal.Amount().String(),
		in.rate.Type(),
		in.rate.Raw().String(),
		in.mode.Type(),
		in.mode.Frequency().Months(),
	)
	if r, ok := in.spec.DateRange(); ok {
		fmt.Fprintf(&b, "|dates|%s|%s", r.Start().Format(time.DateOnly), r.End().Format(time.DateOnly))
	} else if p, ok := in.spec.Period(); ok {
		fmt.Fprintf(&b, "|period|%d|%d|%d", p.Years, p.Months, p.Days)
	} else {
		b.WriteString("|none")
	}
	return b.String()
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, valueobject.ErrInvalidCompoundFrequency):
		return "invalid_frequency"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	default:
		return "internal"
	}
}

func toCalculationResponse(calc model.Calculation, cached bool) dto.CalculationResponse {
	d := calc.Duration()
	return dto.CalculationResponse{
		ID:                      calc.ID(),
		InterestType:            string(calc.Mode().Type()),
		RateType:                string(calc.Rate().Type()),
		Amount:                  calc.Principal().Amount(),
		InterestRate:            calc.Rate().Raw(),
		AnnualRate:              calc.Rate().AnnualFraction(),
		DurationType:            string(calc.DurationKind()),
		Duration:                dto.DurationBreakdown{Years: d.Years, Months: d.Months, Days: d.Days},
		FractionalYears:         calc.FractionalYears(),
		CompoundFrequencyMonths: calc.Mode().Frequency().Months(),
		Interest:                calc.Interest().Rounded().Amount(),
		TotalPayable:            calc.TotalPayable().Rounded().Amount(),
		Currency:                calc.Principal().Currency().Code(),
		Cached:                  cached,
		CreatedAt:               calc.CreatedAt(),
	}
}
