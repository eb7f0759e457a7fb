package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/vaddi/internal/application/dto"
	"github.com/bibbank/vaddi/internal/application/usecase"
	"github.com/bibbank/vaddi/internal/domain/event"
	"github.com/bibbank/vaddi/internal/domain/model"
	"github.com/bibbank/vaddi/internal/domain/service"
	"github.com/bibbank/vaddi/internal/domain/valueobject"
	"github.com/bibbank/vaddi/pkg/money"
)

type calculateFixture struct {
	repo      *mockCalculationRepository
	publisher *mockEventPublisher
	cache     *mockCalculationCache
	metrics   *mockMetricsRecorder
	uc        *usecase.CalculateInterestUseCase
}

func newCalculateFixture() *calculateFixture {
	f := &calculateFixture{
		repo:      &mockCalculationRepository{},
		publisher: &mockEventPublisher{},
		cache:     &mockCalculationCache{},
		metrics:   &mockMetricsRecorder{},
	}
	f.uc = usecase.NewCalculateInterestUseCase(
		f.repo, f.publisher, f.cache, f.metrics,
		service.NewDurationResolver(service.DayCountCalendarMonths),
		service.NewInterestEngine(),
		money.INR,
		testLogger(),
	)
	return f
}

func simplePeriodRequest() dto.CalculateInterestRequest {
	return dto.CalculateInterestRequest{
		InterestType: "simple",
		RateType:     "percent",
		Amount:       decimal.NewFromInt(1000),
		InterestRate: decimal.NewFromInt(12),
		DurationType: "period",
		Years:        1,
	}
}

func TestCalculateInterest_Execute(t *testing.T) {
	t.Run("simple interest over a period", func(t *testing.T) {
		f := newCalculateFixture()

		resp, err := f.uc.Execute(context.Background(), simplePeriodRequest())
		require.NoError(t, err)

		assert.NotEmpty(t, resp.ID)
		assert.True(t, resp.Interest.Equal(decimal.NewFromInt(120)), "interest %s", resp.Interest)
		assert.True(t, resp.TotalPayable.Equal(decimal.NewFromInt(1120)))
		assert.True(t, resp.AnnualRate.Equal(decimal.RequireFromString("0.12")))
		assert.Equal(t, dto.DurationBreakdown{Years: 1}, resp.Duration)
		assert.Equal(t, "INR", resp.Currency)
		assert.False(t, resp.Cached)

		require.Len(t, f.repo.saved, 1)
		require.Len(t, f.publisher.publishedEvents, 1)
		assert.Equal(t, event.TypeInterestCalculated, f.publisher.publishedEvents[0].EventType())
		assert.Equal(t, []string{"simple"}, f.metrics.completed)
	})

	t.Run("compound interest over a date range with rupee rate", func(t *testing.T) {
		f := newCalculateFixture()

		resp, err := f.uc.Execute(context.Background(), dto.CalculateInterestRequest{
			InterestType:      "compound",
			RateType:          "rupee",
			Amount:            decimal.NewFromInt(1000),
			InterestRate:      decimal.NewFromInt(1),
			DurationType:      "dates",
			StartDate:         "2023-01-01",
			EndDate:           "2025-01-01",
			CompoundFrequency: "annually",
		})
		require.NoError(t, err)

		// 1 per 100 per month is 12% a year: 1000 -> 1120 -> 1254.40.
		assert.True(t, resp.Interest.Equal(decimal.RequireFromString("254.4")), "interest %s", resp.Interest)
		assert.Equal(t, dto.DurationBreakdown{Years: 2}, resp.Duration)
		assert.Equal(t, 12, resp.CompoundFrequencyMonths)
		assert.Equal(t, "dates", resp.DurationType)
	})

	t.Run("custom compounding frequency", func(t *testing.T) {
		f := newCalculateFixture()

		resp, err := f.uc.Execute(context.Background(), dto.CalculateInterestRequest{
			InterestType:            "compound",
			RateType:                "percent",
			Amount:                  decimal.NewFromInt(1000),
			InterestRate:            decimal.NewFromInt(12),
			DurationType:            "period",
			Years:                   1,
			CompoundFrequency:       "custom",
			CompoundFrequencyMonths: 3,
		})
		require.NoError(t, err)
		assert.True(t, resp.Interest.Equal(decimal.RequireFromString("125.51")), "interest %s", resp.Interest)
		assert.Equal(t, 3, resp.CompoundFrequencyMonths)
	})

	t.Run("inverted date range yields zero interest", func(t *testing.T) {
		f := newCalculateFixture()

		req := simplePeriodRequest()
		req.DurationType = "dates"
		req.StartDate = "2024-01-01"
		req.EndDate = "2023-01-01"

		resp, err := f.uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.True(t, resp.Interest.IsZero())
		assert.Equal(t, dto.DurationBreakdown{}, resp.Duration)
	})

	t.Run("unknown duration type resolves to zero duration", func(t *testing.T) {
		f := newCalculateFixture()

		req := simplePeriodRequest()
		req.DurationType = ""

		resp, err := f.uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.True(t, resp.Interest.IsZero())
		assert.Equal(t, "", resp.DurationType)
	})

	t.Run("resubmission is served from cache", func(t *testing.T) {
		f := newCalculateFixture()

		first, err := f.uc.Execute(context.Background(), simplePeriodRequest())
		require.NoError(t, err)

		req := simplePeriodRequest()
		req.InterestRate = decimal.RequireFromString("12.00")
		second, err := f.uc.Execute(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.True(t, second.Cached)
		assert.Len(t, f.repo.saved, 1)
		assert.Equal(t, 1, f.metrics.cacheHits)
	})

	t.Run("cached entries do not cross day count conventions", func(t *testing.T) {
		f := newCalculateFixture()
		thirty360 := usecase.NewCalculateInterestUseCase(
			f.repo, f.publisher, f.cache, f.metrics,
			service.NewDurationResolver(service.DayCountThirty360),
			service.NewInterestEngine(),
			money.INR,
			testLogger(),
		)

		req := simplePeriodRequest()
		req.DurationType = "dates"
		req.StartDate = "2024-01-31"
		req.EndDate = "2024-03-01"

		calendar, err := f.uc.Execute(context.Background(), req)
		require.NoError(t, err)

		resp, err := thirty360.Execute(context.Background(), req)
		require.NoError(t, err)

		assert.False(t, resp.Cached)
		assert.NotEqual(t, calendar.ID, resp.ID)
		assert.Len(t, f.repo.saved, 2)
		assert.Len(t, f.cache.entries, 2)
	})

	t.Run("cache failure falls back to computing", func(t *testing.T) {
		f := newCalculateFixture()
		f.cache.lookupFunc = func(_ context.Context, _ string) (string, bool, error) {
			return "", false, errors.New("redis down")
		}

		resp, err := f.uc.Execute(context.Background(), simplePeriodRequest())
		require.NoError(t, err)
		assert.False(t, resp.Cached)
		assert.Len(t, f.repo.saved, 1)
	})

	t.Run("publish failure does not fail the calculation", func(t *testing.T) {
		f := newCalculateFixture()
		f.publisher.publishFunc = func(_ context.Context, _ ...event.DomainEvent) error {
			return errors.New("kafka unavailable")
		}

		_, err := f.uc.Execute(context.Background(), simplePeriodRequest())
		require.NoError(t, err)
	})

	t.Run("save failure is returned", func(t *testing.T) {
		f := newCalculateFixture()
		f.repo.saveFunc = func(_ context.Context, _ model.Calculation) error {
			return errors.New("db down")
		}

		_, err := f.uc.Execute(context.Background(), simplePeriodRequest())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "save calculation")
		assert.Equal(t, []string{"internal"}, f.metrics.failures)
	})
}

func TestCalculateInterest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*dto.CalculateInterestRequest)
		wantErr error
	}{
		{"zero amount", func(r *dto.CalculateInterestRequest) { r.Amount = decimal.Zero }, usecase.ErrInvalidInput},
		{"negative rate", func(r *dto.CalculateInterestRequest) { r.InterestRate = decimal.NewFromInt(-1) }, usecase.ErrInvalidInput},
		{"unknown rate type", func(r *dto.CalculateInterestRequest) { r.RateType = "bps" }, valueobject.ErrInvalidRateType},
		{"unknown interest type", func(r *dto.CalculateInterestRequest) { r.InterestType = "flat" }, valueobject.ErrInvalidInterestType},
		{"bad currency", func(r *dto.CalculateInterestRequest) { r.Currency = "rupees" }, usecase.ErrInvalidInput},
		{"compound without frequency", func(r *dto.CalculateInterestRequest) {
			r.InterestType = "compound"
		}, valueobject.ErrInvalidCompoundFrequency},
		{"custom frequency of zero months", func(r *dto.CalculateInterestRequest) {
			r.InterestType = "compound"
			r.CompoundFrequency = "custom"
		}, valueobject.ErrInvalidCompoundFrequency},
		{"malformed date", func(r *dto.CalculateInterestRequest) {
			r.DurationType = "dates"
			r.StartDate = "01/01/2023"
			r.EndDate = "2024-01-01"
		}, usecase.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCalculateFixture()
			req := simplePeriodRequest()
			tt.mutate(&req)

			_, err := f.uc.Execute(context.Background(), req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, usecase.ErrInvalidInput)
			assert.Empty(t, f.repo.saved)
			assert.Len(t, f.metrics.failures, 1)
		})
	}
}
