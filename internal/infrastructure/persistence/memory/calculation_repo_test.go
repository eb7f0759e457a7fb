package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/vaddi/internal/domain/model"
	"github.com/bibbank/vaddi/internal/domain/valueobject"
	"github.com/bibbank/vaddi/internal/infrastructure/persistence/memory"
	"github.com/bibbank/vaddi/pkg/money"
)

func newCalculation(t *testing.T, createdAt time.Time) model.Calculation {
	t.Helper()
	rate, err := valueobject.NewInterestRate(decimal.NewFromInt(12), valueobject.RateTypePercentPerAnnum)
	require.NoError(t, err)
	calc, err := model.NewCalculation(
		money.New(decimal.NewFromInt(1000), money.INR),
		rate,
		valueobject.SimpleMode(),
		valueobject.DurationKindPeriod,
		valueobject.NewDuration(1, 0, 0),
		decimal.NewFromInt(120),
		createdAt,
	)
	require.NoError(t, err)
	return calc
}

func TestCalculationRepo_SaveAndFind(t *testing.T) {
	repo := memory.NewCalculationRepo()
	calc := newCalculation(t, time.Now().UTC())

	require.NoError(t, repo.Save(context.Background(), calc))

	got, err := repo.FindByID(context.Background(), calc.ID())
	require.NoError(t, err)
	assert.Equal(t, calc.ID(), got.ID())
	assert.True(t, got.Interest().Amount().Equal(decimal.NewFromInt(120)))
	assert.Empty(t, got.DomainEvents())
}

func TestCalculationRepo_NotFound(t *testing.T) {
	_, err := memory.NewCalculationRepo().FindByID(context.Background(), "nope")
	assert.ErrorIs(t, err, model.ErrCalculationNotFound)
}

func TestCalculationRepo_DeleteOlderThan(t *testing.T) {
	repo := memory.NewCalculationRepo()
	cutoff := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	old := newCalculation(t, cutoff.Add(-time.Hour))
	recent := newCalculation(t, cutoff.Add(time.Hour))
	require.NoError(t, repo.Save(context.Background(), old))
	require.NoError(t, repo.Save(context.Background(), recent))

	n, err := repo.DeleteOlderThan(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, 1, repo.Len())

	_, err = repo.FindByID(context.Background(), old.ID())
	assert.ErrorIs(t, err, model.ErrCalculationNotFound)
}

func TestCalculationRepo_ConcurrentSave(t *testing.T) {
	repo := memory.NewCalculationRepo()
	now := time.Now().UTC()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.Save(context.Background(), newCalculation(t, now))
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, repo.Len())
}
