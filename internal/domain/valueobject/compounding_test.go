package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/vaddi/internal/domain/valueobject"
)

func TestParseCompoundFrequency(t *testing.T) {
	tests := []struct {
		kind   string
		custom int
		months int
	}{
		{"annually", 0, 12},
		{"semiannually", 0, 6},
		{"custom", 3, 3},
		{"annually", 99, 12},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			f, err := valueobject.ParseCompoundFrequency(tt.kind, tt.custom)
			require.NoError(t, err)
			assert.Equal(t, tt.months, f.Months())
			assert.True(t, f.IsValid())
		})
	}
}

func TestParseCompoundFrequency_Invalid(t *testing.T) {
	_, err := valueobject.ParseCompoundFrequency("custom", 0)
	assert.ErrorIs(t, err, valueobject.ErrInvalidCompoundFrequency)

	_, err = valueobject.ParseCompoundFrequency("custom", -6)
	assert.ErrorIs(t, err, valueobject.ErrInvalidCompoundFrequency)

	_, err = valueobject.ParseCompoundFrequency("quarterly", 0)
	assert.ErrorIs(t, err, valueobject.ErrInvalidCompoundFrequency)
}

func TestCompoundFrequency_ZeroValueInvalid(t *testing.T) {
	var f valueobject.CompoundFrequency
	assert.False(t, f.IsValid())
	assert.Equal(t, 0, f.Months())
}

func TestCompoundFrequency_String(t *testing.T) {
	f, err := valueobject.CustomFrequency(4)
	require.NoError(t, err)
	assert.Equal(t, "every 4 months", f.String())
	assert.Equal(t, "annually", valueobject.Annually().String())
}
