package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/bibbank/vaddi/internal/infrastructure/telemetry"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Sum[int64] {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]metricdata.Sum[int64]{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				out[m.Name] = sum
			}
		}
	}
	return out
}

func TestMetricsRecorder(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	rec, err := telemetry.NewMetricsRecorder(provider.Meter(telemetry.MeterName))
	require.NoError(t, err)

	ctx := context.Background()
	rec.CalculationCompleted(ctx, "simple", false)
	rec.CalculationCompleted(ctx, "simple", false)
	rec.CalculationCompleted(ctx, "compound", true)
	rec.CalculationFailed(ctx, "invalid_input")

	sums := collect(t, reader)

	calcs := sums["vaddi_calculations"]
	require.Len(t, calcs.DataPoints, 2)
	for _, dp := range calcs.DataPoints {
		v, _ := dp.Attributes.Value(attribute.Key("interest_type"))
		switch v.AsString() {
		case "simple":
			assert.Equal(t, int64(2), dp.Value)
		case "compound":
			assert.Equal(t, int64(1), dp.Value)
			cached, _ := dp.Attributes.Value(attribute.Key("cached"))
			assert.True(t, cached.AsBool())
		default:
			t.Fatalf("unexpected interest_type %q", v.AsString())
		}
	}

	failures := sums["vaddi_calculation_failures"]
	require.Len(t, failures.DataPoints, 1)
	assert.Equal(t, int64(1), failures.DataPoints[0].Value)
}
