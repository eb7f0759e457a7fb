// Package telemetry records calculator metrics through OpenTelemetry.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MeterName identifies the calculator instrumentation scope.
const MeterName = "github.com/bibbank/vaddi"

// MetricsRecorder implements port.MetricsRecorder with OpenTelemetry counters.
type MetricsRecorder struct {
	calculations metric.Int64Counter
	failures     metric.Int64Counter
}

// NewMetricsRecorder creates the calculator instruments on meter.
func NewMetricsRecorder(meter metric.Meter) (*MetricsRecorder, error) {
	calculations, err := meter.Int64Counter("vaddi_calculations",
		metric.WithDescription("Completed interest calculations."),
	)
	if err != nil {
		return nil, fmt.Errorf("create calculations counter: %w", err)
	}

	failures, err := meter.Int64Counter("vaddi_calculation_failures",
		metric.WithDescription("Rejected or failed interest calculations."),
	)
	if err != nil {
		return nil, fmt.Errorf("create failures counter: %w", err)
	}

	return &MetricsRecorder{calculations: calculations, failures: failures}, nil
}

func (r *MetricsRecorder) CalculationCompleted(ctx context.Context, interestType string, cached bool) {
	r.calculations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("interest_type", interestType),
		attribute.Bool("cached", cached),
	))
}

func (r *MetricsRecorder) CalculationFailed(ctx context.Context, reason string) {
	r.failures.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}
