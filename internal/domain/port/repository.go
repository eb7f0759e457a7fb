package port

import (
	"context"
	"time"

	"github.com/bibbank/vaddi/internal/domain/event"
	"github.com/bibbank/vaddi/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// CalculationRepository persists and retrieves completed calculations.
// FindByID returns model.ErrCalculationNotFound for unknown IDs.
type CalculationRepository interface {
	Save(ctx context.Context, calc model.Calculation) error
	FindByID(ctx context.Context, id string) (model.Calculation, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// Supporting ports
// ---------------------------------------------------------------------------

// CalculationCache remembers which calculation answered a given request so a
// resubmitted form returns the earlier result.
type CalculationCache interface {
	Lookup(ctx context.Context, key string) (calculationID string, found bool, err error)
	Remember(ctx context.Context, key, calculationID string) error
}

// MetricsRecorder counts calculation outcomes.
type MetricsRecorder interface {
	CalculationCompleted(ctx context.Context, interestType string, cached bool)
	CalculationFailed(ctx context.Context, reason string)
}
