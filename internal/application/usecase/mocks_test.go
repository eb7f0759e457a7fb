package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/bibbank/vaddi/internal/domain/event"
	"github.com/bibbank/vaddi/internal/domain/model"
)

// --- Mock implementations ---

type mockCalculationRepository struct {
	saveFunc            func(ctx context.Context, calc model.Calculation) error
	findByIDFunc        func(ctx context.Context, id string) (model.Calculation, error)
	deleteOlderThanFunc func(ctx context.Context, cutoff time.Time) (int64, error)
	saved               []model.Calculation
}

func (m *mockCalculationRepository) Save(ctx context.Context, calc model.Calculation) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, calc)
	}
	m.saved = append(m.saved, calc)
	return nil
}

func (m *mockCalculationRepository) FindByID(ctx context.Context, id string) (model.Calculation, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	for _, c := range m.saved {
		if c.ID() == id {
			return c, nil
		}
	}
	return model.Calculation{}, model.ErrCalculationNotFound
}

func (m *mockCalculationRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.deleteOlderThanFunc != nil {
		return m.deleteOlderThanFunc(ctx, cutoff)
	}
	return 0, nil
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

type mockCalculationCache struct {
	lookupFunc func(ctx context.Context, key string) (string, bool, error)
	entries    map[string]string
}

func (m *mockCalculationCache) Lookup(ctx context.Context, key string) (string, bool, error) {
	if m.lookupFunc != nil {
		return m.lookupFunc(ctx, key)
	}
	id, ok := m.entries[key]
	return id, ok, nil
}

func (m *mockCalculationCache) Remember(_ context.Context, key, calculationID string) error {
	if m.entries == nil {
		m.entries = make(map[string]string)
	}
	m.entries[key] = calculationID
	return nil
}

type mockMetricsRecorder struct {
	mu        sync.Mutex
	completed []string
	cacheHits int
	failures  []string
}

func (m *mockMetricsRecorder) CalculationCompleted(_ context.Context, interestType string, cached bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.completed = append(m.completed, interestType)
	if cached {
		m.cacheHits++
	}
}

func (m *mockMetricsRecorder) CalculationFailed(_ context.Context, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = append(m.failures, reason)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
