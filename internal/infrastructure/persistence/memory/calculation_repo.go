// Package memory holds an in-process calculation store used when no database
// is configured.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/bibbank/vaddi/internal/domain/model"
)

// CalculationRepo implements port.CalculationRepository over a map.
type CalculationRepo struct {
	mu    sync.RWMutex
	items map[string]model.Calculation
}

// NewCalculationRepo creates an empty repository.
func NewCalculationRepo() *CalculationRepo {
	return &CalculationRepo{items: make(map[string]model.Calculation)}
}

func (r *CalculationRepo) Save(_ context.Context, calc model.Calculation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[calc.ID()]; ok {
		return nil
	}
	r.items[calc.ID()] = calc.ClearDomainEvents()
	return nil
}

func (r *CalculationRepo) FindByID(_ context.Context, id string) (model.Calculation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	calc, ok := r.items[id]
	if !ok {
		return model.Calculation{}, model.ErrCalculationNotFound
	}
	return calc, nil
}

func (r *CalculationRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, calc := range r.items {
		if calc.CreatedAt().Before(cutoff) {
			delete(r.items, id)
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored calculations.
func (r *CalculationRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
