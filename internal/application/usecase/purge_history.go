package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bibbank/vaddi/internal/application/dto"
	"github.com/bibbank/vaddi/internal/domain/event"
	"github.com/bibbank/vaddi/internal/domain/port"
)

// PurgeHistoryUseCase deletes calculations older than a cutoff.
type PurgeHistoryUseCase struct {
	repo      port.CalculationRepository
	publisher port.EventPublisher
	logger    *slog.Logger
}

// NewPurgeHistoryUseCase creates a new PurgeHistoryUseCase.
func NewPurgeHistoryUseCase(
	repo port.CalculationRepository,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *PurgeHistoryUseCase {
	return &PurgeHistoryUseCase{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// Execute removes old calculations and announces the purge when anything was
// deleted.
func (uc *PurgeHistoryUseCase) Execute(ctx context.Context, req dto.PurgeHistoryRequest) (dto.PurgeHistoryResponse, error) {
	if req.Cutoff.IsZero() {
		return dto.PurgeHistoryResponse{}, fmt.Errorf("%w: cutoff is required", ErrInvalidInput)
	}

	deleted, err := uc.repo.DeleteOlderThan(ctx, req.Cutoff)
	if err != nil {
		return dto.PurgeHistoryResponse{}, fmt.Errorf("delete old calculations: %w", err)
	}

	if deleted > 0 {
		if err := uc.publisher.Publish(ctx, event.NewHistoryPurged(req.Cutoff, deleted)); err != nil {
			uc.logger.Warn("failed to publish purge event", "error", err)
		}
	}

	uc.logger.Info("calculation history purged", "cutoff", req.Cutoff, "deleted", deleted)

	return dto.PurgeHistoryResponse{Cutoff: req.Cutoff, Deleted: deleted}, nil
}
