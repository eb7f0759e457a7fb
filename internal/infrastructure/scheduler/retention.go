// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/bibbank/vaddi/internal/application/dto"
)

// Purger deletes calculation history. Implemented by usecase.PurgeHistoryUseCase.
type Purger interface {
	Execute(ctx context.Context, req dto.PurgeHistoryRequest) (dto.PurgeHistoryResponse, error)
}

// RetentionScheduler purges calculations older than the retention window on a
// cron schedule.
type RetentionScheduler struct {
	cronEngine *cron.Cron
	purger     Purger
	retention  time.Duration
	spec       string
	timeout    time.Duration
	now        func() time.Time
	logger     *slog.Logger
}

// NewRetentionScheduler creates a scheduler that keeps retentionDays of history.
// spec is a standard five-field cron expression evaluated in UTC.
func NewRetentionScheduler(purger Purger, spec string, retentionDays int, logger *slog.Logger) *RetentionScheduler {
	return &RetentionScheduler{
		cronEngine: cron.New(cron.WithLocation(time.UTC)),
		purger:     purger,
		retention:  time.Duration(retentionDays) * 24 * time.Hour,
		spec:       spec,
		timeout:    5 * time.Minute,
		now:        time.Now,
		logger:     logger,
	}
}

// Start registers the purge job and starts the cron engine.
func (s *RetentionScheduler) Start() error {
	if _, err := s.cronEngine.AddFunc(s.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		_ = s.RunOnce(ctx)
	}); err != nil {
		return fmt.Errorf("schedule retention job %q: %w", s.spec, err)
	}

	s.cronEngine.Start()
	s.logger.Info("retention scheduler started", "cron", s.spec, "retention", s.retention.String())
	return nil
}

// RunOnce purges everything created before now minus the retention window.
func (s *RetentionScheduler) RunOnce(ctx context.Context) error {
	cutoff := s.now().UTC().Add(-s.retention)
	resp, err := s.purger.Execute(ctx, dto.PurgeHistoryRequest{Cutoff: cutoff})
	if err != nil {
		s.logger.Error("retention purge failed", "cutoff", cutoff, "error", err)
		return err
	}
	s.logger.Debug("retention purge finished", "cutoff", cutoff, "deleted", resp.Deleted)
	return nil
}

// Stop stops the engine and waits for a running job to finish or ctx to end.
func (s *RetentionScheduler) Stop(ctx context.Context) {
	done := s.cronEngine.Stop()
	select {
	case <-done.Done():
		s.logger.Info("retention scheduler stopped")
	case <-ctx.Done():
		s.logger.Warn("retention scheduler stop timed out")
	}
}
