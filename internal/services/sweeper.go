package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/planhive/planhive-api/internal/metrics"
	"github.com/planhive/planhive-api/internal/repository"
)

// PlanSweeper periodically hard-deletes cancelled plans once they are
// older than the configured retention window.
type PlanSweeper struct {
	planRepo  repository.PlanRepository
	retention time.Duration
	interval  time.Duration
	log       *zap.Logger
}

// NewPlanSweeper creates a new PlanSweeper. An interval of zero or less
// disables the sweep entirely.
func NewPlanSweeper(planRepo repository.PlanRepository, retention, interval time.Duration, log *zap.Logger) *PlanSweeper {
	return &PlanSweeper{
		planRepo:  planRepo,
		retention: retention,
		interval:  interval,
		log:       log,
	}
}

// Start runs the sweep loop in a background goroutine until the context
// is cancelled. Sweep failures are logged and the loop keeps going.
func (s *PlanSweeper) Start(ctx context.Context) {
	if s.interval <= 0 {
		s.log.Info("plan sweeper disabled")
		return
	}

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.log.Info("plan sweeper started",
			zap.Duration("interval", s.interval),
			zap.Duration("retention", s.retention),
		)

		for {
			select {
			case <-ctx.Done():
				s.log.Info("plan sweeper stopped")
				return
			case <-ticker.C:
				s.Sweep()
			}
		}
	}()
}

// Sweep deletes cancelled plans whose canceledAt is past the retention
// window, together with their participants and tasks.
func (s *PlanSweeper) Sweep() {
	cutoff := time.Now().Add(-s.retention)

	deleted, err := s.planRepo.DeleteExpiredCancelled(cutoff)
	if err != nil {
		s.log.Error("failed to sweep cancelled plans", zap.Error(err))
		return
	}

	if deleted > 0 {
		metrics.PlansSweptTotal.Add(float64(deleted))
		s.log.Info("deleted expired cancelled plans", zap.Int64("count", deleted))
	}
}
