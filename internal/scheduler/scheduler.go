package scheduler

import (
	"context"
	"time"

	"pitchmatch/internal/usecase"

	"go.uber.org/zap"
)

// Scheduler runs the batch recalculation on a fixed interval. Runs never
// overlap: a tick that arrives while a run is in flight is dropped by the
// ticker.
type Scheduler struct {
	batch    usecase.BatchUsecase
	interval time.Duration
	logger   *zap.Logger

	tick func(d time.Duration) (<-chan time.Time, func())
}

func New(batch usecase.BatchUsecase, interval time.Duration, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		batch:    batch,
		interval: interval,
		logger:   logger,
		tick: func(d time.Duration) (<-chan time.Time, func()) {
			t := time.NewTicker(d)
			return t.C, t.Stop
		},
	}
}

// Enabled reports whether Run would do anything.
func (s *Scheduler) Enabled() bool {
	return s != nil && s.batch != nil && s.interval > 0
}

// Run blocks until ctx is done.
func (s *Scheduler) Run(ctx context.Context) {
	if !s.Enabled() {
		return
	}

	c, stop := s.tick(s.interval)
	defer stop()

	s.logger.Info("match recalculation scheduled", zap.Duration("interval", s.interval))

	for {
		select {
		case <-ctx.Done():
			return
		case <-c:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	start := time.Now()
	report, err := s.batch.RecalculateAll(ctx)
	if err != nil {
		s.logger.Error("scheduled recalculation failed", zap.Error(err))
		return
	}
	s.logger.Info("scheduled recalculation finished",
		zap.Int("startups_processed", report.StartupsProcessed),
		zap.Int("successes", report.Successes),
		zap.Int("failures", report.Failures),
		zap.Duration("took", time.Since(start)),
	)
}
