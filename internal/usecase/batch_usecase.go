package usecase

import (
	"context"
	"time"

	"pitchmatch/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type BatchItem struct {
	StartupID      uuid.UUID
	Success        bool
	MatchesCreated int
	Error          string
}

type BatchReport struct {
	StartupsProcessed int
	Successes         int
	Failures          int
	Results           []BatchItem
}

type BatchUsecase interface {
	RecalculateAll(ctx context.Context) (BatchReport, error)
}

type Batch struct {
	startups     repository.StartupProfileRepository
	recalculator Recalculator
	workers      int
	timeout      time.Duration
	logger       *zap.Logger
}

// NewBatchUsecase runs recalculations with at most workers in flight. A
// positive timeout bounds the whole run.
func NewBatchUsecase(startups repository.StartupProfileRepository, recalculator Recalculator, workers int, timeout time.Duration, logger *zap.Logger) *Batch {
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Batch{
		startups:     startups,
		recalculator: recalculator,
		workers:      workers,
		timeout:      timeout,
		logger:       logger,
	}
}

// RecalculateAll refreshes every startup's matches. A failing startup is
// recorded in the report and never stops the others; only failing to list
// startups is returned as an error.
func (u *Batch) RecalculateAll(ctx context.Context) (BatchReport, error) {
	if u.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.timeout)
		defer cancel()
	}

	ids, err := u.startups.ListUserIDs(ctx)
	if err != nil {
		return BatchReport{}, persistenceError("list startups", err)
	}

	started := time.Now()
	results := make([]BatchItem, len(ids))

	var g errgroup.Group
	g.SetLimit(u.workers)
	for i, id := range ids {
		g.Go(func() error {
			results[i] = u.runOne(ctx, id)
			return nil
		})
	}
	_ = g.Wait()

	report := BatchReport{StartupsProcessed: len(results), Results: results}
	for _, r := range results {
		if r.Success {
			report.Successes++
		} else {
			report.Failures++
		}
	}

	u.logger.Info("batch recalculation finished",
		zap.Int("startups_processed", report.StartupsProcessed),
		zap.Int("successes", report.Successes),
		zap.Int("failures", report.Failures),
		zap.Duration("elapsed", time.Since(started)),
	)

	return report, nil
}

func (u *Batch) runOne(ctx context.Context, id uuid.UUID) BatchItem {
	if err := ctx.Err(); err != nil {
		u.logger.Warn("startup skipped", zap.String("startup_id", id.String()), zap.Error(err))
		return BatchItem{StartupID: id, Error: err.Error()}
	}

	res, err := u.recalculator.Recalculate(ctx, id)
	if err != nil {
		u.logger.Warn("startup recalculation failed", zap.String("startup_id", id.String()), zap.Error(err))
		return BatchItem{StartupID: id, Error: err.Error()}
	}

	u.logger.Debug("startup recalculated", zap.String("startup_id", id.String()), zap.Int("matches_created", res.MatchesCreated))
	return BatchItem{StartupID: id, Success: true, MatchesCreated: res.MatchesCreated}
}
