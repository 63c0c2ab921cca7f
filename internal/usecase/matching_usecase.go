package usecase

import (
	"context"
	"errors"
	"time"

	"pitchmatch/internal/domain/investor"
	"pitchmatch/internal/domain/match"
	"pitchmatch/internal/domain/matching"
	"pitchmatch/internal/domain/startup"
	"pitchmatch/internal/infrastructure/cache"
	"pitchmatch/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RecalculationResult struct {
	StartupID      uuid.UUID
	MatchesCreated int
	Matches        []match.Match
}

type Preview struct {
	StartupID  uuid.UUID
	InvestorID uuid.UUID
	Result     matching.Result
}

// Recalculator rebuilds the full match set of one startup.
type Recalculator interface {
	Recalculate(ctx context.Context, startupID uuid.UUID) (RecalculationResult, error)
}

type MatchingUsecase interface {
	Recalculator
	Preview(ctx context.Context, startupID, investorID uuid.UUID) (Preview, error)
}

type Matching struct {
	startups  repository.StartupProfileRepository
	investors repository.InvestorProfileRepository
	matches   repository.MatchRepository
	engine    *matching.Engine
	cache     MatchCache
	notifier  MatchNotifier
	logger    *zap.Logger
}

func NewMatchingUsecase(
	startups repository.StartupProfileRepository,
	investors repository.InvestorProfileRepository,
	matches repository.MatchRepository,
	engine *matching.Engine,
	cache MatchCache,
	notifier MatchNotifier,
	logger *zap.Logger,
) *Matching {
	if engine == nil {
		engine = matching.NewEngine()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matching{
		startups:  startups,
		investors: investors,
		matches:   matches,
		engine:    engine,
		cache:     cache,
		notifier:  notifier,
		logger:    logger,
	}
}

// Weights are the factor weights scores are computed with.
func (u *Matching) Weights() matching.Weights {
	return u.engine.Weights()
}

// Recalculate scores the startup against every investor and replaces its
// stored matches with the new set. Statuses of replaced matches reset to
// pending.
func (u *Matching) Recalculate(ctx context.Context, startupID uuid.UUID) (RecalculationResult, error) {
	if startupID == uuid.Nil {
		return RecalculationResult{}, validationError("startup_id is required")
	}

	s, err := u.startups.FindByUserID(ctx, startupID)
	if errors.Is(err, repository.ErrNotFound) {
		return RecalculationResult{}, ErrStartupNotFound
	}
	if err != nil {
		return RecalculationResult{}, persistenceError("load startup", err)
	}

	investors, err := u.investors.ListAll(ctx)
	if err != nil {
		return RecalculationResult{}, persistenceError("list investors", err)
	}
	if len(investors) == 0 {
		return RecalculationResult{}, ErrNoInvestors
	}

	subject := scoringStartup(s)
	scores := make([]repository.Score, 0, len(investors))
	for _, inv := range investors {
		res := u.engine.Score(subject, scoringInvestor(inv))
		scores = append(scores, repository.Score{InvestorID: inv.UserID, MatchPercentage: res.MatchScore})
	}

	created, err := u.matches.ReplaceForStartup(ctx, startupID, scores)
	if err != nil {
		return RecalculationResult{}, persistenceError("replace matches", err)
	}

	u.invalidate(ctx, cache.MatchListPattern(cache.OwnerStartup, startupID), cache.AllInvestorListsPattern())
	if u.notifier != nil {
		investorIDs := make([]uuid.UUID, len(created))
		for i, m := range created {
			investorIDs[i] = m.InvestorID
		}
		u.notifier.NotifyMatchesUpdated(startupID, investorIDs, len(created))
	}

	u.logger.Info("matches recalculated",
		zap.String("startup_id", startupID.String()),
		zap.Int("matches_created", len(created)),
	)

	return RecalculationResult{StartupID: startupID, MatchesCreated: len(created), Matches: created}, nil
}

// Preview scores one pair without writing anything.
func (u *Matching) Preview(ctx context.Context, startupID, investorID uuid.UUID) (Preview, error) {
	if startupID == uuid.Nil || investorID == uuid.Nil {
		return Preview{}, validationError("startup_id and investor_id are required")
	}

	s, err := u.startups.FindByUserID(ctx, startupID)
	if errors.Is(err, repository.ErrNotFound) {
		return Preview{}, ErrStartupNotFound
	}
	if err != nil {
		return Preview{}, persistenceError("load startup", err)
	}

	inv, err := u.investors.FindByUserID(ctx, investorID)
	if errors.Is(err, repository.ErrNotFound) {
		return Preview{}, ErrInvestorNotFound
	}
	if err != nil {
		return Preview{}, persistenceError("load investor", err)
	}

	return Preview{
		StartupID:  startupID,
		InvestorID: investorID,
		Result:     u.engine.Score(scoringStartup(s), scoringInvestor(inv)),
	}, nil
}

// invalidate drops cached boards. A recalculation can touch every investor
// board, so callers pass the all-investors pattern as well.
func (u *Matching) invalidate(ctx context.Context, patterns ...string) {
	invalidateBoards(ctx, u.cache, u.logger, patterns...)
}

func invalidateBoards(ctx context.Context, c MatchCache, logger *zap.Logger, patterns ...string) {
	if c == nil {
		return
	}
	for _, p := range patterns {
		// A detached context keeps invalidation going when the caller's
		// request has already been cancelled.
		ictx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		if err := c.DeleteByPattern(ictx, p); err != nil {
			logger.Warn("match cache invalidation failed", zap.String("pattern", p), zap.Error(err))
		}
		cancel()
	}
}

func scoringStartup(p startup.Profile) matching.Startup {
	return matching.Startup{
		Industry:       p.Industry,
		Stage:          p.Stage,
		Headquarters:   p.Headquarters,
		FundingAsk:     p.FundingAsk,
		ReadinessScore: p.ReadinessScore,
	}
}

func scoringInvestor(p investor.Profile) matching.Investor {
	return matching.Investor{
		FocusSectors:   p.FocusSectors,
		FocusStages:    p.FocusStages,
		GeographyFocus: p.GeographyFocus,
		TicketSizeMin:  p.TicketSizeMin,
		TicketSizeMax:  p.TicketSizeMax,
	}
}
