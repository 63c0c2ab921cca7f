package usecase

import (
	"context"
	"errors"

	"pitchmatch/internal/domain/match"
	"pitchmatch/internal/infrastructure/cache"
	"pitchmatch/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MatchBoardUsecase interface {
	ListForStartup(ctx context.Context, startupID uuid.UUID, f match.Filter) ([]match.View, error)
	ListForInvestor(ctx context.Context, investorID uuid.UUID, f match.Filter) ([]match.View, error)
	UpdateStatus(ctx context.Context, userID, matchID uuid.UUID, status match.Status) (match.Match, error)
}

type MatchBoard struct {
	matches repository.MatchRepository
	cache   MatchCache
	logger  *zap.Logger
}

func NewMatchBoardUsecase(matches repository.MatchRepository, cache MatchCache, logger *zap.Logger) *MatchBoard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MatchBoard{matches: matches, cache: cache, logger: logger}
}

func (u *MatchBoard) ListForStartup(ctx context.Context, startupID uuid.UUID, f match.Filter) ([]match.View, error) {
	return u.list(ctx, cache.OwnerStartup, startupID, f, u.matches.ListForStartup)
}

func (u *MatchBoard) ListForInvestor(ctx context.Context, investorID uuid.UUID, f match.Filter) ([]match.View, error) {
	return u.list(ctx, cache.OwnerInvestor, investorID, f, u.matches.ListForInvestor)
}

type listFunc func(ctx context.Context, owner uuid.UUID, f match.Filter) ([]match.View, error)

func (u *MatchBoard) list(ctx context.Context, owner string, id uuid.UUID, f match.Filter, load listFunc) ([]match.View, error) {
	if id == uuid.Nil {
		return nil, ErrUnauthorized
	}
	f = f.Normalized()
	key := cache.MatchListKey(owner, id, f)

	if u.cache != nil {
		var cached []match.View
		hit, err := u.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			u.logger.Debug("match cache read failed", zap.String("key", key), zap.Error(err))
		}
		if hit {
			return cached, nil
		}
	}

	items, err := load(ctx, id, f)
	if err != nil {
		return nil, persistenceError("list matches", err)
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, items, 0); err != nil {
			u.logger.Debug("match cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return items, nil
}

// UpdateStatus moves a match along its lifecycle on behalf of one of its
// participants. Repeating the current status returns the match unchanged.
func (u *MatchBoard) UpdateStatus(ctx context.Context, userID, matchID uuid.UUID, status match.Status) (match.Match, error) {
	if userID == uuid.Nil {
		return match.Match{}, ErrUnauthorized
	}
	if matchID == uuid.Nil {
		return match.Match{}, validationError("match_id is required")
	}
	status, ok := match.ParseStatus(string(status))
	if !ok {
		return match.Match{}, validationError("status must be pending, connected or rejected")
	}

	current, err := u.matches.FindByID(ctx, matchID)
	if errors.Is(err, repository.ErrNotFound) {
		return match.Match{}, ErrMatchNotFound
	}
	if err != nil {
		return match.Match{}, persistenceError("load match", err)
	}

	if !current.Involves(userID) {
		return match.Match{}, ErrForbidden
	}
	if !current.Status.CanTransition(status) {
		return match.Match{}, ErrInvalidStatusTransition
	}
	if current.Status == status {
		return current, nil
	}

	updated, err := u.matches.UpdateStatus(ctx, matchID, current.Status, status)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return match.Match{}, ErrMatchNotFound
	case errors.Is(err, repository.ErrStatusChanged):
		return match.Match{}, ErrInvalidStatusTransition
	case err != nil:
		return match.Match{}, persistenceError("update match status", err)
	}

	invalidateBoards(ctx, u.cache, u.logger,
		cache.MatchListPattern(cache.OwnerStartup, updated.StartupID),
		cache.MatchListPattern(cache.OwnerInvestor, updated.InvestorID),
	)

	u.logger.Info("match status updated",
		zap.String("match_id", matchID.String()),
		zap.String("from", string(current.Status)),
		zap.String("to", string(status)),
	)
	return updated, nil
}
