package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"pitchmatch/internal/domain/investor"
	"pitchmatch/internal/domain/startup"
	"pitchmatch/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	minDeckTextLength = 100
	maxDeckTextBytes  = 4_500_000
)

type DeckInput struct {
	FileName string
	Content  string
}

type DeckAnalysisUsecase interface {
	AnalyzeStartupDeck(ctx context.Context, userID uuid.UUID, in DeckInput) (startup.Profile, error)
	AnalyzeInvestorDeck(ctx context.Context, userID uuid.UUID, in DeckInput) (investor.Profile, error)
}

type DeckAnalysis struct {
	analyzer     DeckAnalyzer
	startups     repository.StartupProfileRepository
	investors    repository.InvestorProfileRepository
	recalculator Recalculator
	timeout      time.Duration
	logger       *zap.Logger

	now func() time.Time
}

func NewDeckAnalysisUsecase(
	analyzer DeckAnalyzer,
	startups repository.StartupProfileRepository,
	investors repository.InvestorProfileRepository,
	recalculator Recalculator,
	timeout time.Duration,
	logger *zap.Logger,
) *DeckAnalysis {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DeckAnalysis{
		analyzer:     analyzer,
		startups:     startups,
		investors:    investors,
		recalculator: recalculator,
		timeout:      timeout,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// AnalyzeStartupDeck extracts fields from the deck, merges them into the
// caller's profile and refreshes the startup's matches.
func (u *DeckAnalysis) AnalyzeStartupDeck(ctx context.Context, userID uuid.UUID, in DeckInput) (startup.Profile, error) {
	if err := u.check(userID, in); err != nil {
		return startup.Profile{}, err
	}

	actx, cancel := u.withTimeout(ctx)
	a, err := u.analyzer.AnalyzeStartupDeck(actx, in.FileName, in.Content)
	cancel()
	if err != nil {
		u.logger.Warn("startup deck analysis failed", zap.String("user_id", userID.String()), zap.Error(err))
		return startup.Profile{}, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}

	p, err := u.startups.FindByUserID(ctx, userID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		p = startup.Profile{UserID: userID}
	case err != nil:
		return startup.Profile{}, persistenceError("load startup", err)
	}

	saved, err := u.startups.Upsert(ctx, p.Merge(a, u.now()))
	if err != nil {
		return startup.Profile{}, persistenceError("save startup", err)
	}

	refreshMatches(ctx, u.recalculator, u.logger, userID)
	return saved, nil
}

func (u *DeckAnalysis) AnalyzeInvestorDeck(ctx context.Context, userID uuid.UUID, in DeckInput) (investor.Profile, error) {
	if err := u.check(userID, in); err != nil {
		return investor.Profile{}, err
	}

	actx, cancel := u.withTimeout(ctx)
	a, err := u.analyzer.AnalyzeInvestorDeck(actx, in.FileName, in.Content)
	cancel()
	if err != nil {
		u.logger.Warn("investor deck analysis failed", zap.String("user_id", userID.String()), zap.Error(err))
		return investor.Profile{}, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}

	p, err := u.investors.FindByUserID(ctx, userID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		p = investor.Profile{UserID: userID}
	case err != nil:
		return investor.Profile{}, persistenceError("load investor", err)
	}

	merged := p.Merge(a)
	if merged.TicketSizeMin != nil && merged.TicketSizeMax != nil && *merged.TicketSizeMin > *merged.TicketSizeMax {
		merged.TicketSizeMin, merged.TicketSizeMax = merged.TicketSizeMax, merged.TicketSizeMin
	}

	saved, err := u.investors.Upsert(ctx, merged)
	if err != nil {
		return investor.Profile{}, persistenceError("save investor", err)
	}
	return saved, nil
}

func (u *DeckAnalysis) check(userID uuid.UUID, in DeckInput) error {
	if userID == uuid.Nil {
		return ErrUnauthorized
	}
	if u.analyzer == nil {
		return fmt.Errorf("%w: deck analysis is not configured", ErrConfiguration)
	}
	if len(in.Content) > maxDeckTextBytes {
		return validationError("deck content exceeds 4.5MB")
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.Content)) < minDeckTextLength {
		return validationError("could not extract enough text from the deck")
	}
	return nil
}

func (u *DeckAnalysis) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if u.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, u.timeout)
}
