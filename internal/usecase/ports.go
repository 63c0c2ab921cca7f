package usecase

import (
	"context"
	"time"

	"pitchmatch/internal/domain/investor"
	"pitchmatch/internal/domain/startup"

	"github.com/google/uuid"
)

// MatchCache is the read cache in front of match boards. Implementations
// report misses as (false, nil) and may drop writes silently.
type MatchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// MatchNotifier pushes realtime updates to the dashboards of a startup and
// the investors it was just matched with.
type MatchNotifier interface {
	NotifyMatchesUpdated(startupID uuid.UUID, investorIDs []uuid.UUID, matchesCreated int)
}

// DeckAnalyzer extracts profile fields from deck text.
type DeckAnalyzer interface {
	AnalyzeStartupDeck(ctx context.Context, fileName, content string) (startup.Analysis, error)
	AnalyzeInvestorDeck(ctx context.Context, fileName, content string) (investor.Analysis, error)
}
