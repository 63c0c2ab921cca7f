package usecase

import (
	"context"
	"errors"
	"testing"

	"pitchmatch/internal/domain/investor"
	"pitchmatch/internal/domain/match"
	"pitchmatch/internal/domain/matching"
	"pitchmatch/internal/infrastructure/cache"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type matchingFixture struct {
	startups  *fakeStartupRepo
	investors *fakeInvestorRepo
	matches   *fakeMatchRepo
	cache     *fakeCache
	notifier  *fakeNotifier
	uc        *Matching
}

func newMatchingFixture(investors ...investor.Profile) (*matchingFixture, uuid.UUID) {
	s := seedStartup("SaaS", "Seed", "Austin, TX", "$500K", 85)
	f := &matchingFixture{
		startups:  newFakeStartupRepo(s),
		investors: &fakeInvestorRepo{items: investors},
		matches:   newFakeMatchRepo(),
		cache:     newFakeCache(),
		notifier:  &fakeNotifier{},
	}
	f.uc = NewMatchingUsecase(f.startups, f.investors, f.matches, nil, f.cache, f.notifier, zap.NewNop())
	return f, s.UserID
}

func TestMatching_Recalculate_Success(t *testing.T) {
	texas := seedInvestor([]string{"B2B SaaS"}, []string{"Seed"}, []string{"Texas"}, 250000, 750000)
	berlin := seedInvestor([]string{"FinTech"}, []string{"Series C"}, []string{"Berlin"}, 5e6, 2e7)
	f, startupID := newMatchingFixture(texas, berlin)

	res, err := f.uc.Recalculate(context.Background(), startupID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.MatchesCreated != 2 || len(res.Matches) != 2 {
		t.Fatalf("expected 2 matches, got %d (%d)", res.MatchesCreated, len(res.Matches))
	}

	byInvestor := map[uuid.UUID]match.Match{}
	for _, m := range res.Matches {
		if m.StartupID != startupID {
			t.Fatalf("match for wrong startup: %+v", m)
		}
		if m.Status != match.StatusPending {
			t.Fatalf("new matches must be pending, got %q", m.Status)
		}
		byInvestor[m.InvestorID] = m
	}
	if got := byInvestor[texas.UserID].MatchPercentage; got != 97 {
		t.Fatalf("expected 97 for texas investor, got %d", got)
	}
	s, _ := f.startups.FindByUserID(context.Background(), startupID)
	want := matching.Calculate(scoringStartup(s), scoringInvestor(berlin)).MatchScore
	if got := byInvestor[berlin.UserID].MatchPercentage; got != want {
		t.Fatalf("expected %d for berlin investor, got %d", want, got)
	}

	if f.notifier.events[startupID] != 2 {
		t.Fatalf("expected notification with 2 matches, got %v", f.notifier.events)
	}
	notified := map[uuid.UUID]bool{}
	for _, id := range f.notifier.recipients[startupID] {
		notified[id] = true
	}
	if len(notified) != 2 || !notified[texas.UserID] || !notified[berlin.UserID] {
		t.Fatalf("expected both matched investors to be notified, got %v", f.notifier.recipients[startupID])
	}
	wantPatterns := map[string]bool{
		cache.MatchListPattern(cache.OwnerStartup, startupID): false,
		cache.AllInvestorListsPattern():                       false,
	}
	for _, p := range f.cache.deleted {
		if _, ok := wantPatterns[p]; ok {
			wantPatterns[p] = true
		}
	}
	for p, seen := range wantPatterns {
		if !seen {
			t.Fatalf("expected cache pattern %q to be invalidated, got %v", p, f.cache.deleted)
		}
	}
}

func TestMatching_Recalculate_Idempotent(t *testing.T) {
	f, startupID := newMatchingFixture(
		seedInvestor([]string{"SaaS"}, []string{"Seed"}, []string{"US"}, 1e5, 1e6),
		seedInvestor([]string{"Gaming"}, []string{"Series B"}, []string{"Asia"}, 1e6, 5e6),
		seedInvestor(nil, nil, nil, 0, 0),
	)
	ctx := context.Background()

	if _, err := f.uc.Recalculate(ctx, startupID); err != nil {
		t.Fatalf("first run: %v", err)
	}
	first := f.matches.forStartup(startupID)

	if _, err := f.uc.Recalculate(ctx, startupID); err != nil {
		t.Fatalf("second run: %v", err)
	}
	second := f.matches.forStartup(startupID)

	if len(first) != 3 || len(second) != 3 {
		t.Fatalf("expected 3 rows after each run, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].InvestorID != second[i].InvestorID || first[i].MatchPercentage != second[i].MatchPercentage {
			t.Fatalf("row %d changed between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestMatching_Recalculate_ResetsStatus(t *testing.T) {
	inv := seedInvestor([]string{"SaaS"}, []string{"Seed"}, []string{"Texas"}, 1e5, 1e6)
	f, startupID := newMatchingFixture(inv)
	ctx := context.Background()

	res, err := f.uc.Recalculate(ctx, startupID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := f.matches.UpdateStatus(ctx, res.Matches[0].ID, match.StatusPending, match.StatusConnected); err != nil {
		t.Fatalf("update: %v", err)
	}

	if _, err := f.uc.Recalculate(ctx, startupID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	rows := f.matches.forStartup(startupID)
	if len(rows) != 1 || rows[0].Status != match.StatusPending {
		t.Fatalf("expected a single pending row after recalculation, got %+v", rows)
	}
}

func TestMatching_Recalculate_Errors(t *testing.T) {
	inv := seedInvestor([]string{"SaaS"}, []string{"Seed"}, []string{"US"}, 1e5, 1e6)

	t.Run("missing id", func(t *testing.T) {
		f, _ := newMatchingFixture(inv)
		_, err := f.uc.Recalculate(context.Background(), uuid.Nil)
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("unknown startup", func(t *testing.T) {
		f, _ := newMatchingFixture(inv)
		_, err := f.uc.Recalculate(context.Background(), uuid.New())
		if !errors.Is(err, ErrStartupNotFound) {
			t.Fatalf("expected ErrStartupNotFound, got %v", err)
		}
	})

	t.Run("no investors", func(t *testing.T) {
		f, id := newMatchingFixture()
		_, err := f.uc.Recalculate(context.Background(), id)
		if !errors.Is(err, ErrNoInvestors) {
			t.Fatalf("expected ErrNoInvestors, got %v", err)
		}
		if errors.Is(err, ErrStartupNotFound) || errors.Is(err, ErrPersistence) {
			t.Fatalf("no-investors must not be conflated with other errors: %v", err)
		}
	})

	t.Run("insert failure", func(t *testing.T) {
		f, id := newMatchingFixture(inv)
		f.matches.replaceErr = errStore
		_, err := f.uc.Recalculate(context.Background(), id)
		if !errors.Is(err, ErrPersistence) || !errors.Is(err, errStore) {
			t.Fatalf("expected wrapped persistence error, got %v", err)
		}
		if errors.Is(err, ErrNoInvestors) || errors.Is(err, ErrStartupNotFound) {
			t.Fatalf("persistence error must stay distinct: %v", err)
		}
		if len(f.notifier.events) != 0 {
			t.Fatalf("failed recalculation must not notify")
		}
	})

	t.Run("startup lookup failure", func(t *testing.T) {
		f, id := newMatchingFixture(inv)
		f.startups.findErr = errStore
		_, err := f.uc.Recalculate(context.Background(), id)
		if !errors.Is(err, ErrPersistence) {
			t.Fatalf("expected ErrPersistence, got %v", err)
		}
	})

	t.Run("investor listing failure", func(t *testing.T) {
		f, id := newMatchingFixture(inv)
		f.investors.listErr = errStore
		_, err := f.uc.Recalculate(context.Background(), id)
		if !errors.Is(err, ErrPersistence) {
			t.Fatalf("expected ErrPersistence, got %v", err)
		}
	})
}

func TestMatching_Preview(t *testing.T) {
	inv := seedInvestor([]string{"B2B SaaS"}, []string{"Seed"}, []string{"Texas"}, 250000, 750000)
	f, startupID := newMatchingFixture(inv)

	p, err := f.uc.Preview(context.Background(), startupID, inv.UserID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.Result.MatchScore != 97 || p.Result.Breakdown.Sector != 0.9 {
		t.Fatalf("unexpected preview: %+v", p.Result)
	}
	if len(f.matches.forStartup(startupID)) != 0 {
		t.Fatalf("preview must not persist matches")
	}

	if _, err := f.uc.Preview(context.Background(), startupID, uuid.New()); !errors.Is(err, ErrInvestorNotFound) {
		t.Fatalf("expected ErrInvestorNotFound, got %v", err)
	}
	if _, err := f.uc.Preview(context.Background(), uuid.Nil, inv.UserID); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
