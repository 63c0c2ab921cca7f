package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"pitchmatch/internal/domain/investor"
	"pitchmatch/internal/domain/match"
	"pitchmatch/internal/domain/startup"
	"pitchmatch/internal/repository"

	"github.com/google/uuid"
)

var errStore = errors.New("connection reset by peer")

type fakeStartupRepo struct {
	mu        sync.Mutex
	profiles  map[uuid.UUID]startup.Profile
	ids       []uuid.UUID
	findErr   error
	listErr   error
	upsertErr error
	upserts   int
}

func newFakeStartupRepo(profiles ...startup.Profile) *fakeStartupRepo {
	r := &fakeStartupRepo{profiles: map[uuid.UUID]startup.Profile{}}
	for _, p := range profiles {
		r.profiles[p.UserID] = p
		r.ids = append(r.ids, p.UserID)
	}
	return r
}

func (r *fakeStartupRepo) FindByUserID(_ context.Context, id uuid.UUID) (startup.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return startup.Profile{}, r.findErr
	}
	p, ok := r.profiles[id]
	if !ok {
		return startup.Profile{}, repository.ErrNotFound
	}
	return p, nil
}

func (r *fakeStartupRepo) ListUserIDs(context.Context) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]uuid.UUID(nil), r.ids...), nil
}

func (r *fakeStartupRepo) Upsert(_ context.Context, p startup.Profile) (startup.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.upsertErr != nil {
		return startup.Profile{}, r.upsertErr
	}
	r.upserts++
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if _, ok := r.profiles[p.UserID]; !ok {
		r.ids = append(r.ids, p.UserID)
	}
	r.profiles[p.UserID] = p
	return p, nil
}

type fakeInvestorRepo struct {
	mu        sync.Mutex
	items     []investor.Profile
	listErr   error
	upsertErr error
}

func (r *fakeInvestorRepo) ListAll(context.Context) ([]investor.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]investor.Profile(nil), r.items...), nil
}

func (r *fakeInvestorRepo) FindByUserID(_ context.Context, id uuid.UUID) (investor.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.items {
		if p.UserID == id {
			return p, nil
		}
	}
	return investor.Profile{}, repository.ErrNotFound
}

func (r *fakeInvestorRepo) Upsert(_ context.Context, p investor.Profile) (investor.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.upsertErr != nil {
		return investor.Profile{}, r.upsertErr
	}
	for i := range r.items {
		if r.items[i].UserID == p.UserID {
			r.items[i] = p
			return p, nil
		}
	}
	r.items = append(r.items, p)
	return p, nil
}

// fakeMatchRepo keeps rows in memory with the same replace semantics as the
// Postgres repository.
type fakeMatchRepo struct {
	mu          sync.Mutex
	rows        map[uuid.UUID]match.Match
	replaceErr  error
	listCalls   int
	updateCalls int

	// beforeUpdate runs just before UpdateStatus compares statuses, standing
	// in for a writer that commits in between.
	beforeUpdate func(rows map[uuid.UUID]match.Match)
}

func newFakeMatchRepo(rows ...match.Match) *fakeMatchRepo {
	r := &fakeMatchRepo{rows: map[uuid.UUID]match.Match{}}
	for _, m := range rows {
		r.rows[m.ID] = m
	}
	return r
}

func (r *fakeMatchRepo) ReplaceForStartup(_ context.Context, startupID uuid.UUID, scores []repository.Score) ([]match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.replaceErr != nil {
		return nil, r.replaceErr
	}
	for id, m := range r.rows {
		if m.StartupID == startupID {
			delete(r.rows, id)
		}
	}
	now := time.Now().UTC()
	out := make([]match.Match, 0, len(scores))
	for _, s := range scores {
		m := match.Match{
			ID:              uuid.New(),
			StartupID:       startupID,
			InvestorID:      s.InvestorID,
			MatchPercentage: s.MatchPercentage,
			Status:          match.StatusPending,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		r.rows[m.ID] = m
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeMatchRepo) forStartup(startupID uuid.UUID) []match.Match {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []match.Match
	for _, m := range r.rows {
		if m.StartupID == startupID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InvestorID.String() < out[j].InvestorID.String() })
	return out
}

func (r *fakeMatchRepo) ListForStartup(_ context.Context, id uuid.UUID, f match.Filter) ([]match.View, error) {
	return r.list(func(m match.Match) bool { return m.StartupID == id }, f)
}

func (r *fakeMatchRepo) ListForInvestor(_ context.Context, id uuid.UUID, f match.Filter) ([]match.View, error) {
	return r.list(func(m match.Match) bool { return m.InvestorID == id }, f)
}

func (r *fakeMatchRepo) list(keep func(match.Match) bool, f match.Filter) ([]match.View, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	out := make([]match.View, 0)
	for _, m := range r.rows {
		if !keep(m) || m.MatchPercentage < f.MinScore {
			continue
		}
		if f.Status != nil && m.Status != *f.Status {
			continue
		}
		out = append(out, match.View{Match: m})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MatchPercentage > out[j].MatchPercentage })
	if len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *fakeMatchRepo) FindByID(_ context.Context, id uuid.UUID) (match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.rows[id]
	if !ok {
		return match.Match{}, repository.ErrNotFound
	}
	return m, nil
}

func (r *fakeMatchRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to match.Status) (match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateCalls++
	if r.beforeUpdate != nil {
		r.beforeUpdate(r.rows)
	}
	m, ok := r.rows[id]
	if !ok {
		return match.Match{}, repository.ErrNotFound
	}
	if m.Status != from {
		return match.Match{}, repository.ErrStatusChanged
	}
	m.Status = to
	m.UpdatedAt = time.Now().UTC()
	r.rows[id] = m
	return m, nil
}

type fakeCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (c *fakeCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func (c *fakeCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	return nil
}

type fakeNotifier struct {
	mu         sync.Mutex
	events     map[uuid.UUID]int
	recipients map[uuid.UUID][]uuid.UUID
}

func (n *fakeNotifier) NotifyMatchesUpdated(startupID uuid.UUID, investorIDs []uuid.UUID, created int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.events == nil {
		n.events = map[uuid.UUID]int{}
		n.recipients = map[uuid.UUID][]uuid.UUID{}
	}
	n.events[startupID] = created
	n.recipients[startupID] = investorIDs
}

type recordingRecalculator struct {
	mu    sync.Mutex
	calls []uuid.UUID
	err   error
}

func (r *recordingRecalculator) Recalculate(_ context.Context, id uuid.UUID) (RecalculationResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, id)
	if r.err != nil {
		return RecalculationResult{}, r.err
	}
	return RecalculationResult{StartupID: id}, nil
}

func strPtr(s string) *string { return &s }
func floatPtr(f float64) *float64 { return &f }

func seedStartup(industry, stage, hq, ask string, readiness float64) startup.Profile {
	return startup.Profile{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		Industry:       strPtr(industry),
		Stage:          strPtr(stage),
		Headquarters:   strPtr(hq),
		FundingAsk:     strPtr(ask),
		ReadinessScore: floatPtr(readiness),
	}
}

func seedInvestor(sectors, stages, geos []string, lo, hi float64) investor.Profile {
	return investor.Profile{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		FocusSectors:   sectors,
		FocusStages:    stages,
		GeographyFocus: geos,
		TicketSizeMin:  floatPtr(lo),
		TicketSizeMax:  floatPtr(hi),
	}
}
