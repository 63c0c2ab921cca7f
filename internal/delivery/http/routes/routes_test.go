package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pitchmatch/internal/delivery/http/handler"
	"pitchmatch/internal/delivery/http/middleware"
	v1 "pitchmatch/internal/delivery/http/routes/v1"
	"pitchmatch/internal/domain/investor"
	"pitchmatch/internal/domain/match"
	"pitchmatch/internal/domain/matching"
	"pitchmatch/internal/domain/startup"
	"pitchmatch/internal/pkg/jwt"
	"pitchmatch/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type fakeMatching struct {
	recalcCalls []uuid.UUID
	recalcErr   error
	result      usecase.RecalculationResult
	previewErr  error
}

func (f *fakeMatching) Recalculate(_ context.Context, id uuid.UUID) (usecase.RecalculationResult, error) {
	f.recalcCalls = append(f.recalcCalls, id)
	if f.recalcErr != nil {
		return usecase.RecalculationResult{}, f.recalcErr
	}
	res := f.result
	res.StartupID = id
	return res, nil
}

func (f *fakeMatching) Preview(_ context.Context, s, i uuid.UUID) (usecase.Preview, error) {
	if f.previewErr != nil {
		return usecase.Preview{}, f.previewErr
	}
	return usecase.Preview{
		StartupID:  s,
		InvestorID: i,
		Result: matching.Result{
			MatchScore: 97,
			Breakdown:  matching.Breakdown{Sector: 0.9, Stage: 1, Geography: 1, Readiness: 1, TicketSize: 1},
		},
	}, nil
}

type fakeBoard struct {
	lastOwner  uuid.UUID
	lastSide   string
	lastFilter match.Filter
	views      []match.View
	updateErr  error
}

func (f *fakeBoard) ListForStartup(_ context.Context, id uuid.UUID, fl match.Filter) ([]match.View, error) {
	f.lastOwner, f.lastSide, f.lastFilter = id, "startup", fl
	return f.views, nil
}

func (f *fakeBoard) ListForInvestor(_ context.Context, id uuid.UUID, fl match.Filter) ([]match.View, error) {
	f.lastOwner, f.lastSide, f.lastFilter = id, "investor", fl
	return f.views, nil
}

func (f *fakeBoard) UpdateStatus(_ context.Context, userID, matchID uuid.UUID, st match.Status) (match.Match, error) {
	if f.updateErr != nil {
		return match.Match{}, f.updateErr
	}
	return match.Match{ID: matchID, StartupID: userID, InvestorID: uuid.New(), MatchPercentage: 70, Status: st}, nil
}

type fakeBatch struct {
	calls  int
	report usecase.BatchReport
	err    error
}

func (f *fakeBatch) RecalculateAll(context.Context) (usecase.BatchReport, error) {
	f.calls++
	return f.report, f.err
}

type fakeProfiles struct {
	startups  map[uuid.UUID]startup.Profile
	investors map[uuid.UUID]investor.Profile
	saveErr   error
}

func (f *fakeProfiles) GetStartupProfile(_ context.Context, id uuid.UUID) (startup.Profile, error) {
	p, ok := f.startups[id]
	if !ok {
		return startup.Profile{}, usecase.ErrStartupNotFound
	}
	return p, nil
}

func (f *fakeProfiles) SaveStartupProfile(_ context.Context, id uuid.UUID, in usecase.StartupProfileInput) (startup.Profile, error) {
	if f.saveErr != nil {
		return startup.Profile{}, f.saveErr
	}
	p := startup.Profile{ID: uuid.New(), UserID: id, CompanyName: in.CompanyName, Industry: in.Industry, ReadinessScore: in.ReadinessScore}
	f.startups[id] = p
	return p, nil
}

func (f *fakeProfiles) GetInvestorProfile(_ context.Context, id uuid.UUID) (investor.Profile, error) {
	p, ok := f.investors[id]
	if !ok {
		return investor.Profile{}, usecase.ErrInvestorNotFound
	}
	return p, nil
}

func (f *fakeProfiles) SaveInvestorProfile(_ context.Context, id uuid.UUID, in usecase.InvestorProfileInput) (investor.Profile, error) {
	if f.saveErr != nil {
		return investor.Profile{}, f.saveErr
	}
	p := investor.Profile{ID: uuid.New(), UserID: id, OrganizationName: in.OrganizationName, FocusSectors: in.FocusSectors}
	f.investors[id] = p
	return p, nil
}

type fakeAnalysis struct {
	err error
}

func (f *fakeAnalysis) AnalyzeStartupDeck(_ context.Context, id uuid.UUID, in usecase.DeckInput) (startup.Profile, error) {
	if f.err != nil {
		return startup.Profile{}, f.err
	}
	name := in.FileName
	return startup.Profile{UserID: id, CompanyName: &name}, nil
}

func (f *fakeAnalysis) AnalyzeInvestorDeck(_ context.Context, id uuid.UUID, in usecase.DeckInput) (investor.Profile, error) {
	if f.err != nil {
		return investor.Profile{}, f.err
	}
	name := in.FileName
	return investor.Profile{UserID: id, OrganizationName: &name}, nil
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

type harness struct {
	app      *fiber.App
	jwt      *jwt.HMACService
	matching *fakeMatching
	board    *fakeBoard
	batch    *fakeBatch
	profiles *fakeProfiles
	analysis *fakeAnalysis
}

func newHarness(t *testing.T, cronSecret string, db, cache handler.Pinger) *harness {
	t.Helper()

	h := &harness{
		jwt:      jwt.NewHMACService("test-secret", "", time.Hour),
		matching: &fakeMatching{},
		board:    &fakeBoard{},
		batch:    &fakeBatch{},
		profiles: &fakeProfiles{startups: map[uuid.UUID]startup.Profile{}, investors: map[uuid.UUID]investor.Profile{}},
		analysis: &fakeAnalysis{},
	}

	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())

	NewRegistry(handler.NewHealthHandler(db, cache), v1.Handlers{
		Auth:     middleware.NewAuthMiddleware(h.jwt),
		Cron:     middleware.NewCronAuthMiddleware(cronSecret, nil),
		Match:    handler.NewMatchHandler(h.matching, h.board),
		Batch:    handler.NewBatchHandler(h.batch, nil),
		Startup:  handler.NewStartupHandler(h.profiles, h.board, h.analysis),
		Investor: handler.NewInvestorHandler(h.profiles, h.board, h.analysis),
	}).Register(app)

	h.app = app
	return h
}

func (h *harness) token(t *testing.T, id uuid.UUID, role jwt.Role) string {
	t.Helper()
	tok, err := h.jwt.GenerateAccessToken(id, role, "")
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return tok
}

func (h *harness) do(t *testing.T, method, path, bearer string, body any) (int, map[string]any) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := h.app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	out := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			t.Fatalf("decode %q: %v", raw, err)
		}
	}
	return resp.StatusCode, out
}

func TestRecalculateAll_Auth(t *testing.T) {
	tests := []struct {
		name       string
		secret     string
		bearer     string
		wantStatus int
		wantCalls  int
	}{
		{name: "secret unset is configuration error", secret: "", bearer: "whatever", wantStatus: 500},
		{name: "missing credential", secret: "cron", bearer: "", wantStatus: 401},
		{name: "wrong credential", secret: "cron", bearer: "nope", wantStatus: 401},
		{name: "valid", secret: "cron", bearer: "cron", wantStatus: 200, wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.secret, fakePinger{}, fakePinger{})
			status, body := h.do(t, http.MethodPost, "/api/v1/matches/recalculate-all", tt.bearer, nil)
			if status != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%v)", status, tt.wantStatus, body)
			}
			if h.batch.calls != tt.wantCalls {
				t.Fatalf("batch calls = %d, want %d", h.batch.calls, tt.wantCalls)
			}
		})
	}
}

func TestRecalculateAll_ReportsPartialFailure(t *testing.T) {
	h := newHarness(t, "cron", fakePinger{}, fakePinger{})
	ok, bad := uuid.New(), uuid.New()
	h.batch.report = usecase.BatchReport{
		StartupsProcessed: 2,
		Successes:         1,
		Failures:          1,
		Results: []usecase.BatchItem{
			{StartupID: ok, Success: true, MatchesCreated: 3},
			{StartupID: bad, Success: false, Error: "startup profile not found"},
		},
	}

	status, body := h.do(t, http.MethodPost, "/api/v1/matches/recalculate-all", "cron", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if body["success"] != true || body["startups_processed"] != float64(2) || body["successes"] != float64(1) || body["failures"] != float64(1) {
		t.Fatalf("unexpected summary: %v", body)
	}

	results, _ := body["results"].([]any)
	if len(results) != 2 {
		t.Fatalf("results = %v", body["results"])
	}
	first := results[0].(map[string]any)
	second := results[1].(map[string]any)
	if first["startup_id"] != ok.String() || first["matches_created"] != float64(3) {
		t.Fatalf("unexpected first item: %v", first)
	}
	if _, has := first["error"]; has {
		t.Fatalf("success item should omit error: %v", first)
	}
	if second["success"] != false || second["error"] != "startup profile not found" {
		t.Fatalf("unexpected failure item: %v", second)
	}
	if _, has := second["matches_created"]; has {
		t.Fatalf("failure item should omit matches_created: %v", second)
	}
}

func TestRecalculateAll_EnumerationFailure(t *testing.T) {
	h := newHarness(t, "cron", fakePinger{}, fakePinger{})
	h.batch.err = fmt.Errorf("%w: list startups: conn refused", usecase.ErrPersistence)

	status, body := h.do(t, http.MethodPost, "/api/v1/matches/recalculate-all", "cron", nil)
	if status != http.StatusInternalServerError {
		t.Fatalf("status = %d", status)
	}
	if body["message"] != "Failed to recalculate matches" {
		t.Fatalf("message = %v", body["message"])
	}
}

func TestCalculate(t *testing.T) {
	self := uuid.New()
	other := uuid.New()

	tests := []struct {
		name       string
		role       jwt.Role
		body       any
		recalcErr  error
		wantStatus int
		wantCalled bool
	}{
		{name: "missing startup id", role: jwt.RoleStartup, body: map[string]any{}, wantStatus: 400},
		{name: "blank startup id", role: jwt.RoleStartup, body: map[string]any{"startup_id": "  "}, wantStatus: 400},
		{name: "malformed startup id", role: jwt.RoleStartup, body: map[string]any{"startup_id": "abc"}, wantStatus: 400},
		{name: "startup cannot recalc others", role: jwt.RoleStartup, body: map[string]any{"startup_id": other.String()}, wantStatus: 403},
		{name: "investor cannot recalc", role: jwt.RoleInvestor, body: map[string]any{"startup_id": other.String()}, wantStatus: 403},
		{name: "admin recalcs any", role: jwt.RoleAdmin, body: map[string]any{"startup_id": other.String()}, wantStatus: 200, wantCalled: true},
		{name: "self", role: jwt.RoleStartup, body: map[string]any{"startup_id": self.String()}, wantStatus: 200, wantCalled: true},
		{name: "not found", role: jwt.RoleStartup, body: map[string]any{"startup_id": self.String()}, recalcErr: usecase.ErrStartupNotFound, wantStatus: 404, wantCalled: true},
		{name: "no investors", role: jwt.RoleStartup, body: map[string]any{"startup_id": self.String()}, recalcErr: usecase.ErrNoInvestors, wantStatus: 404, wantCalled: true},
		{name: "persistence", role: jwt.RoleStartup, body: map[string]any{"startup_id": self.String()}, recalcErr: fmt.Errorf("%w: insert: boom", usecase.ErrPersistence), wantStatus: 500, wantCalled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, "", fakePinger{}, fakePinger{})
			h.matching.recalcErr = tt.recalcErr
			h.matching.result = usecase.RecalculationResult{
				MatchesCreated: 1,
				Matches:        []match.Match{{ID: uuid.New(), InvestorID: uuid.New(), MatchPercentage: 88, Status: match.StatusPending}},
			}

			status, body := h.do(t, http.MethodPost, "/api/v1/matches/calculate", h.token(t, self, tt.role), tt.body)
			if status != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%v)", status, tt.wantStatus, body)
			}
			if called := len(h.matching.recalcCalls) > 0; called != tt.wantCalled {
				t.Fatalf("recalculate called = %v, want %v", called, tt.wantCalled)
			}
			if status == 200 {
				if body["success"] != true || body["matches_created"] != float64(1) {
					t.Fatalf("unexpected body: %v", body)
				}
				if ms, _ := body["matches"].([]any); len(ms) != 1 {
					t.Fatalf("matches = %v", body["matches"])
				}
			}
			if status == 500 && body["message"] != "internal server error" {
				t.Fatalf("persistence cause leaked: %v", body["message"])
			}
		})
	}
}

func TestCalculate_RequiresToken(t *testing.T) {
	h := newHarness(t, "", fakePinger{}, fakePinger{})
	status, _ := h.do(t, http.MethodPost, "/api/v1/matches/calculate", "", map[string]any{"startup_id": uuid.NewString()})
	if status != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", status)
	}
}

func TestPreview(t *testing.T) {
	h := newHarness(t, "", fakePinger{}, fakePinger{})
	self := uuid.New()
	inv := uuid.New()

	status, _ := h.do(t, http.MethodGet, "/api/v1/matches/preview?investor_id="+inv.String(), h.token(t, uuid.New(), jwt.RoleInvestor), nil)
	if status != http.StatusForbidden {
		t.Fatalf("investor preview status = %d, want 403", status)
	}

	status, _ = h.do(t, http.MethodGet, "/api/v1/matches/preview", h.token(t, self, jwt.RoleStartup), nil)
	if status != http.StatusBadRequest {
		t.Fatalf("missing investor_id status = %d, want 400", status)
	}

	status, body := h.do(t, http.MethodGet, "/api/v1/matches/preview?investor_id="+inv.String(), h.token(t, self, jwt.RoleStartup), nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d (%v)", status, body)
	}
	data := body["data"].(map[string]any)
	if data["match_score"] != float64(97) || data["startup_id"] != self.String() {
		t.Fatalf("unexpected preview: %v", data)
	}
	if b := data["breakdown"].(map[string]any); b["sector"] != 0.9 || b["ticket_size"] != float64(1) {
		t.Fatalf("unexpected breakdown: %v", b)
	}

	h.matching.previewErr = usecase.ErrInvestorNotFound
	status, body = h.do(t, http.MethodGet, "/api/v1/matches/preview?investor_id="+inv.String(), h.token(t, self, jwt.RoleStartup), nil)
	if status != http.StatusNotFound || body["message"] != "Investor profile not found" {
		t.Fatalf("got %d %v", status, body["message"])
	}
}

func TestUpdateStatus(t *testing.T) {
	self := uuid.New()
	matchID := uuid.New()

	tests := []struct {
		name       string
		path       string
		err        error
		wantStatus int
	}{
		{name: "bad match id", path: "/api/v1/matches/nope/status", wantStatus: 400},
		{name: "ok", path: "/api/v1/matches/" + matchID.String() + "/status", wantStatus: 200},
		{name: "invalid status", path: "/api/v1/matches/" + matchID.String() + "/status", err: fmt.Errorf("%w: unknown status", usecase.ErrValidation), wantStatus: 400},
		{name: "not participant", path: "/api/v1/matches/" + matchID.String() + "/status", err: usecase.ErrForbidden, wantStatus: 403},
		{name: "missing", path: "/api/v1/matches/" + matchID.String() + "/status", err: usecase.ErrMatchNotFound, wantStatus: 404},
		{name: "bad transition", path: "/api/v1/matches/" + matchID.String() + "/status", err: usecase.ErrInvalidStatusTransition, wantStatus: 409},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, "", fakePinger{}, fakePinger{})
			h.board.updateErr = tt.err

			status, body := h.do(t, http.MethodPatch, tt.path, h.token(t, self, jwt.RoleStartup), map[string]any{"status": "connected"})
			if status != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%v)", status, tt.wantStatus, body)
			}
			if status == 200 {
				data := body["data"].(map[string]any)
				if data["status"] != "connected" || data["id"] != matchID.String() {
					t.Fatalf("unexpected data: %v", data)
				}
			}
		})
	}
}

func TestStartupProfileRoutes(t *testing.T) {
	h := newHarness(t, "", fakePinger{}, fakePinger{})
	self := uuid.New()
	tok := h.token(t, self, jwt.RoleStartup)

	status, _ := h.do(t, http.MethodGet, "/api/v1/startups/me/profile", tok, nil)
	if status != http.StatusNotFound {
		t.Fatalf("get before save = %d, want 404", status)
	}

	status, body := h.do(t, http.MethodPut, "/api/v1/startups/me/profile", tok, map[string]any{
		"company_name":    "Acme",
		"industry":        "SaaS",
		"readiness_score": 72,
	})
	if status != http.StatusOK {
		t.Fatalf("save = %d (%v)", status, body)
	}

	status, body = h.do(t, http.MethodGet, "/api/v1/startups/me/profile", tok, nil)
	if status != http.StatusOK {
		t.Fatalf("get = %d", status)
	}
	data := body["data"].(map[string]any)
	if data["company_name"] != "Acme" || data["user_id"] != self.String() || data["readiness_score"] != float64(72) {
		t.Fatalf("unexpected profile: %v", data)
	}

	h.profiles.saveErr = fmt.Errorf("%w: readiness_score must be between 0 and 100", usecase.ErrValidation)
	status, body = h.do(t, http.MethodPut, "/api/v1/startups/me/profile", tok, map[string]any{"readiness_score": 140})
	if status != http.StatusBadRequest || body["message"] != "readiness_score must be between 0 and 100" {
		t.Fatalf("got %d %v", status, body["message"])
	}

	investorTok := h.token(t, uuid.New(), jwt.RoleInvestor)
	if status, _ := h.do(t, http.MethodGet, "/api/v1/startups/me/profile", investorTok, nil); status != http.StatusForbidden {
		t.Fatalf("investor on startup route = %d, want 403", status)
	}
}

func TestInvestorProfileRoutes(t *testing.T) {
	h := newHarness(t, "", fakePinger{}, fakePinger{})
	self := uuid.New()
	tok := h.token(t, self, jwt.RoleInvestor)

	status, body := h.do(t, http.MethodPut, "/api/v1/investors/me/profile", tok, map[string]any{
		"organization_name": "Peak Ventures",
		"focus_sectors":     []string{"SaaS"},
	})
	if status != http.StatusOK {
		t.Fatalf("save = %d (%v)", status, body)
	}
	data := body["data"].(map[string]any)
	if data["organization_name"] != "Peak Ventures" {
		t.Fatalf("unexpected profile: %v", data)
	}
	if stages, ok := data["focus_stages"].([]any); !ok || len(stages) != 0 {
		t.Fatalf("focus_stages should render as empty list, got %v", data["focus_stages"])
	}

	startupTok := h.token(t, uuid.New(), jwt.RoleStartup)
	if status, _ := h.do(t, http.MethodGet, "/api/v1/investors/me/profile", startupTok, nil); status != http.StatusForbidden {
		t.Fatalf("startup on investor route = %d, want 403", status)
	}
}

func TestBoardRoutes(t *testing.T) {
	h := newHarness(t, "", fakePinger{}, fakePinger{})
	self := uuid.New()
	name := "Peak Ventures"
	h.board.views = []match.View{{
		Match:           match.Match{ID: uuid.New(), StartupID: self, InvestorID: uuid.New(), MatchPercentage: 91, Status: match.StatusPending},
		CounterpartName: &name,
	}}

	status, body := h.do(t, http.MethodGet, "/api/v1/startups/me/matches?status=PENDING&min_score=60&limit=500", h.token(t, self, jwt.RoleStartup), nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d (%v)", status, body)
	}
	if h.board.lastSide != "startup" || h.board.lastOwner != self {
		t.Fatalf("unexpected board call: %s %s", h.board.lastSide, h.board.lastOwner)
	}
	f := h.board.lastFilter
	if f.Status == nil || *f.Status != match.StatusPending || f.MinScore != 60 || f.Limit != match.MaxListLimit {
		t.Fatalf("unexpected filter: %+v", f)
	}
	items := body["data"].([]any)
	if len(items) != 1 || items[0].(map[string]any)["counterpart_name"] != name {
		t.Fatalf("unexpected items: %v", items)
	}

	investorID := uuid.New()
	status, _ = h.do(t, http.MethodGet, "/api/v1/investors/me/matches", h.token(t, investorID, jwt.RoleInvestor), nil)
	if status != http.StatusOK || h.board.lastSide != "investor" || h.board.lastFilter.Limit != match.DefaultListLimit {
		t.Fatalf("investor board: status=%d side=%s filter=%+v", status, h.board.lastSide, h.board.lastFilter)
	}

	for _, q := range []string{"status=archived", "min_score=abc", "min_score=101", "limit=0"} {
		status, _ := h.do(t, http.MethodGet, "/api/v1/startups/me/matches?"+q, h.token(t, self, jwt.RoleStartup), nil)
		if status != http.StatusBadRequest {
			t.Fatalf("query %q status = %d, want 400", q, status)
		}
	}
}

func TestAnalysisRoutes(t *testing.T) {
	h := newHarness(t, "", fakePinger{}, fakePinger{})
	tok := h.token(t, uuid.New(), jwt.RoleStartup)

	status, body := h.do(t, http.MethodPost, "/api/v1/startups/me/analysis", tok, map[string]any{"file_name": "deck.pdf", "content": "text"})
	if status != http.StatusOK || body["data"].(map[string]any)["company_name"] != "deck.pdf" {
		t.Fatalf("got %d %v", status, body)
	}

	tests := []struct {
		err        error
		wantStatus int
		wantMsg    string
	}{
		{err: usecase.ErrConfiguration, wantStatus: 500, wantMsg: "Server configuration error"},
		{err: fmt.Errorf("%w: %w", usecase.ErrAnalysisFailed, errors.New("model timeout")), wantStatus: 500, wantMsg: "Deck analysis failed"},
		{err: fmt.Errorf("%w: deck text is too short", usecase.ErrValidation), wantStatus: 400, wantMsg: "deck text is too short"},
	}
	for _, tt := range tests {
		h.analysis.err = tt.err
		status, body := h.do(t, http.MethodPost, "/api/v1/investors/me/analysis", h.token(t, uuid.New(), jwt.RoleInvestor), map[string]any{"content": "x"})
		if status != tt.wantStatus || body["message"] != tt.wantMsg {
			t.Fatalf("err %v: got %d %v", tt.err, status, body["message"])
		}
	}
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		db, cache  handler.Pinger
		wantStatus int
		want       string
	}{
		{name: "all up", db: fakePinger{}, cache: fakePinger{}, wantStatus: 200, want: "ok"},
		{name: "cache down", db: fakePinger{}, cache: fakePinger{err: errors.New("down")}, wantStatus: 200, want: "degraded"},
		{name: "db down", db: fakePinger{err: errors.New("down")}, cache: fakePinger{}, wantStatus: 503, want: "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, "", tt.db, tt.cache)
			status, body := h.do(t, http.MethodGet, "/health", "", nil)
			if status != tt.wantStatus {
				t.Fatalf("status = %d, want %d", status, tt.wantStatus)
			}
			if got := body["data"].(map[string]any)["status"]; got != tt.want {
				t.Fatalf("health status = %v, want %s", got, tt.want)
			}
		})
	}
}
