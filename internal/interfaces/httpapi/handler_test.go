package httpapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/playrift/esports-ingest/internal/infrastructure/repository/memory"
	"github.com/playrift/esports-ingest/internal/platform/logging"
	"github.com/playrift/esports-ingest/internal/usecase"
)

type staticIDGenerator struct {
	id string
}

func (g staticIDGenerator) NewID() (string, error) {
	return g.id, nil
}

type stubProvider struct {
	tournaments []usecase.ExternalTournament
	teams       []usecase.ExternalTeam
	matches     []usecase.ExternalMatch
	err         error
}

func (p *stubProvider) FetchTournaments(context.Context) ([]usecase.ExternalTournament, error) {
	return p.tournaments, p.err
}

func (p *stubProvider) FetchTeams(context.Context) ([]usecase.ExternalTeam, error) {
	return p.teams, p.err
}

func (p *stubProvider) FetchMatches(context.Context) ([]usecase.ExternalMatch, error) {
	return p.matches, p.err
}

func newTestHandler(provider usecase.MatchDataProvider) *Handler {
	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagues())
	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	matchRepo := memory.NewMatchRepository(memory.SeedMatches())

	idGen := staticIDGenerator{id: "generated-id"}
	reconciler := usecase.NewReconciler(leagueRepo, teamRepo, matchRepo, idGen, logging.NewNop())
	importSvc := usecase.NewImportService(provider, reconciler, matchRepo, idGen, logging.NewNop())
	leagueSvc := usecase.NewLeagueService(leagueRepo, teamRepo, matchRepo)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(leagueSvc, importSvc, logger)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return body
}

func TestHandler_ListLeagues(t *testing.T) {
	handler := newTestHandler(&stubProvider{})

	req := httptest.NewRequest(http.MethodGet, "/v1/leagues", nil)
	rec := httptest.NewRecorder()
	handler.ListLeagues(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := decodeEnvelope(t, rec)
	data, ok := body["data"].([]any)
	if !ok {
		t.Fatalf("expected data array, got %T", body["data"])
	}
	if len(data) != 2 {
		t.Fatalf("expected 2 leagues, got %d", len(data))
	}
	first, _ := data[0].(map[string]any)
	if first["name"] != "LCK" || first["region"] != "Korea" {
		t.Fatalf("unexpected first league: %+v", first)
	}
}

func TestHandler_ListTeamsByLeague(t *testing.T) {
	handler := newTestHandler(&stubProvider{})
	router := NewRouter(handler, nil, []string{"*"}, "job-token")

	req := httptest.NewRequest(http.MethodGet, "/v1/leagues/"+memory.LeagueIDLCK+"/teams", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := decodeEnvelope(t, rec)
	data, _ := body["data"].([]any)
	if len(data) != 4 {
		t.Fatalf("expected 4 LCK teams, got %d", len(data))
	}
}

func TestHandler_ListTeamsByLeague_UnknownLeague(t *testing.T) {
	handler := newTestHandler(&stubProvider{})
	router := NewRouter(handler, nil, []string{"*"}, "job-token")

	req := httptest.NewRequest(http.MethodGet, "/v1/leagues/nope/teams", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestHandler_ListMatchesByLeague(t *testing.T) {
	handler := newTestHandler(&stubProvider{})
	router := NewRouter(handler, nil, []string{"*"}, "job-token")

	req := httptest.NewRequest(http.MethodGet, "/v1/leagues/"+memory.LeagueIDLCK+"/matches", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := decodeEnvelope(t, rec)
	data, _ := body["data"].([]any)
	if len(data) != 2 {
		t.Fatalf("expected 2 LCK matches, got %d", len(data))
	}
	first, _ := data[0].(map[string]any)
	if first["status"] != "upcoming" {
		t.Fatalf("unexpected match status: %v", first["status"])
	}
	if _, ok := first["scheduledAt"].(string); !ok {
		t.Fatalf("expected RFC3339 scheduledAt, got %T", first["scheduledAt"])
	}
}

func TestHandler_Healthz(t *testing.T) {
	handler := newTestHandler(&stubProvider{})
	router := NewRouter(handler, nil, []string{"*"}, "job-token")

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}
