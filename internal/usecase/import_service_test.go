package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/playrift/esports-ingest/internal/domain/league"
	"github.com/playrift/esports-ingest/internal/domain/match"
	"github.com/playrift/esports-ingest/internal/domain/team"
	"github.com/playrift/esports-ingest/internal/infrastructure/repository/memory"
	"github.com/playrift/esports-ingest/internal/platform/logging"
)

type stubProvider struct {
	tournaments []ExternalTournament
	teams       []ExternalTeam
	matches     []ExternalMatch

	tournamentsErr error
	teamsErr       error
	matchesErr     error
}

func (p *stubProvider) FetchTournaments(context.Context) ([]ExternalTournament, error) {
	return p.tournaments, p.tournamentsErr
}

func (p *stubProvider) FetchTeams(context.Context) ([]ExternalTeam, error) {
	return p.teams, p.teamsErr
}

func (p *stubProvider) FetchMatches(context.Context) ([]ExternalMatch, error) {
	return p.matches, p.matchesErr
}

func newTestImportService(provider MatchDataProvider, leagues []league.League, teams []team.Team) (*ImportService, *memory.MatchRepository) {
	leagueRepo := memory.NewLeagueRepository(leagues)
	teamRepo := memory.NewTeamRepository(teams)
	matchRepo := memory.NewMatchRepository(nil)
	idGen := &sequenceIDGenerator{prefix: "gen"}
	reconciler := NewReconciler(leagueRepo, teamRepo, matchRepo, idGen, logging.NewNop())

	service := NewImportService(provider, reconciler, matchRepo, idGen, logging.NewNop())
	service.now = func() time.Time { return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC) }
	service.roll = func() float64 { return 0.5 }
	return service, matchRepo
}

func TestImportService_RunImport_UnknownKind(t *testing.T) {
	service, _ := newTestImportService(&stubProvider{}, nil, nil)

	_, err := service.RunImport(t.Context(), "fixtures")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestImportService_ImportTournaments(t *testing.T) {
	provider := &stubProvider{
		tournaments: []ExternalTournament{
			{Name: "LCK", LogoURL: "https://liquipedia.net/lck.png"},
			{Name: "LEC"},
		},
	}
	service, _ := newTestImportService(provider, nil, nil)

	result, err := service.RunImport(t.Context(), ImportKindTournaments)
	if err != nil {
		t.Fatalf("run import: %v", err)
	}
	if !result.Succeeded {
		t.Fatalf("expected success, got message %q", result.Message)
	}
	if result.TotalFound != 2 || result.TotalImported != 2 {
		t.Fatalf("unexpected counts: found=%d imported=%d", result.TotalFound, result.TotalImported)
	}

	second, err := service.RunImport(t.Context(), ImportKindTournaments)
	if err != nil {
		t.Fatalf("run import again: %v", err)
	}
	if second.TotalImported != 0 {
		t.Fatalf("expected idempotent rerun, imported %d", second.TotalImported)
	}
}

func TestImportService_ImportTeams_CountsOnlyCreated(t *testing.T) {
	provider := &stubProvider{
		teams: []ExternalTeam{
			{Name: "T1"},
			{Name: "Cloud9"},
		},
	}
	service, _ := newTestImportService(provider, memory.SeedLeagues(), memory.SeedTeams())

	result, err := service.RunImport(t.Context(), ImportKindTeams)
	if err != nil {
		t.Fatalf("run import: %v", err)
	}
	if !result.Succeeded {
		t.Fatalf("expected success, got message %q", result.Message)
	}
	if result.TotalFound != 2 {
		t.Fatalf("unexpected total found: %d", result.TotalFound)
	}
	if result.TotalImported != 1 {
		t.Fatalf("expected only the unseen team to count, imported %d", result.TotalImported)
	}
}

func TestImportService_ImportMatches_EndToEnd(t *testing.T) {
	scheduledAt := time.Date(2026, 9, 5, 8, 0, 0, 0, time.UTC)
	provider := &stubProvider{
		matches: []ExternalMatch{
			{
				TeamAName:      "Team Alpha",
				TeamBName:      "Team Beta",
				TournamentName: "LCK Summer",
				ScheduledAt:    scheduledAt,
				Streams: []ExternalStreamLink{
					{Platform: "twitch.tv", URL: "https://twitch.tv/lck"},
				},
			},
		},
	}
	service, matchRepo := newTestImportService(provider, nil, nil)

	result, err := service.RunImport(t.Context(), ImportKindMatches)
	if err != nil {
		t.Fatalf("run import: %v", err)
	}
	if !result.Succeeded || result.TotalImported != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}

	exists, err := service.reconciler.MatchExists(t.Context(), "gen-2", "gen-3", scheduledAt)
	if err != nil {
		t.Fatalf("match exists: %v", err)
	}
	if !exists {
		t.Fatalf("expected imported match to be stored")
	}

	stored, found, err := matchRepo.FindByTeamsAndDate(t.Context(), "gen-2", "gen-3", scheduledAt)
	if err != nil || !found {
		t.Fatalf("load stored match: found=%v err=%v", found, err)
	}
	if stored.Status != match.StatusUpcoming {
		t.Fatalf("expected upcoming status, got %q", stored.Status)
	}
	// Both teams are new, so odds come from the default win rate with the
	// injected midpoint roll.
	if stored.OddsA != 2.0 || stored.OddsB != 2.0 {
		t.Fatalf("unexpected odds: a=%v b=%v", stored.OddsA, stored.OddsB)
	}
	if len(stored.StreamLinks) != 1 || stored.StreamLinks[0].Platform != "twitch.tv" {
		t.Fatalf("unexpected stream links: %+v", stored.StreamLinks)
	}
	if stored.LeagueID == "" {
		t.Fatalf("expected match to carry the tournament league")
	}

	second, err := service.RunImport(t.Context(), ImportKindMatches)
	if err != nil {
		t.Fatalf("run import again: %v", err)
	}
	if second.TotalImported != 0 {
		t.Fatalf("expected duplicate match to be skipped, imported %d", second.TotalImported)
	}
}

func TestImportService_ImportMatches_FetchFailure(t *testing.T) {
	provider := &stubProvider{matchesErr: errors.New("status=503")}
	service, _ := newTestImportService(provider, nil, nil)

	result, err := service.RunImport(t.Context(), ImportKindMatches)
	if err != nil {
		t.Fatalf("fetch failures must not surface as errors, got %v", err)
	}
	if result.Succeeded {
		t.Fatalf("expected failed result")
	}
	if result.Message == "" {
		t.Fatalf("expected a failure message")
	}
}

func TestImportService_ImportPlayers_DeclaredStub(t *testing.T) {
	service, _ := newTestImportService(&stubProvider{}, nil, nil)

	result, err := service.RunImport(t.Context(), ImportKindPlayers)
	if err != nil {
		t.Fatalf("run import: %v", err)
	}
	if result.Succeeded {
		t.Fatalf("player import stub must not report success")
	}
	if result.Message != "player import is not implemented" {
		t.Fatalf("unexpected message: %q", result.Message)
	}
}

func TestImportService_RunAll(t *testing.T) {
	provider := &stubProvider{
		tournaments: []ExternalTournament{{Name: "LCK"}},
		teams:       []ExternalTeam{{Name: "T1"}},
		matches: []ExternalMatch{
			{
				TeamAName:   "T1",
				TeamBName:   "Gen.G",
				ScheduledAt: time.Date(2026, 9, 5, 8, 0, 0, 0, time.UTC),
			},
		},
	}
	service, _ := newTestImportService(provider, nil, nil)

	aggregate := service.RunAll(t.Context())
	if !aggregate.Succeeded {
		t.Fatalf("expected sweep to succeed, got message %q", aggregate.Message)
	}
	if len(aggregate.Results) != 4 {
		t.Fatalf("expected one result per kind, got %d", len(aggregate.Results))
	}
	if aggregate.Results[ImportKindPlayers].Succeeded {
		t.Fatalf("player stage must stay a declared stub")
	}
	// 1 tournament + 1 team + 1 match; Gen.G is created during the match
	// stage and match imports only count inserted matches.
	total := 0
	for _, result := range aggregate.Results {
		total += result.TotalImported
	}
	if total != 3 {
		t.Fatalf("unexpected total imported: %d", total)
	}
}

func TestImportService_RunAll_FailingStageIsIsolated(t *testing.T) {
	provider := &stubProvider{
		tournaments:    []ExternalTournament{{Name: "LCK"}},
		teamsErr:       errors.New("status=500"),
		matches:        nil,
		tournamentsErr: nil,
	}
	service, _ := newTestImportService(provider, nil, nil)

	aggregate := service.RunAll(t.Context())
	if aggregate.Succeeded {
		t.Fatalf("expected sweep failure when a stage fails")
	}
	if !aggregate.Results[ImportKindTournaments].Succeeded {
		t.Fatalf("stages before the failure must still run")
	}
	if !aggregate.Results[ImportKindMatches].Succeeded {
		t.Fatalf("stages after the failure must still run")
	}
}
