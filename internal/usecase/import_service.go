package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/playrift/esports-ingest/internal/domain/match"
	"github.com/playrift/esports-ingest/internal/platform/id"
	"github.com/playrift/esports-ingest/internal/platform/logging"
)

const (
	ImportKindTournaments = "tournaments"
	ImportKindTeams       = "teams"
	ImportKindMatches     = "matches"
	ImportKindPlayers     = "players"
)

// importKindOrder is the RunAll sequence. Tournaments come first so teams
// have a league to attach to, and teams precede the matches that link them.
var importKindOrder = []string{
	ImportKindTournaments,
	ImportKindTeams,
	ImportKindMatches,
	ImportKindPlayers,
}

// ExternalStreamLink is a broadcast link lifted from source markup.
type ExternalStreamLink struct {
	Platform string
	URL      string
}

// ExternalMatch is one match row as extracted from the source, before any
// reconciliation against stored entities.
type ExternalMatch struct {
	TeamAName      string
	TeamBName      string
	TeamALogoURL   string
	TeamBLogoURL   string
	TournamentName string
	ScheduledAt    time.Time
	Streams        []ExternalStreamLink
}

type ExternalTeam struct {
	Name    string
	LogoURL string
}

type ExternalTournament struct {
	Name    string
	LogoURL string
}

// MatchDataProvider fetches and extracts source pages. Implementations
// return an error only for systemic failures; malformed rows are dropped
// before the records come back.
type MatchDataProvider interface {
	FetchTournaments(ctx context.Context) ([]ExternalTournament, error)
	FetchTeams(ctx context.Context) ([]ExternalTeam, error)
	FetchMatches(ctx context.Context) ([]ExternalMatch, error)
}

// ImportResult summarizes one import run. It is reported to the caller
// and never persisted.
type ImportResult struct {
	Succeeded     bool
	Message       string
	TotalFound    int
	TotalImported int
}

// AggregateImportResult is the outcome of a full import sweep, one entry
// per kind.
type AggregateImportResult struct {
	Succeeded bool
	Message   string
	Results   map[string]ImportResult
}

// ImportService drives the ingestion pipeline end to end: fetch, extract,
// reconcile, derive, persist. Records are processed strictly one at a
// time because reconciliation creates entities that later records in the
// same run look up.
type ImportService struct {
	provider   MatchDataProvider
	reconciler *Reconciler
	matchRepo  match.Repository
	idGen      id.Generator
	logger     *logging.Logger
	now        func() time.Time
	roll       func() float64
}

func NewImportService(
	provider MatchDataProvider,
	reconciler *Reconciler,
	matchRepo match.Repository,
	idGen id.Generator,
	logger *logging.Logger,
) *ImportService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ImportService{
		provider:   provider,
		reconciler: reconciler,
		matchRepo:  matchRepo,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
		roll:       rand.Float64,
	}
}

// RunImport executes one import kind. Systemic failures come back as a
// failed ImportResult, not an error; the error return is reserved for an
// unknown kind.
func (s *ImportService) RunImport(ctx context.Context, kind string) (ImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RunImport")
	defer span.End()

	switch strings.ToLower(strings.TrimSpace(kind)) {
	case ImportKindTournaments:
		return s.importTournaments(ctx), nil
	case ImportKindTeams:
		return s.importTeams(ctx), nil
	case ImportKindMatches:
		return s.importMatches(ctx), nil
	case ImportKindPlayers:
		return s.importPlayers(ctx), nil
	default:
		return ImportResult{}, fmt.Errorf("%w: unknown import type %q", ErrInvalidInput, kind)
	}
}

// RunAll sweeps every import kind in dependency order. A failing stage is
// reported in its slot and never stops the stages after it.
func (s *ImportService) RunAll(ctx context.Context) AggregateImportResult {
	ctx, span := startUsecaseSpan(ctx, "usecase.RunAllImports")
	defer span.End()

	results := make(map[string]ImportResult, len(importKindOrder))
	totalImported := 0
	succeeded := true
	for _, kind := range importKindOrder {
		result, err := s.RunImport(ctx, kind)
		if err != nil {
			result = ImportResult{Message: err.Error()}
		}
		results[kind] = result
		totalImported += result.TotalImported
		if kind != ImportKindPlayers && !result.Succeeded {
			succeeded = false
		}
	}

	message := fmt.Sprintf("imported %d records", totalImported)
	if !succeeded {
		message = "one or more import stages failed"
	}

	return AggregateImportResult{
		Succeeded: succeeded,
		Message:   message,
		Results:   results,
	}
}

func (s *ImportService) importTournaments(ctx context.Context) ImportResult {
	items, err := s.provider.FetchTournaments(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "tournament import fetch failed", "error", err)
		return ImportResult{Message: fmt.Sprintf("fetch tournaments: %v", err)}
	}

	imported := 0
	for _, item := range items {
		_, created, err := s.reconciler.ResolveOrCreateLeague(ctx, item.Name, item.LogoURL)
		if err != nil {
			s.logger.WarnContext(ctx, "skip tournament record", "name", item.Name, "error", err)
			continue
		}
		if created {
			imported++
		}
	}

	return ImportResult{
		Succeeded:     true,
		Message:       fmt.Sprintf("imported %d of %d tournaments", imported, len(items)),
		TotalFound:    len(items),
		TotalImported: imported,
	}
}

func (s *ImportService) importTeams(ctx context.Context) ImportResult {
	items, err := s.provider.FetchTeams(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "team import fetch failed", "error", err)
		return ImportResult{Message: fmt.Sprintf("fetch teams: %v", err)}
	}

	imported := 0
	for _, item := range items {
		_, created, err := s.reconciler.ResolveOrCreateTeam(ctx, item.Name, item.LogoURL, "")
		if err != nil {
			s.logger.WarnContext(ctx, "skip team record", "name", item.Name, "error", err)
			continue
		}
		if created {
			imported++
		}
	}

	return ImportResult{
		Succeeded:     true,
		Message:       fmt.Sprintf("imported %d of %d teams", imported, len(items)),
		TotalFound:    len(items),
		TotalImported: imported,
	}
}

func (s *ImportService) importMatches(ctx context.Context) ImportResult {
	items, err := s.provider.FetchMatches(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "match import fetch failed", "error", err)
		return ImportResult{Message: fmt.Sprintf("fetch matches: %v", err)}
	}

	imported := 0
	for _, item := range items {
		created, err := s.importMatch(ctx, item)
		if err != nil {
			s.logger.WarnContext(ctx, "skip match record",
				"team_a", item.TeamAName,
				"team_b", item.TeamBName,
				"error", err,
			)
			continue
		}
		if created {
			imported++
		}
	}

	return ImportResult{
		Succeeded:     true,
		Message:       fmt.Sprintf("imported %d of %d matches", imported, len(items)),
		TotalFound:    len(items),
		TotalImported: imported,
	}
}

func (s *ImportService) importMatch(ctx context.Context, item ExternalMatch) (bool, error) {
	leagueID := ""
	if strings.TrimSpace(item.TournamentName) != "" {
		resolved, _, err := s.reconciler.ResolveOrCreateLeague(ctx, item.TournamentName, "")
		if err != nil {
			return false, err
		}
		leagueID = resolved.ID
	}

	teamA, _, err := s.reconciler.ResolveOrCreateTeam(ctx, item.TeamAName, item.TeamALogoURL, leagueID)
	if err != nil {
		return false, err
	}
	teamB, _, err := s.reconciler.ResolveOrCreateTeam(ctx, item.TeamBName, item.TeamBLogoURL, leagueID)
	if err != nil {
		return false, err
	}

	scheduledAt := item.ScheduledAt.UTC()
	exists, err := s.reconciler.MatchExists(ctx, teamA.ID, teamB.ID, scheduledAt)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	matchID, err := s.idGen.NewID()
	if err != nil {
		return false, fmt.Errorf("generate match id: %w", err)
	}
	if leagueID == "" {
		leagueID = teamA.LeagueID
	}

	streams := make([]match.StreamLink, 0, len(item.Streams))
	for _, stream := range item.Streams {
		streams = append(streams, match.StreamLink{
			Platform: stream.Platform,
			URL:      stream.URL,
		})
	}

	created := match.Match{
		ID:          matchID,
		LeagueID:    leagueID,
		TeamAID:     teamA.ID,
		TeamBID:     teamB.ID,
		ScheduledAt: scheduledAt,
		OddsA:       Odds(teamA.WinRate, s.roll()),
		OddsB:       Odds(teamB.WinRate, s.roll()),
		Status:      MatchStatus(scheduledAt, s.now().UTC()),
		StreamLinks: streams,
	}
	if err := s.matchRepo.Insert(ctx, created); err != nil {
		return false, fmt.Errorf("insert match: %w", err)
	}

	return true, nil
}

// importPlayers is a declared stub: the source has no stable player
// markup yet, so the pipeline reports the gap instead of failing.
func (s *ImportService) importPlayers(context.Context) ImportResult {
	return ImportResult{Message: "player import is not implemented"}
}
