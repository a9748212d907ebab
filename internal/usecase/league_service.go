package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/playrift/esports-ingest/internal/domain/league"
	"github.com/playrift/esports-ingest/internal/domain/match"
	"github.com/playrift/esports-ingest/internal/domain/team"
)

type LeagueService struct {
	leagueRepo league.Repository
	teamRepo   team.Repository
	matchRepo  match.Repository
}

func NewLeagueService(leagueRepo league.Repository, teamRepo team.Repository, matchRepo match.Repository) *LeagueService {
	return &LeagueService{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		matchRepo:  matchRepo,
	}
}

func (s *LeagueService) ListLeagues(ctx context.Context) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ListLeagues")
	defer span.End()

	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}

	return leagues, nil
}

func (s *LeagueService) ListTeamsByLeague(ctx context.Context, leagueID string) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ListTeamsByLeague")
	defer span.End()

	leagueID, err := s.requireLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list teams by league: %w", err)
	}

	return teams, nil
}

func (s *LeagueService) ListMatchesByLeague(ctx context.Context, leagueID string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ListMatchesByLeague")
	defer span.End()

	leagueID, err := s.requireLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	matches, err := s.matchRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list matches by league: %w", err)
	}

	return matches, nil
}

func (s *LeagueService) requireLeague(ctx context.Context, leagueID string) (string, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return "", fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	_, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return "", fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return "", fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	return leagueID, nil
}
