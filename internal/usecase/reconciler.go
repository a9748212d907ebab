package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/playrift/esports-ingest/internal/domain/league"
	"github.com/playrift/esports-ingest/internal/domain/match"
	"github.com/playrift/esports-ingest/internal/domain/team"
	"github.com/playrift/esports-ingest/internal/platform/id"
	"github.com/playrift/esports-ingest/internal/platform/logging"
)

// Reconciler maps extracted names onto stored entities, creating the
// entity on first encounter. Name matching is case-insensitive exact
// match on the trimmed form; repositories own that comparison.
type Reconciler struct {
	leagueRepo league.Repository
	teamRepo   team.Repository
	matchRepo  match.Repository
	idGen      id.Generator
	logger     *logging.Logger
}

func NewReconciler(
	leagueRepo league.Repository,
	teamRepo team.Repository,
	matchRepo match.Repository,
	idGen id.Generator,
	logger *logging.Logger,
) *Reconciler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Reconciler{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		matchRepo:  matchRepo,
		idGen:      idGen,
		logger:     logger,
	}
}

// ResolveOrCreateLeague returns the stored league for name, creating it
// with a derived region when absent. The second return reports creation.
func (r *Reconciler) ResolveOrCreateLeague(ctx context.Context, name, logoURL string) (league.League, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return league.League{}, false, fmt.Errorf("%w: league name is required", ErrInvalidInput)
	}

	existing, found, err := r.leagueRepo.FindByName(ctx, name)
	if err != nil {
		return league.League{}, false, fmt.Errorf("find league by name: %w", err)
	}
	if found {
		return existing, false, nil
	}

	leagueID, err := r.idGen.NewID()
	if err != nil {
		return league.League{}, false, fmt.Errorf("generate league id: %w", err)
	}

	created := league.League{
		ID:      leagueID,
		Name:    name,
		Region:  RegionFromLeagueName(name),
		LogoURL: strings.TrimSpace(logoURL),
	}
	if err := r.leagueRepo.Insert(ctx, created); err != nil {
		return league.League{}, false, fmt.Errorf("insert league: %w", err)
	}

	return created, true, nil
}

// ResolveOrCreateTeam returns the stored team for name, creating it with
// the default win rate when absent. A blank leagueID routes the new team
// through the default-league attachment policy.
func (r *Reconciler) ResolveOrCreateTeam(ctx context.Context, name, logoURL, leagueID string) (team.Team, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return team.Team{}, false, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	existing, found, err := r.teamRepo.FindByName(ctx, name)
	if err != nil {
		return team.Team{}, false, fmt.Errorf("find team by name: %w", err)
	}
	if found {
		return existing, false, nil
	}

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		leagueID, err = r.defaultLeagueID(ctx, name)
		if err != nil {
			return team.Team{}, false, err
		}
	}

	teamID, err := r.idGen.NewID()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("generate team id: %w", err)
	}

	created := team.Team{
		ID:       teamID,
		LeagueID: leagueID,
		Name:     name,
		LogoURL:  strings.TrimSpace(logoURL),
		WinRate:  team.DefaultWinRate,
	}
	if err := r.teamRepo.Insert(ctx, created); err != nil {
		return team.Team{}, false, fmt.Errorf("insert team: %w", err)
	}

	return created, true, nil
}

// defaultLeagueID implements the attach-to-default-league policy: a team
// arriving with no resolvable league is parked under the first stored
// league so referential integrity holds. With no leagues at all the team
// stays unattached.
func (r *Reconciler) defaultLeagueID(ctx context.Context, teamName string) (string, error) {
	first, found, err := r.leagueRepo.First(ctx)
	if err != nil {
		return "", fmt.Errorf("load default league: %w", err)
	}
	if !found {
		r.logger.WarnContext(ctx, "no league available for team attachment", "team", teamName)
		return "", nil
	}
	return first.ID, nil
}

// MatchExists reports whether a match with the exact team pair and
// scheduled time is already stored. Reversed team order is a different
// identity on purpose.
func (r *Reconciler) MatchExists(ctx context.Context, teamAID, teamBID string, scheduledAt time.Time) (bool, error) {
	_, found, err := r.matchRepo.FindByTeamsAndDate(ctx, teamAID, teamBID, scheduledAt)
	if err != nil {
		return false, fmt.Errorf("find match by teams and date: %w", err)
	}
	return found, nil
}
