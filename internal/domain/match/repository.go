package match

import (
	"context"
	"time"
)

// Repository describes match persistence needs from use cases.
type Repository interface {
	ListByLeague(ctx context.Context, leagueID string) ([]Match, error)
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	// FindByTeamsAndDate matches the exact (team A, team B, scheduled time)
	// tuple; reversed team order is a different identity.
	FindByTeamsAndDate(ctx context.Context, teamAID, teamBID string, scheduledAt time.Time) (Match, bool, error)
	Insert(ctx context.Context, item Match) error
}
