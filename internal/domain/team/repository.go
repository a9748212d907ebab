package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	ListByLeague(ctx context.Context, leagueID string) ([]Team, error)
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	// FindByName matches the trimmed name case-insensitively and returns
	// the first hit.
	FindByName(ctx context.Context, name string) (Team, bool, error)
	Insert(ctx context.Context, item Team) error
}
