package league

import "context"

// Repository describes league persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]League, error)
	GetByID(ctx context.Context, leagueID string) (League, bool, error)
	// FindByName matches the trimmed name case-insensitively and returns
	// the first hit.
	FindByName(ctx context.Context, name string) (League, bool, error)
	// First returns any stored league; ordering is not guaranteed.
	First(ctx context.Context) (League, bool, error)
	Insert(ctx context.Context, item League) error
}
