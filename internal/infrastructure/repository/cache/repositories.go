package cache

import (
	"context"
	"strings"
	"time"

	"github.com/playrift/esports-ingest/internal/domain/league"
	"github.com/playrift/esports-ingest/internal/domain/match"
	"github.com/playrift/esports-ingest/internal/domain/team"
	basecache "github.com/playrift/esports-ingest/internal/platform/cache"
)

// LeagueRepository caches read paths of a league.Repository. Inserts
// invalidate the affected keys so imports are visible on the next read.
type LeagueRepository struct {
	next  league.Repository
	cache *basecache.Store
}

func NewLeagueRepository(next league.Repository, cache *basecache.Store) *LeagueRepository {
	return &LeagueRepository{next: next, cache: cache}
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	v, err := r.cache.GetOrLoad(ctx, "league:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]league.League(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]league.League)
	return append([]league.League(nil), items...), nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	key := "league:id:" + leagueID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return cachedLeague{value: item, exists: exists}, nil
	})
	if err != nil {
		return league.League{}, false, err
	}

	cached, _ := v.(cachedLeague)
	return cached.value, cached.exists, nil
}

func (r *LeagueRepository) FindByName(ctx context.Context, name string) (league.League, bool, error) {
	key := leagueNameKey(name)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.FindByName(ctx, name)
		if err != nil {
			return nil, err
		}
		return cachedLeague{value: item, exists: exists}, nil
	})
	if err != nil {
		return league.League{}, false, err
	}

	cached, _ := v.(cachedLeague)
	return cached.value, cached.exists, nil
}

func (r *LeagueRepository) First(ctx context.Context) (league.League, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, "league:first", func(ctx context.Context) (any, error) {
		item, exists, err := r.next.First(ctx)
		if err != nil {
			return nil, err
		}
		return cachedLeague{value: item, exists: exists}, nil
	})
	if err != nil {
		return league.League{}, false, err
	}

	cached, _ := v.(cachedLeague)
	return cached.value, cached.exists, nil
}

func (r *LeagueRepository) Insert(ctx context.Context, item league.League) error {
	if err := r.next.Insert(ctx, item); err != nil {
		return err
	}

	r.cache.Delete(ctx, "league:list")
	r.cache.Delete(ctx, "league:first")
	r.cache.Delete(ctx, "league:id:"+item.ID)
	r.cache.Delete(ctx, leagueNameKey(item.Name))
	return nil
}

type cachedLeague struct {
	value  league.League
	exists bool
}

func leagueNameKey(name string) string {
	return "league:name:" + strings.ToLower(strings.TrimSpace(name))
}

// TeamRepository caches read paths of a team.Repository.
type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) ListByLeague(ctx context.Context, leagueID string) ([]team.Team, error) {
	key := "team:list:" + leagueID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByLeague(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	key := "team:id:" + teamID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return cachedTeam{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeam)
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) FindByName(ctx context.Context, name string) (team.Team, bool, error) {
	key := teamNameKey(name)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.FindByName(ctx, name)
		if err != nil {
			return nil, err
		}
		return cachedTeam{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeam)
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) Insert(ctx context.Context, item team.Team) error {
	if err := r.next.Insert(ctx, item); err != nil {
		return err
	}

	r.cache.Delete(ctx, "team:list:"+item.LeagueID)
	r.cache.Delete(ctx, "team:id:"+item.ID)
	r.cache.Delete(ctx, teamNameKey(item.Name))
	return nil
}

type cachedTeam struct {
	value  team.Team
	exists bool
}

func teamNameKey(name string) string {
	return "team:name:" + strings.ToLower(strings.TrimSpace(name))
}

// MatchRepository caches read paths of a match.Repository.
type MatchRepository struct {
	next  match.Repository
	cache *basecache.Store
}

func NewMatchRepository(next match.Repository, cache *basecache.Store) *MatchRepository {
	return &MatchRepository{next: next, cache: cache}
}

func (r *MatchRepository) ListByLeague(ctx context.Context, leagueID string) ([]match.Match, error) {
	key := "match:list:" + leagueID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByLeague(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		out := make([]match.Match, 0, len(items))
		for _, item := range items {
			out = append(out, cloneMatch(item))
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]match.Match)
	out := make([]match.Match, 0, len(items))
	for _, item := range items {
		out = append(out, cloneMatch(item))
	}
	return out, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	key := "match:id:" + matchID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, matchID)
		if err != nil {
			return nil, err
		}
		return cachedMatch{value: cloneMatch(item), exists: exists}, nil
	})
	if err != nil {
		return match.Match{}, false, err
	}

	cached, _ := v.(cachedMatch)
	return cloneMatch(cached.value), cached.exists, nil
}

func (r *MatchRepository) FindByTeamsAndDate(ctx context.Context, teamAID, teamBID string, scheduledAt time.Time) (match.Match, bool, error) {
	key := matchIdentityKey(teamAID, teamBID, scheduledAt)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.FindByTeamsAndDate(ctx, teamAID, teamBID, scheduledAt)
		if err != nil {
			return nil, err
		}
		return cachedMatch{value: cloneMatch(item), exists: exists}, nil
	})
	if err != nil {
		return match.Match{}, false, err
	}

	cached, _ := v.(cachedMatch)
	return cloneMatch(cached.value), cached.exists, nil
}

func (r *MatchRepository) Insert(ctx context.Context, item match.Match) error {
	if err := r.next.Insert(ctx, item); err != nil {
		return err
	}

	r.cache.Delete(ctx, "match:list:"+item.LeagueID)
	r.cache.Delete(ctx, "match:id:"+item.ID)
	r.cache.Delete(ctx, matchIdentityKey(item.TeamAID, item.TeamBID, item.ScheduledAt))
	return nil
}

type cachedMatch struct {
	value  match.Match
	exists bool
}

func cloneMatch(item match.Match) match.Match {
	out := item
	out.StreamLinks = append([]match.StreamLink(nil), item.StreamLinks...)
	return out
}

func matchIdentityKey(teamAID, teamBID string, scheduledAt time.Time) string {
	return "match:identity:" + teamAID + ":" + teamBID + ":" + scheduledAt.UTC().Format(time.RFC3339)
}
