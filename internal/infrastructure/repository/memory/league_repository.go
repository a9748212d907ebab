package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/playrift/esports-ingest/internal/domain/league"
)

type LeagueRepository struct {
	mu     sync.RWMutex
	items  map[string]league.League
	orders []string
}

func NewLeagueRepository(leagues []league.League) *LeagueRepository {
	items := make(map[string]league.League, len(leagues))
	orders := make([]string, 0, len(leagues))

	for _, l := range leagues {
		items[l.ID] = l
		orders = append(orders, l.ID)
	}

	return &LeagueRepository{
		items:  items,
		orders: orders,
	}
}

func (r *LeagueRepository) List(_ context.Context) ([]league.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.League, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id])
	}

	return out, nil
}

func (r *LeagueRepository) GetByID(_ context.Context, leagueID string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.items[leagueID]
	if !ok {
		return league.League{}, false, nil
	}

	return l, true, nil
}

func (r *LeagueRepository) FindByName(_ context.Context, name string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	target := strings.ToLower(strings.TrimSpace(name))
	for _, id := range r.orders {
		item := r.items[id]
		if strings.ToLower(item.Name) == target {
			return item, true, nil
		}
	}

	return league.League{}, false, nil
}

func (r *LeagueRepository) First(_ context.Context) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.orders) == 0 {
		return league.League{}, false, nil
	}

	return r.items[r.orders[0]], true, nil
}

func (r *LeagueRepository) Insert(_ context.Context, item league.League) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		r.orders = append(r.orders, item.ID)
	}
	r.items[item.ID] = item

	return nil
}
