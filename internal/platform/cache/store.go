// Package cache is an in-process TTL store used for read-through caching
// of repository lookups and fetched source pages. Loads for the same key
// are collapsed through single-flight so a cold key hits the backend once.
package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/playrift/esports-ingest/internal/platform/resilience"
)

type cachedValue struct {
	value   any
	expires time.Time
}

func (v cachedValue) expired(now time.Time) bool {
	return !v.expires.IsZero() && !v.expires.After(now)
}

type Store struct {
	mu     sync.RWMutex
	values map[string]cachedValue
	ttl    time.Duration
	flight resilience.SingleFlight
}

// NewStore builds a store whose entries expire after ttl. A ttl of zero
// means entries never expire.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		values: make(map[string]cachedValue),
		ttl:    ttl,
	}
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}

	s.mu.RLock()
	v, ok := s.values[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if v.expired(time.Now()) {
		s.mu.Lock()
		delete(s.values, key)
		s.mu.Unlock()
		return nil, false
	}

	return v.value, true
}

func (s *Store) Set(_ context.Context, key string, value any) {
	if key == "" {
		return
	}

	v := cachedValue{value: value}
	if s.ttl > 0 {
		v.expires = time.Now().Add(s.ttl)
	}

	s.mu.Lock()
	s.values[key] = v
	s.mu.Unlock()
}

func (s *Store) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
}

func (s *Store) DeletePrefix(_ context.Context, prefix string) {
	if prefix == "" {
		return
	}

	s.mu.Lock()
	for key := range s.values {
		if strings.HasPrefix(key, prefix) {
			delete(s.values, key)
		}
	}
	s.mu.Unlock()
}

// GetOrLoad returns the cached value for key, or runs loader once and
// caches its result. An empty key bypasses the cache entirely.
func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := s.flight.Do(key, func() (any, error) {
		// Another caller may have filled the key while we queued.
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}
