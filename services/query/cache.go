// Package query is the client-side read cache: staleness-window caching for
// resource reads, prefix invalidation for mutations, and the generic
// optimistic-update helper.
package query

import (
	"context"
	"strings"
	"sync"
	"time"

	"buckler/utils"

	"go.uber.org/zap"
)

type entry struct {
	value     any
	fetchedAt time.Time
}

// Cache holds cached read results keyed by colon-joined key strings
// (e.g. "bnb:search:nairobi:2"). Writers invalidate by key prefix.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	// gen bumps on every invalidation of a key. A fetch started before an
	// invalidation (or superseded by a newer fetch) must not overwrite the
	// later state: last write wins.
	gens   map[string]uint64
	logger *zap.Logger
	now    func() time.Time
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]*entry),
		gens:    make(map[string]uint64),
		logger:  utils.GetLogger(),
		now:     time.Now,
	}
}

// Key joins parts into a cache key.
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

// Invalidate removes every key matching the prefix and bumps generations so
// in-flight fetches for those keys cannot resurrect stale values.
func (c *Cache) Invalidate(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			c.gens[key]++
		}
	}
	// Keys fetched for the first time mid-invalidation still need a bump.
	c.gens[prefix]++
}

// Peek returns the cached value when present and fresh.
func (c *Cache) Peek(key string, staleness time.Duration) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || c.now().Sub(e.fetchedAt) >= staleness {
		return nil, false
	}
	return e.value, true
}

func (c *Cache) generation(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[key]
}

// store saves the fetched value unless the key was invalidated or refreshed
// by a later fetch since gen was read.
func (c *Cache) store(key string, gen uint64, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[key] != gen {
		c.logger.Debug("dropping superseded fetch result", zap.String("key", key))
		return
	}
	c.gens[key]++
	c.entries[key] = &entry{value: value, fetchedAt: c.now()}
}

// Fetch serves key from cache while the value is younger than staleness,
// otherwise runs fn and caches its result. Errors are never cached.
func Fetch[T any](ctx context.Context, c *Cache, key string, staleness time.Duration, fn func(context.Context) (T, error)) (T, error) {
	if v, ok := c.Peek(key, staleness); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}

	gen := c.generation(key)
	value, err := fn(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	c.store(key, gen, value)
	return value, nil
}
