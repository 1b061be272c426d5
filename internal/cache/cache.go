// Package cache is a per-process TTL cache that serves stale data when a
// refresh fails.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/nfl-scores-service/internal/logging"
	"github.com/preston-bernstein/nfl-scores-service/internal/metrics"
)

// Recorder receives one event per lookup.
type Recorder interface {
	RecordCacheEvent(cache, outcome string)
}

// Options configures a Cache.
type Options struct {
	Name     string
	Logger   *slog.Logger
	Recorder Recorder
	Now      func() time.Time
}

// Entry is a cached value and when it was fetched.
type Entry[T any] struct {
	Value     T
	FetchedAt time.Time
}

// Result is what Lookup served.
type Result[T any] struct {
	Value     T
	FetchedAt time.Time
	// Outcome is metrics.CacheHit, CacheMiss, CacheStale or CacheEmpty.
	Outcome string
}

// Stale reports whether the value came from a failed refresh.
func (r Result[T]) Stale() bool {
	return r.Outcome == metrics.CacheStale
}

// ErrNoUpdate, returned or wrapped by a FetchFunc, means upstream answered
// but had nothing to store. Any previous entry is kept as is and the lookup
// is recorded as metrics.CacheEmpty rather than a failure.
var ErrNoUpdate = errors.New("cache: nothing to store")

// FetchFunc loads a fresh value for a key.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Cache stores values per key. Lookups for the same key are serialized so a
// single refresh runs at a time; different keys never block each other.
type Cache[T any] struct {
	name     string
	logger   *slog.Logger
	recorder Recorder
	now      func() time.Time

	mu      sync.Mutex
	entries map[string]Entry[T]
	locks   map[string]*sync.Mutex
}

// New constructs an empty cache.
func New[T any](opts Options) *Cache[T] {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Cache[T]{
		name:     opts.Name,
		logger:   opts.Logger,
		recorder: opts.Recorder,
		now:      now,
		entries:  make(map[string]Entry[T]),
		locks:    make(map[string]*sync.Mutex),
	}
}

// Peek returns the stored entry regardless of age.
func (c *Cache[T]) Peek(key string) (Entry[T], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return e, ok
}

// Set replaces the entry for key, stamping it with the current time.
func (c *Cache[T]) Set(key string, value T) {
	c.store(key, Entry[T]{Value: value, FetchedAt: c.now()})
}

// Len returns the number of stored keys.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// GetOrRefresh returns a fresh cached value, or fetches one. When the fetch
// fails a previous value is returned however old it is; the error surfaces
// only when nothing was ever cached for key.
func (c *Cache[T]) GetOrRefresh(ctx context.Context, key string, ttl time.Duration, fetch FetchFunc[T]) (T, error) {
	res, err := c.Lookup(ctx, key, ttl, fetch)
	return res.Value, err
}

// Lookup is GetOrRefresh that also reports how the value was served.
func (c *Cache[T]) Lookup(ctx context.Context, key string, ttl time.Duration, fetch FetchFunc[T]) (Result[T], error) {
	lock := c.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	prev, havePrev := c.Peek(key)
	now := c.now()
	if havePrev && now.Sub(prev.FetchedAt) < ttl {
		c.record(metrics.CacheHit)
		return Result[T]{Value: prev.Value, FetchedAt: prev.FetchedAt, Outcome: metrics.CacheHit}, nil
	}

	value, err := fetch(ctx)
	if err == nil {
		c.store(key, Entry[T]{Value: value, FetchedAt: now})
		c.record(metrics.CacheMiss)
		return Result[T]{Value: value, FetchedAt: now, Outcome: metrics.CacheMiss}, nil
	}

	if errors.Is(err, ErrNoUpdate) {
		c.record(metrics.CacheEmpty)
		logging.Debug(c.logger, "refresh returned nothing to store",
			logging.FieldCache, c.name,
			logging.FieldCacheKey, key,
		)
		if havePrev {
			return Result[T]{Value: prev.Value, FetchedAt: prev.FetchedAt, Outcome: metrics.CacheEmpty}, nil
		}
		var zero T
		return Result[T]{Value: zero, Outcome: metrics.CacheEmpty}, err
	}

	if havePrev {
		c.record(metrics.CacheStale)
		logging.Warn(c.logger, "serving stale cache entry",
			logging.FieldCache, c.name,
			logging.FieldCacheKey, key,
			logging.FieldAgeMS, now.Sub(prev.FetchedAt).Milliseconds(),
			"error", err,
		)
		return Result[T]{Value: prev.Value, FetchedAt: prev.FetchedAt, Outcome: metrics.CacheStale}, nil
	}

	c.record(metrics.CacheError)
	var zero T
	return Result[T]{Value: zero}, err
}

func (c *Cache[T]) keyLock(key string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.locks[key]
	if !ok {
		l = &sync.Mutex{}
		c.locks[key] = l
	}
	return l
}

func (c *Cache[T]) store(key string, e Entry[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = e
}

func (c *Cache[T]) record(outcome string) {
	if c.recorder != nil {
		c.recorder.RecordCacheEvent(c.name, outcome)
	}
}
