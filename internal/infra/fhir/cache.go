package fhir

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"provider-directory/internal/common/pagination"
	"provider-directory/internal/domain/entity"
	"provider-directory/internal/observability/metrics"
)

// QueryCache holds search results by parameter tuple.
//
// Concurrent Do calls for the same tuple share one fetch. The shared fetch
// runs detached from any single caller's context, so a caller that gives up
// does not fail the others; it still completes and fills the cache.
// Failures are never cached.
type QueryCache[T any] struct {
	ttl        time.Duration
	maxEntries int
	now        func() time.Time

	mu      sync.Mutex
	entries map[pagination.Key]cacheEntry[T]

	group singleflight.Group
}

type cacheEntry[T any] struct {
	value   *entity.Collection[T]
	expires time.Time
}

// NewQueryCache creates a cache keeping results for ttl. A ttl of zero keeps
// nothing but still collapses in-flight duplicates.
func NewQueryCache[T any](ttl time.Duration, maxEntries int) *QueryCache[T] {
	if maxEntries < 1 {
		maxEntries = 1024
	}
	return &QueryCache[T]{
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
		entries:    make(map[pagination.Key]cacheEntry[T]),
	}
}

// Get returns the fresh result for key, if any.
func (c *QueryCache[T]) Get(key pagination.Key) (*entity.Collection[T], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.now().Before(e.expires) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Do returns the cached result for key or runs fetch to produce it.
func (c *QueryCache[T]) Do(
	ctx context.Context,
	key pagination.Key,
	fetch func(context.Context) (*entity.Collection[T], error),
) (*entity.Collection[T], error) {
	if v, ok := c.Get(key); ok {
		metrics.RecordCacheLookup("hit")
		return v, nil
	}

	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(flightKey(key), func() (interface{}, error) {
		v, err := fetch(detached)
		if err != nil {
			return nil, err
		}
		c.store(key, v)
		return v, nil
	})

	select {
	case res := <-ch:
		if res.Shared {
			metrics.RecordCacheLookup("shared")
		} else {
			metrics.RecordCacheLookup("miss")
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*entity.Collection[T]), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Len returns the number of held entries, fresh or not.
func (c *QueryCache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Purge drops every entry.
func (c *QueryCache[T]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[pagination.Key]cacheEntry[T])
}

func (c *QueryCache[T]) store(key pagination.Key, v *entity.Collection[T]) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if len(c.entries) >= c.maxEntries {
		c.evictLocked(now)
	}
	c.entries[key] = cacheEntry[T]{value: v, expires: now.Add(c.ttl)}
}

// evictLocked drops expired entries, then the soonest-expiring one if the
// cache is still full.
func (c *QueryCache[T]) evictLocked(now time.Time) {
	for k, e := range c.entries {
		if !now.Before(e.expires) {
			delete(c.entries, k)
		}
	}
	if len(c.entries) < c.maxEntries {
		return
	}
	var (
		oldest    pagination.Key
		oldestExp time.Time
		found     bool
	)
	for k, e := range c.entries {
		if !found || e.expires.Before(oldestExp) {
			oldest, oldestExp, found = k, e.expires, true
		}
	}
	if found {
		delete(c.entries, oldest)
	}
}

func flightKey(k pagination.Key) string {
	return fmt.Sprintf("%d|%d|%t|%q|%t|%q", k.Page, k.PageSize, k.HasQuery, k.Query, k.HasSort, k.Sort)
}
