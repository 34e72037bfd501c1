package keyset

import (
	"context"
	"sync/atomic"
	"time"
)

// DefaultTTL bounds key set staleness to one hour
const DefaultTTL = time.Hour

// snapshot is one immutable fetch result
type snapshot struct {
	keys      Set
	fetchedAt time.Time
}

// Cache holds the most recent key set snapshot for the whole process.
// Readers always see a consistent snapshot; a stale or missing snapshot
// triggers at most one outbound fetch per call. Concurrent refreshes may
// race and the last writer wins, which is harmless for identical
// documents
type Cache struct {
	fetch Fetcher
	ttl   time.Duration
	cur   atomic.Pointer[snapshot]
}

// NewCache builds a cache over fetch with the given ttl
// a non-positive ttl falls back to DefaultTTL
func NewCache(fetch Fetcher, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{fetch: fetch, ttl: ttl}
}

// Get returns the cached key set, refreshing when absent or older than
// the ttl. A fetch failure is returned as-is and the previous snapshot,
// if any, is left untouched
func (c *Cache) Get(ctx context.Context) (Set, error) {
	if snap := c.cur.Load(); snap != nil && timeNow().Sub(snap.fetchedAt) < c.ttl {
		return snap.keys, nil
	}

	keys, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}

	c.cur.Store(&snapshot{keys: keys, fetchedAt: timeNow()})
	return keys, nil
}

// Invalidate drops the current snapshot so the next Get refetches
func (c *Cache) Invalidate() {
	c.cur.Store(nil)
}
