package gazetteer

import (
	"sync"
	"time"
)

// DefaultTTL is the catalog snapshot lifetime when none is configured.
const DefaultTTL = 15 * time.Minute

// SnapshotCache holds catalog snapshots keyed by source with per-entry
// expiry. It replaces module-level metadata caches with an explicit object:
// TTL and invalidation are visible at the call site, and the clock is
// injectable for deterministic tests. Safe for concurrent use.
type SnapshotCache struct {
	mu      sync.RWMutex
	entries map[string]snapshotEntry
	ttl     time.Duration
	now     func() time.Time
}

type snapshotEntry struct {
	catalog  *Catalog
	expireAt time.Time
}

// NewSnapshotCache creates a cache with the given TTL. A non-positive ttl
// falls back to DefaultTTL.
func NewSnapshotCache(ttl time.Duration) *SnapshotCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &SnapshotCache{
		entries: make(map[string]snapshotEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// WithClock overrides the cache clock. Test hook.
func (c *SnapshotCache) WithClock(now func() time.Time) *SnapshotCache {
	c.now = now

	return c
}

// Get returns the cached catalog for key if present and unexpired. A stale
// snapshot is still structurally valid; callers decide whether a possibly
// stale result is acceptable before invalidating.
func (c *SnapshotCache) Get(key string) (*Catalog, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || c.now().After(entry.expireAt) {
		return nil, false
	}

	return entry.catalog, true
}

// Put stores a catalog snapshot under key with a fresh TTL.
func (c *SnapshotCache) Put(key string, catalog *Catalog) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = snapshotEntry{
		catalog:  catalog,
		expireAt: c.now().Add(c.ttl),
	}
}

// Invalidate drops one key.
func (c *SnapshotCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// Clear drops every entry.
func (c *SnapshotCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]snapshotEntry)
}

// Len reports the number of stored snapshots, expired ones included.
func (c *SnapshotCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
