package cache

import (
	"context"
	"sync"
	"time"

	"meetpoint-service/internal/ports"
)

type memoryEntry struct {
	loc       ports.CachedLocation
	expiresAt time.Time
}

// MemoryGeocodeCache is a process-lifetime TTL cache mapping normalized
// addresses to resolved locations. Entries are only evicted on expiry, so
// the cache grows with the number of distinct addresses seen; that bound is
// acceptable for this workload.
//
// Safe for concurrent use: reads share a lock, a writer never corrupts
// concurrent reads of other keys, and a writer observes its own insert.
type MemoryGeocodeCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryGeocodeCache(ttl time.Duration) *MemoryGeocodeCache {
	return &MemoryGeocodeCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *MemoryGeocodeCache) Get(_ context.Context, address string) (ports.CachedLocation, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[address]
	c.mu.RUnlock()

	if !ok || c.now().After(entry.expiresAt) {
		return ports.CachedLocation{}, false, nil
	}

	return entry.loc, true, nil
}

func (c *MemoryGeocodeCache) Put(_ context.Context, address string, loc ports.CachedLocation) error {
	c.mu.Lock()
	c.entries[address] = memoryEntry{loc: loc, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return nil
}
