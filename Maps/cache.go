package Maps

import (
	"context"
	"fmt"
	"sync"
	"time"

	"Escapade/Models"
)

const defaultMaxEntries = 4096

type cacheEntry struct {
	info      RouteInfo
	expiresAt time.Time
}

// DirectionsCache is a bounded TTL cache in front of another provider.
// Keys are rounded coordinates plus mode; entries expire by TTL, not LRU,
// since optimization requests are short-lived. An authoritative result always
// replaces a cached fallback estimate.
type DirectionsCache struct {
	inner      DirectionsProvider
	ttl        time.Duration
	maxEntries int

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

func NewDirectionsCache(inner DirectionsProvider, ttl time.Duration) *DirectionsCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &DirectionsCache{
		inner:      inner,
		ttl:        ttl,
		maxEntries: defaultMaxEntries,
		entries:    make(map[string]cacheEntry),
	}
}

func cacheKey(origin, destination Models.Coordinates, mode Models.TransportMode) string {
	return fmt.Sprintf("%.4f,%.4f|%.4f,%.4f|%s", origin.Lat, origin.Lng, destination.Lat, destination.Lng, mode)
}

func (c *DirectionsCache) Directions(ctx context.Context, origin, destination Models.Coordinates, mode Models.TransportMode) (*RouteInfo, error) {
	key := cacheKey(origin, destination, mode)

	c.mu.RLock()
	entry, hit := c.entries[key]
	c.mu.RUnlock()

	fresh := hit && time.Now().Before(entry.expiresAt)
	if fresh && !entry.info.Estimated {
		info := entry.info
		return &info, nil
	}

	// A cached estimate is only served when the upstream fails again. Two
	// concurrent misses on the same key may both hit the upstream; entries
	// are idempotent so last write wins.
	info, err := c.inner.Directions(ctx, origin, destination, mode)
	if err != nil {
		if fresh {
			cached := entry.info
			return &cached, nil
		}
		return nil, err
	}

	c.store(key, info)
	return info, nil
}

func (c *DirectionsCache) store(key string, info *RouteInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) >= c.maxEntries {
		c.purgeExpiredLocked()
		if len(c.entries) >= c.maxEntries {
			return
		}
	}
	c.entries[key] = cacheEntry{info: *info, expiresAt: time.Now().Add(c.ttl)}
}

// PurgeExpired drops expired entries. Called periodically by the sweeper job.
func (c *DirectionsCache) PurgeExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.purgeExpiredLocked()
}

func (c *DirectionsCache) purgeExpiredLocked() int {
	now := time.Now()
	removed := 0
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of cached entries, expired or not.
func (c *DirectionsCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
