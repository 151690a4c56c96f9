package cache

import (
	"context"
	"sync"
	"time"

	appproperty "github.com/eyrie/backend/internal/application/property"
)

// InMemoryListingCache is a single-slot memoization of the unit listing:
// one value and the time it was stored. It is safe only for
// single-process deployment; other instances keep serving stale data
// until their own TTL expires.
type InMemoryListingCache struct {
	mu       sync.RWMutex
	listing  *appproperty.ListingResponse
	storedAt time.Time
	ttl      time.Duration
}

// NewInMemoryListingCache creates a single-slot cache with the given TTL
func NewInMemoryListingCache(ttl time.Duration) *InMemoryListingCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &InMemoryListingCache{ttl: ttl}
}

// Get returns the cached listing, or nil when empty or expired
func (c *InMemoryListingCache) Get(_ context.Context) *appproperty.ListingResponse {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.listing == nil || time.Since(c.storedAt) > c.ttl {
		return nil
	}
	return c.listing
}

// Set stores the listing and restarts the TTL clock
func (c *InMemoryListingCache) Set(_ context.Context, listing *appproperty.ListingResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listing = listing
	c.storedAt = time.Now()
}

// Invalidate drops the cached listing immediately
func (c *InMemoryListingCache) Invalidate(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listing = nil
}

var _ appproperty.ListingCache = (*InMemoryListingCache)(nil)
