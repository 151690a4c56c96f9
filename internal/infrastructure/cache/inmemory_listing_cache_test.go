package cache

import (
	"context"
	"testing"
	"time"

	appproperty "github.com/eyrie/backend/internal/application/property"
	"github.com/stretchr/testify/assert"
)

func TestInMemoryListingCache(t *testing.T) {
	ctx := context.Background()
	listing := &appproperty.ListingResponse{Total: 3}

	t.Run("empty cache misses", func(t *testing.T) {
		c := NewInMemoryListingCache(time.Minute)
		assert.Nil(t, c.Get(ctx))
	})

	t.Run("stores and serves within the TTL", func(t *testing.T) {
		c := NewInMemoryListingCache(time.Minute)
		c.Set(ctx, listing)
		got := c.Get(ctx)
		assert.Same(t, listing, got)
	})

	t.Run("expires after the TTL", func(t *testing.T) {
		c := NewInMemoryListingCache(10 * time.Millisecond)
		c.Set(ctx, listing)
		time.Sleep(25 * time.Millisecond)
		assert.Nil(t, c.Get(ctx))
	})

	t.Run("invalidate drops immediately", func(t *testing.T) {
		c := NewInMemoryListingCache(time.Minute)
		c.Set(ctx, listing)
		c.Invalidate(ctx)
		assert.Nil(t, c.Get(ctx))
	})

	t.Run("set after invalidate restarts the clock", func(t *testing.T) {
		c := NewInMemoryListingCache(time.Minute)
		c.Set(ctx, listing)
		c.Invalidate(ctx)
		c.Set(ctx, listing)
		assert.NotNil(t, c.Get(ctx))
	})
}
