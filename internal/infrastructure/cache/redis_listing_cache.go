package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	appproperty "github.com/eyrie/backend/internal/application/property"
	"github.com/eyrie/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const listingKey = "eyrie:units:listing"

// RedisListingCache stores the unit listing as JSON in Redis with a TTL.
// Unlike the in-memory cache it is shared across instances, so an
// invalidation from one process is seen by all of them.
type RedisListingCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisListingCache connects to Redis and returns a listing cache.
// The connection is verified up front so a misconfigured Redis fails at
// startup rather than on the first request.
func NewRedisListingCache(cfg config.RedisConfig, ttl time.Duration, logger *zap.Logger) (*RedisListingCache, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = time.Minute
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisListingCache{client: client, ttl: ttl, logger: logger}, nil
}

// Get returns the cached listing, or nil on a miss or any Redis error.
// Cache failures degrade to a storage read, never to a request failure.
func (c *RedisListingCache) Get(ctx context.Context) *appproperty.ListingResponse {
	raw, err := c.client.Get(ctx, listingKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("listing cache read failed", zap.Error(err))
		}
		return nil
	}
	var listing appproperty.ListingResponse
	if err := json.Unmarshal(raw, &listing); err != nil {
		c.logger.Warn("listing cache entry corrupt, dropping", zap.Error(err))
		c.Invalidate(ctx)
		return nil
	}
	return &listing
}

// Set stores the listing until the TTL expires
func (c *RedisListingCache) Set(ctx context.Context, listing *appproperty.ListingResponse) {
	raw, err := json.Marshal(listing)
	if err != nil {
		c.logger.Warn("listing cache encode failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, listingKey, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("listing cache write failed", zap.Error(err))
	}
}

// Invalidate drops the cached listing immediately
func (c *RedisListingCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, listingKey).Err(); err != nil {
		c.logger.Warn("listing cache invalidation failed", zap.Error(err))
	}
}

// Close releases the Redis connection
func (c *RedisListingCache) Close() error {
	return c.client.Close()
}

var _ appproperty.ListingCache = (*RedisListingCache)(nil)
