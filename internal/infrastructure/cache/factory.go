package cache

import (
	appproperty "github.com/eyrie/backend/internal/application/property"
	"github.com/eyrie/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewListingCache creates the listing cache selected by configuration.
// When the Redis backend is requested but unreachable the factory falls
// back to the in-memory cache so the server still boots; the fallback is
// logged because multi-instance deployments lose shared invalidation.
func NewListingCache(cfg config.CacheConfig, redisCfg config.RedisConfig, logger *zap.Logger) appproperty.ListingCache {
	if logger == nil {
		logger = zap.NewNop()
	}

	if cfg.Backend == "redis" {
		c, err := NewRedisListingCache(redisCfg, cfg.ListingTTL, logger)
		if err == nil {
			logger.Info("using Redis listing cache", zap.Duration("ttl", cfg.ListingTTL))
			return c
		}
		logger.Warn("Redis listing cache unavailable, falling back to in-memory", zap.Error(err))
	}

	logger.Info("using in-memory listing cache", zap.Duration("ttl", cfg.ListingTTL))
	return NewInMemoryListingCache(cfg.ListingTTL)
}
