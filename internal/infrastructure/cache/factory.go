package cache

import (
	"time"

	"github.com/crm/backend/internal/domain/connector"
	"go.uber.org/zap"
)

// NewSearchCache creates a Redis-backed search cache when Redis is
// reachable, falling back to the in-memory cache otherwise. In-memory
// entries are not shared across instances; acceptable for single-node
// deployments.
func NewSearchCache(cfg RedisConfig, ttl time.Duration, logger *zap.Logger) connector.SearchCache {
	if logger == nil {
		logger = zap.NewNop()
	}

	redisCache, err := NewRedisSearchCache(cfg, ttl)
	if err == nil {
		logger.Info("using Redis search cache", zap.String("addr", cfg.Addr))
		return redisCache
	}

	logger.Warn("Redis unavailable, using in-memory search cache", zap.Error(err))
	return NewInMemorySearchCache(ttl, logger)
}
