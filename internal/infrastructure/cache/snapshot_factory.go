package cache

import (
	"go.uber.org/zap"

	"github.com/shopops/backend/internal/infrastructure/config"
)

// NewSnapshotCache selects the snapshot cache implementation from
// configuration: Redis when a host is configured and reachable, the
// in-memory cache otherwise.
func NewSnapshotCache(cfg config.RedisConfig, logger *zap.Logger) SnapshotCache {
	addr := cfg.RedisAddr()
	if addr == "" {
		logger.Info("using in-memory snapshot cache")
		return NewInMemorySnapshotCache(cfg.TTL)
	}

	redisCache, err := NewRedisSnapshotCache(addr, cfg.Password, cfg.DB, cfg.TTL)
	if err != nil {
		logger.Warn("redis unavailable, falling back to in-memory snapshot cache",
			zap.String("addr", addr),
			zap.Error(err),
		)
		return NewInMemorySnapshotCache(cfg.TTL)
	}

	logger.Info("using redis snapshot cache", zap.String("addr", addr))
	return redisCache
}
