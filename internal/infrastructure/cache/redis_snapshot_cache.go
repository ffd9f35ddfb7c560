package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// snapshotKey is the single key holding the latest dashboard snapshot.
const snapshotKey = "dashboard:snapshot:latest"

// RedisSnapshotCache implements SnapshotCache on Redis, suitable when several
// instances should share the latest snapshot.
type RedisSnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ SnapshotCache = (*RedisSnapshotCache)(nil)

// NewRedisSnapshotCache connects to Redis and verifies the connection.
func NewRedisSnapshotCache(addr, password string, db int, ttl time.Duration) (*RedisSnapshotCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cache: failed to connect to redis: %w", err)
	}

	return &RedisSnapshotCache{client: client, ttl: ttl}, nil
}

// Store persists the serialized snapshot with the configured TTL.
func (c *RedisSnapshotCache) Store(ctx context.Context, snapshot []byte) error {
	if err := c.client.Set(ctx, snapshotKey, snapshot, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache: failed to store snapshot: %w", err)
	}
	return nil
}

// Load returns the latest snapshot, or nil when none is cached.
func (c *RedisSnapshotCache) Load(ctx context.Context) ([]byte, error) {
	data, err := c.client.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache: failed to load snapshot: %w", err)
	}
	return data, nil
}

// Close closes the Redis client.
func (c *RedisSnapshotCache) Close() error {
	return c.client.Close()
}
