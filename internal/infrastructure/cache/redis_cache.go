// Package cache maps canonical calculation requests to stored calculation IDs.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "vaddi:calc:"

// Store is the subset of the Redis client the cache uses.
type Store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// RedisCache implements port.CalculationCache on Redis.
type RedisCache struct {
	store Store
	ttl   time.Duration
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}

// NewRedisCache creates a cache whose entries expire after ttl. A zero ttl
// keeps entries until evicted.
func NewRedisCache(store Store, ttl time.Duration) *RedisCache {
	return &RedisCache{store: store, ttl: ttl}
}

func (c *RedisCache) Lookup(ctx context.Context, key string) (string, bool, error) {
	id, err := c.store.Get(ctx, Key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	return id, true, nil
}

func (c *RedisCache) Remember(ctx context.Context, key, calculationID string) error {
	if err := c.store.Set(ctx, Key(key), calculationID, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Key hashes a canonical request into a fixed-width Redis key.
func Key(canonical string) string {
	return fmt.Sprintf("%s%016x", keyPrefix, xxhash.Sum64String(canonical))
}

// Noop never finds anything. It stands in when Redis is not configured.
type Noop struct{}

func (Noop) Lookup(context.Context, string) (string, bool, error) { return "", false, nil }

func (Noop) Remember(context.Context, string, string) error { return nil }
