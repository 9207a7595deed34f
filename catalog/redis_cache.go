package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"hzfm/config"
)

// SnapshotKey holds the raw metadata table in Redis.
const SnapshotKey = "catalog:snapshot"

// BodyCache keeps a copy of the raw metadata table shared between processes.
type BodyCache interface {
	Get(ctx context.Context) ([]byte, bool, error)
	Set(ctx context.Context, body []byte) error
}

// RedisCache is a BodyCache backed by a single Redis key with a TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// ConnectRedis opens and pings the Redis server configured in cfg.
func ConnectRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context) ([]byte, bool, error) {
	body, err := c.client.Get(ctx, SnapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", SnapshotKey, err)
	}
	return body, true, nil
}

func (c *RedisCache) Set(ctx context.Context, body []byte) error {
	if err := c.client.Set(ctx, SnapshotKey, body, c.ttl).Err(); err != nil {
		return fmt.Errorf("set %s: %w", SnapshotKey, err)
	}
	return nil
}

// TTL reports the remaining lifetime of the cached table and whether it
// exists. A key without expiry reports a zero duration.
func (c *RedisCache) TTL(ctx context.Context) (time.Duration, bool, error) {
	d, err := c.client.TTL(ctx, SnapshotKey).Result()
	if err != nil {
		return 0, false, fmt.Errorf("ttl %s: %w", SnapshotKey, err)
	}
	switch {
	case d == -2:
		return 0, false, nil
	case d < 0:
		return 0, true, nil
	}
	return d, true, nil
}
