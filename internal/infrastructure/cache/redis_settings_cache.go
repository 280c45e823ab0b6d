package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cecypo/powerpack-backend/internal/domain/settings"
	"github.com/cecypo/powerpack-backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

const settingsCacheKey = "powerpack:settings"

// RedisSettingsCache implements settings.Cache on Redis so every node
// observes the same settings snapshot
type RedisSettingsCache struct {
	client *redis.Client
}

// NewRedisSettingsCache connects to Redis and verifies the connection
func NewRedisSettingsCache(cfg config.RedisConfig) (*RedisSettingsCache, error) {
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

	return &RedisSettingsCache{client: client}, nil
}

// Get implements settings.Cache. A missing key is a miss, not an error.
func (c *RedisSettingsCache) Get(ctx context.Context) (*settings.PowerPackSettings, error) {
	data, err := c.client.Get(ctx, settingsCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var record settings.PowerPackSettings
	if err := json.Unmarshal(data, &record); err != nil {
		// A corrupt entry is treated as a miss so the caller refreshes it
		return nil, nil
	}
	return &record, nil
}

// Set implements settings.Cache
func (c *RedisSettingsCache) Set(ctx context.Context, s *settings.PowerPackSettings, ttl time.Duration) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, settingsCacheKey, data, ttl).Err()
}

// Invalidate implements settings.Cache
func (c *RedisSettingsCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, settingsCacheKey).Err()
}

// Close releases the Redis connection
func (c *RedisSettingsCache) Close() error {
	return c.client.Close()
}

var _ settings.Cache = (*RedisSettingsCache)(nil)
