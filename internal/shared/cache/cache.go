package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fpt-software/website-api/internal/config"
	"github.com/fpt-software/website-api/internal/shared/logger"
	"github.com/redis/go-redis/v9"
)

// Cache stores JSON encoded values with a TTL.
type Cache interface {
	// Get decodes the value at key into dest. It reports false on a miss.
	Get(ctx context.Context, key string, dest any) (bool, error)
	// Set stores value; a ttl <= 0 uses the backend default.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPrefix(ctx context.Context, prefix string) error
	Ping(ctx context.Context) error
	Name() string
}

// New builds the configured backend.
func New(ctx context.Context, cfg config.CacheConfig) (Cache, error) {
	switch cfg.Driver {
	case config.CacheRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
		}
		return NewRedis(client, cfg.TTL), nil
	case config.CacheMemory, "":
		return NewMemory(cfg.TTL), nil
	default:
		return nil, fmt.Errorf("unsupported cache driver %q", cfg.Driver)
	}
}

// Remember returns the cached value at key, or loads, stores and returns it.
// Cache failures are logged and never fail the call.
func Remember[T any](ctx context.Context, c Cache, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	log := logger.Named(ctx, "cache")

	var cached T
	hit, err := c.Get(ctx, key, &cached)
	if err != nil {
		log.Warn("cache read failed", "key", key, "error", err)
	}
	if hit {
		return cached, nil
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if err := c.Set(ctx, key, value, ttl); err != nil {
		log.Warn("cache write failed", "key", key, "error", err)
	}
	return value, nil
}

// Invalidate drops every key under prefix, logging failures.
func Invalidate(ctx context.Context, c Cache, prefix string) {
	if err := c.DeleteByPrefix(ctx, prefix); err != nil {
		logger.Named(ctx, "cache").Warn("cache invalidation failed", "prefix", prefix, "error", err)
	}
}

func encode(value any) ([]byte, error) {
	b, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode cache value: %w", err)
	}
	return b, nil
}
