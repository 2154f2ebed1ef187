// Package redis provides the Redis-backed projection cache.
package redis

import (
	"context"
	"errors"
	"time"

	"routex/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

// ProjectionCache implements ports.ProjectionCache on a Redis client.
type ProjectionCache struct {
	client *redis.Client
}

// NewProjectionCache creates a cache backed by the given Redis client.
func NewProjectionCache(client *redis.Client) *ProjectionCache {
	return &ProjectionCache{client: client}
}

// Get returns the cached payload for key, or ports.ErrCacheMiss.
func (c *ProjectionCache) Get(ctx context.Context, key string) ([]byte, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ports.ErrCacheMiss
		}
		return nil, err
	}
	return payload, nil
}

// Set stores payload under key for at most ttl.
func (c *ProjectionCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, payload, ttl).Err()
}

// Invalidate drops the given keys. Missing keys are not an error.
func (c *ProjectionCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
