package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cravemap/backend/internal/domain/providers"
	redisclient "github.com/cravemap/backend/internal/infrastructure/clients/redis"
)

// RedisAdapter implements CacheProvider on Redis. It holds the resolved
// rankings shared across application instances; expiry is delegated to
// Redis TTLs.
type RedisAdapter struct {
	client *redisclient.Client
}

// NewRedisAdapter creates a new Redis cache adapter
func NewRedisAdapter(client *redisclient.Client) providers.CacheProvider {
	return &RedisAdapter{
		client: client,
	}
}

// Get retrieves a cached ranking
func (a *RedisAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	result, err := a.client.Client().Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("key not found: %s", key)
	}
	if err != nil {
		return nil, fmt.Errorf("ranking cache get failed: %w", err)
	}
	return result, nil
}

// Set stores a ranking with a TTL
func (a *RedisAdapter) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	ttl := time.Duration(expirationSeconds) * time.Second
	if err := a.client.Client().Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("ranking cache set failed: %w", err)
	}
	return nil
}

// Delete removes a cached ranking
func (a *RedisAdapter) Delete(ctx context.Context, key string) error {
	if err := a.client.Client().Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("ranking cache delete failed: %w", err)
	}
	return nil
}

// Exists checks whether a ranking is cached and unexpired
func (a *RedisAdapter) Exists(ctx context.Context, key string) (bool, error) {
	result, err := a.client.Client().Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("ranking cache exists check failed: %w", err)
	}
	return result > 0, nil
}
