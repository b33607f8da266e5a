package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/srikarboddupally/analyzejd/internal/domain"
)

const (
	redisKeyPrefix = "analyzejd:company:"
	redisTTL       = 24 * time.Hour
)

// Redis is a shared classification cache backed by go-redis. Values are
// JSON-encoded Classification objects with a 24h TTL.
type Redis struct {
	client *redis.Client
}

// NewRedis builds a Redis cache from a connection URL and verifies the
// connection with a ping.
func NewRedis(ctx domain.Context, url string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("op=cache.redis.parse: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("op=cache.redis.ping: %w", err)
	}
	return &Redis{client: client}, nil
}

// NewRedisFromClient wraps an existing client, mainly for tests.
func NewRedisFromClient(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// Get looks up a cached classification; redis.Nil maps to a miss.
func (r *Redis) Get(ctx domain.Context, name string) (domain.Classification, bool, error) {
	raw, err := r.client.Get(ctx, redisKeyPrefix+name).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Classification{}, false, nil
	}
	if err != nil {
		return domain.Classification{}, false, fmt.Errorf("op=cache.redis.get: %w", err)
	}
	var c domain.Classification
	if err := json.Unmarshal(raw, &c); err != nil {
		// A corrupt entry is a miss, not a failure.
		return domain.Classification{}, false, nil
	}
	return c, true, nil
}

// Put stores a classification with the cache TTL.
func (r *Redis) Put(ctx domain.Context, name string, c domain.Classification) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("op=cache.redis.marshal: %w", err)
	}
	if err := r.client.Set(ctx, redisKeyPrefix+name, raw, redisTTL).Err(); err != nil {
		return fmt.Errorf("op=cache.redis.set: %w", err)
	}
	return nil
}

// Ping probes the Redis connection, for readiness checks.
func (r *Redis) Ping(ctx domain.Context) error { return r.client.Ping(ctx).Err() }

// Close releases the underlying client.
func (r *Redis) Close() error { return r.client.Close() }
