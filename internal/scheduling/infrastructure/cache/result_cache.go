// Package cache provides an optional result cache in front of the solve
// command: identical requests (including weights and seed) hash to the
// same key, and the solver's determinism guarantees a cache hit is
// answer-equivalent to a fresh solve. Absent configuration, NoopCache
// makes the cache invisible to correctness.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kilgorjn/patient-scheduling/internal/scheduling/application"
)

// ResultCache memoizes solve responses by request content.
type ResultCache interface {
	Get(ctx context.Context, req application.SolveRequest) (application.SolveResponse, bool, error)
	Set(ctx context.Context, req application.SolveRequest, resp application.SolveResponse) error
}

// Key hashes the canonical JSON encoding of a request, including options,
// into a stable cache key.
func Key(req application.SolveRequest) (string, error) {
	encoded, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("cache: encode request: %w", err)
	}
	sum := sha256.Sum256(encoded)
	return "clinicsolve:" + hex.EncodeToString(sum[:]), nil
}

// NoopCache never stores or returns anything; it is the default when no
// cache backend is configured.
type NoopCache struct{}

func (NoopCache) Get(context.Context, application.SolveRequest) (application.SolveResponse, bool, error) {
	return application.SolveResponse{}, false, nil
}

func (NoopCache) Set(context.Context, application.SolveRequest, application.SolveResponse) error {
	return nil
}

// RedisCache backs the cache with go-redis.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache parses a redis:// URL and returns a ready RedisCache.
func NewRedisCache(url string, ttl time.Duration) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("cache: parse redis url: %w", err)
	}
	return &RedisCache{client: redis.NewClient(opts), ttl: ttl}, nil
}

func (c *RedisCache) Get(ctx context.Context, req application.SolveRequest) (application.SolveResponse, bool, error) {
	key, err := Key(req)
	if err != nil {
		return application.SolveResponse{}, false, err
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return application.SolveResponse{}, false, nil
		}
		return application.SolveResponse{}, false, fmt.Errorf("cache: get: %w", err)
	}
	var resp application.SolveResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return application.SolveResponse{}, false, fmt.Errorf("cache: decode cached response: %w", err)
	}
	return resp, true, nil
}

func (c *RedisCache) Set(ctx context.Context, req application.SolveRequest, resp application.SolveResponse) error {
	key, err := Key(req)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("cache: encode response: %w", err)
	}
	if err := c.client.Set(ctx, key, encoded, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache: set: %w", err)
	}
	return nil
}

// Close releases the underlying redis client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
