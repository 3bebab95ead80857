// Package cache memoizes planner estimates in process (go-cache) and,
// when configured, in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"travel-planner-workers/internal/common/logger"
	"travel-planner-workers/internal/common/metrics"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// Lookup results recorded in travel_estimate_cache_total.
const (
	ResultLocalHit = "local_hit"
	ResultRedisHit = "redis_hit"
	ResultMiss     = "miss"
	ResultError    = "error"
)

// Store is a byte-oriented key/value store with expiry.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RedisStore is a Store on go-redis.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

// LocalStore is an in-process Store on go-cache.
type LocalStore struct {
	c *gocache.Cache
}

func NewLocalStore(ttl time.Duration) *LocalStore {
	return &LocalStore{c: gocache.New(ttl, 2*ttl)}
}

func (s *LocalStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := s.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	return v.([]byte), true, nil
}

// Set stores value; ttl <= 0 uses the store default.
func (s *LocalStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	s.c.Set(key, value, ttl)
	return nil
}

// Len is the number of live entries.
func (s *LocalStore) Len() int {
	return s.c.ItemCount()
}

// EstimateCache layers a local store in front of an optional remote one.
// Remote failures are logged and never surface to callers.
type EstimateCache struct {
	prefix string
	ttl    time.Duration
	local  *LocalStore
	remote Store
	logger logger.Logger
}

// Options configures New.
type Options struct {
	Prefix   string
	TTL      time.Duration
	LocalTTL time.Duration
	Remote   Store // nil keeps the cache process-local
}

func New(opts Options, log logger.Logger) *EstimateCache {
	if opts.Prefix == "" {
		opts.Prefix = "travel"
	}
	if opts.TTL <= 0 {
		opts.TTL = 10 * time.Minute
	}
	if opts.LocalTTL <= 0 {
		opts.LocalTTL = time.Minute
	}
	return &EstimateCache{
		prefix: opts.Prefix,
		ttl:    opts.TTL,
		local:  NewLocalStore(opts.LocalTTL),
		remote: opts.Remote,
		logger: log.WithFields(map[string]interface{}{"component": "estimate-cache"}),
	}
}

// Key builds "<prefix>:<kind>:<part>:..." with each part trimmed and lowercased.
func (c *EstimateCache) Key(kind string, parts ...string) string {
	prefix := "travel"
	if c != nil {
		prefix = c.prefix
	}
	normalized := make([]string, 0, len(parts)+2)
	normalized = append(normalized, prefix, kind)
	for _, p := range parts {
		normalized = append(normalized, strings.ToLower(strings.TrimSpace(p)))
	}
	return strings.Join(normalized, ":")
}

// FormatNumber renders a float for use as a key part.
func FormatNumber(v float64) string {
	return fmt.Sprintf("%g", v)
}

// Fetch returns the cached value for key, or calls compute and caches its
// result. A nil cache always computes.
func Fetch[T any](ctx context.Context, c *EstimateCache, kind, key string, compute func() (T, error)) (T, error) {
	if c == nil {
		return compute()
	}

	var out T
	if data, ok, _ := c.local.Get(ctx, key); ok && json.Unmarshal(data, &out) == nil {
		c.record(kind, ResultLocalHit)
		return out, nil
	}

	result := ResultMiss
	if c.remote != nil {
		data, ok, err := c.remote.Get(ctx, key)
		switch {
		case err != nil:
			result = ResultError
			c.logger.Warn("estimate cache read failed", map[string]interface{}{"key": key, "error": err})
		case ok:
			if err := json.Unmarshal(data, &out); err == nil {
				c.record(kind, ResultRedisHit)
				_ = c.local.Set(ctx, key, data, 0)
				return out, nil
			}
			c.logger.Warn("discarding undecodable cache entry", map[string]interface{}{"key": key})
		}
	}

	c.record(kind, result)
	out, err := compute()
	if err != nil {
		return out, err
	}

	data, err := json.Marshal(out)
	if err != nil {
		return out, nil
	}
	_ = c.local.Set(ctx, key, data, 0)
	if c.remote != nil {
		if err := c.remote.Set(ctx, key, data, c.ttl); err != nil {
			c.logger.Warn("estimate cache write failed", map[string]interface{}{"key": key, "error": err})
		}
	}
	return out, nil
}

func (c *EstimateCache) record(kind, result string) {
	metrics.EstimateCacheLookups.WithLabelValues(kind, result).Inc()
}
