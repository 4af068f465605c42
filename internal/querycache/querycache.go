// Package querycache is an optional, HTTP-layer result cache for the demo
// search server: a Redis-backed cache in front of Engine.Search, with
// singleflight collapsing concurrent identical queries into one engine
// call. It is not part of the core engine — Engine.Search always computes
// a fresh result; nothing here is consulted by the indexing or planning
// layers.
package querycache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/DanieleFedeli/lyra/pkg/config"
	pkgredis "github.com/DanieleFedeli/lyra/pkg/redis"
	"github.com/DanieleFedeli/lyra/pkg/resilience"
)

const keyPrefix = "lyra:search:"

// redisCallTimeout bounds every individual Redis round trip so a slow or
// wedged Redis never stalls a search request beyond this budget.
const redisCallTimeout = 200 * time.Millisecond

// QueryCache caches lyra.SearchResult values produced from a given
// lyra.SearchParams, by way of a generic JSON payload so it has no import
// dependency on the root package. Redis calls go through a circuit breaker
// so a failing cache degrades search into "always compute fresh" instead of
// piling up slow requests against a down dependency.
type QueryCache struct {
	client  *pkgredis.Client
	cfg     config.RedisConfig
	group   singleflight.Group
	breaker *resilience.CircuitBreaker
	logger  *slog.Logger
	hits    atomic.Int64
	misses  atomic.Int64
}

// New returns a QueryCache backed by client.
func New(client *pkgredis.Client, cfg config.RedisConfig) *QueryCache {
	return &QueryCache{
		client:  client,
		cfg:     cfg,
		breaker: resilience.NewCircuitBreaker("query-cache-redis", resilience.CircuitBreakerConfig{}),
		logger:  slog.Default().With("component", "query-cache"),
	}
}

// Get returns the cached result for params, if any. A tripped circuit
// breaker or a Redis timeout counts as a miss, never as a caller-visible
// error — the cache is a pure optimization, not a source of truth.
func (c *QueryCache) Get(ctx context.Context, params any, result any) bool {
	key := c.buildKey(params)
	var data string
	err := c.breaker.Execute(func() error {
		return resilience.WithTimeout(ctx, redisCallTimeout, "query-cache get", func(callCtx context.Context) error {
			var callErr error
			data, callErr = c.client.Get(callCtx, key)
			return callErr
		})
	})
	if err != nil {
		if !pkgredis.IsNilError(err) {
			c.logger.Warn("cache get unavailable", "key", key, "error", err)
		}
		c.misses.Add(1)
		return false
	}
	if err := json.Unmarshal([]byte(data), result); err != nil {
		c.logger.Error("cache unmarshal failed", "key", key, "error", err)
		c.misses.Add(1)
		return false
	}
	c.hits.Add(1)
	return true
}

// Set stores result under the key derived from params. Failures are logged
// and swallowed: a cache write that doesn't land just means the next Get
// misses and recomputes.
func (c *QueryCache) Set(ctx context.Context, params any, result any) {
	key := c.buildKey(params)
	data, err := json.Marshal(result)
	if err != nil {
		c.logger.Error("cache marshal failed", "key", key, "error", err)
		return
	}
	err = c.breaker.Execute(func() error {
		return resilience.WithTimeout(ctx, redisCallTimeout, "query-cache set", func(callCtx context.Context) error {
			return c.client.Set(callCtx, key, data, c.cfg.CacheTTL)
		})
	})
	if err != nil {
		c.logger.Warn("cache set unavailable", "key", key, "error", err)
	}
}

// GetOrCompute returns the cached result for params if present; otherwise
// it calls computeFn, stores the result, and returns it. Concurrent calls
// for the same params collapse onto a single computeFn invocation via
// singleflight. The second return value reports whether the result came
// from cache.
func (c *QueryCache) GetOrCompute(ctx context.Context, params any, out any, computeFn func() (any, error)) (bool, error) {
	if c.Get(ctx, params, out) {
		return true, nil
	}
	key := c.buildKey(params)
	val, err, _ := c.group.Do(key, func() (interface{}, error) {
		if c.Get(ctx, params, out) {
			return out, nil
		}
		result, err := computeFn()
		if err != nil {
			return nil, err
		}
		c.Set(ctx, params, result)
		return result, nil
	})
	if err != nil {
		return false, err
	}
	if val != out {
		data, marshalErr := json.Marshal(val)
		if marshalErr != nil {
			return false, marshalErr
		}
		if err := json.Unmarshal(data, out); err != nil {
			return false, err
		}
	}
	return false, nil
}

// Invalidate clears every cached search result. Unlike Get/Set, a failure
// here is returned to the caller (an insert or delete that can't invalidate
// stale cached results is worth surfacing), after one retry to ride out a
// transient Redis blip.
func (c *QueryCache) Invalidate(ctx context.Context) error {
	pattern := keyPrefix + "*"
	var deleted int64
	err := resilience.Retry(ctx, "query-cache invalidate", resilience.RetryConfig{MaxAttempts: 2}, func() error {
		var err error
		deleted, err = c.client.FlushByPattern(ctx, pattern)
		return err
	})
	if err != nil {
		return fmt.Errorf("invalidating cache: %w", err)
	}
	c.logger.Info("cache invalidate", "keys_deleted", deleted)
	return nil
}

// Stats returns cumulative hit/miss counters.
func (c *QueryCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *QueryCache) buildKey(params any) string {
	data, _ := json.Marshal(params)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s%x", keyPrefix, hash[:16])
}
