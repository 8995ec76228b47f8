package repositories

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/storefront/storefront-backend/utils"
)

var ErrCacheMiss = errors.New("cache miss")

// Cache is the key/value store behind read-through caching, view deduplication,
// rate limiting and the token deny list.
type Cache interface {
	// Get returns ErrCacheMiss when the key does not exist
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// SetNX reports whether the key was created
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, keys ...string) error
	DeletePrefix(ctx context.Context, prefix string) error
	// Incr increments a counter, setting ttl when the counter is created
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

func CacheKey(parts ...string) string {
	return strings.Join(parts, ":")
}

// CachedJSON reads the value under key, or computes it with load and stores it for ttl.
// Cache failures are logged and never fail the call.
func CachedJSON[T any](
	ctx context.Context,
	cache Cache,
	namespace, key string,
	ttl time.Duration,
	load func(ctx context.Context) (T, error),
) (T, error) {
	logger := utils.LoggerFromContext(ctx)

	raw, err := cache.Get(ctx, key)
	switch {
	case err == nil:
		var value T
		if jsonErr := json.Unmarshal(raw, &value); jsonErr == nil {
			utils.MetricCacheLookups.WithLabelValues(namespace, "hit").Inc()
			return value, nil
		}
		logger.WarnContext(ctx, "discarding undecodable cache entry", "key", key)
		utils.MetricCacheLookups.WithLabelValues(namespace, "error").Inc()
	case errors.Is(err, ErrCacheMiss):
		utils.MetricCacheLookups.WithLabelValues(namespace, "miss").Inc()
	default:
		logger.WarnContext(ctx, "cache read failed", "key", key, "error", err.Error())
		utils.MetricCacheLookups.WithLabelValues(namespace, "error").Inc()
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		logger.WarnContext(ctx, "could not encode value for cache", "key", key, "error", err.Error())
		return value, nil
	}
	if err := cache.Set(ctx, key, encoded, ttl); err != nil {
		logger.WarnContext(ctx, "cache write failed", "key", key, "error", err.Error())
	}
	return value, nil
}
