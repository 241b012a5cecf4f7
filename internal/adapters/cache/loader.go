package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/healthfair/backend/internal/domain/providers"
	"github.com/healthfair/backend/internal/infrastructure/observability"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// Loader implements get-or-fetch over a CacheProvider. Concurrent misses
// for the same key share a single call to the fetch function.
type Loader struct {
	cache   providers.CacheProvider
	group   singleflight.Group
	metrics *observability.Metrics
}

// NewLoader creates a loader over cache; metrics may be nil
func NewLoader(cache providers.CacheProvider, metrics *observability.Metrics) *Loader {
	return &Loader{cache: cache, metrics: metrics}
}

// Invalidate drops key so the next GetOrFetch reloads it
func (l *Loader) Invalidate(ctx context.Context, key string) error {
	l.group.Forget(key)
	return l.cache.Delete(ctx, key)
}

// GetOrFetch returns the cached value for key, or calls fetch, stores the
// JSON-encoded result for ttl and returns it. Cache read and write failures
// are logged and fall through to fetch; fetch errors are returned as is and
// never cached.
func GetOrFetch[T any](ctx context.Context, l *Loader, key string, ttl time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	var zero T

	if cached, err := l.cache.Get(ctx, key); err == nil {
		var value T
		if err := json.Unmarshal(cached, &value); err == nil {
			l.metrics.RecordCacheHit(ctx, key)
			return value, nil
		}
		log.Warn().Str("key", key).Msg("discarding undecodable cache entry")
	} else if !errors.Is(err, providers.ErrCacheMiss) {
		log.Warn().Err(err).Str("key", key).Msg("cache read failed")
	}
	l.metrics.RecordCacheMiss(ctx, key)

	// Each caller decodes its own copy of the shared bytes.
	// The shared fetch serves every waiting caller, so one caller going
	// away must not cancel it for the rest.
	raw, err, _ := l.group.Do(key, func() (interface{}, error) {
		shared := context.WithoutCancel(ctx)
		value, err := fetch(shared)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("encode cache value %s: %w", key, err)
		}
		if err := l.cache.Set(shared, key, data, ttlSeconds(ttl)); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache write failed")
		}
		return data, nil
	})
	if err != nil {
		return zero, err
	}

	var value T
	if err := json.Unmarshal(raw.([]byte), &value); err != nil {
		return zero, fmt.Errorf("decode cache value %s: %w", key, err)
	}
	return value, nil
}

// Refresh always calls fetch and overwrites key with the result for a full
// ttl. Readers keep hitting the old entry until the new one is written.
func Refresh[T any](ctx context.Context, l *Loader, key string, ttl time.Duration, fetch func(context.Context) (T, error)) error {
	value, err := fetch(ctx)
	if err != nil {
		return err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache value %s: %w", key, err)
	}
	if err := l.cache.Set(ctx, key, data, ttlSeconds(ttl)); err != nil {
		return fmt.Errorf("refresh cache value %s: %w", key, err)
	}
	return nil
}

// ttlSeconds rounds up so sub-second TTLs still expire
func ttlSeconds(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}
	return int(math.Ceil(ttl.Seconds()))
}
