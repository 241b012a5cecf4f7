package cache

import (
	"context"
	"time"

	"github.com/healthfair/backend/internal/domain/providers"
	"github.com/jellydator/ttlcache/v3"
)

// MemoryAdapter is an in-process CacheProvider used when Redis is not
// configured. Reads do not extend an entry's lifetime.
type MemoryAdapter struct {
	items *ttlcache.Cache[string, []byte]
}

// NewMemoryAdapter creates an empty in-memory cache and starts its expiry
// loop; call Close to stop it
func NewMemoryAdapter() *MemoryAdapter {
	items := ttlcache.New[string, []byte](
		ttlcache.WithDisableTouchOnHit[string, []byte](),
	)
	go items.Start()
	return &MemoryAdapter{items: items}
}

// Get retrieves a copy of the value stored under key
func (a *MemoryAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	item := a.items.Get(key)
	if item == nil || item.IsExpired() {
		return nil, providers.ErrCacheMiss
	}
	return clone(item.Value()), nil
}

// Set stores a value in cache with expiration; zero means no expiry
func (a *MemoryAdapter) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	a.set(key, value, time.Duration(expirationSeconds)*time.Second)
	return nil
}

func (a *MemoryAdapter) set(key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = ttlcache.NoTTL
	}
	a.items.Set(key, clone(value), ttl)
}

// Delete removes a value from cache
func (a *MemoryAdapter) Delete(ctx context.Context, key string) error {
	a.items.Delete(key)
	return nil
}

// Close stops the expiry loop
func (a *MemoryAdapter) Close() {
	a.items.Stop()
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
