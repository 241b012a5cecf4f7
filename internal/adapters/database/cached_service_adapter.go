package database

import (
	"context"
	"time"

	"github.com/healthfair/backend/internal/adapters/cache"
	"github.com/healthfair/backend/internal/domain/entities"
	"github.com/healthfair/backend/internal/domain/repositories"
	"github.com/rs/zerolog/log"
)

const servicesListCacheKey = "services:all"

// CachedServiceAdapter wraps a ServiceRepository with the reference cache.
// Service definitions change rarely and are read on every registration.
type CachedServiceAdapter struct {
	adapter repositories.ServiceRepository
	loader  *cache.Loader
	ttl     time.Duration
}

// NewCachedServiceAdapter creates a new cached service adapter
func NewCachedServiceAdapter(adapter repositories.ServiceRepository, loader *cache.Loader, ttl time.Duration) *CachedServiceAdapter {
	return &CachedServiceAdapter{
		adapter: adapter,
		loader:  loader,
		ttl:     ttl,
	}
}

// Create creates a service definition and drops the cached list
func (a *CachedServiceAdapter) Create(ctx context.Context, service *entities.ServiceDefinition) error {
	if err := a.adapter.Create(ctx, service); err != nil {
		return err
	}
	if err := a.loader.Invalidate(ctx, servicesListCacheKey); err != nil {
		log.Warn().Err(err).Str("key", servicesListCacheKey).Msg("failed to invalidate services cache")
	}
	return nil
}

// List retrieves all service definitions, from cache when fresh
func (a *CachedServiceAdapter) List(ctx context.Context) ([]*entities.ServiceDefinition, error) {
	return cache.GetOrFetch(ctx, a.loader, servicesListCacheKey, a.ttl, a.adapter.List)
}

// Refresh reloads the list from the database and overwrites the cached copy
func (a *CachedServiceAdapter) Refresh(ctx context.Context) error {
	return cache.Refresh(ctx, a.loader, servicesListCacheKey, a.ttl, a.adapter.List)
}
