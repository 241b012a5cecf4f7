package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// CatalogRefresher reloads the cached service catalogue from its source
type CatalogRefresher interface {
	Refresh(ctx context.Context) error
}

// CacheWarmingService reloads the service catalogue before its cache entry
// expires so registrations never wait on the database for it.
type CacheWarmingService struct {
	catalog CatalogRefresher
}

// NewCacheWarmingService creates a warmer over the cached catalogue
func NewCacheWarmingService(catalog CatalogRefresher) *CacheWarmingService {
	return &CacheWarmingService{catalog: catalog}
}

// WarmCache reloads the catalogue and overwrites the cached copy
func (s *CacheWarmingService) WarmCache(ctx context.Context) error {
	if err := s.catalog.Refresh(ctx); err != nil {
		return err
	}
	log.Debug().Msg("service catalogue cache warmed")
	return nil
}

// StartPeriodicWarming warms immediately and then every interval until ctx
// is done. Interval should be shorter than the cache TTL.
func (s *CacheWarmingService) StartPeriodicWarming(ctx context.Context, interval time.Duration) {
	if err := s.WarmCache(ctx); err != nil {
		log.Warn().Err(err).Msg("initial cache warming failed")
	}
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.WarmCache(ctx); err != nil {
				log.Warn().Err(err).Msg("cache warming failed")
			}
		}
	}
}
