package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/healthfair/backend/internal/adapters/cache"
	"github.com/healthfair/backend/internal/adapters/database"
	"github.com/healthfair/backend/internal/adapters/events"
	"github.com/healthfair/backend/internal/api/handlers"
	"github.com/healthfair/backend/internal/api/routes"
	"github.com/healthfair/backend/internal/application/services"
	"github.com/healthfair/backend/internal/domain/providers"
	"github.com/healthfair/backend/internal/infrastructure/clients/postgres"
	"github.com/healthfair/backend/internal/infrastructure/clients/redis"
	"github.com/healthfair/backend/internal/infrastructure/observability"
	"github.com/healthfair/backend/pkg/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func serveCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runServer(cmd.Context(), cfg)
		},
	}
}

func runServer(parent context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(shutdownCtx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}

	pgClient, err := postgres.NewClient(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer pgClient.Close()

	// Redis is optional: without it the cache and event bus are per-process
	var cacheProvider providers.CacheProvider
	var eventBus providers.EventBus
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, falling back to in-memory cache and event bus")
		} else {
			defer redisClient.Close()
			cacheProvider = cache.NewRedisAdapter(redisClient, cfg.App.Name)
			eventBus = events.NewRedisEventBus(redisClient)
			log.Info().Str("addr", cfg.Redis.RedisAddr()).Msg("connected to Redis")
		}
	}
	if cacheProvider == nil {
		memoryCache := cache.NewMemoryAdapter()
		defer memoryCache.Close()
		cacheProvider = memoryCache
	}
	if eventBus == nil {
		eventBus = events.NewMemoryEventBus()
	}
	defer func() {
		if err := eventBus.Close(); err != nil {
			log.Error().Err(err).Msg("error closing event bus")
		}
	}()

	loader := cache.NewLoader(cacheProvider, metrics)

	// Adapters
	eventRepo := database.NewEventAdapter(pgClient)
	serviceRepo := database.NewCachedServiceAdapter(database.NewServiceAdapter(pgClient), loader, cfg.Cache.ReferenceTTL)
	queueRepo := database.NewQueueAdapter(pgClient)
	registrationRepo := database.NewRegistrationAdapter(pgClient)

	// Services
	projector := services.NewQueueProjector(cfg.Queue.IntakeNamePattern)
	eventService := services.NewEventService(eventRepo)
	catalogService := services.NewServiceCatalogService(serviceRepo)
	queueService := services.NewQueueService(queueRepo, eventRepo, projector, eventBus, metrics)
	registrationService := services.NewRegistrationService(
		registrationRepo,
		eventRepo,
		serviceRepo,
		cfg.Queue.IntakeNamePattern,
		eventBus,
		metrics,
	)

	// Refresh the catalogue slightly ahead of its TTL
	warmer := services.NewCacheWarmingService(serviceRepo)
	go warmer.StartPeriodicWarming(ctx, cfg.Cache.ReferenceTTL*9/10)

	router := routes.NewRouter(
		handlers.NewEventHandler(eventService),
		handlers.NewServiceHandler(catalogService),
		handlers.NewRegistrationHandler(registrationService),
		handlers.NewQueueHandler(queueService),
		handlers.NewSSEHandler(eventBus),
		pgClient,
		cfg.Server.AllowedOrigins,
		metrics,
	)

	// No WriteTimeout: queue streams stay open until the client leaves.
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:        serverAddr,
		Handler:     router.SetupRoutes(),
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info().Msg("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("server stopped")
	return nil
}
