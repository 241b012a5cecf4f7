package routes

import (
	"context"
	"net/http"

	"github.com/healthfair/backend/internal/api/handlers"
	"github.com/healthfair/backend/internal/api/middleware"
	"github.com/healthfair/backend/internal/infrastructure/observability"
)

// HealthChecker reports whether a dependency is reachable
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	eventHandler        *handlers.EventHandler
	serviceHandler      *handlers.ServiceHandler
	registrationHandler *handlers.RegistrationHandler
	queueHandler        *handlers.QueueHandler
	sseHandler          *handlers.SSEHandler

	database       HealthChecker
	allowedOrigins []string
	metrics        *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	eventHandler *handlers.EventHandler,
	serviceHandler *handlers.ServiceHandler,
	registrationHandler *handlers.RegistrationHandler,
	queueHandler *handlers.QueueHandler,
	sseHandler *handlers.SSEHandler,
	database HealthChecker,
	allowedOrigins []string,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                 http.NewServeMux(),
		eventHandler:        eventHandler,
		serviceHandler:      serviceHandler,
		registrationHandler: registrationHandler,
		queueHandler:        queueHandler,
		sseHandler:          sseHandler,
		database:            database,
		allowedOrigins:      allowedOrigins,
		metrics:             metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", r.health)

	// Event endpoints
	r.mux.HandleFunc("GET /api/events", r.eventHandler.ListEvents)
	r.mux.HandleFunc("POST /api/events", r.eventHandler.CreateEvent)
	r.mux.HandleFunc("GET /api/events/{id}", r.eventHandler.GetEvent)

	// Service catalogue endpoints
	r.mux.HandleFunc("GET /api/services", r.serviceHandler.ListServices)
	r.mux.HandleFunc("POST /api/services", r.serviceHandler.CreateService)

	// Registration and queue endpoints
	r.mux.HandleFunc("POST /api/events/{id}/registrations", r.registrationHandler.Register)
	r.mux.HandleFunc("GET /api/events/{id}/queue", r.queueHandler.GetBoard)
	r.mux.HandleFunc("PATCH /api/events/{id}/queue/entries/{entryId}/status", r.queueHandler.UpdateStatus)

	// Real-time queue updates
	if r.sseHandler != nil {
		r.mux.HandleFunc("GET /api/stream/events/{id}/queue", r.sseHandler.StreamQueue)
	}

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}

func (r *Router) health(w http.ResponseWriter, req *http.Request) {
	if r.database != nil {
		if err := r.database.Ping(req.Context()); err != nil {
			observability.LoggerFromContext(req.Context()).Error().Err(err).Msg("health check failed")
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		return
	}
}
