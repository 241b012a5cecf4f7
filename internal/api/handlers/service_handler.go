package handlers

import (
	"context"
	"net/http"

	"github.com/healthfair/backend/internal/domain/entities"
)

// ServiceCatalog defines the service definition operations used by the handler.
type ServiceCatalog interface {
	Create(ctx context.Context, service *entities.ServiceDefinition) error
	List(ctx context.Context) ([]*entities.ServiceDefinition, error)
}

// ServiceHandler handles service definition requests
type ServiceHandler struct {
	catalog ServiceCatalog
}

// NewServiceHandler creates a new service handler
func NewServiceHandler(catalog ServiceCatalog) *ServiceHandler {
	return &ServiceHandler{catalog: catalog}
}

// ListServices handles GET /api/services
func (h *ServiceHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	list, err := h.catalog.List(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"services": list,
		"count":    len(list),
	})
}

// CreateService handles POST /api/services
func (h *ServiceHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	var service entities.ServiceDefinition
	if err := decodeJSON(r, &service); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	service.ID = ""

	if err := h.catalog.Create(r.Context(), &service); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, service)
}
