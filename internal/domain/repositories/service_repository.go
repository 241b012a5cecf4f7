package repositories

import (
	"context"

	"github.com/healthfair/backend/internal/domain/entities"
)

// ServiceRepository defines the interface for service definition data operations
type ServiceRepository interface {
	// Create creates a new service definition
	Create(ctx context.Context, service *entities.ServiceDefinition) error

	// List retrieves all service definitions ordered by name
	List(ctx context.Context) ([]*entities.ServiceDefinition, error)
}
