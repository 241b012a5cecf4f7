package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/healthfair/backend/internal/domain/entities"
	"github.com/healthfair/backend/internal/domain/repositories"
	apperrors "github.com/healthfair/backend/pkg/errors"
)

// ServiceCatalogService manages the services offered at fairs.
type ServiceCatalogService struct {
	repo repositories.ServiceRepository
}

// NewServiceCatalogService creates a new catalog service.
func NewServiceCatalogService(repo repositories.ServiceRepository) *ServiceCatalogService {
	return &ServiceCatalogService{repo: repo}
}

// Create validates and stores a service definition.
func (s *ServiceCatalogService) Create(ctx context.Context, service *entities.ServiceDefinition) error {
	service.Name = strings.TrimSpace(service.Name)
	if service.Name == "" {
		return apperrors.NewValidationError("service name is required")
	}
	if service.DurationMinutes < 0 {
		return apperrors.NewValidationError("service duration cannot be negative")
	}
	if service.ID == "" {
		service.ID = uuid.New().String()
	}
	return s.repo.Create(ctx, service)
}

// List returns every service ordered by name.
func (s *ServiceCatalogService) List(ctx context.Context) ([]*entities.ServiceDefinition, error) {
	return s.repo.List(ctx)
}
