package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/healthfair/backend/internal/domain/entities"
	"github.com/healthfair/backend/internal/domain/repositories"
	"github.com/healthfair/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/healthfair/backend/pkg/errors"
)

// ServiceAdapter implements the ServiceRepository interface
type ServiceAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewServiceAdapter creates a new service definition adapter
func NewServiceAdapter(client *postgres.Client) repositories.ServiceRepository {
	return &ServiceAdapter{
		client: client,
		db:     client.Goqu(),
	}
}

// Create creates a new service definition
func (a *ServiceAdapter) Create(ctx context.Context, service *entities.ServiceDefinition) error {
	query, args, err := a.db.Insert("services").Rows(goqu.Record{
		"id":               service.ID,
		"name":             service.Name,
		"description":      service.Description,
		"duration_minutes": service.DurationMinutes,
		"is_intake_gate":   service.IsIntakeGate,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("service conflicts with an existing service or intake gate", err)
		}
		return apperrors.NewInternalError("failed to create service", err)
	}
	return nil
}

// List retrieves all service definitions ordered by name
func (a *ServiceAdapter) List(ctx context.Context) ([]*entities.ServiceDefinition, error) {
	query, args, err := a.db.Select("id", "name", "description", "duration_minutes", "is_intake_gate").
		From("services").
		Order(goqu.I("name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list services", err)
	}
	defer rows.Close()

	services := make([]*entities.ServiceDefinition, 0)
	for rows.Next() {
		svc := &entities.ServiceDefinition{}
		if err := rows.Scan(&svc.ID, &svc.Name, &svc.Description, &svc.DurationMinutes, &svc.IsIntakeGate); err != nil {
			return nil, apperrors.NewInternalError("failed to scan service", err)
		}
		services = append(services, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to list services", err)
	}
	return services, nil
}
