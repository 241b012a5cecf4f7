package repositories

import (
	"context"

	"github.com/healthfair/backend/internal/domain/entities"
)

// EventRepository defines the interface for health fair event data operations
type EventRepository interface {
	// Create creates a new event
	Create(ctx context.Context, event *entities.Event) error

	// GetByID retrieves an event by ID
	GetByID(ctx context.Context, id string) (*entities.Event, error)

	// List retrieves events, most recent first
	List(ctx context.Context, limit, offset int) ([]*entities.Event, error)
}
