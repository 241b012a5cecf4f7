package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/healthfair/backend/internal/domain/entities"
	"github.com/healthfair/backend/internal/domain/repositories"
	apperrors "github.com/healthfair/backend/pkg/errors"
)

const (
	defaultEventPageSize = 50
	maxEventPageSize     = 200
)

// EventService handles health fair events.
type EventService struct {
	repo repositories.EventRepository
}

// NewEventService creates a new event service.
func NewEventService(repo repositories.EventRepository) *EventService {
	return &EventService{repo: repo}
}

// Create validates and stores an event.
func (s *EventService) Create(ctx context.Context, event *entities.Event) error {
	event.Name = strings.TrimSpace(event.Name)
	if event.Name == "" {
		return apperrors.NewValidationError("event name is required")
	}
	if event.StartsAt.IsZero() || event.EndsAt.IsZero() {
		return apperrors.NewValidationError("event start and end times are required")
	}
	if event.EndsAt.Before(event.StartsAt) {
		return apperrors.NewValidationError("event cannot end before it starts")
	}
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	return s.repo.Create(ctx, event)
}

// Get returns one event.
func (s *EventService) Get(ctx context.Context, id string) (*entities.Event, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns a page of events, most recent first.
func (s *EventService) List(ctx context.Context, limit, offset int) ([]*entities.Event, error) {
	if limit <= 0 {
		limit = defaultEventPageSize
	}
	if limit > maxEventPageSize {
		limit = maxEventPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}
