package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/healthfair/backend/internal/domain/entities"
	"github.com/healthfair/backend/internal/domain/repositories"
	"github.com/healthfair/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/healthfair/backend/pkg/errors"
)

var eventColumns = []interface{}{"id", "name", "location", "starts_at", "ends_at", "created_at"}

// EventAdapter implements the EventRepository interface
type EventAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewEventAdapter creates a new event adapter
func NewEventAdapter(client *postgres.Client) repositories.EventRepository {
	return &EventAdapter{
		client: client,
		db:     client.Goqu(),
	}
}

// Create creates a new event
func (a *EventAdapter) Create(ctx context.Context, event *entities.Event) error {
	query, args, err := a.db.Insert("events").Rows(goqu.Record{
		"id":         event.ID,
		"name":       event.Name,
		"location":   event.Location,
		"starts_at":  event.StartsAt,
		"ends_at":    event.EndsAt,
		"created_at": event.CreatedAt,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create event", err)
	}
	return nil
}

// GetByID retrieves an event by ID
func (a *EventAdapter) GetByID(ctx context.Context, id string) (*entities.Event, error) {
	query, args, err := a.db.Select(eventColumns...).
		From("events").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	event := &entities.Event{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&event.ID, &event.Name, &event.Location, &event.StartsAt, &event.EndsAt, &event.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) || isInvalidInput(err) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("event with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get event", err)
	}
	return event, nil
}

// List retrieves events, most recent first
func (a *EventAdapter) List(ctx context.Context, limit, offset int) ([]*entities.Event, error) {
	ds := a.db.Select(eventColumns...).
		From("events").
		Order(goqu.I("starts_at").Desc())
	if limit > 0 {
		ds = ds.Limit(uint(limit))
	}
	if offset > 0 {
		ds = ds.Offset(uint(offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list events", err)
	}
	defer rows.Close()

	events := make([]*entities.Event, 0)
	for rows.Next() {
		event := &entities.Event{}
		if err := rows.Scan(&event.ID, &event.Name, &event.Location, &event.StartsAt, &event.EndsAt, &event.CreatedAt); err != nil {
			return nil, apperrors.NewInternalError("failed to scan event", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to list events", err)
	}
	return events, nil
}
