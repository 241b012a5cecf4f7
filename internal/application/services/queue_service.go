package services

import (
	"context"
	"fmt"
	"time"

	"github.com/healthfair/backend/internal/domain/entities"
	"github.com/healthfair/backend/internal/domain/providers"
	"github.com/healthfair/backend/internal/domain/repositories"
	"github.com/healthfair/backend/internal/infrastructure/observability"
	apperrors "github.com/healthfair/backend/pkg/errors"
	"github.com/rs/zerolog/log"
)

// QueueService serves queue boards and status changes for an event
type QueueService struct {
	queueRepo repositories.QueueRepository
	eventRepo repositories.EventRepository
	projector *QueueProjector
	eventBus  providers.EventBus
	metrics   *observability.Metrics
	now       func() time.Time
}

// NewQueueService creates a new queue service. eventBus and metrics may be nil.
func NewQueueService(
	queueRepo repositories.QueueRepository,
	eventRepo repositories.EventRepository,
	projector *QueueProjector,
	eventBus providers.EventBus,
	metrics *observability.Metrics,
) *QueueService {
	return &QueueService{
		queueRepo: queueRepo,
		eventRepo: eventRepo,
		projector: projector,
		eventBus:  eventBus,
		metrics:   metrics,
		now:       time.Now,
	}
}

// GetBoard returns the projected queue board of an event
func (s *QueueService) GetBoard(ctx context.Context, eventID string) ([]entities.ServiceGroup, error) {
	ctx, span := observability.StartSpan(ctx, "QueueService.GetBoard")
	defer span.End()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	rows, err := s.queueRepo.ListBoardRows(ctx, eventID)
	if err != nil {
		observability.RecordError(span, err)
		log.Error().Err(err).Str("event_id", eventID).Msg("failed to load queue rows")
		return nil, err
	}

	return s.projector.Project(rows), nil
}

// UpdateStatus moves one queue entry of an event to status. Any of the three
// statuses may follow any other.
func (s *QueueService) UpdateStatus(ctx context.Context, eventID, entryID string, status entities.QueueStatus) (*entities.QueueEntry, error) {
	ctx, span := observability.StartSpan(ctx, "QueueService.UpdateStatus")
	defer span.End()

	if !status.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid queue status %q", status))
	}

	change := entities.NewStatusChange(status, s.now().UTC())
	entry, err := s.queueRepo.UpdateStatus(ctx, eventID, entryID, change)
	if err != nil {
		observability.RecordError(span, err)
		log.Error().Err(err).
			Str("event_id", eventID).
			Str("entry_id", entryID).
			Str("status", string(status)).
			Msg("failed to update queue entry status")
		return nil, err
	}

	s.metrics.RecordStatusChange(ctx, string(status))

	event := entities.NewQueueEvent(eventID, entities.QueueEventTypeStatusChanged)
	event.EntryID = entry.ID
	event.VisitID = entry.PatientVisitID
	event.ServiceID = entry.ServiceID
	event.Status = entry.Status
	s.publish(ctx, event)

	return entry, nil
}

func (s *QueueService) publish(ctx context.Context, event *entities.QueueEvent) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, providers.GetQueueChannel(event.EventID), event); err != nil {
		log.Warn().Err(err).
			Str("event_id", event.EventID).
			Str("type", string(event.Type)).
			Msg("failed to publish queue event")
	}
}
