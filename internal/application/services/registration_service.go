package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/healthfair/backend/internal/domain/entities"
	"github.com/healthfair/backend/internal/domain/providers"
	"github.com/healthfair/backend/internal/domain/repositories"
	"github.com/healthfair/backend/internal/infrastructure/observability"
	apperrors "github.com/healthfair/backend/pkg/errors"
	"github.com/rs/zerolog/log"
)

// RegisterPatientInput is a registration request: who, and which services
// besides intake they want to visit.
type RegisterPatientInput struct {
	EventID    string
	Patient    entities.Patient
	ServiceIDs []string
}

// RegistrationService signs patients into an event
type RegistrationService struct {
	registrations repositories.RegistrationRepository
	events        repositories.EventRepository
	services      repositories.ServiceRepository
	intakePattern string
	eventBus      providers.EventBus
	metrics       *observability.Metrics
	now           func() time.Time
}

// NewRegistrationService creates a new registration service. services should
// be the cached repository; eventBus and metrics may be nil.
func NewRegistrationService(
	registrations repositories.RegistrationRepository,
	events repositories.EventRepository,
	services repositories.ServiceRepository,
	intakePattern string,
	eventBus providers.EventBus,
	metrics *observability.Metrics,
) *RegistrationService {
	return &RegistrationService{
		registrations: registrations,
		events:        events,
		services:      services,
		intakePattern: intakePattern,
		eventBus:      eventBus,
		metrics:       metrics,
		now:           time.Now,
	}
}

// Register creates the patient, a visit with the next queue number, an intake
// entry at position 1 and one waiting entry per selected service.
func (s *RegistrationService) Register(ctx context.Context, input RegisterPatientInput) (*entities.Registration, error) {
	ctx, span := observability.StartSpan(ctx, "RegistrationService.Register")
	defer span.End()

	patient := input.Patient
	patient.FirstName = strings.TrimSpace(patient.FirstName)
	patient.LastName = strings.TrimSpace(patient.LastName)
	if patient.FirstName == "" {
		return nil, apperrors.NewValidationError("patient first name is required")
	}

	if _, err := s.events.GetByID(ctx, input.EventID); err != nil {
		return nil, err
	}

	catalog, err := s.services.List(ctx)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	intake, err := s.findIntake(catalog)
	if err != nil {
		return nil, err
	}

	selected, err := selectServices(catalog, intake.ID, input.ServiceIDs)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	patient.ID = uuid.New().String()
	patient.CreatedAt = now

	reg := &entities.Registration{
		Patient: patient,
		Visit: entities.PatientVisit{
			ID:        uuid.New().String(),
			PatientID: patient.ID,
			EventID:   input.EventID,
			Status:    entities.PatientVisitStatusRegistered,
			CreatedAt: now,
		},
	}
	for i, serviceID := range append([]string{intake.ID}, selected...) {
		position := i + 1
		reg.Entries = append(reg.Entries, &entities.QueueEntry{
			ID:             uuid.New().String(),
			ServiceID:      serviceID,
			PatientVisitID: reg.Visit.ID,
			QueuePosition:  &position,
			Status:         entities.QueueStatusWaiting,
			CreatedAt:      now,
		})
	}

	if err := s.registrations.Register(ctx, reg); err != nil {
		observability.RecordError(span, err)
		log.Error().Err(err).Str("event_id", input.EventID).Msg("failed to register patient")
		return nil, err
	}

	s.metrics.RecordRegistration(ctx, len(reg.Entries))
	log.Info().
		Str("event_id", input.EventID).
		Str("visit_id", reg.Visit.ID).
		Int("queue_number", reg.Visit.QueueNumber).
		Int("services", len(reg.Entries)).
		Msg("patient registered")

	if s.eventBus != nil {
		event := entities.NewQueueEvent(input.EventID, entities.QueueEventTypePatientRegistered)
		event.VisitID = reg.Visit.ID
		if err := s.eventBus.Publish(ctx, providers.GetQueueChannel(input.EventID), event); err != nil {
			log.Warn().Err(err).Str("event_id", input.EventID).Msg("failed to publish registration event")
		}
	}

	return reg, nil
}

func (s *RegistrationService) findIntake(catalog []*entities.ServiceDefinition) (*entities.ServiceDefinition, error) {
	for _, svc := range catalog {
		if svc.IsIntakeGate {
			return svc, nil
		}
	}
	for _, svc := range catalog {
		if svc.NameMatches(s.intakePattern) {
			log.Warn().Str("service", svc.Name).Msg("no service flagged as intake gate, using name match")
			return svc, nil
		}
	}
	return nil, apperrors.NewValidationError("no intake service is configured")
}

// selectServices de-duplicates ids, drops the intake id and rejects ids not
// in the catalog. Order of first appearance is kept.
func selectServices(catalog []*entities.ServiceDefinition, intakeID string, ids []string) ([]string, error) {
	known := make(map[string]struct{}, len(catalog))
	for _, svc := range catalog {
		known[svc.ID] = struct{}{}
	}

	seen := map[string]struct{}{intakeID: {}}
	selected := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return nil, apperrors.NewValidationError(fmt.Sprintf("unknown service id %s", id))
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		selected = append(selected, id)
	}
	return selected, nil
}
