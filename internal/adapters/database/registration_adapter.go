package database

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/healthfair/backend/internal/domain/entities"
	"github.com/healthfair/backend/internal/domain/repositories"
	"github.com/healthfair/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/healthfair/backend/pkg/errors"
	"github.com/rs/zerolog/log"
)

// RegistrationAdapter implements the RegistrationRepository interface
type RegistrationAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewRegistrationAdapter creates a new registration adapter
func NewRegistrationAdapter(client *postgres.Client) repositories.RegistrationRepository {
	return &RegistrationAdapter{
		client: client,
		db:     client.Goqu(),
	}
}

// Register writes the patient, visit and queue entries in one transaction
// and sets the visit's queue number.
func (a *RegistrationAdapter) Register(ctx context.Context, reg *entities.Registration) (err error) {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewInternalError("failed to begin registration transaction", err)
	}
	defer func() {
		if err == nil {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Str("visit_id", reg.Visit.ID).Msg("failed to roll back registration")
		}
	}()

	query, args, err := tx.Insert("patients").Rows(patientRecord(&reg.Patient)).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build patient insert", err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create patient", err)
	}

	query, args, err = tx.From("patient_visits").
		Select(goqu.COALESCE(goqu.MAX("queue_number"), 0)).
		Where(goqu.Ex{"event_id": reg.Visit.EventID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build queue number query", err)
	}
	var lastNumber int
	if err = tx.QueryRowContext(ctx, query, args...).Scan(&lastNumber); err != nil {
		return apperrors.NewInternalError("failed to allocate queue number", err)
	}
	reg.Visit.QueueNumber = lastNumber + 1

	query, args, err = tx.Insert("patient_visits").Rows(goqu.Record{
		"id":           reg.Visit.ID,
		"patient_id":   reg.Visit.PatientID,
		"event_id":     reg.Visit.EventID,
		"queue_number": reg.Visit.QueueNumber,
		"status":       reg.Visit.Status,
		"created_at":   reg.Visit.CreatedAt,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build visit insert", err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		switch {
		case isUniqueViolation(err):
			return apperrors.NewConflictError("queue number already taken, retry the registration", err)
		case isForeignKeyViolation(err):
			return apperrors.NewNotFoundError(fmt.Sprintf("event with id %s not found", reg.Visit.EventID))
		}
		return apperrors.NewInternalError("failed to create patient visit", err)
	}

	if len(reg.Entries) > 0 {
		rows := make([]interface{}, 0, len(reg.Entries))
		for _, entry := range reg.Entries {
			rows = append(rows, queueEntryRecord(entry))
		}
		query, args, err = tx.Insert("queue_entries").Rows(rows...).ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build queue entry insert", err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			if isForeignKeyViolation(err) {
				return apperrors.NewValidationError("queue entry references an unknown service")
			}
			return apperrors.NewInternalError("failed to create queue entries", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit registration", err)
	}
	return nil
}

func patientRecord(p *entities.Patient) goqu.Record {
	record := goqu.Record{
		"id":            p.ID,
		"first_name":    p.FirstName,
		"last_name":     p.LastName,
		"gender":        p.Gender,
		"phone":         p.Phone,
		"email":         p.Email,
		"address":       p.Address,
		"medical_notes": p.MedicalNotes,
		"created_at":    p.CreatedAt,
		"date_of_birth": nil,
	}
	if p.DateOfBirth != nil {
		record["date_of_birth"] = p.DateOfBirth.Format("2006-01-02")
	}
	return record
}

func queueEntryRecord(e *entities.QueueEntry) goqu.Record {
	record := goqu.Record{
		"id":               e.ID,
		"service_id":       e.ServiceID,
		"patient_visit_id": e.PatientVisitID,
		"status":           e.Status,
		"created_at":       e.CreatedAt,
		"queue_position":   nil,
		"doctor_id":        nil,
		"nurse_id":         nil,
	}
	if e.QueuePosition != nil {
		record["queue_position"] = *e.QueuePosition
	}
	if e.DoctorID != nil {
		record["doctor_id"] = *e.DoctorID
	}
	if e.NurseID != nil {
		record["nurse_id"] = *e.NurseID
	}
	return record
}
