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

var queueEntryColumns = []interface{}{
	"id", "service_id", "patient_visit_id", "queue_position", "status",
	"created_at", "started_at", "completed_at", "doctor_id", "nurse_id",
}

// QueueAdapter implements the QueueRepository interface
type QueueAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewQueueAdapter creates a new queue adapter
func NewQueueAdapter(client *postgres.Client) repositories.QueueRepository {
	return &QueueAdapter{
		client: client,
		db:     client.Goqu(),
	}
}

// ListBoardRows retrieves every queue entry of an event with its joins
func (a *QueueAdapter) ListBoardRows(ctx context.Context, eventID string) ([]*entities.QueueRow, error) {
	query, args, err := a.db.From(goqu.T("queue_entries").As("qe")).
		Select(
			goqu.I("qe.id"), goqu.I("qe.service_id"), goqu.I("qe.patient_visit_id"),
			goqu.I("qe.queue_position"), goqu.I("qe.status"), goqu.I("qe.created_at"),
			goqu.I("qe.started_at"), goqu.I("qe.completed_at"), goqu.I("qe.doctor_id"), goqu.I("qe.nurse_id"),
			goqu.I("s.name"), goqu.I("s.description"), goqu.I("s.duration_minutes"), goqu.I("s.is_intake_gate"),
			goqu.I("pv.patient_id"), goqu.I("pv.event_id"), goqu.I("pv.queue_number"), goqu.I("pv.status"), goqu.I("pv.created_at"),
			goqu.I("p.first_name"), goqu.I("p.last_name"), goqu.I("p.gender"), goqu.I("p.phone"),
			goqu.I("d.name"), goqu.I("n.name"),
		).
		InnerJoin(goqu.T("services").As("s"), goqu.On(goqu.I("s.id").Eq(goqu.I("qe.service_id")))).
		InnerJoin(goqu.T("patient_visits").As("pv"), goqu.On(goqu.I("pv.id").Eq(goqu.I("qe.patient_visit_id")))).
		InnerJoin(goqu.T("patients").As("p"), goqu.On(goqu.I("p.id").Eq(goqu.I("pv.patient_id")))).
		LeftJoin(goqu.T("doctors").As("d"), goqu.On(goqu.I("d.id").Eq(goqu.I("qe.doctor_id")))).
		LeftJoin(goqu.T("nurses").As("n"), goqu.On(goqu.I("n.id").Eq(goqu.I("qe.nurse_id")))).
		Where(goqu.I("pv.event_id").Eq(eventID)).
		Order(goqu.I("qe.created_at").Asc(), goqu.I("qe.id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build queue board query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list queue entries", err)
	}
	defer rows.Close()

	result := make([]*entities.QueueRow, 0)
	for rows.Next() {
		row := &entities.QueueRow{}
		var (
			position               sql.NullInt64
			startedAt, completedAt sql.NullTime
			doctorID, nurseID      sql.NullString
			doctorName, nurseName  sql.NullString
		)

		err := rows.Scan(
			&row.Entry.ID, &row.Entry.ServiceID, &row.Entry.PatientVisitID,
			&position, &row.Entry.Status, &row.Entry.CreatedAt,
			&startedAt, &completedAt, &doctorID, &nurseID,
			&row.Service.Name, &row.Service.Description, &row.Service.DurationMinutes, &row.Service.IsIntakeGate,
			&row.Visit.PatientID, &row.Visit.EventID, &row.Visit.QueueNumber, &row.Visit.Status, &row.Visit.CreatedAt,
			&row.Patient.FirstName, &row.Patient.LastName, &row.Patient.Gender, &row.Patient.Phone,
			&doctorName, &nurseName,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan queue entry", err)
		}

		applyNullableEntryFields(&row.Entry, position, startedAt, completedAt, doctorID, nurseID)
		row.Service.ID = row.Entry.ServiceID
		row.Visit.ID = row.Entry.PatientVisitID
		row.Patient.ID = row.Visit.PatientID
		if doctorName.Valid {
			row.DoctorName = &doctorName.String
		}
		if nurseName.Valid {
			row.NurseName = &nurseName.String
		}

		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to list queue entries", err)
	}

	return result, nil
}

// UpdateStatus writes a status change to one entry of an event. Only the
// timestamps present in the change are written.
func (a *QueueAdapter) UpdateStatus(ctx context.Context, eventID, entryID string, change entities.StatusChange) (*entities.QueueEntry, error) {
	record := goqu.Record{"status": change.Status}
	if change.StartedAt != nil {
		record["started_at"] = *change.StartedAt
	}
	if change.CompletedAt != nil {
		record["completed_at"] = *change.CompletedAt
	}

	eventVisits := a.db.From("patient_visits").Select("id").Where(goqu.Ex{"event_id": eventID})

	query, args, err := a.db.Update("queue_entries").
		Set(record).
		Where(
			goqu.Ex{"id": entryID},
			goqu.I("patient_visit_id").In(eventVisits),
		).
		Returning(queueEntryColumns...).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build update query", err)
	}

	entry, err := scanQueueEntry(a.client.DB().QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) || isInvalidInput(err) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("queue entry with id %s not found in event %s", entryID, eventID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to update queue entry status", err)
	}
	return entry, nil
}

func scanQueueEntry(row *sql.Row) (*entities.QueueEntry, error) {
	entry := &entities.QueueEntry{}
	var (
		position               sql.NullInt64
		startedAt, completedAt sql.NullTime
		doctorID, nurseID      sql.NullString
	)

	err := row.Scan(
		&entry.ID, &entry.ServiceID, &entry.PatientVisitID, &position, &entry.Status,
		&entry.CreatedAt, &startedAt, &completedAt, &doctorID, &nurseID,
	)
	if err != nil {
		return nil, err
	}

	applyNullableEntryFields(entry, position, startedAt, completedAt, doctorID, nurseID)
	return entry, nil
}

func applyNullableEntryFields(entry *entities.QueueEntry, position sql.NullInt64, startedAt, completedAt sql.NullTime, doctorID, nurseID sql.NullString) {
	if position.Valid {
		p := int(position.Int64)
		entry.QueuePosition = &p
	}
	if startedAt.Valid {
		entry.StartedAt = &startedAt.Time
	}
	if completedAt.Valid {
		entry.CompletedAt = &completedAt.Time
	}
	if doctorID.Valid {
		entry.DoctorID = &doctorID.String
	}
	if nurseID.Valid {
		entry.NurseID = &nurseID.String
	}
}
