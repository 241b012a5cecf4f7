package database_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/healthfair/backend/internal/adapters/database"
	"github.com/healthfair/backend/internal/domain/entities"
	apperrors "github.com/healthfair/backend/pkg/errors"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistration() *entities.Registration {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	intakePos, dentalPos := 1, 2
	return &entities.Registration{
		Patient: entities.Patient{ID: "pat-1", FirstName: "Ada", LastName: "Obi", CreatedAt: now},
		Visit: entities.PatientVisit{
			ID: "pv-1", PatientID: "pat-1", EventID: "evt-1",
			Status: entities.PatientVisitStatusRegistered, CreatedAt: now,
		},
		Entries: []*entities.QueueEntry{
			{ID: "qe-1", ServiceID: "svc-knn", PatientVisitID: "pv-1", QueuePosition: &intakePos, Status: entities.QueueStatusWaiting, CreatedAt: now},
			{ID: "qe-2", ServiceID: "svc-dental", PatientVisitID: "pv-1", QueuePosition: &dentalPos, Status: entities.QueueStatusWaiting, CreatedAt: now},
		},
	}
}

func TestRegistrationAdapter_Register(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "patients"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT COALESCE\(MAX\("queue_number"\), 0\) FROM "patient_visits" WHERE \("event_id" = 'evt-1'\)`).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(41))
	mock.ExpectExec(`INSERT INTO "patient_visits" .+ 42`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "queue_entries" .+'qe-1'.+'qe-2'`).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	reg := newRegistration()
	err := database.NewRegistrationAdapter(client).Register(context.Background(), reg)

	require.NoError(t, err)
	assert.Equal(t, 42, reg.Visit.QueueNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationAdapter_RollsBackOnEntryFailure(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "patients"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT COALESCE`).WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO "patient_visits"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "queue_entries"`).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := database.NewRegistrationAdapter(client).Register(context.Background(), newRegistration())

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInternal))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationAdapter_QueueNumberCollision(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "patients"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT COALESCE`).WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(3))
	mock.ExpectExec(`INSERT INTO "patient_visits"`).WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	err := database.NewRegistrationAdapter(client).Register(context.Background(), newRegistration())

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationAdapter_UnknownEvent(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "patients"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT COALESCE`).WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO "patient_visits"`).WillReturnError(&pq.Error{Code: "23503"})
	mock.ExpectRollback()

	err := database.NewRegistrationAdapter(client).Register(context.Background(), newRegistration())

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
