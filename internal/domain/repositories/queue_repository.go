package repositories

import (
	"context"

	"github.com/healthfair/backend/internal/domain/entities"
)

// QueueRepository defines the interface for queue entry data operations
type QueueRepository interface {
	// ListBoardRows retrieves every queue entry of an event joined with its
	// service, visit, patient and assigned staff
	ListBoardRows(ctx context.Context, eventID string) ([]*entities.QueueRow, error)

	// UpdateStatus writes a status change to one entry of an event and
	// returns the updated entry
	UpdateStatus(ctx context.Context, eventID, entryID string, change entities.StatusChange) (*entities.QueueEntry, error)
}

// RegistrationRepository persists a registration in a single transaction
type RegistrationRepository interface {
	// Register inserts the patient, the visit and all queue entries. The
	// visit's queue number is allocated inside the same transaction. Either
	// everything is written or nothing is.
	Register(ctx context.Context, registration *entities.Registration) error
}
