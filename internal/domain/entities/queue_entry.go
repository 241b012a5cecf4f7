package entities

import "time"

// QueueStatus represents the status of a patient in one service queue
type QueueStatus string

const (
	QueueStatusWaiting    QueueStatus = "waiting"
	QueueStatusInProgress QueueStatus = "in_progress"
	QueueStatusCompleted  QueueStatus = "completed"
)

// Valid reports whether s is one of the statuses a queue entry may be set to
func (s QueueStatus) Valid() bool {
	switch s {
	case QueueStatusWaiting, QueueStatusInProgress, QueueStatusCompleted:
		return true
	}
	return false
}

// Rank orders statuses on a board: waiting, in progress, completed, then
// anything unrecognised.
func (s QueueStatus) Rank() int {
	switch s {
	case QueueStatusWaiting:
		return 0
	case QueueStatusInProgress:
		return 1
	case QueueStatusCompleted:
		return 2
	default:
		return 3
	}
}

// QueueEntry places a patient visit in the queue of one service
type QueueEntry struct {
	ID             string      `json:"id" db:"id"`
	ServiceID      string      `json:"service_id" db:"service_id"`
	PatientVisitID string      `json:"patient_visit_id" db:"patient_visit_id"`
	QueuePosition  *int        `json:"queue_position" db:"queue_position"`
	Status         QueueStatus `json:"status" db:"status"`
	CreatedAt      time.Time   `json:"created_at" db:"created_at"`
	StartedAt      *time.Time  `json:"started_at,omitempty" db:"started_at"`
	CompletedAt    *time.Time  `json:"completed_at,omitempty" db:"completed_at"`
	DoctorID       *string     `json:"doctor_id,omitempty" db:"doctor_id"`
	NurseID        *string     `json:"nurse_id,omitempty" db:"nurse_id"`
}

// Position returns the queue position, treating a missing value as 0
func (e *QueueEntry) Position() int {
	if e.QueuePosition == nil {
		return 0
	}
	return *e.QueuePosition
}

// StatusChange is the set of fields written when a queue entry moves to a
// new status. Nil timestamps are left untouched in storage.
type StatusChange struct {
	Status      QueueStatus
	StartedAt   *time.Time
	CompletedAt *time.Time
}

// NewStatusChange builds the update for moving an entry to status at now.
// Any of the three statuses may be targeted from any other.
func NewStatusChange(status QueueStatus, now time.Time) StatusChange {
	change := StatusChange{Status: status}
	switch status {
	case QueueStatusInProgress:
		change.StartedAt = &now
	case QueueStatusCompleted:
		change.CompletedAt = &now
	}
	return change
}

// Apply writes the change onto the entry
func (e *QueueEntry) Apply(change StatusChange) {
	e.Status = change.Status
	if change.StartedAt != nil {
		started := *change.StartedAt
		e.StartedAt = &started
	}
	if change.CompletedAt != nil {
		completed := *change.CompletedAt
		e.CompletedAt = &completed
	}
}
