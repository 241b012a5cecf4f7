package entities

import "time"

// PatientVisitStatus represents the status of a patient's attendance at an event
type PatientVisitStatus string

const (
	PatientVisitStatusRegistered PatientVisitStatus = "registered"
	PatientVisitStatusCompleted  PatientVisitStatus = "completed"
)

// PatientVisit is one patient's attendance at one event
type PatientVisit struct {
	ID          string             `json:"id" db:"id"`
	PatientID   string             `json:"patient_id" db:"patient_id"`
	EventID     string             `json:"event_id" db:"event_id"`
	QueueNumber int                `json:"queue_number" db:"queue_number"`
	Status      PatientVisitStatus `json:"status" db:"status"`
	CreatedAt   time.Time          `json:"created_at" db:"created_at"`
}
