package entities

import (
	"time"

	"github.com/google/uuid"
)

// QueueEventType represents the type of queue event
type QueueEventType string

const (
	QueueEventTypeStatusChanged     QueueEventType = "queue_entry.status_changed"
	QueueEventTypePatientRegistered QueueEventType = "patient.registered"
)

// QueueEvent notifies board viewers that an event's queue changed
type QueueEvent struct {
	ID        string         `json:"id"`
	EventID   string         `json:"event_id"`
	Type      QueueEventType `json:"type"`
	EntryID   string         `json:"entry_id,omitempty"`
	VisitID   string         `json:"visit_id,omitempty"`
	ServiceID string         `json:"service_id,omitempty"`
	Status    QueueStatus    `json:"status,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// NewQueueEvent creates a new queue event stamped with the current time
func NewQueueEvent(eventID string, eventType QueueEventType) *QueueEvent {
	return &QueueEvent{
		ID:        uuid.New().String(),
		EventID:   eventID,
		Type:      eventType,
		Timestamp: time.Now(),
	}
}
