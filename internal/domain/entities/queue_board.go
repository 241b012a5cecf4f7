package entities

// QueueRow is a queue entry joined with everything a board displays
type QueueRow struct {
	Entry      QueueEntry        `json:"entry"`
	Service    ServiceDefinition `json:"service"`
	Visit      PatientVisit      `json:"visit"`
	Patient    Patient           `json:"patient"`
	DoctorName *string           `json:"doctor_name,omitempty"`
	NurseName  *string           `json:"nurse_name,omitempty"`
}

// ServiceGroup is one service's column on the queue board
type ServiceGroup struct {
	Service  ServiceDefinition `json:"service"`
	Patients []QueueRow        `json:"patients"`
}
