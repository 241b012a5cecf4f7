package entities

// Registration is everything written when a patient is signed in at an
// event: the patient, the visit and one queue entry per service.
type Registration struct {
	Patient Patient       `json:"patient"`
	Visit   PatientVisit  `json:"visit"`
	Entries []*QueueEntry `json:"entries"`
}
