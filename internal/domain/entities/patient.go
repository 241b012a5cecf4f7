package entities

import "time"

// Patient holds identifying, contact and medical details for a registrant
type Patient struct {
	ID           string     `json:"id" db:"id"`
	FirstName    string     `json:"first_name" db:"first_name"`
	LastName     string     `json:"last_name" db:"last_name"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty" db:"date_of_birth"`
	Gender       string     `json:"gender" db:"gender"`
	Phone        string     `json:"phone" db:"phone"`
	Email        string     `json:"email" db:"email"`
	Address      string     `json:"address" db:"address"`
	MedicalNotes string     `json:"medical_notes" db:"medical_notes"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

// FullName returns the display name used on queue boards
func (p Patient) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	default:
		return p.FirstName + " " + p.LastName
	}
}
