package entities

import "strings"

// ServiceDefinition is a station patients can be queued for at a fair
// (screening, dental, optician, ECG, ...).
type ServiceDefinition struct {
	ID              string `json:"id" db:"id"`
	Name            string `json:"name" db:"name"`
	Description     string `json:"description" db:"description"`
	DurationMinutes int    `json:"duration_minutes" db:"duration_minutes"`
	// IsIntakeGate marks the service every patient must complete before
	// the other services show them on their boards.
	IsIntakeGate bool `json:"is_intake_gate" db:"is_intake_gate"`
}

// NameMatches reports whether the service name contains pattern,
// ignoring case. An empty pattern never matches.
func (s ServiceDefinition) NameMatches(pattern string) bool {
	if pattern == "" {
		return false
	}
	return strings.Contains(strings.ToLower(s.Name), strings.ToLower(pattern))
}
