package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/healthfair/backend/internal/application/services"
	"github.com/healthfair/backend/internal/domain/entities"
)

// RegistrationService defines the registration operations used by the handler.
type RegistrationService interface {
	Register(ctx context.Context, input services.RegisterPatientInput) (*entities.Registration, error)
}

// RegistrationHandler handles patient registration at an event
type RegistrationHandler struct {
	service RegistrationService
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(service RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{service: service}
}

type patientRequest struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	DateOfBirth  string `json:"date_of_birth"`
	Gender       string `json:"gender"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	MedicalNotes string `json:"medical_notes"`
}

type registrationRequest struct {
	Patient    patientRequest `json:"patient"`
	ServiceIDs []string       `json:"service_ids"`
}

// Register handles POST /api/events/{id}/registrations
func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	if eventID == "" {
		respondWithError(w, http.StatusBadRequest, "event ID is required")
		return
	}

	var payload registrationRequest
	if err := decodeJSON(r, &payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	patient := entities.Patient{
		FirstName:    payload.Patient.FirstName,
		LastName:     payload.Patient.LastName,
		Gender:       payload.Patient.Gender,
		Phone:        payload.Patient.Phone,
		Email:        payload.Patient.Email,
		Address:      payload.Patient.Address,
		MedicalNotes: payload.Patient.MedicalNotes,
	}
	if payload.Patient.DateOfBirth != "" {
		dob, err := time.Parse(time.DateOnly, payload.Patient.DateOfBirth)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "date_of_birth must be YYYY-MM-DD")
			return
		}
		patient.DateOfBirth = &dob
	}

	reg, err := h.service.Register(r.Context(), services.RegisterPatientInput{
		EventID:    eventID,
		Patient:    patient,
		ServiceIDs: payload.ServiceIDs,
	})
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, reg)
}
