package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/healthfair/backend/internal/domain/entities"
)

// EventService defines the event operations used by the handler.
type EventService interface {
	Create(ctx context.Context, event *entities.Event) error
	Get(ctx context.Context, id string) (*entities.Event, error)
	List(ctx context.Context, limit, offset int) ([]*entities.Event, error)
}

// EventHandler handles health fair event requests
type EventHandler struct {
	service EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(service EventService) *EventHandler {
	return &EventHandler{service: service}
}

type eventRequest struct {
	Name     string    `json:"name"`
	Location string    `json:"location"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

// CreateEvent handles POST /api/events
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var payload eventRequest
	if err := decodeJSON(r, &payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	event := &entities.Event{
		Name:     payload.Name,
		Location: payload.Location,
		StartsAt: payload.StartsAt,
		EndsAt:   payload.EndsAt,
	}
	if err := h.service.Create(r.Context(), event); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, event)
}

// GetEvent handles GET /api/events/{id}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, event)
}

// ListEvents handles GET /api/events
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit, _ := strconv.Atoi(query.Get("limit"))
	offset, _ := strconv.Atoi(query.Get("offset"))

	events, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"events": events,
		"count":  len(events),
	})
}
