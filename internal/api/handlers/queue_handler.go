package handlers

import (
	"context"
	"net/http"

	"github.com/healthfair/backend/internal/domain/entities"
)

// QueueService defines the queue operations used by the handler.
type QueueService interface {
	GetBoard(ctx context.Context, eventID string) ([]entities.ServiceGroup, error)
	UpdateStatus(ctx context.Context, eventID, entryID string, status entities.QueueStatus) (*entities.QueueEntry, error)
}

// QueueHandler handles queue board requests
type QueueHandler struct {
	service QueueService
}

// NewQueueHandler creates a new queue handler
func NewQueueHandler(service QueueService) *QueueHandler {
	return &QueueHandler{service: service}
}

type updateStatusRequest struct {
	Status entities.QueueStatus `json:"status"`
}

// GetBoard handles GET /api/events/{id}/queue
func (h *QueueHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	if eventID == "" {
		respondWithError(w, http.StatusBadRequest, "event ID is required")
		return
	}

	board, err := h.service.GetBoard(r.Context(), eventID)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, board)
}

// UpdateStatus handles PATCH /api/events/{id}/queue/entries/{entryId}/status
func (h *QueueHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	entryID := r.PathValue("entryId")
	if eventID == "" || entryID == "" {
		respondWithError(w, http.StatusBadRequest, "event ID and entry ID are required")
		return
	}

	var payload updateStatusRequest
	if err := decodeJSON(r, &payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	entry, err := h.service.UpdateStatus(r.Context(), eventID, entryID, payload.Status)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, entry)
}
