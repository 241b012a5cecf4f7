package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/healthfair/backend/internal/api/handlers"
	"github.com/healthfair/backend/internal/domain/entities"
	apperrors "github.com/healthfair/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockQueueService struct {
	mock.Mock
}

func (m *MockQueueService) GetBoard(ctx context.Context, eventID string) ([]entities.ServiceGroup, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.ServiceGroup), args.Error(1)
}

func (m *MockQueueService) UpdateStatus(ctx context.Context, eventID, entryID string, status entities.QueueStatus) (*entities.QueueEntry, error) {
	args := m.Called(ctx, eventID, entryID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.QueueEntry), args.Error(1)
}

func TestQueueHandler_GetBoard(t *testing.T) {
	t.Run("returns the board", func(t *testing.T) {
		svc := new(MockQueueService)
		svc.On("GetBoard", mock.Anything, "evt-1").Return([]entities.ServiceGroup{
			{
				Service:  entities.ServiceDefinition{ID: "svc-knn", Name: "Know Your Numbers", IsIntakeGate: true},
				Patients: []entities.QueueRow{{Entry: entities.QueueEntry{ID: "qe-1", Status: entities.QueueStatusWaiting}}},
			},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/events/evt-1/queue", nil)
		req.SetPathValue("id", "evt-1")
		w := httptest.NewRecorder()
		handlers.NewQueueHandler(svc).GetBoard(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var board []entities.ServiceGroup
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &board))
		require.Len(t, board, 1)
		assert.Equal(t, "qe-1", board[0].Patients[0].Entry.ID)
	})

	t.Run("unknown event is 404", func(t *testing.T) {
		svc := new(MockQueueService)
		svc.On("GetBoard", mock.Anything, "missing").Return(nil, apperrors.NewNotFoundError("event with id missing not found"))

		req := httptest.NewRequest(http.MethodGet, "/api/events/missing/queue", nil)
		req.SetPathValue("id", "missing")
		w := httptest.NewRecorder()
		handlers.NewQueueHandler(svc).GetBoard(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "event with id missing not found")
	})

	t.Run("internal errors are not leaked", func(t *testing.T) {
		svc := new(MockQueueService)
		svc.On("GetBoard", mock.Anything, "evt-1").Return(nil, apperrors.NewInternalError("failed to list queue entries", errors.New("pq: password authentication failed")))

		req := httptest.NewRequest(http.MethodGet, "/api/events/evt-1/queue", nil)
		req.SetPathValue("id", "evt-1")
		w := httptest.NewRecorder()
		handlers.NewQueueHandler(svc).GetBoard(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "password")
	})
}

func TestQueueHandler_UpdateStatus(t *testing.T) {
	newRequest := func(body string) *http.Request {
		req := httptest.NewRequest(http.MethodPatch, "/api/events/evt-1/queue/entries/qe-1/status", strings.NewReader(body))
		req.SetPathValue("id", "evt-1")
		req.SetPathValue("entryId", "qe-1")
		return req
	}

	t.Run("updates the entry", func(t *testing.T) {
		svc := new(MockQueueService)
		svc.On("UpdateStatus", mock.Anything, "evt-1", "qe-1", entities.QueueStatusCompleted).
			Return(&entities.QueueEntry{ID: "qe-1", Status: entities.QueueStatusCompleted}, nil)

		w := httptest.NewRecorder()
		handlers.NewQueueHandler(svc).UpdateStatus(w, newRequest(`{"status":"completed"}`))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"completed"`)
		svc.AssertExpectations(t)
	})

	t.Run("invalid status is 400", func(t *testing.T) {
		svc := new(MockQueueService)
		svc.On("UpdateStatus", mock.Anything, "evt-1", "qe-1", entities.QueueStatus("done")).
			Return(nil, apperrors.NewValidationError(`invalid queue status "done"`))

		w := httptest.NewRecorder()
		handlers.NewQueueHandler(svc).UpdateStatus(w, newRequest(`{"status":"done"}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed body is 400", func(t *testing.T) {
		svc := new(MockQueueService)

		w := httptest.NewRecorder()
		handlers.NewQueueHandler(svc).UpdateStatus(w, newRequest(`{"status":`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
