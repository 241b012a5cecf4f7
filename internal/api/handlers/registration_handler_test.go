package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/healthfair/backend/internal/api/handlers"
	"github.com/healthfair/backend/internal/application/services"
	"github.com/healthfair/backend/internal/domain/entities"
	apperrors "github.com/healthfair/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRegistrationService struct {
	mock.Mock
}

func (m *MockRegistrationService) Register(ctx context.Context, input services.RegisterPatientInput) (*entities.Registration, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Registration), args.Error(1)
}

func registrationRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/events/evt-1/registrations", strings.NewReader(body))
	req.SetPathValue("id", "evt-1")
	return req
}

func TestRegistrationHandler_Register(t *testing.T) {
	t.Run("creates the registration", func(t *testing.T) {
		svc := new(MockRegistrationService)
		svc.On("Register", mock.Anything, mock.MatchedBy(func(in services.RegisterPatientInput) bool {
			return in.EventID == "evt-1" &&
				in.Patient.FirstName == "Ada" &&
				in.Patient.DateOfBirth != nil && in.Patient.DateOfBirth.Year() == 1990 &&
				len(in.ServiceIDs) == 2
		})).Return(&entities.Registration{
			Visit: entities.PatientVisit{ID: "pv-1", QueueNumber: 4},
		}, nil)

		w := httptest.NewRecorder()
		handlers.NewRegistrationHandler(svc).Register(w, registrationRequest(
			`{"patient":{"first_name":"Ada","last_name":"Obi","date_of_birth":"1990-05-01"},"service_ids":["svc-dental","svc-ecg"]}`,
		))

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"queue_number":4`)
		svc.AssertExpectations(t)
	})

	t.Run("bad date of birth", func(t *testing.T) {
		svc := new(MockRegistrationService)

		w := httptest.NewRecorder()
		handlers.NewRegistrationHandler(svc).Register(w, registrationRequest(`{"patient":{"first_name":"Ada","date_of_birth":"01/05/1990"}}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("unknown fields are rejected", func(t *testing.T) {
		svc := new(MockRegistrationService)

		w := httptest.NewRecorder()
		handlers.NewRegistrationHandler(svc).Register(w, registrationRequest(`{"patient":{"first_name":"Ada"},"services":["x"]}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("queue number collision is 409", func(t *testing.T) {
		svc := new(MockRegistrationService)
		svc.On("Register", mock.Anything, mock.Anything).Return(nil, apperrors.NewConflictError("queue number already taken, retry the registration", nil))

		w := httptest.NewRecorder()
		handlers.NewRegistrationHandler(svc).Register(w, registrationRequest(`{"patient":{"first_name":"Ada"}}`))

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}
