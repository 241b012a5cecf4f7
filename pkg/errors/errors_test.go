package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "NOT_FOUND: queue entry missing", NewNotFoundError("queue entry missing").Error())

	wrapped := NewInternalError("failed to update", errors.New("connection reset"))
	assert.Equal(t, "INTERNAL: failed to update: connection reset", wrapped.Error())
}

func TestAs_FindsWrappedAppError(t *testing.T) {
	err := fmt.Errorf("register patient: %w", NewValidationError("first name is required"))

	appErr, ok := As(err)
	assert.True(t, ok)
	assert.Equal(t, ErrorTypeValidation, appErr.Type)
	assert.True(t, IsType(err, ErrorTypeValidation))
	assert.False(t, IsType(err, ErrorTypeNotFound))
	assert.False(t, IsType(errors.New("plain"), ErrorTypeInternal))
}

func TestHTTPStatus(t *testing.T) {
	cases := map[*AppError]int{
		NewNotFoundError("x"):      http.StatusNotFound,
		NewValidationError("x"):    http.StatusBadRequest,
		NewConflictError("x", nil): http.StatusConflict,
		NewExternalError("x", nil): http.StatusBadGateway,
		NewInternalError("x", nil): http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, err.HTTPStatus(), err.Error())
	}
}
