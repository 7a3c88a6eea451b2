package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsCarrySentinels(t *testing.T) {
	assert.True(t, errors.Is(NotFound("review", "abc"), ErrNotFound))
	assert.True(t, errors.Is(InvalidInput("bad rating"), ErrInvalidInput))
	assert.True(t, errors.Is(Unauthorized("no shop"), ErrUnauthorized))
	assert.True(t, errors.Is(MethodNotAllowed("PUT"), ErrMethodNotAllowed))
}

func TestSentinelsSurviveWrapping(t *testing.T) {
	err := fmt.Errorf("moderate review: %w", NotFound("review", "abc"))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))

	var appErr *AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NotFound("review", "abc"), http.StatusNotFound},
		{"invalid input", InvalidInput("bad"), http.StatusBadRequest},
		{"unauthorized", Unauthorized("no shop"), http.StatusUnauthorized},
		{"method not allowed", MethodNotAllowed("PUT"), http.StatusMethodNotAllowed},
		{"internal", Internal(errors.New("boom")), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
		{"bare sentinel", ErrInvalidInput, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestInternalHidesCause(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := Internal(cause)

	assert.Equal(t, "an internal error occurred", err.Message)
	assert.True(t, errors.Is(err, cause))
}

func TestErrorString(t *testing.T) {
	err := InvalidInput("rating must be a number between 1 and 5")
	assert.Contains(t, err.Error(), "INVALID_INPUT")
	assert.Contains(t, err.Error(), "rating must be a number between 1 and 5")
}
