package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/funzone/internal/errors"
)

func TestAs_UnwrapsAppError(t *testing.T) {
	orig := errors.NewNotFoundError("session", "abc")
	wrapped := fmt.Errorf("lookup: %w", orig)

	got := errors.As(wrapped)
	require.NotNil(t, got)
	assert.Same(t, orig, got)
	assert.Equal(t, http.StatusNotFound, got.Status)
}

func TestAs_WrapsUnknownAsInternal(t *testing.T) {
	cause := stderrors.New("disk on fire")

	got := errors.As(cause)
	assert.Equal(t, errors.ErrCodeInternal, got.Code)
	assert.Equal(t, http.StatusInternalServerError, got.Status)
	assert.ErrorIs(t, got, cause)
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *errors.AppError
		code   string
		status int
	}{
		{"validation", errors.NewValidationError("difficulty", "unknown"), errors.ErrCodeValidation, http.StatusBadRequest},
		{"bad request", errors.NewBadRequestError("bad json"), errors.ErrCodeBadRequest, http.StatusBadRequest},
		{"conflict", errors.NewConflictError("no active session"), errors.ErrCodeConflict, http.StatusConflict},
		{"unavailable", errors.NewUnavailableError("mail", stderrors.New("smtp")), errors.ErrCodeUnavailable, http.StatusInternalServerError},
		{"rate limited", errors.NewRateLimitedError(), errors.ErrCodeRateLimited, http.StatusTooManyRequests},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Contains(t, tt.err.Error(), tt.code)
		})
	}
}
