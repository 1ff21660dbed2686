package errors_test

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ideaboard/ideaboard-server/internal/errors"
)

func TestError_IsMatchesByCode(t *testing.T) {
	err := errors.NotFound("idea ideas:x not found")
	assert.ErrorIs(t, err, errors.ErrNotFound)
	assert.NotErrorIs(t, err, errors.ErrValidation)
}

func TestError_WrapPreservesCodeAndCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := errors.Wrap(cause, errors.CodeStorageUnavailable, "backend unreachable")

	assert.ErrorIs(t, err, errors.ErrStorageUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "backend unreachable")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestError_HTTPStatus(t *testing.T) {
	tests := []struct {
		code errors.Code
		want int
	}{
		{errors.CodeNotFound, http.StatusNotFound},
		{errors.CodeValidation, http.StatusBadRequest},
		{errors.CodeStorageUnavailable, http.StatusServiceUnavailable},
		{errors.CodeStorageRejected, http.StatusBadGateway},
		{errors.CodeServerOnly, http.StatusInternalServerError},
		{errors.CodeInvalidIdentity, http.StatusInternalServerError},
		{errors.CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.code.HTTPStatus(), "code %s", tt.code)
	}
}

func TestCode_Retryable(t *testing.T) {
	assert.True(t, errors.CodeStorageUnavailable.Retryable())
	assert.False(t, errors.CodeStorageRejected.Retryable())
	assert.False(t, errors.CodeValidation.Retryable())
	assert.False(t, errors.CodeNotFound.Retryable())
}

func TestError_WithDetails(t *testing.T) {
	base := errors.Validation("title too short")
	detailed := base.WithDetails(map[string]any{"field": "title"})

	require.NotSame(t, base, detailed)
	assert.Nil(t, base.Details)
	assert.NotNil(t, detailed.Details)
	assert.Equal(t, base.Code, detailed.Code)
}
