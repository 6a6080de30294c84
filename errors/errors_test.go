package errors

import (
	stdErrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	err := ErrInvalidPayload(stdErrors.New("unexpected EOF"))
	assert.Equal(t, "[INVALID_PAYLOAD] Invalid JSON payload: unexpected EOF", err.Error())
	assert.Equal(t, http.StatusBadRequest, err.HTTPCode)

	assert.Equal(t, "[MISSING_CALL_ID] Missing call_id", ErrMissingCallID().Error())
}

func TestAppError_As(t *testing.T) {
	raw := stdErrors.New("boom")
	var err error = ErrInternal(raw)

	var appErr AppError
	assert.True(t, stdErrors.As(err, &appErr))
	assert.Equal(t, ErrorCode_INTERNAL, appErr.Code)
	assert.True(t, stdErrors.Is(err, raw))
}

func TestAppError_WithDetail(t *testing.T) {
	err := ErrMissingTranscript("c1")
	assert.Equal(t, "c1", err.Details["call_id"])
	assert.Equal(t, "No transcript", err.Message)
}

func TestErrorCode_String(t *testing.T) {
	assert.Equal(t, "INTERNAL", ErrorCode_INTERNAL.String())
	assert.Equal(t, "UNKNOWN", ErrorCode(99).String())
}
