package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIErrorIncludesCause(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := NewAPIError("request failed", 502, nil).WithCause(cause)

	assert.Equal(t, "request failed: connection reset", err.Error())
	assert.True(t, stderrors.Is(err, cause))
}

func TestAPIErrorExposesStatus(t *testing.T) {
	var err error = NewAPIError("HTTP error! status: 502", 502, nil)

	var apiErr *APIError
	require.True(t, stderrors.As(err, &apiErr))
	assert.Equal(t, 502, apiErr.StatusCode)
	assert.Equal(t, CodeAPIError, apiErr.Code)
}

func TestStoreErrorCarriesRecord(t *testing.T) {
	cause := stderrors.New("timeout")
	err := NewStoreError("update failed", "update", 42, 0, cause)

	assert.Equal(t, int64(42), err.RecordID)
	assert.Equal(t, "update", err.Operation)
	assert.Equal(t, int64(42), err.Context["record_id"])
	assert.ErrorIs(t, err, cause)
}

func TestValidationErrorNamesField(t *testing.T) {
	err := NewValidationError("word is required", "word", "")

	assert.Equal(t, "word", err.Field)
	assert.Equal(t, 400, err.StatusCode)
	assert.Equal(t, "word is required", err.Error())
}
