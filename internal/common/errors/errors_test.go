// internal/common/errors/errors_test.go
package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Conversion
// ==========================

func TestConvertToBPMNError(t *testing.T) {
	tests := []struct {
		name            string
		err             *StandardError
		expectedCode    string
		expectedRetries int
	}{
		{"invalid input", NewInvalidInputError("days: must be >= 0"), "INVALID_INPUT", 0},
		{"parse", NewParseError(fmt.Errorf("unexpected end of JSON input")), "PARSE_ERROR", 0},
		{"plan details", NewPlanDetailsMissingError("destination"), "PLAN_DETAILS_MISSING", 0},
		{"cache", NewCacheUnavailableError(fmt.Errorf("dial tcp: refused")), "CACHE_UNAVAILABLE", 2},
		{"timeout", NewTimeoutError("redis", context.DeadlineExceeded), "TIMEOUT_ERROR", 2},
		{"external", NewExternalServiceError("zeebe", fmt.Errorf("unavailable")), "EXTERNAL_SERVICE_ERROR", 3},
		{"task failed", NewTaskFailedError(ErrCodeItineraryBuildFailed, fmt.Errorf("x")), "ITINERARY_BUILD_FAILED", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bpmn := ConvertToBPMNError(tt.err)
			assert.Equal(t, tt.expectedCode, bpmn.Code)
			assert.Equal(t, tt.expectedRetries, bpmn.Retries)
			assert.Equal(t, tt.expectedCode, bpmn.ErrorVariables["originalErrorCode"])
			assert.NotEmpty(t, bpmn.ErrorVariables["timestamp"])
		})
	}
}

func TestBPMNError_ToErrorVariables(t *testing.T) {
	stdErr := NewInvalidInputError("city is required").WithMetadata("field", "city")
	vars := ConvertToBPMNError(stdErr).ToErrorVariables()

	assert.Equal(t, "INVALID_INPUT", vars["errorCode"])
	assert.Equal(t, "Invalid input", vars["errorMessage"])
	assert.Equal(t, "city is required", vars["errorDetails"])
	assert.Equal(t, false, vars["retryable"])
	assert.Equal(t, "city", vars["field"])
}

func TestStandardError_Error(t *testing.T) {
	assert.Equal(t, "StandardError[INVALID_INPUT]: Invalid input: days", NewInvalidInputError("days").Error())
	assert.Equal(t, "StandardError[INVALID_INPUT]: Invalid input", NewInvalidInputError("").Error())
}

// ==========================
// Decision
// ==========================

func TestDecide(t *testing.T) {
	tests := []struct {
		name            string
		err             *StandardError
		jobRetries      int32
		expectedAction  Action
		expectedRetries int32
	}{
		{"validation throws", NewInvalidInputError("x"), 3, ActionThrow, 0},
		{"cache fails with retries", NewCacheUnavailableError(fmt.Errorf("x")), 3, ActionFail, 1},
		{"external fails with retries", NewExternalServiceError("s", fmt.Errorf("x")), 5, ActionFail, 2},
		{"job has fewer retries", NewExternalServiceError("s", fmt.Errorf("x")), 2, ActionFail, 1},
		{"job out of retries", NewTimeoutError("s", fmt.Errorf("x")), 0, ActionThrow, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, retries := Decide(tt.err, tt.jobRetries)
			assert.Equal(t, tt.expectedAction, action)
			assert.Equal(t, tt.expectedRetries, retries)
		})
	}
}

func TestNormalize(t *testing.T) {
	wrapped := fmt.Errorf("execute: %w", NewInvalidInputError("budget"))
	assert.Equal(t, ErrCodeInvalidInput, Normalize(wrapped).Code)

	timeout := fmt.Errorf("redis get: %w", context.DeadlineExceeded)
	assert.Equal(t, ErrCodeTimeout, Normalize(timeout).Code)

	plain := Normalize(stderrors.New("boom"))
	assert.Equal(t, ErrCodeInternal, plain.Code)
	assert.Equal(t, "boom", plain.Details)
	assert.False(t, plain.Retryable)
}

func TestAsStandardError(t *testing.T) {
	_, ok := AsStandardError(stderrors.New("plain"))
	assert.False(t, ok)

	stdErr, ok := AsStandardError(fmt.Errorf("wrap: %w", NewRegistryNotFoundError("book-flight")))
	require.True(t, ok)
	assert.Equal(t, ErrCodeRegistryNotFound, stdErr.Code)
	assert.Contains(t, stdErr.Details, "book-flight")
}

// ==========================
// Utilities
// ==========================

func TestGetErrorCategory(t *testing.T) {
	tests := map[ErrorCode]string{
		ErrCodeInvalidInput:               "VALIDATION",
		ErrCodeParseError:                 "VALIDATION",
		ErrCodePlanDetailsMissing:         "VALIDATION",
		ErrCodeIntentClassificationFailed: "INTENT",
		ErrCodeEstimationFailed:           "ESTIMATION",
		ErrCodeBudgetAllocationFailed:     "ESTIMATION",
		ErrCodeItineraryBuildFailed:       "PLANNING",
		ErrCodePlanCompositionFailed:      "PLANNING",
		ErrCodeCacheUnavailable:           "CACHE",
		ErrCodeExternalServiceError:       "INFRASTRUCTURE",
		ErrCodeTimeout:                    "INFRASTRUCTURE",
		ErrCodeInternal:                   "OTHER",
	}
	for code, expected := range tests {
		assert.Equal(t, expected, GetErrorCategory(code), string(code))
	}
}

func TestIsRetryableErrorCode(t *testing.T) {
	assert.True(t, IsRetryableErrorCode(ErrCodeCacheUnavailable))
	assert.True(t, IsRetryableErrorCode(ErrCodeExternalServiceError))
	assert.False(t, IsRetryableErrorCode(ErrCodeInvalidInput))
	assert.False(t, IsRetryableErrorCode(ErrCodeBusinessRuleViolation))
}
