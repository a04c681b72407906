package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	errbuilder "github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorCategories(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		category   ErrorCategory
		httpStatus int
	}{
		{
			name:       "validation",
			err:        NewValidationError("bad input"),
			category:   CategoryValidation,
			httpStatus: http.StatusBadRequest,
		},
		{
			name:       "external API",
			err:        NewExternalAPIError("GitHub", fmt.Errorf("boom")),
			category:   CategoryExternal,
			httpStatus: http.StatusBadGateway,
		},
		{
			name:       "not found",
			err:        NewNotFoundError("repository octocat/missing not found"),
			category:   CategoryExternal,
			httpStatus: http.StatusNotFound,
		},
		{
			name:       "timeout",
			err:        NewTimeoutError("deadline exceeded", nil),
			category:   CategoryTimeout,
			httpStatus: http.StatusGatewayTimeout,
		},
		{
			name:       "contract violation",
			err:        NewContractViolation(fmt.Errorf("expected 5 dimension results, got 4")),
			category:   CategoryContract,
			httpStatus: http.StatusInternalServerError,
		},
		{
			name:       "internal",
			err:        NewInternalError("unexpected", nil),
			category:   CategoryInternal,
			httpStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.category, tt.err.Category)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
			assert.False(t, tt.err.Timestamp.IsZero())
		})
	}
}

func TestContractViolationKeepsCause(t *testing.T) {
	cause := fmt.Errorf("dimension testing scored 30 above max 25")
	err := NewContractViolation(cause)

	assert.Equal(t, CategoryContract, err.Category)
	assert.ErrorIs(t, err, cause)
}

func TestToAppErrorPassesThroughAppErrors(t *testing.T) {
	original := NewContractViolation(fmt.Errorf("duplicate dimension"))

	converted := ToAppError(original)
	assert.Same(t, original, converted)
	assert.Equal(t, CategoryContract, converted.Category)
}

func TestToAppErrorMapsErrbuilderCodes(t *testing.T) {
	tests := []struct {
		name       string
		code       errbuilder.ErrCode
		category   ErrorCategory
		httpStatus int
	}{
		{"invalid argument", errbuilder.CodeInvalidArgument, CategoryValidation, http.StatusBadRequest},
		{"unavailable", errbuilder.CodeUnavailable, CategoryExternal, http.StatusBadGateway},
		{"deadline exceeded", errbuilder.CodeDeadlineExceeded, CategoryTimeout, http.StatusGatewayTimeout},
		{"resource exhausted", errbuilder.CodeResourceExhausted, CategoryRateLimit, http.StatusTooManyRequests},
		{"internal", errbuilder.CodeInternal, CategoryInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errbuilder.New().WithCode(tt.code).WithMsg("msg")

			converted := ToAppError(err)
			require.NotNil(t, converted)
			assert.Equal(t, tt.category, converted.Category)
			assert.Equal(t, tt.httpStatus, converted.HTTPStatus)
		})
	}
}

func TestToAppErrorContextErrors(t *testing.T) {
	assert.Equal(t, CategoryTimeout, ToAppError(context.DeadlineExceeded).Category)
	assert.Equal(t, CategoryTimeout, ToAppError(context.Canceled).Category)
}

func TestToAppErrorNil(t *testing.T) {
	assert.Nil(t, ToAppError(nil))
}

func TestMarshalJSONWithoutCause(t *testing.T) {
	// NewValidationError carries no cause; marshalling must still work
	// because handlers serialize AppErrors directly.
	data, err := json.Marshal(NewValidationError("bad input"))
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "bad input", body["error"])
	assert.Equal(t, string(CategoryValidation), body["category"])
	assert.NotContains(t, body, "Cause")
}
