package errors

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{
			name:       "validation error",
			err:        ErrValidation("range", "start must be a date"),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeValidation,
		},
		{
			name:       "not found",
			err:        NotFoundError("summary table"),
			wantStatus: http.StatusNotFound,
			wantType:   TypeNotFound,
		},
		{
			name:       "dataset load failure",
			err:        DatasetLoadError(errors.New("no such file")),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
		},
		{
			name:       "unknown error is opaque 500",
			err:        errors.New("sql: connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
		},
		{
			name:       "deadline exceeded maps to timeout",
			err:        context.DeadlineExceeded,
			wantStatus: http.StatusGatewayTimeout,
			wantType:   TypeTimeout,
		},
	}

	handler := NewErrorHandler(testLogger(), false)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
			rec := httptest.NewRecorder()

			handler.HandleError(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var problem map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
			assert.Equal(t, tt.wantType, problem["type"])
			assert.Equal(t, float64(tt.wantStatus), problem["status"])
			assert.Equal(t, "/api/dashboard", problem["instance"])
			assert.Contains(t, problem, "trace_id")
		})
	}
}

func TestHandleErrorHidesInternalDetail(t *testing.T) {
	handler := NewErrorHandler(testLogger(), false)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	rec := httptest.NewRecorder()
	handler.HandleError(rec, req, errors.New("password=hunter2 leaked"))

	assert.NotContains(t, rec.Body.String(), "hunter2")
}

func TestNotFoundHandler(t *testing.T) {
	handler := NewErrorHandler(testLogger(), false)

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	rec := httptest.NewRecorder()
	handler.NotFound(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProblemDetailsMarshalIncludesExtensions(t *testing.T) {
	pd := NewProblemDetails(http.StatusBadRequest, TypeValidation, "Bad Request", "start malformed", "/api/dashboard")
	pd.WithExtension("field", "start")

	data, err := json.Marshal(pd)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "start", out["field"])
	assert.Equal(t, "start malformed", out["detail"])
}

func TestAPIErrorRoundTrip(t *testing.T) {
	err := New(http.StatusNotFound, "TABLE_NOT_FOUND", "summary table not found")

	var apiErr *APIError
	require.True(t, errors.As(error(err), &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "TABLE_NOT_FOUND", apiErr.ErrorCode)
	assert.Equal(t, "summary table not found", apiErr.Error())
}
