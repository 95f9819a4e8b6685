package errors

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sjrpulse/internal/dataprocessing"
	"sjrpulse/internal/infrastructure"
)

func newTestHandler(includeStack bool) *ErrorHandler {
	return NewErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), includeStack)
}

func TestErrorToProblemDatasetErrors(t *testing.T) {
	h := newTestHandler(false)
	r := httptest.NewRequest(http.MethodGet, "/api/dataset/reload", nil)

	t.Run("missing file carries diagnostics", func(t *testing.T) {
		err := &dataprocessing.MissingFileError{
			Filename:  "scimagojr_2023.csv",
			Dir:       "/data",
			Available: []string{"scimagojr_2022.csv"},
		}

		problem := h.ErrorToProblem(err, r)
		assert.Equal(t, http.StatusNotFound, problem.Status)
		assert.Equal(t, TypeDatasetFileMissing, problem.Type)
		assert.Equal(t, "scimagojr_2023.csv", problem.Extensions["filename"])
		assert.Equal(t, "/data", problem.Extensions["directory"])
		assert.Equal(t, []string{"scimagojr_2022.csv"}, problem.Extensions["available_files"])
	})

	t.Run("wrapped missing file still detected", func(t *testing.T) {
		wrapped := errors.Join(errors.New("load failed"), &dataprocessing.MissingFileError{Filename: "x.csv"})
		problem := h.ErrorToProblem(wrapped, r)
		assert.Equal(t, http.StatusNotFound, problem.Status)
		assert.Equal(t, TypeDatasetFileMissing, problem.Type)
	})

	t.Run("parse error maps to 422 with line", func(t *testing.T) {
		err := &dataprocessing.ParseError{
			Filename: "scimagojr_2023.csv",
			Line:     17,
			Err:      errors.New("wrong number of fields"),
		}

		problem := h.ErrorToProblem(err, r)
		assert.Equal(t, http.StatusUnprocessableEntity, problem.Status)
		assert.Equal(t, TypeDatasetMalformed, problem.Type)
		assert.Equal(t, "scimagojr_2023.csv", problem.Extensions["filename"])
		assert.Equal(t, 17, problem.Extensions["line"])
	})

	t.Run("parse error without line omits extension", func(t *testing.T) {
		err := &dataprocessing.ParseError{Filename: "scimagojr_2023.csv", Err: errors.New("bad header")}
		problem := h.ErrorToProblem(err, r)
		_, present := problem.Extensions["line"]
		assert.False(t, present)
	})
}

func TestErrorToProblemAPIError(t *testing.T) {
	h := newTestHandler(false)
	r := httptest.NewRequest(http.MethodGet, "/api/analytics/rankings", nil)

	tests := []struct {
		name     string
		err      *APIError
		wantType string
	}{
		{"validation", ErrValidationFailed, TypeValidation},
		{"year not found", ErrYearNotFound, TypeNotFound},
		{"dataset not found", ErrDatasetNotFound, TypeDatasetFileMissing},
		{"dataset malformed", ErrDatasetMalformed, TypeDatasetMalformed},
		{"rate limited", ErrRateLimitExceeded, TypeRateLimit},
		{"service unavailable", ErrServiceUnavailable, TypeServiceDown},
		{"internal", ErrInternalServer, TypeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problem := h.ErrorToProblem(tt.err, r)
			assert.Equal(t, tt.err.StatusCode, problem.Status)
			assert.Equal(t, tt.wantType, problem.Type)
			assert.Equal(t, tt.err.ErrorCode, problem.Extensions["error_code"])
		})
	}
}

func TestErrorToProblemFallbacks(t *testing.T) {
	h := newTestHandler(false)
	r := httptest.NewRequest(http.MethodGet, "/api/analytics/years", nil)

	t.Run("context deadline", func(t *testing.T) {
		problem := h.ErrorToProblem(context.DeadlineExceeded, r)
		assert.Equal(t, http.StatusGatewayTimeout, problem.Status)
		assert.Equal(t, TypeTimeout, problem.Type)
	})

	t.Run("not found by message", func(t *testing.T) {
		problem := h.ErrorToProblem(errors.New("area not found"), r)
		assert.Equal(t, http.StatusNotFound, problem.Status)
	})

	t.Run("unknown error is opaque 500", func(t *testing.T) {
		problem := h.ErrorToProblem(errors.New("disk exploded"), r)
		assert.Equal(t, http.StatusInternalServerError, problem.Status)
		assert.NotContains(t, problem.Detail, "disk exploded")
	})
}

func TestHandleErrorWritesProblemJSON(t *testing.T) {
	h := newTestHandler(false)
	r := httptest.NewRequest(http.MethodGet, "/api/analytics/years", nil)
	w := httptest.NewRecorder()

	h.HandleError(w, r, ErrYearNotFound)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, TypeNotFound, body["type"])
	assert.Equal(t, "YEAR_NOT_FOUND", body["error_code"])
	assert.Equal(t, "/api/analytics/years", body["instance"])
}

func TestHandleErrorCarriesTraceID(t *testing.T) {
	h := newTestHandler(false)
	r := httptest.NewRequest(http.MethodGet, "/api/analytics/years", nil)
	r = r.WithContext(infrastructure.WithTraceID(r.Context(), "req-42"))
	w := httptest.NewRecorder()

	h.HandleError(w, r, ErrYearNotFound)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "req-42", body["trace_id"])
}

func TestHandleErrorIncludesStackInDevelopment(t *testing.T) {
	h := newTestHandler(true)
	r := httptest.NewRequest(http.MethodGet, "/api/analytics/years", nil)
	w := httptest.NewRecorder()

	h.HandleError(w, r, errors.New("boom"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "stack")
}

func TestProblemDetailsMarshalExtensions(t *testing.T) {
	problem := NewProblemDetails(http.StatusNotFound, TypeNotFound, "Not Found", "no such year", "/api/analytics/areas").
		WithExtension("year", 1999)

	data, err := json.Marshal(problem)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, float64(404), decoded["status"])
	assert.Equal(t, float64(1999), decoded["year"])
	assert.Equal(t, "no such year", decoded["detail"])
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	h := newTestHandler(false)

	w := httptest.NewRecorder()
	h.NotFound(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	h.MethodNotAllowed(w, httptest.NewRequest(http.MethodDelete, "/api/analytics/years", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestValidationHelpers(t *testing.T) {
	err := ErrValidation("year", "must be between 1900 and 2200")
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", err.ErrorCode)

	multi := NewValidationErrors([]ValidationError{
		{Field: "year", Message: "required"},
		{Field: "limit", Message: "too large"},
	})
	details, ok := multi.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Len(t, details["errors"], 2)
}
