package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sjrpulse/internal/config"
	"sjrpulse/internal/services"
)

func newHealthTestHandler(t *testing.T, dataset *services.DatasetService) *HealthHandler {
	t.Helper()
	logger := testLogger()
	svc := services.NewHealthService("0.1.0", "", config.PathsConfig{}, dataset, logger)
	return NewHealthHandler(svc, logger)
}

func TestHealthCheck(t *testing.T) {
	handler := newHealthTestHandler(t, nil)

	rec := httptest.NewRecorder()
	handler.HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
	assert.Contains(t, rec.Body.String(), `"version":"0.1.0"`)
}

func TestReadinessCheckNotReady(t *testing.T) {
	handler := newHealthTestHandler(t, nil)

	rec := httptest.NewRecorder()
	handler.ReadinessCheck(rec, httptest.NewRequest(http.MethodGet, "/api/health/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_ready")
}

func TestLivenessCheck(t *testing.T) {
	handler := newHealthTestHandler(t, nil)

	rec := httptest.NewRecorder()
	handler.LivenessCheck(rec, httptest.NewRequest(http.MethodGet, "/api/health/live", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alive")
}

func TestVersion(t *testing.T) {
	handler := newHealthTestHandler(t, nil)

	rec := httptest.NewRecorder()
	handler.Version(rec, httptest.NewRequest(http.MethodGet, "/api/version", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "0.1.0")
}
