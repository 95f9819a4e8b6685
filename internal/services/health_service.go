package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"sjrpulse/internal/config"
)

// HealthService provides health check functionality
type HealthService struct {
	version   string
	buildTime string
	paths     config.PathsConfig
	dataset   *DatasetService
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Dataset   map[string]interface{} `json:"dataset,omitempty"`
}

// NewHealthService creates a new health service with injected dependencies
func NewHealthService(version, buildTime string, paths config.PathsConfig, dataset *DatasetService, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("HealthService initialized",
		slog.String("version", version),
		slog.String("build_time", buildTime))

	return &HealthService{
		version:   version,
		buildTime: buildTime,
		paths:     paths,
		dataset:   dataset,
		startTime: time.Now(),
		logger:    logger,
	}
}

// GetHealthStatus returns the overall application health including dataset
// load state and runtime statistics.
func (hs *HealthService) GetHealthStatus(ctx context.Context) *HealthStatus {
	status := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"uptime_seconds": time.Since(hs.startTime).Seconds(),
			"go_version":     runtime.Version(),
			"goroutines":     runtime.NumGoroutine(),
			"os":             runtime.GOOS,
			"arch":           runtime.GOARCH,
		},
	}

	dataset := map[string]interface{}{
		"loaded": false,
	}
	if hs.dataset != nil {
		if stats, err := hs.dataset.Stats(ctx); err == nil {
			dataset["loaded"] = true
			dataset["years"] = stats.Years
			dataset["records"] = stats.Records
			dataset["loaded_at"] = hs.dataset.LoadedAt()
		} else {
			status.Status = "degraded"
		}
	}
	status.Dataset = dataset

	return status
}

// CheckReadiness reports whether the service can answer analytics queries.
// The dataset must have been loaded at least once.
func (hs *HealthService) CheckReadiness(ctx context.Context) error {
	if hs.dataset == nil {
		return ErrServiceUnavailable
	}
	if _, err := hs.dataset.Records(ctx); err != nil {
		return err
	}
	return nil
}

// CheckLiveness reports whether the process is alive. Always succeeds once
// the service exists; the handler turns a hung process into a timeout.
func (hs *HealthService) CheckLiveness(ctx context.Context) error {
	return nil
}

// Uptime returns how long the service has been running
func (hs *HealthService) Uptime() time.Duration {
	return time.Since(hs.startTime)
}
