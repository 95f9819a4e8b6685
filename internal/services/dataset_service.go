package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"sjrpulse/internal/config"
	"sjrpulse/internal/dataprocessing"
	"sjrpulse/internal/files"
	"sjrpulse/pkg/contracts/domain"
)

// DatasetService loads the yearly SCImago exports, runs them through
// normalization and caches the exploded records in memory. The cache is
// read-only between loads; Reload replaces it atomically.
type DatasetService struct {
	config     config.AnalyticsConfig
	dataDir    string
	loader     *dataprocessing.Loader
	normalizer *dataprocessing.Normalizer
	discovery  *files.Discovery
	logger     *slog.Logger
	metrics    *DatasetMetrics

	mu       sync.RWMutex
	records  []domain.ExplodedRecord
	stats    domain.DatasetStats
	loadedAt time.Time
}

// DatasetMetrics carries the load-path instruments the service records to.
type DatasetMetrics struct {
	LoadsTotal     metric.Int64Counter
	LoadDuration   metric.Float64Histogram
	RowsNormalized metric.Int64Counter
	RowsDropped    metric.Int64Counter
}

// NewDatasetService creates a new dataset service using the default logger
func NewDatasetService(cfg config.AnalyticsConfig, dataDir string) *DatasetService {
	return NewDatasetServiceWithLogger(cfg, dataDir, slog.Default())
}

// NewDatasetServiceWithLogger creates a new dataset service with a specific logger
func NewDatasetServiceWithLogger(cfg config.AnalyticsConfig, dataDir string, logger *slog.Logger) *DatasetService {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("DatasetService initialized",
		slog.String("data_dir", dataDir),
		slog.Int("configured_years", len(cfg.Dataset)))

	return &DatasetService{
		config:     cfg,
		dataDir:    dataDir,
		loader:     dataprocessing.NewLoader(logger),
		normalizer: dataprocessing.NewNormalizer(logger),
		discovery:  files.NewDiscovery(dataDir),
		logger:     logger,
	}
}

// SetMetrics attaches load metrics. Safe to leave unset; recording is
// skipped when nil.
func (ds *DatasetService) SetMetrics(m *DatasetMetrics) {
	ds.metrics = m
}

// Load reads every configured yearly export, normalizes the rows and
// replaces the in-memory cache. When no dataset mapping is configured the
// data directory is scanned for scimagojr_YYYY exports instead.
func (ds *DatasetService) Load(ctx context.Context) error {
	start := time.Now()

	dataset, err := ds.resolveDataset()
	if err != nil {
		ds.recordLoad(ctx, start, "error")
		return err
	}

	raw, err := ds.loader.LoadDataset(ds.dataDir, dataset)
	if err != nil {
		ds.recordLoad(ctx, start, "error")
		return fmt.Errorf("load dataset: %w", err)
	}

	records, normStats := ds.normalizer.Normalize(raw)

	stats := domain.DatasetStats{
		Years:     dataprocessing.Years(records),
		Records:   len(records),
		Normalize: normStats,
	}

	ds.mu.Lock()
	ds.records = records
	ds.stats = stats
	ds.loadedAt = time.Now()
	ds.mu.Unlock()

	ds.recordLoad(ctx, start, "success")
	if ds.metrics != nil {
		ds.metrics.RowsNormalized.Add(ctx, int64(normStats.RowsOut))
		dropped := normStats.DroppedBadShare + normStats.DroppedNoArea
		ds.metrics.RowsDropped.Add(ctx, int64(dropped))
	}

	ds.logger.InfoContext(ctx, "dataset loaded",
		slog.Int("years", len(stats.Years)),
		slog.Int("records", stats.Records),
		slog.Int("rows_in", normStats.RowsIn),
		slog.Int("dropped_bad_share", normStats.DroppedBadShare),
		slog.Int("dropped_no_area", normStats.DroppedNoArea),
		slog.Duration("elapsed", time.Since(start)))

	return nil
}

// Reload re-reads the exports from disk, replacing the cached dataset
func (ds *DatasetService) Reload(ctx context.Context) error {
	ds.logger.InfoContext(ctx, "dataset reload requested")
	return ds.Load(ctx)
}

// Records returns the cached exploded records. The slice is shared and
// must be treated as read-only by callers.
func (ds *DatasetService) Records(ctx context.Context) ([]domain.ExplodedRecord, error) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	if ds.loadedAt.IsZero() {
		return nil, ErrDatasetNotLoaded
	}
	return ds.records, nil
}

// Stats returns the load statistics of the cached dataset
func (ds *DatasetService) Stats(ctx context.Context) (domain.DatasetStats, error) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	if ds.loadedAt.IsZero() {
		return domain.DatasetStats{}, ErrDatasetNotLoaded
	}
	return ds.stats, nil
}

// LoadedAt returns when the cache was last replaced, zero if never
func (ds *DatasetService) LoadedAt() time.Time {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.loadedAt
}

func (ds *DatasetService) resolveDataset() (map[int]string, error) {
	if len(ds.config.Dataset) > 0 {
		return ds.config.Dataset, nil
	}

	yearly, err := ds.discovery.FindYearlyExports(".")
	if err != nil {
		return nil, fmt.Errorf("scan data directory: %w", err)
	}
	if len(yearly) == 0 {
		return nil, ErrNoFilesFound
	}

	dataset := make(map[int]string, len(yearly))
	for year, file := range yearly {
		dataset[year] = file.Name
	}

	ds.logger.Info("discovered yearly exports",
		slog.Int("years", len(dataset)))

	return dataset, nil
}

func (ds *DatasetService) recordLoad(ctx context.Context, start time.Time, status string) {
	if ds.metrics == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("status", status))
	ds.metrics.LoadsTotal.Add(ctx, 1, attrs)
	ds.metrics.LoadDuration.Record(ctx, time.Since(start).Seconds(), attrs)
}
