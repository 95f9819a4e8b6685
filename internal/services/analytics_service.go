package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"sjrpulse/internal/config"
	"sjrpulse/internal/dataprocessing"
	"sjrpulse/pkg/contracts/domain"
)

// DatasetProvider is the read surface the analytics service needs from the
// dataset layer.
type DatasetProvider interface {
	Records(ctx context.Context) ([]domain.ExplodedRecord, error)
}

// AnalyticsService answers the dashboard queries: per-year area rankings by
// median female share and per (year, area) quartile groupings.
type AnalyticsService struct {
	dataset DatasetProvider
	config  config.AnalyticsConfig
	logger  *slog.Logger
	metrics *AnalyticsMetrics
}

// AnalyticsMetrics carries the query-path instruments the service records to.
type AnalyticsMetrics struct {
	RankingsComputed  metric.Int64Counter
	GroupingsComputed metric.Int64Counter
}

// NewAnalyticsService creates a new analytics service using the default logger
func NewAnalyticsService(dataset DatasetProvider, cfg config.AnalyticsConfig) *AnalyticsService {
	return NewAnalyticsServiceWithLogger(dataset, cfg, slog.Default())
}

// NewAnalyticsServiceWithLogger creates a new analytics service with a specific logger
func NewAnalyticsServiceWithLogger(dataset DatasetProvider, cfg config.AnalyticsConfig, logger *slog.Logger) *AnalyticsService {
	if logger == nil {
		logger = slog.Default()
	}

	return &AnalyticsService{
		dataset: dataset,
		config:  cfg,
		logger:  logger,
	}
}

// SetMetrics attaches query metrics. Safe to leave unset; recording is
// skipped when nil.
func (as *AnalyticsService) SetMetrics(m *AnalyticsMetrics) {
	as.metrics = m
}

// Years returns the distinct years present in the dataset, ascending
func (as *AnalyticsService) Years(ctx context.Context) ([]int, error) {
	records, err := as.dataset.Records(ctx)
	if err != nil {
		return nil, err
	}
	return dataprocessing.Years(records), nil
}

// AreasForYear returns the distinct areas of a year, sorted. An unknown
// year is an error so callers can distinguish it from a year with no areas.
func (as *AnalyticsService) AreasForYear(ctx context.Context, year int) ([]string, error) {
	records, err := as.dataset.Records(ctx)
	if err != nil {
		return nil, err
	}

	if !hasYear(records, year) {
		return nil, fmt.Errorf("year %d: %w", year, ErrYearNotAvailable)
	}

	return dataprocessing.AreasForYear(records, year), nil
}

// RankAreas computes the top-N area ranking of a year by median female
// share. A topN of zero falls back to the configured default; values above
// the configured maximum are clamped.
func (as *AnalyticsService) RankAreas(ctx context.Context, year, topN int) (domain.AreaRanking, error) {
	start := time.Now()

	records, err := as.dataset.Records(ctx)
	if err != nil {
		return domain.AreaRanking{}, err
	}

	if !hasYear(records, year) {
		return domain.AreaRanking{}, fmt.Errorf("year %d: %w", year, ErrYearNotAvailable)
	}

	if topN <= 0 {
		topN = as.config.DefaultTopN
	}
	if as.config.MaxTopN > 0 && topN > as.config.MaxTopN {
		topN = as.config.MaxTopN
	}

	ranking := dataprocessing.RankAreas(records, year, topN)

	if as.metrics != nil {
		as.metrics.RankingsComputed.Add(ctx, 1,
			metric.WithAttributes(attribute.Int("year", year)))
	}

	as.logger.DebugContext(ctx, "area ranking computed",
		slog.Int("year", year),
		slog.Int("top_n", topN),
		slog.Int("areas", len(ranking.Areas)),
		slog.Duration("elapsed", time.Since(start)))

	return ranking, nil
}

// GroupQuartiles groups a (year, area) selection by journal quartile,
// ordered by descending group median. A selection matching nothing yields
// an empty grouping rather than an error.
func (as *AnalyticsService) GroupQuartiles(ctx context.Context, year int, area string) (domain.QuartileGrouping, error) {
	records, err := as.dataset.Records(ctx)
	if err != nil {
		return domain.QuartileGrouping{}, err
	}

	grouping := dataprocessing.GroupByQuartile(records, year, area)

	if as.metrics != nil {
		as.metrics.GroupingsComputed.Add(ctx, 1,
			metric.WithAttributes(attribute.Int("year", year)))
	}

	if grouping.Empty() {
		as.logger.DebugContext(ctx, "quartile grouping matched nothing",
			slog.Int("year", year),
			slog.String("area", area))
	}

	return grouping, nil
}

// QuartileLabels returns the distinct quartile labels in the dataset, sorted
func (as *AnalyticsService) QuartileLabels(ctx context.Context) ([]string, error) {
	records, err := as.dataset.Records(ctx)
	if err != nil {
		return nil, err
	}
	return dataprocessing.QuartileLabels(records), nil
}

func hasYear(records []domain.ExplodedRecord, year int) bool {
	for _, rec := range records {
		if rec.Year == year {
			return true
		}
	}
	return false
}
