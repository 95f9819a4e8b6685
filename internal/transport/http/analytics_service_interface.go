package http

import (
	"context"

	"sjrpulse/pkg/contracts/domain"
)

// AnalyticsServiceInterface is the surface the analytics handler needs.
// Kept as an interface so tests can substitute a stub.
type AnalyticsServiceInterface interface {
	Years(ctx context.Context) ([]int, error)
	AreasForYear(ctx context.Context, year int) ([]string, error)
	RankAreas(ctx context.Context, year, topN int) (domain.AreaRanking, error)
	GroupQuartiles(ctx context.Context, year int, area string) (domain.QuartileGrouping, error)
	QuartileLabels(ctx context.Context) ([]string, error)
}

// DatasetServiceInterface is the surface the dataset handler needs
type DatasetServiceInterface interface {
	Reload(ctx context.Context) error
	Stats(ctx context.Context) (domain.DatasetStats, error)
}
