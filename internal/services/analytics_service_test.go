package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sjrpulse/internal/config"
	"sjrpulse/pkg/contracts/domain"
)

// stubDataset satisfies DatasetProvider without touching the filesystem
type stubDataset struct {
	records []domain.ExplodedRecord
	err     error
}

func (s *stubDataset) Records(ctx context.Context) ([]domain.ExplodedRecord, error) {
	return s.records, s.err
}

func analyticsFixture() []domain.ExplodedRecord {
	return []domain.ExplodedRecord{
		{Year: 2023, Area: "Medicine", FemaleShare: 10, Quartile: "Q1"},
		{Year: 2023, Area: "Medicine", FemaleShare: 20, Quartile: "Q2"},
		{Year: 2023, Area: "Medicine", FemaleShare: 90, Quartile: "Q2"},
		{Year: 2023, Area: "Physics", FemaleShare: 5, Quartile: "Q1"},
		{Year: 2023, Area: "Physics", FemaleShare: 5, Quartile: "Q1"},
		{Year: 2023, Area: "Physics", FemaleShare: 5, Quartile: "Q3"},
		{Year: 2022, Area: "Chemistry", FemaleShare: 33, Quartile: "Q1"},
	}
}

func newTestAnalyticsService(t *testing.T, dataset DatasetProvider) *AnalyticsService {
	t.Helper()
	cfg := config.AnalyticsConfig{DefaultTopN: 10, MaxTopN: 100}
	return NewAnalyticsServiceWithLogger(dataset, cfg, newTestLogger(t))
}

func TestAnalyticsServiceYears(t *testing.T) {
	svc := newTestAnalyticsService(t, &stubDataset{records: analyticsFixture()})

	years, err := svc.Years(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{2022, 2023}, years)
}

func TestAnalyticsServiceYearsNotLoaded(t *testing.T) {
	svc := newTestAnalyticsService(t, &stubDataset{err: ErrDatasetNotLoaded})

	_, err := svc.Years(context.Background())
	assert.ErrorIs(t, err, ErrDatasetNotLoaded)
}

func TestAnalyticsServiceAreasForYear(t *testing.T) {
	svc := newTestAnalyticsService(t, &stubDataset{records: analyticsFixture()})

	areas, err := svc.AreasForYear(context.Background(), 2023)
	require.NoError(t, err)
	assert.Equal(t, []string{"Medicine", "Physics"}, areas)

	_, err = svc.AreasForYear(context.Background(), 1999)
	assert.ErrorIs(t, err, ErrYearNotAvailable)
}

func TestAnalyticsServiceRankAreas(t *testing.T) {
	svc := newTestAnalyticsService(t, &stubDataset{records: analyticsFixture()})

	ranking, err := svc.RankAreas(context.Background(), 2023, 5)
	require.NoError(t, err)

	require.Len(t, ranking.Areas, 2)
	assert.Equal(t, "Medicine", ranking.Areas[0].Area)
	assert.Equal(t, 20.0, ranking.Areas[0].Median)
	assert.Equal(t, "Physics", ranking.Areas[1].Area)
	assert.Equal(t, 5.0, ranking.Areas[1].Median)
}

func TestAnalyticsServiceRankAreasDefaultsAndClamp(t *testing.T) {
	stub := &stubDataset{records: analyticsFixture()}
	cfg := config.AnalyticsConfig{DefaultTopN: 1, MaxTopN: 1}
	svc := NewAnalyticsServiceWithLogger(stub, cfg, newTestLogger(t))

	// zero falls back to the default
	ranking, err := svc.RankAreas(context.Background(), 2023, 0)
	require.NoError(t, err)
	assert.Len(t, ranking.Areas, 1)

	// above the maximum is clamped
	ranking, err = svc.RankAreas(context.Background(), 2023, 50)
	require.NoError(t, err)
	assert.Len(t, ranking.Areas, 1)
}

func TestAnalyticsServiceRankAreasUnknownYear(t *testing.T) {
	svc := newTestAnalyticsService(t, &stubDataset{records: analyticsFixture()})

	_, err := svc.RankAreas(context.Background(), 1999, 10)
	assert.ErrorIs(t, err, ErrYearNotAvailable)
}

func TestAnalyticsServiceGroupQuartiles(t *testing.T) {
	svc := newTestAnalyticsService(t, &stubDataset{records: analyticsFixture()})

	grouping, err := svc.GroupQuartiles(context.Background(), 2023, "Medicine")
	require.NoError(t, err)

	require.Len(t, grouping.Groups, 2)
	assert.Equal(t, "Q2", grouping.Groups[0].Quartile)
	assert.Equal(t, 55.0, grouping.Groups[0].Median)
	assert.Equal(t, "Q1", grouping.Groups[1].Quartile)
}

func TestAnalyticsServiceGroupQuartilesNoMatch(t *testing.T) {
	svc := newTestAnalyticsService(t, &stubDataset{records: analyticsFixture()})

	// an unmatched selection is an empty grouping, not an error
	grouping, err := svc.GroupQuartiles(context.Background(), 2023, "Astrology")
	require.NoError(t, err)
	assert.True(t, grouping.Empty())
}

func TestAnalyticsServiceQuartileLabels(t *testing.T) {
	svc := newTestAnalyticsService(t, &stubDataset{records: analyticsFixture()})

	labels, err := svc.QuartileLabels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Q1", "Q2", "Q3"}, labels)
}
