package dataprocessing

import (
	"sort"
	"strings"

	"sjrpulse/pkg/contracts/domain"
)

// RankAreas computes the top-N research areas of a year by median female
// share. Each entry carries the area's full value distribution in input
// order so callers can render a box plot. Areas are grouped in first-seen
// order; the sort by descending median is stable, so equal medians keep
// that order and the ranking is deterministic for identical input.
func RankAreas(records []domain.ExplodedRecord, year, topN int) domain.AreaRanking {
	ranking := domain.AreaRanking{Year: year, TopN: topN}
	if topN <= 0 {
		return ranking
	}

	values := make(map[string][]float64)
	var order []string
	for _, rec := range records {
		if rec.Year != year {
			continue
		}
		if _, seen := values[rec.Area]; !seen {
			order = append(order, rec.Area)
		}
		values[rec.Area] = append(values[rec.Area], rec.FemaleShare)
	}

	areas := make([]domain.AreaDistribution, 0, len(order))
	for _, area := range order {
		areas = append(areas, domain.AreaDistribution{
			Area:   area,
			Median: Median(values[area]),
			Values: values[area],
		})
	}

	sort.SliceStable(areas, func(i, j int) bool {
		return areas[i].Median > areas[j].Median
	})

	if len(areas) > topN {
		areas = areas[:topN]
	}

	ranking.Areas = areas
	return ranking
}

// GroupByQuartile groups a (year, area) selection by journal quality
// quartile, ordered by descending group median. Area matching is exact and
// case-sensitive on the trimmed tag. Rows without a quartile label are
// excluded; a selection matching nothing yields an empty grouping.
func GroupByQuartile(records []domain.ExplodedRecord, year int, area string) domain.QuartileGrouping {
	grouping := domain.QuartileGrouping{Year: year, Area: area}
	target := strings.TrimSpace(area)

	values := make(map[string][]float64)
	var order []string
	for _, rec := range records {
		if rec.Year != year || rec.Area != target {
			continue
		}
		if rec.Quartile == "" {
			continue
		}
		if _, seen := values[rec.Quartile]; !seen {
			order = append(order, rec.Quartile)
		}
		values[rec.Quartile] = append(values[rec.Quartile], rec.FemaleShare)
	}

	groups := make([]domain.QuartileGroup, 0, len(order))
	for _, quartile := range order {
		groups = append(groups, domain.QuartileGroup{
			Quartile: quartile,
			Median:   Median(values[quartile]),
			Values:   values[quartile],
		})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Median > groups[j].Median
	})

	grouping.Groups = groups
	return grouping
}

// Years returns the distinct years present in the records, ascending.
func Years(records []domain.ExplodedRecord) []int {
	seen := make(map[int]bool)
	var years []int
	for _, rec := range records {
		if !seen[rec.Year] {
			seen[rec.Year] = true
			years = append(years, rec.Year)
		}
	}
	sort.Ints(years)
	return years
}

// AreasForYear returns the distinct areas of a year, sorted, for selector
// widgets.
func AreasForYear(records []domain.ExplodedRecord, year int) []string {
	seen := make(map[string]bool)
	var areas []string
	for _, rec := range records {
		if rec.Year != year || seen[rec.Area] {
			continue
		}
		seen[rec.Area] = true
		areas = append(areas, rec.Area)
	}
	sort.Strings(areas)
	return areas
}

// QuartileLabels returns the distinct quartile labels observed in the
// records, sorted. Labels are opaque strings; nothing here interprets them
// numerically.
func QuartileLabels(records []domain.ExplodedRecord) []string {
	seen := make(map[string]bool)
	var labels []string
	for _, rec := range records {
		if rec.Quartile == "" || seen[rec.Quartile] {
			continue
		}
		seen[rec.Quartile] = true
		labels = append(labels, rec.Quartile)
	}
	sort.Strings(labels)
	return labels
}

// Median returns the middle value of the collection: values are sorted
// ascending on a copy, and an even-sized collection yields the mean of the
// two middle values. An empty collection yields 0.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
