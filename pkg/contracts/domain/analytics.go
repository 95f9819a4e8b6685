package domain

// AreaDistribution is one ranking entry: a research area with the median
// female-authorship share for a year and the full ordered value distribution,
// so a caller can render a box plot rather than a point estimate.
type AreaDistribution struct {
	Area   string    `json:"area"`
	Median float64   `json:"median"`
	Values []float64 `json:"values"`
}

// AreaRanking is the top-N areas of a year ordered by descending median.
// Ties keep the first-seen order of the areas in that year's data, so the
// same input always yields the same ranking.
type AreaRanking struct {
	Year  int                `json:"year"`
	TopN  int                `json:"top_n"`
	Areas []AreaDistribution `json:"areas"`
}

// QuartileGroup holds the female-share values of one journal quality
// quartile within a (year, area) selection.
type QuartileGroup struct {
	Quartile string    `json:"quartile"`
	Median   float64   `json:"median"`
	Values   []float64 `json:"values"`
}

// QuartileGrouping is the quartile breakdown for one selected area and year,
// ordered by descending group median. Quartiles with no members are absent;
// an empty Groups slice means the selection matched nothing.
type QuartileGrouping struct {
	Year   int             `json:"year"`
	Area   string          `json:"area"`
	Groups []QuartileGroup `json:"groups"`
}

// Empty reports whether the selection matched no rows.
func (g QuartileGrouping) Empty() bool {
	return len(g.Groups) == 0
}
