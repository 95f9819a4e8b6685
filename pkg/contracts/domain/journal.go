package domain

// JournalRecord represents one row of a yearly SCImago export before the
// multi-valued Areas column is split. RawAreas keeps the semicolon-delimited
// tag list exactly as it appeared in the file; FemaleShare keeps the raw
// cell text until the normalizer coerces it.
type JournalRecord struct {
	Year        int    `json:"year" csv:"Year"`
	Title       string `json:"title,omitempty" csv:"Title"`
	FemaleShare string `json:"female_share" csv:"%Female"`
	RawAreas    string `json:"areas" csv:"Areas"`
	Quartile    string `json:"quartile,omitempty" csv:"SJR Best Quartile"`
}

// ExplodedRecord is one (journal, year, area) row produced by the normalizer.
// FemaleShare is numeric here; Area is a single trimmed tag. A record only
// reaches the aggregator when year, area, and female share are all present.
type ExplodedRecord struct {
	Year        int     `json:"year"`
	Title       string  `json:"title,omitempty"`
	FemaleShare float64 `json:"female_share"`
	Area        string  `json:"area"`
	Quartile    string  `json:"quartile,omitempty"`
}

// NormalizeStats records what the normalizer did to a loaded dataset so
// callers can surface drop counts without changing the soft-drop policy.
type NormalizeStats struct {
	RowsIn          int `json:"rows_in"`
	RowsOut         int `json:"rows_out"`
	DroppedBadShare int `json:"dropped_bad_share"`
	DroppedNoArea   int `json:"dropped_no_area"`
	EmptyAreaTokens int `json:"empty_area_tokens"`
}

// DatasetStats summarizes a fully loaded and normalized dataset.
type DatasetStats struct {
	Years     []int          `json:"years"`
	Records   int            `json:"records"`
	Normalize NormalizeStats `json:"normalize"`
}
