// Package dataprocessing implements the analytical core: loading yearly
// SCImago exports, normalizing them into one row per (journal, year, area),
// and aggregating female-authorship distributions.
//
// # Architecture
//
// The package is organized into three components, applied in order:
//
// 1. Loader: reads semicolon-delimited CSV (or xlsx) exports, one per year
// 2. Normalizer: coerces %Female, explodes the Areas tag list, drops bad rows
// 3. Aggregator: pure functions computing area rankings and quartile groupings
//
// # Usage
//
//	loader := dataprocessing.NewLoader(logger)
//	records, err := loader.LoadDataset(dataDir, map[int]string{2023: "scimagojr_2023.csv"})
//	if err != nil {
//	    // MissingFileError and ParseError carry file diagnostics
//	}
//
//	exploded, stats := dataprocessing.NewNormalizer(logger).Normalize(records)
//	ranking := dataprocessing.RankAreas(exploded, 2023, 10)
//	grouping := dataprocessing.GroupByQuartile(exploded, 2023, "Medicine")
//
// # Ordering guarantees
//
// The loader concatenates years ascending and preserves row order within a
// year; the normalizer preserves row order and tag order; the aggregator
// sorts stably, so identical input always produces identical output.
//
// # Error Handling
//
// The loader fails fast with MissingFileError (absent file, with a directory
// listing) or ParseError (malformed structure). The normalizer never fails:
// a field that cannot be coerced drops its row and increments a counter.
package dataprocessing
