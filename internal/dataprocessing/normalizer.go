package dataprocessing

import (
	"log/slog"
	"strconv"
	"strings"

	"sjrpulse/internal/config"
	"sjrpulse/pkg/contracts/domain"
)

// Normalizer turns loaded journal records into exploded records: the
// female-share text becomes a float, the multi-valued Areas column becomes
// one row per tag, and rows missing any key field are dropped. Coercion
// failures are soft-dropped rather than fatal; the stats carry the counts.
type Normalizer struct {
	logger *slog.Logger
}

// NewNormalizer creates a normalizer. A nil logger falls back to slog.Default.
func NewNormalizer(logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{logger: logger.With(slog.String("component", "normalizer"))}
}

// Normalize explodes records in input order: rows keep their relative order
// and area tokens keep their position within each row's tag list. A row with
// k non-empty tags yields exactly k exploded records sharing its other fields.
func (n *Normalizer) Normalize(records []domain.JournalRecord) ([]domain.ExplodedRecord, domain.NormalizeStats) {
	stats := domain.NormalizeStats{RowsIn: len(records)}

	exploded := make([]domain.ExplodedRecord, 0, len(records))
	for _, rec := range records {
		if rec.Year == 0 {
			continue
		}

		share, err := ParseFemaleShare(rec.FemaleShare)
		if err != nil {
			stats.DroppedBadShare++
			n.logger.Warn("dropping row with unparseable female share",
				slog.Int("year", rec.Year),
				slog.String("title", rec.Title),
				slog.String("value", rec.FemaleShare),
				slog.String("error", err.Error()))
			continue
		}

		tokens := SplitAreas(rec.RawAreas)
		if len(tokens) == 0 {
			stats.DroppedNoArea++
			continue
		}
		stats.EmptyAreaTokens += countEmptyTokens(rec.RawAreas)

		for _, area := range tokens {
			exploded = append(exploded, domain.ExplodedRecord{
				Year:        rec.Year,
				Title:       rec.Title,
				FemaleShare: share,
				Area:        area,
				Quartile:    strings.TrimSpace(rec.Quartile),
			})
		}
	}

	stats.RowsOut = len(exploded)

	n.logger.Info("normalized dataset",
		slog.Int("rows_in", stats.RowsIn),
		slog.Int("rows_out", stats.RowsOut),
		slog.Int("dropped_bad_share", stats.DroppedBadShare),
		slog.Int("dropped_no_area", stats.DroppedNoArea))

	return exploded, stats
}

// ParseFemaleShare coerces a female-share cell to a float. The exports use a
// comma decimal separator, so "45,7" and "45.7" parse to the same number.
func ParseFemaleShare(value string) (float64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, &FormatError{Column: config.ColumnFemaleShare, Value: value, Err: strconv.ErrSyntax}
	}

	normalized := strings.ReplaceAll(trimmed, ",", ".")
	share, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, &FormatError{Column: config.ColumnFemaleShare, Value: value, Err: err}
	}

	return share, nil
}

// SplitAreas splits a raw area tag list on the separator, trims each token,
// and drops tokens that are empty after trimming. Token order is preserved.
func SplitAreas(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, config.AreaTagSeparator)
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		if token := strings.TrimSpace(part); token != "" {
			tokens = append(tokens, token)
		}
	}

	return tokens
}

// countEmptyTokens counts tag positions that trim to nothing, for stats only.
func countEmptyTokens(raw string) int {
	if strings.TrimSpace(raw) == "" {
		return 0
	}

	count := 0
	for _, part := range strings.Split(raw, config.AreaTagSeparator) {
		if strings.TrimSpace(part) == "" {
			count++
		}
	}
	return count
}
