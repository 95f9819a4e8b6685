package dataprocessing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"sjrpulse/internal/config"
	"sjrpulse/pkg/contracts/domain"
)

// Loader reads yearly SCImago exports into journal records. Each configured
// file is semicolon-delimited CSV or the xlsx variant of the same export;
// both carry a header row naming at least %Female, Areas, and
// SJR Best Quartile.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a loader. A nil logger falls back to slog.Default.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger.With(slog.String("component", "loader"))}
}

// LoadDataset reads every configured year file under dir and concatenates
// the rows, years ascending, row order preserved within each year. A missing
// file aborts the whole load with a MissingFileError naming the file and
// listing the directory.
func (l *Loader) LoadDataset(dir string, dataset map[int]string) ([]domain.JournalRecord, error) {
	years := make([]int, 0, len(dataset))
	for year := range dataset {
		years = append(years, year)
	}
	sort.Ints(years)

	var all []domain.JournalRecord
	for _, year := range years {
		filename := dataset[year]
		records, err := l.LoadYearFile(dir, filename, year)
		if err != nil {
			return nil, err
		}

		l.logger.Info("loaded year file",
			slog.Int("year", year),
			slog.String("filename", filename),
			slog.Int("rows", len(records)))

		all = append(all, records...)
	}

	return all, nil
}

// LoadYearFile reads a single export file and tags every row with year.
func (l *Loader) LoadYearFile(dir, filename string, year int) ([]domain.JournalRecord, error) {
	path := filepath.Join(dir, filename)
	if !config.FileExists(path) {
		return nil, &MissingFileError{
			Filename:  filename,
			Dir:       dir,
			Available: listDir(dir),
		}
	}

	var rows [][]string
	var err error
	if strings.HasSuffix(strings.ToLower(filename), ".xlsx") {
		rows, err = readXLSXRows(path)
	} else {
		rows, err = readCSVRows(path)
	}
	if err != nil {
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			return nil, err
		}
		return nil, &ParseError{Filename: filename, Err: err}
	}

	if len(rows) == 0 {
		return nil, &ParseError{Filename: filename, Err: fmt.Errorf("file has no header row")}
	}

	columns, err := mapColumns(rows[0])
	if err != nil {
		return nil, &ParseError{Filename: filename, Line: 1, Err: err}
	}

	records := make([]domain.JournalRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, domain.JournalRecord{
			Year:        year,
			Title:       cell(row, columns.title),
			FemaleShare: cell(row, columns.femaleShare),
			RawAreas:    cell(row, columns.areas),
			Quartile:    cell(row, columns.quartile),
		})
	}

	return records, nil
}

// columnIndexes holds the positions of the columns the pipeline consumes.
// title is optional (-1 when absent); the rest are required.
type columnIndexes struct {
	title       int
	femaleShare int
	areas       int
	quartile    int
}

// mapColumns resolves the header row to column positions by name.
func mapColumns(header []string) (columnIndexes, error) {
	columns := columnIndexes{title: -1, femaleShare: -1, areas: -1, quartile: -1}

	for i, name := range header {
		switch strings.TrimSpace(name) {
		case config.ColumnTitle:
			columns.title = i
		case config.ColumnFemaleShare:
			columns.femaleShare = i
		case config.ColumnAreas:
			columns.areas = i
		case config.ColumnBestQuartile:
			columns.quartile = i
		}
	}

	var missing []string
	if columns.femaleShare == -1 {
		missing = append(missing, config.ColumnFemaleShare)
	}
	if columns.areas == -1 {
		missing = append(missing, config.ColumnAreas)
	}
	if columns.quartile == -1 {
		missing = append(missing, config.ColumnBestQuartile)
	}
	if len(missing) > 0 {
		return columns, fmt.Errorf("header missing required columns: %s", strings.Join(missing, ", "))
	}

	return columns, nil
}

// cell safely extracts a trimmed cell value; short rows yield "".
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// readCSVRows reads a semicolon-delimited file into raw rows.
func readCSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = ';'
	// Exports occasionally carry ragged trailing columns
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	line := 0
	for {
		line++
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Filename: filepath.Base(path), Line: line, Err: err}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// readXLSXRows reads the first sheet of an xlsx export into raw rows.
func readXLSXRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}

	return rows, nil
}

// listDir returns the file names present in dir, sorted; nil when the
// directory itself cannot be read.
func listDir(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names
}
