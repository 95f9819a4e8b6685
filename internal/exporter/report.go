package exporter

import (
	"fmt"

	"sjrpulse/pkg/contracts/domain"
)

// journalHeaders is the column layout of the normalized-dataset dump.
var journalHeaders = []string{"Year", "Title", "%Female", "Area", "Quartile"}

// ReportExporter writes analytics results as CSV report files
type ReportExporter struct {
	writer *CSVWriter
}

// NewReportExporter creates a new report exporter
func NewReportExporter(writer *CSVWriter) *ReportExporter {
	return &ReportExporter{writer: writer}
}

// ExportRanking writes an area ranking, one row per ranked area in ranking
// order.
func (e *ReportExporter) ExportRanking(ranking domain.AreaRanking, outputPath string) error {
	headers := []string{"Rank", "Year", "Area", "Median %Female", "Journals", "Values"}

	records := make([][]string, 0, len(ranking.Areas))
	for i, area := range ranking.Areas {
		records = append(records, []string{
			formatInt(i + 1),
			formatInt(ranking.Year),
			area.Area,
			formatFloat(area.Median),
			formatInt(len(area.Values)),
			formatValues(area.Values),
		})
	}

	if err := e.writer.WriteSimpleCSV(outputPath, headers, records); err != nil {
		return fmt.Errorf("failed to export ranking: %w", err)
	}
	return nil
}

// ExportQuartiles writes a quartile grouping, one row per quartile group in
// grouping order.
func (e *ReportExporter) ExportQuartiles(grouping domain.QuartileGrouping, outputPath string) error {
	headers := []string{"Year", "Area", "Quartile", "Median %Female", "Journals", "Values"}

	records := make([][]string, 0, len(grouping.Groups))
	for _, group := range grouping.Groups {
		records = append(records, []string{
			formatInt(grouping.Year),
			grouping.Area,
			group.Quartile,
			formatFloat(group.Median),
			formatInt(len(group.Values)),
			formatValues(group.Values),
		})
	}

	if err := e.writer.WriteSimpleCSV(outputPath, headers, records); err != nil {
		return fmt.Errorf("failed to export quartiles: %w", err)
	}
	return nil
}

// ExportRecords dumps the normalized dataset, one row per exploded record
// in dataset order. The dump can run to tens of thousands of rows, so it
// streams instead of buffering the whole table.
func (e *ReportExporter) ExportRecords(records []domain.ExplodedRecord, outputPath string) error {
	stream, err := e.writer.CreateStreamWriter(outputPath, journalHeaders)
	if err != nil {
		return fmt.Errorf("failed to export records: %w", err)
	}

	for _, rec := range records {
		row := []string{
			formatInt(rec.Year),
			rec.Title,
			formatFloat(rec.FemaleShare),
			rec.Area,
			rec.Quartile,
		}
		if err := stream.WriteRecord(row); err != nil {
			stream.Close()
			return fmt.Errorf("failed to export records: %w", err)
		}
	}

	return stream.Close()
}
