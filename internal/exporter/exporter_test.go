package exporter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sjrpulse/internal/config"
	"sjrpulse/pkg/contracts/domain"
)

func newTestWriter(t *testing.T) (*CSVWriter, string) {
	t.Helper()
	dir := t.TempDir()
	paths := &config.Paths{
		ExecutableDir: dir,
		DataDir:       filepath.Join(dir, "data"),
		ReportsDir:    filepath.Join(dir, "reports"),
		LogsDir:       filepath.Join(dir, "logs"),
	}
	return NewCSVWriter(paths), dir
}

func readReport(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "reports", name))
	require.NoError(t, err)
	return string(data)
}

func TestWriteSimpleCSV(t *testing.T) {
	writer, dir := newTestWriter(t)

	err := writer.WriteSimpleCSV("out.csv",
		[]string{"a", "b"},
		[][]string{{"1", "2"}, {"3", "4"}})
	require.NoError(t, err)

	content := readReport(t, dir, "out.csv")
	assert.True(t, strings.HasPrefix(content, "\xef\xbb\xbf"), "expected UTF-8 BOM")
	assert.Contains(t, content, "a,b")
	assert.Contains(t, content, "1,2")
	assert.Contains(t, content, "3,4")
}

func TestWriteSimpleCSVOverwrites(t *testing.T) {
	writer, dir := newTestWriter(t)

	require.NoError(t, writer.WriteSimpleCSV("out.csv", []string{"a"}, [][]string{{"1"}}))
	require.NoError(t, writer.WriteSimpleCSV("out.csv", []string{"a"}, [][]string{{"2"}}))

	content := readReport(t, dir, "out.csv")
	assert.NotContains(t, content, "1")
	assert.Contains(t, content, "2")
}

func TestStreamWriter(t *testing.T) {
	writer, dir := newTestWriter(t)

	stream, err := writer.CreateStreamWriter("stream.csv", []string{"x", "y"})
	require.NoError(t, err)
	require.NoError(t, stream.WriteRecord([]string{"1", "2"}))
	require.NoError(t, stream.WriteRecord([]string{"3", "4"}))
	require.NoError(t, stream.Close())

	content := readReport(t, dir, "stream.csv")
	assert.Contains(t, content, "x,y")
	assert.Contains(t, content, "3,4")
}

func TestExportRecords(t *testing.T) {
	writer, dir := newTestWriter(t)
	reports := NewReportExporter(writer)

	records := []domain.ExplodedRecord{
		{Year: 2023, Title: "Journal A", FemaleShare: 45.7, Area: "Medicine", Quartile: "Q1"},
		{Year: 2023, Title: "Journal A", FemaleShare: 45.7, Area: "Oncology", Quartile: "Q1"},
		{Year: 2023, Title: "Journal B", FemaleShare: 12.5, Area: "Physics", Quartile: "Q3"},
	}

	require.NoError(t, reports.ExportRecords(records, "dataset_2023.csv"))

	content := readReport(t, dir, "dataset_2023.csv")
	assert.True(t, strings.HasPrefix(content, "\xef\xbb\xbf"), "expected UTF-8 BOM")

	lines := strings.Split(strings.TrimSpace(content), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Year,Title,%Female,Area,Quartile")
	assert.Contains(t, lines[1], "2023,Journal A,45.70,Medicine,Q1")
	assert.Contains(t, lines[2], "2023,Journal A,45.70,Oncology,Q1")
	assert.Contains(t, lines[3], "2023,Journal B,12.50,Physics,Q3")
}

func TestExportRanking(t *testing.T) {
	writer, dir := newTestWriter(t)
	reports := NewReportExporter(writer)

	ranking := domain.AreaRanking{
		Year: 2023,
		TopN: 2,
		Areas: []domain.AreaDistribution{
			{Area: "Medicine", Median: 20, Values: []float64{10, 20, 90}},
			{Area: "Physics", Median: 5, Values: []float64{5, 5, 5}},
		},
	}

	require.NoError(t, reports.ExportRanking(ranking, "rankings_2023.csv"))

	content := readReport(t, dir, "rankings_2023.csv")
	assert.Contains(t, content, "Rank,Year,Area,Median %Female,Journals,Values")
	assert.Contains(t, content, "1,2023,Medicine,20.00,3,10|20|90")
	assert.Contains(t, content, "2,2023,Physics,5.00,3,5|5|5")
}

func TestExportQuartiles(t *testing.T) {
	writer, dir := newTestWriter(t)
	reports := NewReportExporter(writer)

	grouping := domain.QuartileGrouping{
		Year: 2023,
		Area: "Medicine",
		Groups: []domain.QuartileGroup{
			{Quartile: "Q2", Median: 55, Values: []float64{20, 90}},
			{Quartile: "Q1", Median: 10, Values: []float64{10}},
		},
	}

	require.NoError(t, reports.ExportQuartiles(grouping, "quartiles.csv"))

	content := readReport(t, dir, "quartiles.csv")
	lines := strings.Split(strings.TrimSpace(content), "\n")
	require.Len(t, lines, 3)
	// Q2 outranks Q1, so it comes first
	assert.Contains(t, lines[1], "Q2")
	assert.Contains(t, lines[2], "Q1")
}
