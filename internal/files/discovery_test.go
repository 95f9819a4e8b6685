package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
}

func TestFindExportFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "scimagojr_2023.csv")
	writeFile(t, dir, "scimagojr_2022.xlsx")
	writeFile(t, dir, "notes.txt")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0755))

	discovery := NewDiscovery(dir)
	files, err := discovery.FindExportFiles(".")
	require.NoError(t, err)

	require.Len(t, files, 2)
	// sorted by name
	assert.Equal(t, "scimagojr_2022.xlsx", files[0].Name)
	assert.Equal(t, "scimagojr_2023.csv", files[1].Name)
}

func TestFindCSVFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv")
	writeFile(t, dir, "b.CSV")
	writeFile(t, dir, "c.xlsx")

	discovery := NewDiscovery(dir)
	files, err := discovery.FindCSVFiles(".")
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestFindExportFilesMissingDirectory(t *testing.T) {
	discovery := NewDiscovery(t.TempDir())
	_, err := discovery.FindExportFiles("nope")
	assert.Error(t, err)
}

func TestFindYearlyExports(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "scimagojr_2022.csv")
	writeFile(t, dir, "scimagojr_2023.xlsx")
	writeFile(t, dir, "scimagojr_2024.csv")
	writeFile(t, dir, "scimagojr_2024.xlsx") // CSV wins for the same year
	writeFile(t, dir, "scimagojr_extra.csv") // outside the convention
	writeFile(t, dir, "summary.csv")

	discovery := NewDiscovery(dir)
	yearly, err := discovery.FindYearlyExports(".")
	require.NoError(t, err)

	require.Len(t, yearly, 3)
	assert.Equal(t, "scimagojr_2022.csv", yearly[2022].Name)
	assert.Equal(t, "scimagojr_2023.xlsx", yearly[2023].Name)
	assert.Equal(t, "scimagojr_2024.csv", yearly[2024].Name)
}

func TestExportYear(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		wantYear int
		wantOK   bool
	}{
		{name: "csv", filename: "scimagojr_2023.csv", wantYear: 2023, wantOK: true},
		{name: "xlsx", filename: "scimagojr_2024.xlsx", wantYear: 2024, wantOK: true},
		{name: "no prefix", filename: "journals_2023.csv", wantOK: false},
		{name: "no year", filename: "scimagojr_all.csv", wantOK: false},
		{name: "implausible year", filename: "scimagojr_23.csv", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			year, ok := ExportYear(tt.filename)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantYear, year)
			}
		})
	}
}

func TestFindFilesByPattern(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "scimagojr_2022.csv")
	writeFile(t, dir, "scimagojr_2023.csv")
	writeFile(t, dir, "other.csv")

	discovery := NewDiscovery(dir)
	files, err := discovery.FindFilesByPattern(".", "scimagojr_*.csv")
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestGetLatestFile(t *testing.T) {
	now := time.Now()
	files := []FileInfo{
		{Name: "a", ModTime: now.Add(-time.Hour)},
		{Name: "b", ModTime: now},
		{Name: "c", ModTime: now.Add(-time.Minute)},
	}

	latest, ok := GetLatestFile(files)
	require.True(t, ok)
	assert.Equal(t, "b", latest.Name)

	_, ok = GetLatestFile(nil)
	assert.False(t, ok)
}
