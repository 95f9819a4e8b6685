// Command rankcsv runs the analytics pipeline from the command line: it
// loads the yearly SCImago exports, ranks research areas by median female
// share and writes the results as CSV reports.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"sjrpulse/internal/config"
	"sjrpulse/internal/exporter"
	"sjrpulse/internal/infrastructure"
	"sjrpulse/internal/services"
)

func main() {
	year := flag.Int("year", 0, "year to rank (defaults to the latest loaded year)")
	top := flag.Int("top", 0, "number of areas to rank (defaults to the configured default)")
	area := flag.String("area", "", "also write a quartile breakdown for this area")
	dir := flag.String("dir", "", "directory containing the exports (defaults to the configured data directory)")
	out := flag.String("out", "", "output csv file path (defaults to rankings_<year>.csv in the reports directory)")
	dump := flag.Bool("dump", false, "also write the full normalized dataset as dataset.csv")
	flag.Parse()

	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = &config.Config{
			Logging: config.LoggingConfig{
				Level:    "info",
				Format:   "json",
				Output:   "both",
				FilePath: paths.GetLogPath("rankcsv.log"),
			},
			Analytics: config.AnalyticsConfig{DefaultTopN: 10, MaxTopN: 100},
		}
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	dataDir := *dir
	if dataDir == "" {
		dataDir = cfg.GetDataDir()
		if dataDir == "" {
			dataDir = paths.DataDir
		}
	}

	logger.Info("Starting area ranking",
		slog.String("data_dir", dataDir),
		slog.Int("year", *year),
		slog.Int("top", *top))

	ctx := context.Background()

	dataset := services.NewDatasetServiceWithLogger(cfg.Analytics, dataDir, logger)
	if err := dataset.Load(ctx); err != nil {
		logger.Error("Failed to load dataset", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	analytics := services.NewAnalyticsServiceWithLogger(dataset, cfg.Analytics, logger)

	years, err := analytics.Years(ctx)
	if err != nil || len(years) == 0 {
		logger.Error("Dataset contains no usable rows")
		fmt.Fprintln(os.Stderr, "error: dataset contains no usable rows")
		os.Exit(1)
	}

	targetYear := *year
	if targetYear == 0 {
		targetYear = years[len(years)-1]
	}

	ranking, err := analytics.RankAreas(ctx, targetYear, *top)
	if err != nil {
		logger.Error("Failed to rank areas",
			slog.Int("year", targetYear),
			slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	writer := exporter.NewCSVWriter(paths)
	reports := exporter.NewReportExporter(writer)

	outPath := *out
	if outPath == "" {
		outPath = fmt.Sprintf("rankings_%d.csv", targetYear)
	}

	if err := reports.ExportRanking(ranking, outPath); err != nil {
		logger.Error("Failed to write ranking", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Ranked %d areas for %d\n", len(ranking.Areas), targetYear)

	if *area != "" {
		grouping, err := analytics.GroupQuartiles(ctx, targetYear, *area)
		if err != nil {
			logger.Error("Failed to group quartiles", slog.String("error", err.Error()))
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		if grouping.Empty() {
			fmt.Printf("No rows matched area %q in %d\n", *area, targetYear)
		}

		quartilePath := fmt.Sprintf("quartiles_%d_%s.csv", targetYear, sanitizeFilename(*area))
		if err := reports.ExportQuartiles(grouping, quartilePath); err != nil {
			logger.Error("Failed to write quartiles", slog.String("error", err.Error()))
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Wrote %d quartile groups for %s\n", len(grouping.Groups), *area)
	}

	if *dump {
		records, err := dataset.Records(ctx)
		if err != nil {
			logger.Error("Failed to read dataset", slog.String("error", err.Error()))
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		if err := reports.ExportRecords(records, "dataset.csv"); err != nil {
			logger.Error("Failed to write dataset dump", slog.String("error", err.Error()))
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Dumped %d normalized rows\n", len(records))
	}

	fmt.Println("Ranking complete")
}

// sanitizeFilename lowercases an area name and replaces the characters that
// cannot appear in a filename.
func sanitizeFilename(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-")
	return replacer.Replace(name)
}
