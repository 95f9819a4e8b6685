// Package exporter provides CSV export functionality for SJRPulse.
//
// This package contains two main components:
//
// CSVWriter: Core CSV writing functionality with support for headers,
// streaming, and UTF-8 BOM for Excel compatibility.
//
// ReportExporter: Writes area rankings and quartile groupings as report
// files, one row per ranked area or quartile group.
//
// Example usage:
//
//	writer := exporter.NewCSVWriter(paths)
//	reports := exporter.NewReportExporter(writer)
//
//	err := reports.ExportRanking(ranking, "rankings_2023.csv")
//	err = reports.ExportQuartiles(grouping, "quartiles_2023_medicine.csv")
package exporter
