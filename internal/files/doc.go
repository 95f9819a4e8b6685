// Package files provides file system discovery utilities for the SJRPulse
// application.
//
// Discovery locates SCImago journal export files on disk: semicolon-delimited
// CSV exports and xlsx workbooks, including the yearly scimagojr_YYYY naming
// convention used by the dataset loader.
//
// Example usage:
//
//	discovery := files.NewDiscovery("/path/to/base")
//
//	// Find every export in the data directory
//	exports, err := discovery.FindExportFiles("data")
//
//	// Map yearly exports by year
//	byYear, err := discovery.FindYearlyExports("data")
package files
