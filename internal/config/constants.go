package config

import "time"

// Application constants for the SJRPulse system
const (
	// Application Info
	AppName = "SJRPulse"

	// Config file discovered next to the executable or in the working dir
	ConfigFileName = "config.yaml"

	// Dataset column names as they appear in SCImago exports
	ColumnTitle        = "Title"
	ColumnFemaleShare  = "%Female"
	ColumnAreas        = "Areas"
	ColumnBestQuartile = "SJR Best Quartile"

	// AreaTagSeparator splits the multi-valued Areas column
	AreaTagSeparator = ";"

	// Rate Limiting
	DefaultRateLimit = 100 // requests per minute
	DefaultBurstSize = 50

	// Network Timeouts
	DefaultHTTPTimeout = 30 * time.Second

	// File Paths (relative to executable)
	DefaultDataDir    = "data"
	DefaultReportsDir = "data/reports"
	DefaultLogsDir    = "logs"
)
