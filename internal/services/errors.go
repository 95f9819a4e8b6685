package services

import "errors"

// Service errors
var (
	// Dataset errors
	ErrDatasetNotLoaded = errors.New("dataset not loaded")
	ErrNoFilesFound     = errors.New("no export files found")

	// Analytics errors
	ErrYearNotAvailable = errors.New("year not available in dataset")
	ErrNoData           = errors.New("no data available")

	// General errors
	ErrInvalidInput       = errors.New("invalid input")
	ErrServiceUnavailable = errors.New("service temporarily unavailable")
)
