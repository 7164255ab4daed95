package services

import "errors"

// Dashboard service errors
var (
	// Dataset errors
	ErrDatasetNotLoaded = errors.New("dataset not loaded")
	ErrDatasetEmpty     = errors.New("dataset has no usable rows")

	// Range errors
	ErrInvalidDateRange = errors.New("invalid date range")

	// Export errors
	ErrTableNotFound = errors.New("summary table not found")

	// General errors
	ErrInvalidInput       = errors.New("invalid input")
	ErrServiceUnavailable = errors.New("service temporarily unavailable")
)
