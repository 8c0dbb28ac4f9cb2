package analytics

import "errors"

var (
	// ErrEmptySubset is returned when an estimator would divide by the size
	// of an empty table.
	ErrEmptySubset = errors.New("analytics: empty subset")

	// ErrMissingColumn is returned when an input table lacks a required column.
	ErrMissingColumn = errors.New("analytics: missing column")

	// ErrInvalidFraction is returned for a share or rate outside [0, 1].
	ErrInvalidFraction = errors.New("analytics: fraction outside [0, 1]")

	// ErrInvalidPrice is returned when a daily rental price is negative.
	ErrInvalidPrice = errors.New("analytics: negative rental price")

	// ErrInvalidStep is returned when a curve is requested with a step <= 0.
	ErrInvalidStep = errors.New("analytics: curve step must be positive")
)
