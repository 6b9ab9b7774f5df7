package forecast

import "errors"

var (
	// ErrEmptyInput is returned when no qualifying order records exist.
	ErrEmptyInput = errors.New("no order data found")

	// ErrInsufficientData is returned when records exist but cover too few days to model.
	ErrInsufficientData = errors.New("not enough data to forecast")

	// ErrInvalidArgument is returned for out-of-range horizons, top counts or metrics.
	ErrInvalidArgument = errors.New("invalid argument")
)
