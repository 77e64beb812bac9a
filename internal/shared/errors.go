package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Results errors
	ErrResultsNotFound   = fmt.Errorf("results not found")
	ErrInvalidResults    = fmt.Errorf("invalid results")
	ErrUnsupportedFormat = fmt.Errorf("unsupported format")
	ErrSourceUnavailable = fmt.Errorf("results source unavailable")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
