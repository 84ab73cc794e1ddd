package loadtest

import "errors"

var (
	// ErrInvalidConfiguration indicates bad profile or distribution inputs.
	// Raised synchronously, before any worker starts.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrAggregation indicates a malformed result set, e.g. an end
	// timestamp before the start timestamp.
	ErrAggregation = errors.New("aggregation error")
)
