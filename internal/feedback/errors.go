package feedback

import "errors"

var (
	// ErrInvalidType is returned when a submission carries a feedback value
	// outside the closed set.
	ErrInvalidType = errors.New("invalid feedback type")

	// ErrMissingKeys is returned when a submission lacks a store or zone id.
	ErrMissingKeys = errors.New("store id and zone id are required")
)
