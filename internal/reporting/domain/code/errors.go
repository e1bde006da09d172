package code

import "errors"

var (
	// ErrMalformedCode is returned when a code does not fit the fixed layout.
	ErrMalformedCode = errors.New("code: malformed code")
	// ErrInvalidGranularity is returned for an unknown cadence name.
	ErrInvalidGranularity = errors.New("code: invalid granularity")
)
