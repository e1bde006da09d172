package aggregate

import "errors"

var (
	// ErrMalformedObservation is returned when an observation carries a
	// code that does not fit the fixed layout. Fatal for the run.
	ErrMalformedObservation = errors.New("aggregate: malformed observation")
	// ErrReconcileOrder is returned when overlays are folded out of order.
	// Callers must fold strictly finest-first.
	ErrReconcileOrder = errors.New("aggregate: reconcile order violation")
	// ErrInvalidOverlay is returned for an overlay with an unknown cadence.
	ErrInvalidOverlay = errors.New("aggregate: invalid overlay granularity")
)
