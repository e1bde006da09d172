package submission

import "errors"

var (
	// ErrUnsortedInput is returned when emitter input is not sorted by
	// (code, indicator). A code appearing twice non-adjacently would emit
	// two records for the same code.
	ErrUnsortedInput = errors.New("submission: input not sorted by (code, indicator)")
	// ErrInvalidScale is returned for a non-positive scale factor.
	ErrInvalidScale = errors.New("submission: scale factor must be positive")
	// ErrSectionConflict is returned when rows of one code disagree on their
	// section. Finalizing such a group would drop the other section's amounts.
	ErrSectionConflict = errors.New("submission: rows of one code span sections")
)
