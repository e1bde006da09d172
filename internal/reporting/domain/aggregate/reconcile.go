package aggregate

import (
	"fmt"

	"rdalreport/internal/reporting/domain/code"
)

// PrefixSet holds code prefixes excluded from overlay folding. Some code
// families are reported only at their native coarser cadence and must never
// be pulled down into a finer period.
type PrefixSet []string

// Excludes reports whether c starts with any prefix in the set.
func (p PrefixSet) Excludes(c code.Code) bool {
	for _, prefix := range p {
		if c.HasPrefix(prefix) {
			return true
		}
	}
	return false
}

// FoldResult summarises one overlay fold.
type FoldResult struct {
	Folded          int
	SkippedExisting int
	SkippedExcluded int
}

// ReconciledSet is the finest-granularity code set after folding in coarser
// overlays. No two entries share a (code, indicator) key; a coarser entry is
// present only if absent from every finer granularity folded before it.
type ReconciledSet struct {
	entries    []Entry
	keys       map[code.Key]struct{}
	base       code.Granularity
	lastFolded code.Granularity
}

// NewReconciledSet starts a set from the base (finest) aggregate.
func NewReconciledSet(base []Entry, g code.Granularity) (*ReconciledSet, error) {
	if !g.IsValid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOverlay, g)
	}
	s := &ReconciledSet{
		entries:    make([]Entry, 0, len(base)),
		keys:       make(map[code.Key]struct{}, len(base)),
		base:       g,
		lastFolded: g,
	}
	for _, e := range base {
		key := e.Key()
		if _, ok := s.keys[key]; ok {
			return nil, fmt.Errorf("%w: duplicate key %q/%q in base", ErrMalformedObservation, key.Code, key.Indicator)
		}
		s.keys[key] = struct{}{}
		s.entries = append(s.entries, e)
	}
	return s, nil
}

// Fold anti-joins a coarser overlay into the set: an overlay entry enters
// only if its key is absent and its code matches no excluded prefix.
// Overlays must be folded strictly finest-first; a quarterly overlay folded
// before a monthly one could wrongly suppress a monthly code that a weekly
// code should have suppressed instead.
func (s *ReconciledSet) Fold(overlay []Entry, g code.Granularity, excluded PrefixSet) (FoldResult, error) {
	var result FoldResult
	if !g.IsValid() {
		return result, fmt.Errorf("%w: %v", ErrInvalidOverlay, g)
	}
	if g.FinerThan(s.lastFolded) {
		return result, fmt.Errorf("%w: overlay %v after %v", ErrReconcileOrder, g, s.lastFolded)
	}

	for _, e := range overlay {
		if excluded.Excludes(e.Code) {
			result.SkippedExcluded++
			continue
		}
		key := e.Key()
		if _, ok := s.keys[key]; ok {
			result.SkippedExisting++
			continue
		}
		s.keys[key] = struct{}{}
		s.entries = append(s.entries, e)
		result.Folded++
	}

	s.lastFolded = g
	return result, nil
}

// Len returns the number of entries in the set.
func (s *ReconciledSet) Len() int { return len(s.entries) }

// Contains reports whether the set holds the given key.
func (s *ReconciledSet) Contains(key code.Key) bool {
	_, ok := s.keys[key]
	return ok
}

// Entries returns the set's entries sorted by (code, indicator).
func (s *ReconciledSet) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	SortEntries(out)
	return out
}
