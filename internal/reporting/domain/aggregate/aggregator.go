package aggregate

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"rdalreport/internal/reporting/domain/code"
)

// Entry is the summed amount for one (code, indicator) pair within a single
// granularity and reporting period.
type Entry struct {
	Code      code.Code
	Indicator code.Indicator
	Amount    decimal.Decimal
}

// Key returns the grouping key of the entry.
func (e Entry) Key() code.Key { return code.Key{Code: e.Code, Indicator: e.Indicator} }

// Sum groups observations by (code, indicator) and sums their amounts with
// exact decimal arithmetic. The result holds at most one entry per key.
// Output order is unspecified; callers sort with SortEntries before handing
// the result to the reconciler or the emitter.
func Sum(observations []code.Observation) ([]Entry, error) {
	totals := make(map[code.Key]decimal.Decimal, len(observations))
	for _, obs := range observations {
		if len(obs.Code) != code.Length {
			return nil, fmt.Errorf("%w: code %q", ErrMalformedObservation, obs.Code)
		}
		if !obs.Indicator.IsValid() {
			return nil, fmt.Errorf("%w: indicator %q for code %q", ErrMalformedObservation, obs.Indicator, obs.Code)
		}
		key := obs.Key()
		totals[key] = totals[key].Add(obs.Amount)
	}

	entries := make([]Entry, 0, len(totals))
	for key, amount := range totals {
		entries = append(entries, Entry{Code: key.Code, Indicator: key.Indicator, Amount: amount})
	}
	return entries, nil
}

// SortEntries orders entries by (code, indicator).
func SortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key().Less(entries[j].Key())
	})
}
