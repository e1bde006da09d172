package submission

import (
	"fmt"

	"github.com/shopspring/decimal"

	"rdalreport/internal/reporting/domain/code"
)

// Record is one finalized output line of the submission.
// AL/OB records carry the debit/credit split; by long-standing reporting
// convention the debit column already folds in the credit total. SP records
// carry a single unsplit total.
type Record struct {
	Section     Section
	Code        code.Code
	DebitTotal  decimal.Decimal
	CreditTotal decimal.Decimal
	Total       decimal.Decimal
}

// groupState is the running accumulator of the flush-on-key-change machine.
type groupState struct {
	active  bool
	code    code.Code
	section Section
	debit   decimal.Decimal
	credit  decimal.Decimal
	total   decimal.Decimal
}

// Emit scans rows sorted by (code, indicator) and finalizes one Record per
// distinct code, flushing the accumulators exactly when the code changes and
// once more after the last row. Totals are divided by the scale factor and
// rounded half away from zero before finalizing. Rows of one code must agree
// on their section; a conflicting group fails rather than losing amounts.
func Emit(rows []Row, scale decimal.Decimal) ([]Record, error) {
	if scale.Sign() <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidScale, scale)
	}

	records := make([]Record, 0, len(rows))
	var state groupState
	var prevKey code.Key

	for i, row := range rows {
		key := code.Key{Code: row.Code, Indicator: row.Indicator}
		if i > 0 && key.Less(prevKey) {
			return nil, fmt.Errorf("%w: %q/%q after %q/%q", ErrUnsortedInput, key.Code, key.Indicator, prevKey.Code, prevKey.Indicator)
		}
		prevKey = key

		if state.active && row.Code != state.code {
			records = append(records, state.finalize(scale))
			state = groupState{}
		}
		if !state.active {
			state = groupState{active: true, code: row.Code, section: row.Section}
		} else if row.Section != state.section {
			return nil, fmt.Errorf("%w: %q in %s and %s", ErrSectionConflict, row.Code, state.section.Marker(), row.Section.Marker())
		}

		if row.Section == SectionSpecial {
			state.total = state.total.Add(row.Amount)
			continue
		}
		switch row.Indicator {
		case code.IndicatorCredit:
			state.credit = state.credit.Add(row.Amount)
		default:
			state.debit = state.debit.Add(row.Amount)
		}
	}

	if state.active {
		records = append(records, state.finalize(scale))
	}
	return records, nil
}

// finalize scales, rounds and closes the current group.
func (s *groupState) finalize(scale decimal.Decimal) Record {
	rec := Record{Section: s.section, Code: s.code}
	if s.section == SectionSpecial {
		rec.Total = roundScaled(s.total, scale)
		return rec
	}
	// Debit column folds in the credit total.
	rec.DebitTotal = roundScaled(s.debit.Add(s.credit), scale)
	rec.CreditTotal = roundScaled(s.credit, scale)
	return rec
}

// roundScaled divides by the scale factor and rounds half away from zero to
// the nearest integer.
func roundScaled(amount, scale decimal.Decimal) decimal.Decimal {
	return amount.Div(scale).Round(0)
}
