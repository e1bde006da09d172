package submission

import (
	"sort"

	"github.com/shopspring/decimal"

	"rdalreport/internal/reporting/domain/aggregate"
	"rdalreport/internal/reporting/domain/code"
)

// Section is the report section a surviving code belongs to.
type Section int

const (
	// SectionAssetLiability holds on-balance positions ("AL").
	SectionAssetLiability Section = iota
	// SectionOffBalance holds off-balance-sheet positions ("OB").
	SectionOffBalance
	// SectionSpecial holds special-purpose and memo rows ("SP").
	SectionSpecial
)

// Marker returns the section marker line used in the submission artifact.
func (s Section) Marker() string {
	switch s {
	case SectionAssetLiability:
		return "AL"
	case SectionOffBalance:
		return "OB"
	case SectionSpecial:
		return "SP"
	}
	return "??"
}

// Row is one partitioned entry on its way to the emitter.
type Row struct {
	Code      code.Code
	Indicator code.Indicator
	Amount    decimal.Decimal
	Section   Section
}

// SuppressionRule removes one code from the Special section on specific
// days of the reporting cycle. Documented special case, not a general rule.
type SuppressionRule struct {
	Code code.Code
	Days []int
}

// AppliesOn reports whether the rule suppresses its code on the given day.
func (r SuppressionRule) AppliesOn(day int) bool {
	if r.Code == "" {
		return false
	}
	for _, d := range r.Days {
		if d == day {
			return true
		}
	}
	return false
}

// sectionOf classifies a code by fixed positional rules, mutually exclusive
// and total over the code string alone: codes whose second character is the
// literal zero digit are Special (blank-indicator memo rows all carry such
// codes), codes whose first character is '9' are OffBalance, everything else
// is AssetLiability. Indicators never move a code between sections, so every
// row of one code lands in the same section.
func sectionOf(c code.Code) Section {
	if c[1] == '0' {
		return SectionSpecial
	}
	if c[0] == '9' {
		return SectionOffBalance
	}
	return SectionAssetLiability
}

// Partition classifies every reconciled entry into exactly one section.
// Entries matching the suppression rule on the given reporting day are
// removed from Special entirely.
func Partition(entries []aggregate.Entry, suppression SuppressionRule, reportingDay int) []Row {
	rows := make([]Row, 0, len(entries))
	suppress := suppression.AppliesOn(reportingDay)
	for _, e := range entries {
		section := sectionOf(e.Code)
		if section == SectionSpecial && suppress && e.Code == suppression.Code {
			continue
		}
		rows = append(rows, Row{Code: e.Code, Indicator: e.Indicator, Amount: e.Amount, Section: section})
	}
	return rows
}

// SortRows orders rows by (code, indicator) as the emitter requires.
func SortRows(rows []Row) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Code != rows[j].Code {
			return rows[i].Code < rows[j].Code
		}
		return rows[i].Indicator < rows[j].Indicator
	})
}

// AppendAdjustments concatenates the externally supplied Special-section
// adjustment set with the partitioned rows and restores sort order.
func AppendAdjustments(rows []Row, adjustments []Row) []Row {
	if len(adjustments) == 0 {
		return rows
	}
	merged := make([]Row, 0, len(rows)+len(adjustments))
	merged = append(merged, rows...)
	for _, adj := range adjustments {
		adj.Section = SectionSpecial
		merged = append(merged, adj)
	}
	SortRows(merged)
	return merged
}
