package code

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Length is the fixed length of a reporting code.
const Length = 14

const (
	filler = "000000"
	marker = "Y"
)

// Code is a 14-character structured regulatory reporting code.
// The whole string is the primary key; no field-level equality is defined.
type Code string

// Build assembles a code from its sub-fields:
// product family (2) + sub-type (2) + customer digit (1) + maturity bucket (2),
// followed by the fixed filler and the trailing marker.
func Build(family, subType, customer, maturity string) (Code, error) {
	if len(family) != 2 {
		return "", fmt.Errorf("%w: family %q", ErrMalformedCode, family)
	}
	if len(subType) != 2 {
		return "", fmt.Errorf("%w: sub-type %q", ErrMalformedCode, subType)
	}
	if len(customer) != 1 {
		return "", fmt.Errorf("%w: customer digit %q", ErrMalformedCode, customer)
	}
	if len(maturity) != 2 {
		return "", fmt.Errorf("%w: maturity bucket %q", ErrMalformedCode, maturity)
	}
	return Code(family + subType + customer + maturity + filler + marker), nil
}

// Parse validates a raw code string.
func Parse(s string) (Code, error) {
	if len(s) != Length {
		return "", fmt.Errorf("%w: %q has length %d", ErrMalformedCode, s, len(s))
	}
	return Code(s), nil
}

// String returns the code text.
func (c Code) String() string { return string(c) }

// Family returns the two product-family characters.
func (c Code) Family() string { return string(c[:2]) }

// CustomerDigit returns the customer/counterparty digit.
func (c Code) CustomerDigit() byte { return c[4] }

// HasPrefix reports whether the code starts with prefix.
func (c Code) HasPrefix(prefix string) bool {
	return len(prefix) <= len(c) && string(c[:len(prefix)]) == prefix
}

// Indicator tags an amount as debit-like or credit-like.
// Special-section rows may carry a blank indicator.
type Indicator string

const (
	// IndicatorDebit marks debit-like amounts.
	IndicatorDebit Indicator = "D"
	// IndicatorCredit marks credit-like amounts.
	IndicatorCredit Indicator = "I"
	// IndicatorBlank marks rows without a debit/credit split.
	IndicatorBlank Indicator = ""
)

// IsValid reports whether the indicator is one of the known values.
func (i Indicator) IsValid() bool {
	switch i {
	case IndicatorDebit, IndicatorCredit, IndicatorBlank:
		return true
	}
	return false
}

// Observation is one classified amount for a code within a single
// granularity. Observations are immutable once produced.
type Observation struct {
	Code      Code
	Indicator Indicator
	Amount    decimal.Decimal
}

// Key is the (code, indicator) grouping key of an observation.
func (o Observation) Key() Key { return Key{Code: o.Code, Indicator: o.Indicator} }

// Key identifies one (code, indicator) pair.
type Key struct {
	Code      Code
	Indicator Indicator
}

// Less orders keys by (code, indicator).
func (k Key) Less(other Key) bool {
	if k.Code != other.Code {
		return k.Code < other.Code
	}
	return k.Indicator < other.Indicator
}
