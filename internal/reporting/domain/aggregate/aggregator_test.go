package aggregate

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"rdalreport/internal/reporting/domain/code"
)

func obs(c string, ind code.Indicator, amount string) code.Observation {
	return code.Observation{Code: code.Code(c), Indicator: ind, Amount: decimal.RequireFromString(amount)}
}

func TestSumGroupsByCodeAndIndicator(t *testing.T) {
	entries, err := Sum([]code.Observation{
		obs("4211075000000Y", code.IndicatorDebit, "1500"),
		obs("4211075000000Y", code.IndicatorDebit, "500"),
		obs("4211075000000Y", code.IndicatorCredit, "300"),
		obs("5850002000000Y", code.IndicatorDebit, "100"),
	})
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	SortEntries(entries)
	if !entries[0].Amount.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("debit total %s, want 2000", entries[0].Amount)
	}
	if entries[0].Indicator != code.IndicatorDebit || entries[1].Indicator != code.IndicatorCredit {
		t.Fatalf("sort order broken: %v %v", entries[0], entries[1])
	}
}

func TestSumIsOrderIndependent(t *testing.T) {
	forward := []code.Observation{
		obs("4211075000000Y", code.IndicatorDebit, "0.1"),
		obs("4211075000000Y", code.IndicatorDebit, "0.2"),
		obs("4211075000000Y", code.IndicatorDebit, "0.3"),
	}
	reversed := []code.Observation{forward[2], forward[1], forward[0]}

	a, err := Sum(forward)
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	b, err := Sum(reversed)
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	if !a[0].Amount.Equal(b[0].Amount) {
		t.Fatalf("order changed the total: %s vs %s", a[0].Amount, b[0].Amount)
	}
	if !a[0].Amount.Equal(decimal.RequireFromString("0.6")) {
		t.Fatalf("decimal sum drifted: %s", a[0].Amount)
	}
}

func TestSumExactDecimalNoFloatDrift(t *testing.T) {
	var observations []code.Observation
	for i := 0; i < 1000; i++ {
		observations = append(observations, obs("4211075000000Y", code.IndicatorDebit, "0.01"))
	}
	entries, err := Sum(observations)
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	if !entries[0].Amount.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("1000 x 0.01 must be exactly 10, got %s", entries[0].Amount)
	}
}

func TestSumRejectsMalformedCode(t *testing.T) {
	_, err := Sum([]code.Observation{obs("42110", code.IndicatorDebit, "1")})
	if !errors.Is(err, ErrMalformedObservation) {
		t.Fatalf("expected ErrMalformedObservation, got %v", err)
	}
}

func TestSumAtMostOneEntryPerKey(t *testing.T) {
	entries, err := Sum([]code.Observation{
		obs("4211075000000Y", code.IndicatorDebit, "1"),
		obs("4211075000000Y", code.IndicatorDebit, "2"),
	})
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	seen := map[code.Key]bool{}
	for _, e := range entries {
		if seen[e.Key()] {
			t.Fatalf("duplicate key %v", e.Key())
		}
		seen[e.Key()] = true
	}
}
