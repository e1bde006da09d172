package classify

import (
	"testing"

	"github.com/shopspring/decimal"

	"rdalreport/internal/reporting/domain/code"
)

func depositAttrs(amount int64) Attributes {
	return Attributes{
		TransactionType: TxDeposit,
		Residency:       "R",
		CustomerType:    "0",
		ProductSubType:  "11",
		MaturityBucket:  "75",
		Currency:        "MYR",
		Indicator:       code.IndicatorDebit,
		Amount:          decimal.NewFromInt(amount),
	}
}

func TestClassifyExclusiveGroupFirstMatchWins(t *testing.T) {
	engine, err := NewEngine(DefaultRuleset())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	out, err := engine.Classify(depositAttrs(1500))
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	// Base code plus the non-exclusive maturity rollup.
	if len(out) != 2 {
		t.Fatalf("expected 2 observations, got %d", len(out))
	}
	if out[0].Code.String() != "4211075000000Y" {
		t.Fatalf("base code %q", out[0].Code)
	}
	if out[1].Code.String() != "4211000000000Y" {
		t.Fatalf("rollup code %q", out[1].Code)
	}
	if !out[0].Amount.Equal(decimal.NewFromInt(1500)) || !out[1].Amount.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("amounts not carried: %v %v", out[0].Amount, out[1].Amount)
	}
}

func TestClassifyNonResidentDepositTakesSecondRule(t *testing.T) {
	engine, _ := NewEngine(DefaultRuleset())
	attrs := depositAttrs(100)
	attrs.Residency = "N"

	out, err := engine.Classify(attrs)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if out[0].Code.Family() != "43" {
		t.Fatalf("expected non-resident family 43, got %q", out[0].Code.Family())
	}
	if out[1].Code.Family() != "43" {
		t.Fatalf("rollup must follow the same family, got %q", out[1].Code.Family())
	}
}

func TestClassifyZeroAmountSuppressedUnlessAllowed(t *testing.T) {
	engine, _ := NewEngine(DefaultRuleset())

	out, err := engine.Classify(depositAttrs(0))
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("zero-amount deposit must emit nothing, got %d", len(out))
	}
	if engine.Dropped() != 0 {
		t.Fatalf("matched zero-amount rows are not drops")
	}

	placement := depositAttrs(0)
	placement.TransactionType = TxPlacement
	out, err = engine.Classify(placement)
	if err != nil {
		t.Fatalf("classify placement: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("placement placeholder row must pass through, got %d", len(out))
	}
	if !out[0].Amount.IsZero() {
		t.Fatalf("placeholder amount must stay zero")
	}
}

func TestClassifyUnmatchedIsDroppedAndCounted(t *testing.T) {
	engine, _ := NewEngine(DefaultRuleset())
	attrs := depositAttrs(10)
	attrs.TransactionType = "UNKNOWN"

	out, err := engine.Classify(attrs)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("unmatched attributes must emit nothing")
	}
	if engine.Dropped() != 1 {
		t.Fatalf("dropped count %d, want 1", engine.Dropped())
	}
}

func TestClassifyBlankIndicatorMemo(t *testing.T) {
	engine, _ := NewEngine(DefaultRuleset())
	attrs := depositAttrs(0)
	attrs.TransactionType = TxFXPosition

	out, err := engine.Classify(attrs)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected one memo row, got %d", len(out))
	}
	if out[0].Indicator != code.IndicatorBlank {
		t.Fatalf("memo indicator %q, want blank", out[0].Indicator)
	}
	if out[0].Code[1] != '0' {
		t.Fatalf("memo codes carry a zero second digit, got %q", out[0].Code)
	}
}

func TestClassifyIsPureForSameAttributes(t *testing.T) {
	engine, _ := NewEngine(DefaultRuleset())
	first, err := engine.Classify(depositAttrs(250))
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	second, err := engine.Classify(depositAttrs(250))
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("classification must be deterministic")
	}
	for i := range first {
		if first[i].Code != second[i].Code || first[i].Indicator != second[i].Indicator || !first[i].Amount.Equal(second[i].Amount) {
			t.Fatalf("observation %d differs between runs", i)
		}
	}
}

func TestNewEngineRejectsEmptyTable(t *testing.T) {
	if _, err := NewEngine(nil); err == nil {
		t.Fatalf("expected error for empty rule table")
	}
}
