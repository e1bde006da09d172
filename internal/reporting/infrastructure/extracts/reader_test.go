package extracts

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"rdalreport/internal/reporting/domain/code"
)

func writeExtract(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write extract: %v", err)
	}
	return path
}

func TestReadAttributed(t *testing.T) {
	path := writeExtract(t, "weekly.csv",
		"DEPOSIT;R;0;11;75;MYR;D;1500.50\n"+
			"LOAN;R;2;50;02;MYR;I;-300\n")

	reader := NewReader()
	rows, err := reader.ReadAttributed(path)
	if err != nil {
		t.Fatalf("read attributed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].TransactionType != "DEPOSIT" || rows[0].MaturityBucket != "75" {
		t.Fatalf("row 0 %+v", rows[0])
	}
	if !rows[0].Amount.Equal(decimal.RequireFromString("1500.50")) {
		t.Fatalf("row 0 amount %s", rows[0].Amount)
	}
	if rows[1].Indicator != code.IndicatorCredit || !rows[1].Amount.IsNegative() {
		t.Fatalf("row 1 %+v", rows[1])
	}
}

func TestReadAttributedRejectsNonNumericAmount(t *testing.T) {
	path := writeExtract(t, "bad.csv", "DEPOSIT;R;0;11;75;MYR;D;abc\n")
	if _, err := NewReader().ReadAttributed(path); !errors.Is(err, ErrMalformedRow) {
		t.Fatalf("expected ErrMalformedRow, got %v", err)
	}
}

func TestReadCoded(t *testing.T) {
	path := writeExtract(t, "monthly.csv",
		"4211075000000Y;2000;D\n"+
			"5850003000000Y;250;I\n")

	rows, err := NewReader().ReadCoded(path)
	if err != nil {
		t.Fatalf("read coded: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Code != "4211075000000Y" || rows[0].Indicator != code.IndicatorDebit {
		t.Fatalf("row 0 %+v", rows[0])
	}
}

func TestReadCodedRejectsShortCode(t *testing.T) {
	path := writeExtract(t, "bad.csv", "42110;10;D\n")
	if _, err := NewReader().ReadCoded(path); !errors.Is(err, ErrMalformedRow) {
		t.Fatalf("expected ErrMalformedRow, got %v", err)
	}
}

func TestReadCodedRejectsUnknownIndicator(t *testing.T) {
	path := writeExtract(t, "bad.csv", "4211075000000Y;10;X\n")
	if _, err := NewReader().ReadCoded(path); !errors.Is(err, ErrMalformedRow) {
		t.Fatalf("expected ErrMalformedRow, got %v", err)
	}
}

func TestReadAdjustments(t *testing.T) {
	path := writeExtract(t, "adjustments.csv", "1011002000000Y;66\n")
	rows, err := NewReader().ReadAdjustments(path)
	if err != nil {
		t.Fatalf("read adjustments: %v", err)
	}
	if len(rows) != 1 || rows[0].Code != "1011002000000Y" {
		t.Fatalf("rows %+v", rows)
	}
}

func TestReadMissingFileIsNotExist(t *testing.T) {
	_, err := NewReader().ReadCoded(filepath.Join(t.TempDir(), "absent.csv"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}
