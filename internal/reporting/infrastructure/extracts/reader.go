package extracts

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"rdalreport/internal/reporting/domain/classify"
	"rdalreport/internal/reporting/domain/code"
	"rdalreport/internal/reporting/domain/submission"
)

// ErrMalformedRow is returned for a row that cannot be parsed into an
// observation. Fatal for the run.
var ErrMalformedRow = errors.New("extracts: malformed row")

// Extract file formats at the input boundary.
const (
	// FormatAttributed is the per-source business-field layout:
	// transaction_type;residency;customer_type;product_subtype;maturity_bucket;currency;indicator;amount
	FormatAttributed = "attributed"
	// FormatCoded is the pre-classified layout: code;amount;indicator.
	FormatCoded = "coded"
)

// Reader reads source extracts from semicolon-delimited files.
type Reader struct{}

// NewReader constructs a Reader.
func NewReader() *Reader { return &Reader{} }

// ReadAttributed parses an attributed extract into classification inputs.
func (r *Reader) ReadAttributed(path string) ([]classify.Attributes, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}
	out := make([]classify.Attributes, 0, len(rows))
	for i, row := range rows {
		if len(row) != 8 {
			return nil, fmt.Errorf("%w: %s line %d has %d fields, want 8", ErrMalformedRow, path, i+1, len(row))
		}
		amount, err := parseAmount(row[7], path, i+1)
		if err != nil {
			return nil, err
		}
		indicator := code.Indicator(strings.TrimSpace(row[6]))
		if !indicator.IsValid() {
			return nil, fmt.Errorf("%w: %s line %d indicator %q", ErrMalformedRow, path, i+1, row[6])
		}
		out = append(out, classify.Attributes{
			TransactionType: strings.TrimSpace(row[0]),
			Residency:       strings.TrimSpace(row[1]),
			CustomerType:    strings.TrimSpace(row[2]),
			ProductSubType:  strings.TrimSpace(row[3]),
			MaturityBucket:  strings.TrimSpace(row[4]),
			Currency:        strings.TrimSpace(row[5]),
			Indicator:       indicator,
			Amount:          amount,
		})
	}
	return out, nil
}

// ReadCoded parses a pre-classified extract of code;amount;indicator rows.
func (r *Reader) ReadCoded(path string) ([]code.Observation, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}
	out := make([]code.Observation, 0, len(rows))
	for i, row := range rows {
		if len(row) != 3 {
			return nil, fmt.Errorf("%w: %s line %d has %d fields, want 3", ErrMalformedRow, path, i+1, len(row))
		}
		c, err := code.Parse(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %v", ErrMalformedRow, path, i+1, err)
		}
		amount, err := parseAmount(row[1], path, i+1)
		if err != nil {
			return nil, err
		}
		indicator := code.Indicator(strings.TrimSpace(row[2]))
		if !indicator.IsValid() {
			return nil, fmt.Errorf("%w: %s line %d indicator %q", ErrMalformedRow, path, i+1, row[2])
		}
		out = append(out, code.Observation{Code: c, Indicator: indicator, Amount: amount})
	}
	return out, nil
}

// ReadAdjustments parses the externally supplied Special-section adjustment
// set of code;amount rows.
func (r *Reader) ReadAdjustments(path string) ([]submission.Row, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}
	out := make([]submission.Row, 0, len(rows))
	for i, row := range rows {
		if len(row) != 2 {
			return nil, fmt.Errorf("%w: %s line %d has %d fields, want 2", ErrMalformedRow, path, i+1, len(row))
		}
		c, err := code.Parse(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %v", ErrMalformedRow, path, i+1, err)
		}
		amount, err := parseAmount(row[1], path, i+1)
		if err != nil {
			return nil, err
		}
		out = append(out, submission.Row{Code: c, Section: submission.SectionSpecial, Amount: amount})
	}
	return out, nil
}

func readRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedRow, path, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseAmount(field, path string, line int) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(field))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %s line %d amount %q", ErrMalformedRow, path, line, field)
	}
	return amount, nil
}
