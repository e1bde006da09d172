package interfaces

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"rdalreport/internal/reporting/application"
	"rdalreport/internal/reporting/domain/submission"
)

// BuildInspectionWorkbook renders the final code set as an XLSX workbook
// with one sheet per section, for manual review before submission.
func BuildInspectionWorkbook(records []submission.Record) ([]byte, error) {
	f := excelize.NewFile()

	sheets := map[submission.Section]string{
		submission.SectionAssetLiability: "AL",
		submission.SectionOffBalance:     "OB",
		submission.SectionSpecial:        "SP",
	}
	f.SetSheetName("Sheet1", sheets[submission.SectionAssetLiability])
	f.NewSheet(sheets[submission.SectionOffBalance])
	f.NewSheet(sheets[submission.SectionSpecial])

	for _, section := range []submission.Section{
		submission.SectionAssetLiability,
		submission.SectionOffBalance,
	} {
		sheet := sheets[section]
		_ = f.SetCellValue(sheet, "A1", "Code")
		_ = f.SetCellValue(sheet, "B1", "Debit (incl. credit)")
		_ = f.SetCellValue(sheet, "C1", "Credit")
		row := 2
		for _, rec := range records {
			if rec.Section != section {
				continue
			}
			_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), rec.Code.String())
			_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), rec.DebitTotal.String())
			_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), rec.CreditTotal.String())
			row++
		}
	}

	spSheet := sheets[submission.SectionSpecial]
	_ = f.SetCellValue(spSheet, "A1", "Code")
	_ = f.SetCellValue(spSheet, "B1", "Total")
	row := 2
	for _, rec := range records {
		if rec.Section != submission.SectionSpecial {
			continue
		}
		_ = f.SetCellValue(spSheet, fmt.Sprintf("A%d", row), rec.Code.String())
		_ = f.SetCellValue(spSheet, fmt.Sprintf("B%d", row), rec.Total.String())
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildSummaryPDF renders a one-page PDF summary of the submission.
func BuildSummaryPDF(records []submission.Record, date application.ReportDate) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Regulatory Submission Summary")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Reporting date: %02d/%02d/%04d", date.Day, date.Month, date.Year))
	pdf.Ln(8)

	counts := map[submission.Section]int{}
	for _, rec := range records {
		counts[rec.Section]++
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(40, 6, "Section", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Codes", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, section := range []submission.Section{
		submission.SectionAssetLiability,
		submission.SectionOffBalance,
		submission.SectionSpecial,
	} {
		pdf.CellFormat(40, 6, section.Marker(), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%d", counts[section]), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
