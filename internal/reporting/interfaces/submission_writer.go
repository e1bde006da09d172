package interfaces

import (
	"bytes"
	"fmt"

	"rdalreport/internal/reporting/application"
	"rdalreport/internal/reporting/domain/submission"
)

// BuildArtifact renders the submission text artifact: the RDAL-dated header
// line, then the AL, OB and SP sections, each opened by its marker line.
// Amount fields are plain integers, semicolon-delimited, newline-terminated,
// no trailing delimiter.
func BuildArtifact(records []submission.Record, date application.ReportDate, dateFormat string) ([]byte, error) {
	var buf bytes.Buffer

	switch dateFormat {
	case application.DateFormatShort:
		fmt.Fprintf(&buf, "RDAL%02d%02d%02d\n", date.Day, date.Month, date.Year%100)
	case application.DateFormatLong:
		fmt.Fprintf(&buf, "RDAL%02d%02d%04d\n", date.Day, date.Month, date.Year)
	default:
		return nil, fmt.Errorf("submission writer: unknown date format %q", dateFormat)
	}

	for _, section := range []submission.Section{
		submission.SectionAssetLiability,
		submission.SectionOffBalance,
		submission.SectionSpecial,
	} {
		buf.WriteString(section.Marker())
		buf.WriteByte('\n')
		for _, rec := range records {
			if rec.Section != section {
				continue
			}
			if section == submission.SectionSpecial {
				fmt.Fprintf(&buf, "%s;%s\n", rec.Code, rec.Total)
				continue
			}
			fmt.Fprintf(&buf, "%s;%s;%s\n", rec.Code, rec.DebitTotal, rec.CreditTotal)
		}
	}
	return buf.Bytes(), nil
}
