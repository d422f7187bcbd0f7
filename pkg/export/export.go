// Package export renders tabular payloads into downloadable documents.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// Table is ordered tabular content ready for rendering.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]string
}

// CSV renders the table as CSV bytes.
func CSV(t Table) ([]byte, error) {
	if len(t.Columns) == 0 {
		return nil, fmt.Errorf("csv requires at least one column")
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(t.Columns); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range t.Rows {
		record := make([]string, len(t.Columns))
		copy(record, row)
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// PDF renders the table as a basic A4 document with a header row.
func PDF(t Table) ([]byte, error) {
	if len(t.Columns) == 0 {
		return nil, fmt.Errorf("pdf requires at least one column")
	}
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(10, 15, 10)
	doc.AddPage()

	if t.Title != "" {
		doc.SetFont("Arial", "B", 14)
		doc.CellFormat(0, 10, strings.ToUpper(t.Title), "", 1, "C", false, 0, "")
		doc.Ln(5)
	}

	colWidth := 190.0 / float64(len(t.Columns))
	doc.SetFont("Arial", "B", 10)
	for _, col := range t.Columns {
		doc.CellFormat(colWidth, 8, col, "1", 0, "C", false, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Arial", "", 9)
	for _, row := range t.Rows {
		for i := range t.Columns {
			var value string
			if i < len(row) {
				value = row[i]
			}
			doc.CellFormat(colWidth, 7, value, "1", 0, "", false, 0, "")
		}
		doc.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := doc.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
