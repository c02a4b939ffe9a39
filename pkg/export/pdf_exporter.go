package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders a MarkSheet into a landscape tabular PDF. Mark sheets
// carry one column per subject component, so landscape A4 is the only
// orientation that fits a full Dakhil row.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a PDF document with an optional title and table body.
func (e *PDFExporter) Render(sheet MarkSheet, title string) ([]byte, error) {
	if len(sheet.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(8, 12, 8)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 13)
		pdf.CellFormat(0, 9, strings.ToUpper(title), "", 1, "C", false, 0, "")
		pdf.Ln(3)
	}

	pageWidth, _ := pdf.GetPageSize()
	usable := pageWidth - 16

	widths := make([]float64, len(sheet.Headers))
	weight := 0.0
	for i, header := range sheet.Headers {
		// Name columns get extra room; numeric columns share the rest.
		if strings.EqualFold(header, "Name") {
			widths[i] = 3
		} else {
			widths[i] = 1
		}
		weight += widths[i]
	}
	for i := range widths {
		widths[i] = usable * widths[i] / weight
	}

	pdf.SetFont("Arial", "B", 7)
	for i, header := range sheet.Headers {
		pdf.CellFormat(widths[i], 7, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 7)
	for _, row := range sheet.Rows {
		for i := range sheet.Headers {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			align := "C"
			if strings.EqualFold(sheet.Headers[i], "Name") {
				align = "L"
			}
			pdf.CellFormat(widths[i], 6, value, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
