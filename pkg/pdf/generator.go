package pdf

import (
	"bytes"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Report is a simple tabular document: a title block, a column grid and a
// trailing summary.
type Report struct {
	Title        string
	Subtitle     string
	GeneratedAt  time.Time
	Columns      []string
	Widths       []float64
	Rows         [][]string
	SummaryLines []string
}

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders the report into a PDF document.
func (g *Generator) Generate(report Report) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle(report.Title, false)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.Cell(0, 10, report.Title)
	doc.Ln(8)
	if report.Subtitle != "" {
		doc.SetFont("Helvetica", "", 11)
		doc.Cell(0, 8, report.Subtitle)
		doc.Ln(6)
	}
	doc.SetFont("Helvetica", "I", 9)
	doc.Cell(0, 6, "Generated "+report.GeneratedAt.Format("2006-01-02 15:04"))
	doc.Ln(10)

	widths := report.Widths
	if len(widths) != len(report.Columns) {
		widths = make([]float64, len(report.Columns))
		for i := range widths {
			widths[i] = 190 / float64(len(report.Columns))
		}
	}

	doc.SetFont("Helvetica", "B", 9)
	doc.SetFillColor(68, 114, 196)
	doc.SetTextColor(255, 255, 255)
	for i, column := range report.Columns {
		doc.CellFormat(widths[i], 7, column, "1", 0, "C", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 9)
	doc.SetTextColor(0, 0, 0)
	for _, row := range report.Rows {
		for i, value := range row {
			if i < len(widths) {
				doc.CellFormat(widths[i], 6, value, "1", 0, "L", false, 0, "")
			}
		}
		doc.Ln(-1)
	}

	if len(report.SummaryLines) > 0 {
		doc.Ln(6)
		doc.SetFont("Helvetica", "B", 10)
		for _, line := range report.SummaryLines {
			doc.Cell(0, 6, line)
			doc.Ln(6)
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
