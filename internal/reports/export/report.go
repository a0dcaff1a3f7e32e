package export

import (
	"time"

	"carbontrack/carbontrack-backend/internal/analytics"
	"carbontrack/carbontrack-backend/internal/emissions"
)

// Format selects the output encoding of an emission report.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ParseFormat maps a query token onto a Format, defaulting to CSV.
func ParseFormat(raw string) Format {
	switch Format(raw) {
	case FormatXLSX, FormatPDF:
		return Format(raw)
	default:
		return FormatCSV
	}
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/csv"
	}
}

// Extension returns the file extension for the format.
func (f Format) Extension() string {
	return string(f)
}

// ReportData is a fully materialized emission report for one user and window:
// the raw records plus the per-category summary derived from them.
type ReportData struct {
	Username    string
	Period      string
	GeneratedAt time.Time
	Records     []emissions.Emission
	Summary     []analytics.CategoryStat
	Total       float64
}

// recordColumns is the column set shared by the CSV and Excel exporters.
var recordColumns = []string{"Date", "Category", "Activity", "Amount", "Unit", "CO2e (kg)", "Notes"}

func recordRow(e emissions.Emission) []string {
	return []string{
		e.Date.Format("2006-01-02"),
		string(e.Category),
		e.Activity,
		formatFloat(e.Amount),
		e.Unit,
		formatFloat(e.CO2e),
		e.Notes,
	}
}
