package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// CSVExporter writes an emission report as CSV: one row per record, then a
// per-category summary section.
type CSVExporter struct {
	writer *csv.Writer
}

// NewCSVExporter creates a CSV exporter targeting w.
func NewCSVExporter(w io.Writer) *CSVExporter {
	return &CSVExporter{writer: csv.NewWriter(w)}
}

// Write renders the full report and flushes the underlying writer.
func (e *CSVExporter) Write(data ReportData) error {
	if err := e.writer.Write(recordColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, record := range data.Records {
		if err := e.writer.Write(recordRow(record)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	// Summary section, separated by a blank row.
	if err := e.writer.Write([]string{}); err != nil {
		return err
	}
	if err := e.writer.Write([]string{"Category", "Total CO2e (kg)", "Entries"}); err != nil {
		return err
	}
	for _, stat := range data.Summary {
		row := []string{stat.Category, formatFloat(stat.TotalCO2), strconv.Itoa(stat.Count)}
		if err := e.writer.Write(row); err != nil {
			return err
		}
	}
	if err := e.writer.Write([]string{"Total", formatFloat(data.Total), ""}); err != nil {
		return err
	}

	e.writer.Flush()
	return e.writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
