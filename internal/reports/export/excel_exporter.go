package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	recordsSheet = "Emissions"
	summarySheet = "Summary"
)

// ExcelExporter writes an emission report as a two-sheet workbook: the raw
// records and the per-category summary.
type ExcelExporter struct {
	file *excelize.File
}

// NewExcelExporter creates an Excel exporter.
func NewExcelExporter() *ExcelExporter {
	file := excelize.NewFile()
	file.SetSheetName("Sheet1", recordsSheet)
	return &ExcelExporter{file: file}
}

// Write renders the report into the workbook and streams it to w.
func (e *ExcelExporter) Write(w io.Writer, data ReportData) error {
	headerStyle, err := e.file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for col, name := range recordColumns {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := e.file.SetCellValue(recordsSheet, cell, name); err != nil {
			return err
		}
		if err := e.file.SetCellStyle(recordsSheet, cell, cell, headerStyle); err != nil {
			return err
		}
	}
	for i, record := range data.Records {
		values := []any{
			record.Date.Format("2006-01-02"),
			string(record.Category),
			record.Activity,
			record.Amount,
			record.Unit,
			record.CO2e,
			record.Notes,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := e.file.SetCellValue(recordsSheet, cell, value); err != nil {
				return err
			}
		}
	}
	if err := e.file.SetColWidth(recordsSheet, "A", "G", 16); err != nil {
		return err
	}

	if _, err := e.file.NewSheet(summarySheet); err != nil {
		return err
	}
	summaryHeader := []string{"Category", "Total CO2e (kg)", "Entries"}
	for col, name := range summaryHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := e.file.SetCellValue(summarySheet, cell, name); err != nil {
			return err
		}
		if err := e.file.SetCellStyle(summarySheet, cell, cell, headerStyle); err != nil {
			return err
		}
	}
	row := 2
	for _, stat := range data.Summary {
		_ = e.file.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), stat.Category)
		_ = e.file.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), stat.TotalCO2)
		_ = e.file.SetCellValue(summarySheet, fmt.Sprintf("C%d", row), stat.Count)
		row++
	}
	_ = e.file.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), "Total")
	_ = e.file.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), data.Total)

	if _, err := e.file.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
