package reports

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apiv1 "carbontrack/carbontrack-backend/api/v1"
	"carbontrack/carbontrack-backend/internal/analytics"
	"carbontrack/carbontrack-backend/internal/middleware"
	"carbontrack/carbontrack-backend/internal/reports/export"
	"carbontrack/carbontrack-backend/pkg/pdf"
)

type Handler struct {
	service Service
	pdf     *pdf.Generator
}

func NewHandler(service Service, generator *pdf.Generator) *Handler {
	return &Handler{service: service, pdf: generator}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/emissions/export", h.Export)
	rg.GET("/reports/weekly", h.ListWeekly)
}

// Export streams the user's period-scoped emission report in the requested
// format as a file download.
func (h *Handler) Export(c *gin.Context) {
	period := analytics.ParsePeriod(c.Query("period"))
	format := export.ParseFormat(c.Query("format"))

	data, err := h.service.BuildReport(c.Request.Context(), middleware.UserID(c), period)
	if err != nil {
		apiv1.Error(c, err)
		return
	}

	var buf bytes.Buffer
	switch format {
	case export.FormatXLSX:
		err = export.NewExcelExporter().Write(&buf, *data)
	case export.FormatPDF:
		var doc []byte
		doc, err = h.pdf.Generate(buildPDFReport(*data))
		if err == nil {
			buf.Write(doc)
		}
	default:
		err = export.NewCSVExporter(&buf).Write(*data)
	}
	if err != nil {
		apiv1.Error(c, err)
		return
	}

	filename := fmt.Sprintf("emissions-%s.%s", data.Period, format.Extension())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

func (h *Handler) ListWeekly(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "12"), 10, 64)
	weekly, err := h.service.WeeklyReports(c.Request.Context(), middleware.UserID(c), limit)
	if err != nil {
		apiv1.Error(c, err)
		return
	}
	if weekly == nil {
		weekly = []WeeklyReport{}
	}
	apiv1.Success(c, http.StatusOK, gin.H{"reports": weekly})
}

func buildPDFReport(data export.ReportData) pdf.Report {
	report := pdf.Report{
		Title:       "Carbon Footprint Report",
		Subtitle:    fmt.Sprintf("%s — period: %s", data.Username, data.Period),
		GeneratedAt: data.GeneratedAt,
		Columns:     []string{"Date", "Category", "Activity", "Amount", "Unit", "CO2e (kg)"},
		Widths:      []float64{25, 32, 32, 25, 25, 30},
	}
	for _, record := range data.Records {
		report.Rows = append(report.Rows, []string{
			record.Date.Format("2006-01-02"),
			string(record.Category),
			record.Activity,
			strconv.FormatFloat(record.Amount, 'f', 2, 64),
			record.Unit,
			strconv.FormatFloat(record.CO2e, 'f', 2, 64),
		})
	}
	for _, stat := range data.Summary {
		report.SummaryLines = append(report.SummaryLines,
			fmt.Sprintf("%s: %.2f kg CO2e (%d entries)", stat.Category, stat.TotalCO2, stat.Count))
	}
	report.SummaryLines = append(report.SummaryLines, fmt.Sprintf("Total: %.2f kg CO2e", data.Total))
	return report
}
