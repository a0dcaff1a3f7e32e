package analytics

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apiv1 "carbontrack/carbontrack-backend/api/v1"
	"carbontrack/carbontrack-backend/internal/middleware"
)

type Handler struct {
	engine *Engine
}

func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

// RegisterRoutes mounts the stats endpoints under /emissions/stats, matching
// the paths the frontend charts fetch, plus the combined /analytics payload.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	stats := rg.Group("/emissions/stats")
	{
		stats.GET("/summary", h.Summary)
		stats.GET("/over-time", h.OverTime)
		stats.GET("/category-breakdown", h.Breakdown)
	}
	rg.GET("/analytics", h.Overview)
}

func (h *Handler) Summary(c *gin.Context) {
	period := ParsePeriod(c.Query("period"))
	summary, err := h.engine.CategorySummary(c.Request.Context(), middleware.UserID(c), period)
	if err != nil {
		apiv1.Error(c, err)
		return
	}
	apiv1.Success(c, http.StatusOK, summary)
}

func (h *Handler) OverTime(c *gin.Context) {
	period := ParsePeriod(c.Query("period"))
	series, err := h.engine.OverTimeSeries(c.Request.Context(), middleware.UserID(c), period)
	if err != nil {
		apiv1.Error(c, err)
		return
	}
	apiv1.Success(c, http.StatusOK, gin.H{
		"period":            period,
		"emissionsOverTime": series,
	})
}

func (h *Handler) Breakdown(c *gin.Context) {
	period := ParsePeriod(c.Query("period"))
	breakdown, err := h.engine.Breakdown(c.Request.Context(), middleware.UserID(c), period)
	if err != nil {
		apiv1.Error(c, err)
		return
	}
	apiv1.Success(c, http.StatusOK, gin.H{
		"period":    period,
		"breakdown": breakdown,
	})
}

func (h *Handler) Overview(c *gin.Context) {
	period := ParsePeriod(c.Query("period"))
	overview, err := h.engine.DashboardOverview(c.Request.Context(), middleware.UserID(c), period)
	if err != nil {
		apiv1.Error(c, err)
		return
	}
	apiv1.Success(c, http.StatusOK, overview)
}
