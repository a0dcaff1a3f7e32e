package emissions

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apiv1 "carbontrack/carbontrack-backend/api/v1"
	"carbontrack/carbontrack-backend/internal/middleware"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/emissions")
	{
		group.POST("", h.Create)
		group.GET("", h.List)
		group.GET("/activities/:category", h.Activities)
		group.GET("/:id", h.Get)
		group.PUT("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
	}
}

type createRequest struct {
	Category   string   `json:"category" binding:"required"`
	Activity   string   `json:"activity" binding:"required"`
	Amount     *float64 `json:"amount" binding:"required"`
	Unit       string   `json:"unit" binding:"required"`
	Date       string   `json:"date"`
	Notes      string   `json:"notes"`
	Passengers int      `json:"passengers"`
}

type updateRequest struct {
	Category   *string  `json:"category"`
	Activity   *string  `json:"activity"`
	Amount     *float64 `json:"amount"`
	Unit       *string  `json:"unit"`
	Date       *string  `json:"date"`
	Notes      *string  `json:"notes"`
	Passengers *int     `json:"passengers"`
}

func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiv1.Fail(c, http.StatusBadRequest, "category, activity, amount and unit are required")
		return
	}

	date, ok := parseDate(c, req.Date)
	if !ok {
		return
	}

	emission, err := h.service.Create(c.Request.Context(), middleware.UserID(c), CreateInput{
		Category:   Category(req.Category),
		Activity:   req.Activity,
		Amount:     *req.Amount,
		Unit:       req.Unit,
		Date:       date,
		Notes:      req.Notes,
		Passengers: req.Passengers,
	})
	if err != nil {
		apiv1.Error(c, err)
		return
	}

	apiv1.SuccessMessage(c, http.StatusCreated, "emission recorded successfully", gin.H{"emission": emission})
}

func (h *Handler) List(c *gin.Context) {
	filter := ListFilter{
		Category: Category(c.Query("category")),
		Page:     parseInt(c.Query("page"), 1),
		Limit:    parseInt(c.Query("limit"), 10),
	}
	if start := c.Query("startDate"); start != "" {
		if t, err := time.Parse(time.RFC3339, start); err == nil {
			filter.StartDate = &t
		} else if t, err := time.Parse("2006-01-02", start); err == nil {
			filter.StartDate = &t
		}
	}
	if end := c.Query("endDate"); end != "" {
		if t, err := time.Parse(time.RFC3339, end); err == nil {
			filter.EndDate = &t
		} else if t, err := time.Parse("2006-01-02", end); err == nil {
			filter.EndDate = &t
		}
	}

	results, total, err := h.service.List(c.Request.Context(), middleware.UserID(c), filter)
	if err != nil {
		apiv1.Error(c, err)
		return
	}

	pages := total / filter.Limit
	if total%filter.Limit != 0 {
		pages++
	}

	apiv1.Success(c, http.StatusOK, gin.H{
		"emissions": results,
		"pagination": gin.H{
			"current": filter.Page,
			"pages":   pages,
			"total":   total,
		},
	})
}

func (h *Handler) Get(c *gin.Context) {
	emission, err := h.service.Get(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		apiv1.Error(c, err)
		return
	}
	apiv1.Success(c, http.StatusOK, gin.H{"emission": emission})
}

func (h *Handler) Update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiv1.Fail(c, http.StatusBadRequest, "invalid emission payload")
		return
	}

	input := UpdateInput{
		Activity:   req.Activity,
		Amount:     req.Amount,
		Unit:       req.Unit,
		Notes:      req.Notes,
		Passengers: req.Passengers,
	}
	if req.Category != nil {
		category := Category(*req.Category)
		input.Category = &category
	}
	if req.Date != nil {
		date, ok := parseDate(c, *req.Date)
		if !ok {
			return
		}
		input.Date = date
	}

	emission, err := h.service.Update(c.Request.Context(), c.Param("id"), middleware.UserID(c), input)
	if err != nil {
		apiv1.Error(c, err)
		return
	}
	apiv1.Success(c, http.StatusOK, gin.H{"emission": emission})
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		apiv1.Error(c, err)
		return
	}
	apiv1.SuccessMessage(c, http.StatusOK, "emission deleted successfully", nil)
}

// Activities lists the activity keys for a category so the frontend can
// populate its dropdowns. Unknown categories yield an empty list.
func (h *Handler) Activities(c *gin.Context) {
	category := c.Param("category")
	apiv1.Success(c, http.StatusOK, gin.H{
		"category":   category,
		"activities": AvailableActivities(Category(category)),
	})
}

func parseDate(c *gin.Context, raw string) (*time.Time, bool) {
	if raw == "" {
		return nil, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t, true
	}
	apiv1.Fail(c, http.StatusBadRequest, "date must be RFC3339 or YYYY-MM-DD")
	return nil, false
}

func parseInt(raw string, fallback int64) int64 {
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
