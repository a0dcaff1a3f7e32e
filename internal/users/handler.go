package users

import (
	"net/http"

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
	usersGroup := rg.Group("/users")
	{
		usersGroup.GET("/profile", h.GetProfile)
		usersGroup.PUT("/profile", h.UpdateProfile)
		usersGroup.PUT("/preferences", h.UpdatePreferences)
		usersGroup.GET("/stats", h.GetStats)
	}
}

type profileUpdateRequest struct {
	Username *string  `json:"username"`
	Email    *string  `json:"email"`
	Profile  *Profile `json:"profile"`
}

func (h *Handler) GetProfile(c *gin.Context) {
	user, err := h.service.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		apiv1.Error(c, err)
		return
	}
	apiv1.Success(c, http.StatusOK, gin.H{"user": user})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiv1.Fail(c, http.StatusBadRequest, "invalid profile payload")
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), middleware.UserID(c), ProfileUpdate{
		Username: req.Username,
		Email:    req.Email,
		Profile:  req.Profile,
	})
	if err != nil {
		apiv1.Error(c, err)
		return
	}
	apiv1.Success(c, http.StatusOK, gin.H{"user": user})
}

func (h *Handler) UpdatePreferences(c *gin.Context) {
	var prefs Preferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		apiv1.Fail(c, http.StatusBadRequest, "invalid preferences payload")
		return
	}

	user, err := h.service.UpdatePreferences(c.Request.Context(), middleware.UserID(c), prefs)
	if err != nil {
		apiv1.Error(c, err)
		return
	}
	apiv1.Success(c, http.StatusOK, gin.H{"user": user})
}

func (h *Handler) GetStats(c *gin.Context) {
	user, err := h.service.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		apiv1.Error(c, err)
		return
	}
	apiv1.Success(c, http.StatusOK, gin.H{"stats": user.Stats})
}
