package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apiv1 "carbontrack/carbontrack-backend/api/v1"
	"carbontrack/carbontrack-backend/internal/middleware"
	"carbontrack/carbontrack-backend/internal/users"
)

type Handler struct {
	service *Service
	users   users.Service
}

func NewHandler(service *Service, userService users.Service) *Handler {
	return &Handler{service: service, users: userService}
}

type registerRequest struct {
	Username string         `json:"username" binding:"required"`
	Email    string         `json:"email" binding:"required"`
	Password string         `json:"password" binding:"required"`
	Profile  *users.Profile `json:"profile"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiv1.Fail(c, http.StatusBadRequest, "username, email and password are required")
		return
	}

	user, token, err := h.service.Register(c.Request.Context(), RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Profile:  req.Profile,
	})
	if err != nil {
		apiv1.Error(c, err)
		return
	}

	apiv1.Success(c, http.StatusCreated, gin.H{"token": token, "user": user})
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiv1.Fail(c, http.StatusBadRequest, "email and password are required")
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		apiv1.Error(c, err)
		return
	}

	apiv1.Success(c, http.StatusOK, gin.H{"token": token, "user": user})
}

func (h *Handler) Me(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		apiv1.Error(c, err)
		return
	}
	apiv1.Success(c, http.StatusOK, gin.H{"user": user})
}

func (h *Handler) UpdatePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiv1.Fail(c, http.StatusBadRequest, "current and new password are required")
		return
	}

	token, err := h.service.ChangePassword(c.Request.Context(), middleware.UserID(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		apiv1.Error(c, err)
		return
	}
	apiv1.Success(c, http.StatusOK, gin.H{"token": token})
}
