package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"carbontrack/carbontrack-backend/pkg/apperrors"
)

// Response is the JSON envelope every endpoint replies with.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Success writes a success envelope with the given payload.
func Success(c *gin.Context, status int, data any) {
	c.JSON(status, Response{Status: "success", Data: data})
}

// SuccessMessage writes a success envelope with a message and optional payload.
func SuccessMessage(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{Status: "success", Message: message, Data: data})
}

// Fail writes a client-error envelope.
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, Response{Status: "fail", Message: message})
}

// Error maps a classified service error onto its HTTP status. Unclassified
// errors become an opaque 500; internals are never echoed to the caller.
func Error(c *gin.Context, err error) {
	switch {
	case apperrors.IsValidation(err):
		Fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		Fail(c, http.StatusNotFound, "resource not found")
	case errors.Is(err, apperrors.ErrDuplicate):
		Fail(c, http.StatusConflict, "email or username already exists")
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		Fail(c, http.StatusUnauthorized, "incorrect email or password")
	default:
		c.JSON(http.StatusInternalServerError, Response{Status: "error", Message: "internal server error"})
	}
}
