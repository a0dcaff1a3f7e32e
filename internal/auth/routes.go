package auth

import "github.com/gin-gonic/gin"

// RegisterRoutes registers auth routes; register and login stay public, the
// rest sit behind the token middleware.
func RegisterRoutes(rg *gin.RouterGroup, handler *Handler, requireAuth gin.HandlerFunc) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", handler.Register)
		authGroup.POST("/login", handler.Login)
		authGroup.GET("/me", requireAuth, handler.Me)
		authGroup.PUT("/update-password", requireAuth, handler.UpdatePassword)
	}
}
