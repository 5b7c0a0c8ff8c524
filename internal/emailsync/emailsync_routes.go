package emailsync

import (
	"pto-tracker/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	logger *zap.Logger,
) {
	emails := r.Group("/email")
	emails.Use(middleware.ContextLogger(logger))
	{
		emails.POST("/sync", middleware.RateLimitByIP(0.2, 1), handler.Sync)
		emails.GET("/sync-history", middleware.RateLimitByIP(5, 15), handler.History)
	}
}
