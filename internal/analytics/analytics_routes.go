package analytics

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
	analytics := r.Group("/analytics")
	analytics.Use(middleware.ContextLogger(logger))
	{
		analytics.GET("", middleware.RateLimitByIP(5, 15), handler.Dashboard)
	}
}
