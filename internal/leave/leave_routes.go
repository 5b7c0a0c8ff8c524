package leave

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
	leaves := r.Group("/leaves")
	leaves.Use(middleware.ContextLogger(logger))
	{
		leaves.GET("", middleware.RateLimitByIP(10, 30), handler.GetAll)
		leaves.GET("/:id", middleware.RateLimitByIP(10, 30), handler.GetById)
		leaves.POST("", middleware.RateLimitByIP(1, 5), handler.Create)
		leaves.PUT("/:id", middleware.RateLimitByIP(1, 5), handler.Update)
		leaves.DELETE("/:id", middleware.RateLimitByIP(0.5, 2), handler.Delete)
	}
}
