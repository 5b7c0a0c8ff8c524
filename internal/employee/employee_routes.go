package employee

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
	employees := r.Group("/employees")
	employees.Use(middleware.ContextLogger(logger))
	{
		employees.GET("", middleware.RateLimitByIP(10, 30), handler.GetAll)
		employees.GET("/:id", middleware.RateLimitByIP(10, 30), handler.GetById)
		employees.POST("", middleware.RateLimitByIP(1, 5), handler.Create)
		employees.PUT("/:id", middleware.RateLimitByIP(1, 5), handler.Update)
		employees.DELETE("/:id", middleware.RateLimitByIP(0.5, 2), handler.Delete)
	}
}
