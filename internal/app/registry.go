package app

import (
	"database/sql"

	"pto-tracker/internal/analytics"
	"pto-tracker/internal/emailsync"
	"pto-tracker/internal/employee"
	"pto-tracker/internal/leave"
	"pto-tracker/internal/messaging/kafka"
	"pto-tracker/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	mail emailsync.MailClient,
) error {
	logger := zap.L()

	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	analyticsRepo := analytics.NewRepository(gormDB)
	emailSyncRepo := emailsync.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	employeeService := employee.NewService(db, employeeRepo, logger)
	leaveService := leave.NewServiceWithOutbox(db, leaveRepo, outboxRepo, logger)
	analyticsService := analytics.NewService(analyticsRepo, logger)
	emailSyncService := emailsync.NewService(emailSyncRepo, employeeRepo, leaveService, mail, logger)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService, logger)
	leaveHandler := leave.NewHandlerWithRedis(leaveService, rdb, logger)
	analyticsHandler := analytics.NewHandler(analyticsService, rdb, logger)
	emailSyncHandler := emailsync.NewHandler(emailSyncService, logger)

	// --- Routes Registration ---
	router.Use(middleware.RequestID())
	if rdb != nil {
		router.Use(middleware.Idempotency(rdb))
	}

	api := router.Group("/api/v1")
	{
		employee.RegisterRoutes(api, employeeHandler, logger)
		leave.RegisterRoutes(api, leaveHandler, logger)
		analytics.RegisterRoutes(api, analyticsHandler, logger)
		emailsync.RegisterRoutes(api, emailSyncHandler, logger)
	}

	return nil
}
