package app

import (
	"context"
	"os"

	"pto-tracker/internal/emailsync"
	"pto-tracker/internal/employee"
	"pto-tracker/internal/leave"
	"pto-tracker/internal/messaging/kafka"
	"pto-tracker/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure, migrates the schema, and registers
// every module's routes on the router. Redis is optional: without REDIS_ADDR
// the API runs with idempotency and dashboard caching disabled.
func BuildApp(router *gin.Engine) error {
	logger := zap.L().Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	if err := gormDB.AutoMigrate(
		&employee.Employee{},
		&leave.Leave{},
		&emailsync.SyncLogEntry{},
	); err != nil {
		return err
	}
	if err := kafka.EnsureSchema(context.Background(), sqlDB); err != nil {
		return err
	}

	var rdb *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb, err = connection.ConnectRedisWithRetry(addr, 5)
		if err != nil {
			return err
		}
		logger.Info("redis connection established")
	} else {
		logger.Warn("REDIS_ADDR not set, idempotency and dashboard caching disabled")
	}

	return registerModules(router, sqlDB, gormDB, rdb, newMailClientFromEnv(logger))
}

// newMailClientFromEnv builds the mail client once at startup; a nil client
// means email sync reports itself as not configured instead of failing.
func newMailClientFromEnv(logger *zap.Logger) emailsync.MailClient {
	baseURL := os.Getenv("MAIL_API_BASE_URL")
	mailbox := os.Getenv("MONITORED_EMAIL")
	if baseURL == "" || mailbox == "" {
		logger.Warn("mail provider not configured, email sync disabled")
		return nil
	}
	return emailsync.NewHTTPMailClient(baseURL, mailbox, os.Getenv("MAIL_API_TOKEN"))
}
