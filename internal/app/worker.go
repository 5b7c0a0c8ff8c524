package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"pto-tracker/internal/emailsync"
	"pto-tracker/internal/employee"
	"pto-tracker/internal/leave"
	"pto-tracker/internal/messaging/kafka"
	"pto-tracker/internal/messaging/kafka/producer"
	"pto-tracker/internal/shared/connection"

	"go.uber.org/zap"
)

const defaultEmailSyncInterval = 15 * time.Minute

// RunWorker runs the background side of the system: the outbox producer that
// relays leave lifecycle events to Kafka, and the periodic email sync.
func RunWorker() error {
	logger := zap.L().Named("app.worker")

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

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(kafkaBroker, 5)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		3*time.Second,
	)

	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	leaveService := leave.NewServiceWithOutbox(sqlDB, leaveRepo, outboxRepo, logger)
	emailSyncService := emailsync.NewService(
		emailsync.NewRepository(gormDB),
		employeeRepo,
		leaveService,
		newMailClientFromEnv(logger),
		logger,
	)

	go runEmailSyncLoop(ctx, emailSyncService, emailSyncInterval(), logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}

func runEmailSyncLoop(ctx context.Context, service emailsync.Service, interval time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("email sync loop started", zap.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			result, err := service.Sync(ctx)
			if err != nil {
				logger.Error("scheduled email sync failed", zap.Error(err))
				continue
			}
			logger.Info("scheduled email sync finished",
				zap.Bool("success", result.Success),
				zap.Int("processed", result.ProcessedCount),
				zap.Int("added", result.AddedCount),
			)
		}
	}
}

func emailSyncInterval() time.Duration {
	raw := os.Getenv("EMAIL_SYNC_INTERVAL_MINUTES")
	if raw == "" {
		return defaultEmailSyncInterval
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes <= 0 {
		return defaultEmailSyncInterval
	}
	return time.Duration(minutes) * time.Minute
}
