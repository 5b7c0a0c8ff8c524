package producer

import (
	"context"
	"pto-tracker/internal/messaging/kafka"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// The tracker feeds a single low-volume lifecycle topic; small batches keep
// a poisoned event from stalling the rest of the queue for long.
const pendingBatchSize = 20

func ProcessOutboxEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer *kafkago.Writer,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}

	log := logger.Named("kafka.producer.worker")
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	log.Info("outbox relay started", zap.Duration("poll_interval", pollInterval))

	for {
		select {
		case <-ctx.Done():
			log.Info("outbox relay stopped")
			return
		case <-ticker.C:
			if err := processPendingEvents(ctx, repo, writer, log); err != nil {
				log.Error("process outbox events failed", zap.Error(err))
			}
		}
	}
}

func processPendingEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer *kafkago.Writer,
	logger *zap.Logger,
) error {
	events, err := repo.ListPending(ctx, pendingBatchSize)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		return nil
	}

	sent := 0
	for _, event := range events {
		if err := publishEvent(ctx, writer, event); err != nil {
			logger.Error("publish leave event failed",
				zap.String("outbox_id", event.ID),
				zap.String("leave_id", event.AggregateID),
				zap.Int("retry_count", event.RetryCount),
				zap.Error(err),
			)
			_ = repo.MarkFailed(ctx, event.ID, err.Error())
			continue
		}

		if err := repo.MarkSent(ctx, event.ID); err != nil {
			logger.Error("mark outbox sent failed",
				zap.String("outbox_id", event.ID),
				zap.Error(err),
			)
			continue
		}

		sent++
		logger.Debug("leave event relayed",
			zap.String("outbox_id", event.ID),
			zap.String("event_type", event.EventType),
		)
	}

	logger.Info("outbox batch relayed",
		zap.Int("pending", len(events)),
		zap.Int("sent", sent),
	)

	return nil
}
