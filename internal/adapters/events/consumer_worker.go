package events

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/showcasehq/voting-service/internal/application"
)

// Message is one consumed event. Key carries the producer's partition
// key, the user ref for the identity topics.
type Message struct {
	Topic   string
	Key     string
	Payload []byte
}

type Consumer interface {
	Poll(ctx context.Context, max int) ([]Message, error)
}

// ConsumerWorker mirrors voter identities from the identity service's
// event stream so vote rows can reference voters without a synchronous
// cross-service lookup.
type ConsumerWorker struct {
	logger   *slog.Logger
	consumer Consumer
	service  *application.Service
	interval time.Duration
}

func NewConsumerWorker(logger *slog.Logger, consumer Consumer, service *application.Service, interval time.Duration) *ConsumerWorker {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &ConsumerWorker{
		logger: logger, consumer: consumer, service: service, interval: interval,
	}
}

func (w *ConsumerWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if err := w.processOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
			w.logger.ErrorContext(ctx, "consumer iteration failed",
				"module", "events.consumer_worker",
				"layer", "adapter",
				"operation", "process_once",
				"outcome", "failure",
				"error", err,
			)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (w *ConsumerWorker) processOnce(ctx context.Context) error {
	msgs, err := w.consumer.Poll(ctx, 50)
	if err != nil {
		return err
	}
	for _, msg := range msgs {
		switch msg.Topic {
		case "user.registered":
			if err := w.service.HandleUserRegistered(ctx, msg.Payload); err != nil {
				w.logger.WarnContext(ctx, "failed to handle user.registered", "key", msg.Key, "error", err)
			}
		case "user.deleted":
			if err := w.service.HandleUserDeleted(ctx, msg.Payload); err != nil {
				w.logger.WarnContext(ctx, "failed to handle user.deleted", "key", msg.Key, "error", err)
			}
		default:
			w.logger.DebugContext(ctx, "ignoring message on unhandled topic", "topic", msg.Topic)
		}
	}
	return nil
}
