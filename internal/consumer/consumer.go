// Package consumer subscribes to inbound push events on the message bus.
package consumer

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/tagwatch/tagwatch/internal/messaging"
	"github.com/tagwatch/tagwatch/internal/models"
	"github.com/tagwatch/tagwatch/internal/relay"
)

// Consumer feeds bus-delivered push events into the relay. Failures are
// logged and returned to the bus layer; the consumer performs no retries
// of its own — redelivery policy belongs to the broker.
type Consumer struct {
	client  messaging.Client
	relay   *relay.Relay
	subject string
	queue   string
	logger  *slog.Logger
	sub     messaging.Subscription
}

// New creates a consumer for the given subject and queue group.
// Empty subject or queue fall back to the bus defaults.
func New(client messaging.Client, r *relay.Relay, subject, queue string, logger *slog.Logger) *Consumer {
	if subject == "" {
		subject = messaging.SubjectRegistryPush
	}
	if queue == "" {
		queue = messaging.QueueRelayWorkers
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Consumer{
		client:  client,
		relay:   r,
		subject: subject,
		queue:   queue,
		logger:  logger,
	}
}

// Start queue-subscribes to the push subject.
func (c *Consumer) Start() error {
	sub, err := c.client.QueueSubscribe(c.subject, c.queue, c.handle)
	if err != nil {
		return err
	}
	c.sub = sub
	c.logger.Info("subscribed to push events",
		slog.String("subject", c.subject),
		slog.String("queue", c.queue),
	)
	return nil
}

// Stop unsubscribes from the push subject.
func (c *Consumer) Stop() error {
	if c.sub != nil {
		return c.sub.Unsubscribe()
	}
	return nil
}

func (c *Consumer) handle(ctx context.Context, msg *messaging.Message) error {
	var event models.PushEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		c.logger.ErrorContext(ctx, "failed to decode push event",
			slog.String("subject", msg.Subject),
			slog.String("error", err.Error()),
		)
		return err
	}

	if _, err := c.relay.Process(ctx, &event); err != nil {
		c.logger.ErrorContext(ctx, "failed to process push event",
			slog.String("repository", event.Detail.Repository),
			slog.String("image_tag", event.Detail.ImageTag),
			slog.String("error", err.Error()),
		)
		return err
	}

	return nil
}
