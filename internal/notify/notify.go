// Package notify delivers push notifications to configured channels.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tagwatch/tagwatch/internal/models"
)

// Channel defines the interface for notification delivery.
type Channel interface {
	Publish(ctx context.Context, n *models.Notification) error
	Type() string
}

// LogChannel writes notifications to the log (for development and tests).
type LogChannel struct {
	logger *slog.Logger
}

// NewLogChannel creates a log-based notification channel.
// A nil logger falls back to slog.Default.
func NewLogChannel(logger *slog.Logger) *LogChannel {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogChannel{logger: logger}
}

func (l *LogChannel) Type() string {
	return "log"
}

func (l *LogChannel) Publish(ctx context.Context, n *models.Notification) error {
	l.logger.InfoContext(ctx, "notification",
		slog.String("subject", n.Subject),
		slog.String("body", n.Body),
		slog.String("repository", n.Repository),
		slog.String("image_tag", n.ImageTag),
	)
	return nil
}

// MultiChannel fans a notification out to multiple channels. It fails
// only when every channel fails, returning the last error.
type MultiChannel struct {
	channels []Channel
}

// NewMultiChannel creates a channel that fans out to the given channels.
func NewMultiChannel(channels ...Channel) *MultiChannel {
	return &MultiChannel{channels: channels}
}

func (m *MultiChannel) Type() string {
	return "multi"
}

func (m *MultiChannel) Publish(ctx context.Context, n *models.Notification) error {
	var lastErr error
	successCount := 0

	for _, ch := range m.channels {
		if err := ch.Publish(ctx, n); err != nil {
			lastErr = fmt.Errorf("%s channel failed: %w", ch.Type(), err)
		} else {
			successCount++
		}
	}

	if successCount == 0 && len(m.channels) > 0 {
		return fmt.Errorf("all notification channels failed: %w", lastErr)
	}

	return nil
}
