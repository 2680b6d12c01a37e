package notify

import (
	"context"
	"fmt"

	"github.com/tagwatch/tagwatch/internal/messaging"
	"github.com/tagwatch/tagwatch/internal/models"
)

// BrokerChannel publishes notifications to a message-bus subject. Every
// current subscriber of the subject receives each notification.
type BrokerChannel struct {
	publisher messaging.Publisher
	subject   string
}

// NewBrokerChannel creates a broker-backed notification channel.
// An empty subject defaults to messaging.SubjectNotifyPush.
func NewBrokerChannel(publisher messaging.Publisher, subject string) *BrokerChannel {
	if subject == "" {
		subject = messaging.SubjectNotifyPush
	}
	return &BrokerChannel{publisher: publisher, subject: subject}
}

func (b *BrokerChannel) Type() string {
	return "broker"
}

func (b *BrokerChannel) Publish(ctx context.Context, n *models.Notification) error {
	if err := b.publisher.PublishJSON(ctx, b.subject, n); err != nil {
		return fmt.Errorf("publish to %s: %w", b.subject, err)
	}
	return nil
}
