package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/tagwatch/tagwatch/internal/messaging"
	"github.com/tagwatch/tagwatch/internal/models"
)

type fakePublisher struct {
	subject string
	data    []byte
	err     error
}

func (p *fakePublisher) Publish(ctx context.Context, subject string, data []byte) error {
	if p.err != nil {
		return p.err
	}
	p.subject = subject
	p.data = data
	return nil
}

func (p *fakePublisher) PublishJSON(ctx context.Context, subject string, data interface{}) error {
	bytes, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return p.Publish(ctx, subject, bytes)
}

func TestBrokerChannel_PublishesToSubject(t *testing.T) {
	pub := &fakePublisher{}
	channel := NewBrokerChannel(pub, "")

	if channel.Type() != "broker" {
		t.Errorf("Type() = %q, want broker", channel.Type())
	}

	if err := channel.Publish(context.Background(), testNotification()); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	if pub.subject != messaging.SubjectNotifyPush {
		t.Errorf("subject = %q, want %q", pub.subject, messaging.SubjectNotifyPush)
	}

	var n models.Notification
	if err := json.Unmarshal(pub.data, &n); err != nil {
		t.Fatalf("unmarshal published payload: %v", err)
	}
	if n.ImageTag != "v1" || n.Repository != "sample-app-repo" {
		t.Errorf("payload = %+v", n)
	}
}

func TestBrokerChannel_CustomSubject(t *testing.T) {
	pub := &fakePublisher{}
	channel := NewBrokerChannel(pub, "registry.notifications.custom")

	if err := channel.Publish(context.Background(), testNotification()); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if pub.subject != "registry.notifications.custom" {
		t.Errorf("subject = %q", pub.subject)
	}
}

func TestBrokerChannel_PublishError(t *testing.T) {
	pub := &fakePublisher{err: errors.New("not connected")}
	channel := NewBrokerChannel(pub, "")

	if err := channel.Publish(context.Background(), testNotification()); err == nil {
		t.Error("Publish() should surface publisher errors")
	}
}
