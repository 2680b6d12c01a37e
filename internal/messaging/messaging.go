// Package messaging abstracts the message broker used for inbound push
// events and outbound notifications, so the relay core is not coupled to
// a specific broker implementation.
package messaging

import (
	"context"
	"time"
)

// Message is a message received from or sent to the broker.
type Message struct {
	// Subject is the topic the message was published to.
	Subject string

	// Data is the raw payload.
	Data []byte

	// Timestamp is when the message was received.
	Timestamp time.Time
}

// Handler processes a received message. A returned error marks the
// message as failed; redelivery, if any, is the broker's concern.
type Handler func(ctx context.Context, msg *Message) error

// Subscription is an active subscription to a subject.
type Subscription interface {
	Unsubscribe() error
	Subject() string
	IsValid() bool
}

// Publisher publishes messages to subjects.
type Publisher interface {
	// Publish sends a fire-and-forget message to the subject.
	Publish(ctx context.Context, subject string, data []byte) error

	// PublishJSON marshals data to JSON and publishes it.
	PublishJSON(ctx context.Context, subject string, data interface{}) error
}

// Subscriber subscribes to messages on subjects.
type Subscriber interface {
	// Subscribe delivers every message on the subject to the handler
	// (fan-out across subscribers).
	Subscribe(subject string, handler Handler) (Subscription, error)

	// QueueSubscribe load-balances messages across subscribers in the
	// same queue group, so each message is processed once.
	QueueSubscribe(subject, queue string, handler Handler) (Subscription, error)
}

// Client combines Publisher and Subscriber.
type Client interface {
	Publisher
	Subscriber

	// Drain gracefully closes, letting in-flight messages complete.
	Drain() error

	// IsConnected reports whether the client is connected to the broker.
	IsConnected() bool

	// Close unsubscribes everything and closes the connection.
	Close() error
}
