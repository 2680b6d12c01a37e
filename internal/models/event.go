// Package models defines the event and record types shared across the relay.
package models

// PushEvent is an inbound registry image-push event. The envelope fields
// follow the EventBridge-style custom event shape emitted by registry
// pipelines; only Detail carries data the relay acts on.
type PushEvent struct {
	ID         string      `json:"id,omitempty"`
	Source     string      `json:"source,omitempty"`
	DetailType string      `json:"detail-type,omitempty"`
	Time       string      `json:"time,omitempty"`
	Detail     EventDetail `json:"detail"`
}

// EventDetail holds the repository and tag of the pushed image.
// Both fields are optional on the wire; absent values are substituted
// with "unknown" during processing.
type EventDetail struct {
	Repository string `json:"repository"`
	ImageTag   string `json:"imageTag"`
}

// ImageRecord is the persisted record of a processed push, keyed by tag.
// Timestamp is RFC 3339 UTC, assigned by the relay at processing time.
type ImageRecord struct {
	ImageTag   string `json:"imageTag" yaml:"imageTag"`
	Repository string `json:"repository" yaml:"repository"`
	Timestamp  string `json:"timestamp" yaml:"timestamp"`
}

// Notification is the message delivered to notification channels.
type Notification struct {
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	Repository string `json:"repository"`
	ImageTag   string `json:"imageTag"`
	Timestamp  string `json:"timestamp"`
}
