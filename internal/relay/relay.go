// Package relay implements the core push-event processing: one inbound
// event becomes one persisted image record and one outbound notification.
package relay

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tagwatch/tagwatch/internal/metrics"
	"github.com/tagwatch/tagwatch/internal/models"
	"github.com/tagwatch/tagwatch/internal/notify"
	"github.com/tagwatch/tagwatch/internal/store"
)

// UnknownField is substituted for a repository or tag absent from the
// event detail. Missing fields never fail processing on their own.
const UnknownField = "unknown"

// NotificationSubject is the fixed subject line of push notifications.
const NotificationSubject = "ECR Image Push Notification"

// Auditor records processing outcomes for the audit trail. Recording is
// best-effort; implementations must not block processing on failure.
type Auditor interface {
	Record(ctx context.Context, rec *models.ImageRecord, outcome string)
}

// Option configures a Relay.
type Option func(*Relay)

// WithClock overrides the time source. Used by tests to pin timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Relay) { r.now = now }
}

// WithStrictValidation makes Process reject events missing repository or
// tag with a MalformedEventError instead of defaulting them.
func WithStrictValidation() Option {
	return func(r *Relay) { r.strict = true }
}

// WithAuditor attaches an audit recorder.
func WithAuditor(a Auditor) Option {
	return func(r *Relay) { r.auditor = a }
}

// WithLogger overrides the logger (defaults to slog.Default).
func WithLogger(l *slog.Logger) Option {
	return func(r *Relay) { r.logger = l }
}

// Relay transforms one inbound push event into one persisted record and
// one outbound notification. It keeps no state between invocations;
// concurrent calls race only on same-tag writes, where the later write
// by completion order wins.
type Relay struct {
	store   store.Store
	channel notify.Channel
	auditor Auditor
	logger  *slog.Logger
	now     func() time.Time
	strict  bool
}

// New creates a Relay with an explicit store and notification channel.
func New(s store.Store, ch notify.Channel, opts ...Option) *Relay {
	r := &Relay{
		store:   s,
		channel: ch,
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Process handles a single push event:
//
//  1. Extract repository and tag from the event detail, defaulting absent
//     fields to "unknown".
//  2. Stamp the record with the current UTC time (RFC 3339). The record
//     time is when the relay observed the event, not when it occurred
//     upstream.
//  3. Upsert the record keyed by tag. The write is last-write-wins;
//     duplicate deliveries overwrite with a fresh timestamp.
//  4. Publish the notification.
//
// The two side effects are not atomic: a failed write skips the publish
// (PersistenceError), and a failed publish leaves the record persisted
// (NotificationError). The relay never retries; redelivery is the
// caller's responsibility.
func (r *Relay) Process(ctx context.Context, event *models.PushEvent) (*models.ImageRecord, error) {
	start := r.now()

	repo := event.Detail.Repository
	tag := event.Detail.ImageTag

	if r.strict && (repo == "" || tag == "") {
		metrics.EventsTotal.WithLabelValues("malformed").Inc()
		return nil, &MalformedEventError{Reason: "detail is missing repository or imageTag"}
	}

	if repo == "" {
		repo = UnknownField
	}
	if tag == "" {
		tag = UnknownField
	}

	rec := &models.ImageRecord{
		ImageTag:   tag,
		Repository: repo,
		Timestamp:  r.now().UTC().Format(time.RFC3339),
	}

	if err := r.store.Put(ctx, rec); err != nil {
		metrics.EventsTotal.WithLabelValues("store_error").Inc()
		metrics.StoreErrors.Inc()
		r.audit(ctx, rec, "store_error")
		return nil, &PersistenceError{ImageTag: tag, Err: err}
	}

	notification := &models.Notification{
		Subject:    NotificationSubject,
		Body:       fmt.Sprintf("Image pushed: %s:%s at %s", repo, tag, rec.Timestamp),
		Repository: repo,
		ImageTag:   tag,
		Timestamp:  rec.Timestamp,
	}

	if err := r.channel.Publish(ctx, notification); err != nil {
		metrics.EventsTotal.WithLabelValues("publish_error").Inc()
		metrics.PublishErrors.Inc()
		r.audit(ctx, rec, "publish_error")
		// The record stays persisted; there is no rollback.
		return rec, &NotificationError{ImageTag: tag, Err: err}
	}

	metrics.EventsTotal.WithLabelValues("ok").Inc()
	metrics.ProcessDuration.Observe(r.now().Sub(start).Seconds())
	r.audit(ctx, rec, "ok")

	r.logger.InfoContext(ctx, "push event processed",
		slog.String("repository", repo),
		slog.String("image_tag", tag),
		slog.String("timestamp", rec.Timestamp),
	)

	return rec, nil
}

func (r *Relay) audit(ctx context.Context, rec *models.ImageRecord, outcome string) {
	if r.auditor != nil {
		r.auditor.Record(ctx, rec, outcome)
	}
}
