// Package handlers implements the relay's HTTP API.
package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/tagwatch/tagwatch/internal/audit"
	"github.com/tagwatch/tagwatch/internal/httputil"
	"github.com/tagwatch/tagwatch/internal/models"
	"github.com/tagwatch/tagwatch/internal/ratelimit"
	"github.com/tagwatch/tagwatch/internal/relay"
	"github.com/tagwatch/tagwatch/internal/store"
)

const maxEventSize = 1 << 20 // 1 MiB

// EventHandler serves the webhook ingest and record lookup endpoints.
type EventHandler struct {
	relay   *relay.Relay
	store   store.Store
	limiter ratelimit.RateLimiter
	auditor *audit.Recorder
	token   string
	logger  *slog.Logger
}

// New creates an EventHandler. auditor may be nil when audit is disabled;
// token may be empty to disable bearer-token auth on the webhook.
func New(r *relay.Relay, s store.Store, limiter ratelimit.RateLimiter, auditor *audit.Recorder, token string, logger *slog.Logger) *EventHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventHandler{
		relay:   r,
		store:   s,
		limiter: limiter,
		auditor: auditor,
		token:   token,
		logger:  logger,
	}
}

// HandleEvent accepts a push event and runs it through the relay.
func (h *EventHandler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		httputil.WriteError(w, http.StatusUnauthorized, "invalid or missing token")
		return
	}

	var event models.PushEvent
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEventSize))
	if err := dec.Decode(&event); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid event payload")
		return
	}

	source := event.Source
	if source == "" {
		source = r.RemoteAddr
	}

	allowed, err := h.limiter.Allow(r.Context(), source)
	if err != nil {
		h.logger.WarnContext(r.Context(), "rate limit check failed",
			slog.String("source", source),
			slog.String("error", err.Error()),
		)
		// Fail open: a broken limiter should not drop events.
		allowed = true
	}
	if !allowed {
		httputil.WriteError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	rec, err := h.relay.Process(r.Context(), &event)
	if err != nil {
		h.writeProcessError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusAccepted, map[string]interface{}{
		"status": "ok",
		"record": rec,
	})
}

func (h *EventHandler) writeProcessError(w http.ResponseWriter, r *http.Request, err error) {
	var malformed *relay.MalformedEventError
	var persistence *relay.PersistenceError
	var notification *relay.NotificationError

	switch {
	case errors.As(err, &malformed):
		httputil.WriteError(w, http.StatusBadRequest, malformed.Error())
	case errors.As(err, &persistence):
		h.logger.ErrorContext(r.Context(), "record write failed", slog.String("error", err.Error()))
		httputil.WriteError(w, http.StatusServiceUnavailable, "failed to persist record")
	case errors.As(err, &notification):
		h.logger.ErrorContext(r.Context(), "notification publish failed", slog.String("error", err.Error()))
		httputil.WriteError(w, http.StatusBadGateway, "record persisted but notification failed")
	default:
		h.logger.ErrorContext(r.Context(), "event processing failed", slog.String("error", err.Error()))
		httputil.WriteError(w, http.StatusInternalServerError, "event processing failed")
	}
}

// HandleGetImage returns the stored record for a tag.
func (h *EventHandler) HandleGetImage(w http.ResponseWriter, r *http.Request) {
	tag := r.PathValue("tag")
	if tag == "" {
		httputil.WriteError(w, http.StatusBadRequest, "missing image tag")
		return
	}

	rec, err := h.store.Get(r.Context(), tag)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			httputil.WriteError(w, http.StatusNotFound, "no record for tag")
			return
		}
		h.logger.ErrorContext(r.Context(), "record read failed", slog.String("error", err.Error()))
		httputil.WriteError(w, http.StatusServiceUnavailable, "failed to read record")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, rec)
}

// HandleAudit returns recent audit entries. Responds 404 when the audit
// log is not configured.
func (h *EventHandler) HandleAudit(w http.ResponseWriter, r *http.Request) {
	if h.auditor == nil {
		httputil.WriteError(w, http.StatusNotFound, "audit log not enabled")
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := h.auditor.Recent(r.Context(), limit)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "audit read failed", slog.String("error", err.Error()))
		httputil.WriteError(w, http.StatusServiceUnavailable, "failed to read audit log")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}

// Health reports liveness.
func (h *EventHandler) Health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Ready reports readiness to accept events.
func (h *EventHandler) Ready(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (h *EventHandler) authorized(r *http.Request) bool {
	if h.token == "" {
		return true
	}
	header := r.Header.Get("Authorization")
	got, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.token)) == 1
}
