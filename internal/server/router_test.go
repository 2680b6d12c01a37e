package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tagwatch/tagwatch/internal/handlers"
	"github.com/tagwatch/tagwatch/internal/notify"
	"github.com/tagwatch/tagwatch/internal/ratelimit"
	"github.com/tagwatch/tagwatch/internal/relay"
	"github.com/tagwatch/tagwatch/internal/store"
)

func newTestRouter() http.Handler {
	s := store.NewMemoryStore()
	r := relay.New(s, notify.NewLogChannel(nil))
	h := handlers.New(r, s, &ratelimit.NoOpRateLimiter{}, nil, "", nil)
	return NewRouter(h)
}

func TestRouter_EventRoundTrip(t *testing.T) {
	router := newTestRouter()

	body := `{"detail":{"repository":"sample-app-repo","imageTag":"v1"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", strings.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusAccepted {
		t.Fatalf("POST /api/v1/events status = %d, want 202", rr.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/images/v1", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("GET /api/v1/images/v1 status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "sample-app-repo") {
		t.Errorf("record body = %s", rr.Body.String())
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /api/v1/events status = %d, want 405", rr.Code)
	}
}

func TestRouter_HealthEndpoints(t *testing.T) {
	router := newTestRouter()

	for _, path := range []string{"/healthz", "/readyz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, rr.Code)
		}
	}
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("GET /metrics status = %d, want 200", rr.Code)
	}
}

func TestRouter_SetsRequestID(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("response missing X-Request-ID header")
	}
}
