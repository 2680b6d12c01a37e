package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_WithDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}

	if cfg.Server.Port != 8096 {
		t.Errorf("Server.Port = %d, want 8096", cfg.Server.Port)
	}

	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 30s", cfg.Server.ReadTimeout)
	}

	if !cfg.NATS.Enabled {
		t.Error("NATS.Enabled should be true by default")
	}

	if cfg.NATS.Subject != "registry.events.push" {
		t.Errorf("NATS.Subject = %q", cfg.NATS.Subject)
	}

	if cfg.Redis.URL != "redis://localhost:6379/0" {
		t.Errorf("Redis.URL = %q", cfg.Redis.URL)
	}

	if cfg.Redis.KeyPrefix != "tagwatch" {
		t.Errorf("Redis.KeyPrefix = %q, want tagwatch", cfg.Redis.KeyPrefix)
	}

	if len(cfg.Notify.Channels) != 1 || cfg.Notify.Channels[0] != "broker" {
		t.Errorf("Notify.Channels = %v, want [broker]", cfg.Notify.Channels)
	}

	if cfg.Audit.Enabled {
		t.Error("Audit.Enabled should be false by default")
	}

	if cfg.Ingest.Strict {
		t.Error("Ingest.Strict should be false by default")
	}

	if !cfg.Ingest.RateLimitEnabled {
		t.Error("Ingest.RateLimitEnabled should be true by default")
	}

	if cfg.Ingest.RateLimitRequests != 1000 {
		t.Errorf("Ingest.RateLimitRequests = %d, want 1000", cfg.Ingest.RateLimitRequests)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}

	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want json", cfg.Logging.Format)
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9999
ingest:
  strict: true
  token: s3cret
notify:
  channels:
    - webhook
    - log
  webhook_url: http://hooks.example.com/push
logging:
  level: debug
  format: text
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want 9999", cfg.Server.Port)
	}
	if !cfg.Ingest.Strict {
		t.Error("Ingest.Strict should be true")
	}
	if cfg.Ingest.Token != "s3cret" {
		t.Errorf("Ingest.Token = %q", cfg.Ingest.Token)
	}
	if len(cfg.Notify.Channels) != 2 {
		t.Errorf("Notify.Channels = %v", cfg.Notify.Channels)
	}
	if cfg.Notify.WebhookURL != "http://hooks.example.com/push" {
		t.Errorf("Notify.WebhookURL = %q", cfg.Notify.WebhookURL)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "text" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}

	// Unset values keep their defaults.
	if cfg.Redis.URL != "redis://localhost:6379/0" {
		t.Errorf("Redis.URL = %q, want default", cfg.Redis.URL)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/does/not/exist.yaml"); err == nil {
		t.Error("Load() with explicit missing file should return error")
	}
}
