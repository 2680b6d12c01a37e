package logging

import (
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	for _, format := range []string{"json", "text", ""} {
		logger := New(slog.LevelInfo, format)
		if logger == nil || logger.Logger == nil {
			t.Fatalf("New(%q) returned nil logger", format)
		}
	}
}

func TestWith(t *testing.T) {
	logger := New(slog.LevelInfo, "json")
	child := logger.With(Service("relay"))
	if child == nil || child.Logger == logger.Logger {
		t.Error("With() should return a new logger")
	}
}
