package logging

import (
	"log/slog"
	"testing"

	"github.com/rfallows/hearth-bridge/internal/infrastructure/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"nonsense", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNew_DoesNotPanic(t *testing.T) {
	for _, format := range []string{"json", "text", ""} {
		for _, output := range []string{"stdout", "stderr", ""} {
			log := New(config.LoggingConfig{Level: "error", Format: format, Output: output}, "test")
			if log == nil {
				t.Fatalf("New(format=%q, output=%q) returned nil", format, output)
			}
		}
	}
}

func TestWith_ReturnsNewLogger(t *testing.T) {
	base := New(config.LoggingConfig{Level: "error"}, "test")
	child := base.With("component", "test")
	if child == base {
		t.Error("With() should return a new Logger")
	}
	if child.Logger == nil {
		t.Error("With() returned Logger with nil slog.Logger")
	}
}

func TestDefault(t *testing.T) {
	if Default() == nil {
		t.Error("Default() returned nil")
	}
}
