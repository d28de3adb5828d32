package parser

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNopLogger(t *testing.T) {
	l := NopLogger{}
	// Should not panic
	l.Debug("test message", "key", "value")
	l.Info("test message", "key", "value")
	l.Warn("test message", "key", "value")
	l.Error("test message", "key", "value")

	if _, ok := l.With("key", "value").(NopLogger); !ok {
		t.Error("With should return NopLogger")
	}
}

func TestSlogAdapter(t *testing.T) {
	t.Run("NewSlogAdapter with nil uses default", func(t *testing.T) {
		adapter := NewSlogAdapter(nil)
		if adapter.logger == nil {
			t.Error("adapter.logger should not be nil")
		}
	})

	t.Run("levels and attributes reach the handler", func(t *testing.T) {
		var buf bytes.Buffer
		handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
		logger := NewSlogAdapter(slog.New(handler)).With("root", "list_servers_response")

		logger.Debug("debug message")
		logger.Info("info message")
		logger.Warn("warn message", "name", "network")
		logger.Error("error message")

		out := buf.String()
		for _, want := range []string{
			"level=DEBUG", "level=INFO", "level=WARN", "level=ERROR",
			"root=list_servers_response", "name=network",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})
}
