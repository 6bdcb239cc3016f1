package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func newBufferLogger() (ServiceLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	handler := slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogServiceLogger(slog.New(handler)), buf
}

func TestSlogServiceLoggerEmitsFields(t *testing.T) {
	logger, buf := newBufferLogger()

	logger.Info("worker started", LogFields{"queue_capacity": 1027})

	out := buf.String()
	if !strings.Contains(out, "worker started") {
		t.Fatalf("expected message in output, got %q", out)
	}
	if !strings.Contains(out, "queue_capacity") || !strings.Contains(out, "1027") {
		t.Fatalf("expected field in output, got %q", out)
	}
}

func TestSlogServiceLoggerErrorIncludesError(t *testing.T) {
	logger, buf := newBufferLogger()

	logger.Error("delivery failed", errors.New("status 500"), LogFields{"kind": "log"})

	out := buf.String()
	if !strings.Contains(out, "status 500") {
		t.Fatalf("expected error in output, got %q", out)
	}
}

func TestWithAttachesPersistentFields(t *testing.T) {
	logger, buf := newBufferLogger()

	scoped := logger.With(LogFields{"component": "dispatch"})
	scoped.Debug("tick", nil)

	if !strings.Contains(buf.String(), "dispatch") {
		t.Fatalf("expected scoped field in output, got %q", buf.String())
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := NewNopLogger()
	logger.With(LogFields{"k": "v"}).Info("ignored", nil)
	logger.Error("ignored", errors.New("x"), nil)
}
