// Package logging defines the minimal structured logging contract used by
// the obsflow runtime. Applications adapt their existing logger once and
// every runtime component logs through the same interface.
package logging

import (
	"context"
	"log/slog"
)

// LogFields represents structured logging key/value pairs used by obsflow.
type LogFields map[string]any

// ServiceLogger is the logging contract required by the obsflow runtime.
// The worker loop logs swallowed delivery failures at Debug, lifecycle
// events at Info, and construction problems at Error.
type ServiceLogger interface {
	With(fields LogFields) ServiceLogger
	Debug(msg string, fields LogFields)
	Info(msg string, fields LogFields)
	Error(msg string, err error, fields LogFields)
}

// NewSlogServiceLogger wraps a slog.Logger so it satisfies the
// ServiceLogger interface.
func NewSlogServiceLogger(log *slog.Logger) ServiceLogger {
	if log == nil {
		panic("obsflow: slog logger cannot be nil")
	}
	return &slogServiceLogger{inner: log}
}

// NewNopLogger returns a logger that discards everything. It is the
// default when no logger is supplied.
func NewNopLogger() ServiceLogger {
	return nopLogger{}
}

type slogServiceLogger struct {
	inner *slog.Logger
}

func (s *slogServiceLogger) With(fields LogFields) ServiceLogger {
	if len(fields) == 0 {
		return s
	}
	args := make([]any, 0, len(fields))
	for _, attr := range toAttrs(fields) {
		args = append(args, attr)
	}
	return &slogServiceLogger{inner: s.inner.With(args...)}
}

func (s *slogServiceLogger) Debug(msg string, fields LogFields) {
	s.inner.LogAttrs(context.Background(), slog.LevelDebug, msg, toAttrs(fields)...)
}

func (s *slogServiceLogger) Info(msg string, fields LogFields) {
	s.inner.LogAttrs(context.Background(), slog.LevelInfo, msg, toAttrs(fields)...)
}

func (s *slogServiceLogger) Error(msg string, err error, fields LogFields) {
	attrs := toAttrs(fields)
	if err != nil {
		attrs = append(attrs, slog.Any("error", err))
	}
	s.inner.LogAttrs(context.Background(), slog.LevelError, msg, attrs...)
}

func toAttrs(fields LogFields) []slog.Attr {
	if len(fields) == 0 {
		return nil
	}
	attrs := make([]slog.Attr, 0, len(fields))
	for key, value := range fields {
		attrs = append(attrs, slog.Any(key, value))
	}
	return attrs
}

type nopLogger struct{}

func (nopLogger) With(LogFields) ServiceLogger   { return nopLogger{} }
func (nopLogger) Debug(string, LogFields)        {}
func (nopLogger) Info(string, LogFields)         {}
func (nopLogger) Error(string, error, LogFields) {}
