package logger

import (
	"context"
	"log/slog"
)

const ctxKeyLogger ctxKey = "logger"

// Background returns a fresh context for log enrichment helpers.
func Background() context.Context {
	return context.Background()
}

// WithLogger stores a logger in the context for downstream LogEvent calls.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	if l == nil {
		return ctx
	}
	return context.WithValue(ctx, ctxKeyLogger, l)
}

// LoggerFrom extracts the logger stored in the context, or nil.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return nil
	}
	if l, ok := ctx.Value(ctxKeyLogger).(*slog.Logger); ok {
		return l
	}
	return nil
}

// LogEvent emits a structured event through the given logger, falling back to
// the context logger and then the app component.
func LogEvent(ctx context.Context, l *slog.Logger, level slog.Level, event string, attrs ...slog.Attr) {
	if l == nil {
		l = LoggerFrom(ctx)
	}
	if l == nil {
		l = App
	}
	if ctx == nil {
		ctx = context.Background()
	}
	l.LogAttrs(ctx, level, event, attrs...)
}

// Debug emits a debug event for the named component.
func Debug(ctx context.Context, component, event string, attrs ...slog.Attr) {
	LogEvent(ctx, Component(component), slog.LevelDebug, event, attrs...)
}

// Info emits an info event for the named component.
func Info(ctx context.Context, component, event string, attrs ...slog.Attr) {
	LogEvent(ctx, Component(component), slog.LevelInfo, event, attrs...)
}

// Warn emits a warning event for the named component.
func Warn(ctx context.Context, component, event string, attrs ...slog.Attr) {
	LogEvent(ctx, Component(component), slog.LevelWarn, event, attrs...)
}

// Error emits an error event for the named component.
func Error(ctx context.Context, component, event string, attrs ...slog.Attr) {
	LogEvent(ctx, Component(component), slog.LevelError, event, attrs...)
}
