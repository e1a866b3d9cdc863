package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
)

type contextKey string

const requestIDKey contextKey = "request_id"

var defaultLogger *slog.Logger

func Init(level slog.Level) {
	setDefault(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

func InitJSON(level slog.Level) {
	setDefault(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

// InitWriter routes output to w, used by tests to capture log lines.
func InitWriter(w io.Writer, level slog.Level) {
	setDefault(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func setDefault(h slog.Handler) {
	defaultLogger = slog.New(h)
	slog.SetDefault(defaultLogger)
}

// ParseLevel maps a config string to a level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func Get() *slog.Logger {
	if defaultLogger == nil {
		Init(slog.LevelInfo)
	}
	return defaultLogger
}

func With(args ...any) *slog.Logger {
	return Get().With(args...)
}

// WithRequestID stores a request id in ctx, generating one when empty.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		requestID = uuid.NewString()
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// Ctx returns the default logger tagged with the request id found in ctx.
func Ctx(ctx context.Context) *slog.Logger {
	if id := RequestIDFromContext(ctx); id != "" {
		return Get().With("request_id", id)
	}
	return Get()
}

func Info(msg string, args ...any) {
	Get().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	Get().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	Get().Error(msg, args...)
}

func Debug(msg string, args ...any) {
	Get().Debug(msg, args...)
}
