package logger

import (
	"context"
	"os"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger interface {
	Info(action, message, requestID string, details map[string]interface{})
	Debug(action, message, requestID string, details map[string]interface{})
	Warn(action, message, requestID string, details map[string]interface{}, err error)
	Error(action, message, requestID string, details map[string]interface{}, err error)
}

type zapLogger struct {
	z *zap.Logger
}

// New builds a JSON logger tagged with the service name and hostname.
func New(service, level string) Logger {
	lvl := zapcore.InfoLevel
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.MessageKey = "message"
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	cfg.DisableStacktrace = true

	z, err := cfg.Build()
	if err != nil {
		z = zap.NewNop()
	}

	hostname, _ := os.Hostname()
	return &zapLogger{z: z.With(zap.String("service", service), zap.String("hostname", hostname))}
}

// RequestID returns the id the HTTP layer attached to ctx, or "" for work
// that did not start with a request.
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	return middleware.GetReqID(ctx)
}

// NewNop discards everything. Used by tests.
func NewNop() Logger {
	return &zapLogger{z: zap.NewNop()}
}

// FromZap wraps an existing zap logger, e.g. zaptest.NewLogger.
func FromZap(z *zap.Logger) Logger {
	return &zapLogger{z: z}
}

func (l *zapLogger) Info(action, message, requestID string, details map[string]interface{}) {
	l.z.Info(message, fields(action, requestID, details, nil)...)
}

func (l *zapLogger) Debug(action, message, requestID string, details map[string]interface{}) {
	l.z.Debug(message, fields(action, requestID, details, nil)...)
}

func (l *zapLogger) Warn(action, message, requestID string, details map[string]interface{}, err error) {
	l.z.Warn(message, fields(action, requestID, details, err)...)
}

func (l *zapLogger) Error(action, message, requestID string, details map[string]interface{}, err error) {
	l.z.Error(message, fields(action, requestID, details, err)...)
}

func fields(action, requestID string, details map[string]interface{}, err error) []zap.Field {
	fs := make([]zap.Field, 0, 4)
	fs = append(fs, zap.String("action", action))
	if requestID != "" {
		fs = append(fs, zap.String("request_id", requestID))
	}
	if len(details) > 0 {
		fs = append(fs, zap.Any("details", details))
	}
	if err != nil {
		fs = append(fs, zap.Error(err))
	}
	return fs
}
