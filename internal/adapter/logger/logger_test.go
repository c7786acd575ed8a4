package logger

import (
	"context"
	"errors"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerWritesActionAndDetails(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	lgr := FromZap(zap.New(core))

	lgr.Info("order_placed", "Order placed", "req-1", map[string]interface{}{"order_id": 7})
	lgr.Error("restock_failed", "Restock failed", "", nil, errors.New("boom"))

	entries := logs.All()
	require.Len(t, entries, 2)

	ctx := entries[0].ContextMap()
	assert.Equal(t, "order_placed", ctx["action"])
	assert.Equal(t, "req-1", ctx["request_id"])
	assert.Equal(t, map[string]interface{}{"order_id": 7}, ctx["details"])

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
	_, hasRequestID := entries[1].ContextMap()["request_id"]
	assert.False(t, hasRequestID)
}

func TestRequestIDFromContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-9")
	assert.Equal(t, "req-9", RequestID(ctx))
	assert.Empty(t, RequestID(context.Background()))
}
