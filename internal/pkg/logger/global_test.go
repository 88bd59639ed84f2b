package logger

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thqlabel/thqlabel/internal/pkg/requestcontext"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInfoCtx_RequestFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	previous := GetGlobalLogger()
	SetGlobalLogger(&ZapLogger{Logger: zap.New(core)})
	t.Cleanup(func() { SetGlobalLogger(previous) })

	userID := uuid.New()
	ctx := requestcontext.WithRequestID(context.Background(), "req-7")
	ctx = requestcontext.WithUserID(ctx, userID)

	InfoCtx(ctx, "Payment created", String("provider", "stripe"))
	Info("Plain line")

	entries := logs.All()
	require.Len(t, entries, 2)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-7", fields["request_id"])
	assert.Equal(t, userID.String(), fields["user_id"])
	assert.Equal(t, "stripe", fields["provider"])
	assert.NotContains(t, entries[1].ContextMap(), "request_id")
}
