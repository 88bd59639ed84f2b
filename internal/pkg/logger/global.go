package logger

import (
	"context"
	"sync"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/thqlabel/thqlabel/internal/pkg/requestcontext"
	"go.uber.org/zap"
)

var (
	globalLogger *ZapLogger
	once         sync.Once
	mu           sync.RWMutex
)

// SetGlobalLogger sets the process-wide logger.
// Call once during application startup.
func SetGlobalLogger(logger *ZapLogger) {
	mu.Lock()
	defer mu.Unlock()
	globalLogger = logger
}

// GetGlobalLogger returns the global logger, falling back to a production logger
func GetGlobalLogger() *ZapLogger {
	mu.RLock()
	l := globalLogger
	mu.RUnlock()
	if l != nil {
		return l
	}

	once.Do(func() {
		defaultLogger, _ := zap.NewProduction()
		mu.Lock()
		if globalLogger == nil {
			globalLogger = &ZapLogger{Logger: defaultLogger}
		}
		mu.Unlock()
	})

	mu.RLock()
	defer mu.RUnlock()
	return globalLogger
}

func Info(msg string, fields ...Field) {
	GetGlobalLogger().Info(msg, fields...)
}

func Warn(msg string, fields ...Field) {
	GetGlobalLogger().Warn(msg, fields...)
}

func Debug(msg string, fields ...Field) {
	GetGlobalLogger().Debug(msg, fields...)
}

func Error(msg string, fields ...Field) {
	GetGlobalLogger().Error(msg, fields...)
}

func Fatal(msg string, fields ...Field) {
	GetGlobalLogger().Fatal(msg, fields...)
}

// fromContext attaches the request id, the user id and New Relic trace
// fields carried by ctx
func fromContext(ctx context.Context) *zap.Logger {
	l := GetGlobalLogger()
	zl := l.Logger
	if txn := newrelic.FromContext(ctx); txn != nil {
		zl = l.WithNewRelicContext(txn)
	}
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		zl = zl.With(zap.String("request_id", requestID))
	}
	if userID, ok := requestcontext.UserID(ctx); ok {
		zl = zl.With(zap.String("user_id", userID.String()))
	}
	return zl
}

func InfoCtx(ctx context.Context, msg string, fields ...Field) {
	fromContext(ctx).Info(msg, fields...)
}

func WarnCtx(ctx context.Context, msg string, fields ...Field) {
	fromContext(ctx).Warn(msg, fields...)
}

func ErrorCtx(ctx context.Context, msg string, fields ...Field) {
	fromContext(ctx).Error(msg, fields...)
}
