package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/thqlabel/thqlabel/internal/pkg/models"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger is the application logger. It writes JSON to stdout, optionally
// to a file, and forwards entries to New Relic when an app is configured.
type ZapLogger struct {
	*zap.Logger
	service string
	nrApp   *newrelic.Application
	file    *os.File
}

// newRelicCore is a zapcore.Core that forwards logs to New Relic
type newRelicCore struct {
	level   zapcore.Level
	service string
	nrApp   *newrelic.Application
	fields  []zapcore.Field
}

func (c *newRelicCore) Enabled(level zapcore.Level) bool {
	return c.level.Enabled(level)
}

func (c *newRelicCore) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	clone.fields = append(append([]zapcore.Field{}, c.fields...), fields...)
	return &clone
}

func (c *newRelicCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *newRelicCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	if c.nrApp == nil {
		return nil
	}

	encoder := zapcore.NewMapObjectEncoder()
	for _, field := range c.fields {
		field.AddTo(encoder)
	}
	for _, field := range fields {
		field.AddTo(encoder)
	}

	attrs := encoder.Fields
	attrs["service"] = c.service
	attrs["caller"] = entry.Caller.TrimmedPath()
	if entry.Stack != "" {
		attrs["stacktrace"] = entry.Stack
	}

	c.nrApp.RecordLog(newrelic.LogData{
		Timestamp:  entry.Time.UnixMilli(),
		Message:    entry.Message,
		Severity:   entry.Level.String(),
		Attributes: attrs,
	})
	return nil
}

func (c *newRelicCore) Sync() error {
	return nil
}

// ZapConfig holds Zap logger configuration
type ZapConfig struct {
	Level       string
	FilePath    string
	ServiceName string
}

// NewZapLogger creates a new Zap application logger
func NewZapLogger(config ZapConfig, nrApp *newrelic.Application) (*ZapLogger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(config.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	encoder := zapcore.NewJSONEncoder(encoderConfig)

	cores := []zapcore.Core{zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level)}

	zl := &ZapLogger{
		service: config.ServiceName,
		nrApp:   nrApp,
	}

	if config.FilePath != "" {
		file, err := openLogFile(config.FilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to setup file output: %w", err)
		}
		zl.file = file
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(file), level))
	}

	if nrApp != nil {
		cores = append(cores, &newRelicCore{level: level, service: config.ServiceName, nrApp: nrApp})
	}

	zl.Logger = zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)).
		With(zap.String("service", config.ServiceName))

	return zl, nil
}

// NewNopLogger returns a logger that discards everything
func NewNopLogger() *ZapLogger {
	return &ZapLogger{Logger: zap.NewNop()}
}

// openLogFile creates the parent directory and opens path for appending
func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}

// Close syncs the logger and closes the log file
func (zl *ZapLogger) Close() error {
	_ = zl.Logger.Sync()
	if zl.file != nil {
		return zl.file.Close()
	}
	return nil
}

// WithNewRelicContext adds trace correlation fields from txn
func (zl *ZapLogger) WithNewRelicContext(txn *newrelic.Transaction) *zap.Logger {
	if txn == nil {
		return zl.Logger
	}
	md := txn.GetLinkingMetadata()
	if md.TraceID == "" {
		return zl.Logger
	}
	return zl.Logger.With(zap.String("trace.id", md.TraceID), zap.String("span.id", md.SpanID))
}

// WithFields adds custom fields to log entry
func (zl *ZapLogger) WithFields(fields map[string]interface{}) *zap.Logger {
	zapFields := make([]zap.Field, 0, len(fields))
	for key, value := range fields {
		zapFields = append(zapFields, zap.Any(key, value))
	}
	return zl.Logger.With(zapFields...)
}

// LogHTTPRequest logs HTTP request with all relevant context
func (zl *ZapLogger) LogHTTPRequest(txn *newrelic.Transaction, method, path, clientIP, userID, requestID string, statusCode int, latency time.Duration, err error) {
	log := zl.WithNewRelicContext(txn).With(
		zap.Int("status", statusCode),
		zap.String("latency", latency.String()),
		zap.Int64("latency_ms", latency.Milliseconds()),
		zap.String("client_ip", clientIP),
		zap.String("method", method),
		zap.String("path", path),
		zap.String("user_id", userID),
		zap.String("request_id", requestID),
	)

	switch {
	case statusCode >= 500:
		if err != nil {
			log.Error("Server error", zap.Error(err))
		} else {
			log.Error("Server error")
		}
	case statusCode >= 400:
		log.Warn("Client error")
	default:
		log.Info("Request processed")
	}
}

// InitZapLoggerFromConfig initializes Zap logger directly from config models
func InitZapLoggerFromConfig(configs *models.Config, nrApp *newrelic.Application) (*ZapLogger, error) {
	if !configs.NewRelic.ForwardLogs {
		nrApp = nil
	}
	return NewZapLogger(ZapConfig{
		Level:       configs.Logger.Level,
		FilePath:    configs.Logger.FilePath,
		ServiceName: configs.App.Name,
	}, nrApp)
}
