package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/thqlabel/thqlabel/internal/pkg/models"
)

// Audit actions
const (
	AuditBalanceChanged     = "balance.changed"
	AuditTransactionFailed  = "transaction.failed"
	AuditTransactionHidden  = "transaction.hidden"
	AuditLateSuccess        = "transaction.late_success"
	AuditUserBanned         = "user.banned"
	AuditUserUnbanned       = "user.unbanned"
	AuditMaintenanceToggled = "maintenance.toggled"
	AuditBroadcastSent      = "broadcast.sent"
	AuditDiagnosticsRun     = "diagnostics.run"
)

// AuditLogger writes an append-only JSON trail of ledger and moderation events
type AuditLogger struct {
	*logrus.Logger
	file *os.File
}

// NewAuditLogger creates an audit logger writing to out
func NewAuditLogger(out io.Writer) *AuditLogger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "action",
		},
	})
	return &AuditLogger{Logger: l}
}

// InitAuditLoggerFromConfig opens the audit file, or discards entries when disabled
func InitAuditLoggerFromConfig(cfg models.AuditConfig) (*AuditLogger, error) {
	if !cfg.Enabled {
		return NewAuditLogger(io.Discard), nil
	}
	if cfg.FilePath == "" {
		return NewAuditLogger(os.Stdout), nil
	}
	file, err := openLogFile(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	al := NewAuditLogger(file)
	al.file = file
	return al, nil
}

// Record writes one audit entry
func (a *AuditLogger) Record(action string, fields map[string]interface{}) {
	a.WithFields(logrus.Fields(fields)).Info(action)
}

// Transaction writes an audit entry describing tx
func (a *AuditLogger) Transaction(action string, tx *models.Transaction, extra map[string]interface{}) {
	fields := logrus.Fields{
		"transaction_id": tx.ID.String(),
		"user_id":        tx.UserID.String(),
		"kind":           string(tx.Kind),
		"status":         string(tx.Status),
		"amount":         tx.Amount,
		"currency":       tx.Currency,
		"balance_before": tx.BalanceBefore,
		"provider":       tx.Provider,
	}
	if tx.BalanceAfter != nil {
		fields["balance_after"] = *tx.BalanceAfter
	}
	if tx.FailureReason != "" {
		fields["failure_reason"] = tx.FailureReason
	}
	for k, v := range extra {
		fields[k] = v
	}
	a.WithFields(fields).Info(action)
}

// Close closes the audit file if one is open
func (a *AuditLogger) Close() error {
	if a.file != nil {
		return a.file.Close()
	}
	return nil
}
