package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/thqlabel/thqlabel/internal/pkg/logger"
	"github.com/thqlabel/thqlabel/internal/pkg/models"
	"github.com/thqlabel/thqlabel/services/billing"
)

// Sweep reconciles stale pending transactions against their providers.
// Only the instance holding the sweep lock does any work.
func (uc *BillingUC) Sweep(ctx context.Context) (*models.SweepReport, error) {
	start := time.Now()
	report := &models.SweepReport{}

	leader, err := uc.billingRepo.AcquireSweepLock(ctx, uc.nodeID, uc.sweepLockTTL())
	if err != nil {
		return nil, err
	}
	if !leader {
		return report, nil
	}
	report.Leader = true
	defer func() {
		if err := uc.billingRepo.ReleaseSweepLock(context.Background(), uc.nodeID); err != nil {
			logger.Warn("Failed to release sweep lock", logger.Err(err))
		}
	}()

	now := uc.now()
	cutoff := now.Add(-uc.cfg.Billing.SweepMinAge)
	batch := uc.sweepBatchSize()

	// Rows left pending are paged past so a full batch of them cannot starve the rest.
	var cursor *models.PendingCursor
	for ctx.Err() == nil {
		txs, err := uc.billingRepo.ListPendingBefore(ctx, cutoff, cursor, batch)
		if err != nil {
			if cursor == nil {
				return nil, err
			}
			logger.Warn("Failed to list next page of pending transactions", logger.Err(err))
			break
		}

		for _, tx := range txs {
			if ctx.Err() != nil {
				break
			}
			report.Checked++
			switch uc.sweepOne(ctx, tx, now) {
			case sweepCompleted:
				report.Completed++
			case sweepFailed:
				report.Failed++
			case sweepExpired:
				report.Expired++
			default:
				report.Skipped++
			}
		}

		if len(txs) < batch {
			break
		}
		last := txs[len(txs)-1]
		cursor = &models.PendingCursor{CreatedAt: last.CreatedAt, ID: last.ID}
	}

	report.Duration = time.Since(start)
	if report.Checked > 0 {
		logger.Info("Pending transaction sweep finished",
			logger.Int("checked", report.Checked),
			logger.Int("completed", report.Completed),
			logger.Int("failed", report.Failed),
			logger.Int("expired", report.Expired),
			logger.Duration("duration", report.Duration))
	}
	return report, nil
}

type sweepOutcome int

const (
	sweepSkipped sweepOutcome = iota
	sweepCompleted
	sweepFailed
	sweepExpired
)

func (uc *BillingUC) sweepOne(ctx context.Context, tx *models.Transaction, now time.Time) sweepOutcome {
	provider, ok := uc.providers[tx.Provider]
	if ok && tx.ProviderRef != nil {
		status, err := provider.CheckStatus(ctx, *tx.ProviderRef)
		switch {
		case err == nil:
			settled, err := uc.reconcile(ctx, tx, status)
			if err != nil {
				logger.Warn("Failed to reconcile pending transaction",
					logger.String("transaction_id", tx.ID.String()),
					logger.Err(err))
				return sweepSkipped
			}
			switch settled.Status {
			case models.StatusCompleted:
				return sweepCompleted
			case models.StatusFailed:
				return sweepFailed
			}
		case !errors.Is(err, billing.ErrStatusUnsupported):
			logger.Warn("Provider status check failed",
				logger.String("transaction_id", tx.ID.String()),
				logger.String("provider", tx.Provider),
				logger.Err(err))
			return sweepSkipped
		}
	}

	// Rows the provider still reports as pending expire with the rest.
	if now.Sub(tx.CreatedAt) < uc.cfg.Billing.PendingTTL {
		return sweepSkipped
	}
	expired, err := uc.ApplyFailed(ctx, tx.ID, models.ReasonExpired)
	if err != nil {
		logger.Warn("Failed to expire pending transaction",
			logger.String("transaction_id", tx.ID.String()),
			logger.Err(err))
		return sweepSkipped
	}
	if expired.Status != models.StatusFailed || expired.FailureReason != models.ReasonExpired {
		return sweepSkipped
	}
	return sweepExpired
}

func (uc *BillingUC) sweepLockTTL() time.Duration {
	if uc.cfg.Billing.SweepInterval > time.Minute {
		return uc.cfg.Billing.SweepInterval
	}
	return time.Minute
}

func (uc *BillingUC) sweepBatchSize() int {
	if uc.cfg.Billing.SweepBatchSize > 0 {
		return uc.cfg.Billing.SweepBatchSize
	}
	return 100
}
