package handler

import (
	"context"
	"time"

	"github.com/thqlabel/thqlabel/internal/pkg/logger"
	"github.com/thqlabel/thqlabel/services/billing"
)

// Sweeper triggers the pending-transaction reconciliation on a fixed interval
type Sweeper struct {
	billingUC billing.BillingUC
	interval  time.Duration
}

// NewSweeper creates a new sweeper
func NewSweeper(billingUC billing.BillingUC, interval time.Duration) *Sweeper {
	return &Sweeper{
		billingUC: billingUC,
		interval:  interval,
	}
}

// Run sweeps every interval until ctx is canceled
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	logger.Info("Pending transaction sweeper started", logger.Duration("interval", s.interval))
	for {
		select {
		case <-ctx.Done():
			logger.Info("Pending transaction sweeper stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Sweeper) runOnce(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()

	report, err := s.billingUC.Sweep(sweepCtx)
	if err != nil {
		logger.Warn("Pending transaction sweep failed", logger.Err(err))
		return
	}
	if !report.Leader {
		logger.Debug("Another instance holds the sweep lock")
	}
}
