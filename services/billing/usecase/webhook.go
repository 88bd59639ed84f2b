package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/thqlabel/thqlabel/internal/pkg/apperror"
	"github.com/thqlabel/thqlabel/internal/pkg/logger"
	"github.com/thqlabel/thqlabel/internal/pkg/models"
	"github.com/thqlabel/thqlabel/services/billing"
)

// HandleWebhook authenticates a provider callback and applies its outcome to the
// matching transaction. Redelivered and late events are acknowledged without
// touching the ledger.
func (uc *BillingUC) HandleWebhook(ctx context.Context, req models.WebhookRequest) (*models.WebhookAck, error) {
	provider, ok := uc.providers[req.Provider]
	if !ok {
		return nil, apperror.NotFound("unknown payment provider")
	}

	event, err := provider.ParseWebhook(ctx, req)
	if err != nil {
		logger.WarnCtx(ctx, "Rejected provider webhook",
			logger.String("provider", req.Provider),
			logger.Err(err))
		return nil, err
	}
	if event.Outcome == models.OutcomeIgnored {
		return &models.WebhookAck{Received: true, Status: models.AckIgnored, TransactionID: event.TransactionID}, nil
	}

	lockRef := webhookLockRef(event)
	acquired, err := uc.billingRepo.AcquireWebhookLock(ctx, event.Provider, lockRef, uc.webhookLockTTL())
	switch {
	case err != nil:
		// the conditional ledger transitions still guard against double application
		logger.WarnCtx(ctx, "Webhook lock unavailable, processing without it",
			logger.String("provider", event.Provider),
			logger.String("ref", lockRef),
			logger.Err(err))
	case !acquired:
		return nil, apperror.Conflict("event is already being processed")
	default:
		defer func() {
			if err := uc.billingRepo.ReleaseWebhookLock(context.Background(), event.Provider, lockRef); err != nil {
				logger.Warn("Failed to release webhook lock",
					logger.String("provider", event.Provider),
					logger.String("ref", lockRef),
					logger.Err(err))
			}
		}()
	}

	tx, err := uc.findWebhookTransaction(ctx, event)
	if err != nil {
		if errors.Is(err, billing.ErrTransactionNotFound) {
			logger.WarnCtx(ctx, "Webhook for unknown transaction",
				logger.String("provider", event.Provider),
				logger.String("provider_ref", event.ProviderRef))
		}
		return nil, err
	}

	logger.InfoCtx(ctx, "Processing provider webhook",
		logger.String("provider", event.Provider),
		logger.String("event", event.EventType),
		logger.String("outcome", string(event.Outcome)),
		logger.String("transaction_id", tx.ID.String()))

	switch event.Outcome {
	case models.OutcomeSuccess:
		return uc.applyWebhookSuccess(ctx, tx, event)
	case models.OutcomeFailure:
		return uc.applyWebhookFailure(ctx, tx, event)
	case models.OutcomeReversal:
		return uc.applyReversal(ctx, tx, event)
	}
	return ack(models.AckIgnored, tx.ID), nil
}

func (uc *BillingUC) webhookLockTTL() time.Duration {
	if uc.cfg.Billing.WebhookLockTTL > 0 {
		return uc.cfg.Billing.WebhookLockTTL
	}
	return 30 * time.Second
}

// webhookLockRef picks the key that serializes deliveries of the same event
func webhookLockRef(event *models.WebhookEvent) string {
	if event.Outcome == models.OutcomeReversal && event.ReversalRef != "" {
		return event.ReversalRef
	}
	if event.TransactionID != nil {
		return event.TransactionID.String()
	}
	return event.ProviderRef
}

// findWebhookTransaction resolves the transaction an event refers to, by our id
// first and by the provider reference otherwise
func (uc *BillingUC) findWebhookTransaction(ctx context.Context, event *models.WebhookEvent) (*models.Transaction, error) {
	if event.TransactionID != nil {
		tx, err := uc.billingRepo.GetTransaction(ctx, *event.TransactionID)
		switch {
		case err == nil && tx.Provider == event.Provider:
			return tx, nil
		case err == nil:
			return nil, billing.ErrTransactionNotFound
		case !errors.Is(err, billing.ErrTransactionNotFound):
			return nil, err
		}
	}
	if event.ProviderRef == "" {
		return nil, billing.ErrTransactionNotFound
	}
	return uc.billingRepo.GetTransactionByProviderRef(ctx, event.Provider, event.ProviderRef)
}

func (uc *BillingUC) applyWebhookSuccess(ctx context.Context, tx *models.Transaction, event *models.WebhookEvent) (*models.WebhookAck, error) {
	switch tx.Status {
	case models.StatusPending:
	case models.StatusFailed:
		return uc.recordLateSuccess(ctx, tx, event)
	default:
		return ack(models.AckAlreadyProcessed, tx.ID), nil
	}

	if amountMismatch(tx, event.Amount, event.Currency) {
		logger.WarnCtx(ctx, "Webhook amount does not match the charge",
			logger.String("transaction_id", tx.ID.String()),
			logger.Int64("expected", tx.ChargeAmount),
			logger.Int64("received", event.Amount),
			logger.String("currency", event.Currency))
		if _, err := uc.ApplyFailed(ctx, tx.ID, models.ReasonAmountMismatch); err != nil {
			return nil, err
		}
		return ack(models.AckProcessed, tx.ID), nil
	}

	result, err := uc.ApplyCompleted(ctx, tx.ID)
	if err != nil && !errors.Is(err, billing.ErrInsufficientFunds) {
		return nil, err
	}
	if err == nil && !result.Applied {
		return ack(models.AckAlreadyProcessed, tx.ID), nil
	}
	return ack(models.AckProcessed, tx.ID), nil
}

// recordLateSuccess flags a failed transaction the provider later reported as paid.
// The ledger is left alone; staff resolve these by hand.
func (uc *BillingUC) recordLateSuccess(ctx context.Context, tx *models.Transaction, event *models.WebhookEvent) (*models.WebhookAck, error) {
	if flagged, _ := tx.Metadata[models.MetaLateSuccess].(bool); flagged {
		return ack(models.AckAlreadyProcessed, tx.ID), nil
	}
	updated, err := uc.billingRepo.MergeMetadata(ctx, tx.ID, models.Metadata{
		models.MetaLateSuccess: true,
		"late_success_at":      uc.now().Format(time.RFC3339),
		"late_success_amount":  event.Amount,
	})
	if err != nil {
		return nil, err
	}
	uc.audit.Transaction(logger.AuditLateSuccess, updated, map[string]interface{}{
		"provider_event": event.EventType,
	})
	logger.WarnCtx(ctx, "Provider reported success for a failed transaction",
		logger.String("transaction_id", tx.ID.String()),
		logger.String("failure_reason", tx.FailureReason))
	return ack(models.AckAlreadyProcessed, tx.ID), nil
}

func (uc *BillingUC) applyWebhookFailure(ctx context.Context, tx *models.Transaction, event *models.WebhookEvent) (*models.WebhookAck, error) {
	if tx.Status != models.StatusPending {
		return ack(models.AckAlreadyProcessed, tx.ID), nil
	}
	reason := event.Reason
	if reason == "" {
		reason = models.ReasonDeclined
	}
	failed, err := uc.ApplyFailed(ctx, tx.ID, reason)
	if err != nil {
		return nil, err
	}
	if failed.FailureReason != reason {
		return ack(models.AckAlreadyProcessed, tx.ID), nil
	}
	return ack(models.AckProcessed, tx.ID), nil
}

// applyReversal books a provider refund of a completed credit as a withdrawal
// linked to the original transaction
func (uc *BillingUC) applyReversal(ctx context.Context, original *models.Transaction, event *models.WebhookEvent) (*models.WebhookAck, error) {
	if original.Status != models.StatusCompleted || original.Kind.IsDebit() {
		logger.WarnCtx(ctx, "Ignoring reversal of a transaction that was never credited",
			logger.String("transaction_id", original.ID.String()),
			logger.String("status", string(original.Status)))
		return ack(models.AckIgnored, original.ID), nil
	}
	if event.ReversalRef == "" {
		return nil, apperror.Validation("reversal without a refund reference")
	}

	reversal, err := uc.billingRepo.GetTransactionByProviderRef(ctx, event.Provider, event.ReversalRef)
	switch {
	case err == nil && reversal.Status != models.StatusPending:
		return ack(models.AckAlreadyProcessed, reversal.ID), nil
	case err == nil:
		// created by an earlier delivery that died before the ledger step
	case errors.Is(err, billing.ErrTransactionNotFound):
		reversal, err = uc.createReversal(ctx, original, event)
		if errors.Is(err, billing.ErrDuplicateProviderRef) {
			return ack(models.AckAlreadyProcessed, original.ID), nil
		}
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if _, err := uc.ApplyCompleted(ctx, reversal.ID); err != nil && !errors.Is(err, billing.ErrInsufficientFunds) {
		return nil, err
	}
	return ack(models.AckProcessed, reversal.ID), nil
}

func (uc *BillingUC) createReversal(ctx context.Context, original *models.Transaction, event *models.WebhookEvent) (*models.Transaction, error) {
	profile, err := uc.billingRepo.GetProfile(ctx, original.UserID)
	if err != nil {
		return nil, err
	}

	amount, charge := original.Amount, original.ChargeAmount
	if event.Amount > 0 && event.Amount < original.ChargeAmount {
		// partial refund, scaled into the ledger currency
		amount = original.Amount * event.Amount / original.ChargeAmount
		charge = event.Amount
	}
	ref := event.ReversalRef
	reversal := &models.Transaction{
		ID:             newTransactionID(),
		UserID:         original.UserID,
		Kind:           models.KindWithdrawal,
		Amount:         amount,
		Currency:       original.Currency,
		ChargeAmount:   charge,
		ChargeCurrency: original.ChargeCurrency,
		Status:         models.StatusPending,
		BalanceBefore:  profile.Balance,
		Description:    fmt.Sprintf("Refund of %s", original.Description),
		PaymentMethod:  original.PaymentMethod,
		Provider:       original.Provider,
		ProviderRef:    &ref,
		Metadata:       models.Metadata{models.MetaReversalOf: original.ID.String()},
	}
	if err := uc.billingRepo.CreateTransaction(ctx, reversal); err != nil {
		return nil, err
	}
	uc.publishEvent(ctx, models.EventTransactionCreated, reversal)
	return reversal, nil
}

func ack(status string, id uuid.UUID) *models.WebhookAck {
	return &models.WebhookAck{Received: true, Status: status, TransactionID: &id}
}
