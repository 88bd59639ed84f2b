package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/thqlabel/thqlabel/internal/pkg/logger"
	"github.com/thqlabel/thqlabel/internal/pkg/models"
	"github.com/thqlabel/thqlabel/internal/utils"
	"github.com/thqlabel/thqlabel/services/billing"
)

// ApplyCompleted moves a pending transaction to completed and applies its amount
// to the owner's balance. A debit that would overdraw the balance fails the
// transaction with insufficient_funds and returns billing.ErrInsufficientFunds
// together with the failed row and the owner's current balance.
func (uc *BillingUC) ApplyCompleted(ctx context.Context, transactionID uuid.UUID) (*models.LedgerResult, error) {
	result, err := uc.billingRepo.CompleteTransaction(ctx, transactionID)
	if errors.Is(err, billing.ErrInsufficientFunds) {
		failed, failErr := uc.ApplyFailed(ctx, transactionID, models.ReasonInsufficientFunds)
		if failErr != nil {
			return nil, failErr
		}
		owner, profileErr := uc.billingRepo.GetProfile(ctx, failed.UserID)
		if profileErr != nil {
			return nil, profileErr
		}
		return &models.LedgerResult{Transaction: failed, Balance: owner.Balance}, err
	}
	if err != nil {
		return nil, err
	}
	if !result.Applied {
		logger.InfoCtx(ctx, "Transaction already settled, ledger unchanged",
			logger.String("transaction_id", transactionID.String()),
			logger.String("status", string(result.Transaction.Status)))
		return result, nil
	}

	tx := result.Transaction
	uc.audit.Transaction(logger.AuditBalanceChanged, tx, map[string]interface{}{
		"delta": tx.SignedAmount(),
	})
	logger.InfoCtx(ctx, "Ledger applied",
		logger.String("transaction_id", tx.ID.String()),
		logger.String("user_id", tx.UserID.String()),
		logger.Int64("delta", tx.SignedAmount()),
		logger.Int64("balance", result.Balance))

	uc.publishEvent(ctx, models.EventTransactionCompleted, tx)
	uc.notify(ctx, tx)
	return result, nil
}

// ApplyFailed moves a pending transaction to failed. Settled rows are returned unchanged.
func (uc *BillingUC) ApplyFailed(ctx context.Context, transactionID uuid.UUID, reason string) (*models.Transaction, error) {
	tx, applied, err := uc.billingRepo.FailTransaction(ctx, transactionID, reason)
	if err != nil {
		return nil, err
	}
	if !applied {
		return tx, nil
	}

	uc.audit.Transaction(logger.AuditTransactionFailed, tx, nil)
	logger.InfoCtx(ctx, "Transaction failed",
		logger.String("transaction_id", tx.ID.String()),
		logger.String("reason", reason))

	uc.publishEvent(ctx, models.EventTransactionFailed, tx)
	uc.notify(ctx, tx)
	return tx, nil
}

// publishEvent fans a change out to live feeds. The ledger is already committed,
// so a delivery failure is only logged.
func (uc *BillingUC) publishEvent(ctx context.Context, eventType string, tx *models.Transaction) {
	if err := uc.billingGW.PublishTransactionEvent(ctx, models.NewTransactionEvent(eventType, tx)); err != nil {
		logger.WarnCtx(ctx, "Failed to publish transaction event",
			logger.String("event", eventType),
			logger.String("transaction_id", tx.ID.String()),
			logger.Err(err))
	}
}

func (uc *BillingUC) notify(ctx context.Context, tx *models.Transaction) {
	title, message := notificationText(tx)
	notification := models.FinanceNotification{
		UserID:        tx.UserID,
		TransactionID: tx.ID,
		Kind:          tx.Kind,
		Status:        tx.Status,
		Amount:        tx.Amount,
		Currency:      tx.Currency,
		Title:         title,
		Message:       message,
		CreatedAt:     uc.now(),
	}
	if err := uc.billingGW.PublishNotification(ctx, notification); err != nil {
		logger.WarnCtx(ctx, "Failed to queue finance notification",
			logger.String("transaction_id", tx.ID.String()),
			logger.Err(err))
	}
}

func notificationText(tx *models.Transaction) (string, string) {
	amount := fmt.Sprintf("%s %s", utils.FromMinorUnits(tx.Amount), tx.Currency)
	if tx.Status == models.StatusFailed {
		return "Payment failed", fmt.Sprintf("Transaction of %s was not completed (%s)", amount, tx.FailureReason)
	}
	switch tx.Kind {
	case models.KindDeposit:
		return "Balance topped up", fmt.Sprintf("%s was added to your balance", amount)
	case models.KindPurchase:
		return "Purchase completed", fmt.Sprintf("%s was charged from your balance", amount)
	case models.KindWithdrawal:
		return "Payment refunded", fmt.Sprintf("%s was returned to the payer", amount)
	case models.KindPayout:
		return "Royalties credited", fmt.Sprintf("%s was credited to your balance", amount)
	default:
		return "Balance updated", fmt.Sprintf("%s: %s", tx.Description, amount)
	}
}
