package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/thqlabel/thqlabel/internal/pkg/apperror"
	"github.com/thqlabel/thqlabel/internal/pkg/logger"
	"github.com/thqlabel/thqlabel/internal/pkg/models"
	"github.com/thqlabel/thqlabel/services/billing"
)

// GetBalance returns the caller's current balance in the base currency
func (uc *BillingUC) GetBalance(ctx context.Context, userID uuid.UUID) (*models.BalanceResponse, error) {
	profile, err := uc.activeProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.BalanceResponse{Balance: profile.Balance, Currency: uc.baseCurrency()}, nil
}

// ListTransactions returns one page of the caller's history, newest first
func (uc *BillingUC) ListTransactions(ctx context.Context, userID uuid.UUID, filter models.TransactionFilter) (*models.TransactionPage, error) {
	profile, err := uc.activeProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	filter.UserID = &profile.ID
	filter.IncludeHidden = profile.Role == models.RoleOwner
	return uc.listTransactions(ctx, filter)
}

func (uc *BillingUC) listTransactions(ctx context.Context, filter models.TransactionFilter) (*models.TransactionPage, error) {
	if filter.Kind != "" && !filter.Kind.Valid() {
		return nil, apperror.Validationf("unknown transaction kind %q", filter.Kind)
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, apperror.Validationf("unknown transaction status %q", filter.Status)
	}
	filter.Normalize()

	txs, total, err := uc.billingRepo.ListTransactions(ctx, filter)
	if err != nil {
		return nil, err
	}
	if txs == nil {
		txs = []*models.Transaction{}
	}
	return &models.TransactionPage{
		Transactions: txs,
		Total:        total,
		Page:         filter.Page,
		Limit:        filter.Limit,
		TotalPages:   (total + filter.Limit - 1) / filter.Limit,
	}, nil
}

// GetTransaction returns one transaction to its owner or to staff.
// Hidden rows are visible to owners only.
func (uc *BillingUC) GetTransaction(ctx context.Context, actorID, transactionID uuid.UUID) (*models.Transaction, error) {
	actor, err := uc.activeProfile(ctx, actorID)
	if err != nil {
		return nil, err
	}
	tx, err := uc.billingRepo.GetTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if tx.UserID != actor.ID && !actor.Role.IsStaff() {
		return nil, billing.ErrTransactionNotFound
	}
	if tx.Metadata.Hidden() && actor.Role != models.RoleOwner {
		return nil, billing.ErrTransactionNotFound
	}
	return tx, nil
}

// SubscribeTransactions opens the caller's live change feed
func (uc *BillingUC) SubscribeTransactions(ctx context.Context, userID uuid.UUID) (billing.TransactionFeed, error) {
	if _, err := uc.activeProfile(ctx, userID); err != nil {
		return nil, err
	}
	return uc.billingGW.TransactionFeed(userID), nil
}

// HideTransaction soft-hides a transaction from every listing except the owners'.
// Hiding never changes a balance.
func (uc *BillingUC) HideTransaction(ctx context.Context, actorID, transactionID uuid.UUID) (*models.Transaction, error) {
	if _, err := uc.requireRole(ctx, actorID, models.RoleOwner); err != nil {
		return nil, err
	}
	tx, err := uc.billingRepo.GetTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if tx.Metadata.Hidden() {
		return tx, nil
	}

	hidden, err := uc.billingRepo.MergeMetadata(ctx, transactionID, models.Metadata{
		models.MetaHidden:   true,
		models.MetaHiddenAt: uc.now().Format(time.RFC3339),
		models.MetaHiddenBy: actorID.String(),
	})
	if err != nil {
		return nil, err
	}
	uc.audit.Transaction(logger.AuditTransactionHidden, hidden, map[string]interface{}{
		"actor_id": actorID.String(),
	})
	uc.publishEvent(ctx, models.EventTransactionUpdated, hidden)
	return hidden, nil
}
