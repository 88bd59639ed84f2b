package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/thqlabel/thqlabel/internal/pkg/models"
	"github.com/thqlabel/thqlabel/services/billing"
)

// CompleteTransaction moves a pending transaction to completed and applies its
// delta to the owner's balance in one database transaction.
//
// The status update is conditional on the row still being pending, so of any
// number of concurrent callers exactly one gets a row back. The balance update
// is conditional on the result staying non-negative; when it is not, everything
// is rolled back and ErrInsufficientFunds is returned with the row still pending.
//
// completed_at is taken from the database clock after the profile row is locked,
// so a user's completed rows ordered by completed_at form an unbroken
// balance_before/balance_after chain.
func (r *BillingRepo) CompleteTransaction(ctx context.Context, id uuid.UUID) (*models.LedgerResult, error) {
	dbTx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	now := time.Now().UTC()

	var claimed struct {
		UserID uuid.UUID              `db:"user_id"`
		Kind   models.TransactionKind `db:"kind"`
		Amount int64                  `db:"amount"`
	}
	claimQuery := `
		UPDATE transactions
		SET status = $2, updated_at = $3
		WHERE id = $1 AND status = $4
		RETURNING user_id, kind, amount
	`
	err = dbTx.QueryRowxContext(ctx, claimQuery, id, string(models.StatusCompleted), now, string(models.StatusPending)).StructScan(&claimed)
	if errors.Is(err, sql.ErrNoRows) {
		_ = dbTx.Rollback()
		return r.currentLedgerState(ctx, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to claim transaction: %w", err)
	}

	delta := claimed.Kind.Signed(claimed.Amount)

	var balance int64
	balanceQuery := `
		UPDATE profiles
		SET balance = balance + $2, updated_at = $3
		WHERE id = $1 AND balance + $2 >= 0
		RETURNING balance
	`
	err = dbTx.QueryRowxContext(ctx, balanceQuery, claimed.UserID, delta, now).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, billing.ErrInsufficientFunds
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}

	var tx models.Transaction
	snapshotQuery := `
		UPDATE transactions
		SET balance_before = $2, balance_after = $3,
			completed_at = clock_timestamp(), updated_at = clock_timestamp()
		WHERE id = $1
		RETURNING ` + transactionColumns
	if err := dbTx.QueryRowxContext(ctx, snapshotQuery, id, balance-delta, balance).StructScan(&tx); err != nil {
		return nil, fmt.Errorf("failed to record balance snapshot: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit ledger update: %w", err)
	}

	return &models.LedgerResult{Transaction: &tx, Balance: balance, Applied: true}, nil
}

// currentLedgerState reports a transaction that was no longer pending
func (r *BillingRepo) currentLedgerState(ctx context.Context, id uuid.UUID) (*models.LedgerResult, error) {
	tx, err := r.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	profile, err := r.GetProfile(ctx, tx.UserID)
	if err != nil {
		return nil, err
	}
	return &models.LedgerResult{Transaction: tx, Balance: profile.Balance, Applied: false}, nil
}

// FailTransaction moves a pending transaction to failed. The balance is never touched.
// The returned flag is false when the row was no longer pending.
func (r *BillingRepo) FailTransaction(ctx context.Context, id uuid.UUID, reason string) (*models.Transaction, bool, error) {
	query := `
		UPDATE transactions
		SET status = $2, failure_reason = $3, updated_at = $4
		WHERE id = $1 AND status = $5
		RETURNING ` + transactionColumns

	var tx models.Transaction
	err := r.db.QueryRowxContext(ctx, query, id, string(models.StatusFailed), reason, time.Now().UTC(), string(models.StatusPending)).StructScan(&tx)
	if errors.Is(err, sql.ErrNoRows) {
		current, err := r.GetTransaction(ctx, id)
		if err != nil {
			return nil, false, err
		}
		return current, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to fail transaction: %w", err)
	}
	return &tx, true, nil
}
