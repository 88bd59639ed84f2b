package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/thqlabel/thqlabel/internal/pkg/models"
	"github.com/thqlabel/thqlabel/services/billing"
)

const transactionColumns = `id, user_id, kind, amount, currency, charge_amount, charge_currency, status,
	balance_before, balance_after, description, payment_method, provider, provider_ref,
	session_url, failure_reason, metadata, created_at, updated_at, completed_at`

// CreateTransaction inserts a new ledger entry
func (r *BillingRepo) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	now := time.Now().UTC()
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = now
	}
	tx.UpdatedAt = now
	if tx.Metadata == nil {
		tx.Metadata = models.Metadata{}
	}

	query := `
		INSERT INTO transactions (
			id, user_id, kind, amount, currency, charge_amount, charge_currency, status,
			balance_before, balance_after, description, payment_method, provider, provider_ref,
			session_url, failure_reason, metadata, created_at, updated_at, completed_at
		) VALUES (
			:id, :user_id, :kind, :amount, :currency, :charge_amount, :charge_currency, :status,
			:balance_before, :balance_after, :description, :payment_method, :provider, :provider_ref,
			:session_url, :failure_reason, :metadata, :created_at, :updated_at, :completed_at
		)
	`
	if _, err := r.db.NamedExecContext(ctx, query, tx); err != nil {
		if isUniqueViolation(err) {
			return billing.ErrDuplicateProviderRef
		}
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// GetTransaction retrieves a transaction by id
func (r *BillingRepo) GetTransaction(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	var tx models.Transaction
	if err := r.db.GetContext(ctx, &tx, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, billing.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &tx, nil
}

// GetTransactionByProviderRef retrieves the transaction a provider reference points at
func (r *BillingRepo) GetTransactionByProviderRef(ctx context.Context, provider, ref string) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE provider = $1 AND provider_ref = $2`

	var tx models.Transaction
	if err := r.db.GetContext(ctx, &tx, query, provider, ref); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, billing.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction by provider ref: %w", err)
	}
	return &tx, nil
}

// SetSession records the provider session of a pending transaction
func (r *BillingRepo) SetSession(ctx context.Context, id uuid.UUID, providerRef, sessionURL string) error {
	query := `
		UPDATE transactions
		SET provider_ref = $2, session_url = $3, updated_at = $4
		WHERE id = $1 AND status = $5
	`
	result, err := r.db.ExecContext(ctx, query, id, providerRef, sessionURL, time.Now().UTC(), string(models.StatusPending))
	if err != nil {
		if isUniqueViolation(err) {
			return billing.ErrDuplicateProviderRef
		}
		return fmt.Errorf("failed to set session: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return billing.ErrTransactionNotFound
	}
	return nil
}

// transactionWhere renders the WHERE clause of a listing. Diagnostic rows are
// only listed when asked for by status.
func transactionWhere(f models.TransactionFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}
	add := func(cond string, v interface{}) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.UserID != nil {
		add("user_id = $%d", *f.UserID)
	}
	if f.Kind != "" {
		add("kind = $%d", string(f.Kind))
	}
	if f.Status != "" {
		add("status = $%d", string(f.Status))
	} else {
		conds = append(conds, "status <> 'test'")
	}
	if !f.IncludeHidden {
		conds = append(conds, "NOT COALESCE((metadata->>'hidden')::boolean, false)")
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

// ListTransactions returns one page of transactions, newest first, and the total count.
// Completed-only listings follow ledger order (completed_at), everything else creation order.
func (r *BillingRepo) ListTransactions(ctx context.Context, filter models.TransactionFilter) ([]*models.Transaction, int, error) {
	filter.Normalize()
	where, args := transactionWhere(filter)

	orderBy := "created_at DESC, id DESC"
	if filter.Status == models.StatusCompleted {
		orderBy = "completed_at DESC, id DESC"
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM transactions`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM transactions%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		transactionColumns, where, orderBy, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset())

	txs := []*models.Transaction{}
	if err := r.db.SelectContext(ctx, &txs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, total, nil
}

// ListPendingBefore returns the oldest pending transactions created before the given time.
// A non-nil cursor continues after the row it names.
func (r *BillingRepo) ListPendingBefore(ctx context.Context, before time.Time, cursor *models.PendingCursor, limit int) ([]*models.Transaction, error) {
	args := []interface{}{string(models.StatusPending), before}
	where := "status = $1 AND created_at < $2"
	if cursor != nil {
		args = append(args, cursor.CreatedAt, cursor.ID)
		where += " AND (created_at, id) > ($3, $4)"
	}
	args = append(args, limit)

	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE %s ORDER BY created_at, id LIMIT $%d`,
		transactionColumns, where, len(args))

	txs := []*models.Transaction{}
	if err := r.db.SelectContext(ctx, &txs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list pending transactions: %w", err)
	}
	return txs, nil
}

// MergeMetadata merges patch into the metadata of a transaction. No other column changes.
func (r *BillingRepo) MergeMetadata(ctx context.Context, id uuid.UUID, patch models.Metadata) (*models.Transaction, error) {
	query := `
		UPDATE transactions
		SET metadata = metadata || $2::jsonb, updated_at = $3
		WHERE id = $1
		RETURNING ` + transactionColumns

	var tx models.Transaction
	if err := r.db.QueryRowxContext(ctx, query, id, patch, time.Now().UTC()).StructScan(&tx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, billing.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}
	return &tx, nil
}

// DeleteTestTransactions removes diagnostic rows. Rows in any other status are never touched.
func (r *BillingRepo) DeleteTestTransactions(ctx context.Context, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query, args, err := sqlx.In(`DELETE FROM transactions WHERE status = ? AND id IN (?)`, string(models.StatusTest), ids)
	if err != nil {
		return 0, fmt.Errorf("failed to build delete query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete test transactions: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return int(rows), nil
}
