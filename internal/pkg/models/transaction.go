package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// TransactionKind is the business meaning of a ledger entry
type TransactionKind string

const (
	KindDeposit    TransactionKind = "deposit"
	KindWithdrawal TransactionKind = "withdrawal"
	KindPurchase   TransactionKind = "purchase"
	KindPayout     TransactionKind = "payout"
	KindRefund     TransactionKind = "refund"
	KindAdjustment TransactionKind = "adjustment"
	KindBonus      TransactionKind = "bonus"
	KindFee        TransactionKind = "fee"
)

// Valid reports whether k is a known kind
func (k TransactionKind) Valid() bool {
	switch k {
	case KindDeposit, KindWithdrawal, KindPurchase, KindPayout,
		KindRefund, KindAdjustment, KindBonus, KindFee:
		return true
	}
	return false
}

// IsDebit reports whether the kind takes money from the balance
func (k TransactionKind) IsDebit() bool {
	return k == KindPurchase || k == KindWithdrawal || k == KindFee
}

// Signed returns the balance delta of amount for this kind
func (k TransactionKind) Signed(amount int64) int64 {
	if k.IsDebit() {
		return -amount
	}
	return amount
}

// TransactionStatus is the lifecycle state of a ledger entry
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
	StatusTest      TransactionStatus = "test"
)

// Valid reports whether s is a known status
func (s TransactionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed, StatusTest:
		return true
	}
	return false
}

// Metadata keys with special meaning
const (
	MetaHidden      = "hidden"
	MetaHiddenAt    = "hidden_at"
	MetaHiddenBy    = "hidden_by"
	MetaReversalOf  = "reversal_of"
	MetaLateSuccess = "late_success"
	MetaCreatedBy   = "created_by"
)

// Metadata is the free-form JSONB map stored on a transaction
type Metadata map[string]interface{}

// Value implements driver.Valuer
func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner
func (m *Metadata) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*m = Metadata{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("metadata: unsupported scan type")
	}
	out := Metadata{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			return err
		}
	}
	*m = out
	return nil
}

// Hidden reports whether the soft-hide flag is set
func (m Metadata) Hidden() bool {
	v, ok := m[MetaHidden].(bool)
	return ok && v
}

// Transaction is a single ledger entry
type Transaction struct {
	ID             uuid.UUID         `json:"id" db:"id"`
	UserID         uuid.UUID         `json:"user_id" db:"user_id"`
	Kind           TransactionKind   `json:"kind" db:"kind"`
	Amount         int64             `json:"amount" db:"amount"`
	Currency       string            `json:"currency" db:"currency"`
	ChargeAmount   int64             `json:"charge_amount" db:"charge_amount"`
	ChargeCurrency string            `json:"charge_currency" db:"charge_currency"`
	Status         TransactionStatus `json:"status" db:"status"`
	BalanceBefore  int64             `json:"balance_before" db:"balance_before"`
	BalanceAfter   *int64            `json:"balance_after" db:"balance_after"`
	Description    string            `json:"description" db:"description"`
	PaymentMethod  string            `json:"payment_method" db:"payment_method"`
	Provider       string            `json:"provider" db:"provider"`
	ProviderRef    *string           `json:"provider_ref,omitempty" db:"provider_ref"`
	SessionURL     string            `json:"session_url,omitempty" db:"session_url"`
	FailureReason  string            `json:"failure_reason,omitempty" db:"failure_reason"`
	Metadata       Metadata          `json:"metadata" db:"metadata"`
	CreatedAt      time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at" db:"updated_at"`
	CompletedAt    *time.Time        `json:"completed_at,omitempty" db:"completed_at"`
}

// SignedAmount returns the balance delta this transaction carries
func (t *Transaction) SignedAmount() int64 {
	return t.Kind.Signed(t.Amount)
}

// TransactionFilter narrows a transaction listing
type TransactionFilter struct {
	UserID        *uuid.UUID
	Kind          TransactionKind
	Status        TransactionStatus
	IncludeHidden bool
	Page          int
	Limit         int
}

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Normalize clamps paging parameters into their allowed ranges
func (f *TransactionFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultPageLimit
	}
	if f.Limit > MaxPageLimit {
		f.Limit = MaxPageLimit
	}
}

// Offset returns the row offset of the current page
func (f TransactionFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// TransactionPage is one page of a transaction listing
type TransactionPage struct {
	Transactions []*Transaction `json:"transactions"`
	Total        int            `json:"total"`
	Page         int            `json:"page"`
	Limit        int            `json:"limit"`
	TotalPages   int            `json:"total_pages"`
}

// LedgerResult is the outcome of a ledger application
type LedgerResult struct {
	Transaction *Transaction `json:"transaction"`
	Balance     int64        `json:"balance"`
	// Applied is false when the transaction was no longer pending
	Applied bool `json:"applied"`
}

// Failure reasons recorded on failed transactions
const (
	ReasonInsufficientFunds = "insufficient_funds"
	ReasonProviderError     = "provider_error"
	ReasonDeclined          = "declined"
	ReasonAmountMismatch    = "amount_mismatch"
	ReasonExpired           = "expired"
	ReasonCanceled          = "canceled"
)
