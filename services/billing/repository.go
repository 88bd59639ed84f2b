package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/thqlabel/thqlabel/internal/pkg/apperror"
	"github.com/thqlabel/thqlabel/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/thqlabel/thqlabel/services/billing BillingRepo

var (
	// ErrInsufficientFunds is returned when a debit would take the balance below zero
	ErrInsufficientFunds = apperror.Conflict("insufficient funds")
	// ErrDuplicateProviderRef is returned when a provider reference is already recorded
	ErrDuplicateProviderRef = apperror.Conflict("provider reference already recorded")
	// ErrTransactionNotFound is returned when no transaction matches
	ErrTransactionNotFound = apperror.NotFound("transaction not found")
	// ErrProfileNotFound is returned when no profile matches
	ErrProfileNotFound = apperror.NotFound("profile not found")
)

// BillingRepo defines the data access operations of the billing service
type BillingRepo interface {
	// Transactions
	CreateTransaction(ctx context.Context, tx *models.Transaction) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	GetTransactionByProviderRef(ctx context.Context, provider, ref string) (*models.Transaction, error)
	SetSession(ctx context.Context, id uuid.UUID, providerRef, sessionURL string) error
	ListTransactions(ctx context.Context, filter models.TransactionFilter) ([]*models.Transaction, int, error)
	ListPendingBefore(ctx context.Context, before time.Time, cursor *models.PendingCursor, limit int) ([]*models.Transaction, error)
	MergeMetadata(ctx context.Context, id uuid.UUID, patch models.Metadata) (*models.Transaction, error)
	DeleteTestTransactions(ctx context.Context, ids []uuid.UUID) (int, error)

	// Ledger transitions. Both only act on pending rows and report whether they did.
	CompleteTransaction(ctx context.Context, id uuid.UUID) (*models.LedgerResult, error)
	FailTransaction(ctx context.Context, id uuid.UUID, reason string) (*models.Transaction, bool, error)

	// Profiles
	GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	SetBanned(ctx context.Context, id uuid.UUID, banned bool, by uuid.UUID, reason string) (*models.Profile, error)

	// Redis
	AcquireWebhookLock(ctx context.Context, provider, ref string, ttl time.Duration) (bool, error)
	ReleaseWebhookLock(ctx context.Context, provider, ref string) error
	AcquireSweepLock(ctx context.Context, owner string, ttl time.Duration) (bool, error)
	ReleaseSweepLock(ctx context.Context, owner string) error
	GetMaintenance(ctx context.Context) (*models.MaintenanceState, error)
	SetMaintenance(ctx context.Context, state *models.MaintenanceState) error
}
