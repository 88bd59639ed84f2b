package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/thqlabel/thqlabel/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/thqlabel/thqlabel/services/billing BillingUC

// BillingUC defines the billing business logic
type BillingUC interface {
	// Payment initiation
	CreatePayment(ctx context.Context, userID uuid.UUID, req models.PaymentRequest) (*models.PaymentResponse, error)
	CheckPaymentStatus(ctx context.Context, userID, transactionID uuid.UUID) (*models.Transaction, error)

	// Provider callbacks
	HandleWebhook(ctx context.Context, req models.WebhookRequest) (*models.WebhookAck, error)

	// Ledger
	ApplyCompleted(ctx context.Context, transactionID uuid.UUID) (*models.LedgerResult, error)
	ApplyFailed(ctx context.Context, transactionID uuid.UUID, reason string) (*models.Transaction, error)

	// Read path
	GetBalance(ctx context.Context, userID uuid.UUID) (*models.BalanceResponse, error)
	ListTransactions(ctx context.Context, userID uuid.UUID, filter models.TransactionFilter) (*models.TransactionPage, error)
	GetTransaction(ctx context.Context, actorID, transactionID uuid.UUID) (*models.Transaction, error)
	SubscribeTransactions(ctx context.Context, userID uuid.UUID) (TransactionFeed, error)

	// Staff tools
	AdminListTransactions(ctx context.Context, actorID uuid.UUID, filter models.TransactionFilter) (*models.TransactionPage, error)
	CreateAdjustment(ctx context.Context, actorID uuid.UUID, req models.AdjustmentRequest) (*models.LedgerResult, error)
	HideTransaction(ctx context.Context, actorID, transactionID uuid.UUID) (*models.Transaction, error)
	BanUser(ctx context.Context, actorID, userID uuid.UUID, reason string) (*models.Profile, error)
	UnbanUser(ctx context.Context, actorID, userID uuid.UUID) (*models.Profile, error)
	Broadcast(ctx context.Context, actorID uuid.UUID, req models.BroadcastRequest) (*models.Broadcast, error)
	SetMaintenance(ctx context.Context, actorID uuid.UUID, req models.MaintenanceRequest) (*models.MaintenanceState, error)
	MaintenanceState(ctx context.Context) (*models.MaintenanceState, error)
	RunDiagnostics(ctx context.Context, actorID uuid.UUID) (*models.DiagnosticsReport, error)

	// Reconciliation
	Sweep(ctx context.Context) (*models.SweepReport, error)
}
