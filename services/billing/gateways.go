package billing

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/thqlabel/thqlabel/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/thqlabel/thqlabel/services/billing BillingGW,PaymentProvider,TransactionFeed

// ErrStatusUnsupported is returned by providers that cannot be polled
var ErrStatusUnsupported = errors.New("provider does not support status checks")

// TransactionFeed is a lazy, restartable stream of change events for one user
type TransactionFeed interface {
	Next(ctx context.Context) ([]byte, error)
	Close() error
}

// BillingGW publishes billing events to the messaging layer
type BillingGW interface {
	PublishTransactionEvent(ctx context.Context, event models.TransactionEvent) error
	PublishNotification(ctx context.Context, notification models.FinanceNotification) error
	PublishBroadcast(ctx context.Context, broadcast models.Broadcast) error
	TransactionFeed(userID uuid.UUID) TransactionFeed
}

// PaymentProvider is an external payment processor integration
type PaymentProvider interface {
	Name() string
	CreateSession(ctx context.Context, req models.SessionRequest) (*models.Session, error)
	// ParseWebhook authenticates a callback and classifies it. Callers must not
	// trust the body before it returns without error.
	ParseWebhook(ctx context.Context, req models.WebhookRequest) (*models.WebhookEvent, error)
	// CheckStatus polls the payment identified by providerRef, or returns
	// ErrStatusUnsupported.
	CheckStatus(ctx context.Context, providerRef string) (*models.PaymentStatus, error)
}
