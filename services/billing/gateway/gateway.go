package gateway

import (
	"context"

	"github.com/google/uuid"
	"github.com/thqlabel/thqlabel/internal/pkg/constants"
	"github.com/thqlabel/thqlabel/internal/pkg/logger"
	"github.com/thqlabel/thqlabel/internal/pkg/models"
	natspkg "github.com/thqlabel/thqlabel/internal/pkg/nats"
	"github.com/thqlabel/thqlabel/services/billing"
)

// QueuePublisher publishes JSON messages to a work queue topic.
// It is satisfied by the NSQ producer.
type QueuePublisher interface {
	Publish(topic string, message interface{}) error
}

// billingGW fans billing events out to NATS and NSQ
type billingGW struct {
	natsClient        *natspkg.Client
	queue             QueuePublisher
	notificationTopic string
	broadcastTopic    string
}

// NewBillingGW creates a new billing gateway
func NewBillingGW(natsClient *natspkg.Client, queue QueuePublisher, cfg models.NSQConfig) billing.BillingGW {
	return &billingGW{
		natsClient:        natsClient,
		queue:             queue,
		notificationTopic: cfg.NotificationTopic,
		broadcastTopic:    cfg.BroadcastTopic,
	}
}

// PublishTransactionEvent publishes a change event on the owner's feed subject
func (g *billingGW) PublishTransactionEvent(ctx context.Context, event models.TransactionEvent) error {
	subject := constants.TransactionFeedSubject(event.UserID)
	logger.Debug("Publishing transaction event",
		logger.String("subject", subject),
		logger.String("type", event.Type),
		logger.String("transaction_id", event.TransactionID.String()))
	return g.natsClient.PublishJSON(subject, event)
}

// PublishNotification queues a finance notification for the notification workers
func (g *billingGW) PublishNotification(ctx context.Context, notification models.FinanceNotification) error {
	return g.queue.Publish(g.notificationTopic, notification)
}

// PublishBroadcast queues an owner announcement
func (g *billingGW) PublishBroadcast(ctx context.Context, broadcast models.Broadcast) error {
	return g.queue.Publish(g.broadcastTopic, broadcast)
}

// TransactionFeed returns a lazy subscription to the change events of userID
func (g *billingGW) TransactionFeed(userID uuid.UUID) billing.TransactionFeed {
	return g.natsClient.Feed(constants.TransactionFeedSubject(userID))
}
