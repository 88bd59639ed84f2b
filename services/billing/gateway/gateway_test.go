package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats-server/v2/server"
	natsserver "github.com/nats-io/nats-server/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thqlabel/thqlabel/internal/pkg/models"
	natspkg "github.com/thqlabel/thqlabel/internal/pkg/nats"
)

var testNatsServer *server.Server

func TestMain(m *testing.M) {
	opts := natsserver.DefaultTestOptions
	opts.Port = -1
	testNatsServer = natsserver.RunServer(&opts)
	code := m.Run()
	testNatsServer.Shutdown()
	os.Exit(code)
}

type queuedMessage struct {
	topic   string
	message interface{}
}

type fakeQueue struct {
	published []queuedMessage
	err       error
}

func (q *fakeQueue) Publish(topic string, message interface{}) error {
	if q.err != nil {
		return q.err
	}
	q.published = append(q.published, queuedMessage{topic: topic, message: message})
	return nil
}

var testNSQConfig = models.NSQConfig{
	NotificationTopic: "finance.notifications",
	BroadcastTopic:    "portal.broadcasts",
}

func TestPublishTransactionEvent_DeliveredOnUserFeed(t *testing.T) {
	nc, err := natspkg.NewClient(testNatsServer.ClientURL(), "gateway-test")
	require.NoError(t, err)
	defer nc.Close()

	gw := NewBillingGW(nc, &fakeQueue{}, testNSQConfig)
	userID := uuid.New()
	feed := gw.TransactionFeed(userID)
	defer feed.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	received := make(chan []byte, 1)
	go func() {
		data, err := feed.Next(ctx)
		if err == nil {
			received <- data
		}
	}()

	after := int64(50000)
	event := models.TransactionEvent{
		Type:          models.EventTransactionCompleted,
		TransactionID: uuid.New(),
		UserID:        userID,
		Kind:          models.KindDeposit,
		Status:        models.StatusCompleted,
		Amount:        50000,
		Currency:      "RUB",
		BalanceAfter:  &after,
	}

	// publish until the lazy subscription is in place
	var data []byte
	require.Eventually(t, func() bool {
		_ = gw.PublishTransactionEvent(ctx, event)
		select {
		case data = <-received:
			return true
		case <-time.After(50 * time.Millisecond):
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)

	var got models.TransactionEvent
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, event.TransactionID, got.TransactionID)
	assert.Equal(t, models.StatusCompleted, got.Status)
	assert.Equal(t, int64(50000), *got.BalanceAfter)
}

func TestPublishTransactionEvent_OtherUserFeedIsQuiet(t *testing.T) {
	nc, err := natspkg.NewClient(testNatsServer.ClientURL(), "gateway-test")
	require.NoError(t, err)
	defer nc.Close()

	gw := NewBillingGW(nc, &fakeQueue{}, testNSQConfig)
	feed := gw.TransactionFeed(uuid.New())
	defer feed.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = gw.PublishTransactionEvent(ctx, models.TransactionEvent{UserID: uuid.New()})
	}()

	_, err = feed.Next(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPublishNotificationAndBroadcast(t *testing.T) {
	queue := &fakeQueue{}
	gw := NewBillingGW(nil, queue, testNSQConfig)

	notification := models.FinanceNotification{UserID: uuid.New(), Title: "Balance topped up"}
	require.NoError(t, gw.PublishNotification(context.Background(), notification))

	broadcast := models.Broadcast{ID: uuid.New(), Title: "Release day"}
	require.NoError(t, gw.PublishBroadcast(context.Background(), broadcast))

	require.Len(t, queue.published, 2)
	assert.Equal(t, "finance.notifications", queue.published[0].topic)
	assert.Equal(t, notification, queue.published[0].message)
	assert.Equal(t, "portal.broadcasts", queue.published[1].topic)
	assert.Equal(t, broadcast, queue.published[1].message)
}

func TestPublishNotification_QueueError(t *testing.T) {
	gw := NewBillingGW(nil, &fakeQueue{err: errors.New("nsqd down")}, testNSQConfig)

	err := gw.PublishNotification(context.Background(), models.FinanceNotification{})

	assert.EqualError(t, err, "nsqd down")
}
