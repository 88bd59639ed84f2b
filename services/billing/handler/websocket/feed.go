package websocket

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/thqlabel/thqlabel/internal/pkg/constants"
	"github.com/thqlabel/thqlabel/internal/pkg/logger"
	"github.com/thqlabel/thqlabel/internal/pkg/middleware"
	wspkg "github.com/thqlabel/thqlabel/internal/pkg/websocket"
	"github.com/thqlabel/thqlabel/internal/utils"
	"github.com/thqlabel/thqlabel/services/billing"
)

// FeedHandler streams a user's transaction changes over a websocket
type FeedHandler struct {
	billingUC billing.BillingUC
	manager   *wspkg.Manager
}

// NewFeedHandler creates a new transaction feed handler
func NewFeedHandler(billingUC billing.BillingUC, manager *wspkg.Manager) *FeedHandler {
	return &FeedHandler{
		billingUC: billingUC,
		manager:   manager,
	}
}

// HandleTransactions subscribes the caller to their feed and relays every event
// until either side goes away
func (h *FeedHandler) HandleTransactions(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	feed, err := h.billingUC.SubscribeTransactions(c.Request().Context(), userID)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}
	defer feed.Close()

	return h.manager.HandleConnection(c, userID, func(client *wspkg.Client) error {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go h.readLoop(client, cancel)

		if err := client.SendMessage(constants.EventSubscribed, map[string]string{"user_id": userID.String()}); err != nil {
			return nil
		}
		for {
			data, err := feed.Next(ctx)
			if err != nil {
				if ctx.Err() == nil {
					logger.Warn("Transaction feed interrupted",
						logger.String("user_id", userID.String()),
						logger.Err(err))
					_ = client.SendError(constants.ErrorFeedUnavailable, "Transaction feed unavailable")
				}
				return nil
			}
			if err := client.SendRaw(constants.EventTransaction, data); err != nil {
				return nil
			}
		}
	})
}

// readLoop answers pings and cancels the stream when the peer disconnects
func (h *FeedHandler) readLoop(client *wspkg.Client, cancel context.CancelFunc) {
	defer cancel()
	for {
		msg, err := client.ReadMessage()
		switch {
		case wspkg.IsInvalidFrame(err):
			_ = client.SendError(constants.ErrorInvalidFormat, "Invalid message format")
		case err != nil:
			return
		case msg.Event == constants.EventPing:
			_ = client.SendMessage(constants.EventPong, nil)
		default:
			_ = client.SendError(constants.ErrorUnknownEvent, http.StatusText(http.StatusBadRequest))
		}
	}
}
