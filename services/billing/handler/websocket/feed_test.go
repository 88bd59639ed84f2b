package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thqlabel/thqlabel/internal/pkg/apperror"
	"github.com/thqlabel/thqlabel/internal/pkg/constants"
	"github.com/thqlabel/thqlabel/internal/pkg/middleware"
	"github.com/thqlabel/thqlabel/internal/pkg/models"
	wspkg "github.com/thqlabel/thqlabel/internal/pkg/websocket"
	"github.com/thqlabel/thqlabel/services/billing/mocks"
)

func feedServer(t *testing.T, h *FeedHandler, userID uuid.UUID) *httptest.Server {
	t.Helper()
	e := echo.New()
	e.GET("/ws/transactions", h.HandleTransactions, func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(middleware.UserIDKey, userID)
			return next(c)
		}
	})
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

func TestHandleTransactions_RelaysEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockBillingUC(ctrl)
	feed := mocks.NewMockTransactionFeed(ctrl)
	userID := uuid.New()
	event := []byte(`{"type":"transaction.completed","amount":1000}`)

	closed := make(chan struct{})
	mockUC.EXPECT().SubscribeTransactions(gomock.Any(), userID).Return(feed, nil)
	gomock.InOrder(
		feed.EXPECT().Next(gomock.Any()).Return(event, nil),
		feed.EXPECT().Next(gomock.Any()).DoAndReturn(func(ctx context.Context) ([]byte, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}),
	)
	feed.EXPECT().Close().DoAndReturn(func() error {
		close(closed)
		return nil
	})

	manager := wspkg.NewManager()
	srv := feedServer(t, NewFeedHandler(mockUC, manager), userID)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/transactions", nil)
	require.NoError(t, err)

	var msg models.WSMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, constants.EventSubscribed, msg.Event)

	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, constants.EventTransaction, msg.Event)
	assert.JSONEq(t, string(event), string(msg.Data))

	require.NoError(t, conn.WriteJSON(models.WSMessage{Event: constants.EventPing}))
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, constants.EventPong, msg.Event)

	conn.Close()
	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("feed was not closed after the client left")
	}
	assert.Eventually(t, func() bool { return manager.Count() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHandleTransactions_BannedUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockBillingUC(ctrl)
	userID := uuid.New()
	mockUC.EXPECT().SubscribeTransactions(gomock.Any(), userID).Return(nil, apperror.Forbidden("account is banned"))

	srv := feedServer(t, NewFeedHandler(mockUC, wspkg.NewManager()), userID)

	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/transactions", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
