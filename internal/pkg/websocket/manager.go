package websocket

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/thqlabel/thqlabel/internal/pkg/constants"
	"github.com/thqlabel/thqlabel/internal/pkg/logger"
	"github.com/thqlabel/thqlabel/internal/pkg/models"
)

const writeTimeout = 10 * time.Second

// Client is one upgraded connection. Writes are serialized.
type Client struct {
	UserID uuid.UUID
	conn   *websocket.Conn
	mu     sync.Mutex
}

// SendMessage marshals data and writes it as an event frame
func (c *Client) SendMessage(event string, data interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("error marshaling message data: %w", err)
	}
	return c.SendRaw(event, raw)
}

// SendRaw writes an event frame whose data is already JSON
func (c *Client) SendRaw(event string, data json.RawMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteJSON(models.WSMessage{Event: event, Data: data})
}

// SendError writes an error frame
func (c *Client) SendError(code, message string) error {
	return c.SendMessage(constants.EventError, models.WSErrorMessage{Code: code, Message: message})
}

// ReadMessage blocks for the next frame from the peer
func (c *Client) ReadMessage() (*models.WSMessage, error) {
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	var msg models.WSMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return &msg, errInvalidFrame
	}
	return &msg, nil
}

// close sends a close frame and drops the connection
func (c *Client) close(code int, reason string) {
	c.mu.Lock()
	_ = c.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), time.Now().Add(time.Second))
	c.mu.Unlock()
	_ = c.conn.Close()
}

var errInvalidFrame = fmt.Errorf("invalid websocket frame")

// IsInvalidFrame reports whether err came from a frame that was not a WSMessage
func IsInvalidFrame(err error) bool {
	return err == errInvalidFrame
}

// Manager upgrades connections and tracks the live clients
type Manager struct {
	sync.RWMutex
	clients  map[*Client]struct{}
	upgrader websocket.Upgrader
}

// NewManager creates a new WebSocket manager
func NewManager() *Manager {
	return &Manager{
		clients: make(map[*Client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// HandleConnection upgrades the request and runs serve until it returns.
// The connection is closed afterwards.
func (m *Manager) HandleConnection(c echo.Context, userID uuid.UUID, serve func(*Client) error) error {
	ws, err := m.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Warn("WebSocket upgrade failed",
			logger.String("user_id", userID.String()),
			logger.Err(err))
		return nil
	}

	client := &Client{UserID: userID, conn: ws}
	m.addClient(client)
	defer func() {
		m.removeClient(client)
		_ = ws.Close()
	}()

	logger.Info("WebSocket client connected", logger.String("user_id", userID.String()))
	err = serve(client)
	logger.Info("WebSocket client disconnected", logger.String("user_id", userID.String()))
	return err
}

func (m *Manager) addClient(client *Client) {
	m.Lock()
	defer m.Unlock()
	m.clients[client] = struct{}{}
}

func (m *Manager) removeClient(client *Client) {
	m.Lock()
	defer m.Unlock()
	delete(m.clients, client)
}

// Count returns the number of connected clients
func (m *Manager) Count() int {
	m.RLock()
	defer m.RUnlock()
	return len(m.clients)
}

// CloseAll disconnects every client with a going-away close frame
func (m *Manager) CloseAll() {
	m.RLock()
	clients := make([]*Client, 0, len(m.clients))
	for client := range m.clients {
		clients = append(clients, client)
	}
	m.RUnlock()

	for _, client := range clients {
		client.close(websocket.CloseGoingAway, "server shutting down")
	}
}
