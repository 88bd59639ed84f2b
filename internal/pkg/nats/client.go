package nats

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// Client represents a NATS client for publishing and subscribing to messages
type Client struct {
	conn *nats.Conn
}

// NewClient connects to url and keeps reconnecting on connection loss
func NewClient(url string, name string) (*Client, error) {
	conn, err := nats.Connect(url,
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS server: %w", err)
	}

	return &Client{conn: conn}, nil
}

// NewClientFromConn wraps an existing connection
func NewClientFromConn(conn *nats.Conn) *Client {
	return &Client{conn: conn}
}

// GetConn returns the underlying connection
func (c *Client) GetConn() *nats.Conn {
	return c.conn
}

// Publish sends a message to the specified subject
func (c *Client) Publish(subject string, data []byte) error {
	if err := c.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

// PublishJSON marshals message and publishes it to subject
func (c *Client) PublishJSON(subject string, message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	return c.Publish(subject, data)
}

// Ping reports whether the connection is usable
func (c *Client) Ping() error {
	if c.conn == nil || !c.conn.IsConnected() {
		return fmt.Errorf("nats connection is %v", c.status())
	}
	return nil
}

func (c *Client) status() nats.Status {
	if c.conn == nil {
		return nats.CLOSED
	}
	return c.conn.Status()
}

// Feed opens a lazy subscription to subject
func (c *Client) Feed(subject string) *Feed {
	return NewFeed(c.conn, subject)
}

// Close drains and closes the NATS connection
func (c *Client) Close() {
	if c.conn != nil {
		_ = c.conn.Drain()
		c.conn.Close()
	}
}
