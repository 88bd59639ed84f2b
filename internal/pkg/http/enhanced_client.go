package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/thqlabel/thqlabel/internal/pkg/circuitbreaker"
	"github.com/thqlabel/thqlabel/internal/pkg/logger"
	nrpkg "github.com/thqlabel/thqlabel/internal/pkg/newrelic"
	"github.com/thqlabel/thqlabel/internal/pkg/retry"
)

// maxResponseBytes caps how much of a provider response is read
const maxResponseBytes = 1 << 20

// Request describes one outgoing call. The body is replayed on every attempt.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// Response is a fully read HTTP response
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// DecodeJSON unmarshals the response body into v
func (r *Response) DecodeJSON(v interface{}) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// HTTPError is returned when a provider keeps answering with a server error
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("remote server error: status %d", e.StatusCode)
}

// EnhancedClient wraps http.Client with retry and circuit breaker functionality.
// Client errors (4xx) are returned as responses and never retried.
type EnhancedClient struct {
	client         *http.Client
	retrier        *retry.Retrier
	circuitManager *circuitbreaker.Manager
}

// NewEnhancedClient creates a new enhanced HTTP client
func NewEnhancedClient(log *logger.ZapLogger, timeout time.Duration) *EnhancedClient {
	return NewEnhancedClientWith(&http.Client{Timeout: timeout}, retry.NewWithDefaults(log), circuitbreaker.NewManager(log, nil))
}

// NewEnhancedClientWith assembles a client from its parts
func NewEnhancedClientWith(client *http.Client, retrier *retry.Retrier, manager *circuitbreaker.Manager) *EnhancedClient {
	return &EnhancedClient{client: client, retrier: retrier, circuitManager: manager}
}

// Do executes a request with retry and circuit breaker protection
func (c *EnhancedClient) Do(ctx context.Context, r Request) (*Response, error) {
	target, err := http.NewRequest(r.Method, r.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}
	breakerName := target.URL.Host
	if breakerName == "" {
		breakerName = "unknown"
	}

	var out *Response
	err = c.circuitManager.Execute(ctx, breakerName, func(ctx context.Context) error {
		return c.retrier.Execute(ctx, func(ctx context.Context) error {
			resp, err := c.attempt(ctx, r)
			if err != nil {
				return err
			}
			if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
				return &HTTPError{StatusCode: resp.StatusCode, Body: string(resp.Body)}
			}
			out = resp
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *EnhancedClient) attempt(ctx context.Context, r Request) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, r.Method, r.URL, bytes.NewReader(r.Body))
	if err != nil {
		return nil, retry.Permanent(err)
	}
	for k, vs := range r.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := nrpkg.InstrumentHTTPRequest(ctx, req, func() (*http.Response, error) {
		return c.client.Do(req)
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}, nil
}

// BreakerStates returns the state of every provider breaker
func (c *EnhancedClient) BreakerStates() map[string]string {
	return c.circuitManager.States()
}

// IsServerError reports whether err came from repeated 5xx answers
func IsServerError(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr)
}
