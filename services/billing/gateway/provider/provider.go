// Package provider holds the payment processor integrations. Every provider
// authenticates its own callbacks and reports them as models.WebhookEvent.
package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/thqlabel/thqlabel/internal/pkg/apperror"
	httpclient "github.com/thqlabel/thqlabel/internal/pkg/http"
	"github.com/thqlabel/thqlabel/services/billing"
)

var errStatusUnsupported = billing.ErrStatusUnsupported

// Doer executes outgoing provider calls. It is satisfied by the enhanced HTTP client.
type Doer interface {
	Do(ctx context.Context, r httpclient.Request) (*httpclient.Response, error)
}

// orderID parses the transaction id a provider echoes back
func orderID(raw string) *uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &id
}

// callError classifies a failed provider call
func callError(provider string, resp *httpclient.Response, err error) error {
	if err != nil {
		return apperror.Provider(provider+" is unavailable", err)
	}
	return apperror.Provider(provider+" rejected the request",
		fmt.Errorf("status %d: %s", resp.StatusCode, truncate(string(resp.Body), 256)))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func successful(resp *httpclient.Response) bool {
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
