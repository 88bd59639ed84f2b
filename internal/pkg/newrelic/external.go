package newrelic

import (
	"context"
	"net/http"

	"github.com/newrelic/go-agent/v3/newrelic"
)

// InstrumentHTTPRequest wraps an outgoing call in an external segment
func InstrumentHTTPRequest(ctx context.Context, req *http.Request, doFunc func() (*http.Response, error)) (*http.Response, error) {
	txn := FromContext(ctx)
	if txn == nil {
		return doFunc()
	}

	segment := newrelic.StartExternalSegment(txn, req)
	defer segment.End()

	resp, err := doFunc()
	if resp != nil {
		segment.Response = resp
	}
	return resp, err
}
