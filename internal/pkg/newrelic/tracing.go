package newrelic

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// FromEchoContext extracts New Relic transaction from Echo context
func FromEchoContext(c echo.Context) *newrelic.Transaction {
	return nrecho.FromContext(c)
}

// FromContext extracts New Relic transaction from standard context
func FromContext(ctx context.Context) *newrelic.Transaction {
	return newrelic.FromContext(ctx)
}

// SetTransactionName sets the name of the transaction
func SetTransactionName(txn *newrelic.Transaction, name string) {
	if txn != nil {
		txn.SetName(name)
	}
}

// AddTransactionAttribute adds a custom attribute to the transaction
func AddTransactionAttribute(txn *newrelic.Transaction, key string, value interface{}) {
	if txn != nil {
		txn.AddAttribute(key, value)
	}
}

// NoticeTransactionError reports an error to New Relic
func NoticeTransactionError(txn *newrelic.Transaction, err error) {
	if txn != nil && err != nil {
		txn.NoticeError(err)
	}
}

// WithSegment runs fn inside a named segment of the transaction in ctx
func WithSegment(ctx context.Context, segmentName string, fn func() error) error {
	if txn := FromContext(ctx); txn != nil {
		defer txn.StartSegment(segmentName).End()
	}
	return fn()
}

// TraceHandler names the transaction after the handler and records its error
func TraceHandler(handlerName string, handler echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		txn := FromEchoContext(c)
		SetTransactionName(txn, handlerName)

		err := handler(c)
		NoticeTransactionError(txn, err)
		return err
	}
}

// Middleware returns the nrecho middleware, or a pass-through when app is nil
func Middleware(app *newrelic.Application) echo.MiddlewareFunc {
	if app == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return nrecho.Middleware(app)
}
