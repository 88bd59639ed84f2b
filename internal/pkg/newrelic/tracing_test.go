package newrelic

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thqlabel/thqlabel/internal/pkg/models"
)

func TestInitNewRelic_Disabled(t *testing.T) {
	cfg := &models.Config{}
	assert.Nil(t, InitNewRelic(cfg))

	cfg.NewRelic.Enabled = true
	assert.Nil(t, InitNewRelic(cfg))
}

func TestHelpers_NoTransaction(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, FromContext(ctx))

	SetTransactionName(nil, "noop")
	AddTransactionAttribute(nil, "k", "v")
	NoticeTransactionError(nil, errors.New("x"))

	called := false
	require.NoError(t, WithSegment(ctx, "segment", func() error {
		called = true
		return nil
	}))
	assert.True(t, called)
}

func TestMiddleware_NilAppPassesThrough(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	h := Middleware(nil)(TraceHandler("ping", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}))

	require.NoError(t, h(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
