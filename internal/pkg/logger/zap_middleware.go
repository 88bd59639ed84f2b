package logger

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// ZapEchoMiddleware logs every request with the given logger
func ZapEchoMiddleware(logger *ZapLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			txn := newrelic.FromContext(c.Request().Context())

			start := time.Now()
			path := c.Request().URL.Path
			if raw := c.Request().URL.RawQuery; raw != "" {
				path = path + "?" + raw
			}

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			latency := time.Since(start)

			userIDStr := "anonymous"
			if userID := c.Get("user_id"); userID != nil {
				userIDStr = fmt.Sprintf("%v", userID)
			}
			requestID := c.Response().Header().Get(echo.HeaderXRequestID)

			if txn != nil {
				txn.AddAttribute("user_id", userIDStr)
				txn.AddAttribute("request_id", requestID)
				txn.AddAttribute("response_time_ms", latency.Milliseconds())
				if err != nil {
					txn.NoticeError(err)
				}
			}

			logger.LogHTTPRequest(txn, c.Request().Method, path, c.RealIP(), userIDStr, requestID, c.Response().Status, latency, err)

			return nil
		}
	}
}
