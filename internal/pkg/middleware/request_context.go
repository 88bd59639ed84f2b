package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/thqlabel/thqlabel/internal/pkg/requestcontext"
)

// RequestContextMiddleware copies the X-Request-ID assigned to the request
// into the request context so contextual log lines carry it.
// Register it after echo's RequestID middleware.
func RequestContextMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Response().Header().Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = c.Request().Header.Get(echo.HeaderXRequestID)
			}
			req := c.Request()
			c.SetRequest(req.WithContext(requestcontext.WithRequestID(req.Context(), requestID)))
			return next(c)
		}
	}
}
