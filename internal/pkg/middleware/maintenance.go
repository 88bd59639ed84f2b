package middleware

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/thqlabel/thqlabel/internal/pkg/logger"
	"github.com/thqlabel/thqlabel/internal/pkg/models"
	"github.com/thqlabel/thqlabel/internal/utils"
)

// MaintenanceChecker reports the current maintenance state
type MaintenanceChecker interface {
	MaintenanceState(ctx context.Context) (*models.MaintenanceState, error)
}

// MaintenanceMiddleware answers 503 while maintenance mode is on.
// A failing checker lets the request through.
func MaintenanceMiddleware(checker MaintenanceChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			state, err := checker.MaintenanceState(c.Request().Context())
			if err != nil {
				logger.WarnCtx(c.Request().Context(), "Failed to read maintenance state", logger.Err(err))
				return next(c)
			}
			if state != nil && state.Enabled {
				msg := state.Message
				if msg == "" {
					msg = "Service is under maintenance"
				}
				return utils.ServiceUnavailableResponse(c, msg)
			}
			return next(c)
		}
	}
}
