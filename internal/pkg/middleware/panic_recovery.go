package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/thqlabel/thqlabel/internal/pkg/logger"
	"github.com/thqlabel/thqlabel/internal/utils"
)

// PanicRecoveryWithZapMiddleware recovers from panics, logs them with a stack
// trace and reports them to New Relic
func PanicRecoveryWithZapMiddleware(zapLogger *logger.ZapLogger) echo.MiddlewareFunc {
	if zapLogger == nil {
		panic("PanicRecoveryWithZapMiddleware requires a logger")
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					handlePanic(c, r, zapLogger)
				}
			}()

			return next(c)
		}
	}
}

func handlePanic(c echo.Context, r interface{}, zapLogger *logger.ZapLogger) {
	stackTrace := string(debug.Stack())
	req := c.Request()

	userID := "anonymous"
	if uid := c.Get(UserIDKey); uid != nil {
		userID = fmt.Sprintf("%v", uid)
	}

	requestID := c.Response().Header().Get(echo.HeaderXRequestID)
	if requestID == "" {
		requestID = req.Header.Get(echo.HeaderXRequestID)
	}

	panicMsg := fmt.Sprintf("Panic recovered: %v", r)

	txn := newrelic.FromContext(req.Context())
	if txn != nil {
		txn.NoticeError(newrelic.Error{
			Message: panicMsg,
			Class:   "PanicError",
			Attributes: map[string]interface{}{
				"panic.type":  fmt.Sprintf("%T", r),
				"http.method": req.Method,
				"http.path":   req.URL.Path,
				"user_id":     userID,
				"request_id":  requestID,
			},
		})
	}

	zapLogger.WithNewRelicContext(txn).Error("Panic recovered during request processing",
		logger.Any("panic_value", r),
		logger.String("panic_type", fmt.Sprintf("%T", r)),
		logger.String("stack_trace", stackTrace),
		logger.String("method", req.Method),
		logger.String("path", req.URL.Path),
		logger.String("client_ip", c.RealIP()),
		logger.String("user_id", userID),
		logger.String("request_id", requestID),
	)

	if !c.Response().Committed {
		_ = utils.ErrorResponseHandler(c, http.StatusInternalServerError, "An unexpected error occurred while processing your request")
	}
}
