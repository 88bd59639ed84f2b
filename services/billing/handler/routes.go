package handler

import (
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/thqlabel/thqlabel/internal/pkg/middleware"
	"github.com/thqlabel/thqlabel/internal/pkg/models"
	"github.com/thqlabel/thqlabel/services/billing"
	"github.com/thqlabel/thqlabel/services/billing/handler/http"
	"github.com/thqlabel/thqlabel/services/billing/handler/websocket"
)

const (
	userRateLimit  = 120
	userRatePeriod = time.Minute
)

// Handler coordinates all protocol handlers for the billing service
type Handler struct {
	paymentHandler *http.PaymentHandler
	balanceHandler *http.BalanceHandler
	adminHandler   *http.AdminHandler
	feedHandler    *websocket.FeedHandler
	billingUC      billing.BillingUC
	redisClient    *redis.Client
	cfg            *models.Config
}

// NewHandler creates and initializes all handlers
func NewHandler(
	paymentHandler *http.PaymentHandler,
	balanceHandler *http.BalanceHandler,
	adminHandler *http.AdminHandler,
	feedHandler *websocket.FeedHandler,
	billingUC billing.BillingUC,
	redisClient *redis.Client,
	cfg *models.Config,
) *Handler {
	return &Handler{
		paymentHandler: paymentHandler,
		balanceHandler: balanceHandler,
		adminHandler:   adminHandler,
		feedHandler:    feedHandler,
		billingUC:      billingUC,
		redisClient:    redisClient,
		cfg:            cfg,
	}
}

// RegisterRoutes registers all protocol handlers and their routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	auth := middleware.JWTAuthMiddleware(h.cfg.JWT)
	maintenance := middleware.MaintenanceMiddleware(h.billingUC)
	limiter := middleware.UserRateLimiter(userRateLimit, userRatePeriod, h.redisClient)

	// Provider callbacks authenticate by signature and must keep flowing during maintenance
	e.POST("/webhooks/payments/:provider", h.paymentHandler.HandleWebhook)

	api := e.Group("/api/v1", auth, limiter)

	// Cabinet routes
	cabinet := api.Group("", maintenance)
	cabinet.POST("/payments", h.paymentHandler.CreatePayment)
	cabinet.GET("/payments/:id/status", h.paymentHandler.CheckPaymentStatus)
	cabinet.GET("/balance", h.balanceHandler.GetBalance)
	cabinet.GET("/balance/transactions", h.balanceHandler.ListTransactions)
	cabinet.GET("/balance/transactions/:id", h.balanceHandler.GetTransaction)

	// Staff routes, roles are checked against the stored profile
	admin := api.Group("/admin")
	admin.GET("/transactions", h.adminHandler.ListTransactions)
	admin.POST("/transactions", h.adminHandler.CreateAdjustment)
	admin.PATCH("/transactions/hide", h.adminHandler.HideTransaction)
	admin.POST("/users/:id/ban", h.adminHandler.BanUser)
	admin.POST("/users/:id/unban", h.adminHandler.UnbanUser)
	admin.POST("/broadcast", h.adminHandler.Broadcast)
	admin.PUT("/maintenance", h.adminHandler.SetMaintenance)
	admin.POST("/diagnostics/ledger", h.adminHandler.RunDiagnostics)

	// Service-to-service routes
	internal := e.Group("/internal", middleware.ValidateAPIKey(h.cfg.Billing.InternalAPIKeyHash))
	internal.POST("/billing/sweep", h.paymentHandler.RunSweep)

	e.GET("/ws/transactions", h.feedHandler.HandleTransactions, auth, maintenance)
}
