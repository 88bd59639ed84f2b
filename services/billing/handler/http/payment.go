package http

import (
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/thqlabel/thqlabel/internal/pkg/logger"
	"github.com/thqlabel/thqlabel/internal/pkg/middleware"
	"github.com/thqlabel/thqlabel/internal/pkg/models"
	nrpkg "github.com/thqlabel/thqlabel/internal/pkg/newrelic"
	"github.com/thqlabel/thqlabel/internal/utils"
	"github.com/thqlabel/thqlabel/services/billing"
)

// maxWebhookBody caps provider callback bodies
const maxWebhookBody = 1 << 20

// PaymentHandler handles payment initiation and provider callbacks
type PaymentHandler struct {
	billingUC billing.BillingUC
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(billingUC billing.BillingUC) *PaymentHandler {
	return &PaymentHandler{
		billingUC: billingUC,
	}
}

// CreatePayment starts a purchase or top-up for the caller
func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "POST /api/v1/payments")

	userID, ok := middleware.UserID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var req models.PaymentRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	nrpkg.AddTransactionAttribute(txn, "payment.method", req.Method)

	resp, err := h.billingUC.CreatePayment(c.Request().Context(), userID, req)
	if err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.AppErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusCreated, "Payment created", resp)
}

// CheckPaymentStatus polls the provider for one of the caller's payments
func (h *PaymentHandler) CheckPaymentStatus(c echo.Context) error {
	nrpkg.SetTransactionName(nrpkg.FromEchoContext(c), "GET /api/v1/payments/:id/status")

	userID, ok := middleware.UserID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}
	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid transaction ID")
	}

	tx, err := h.billingUC.CheckPaymentStatus(c.Request().Context(), userID, transactionID)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Payment status retrieved", tx)
}

// HandleWebhook receives a provider callback. Any non-2xx answer makes the
// provider redeliver.
func (h *PaymentHandler) HandleWebhook(c echo.Context) error {
	provider := c.Param("provider")
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "POST /webhooks/payments/"+provider)

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
	if err != nil {
		return utils.BadRequestResponse(c, "Failed to read request body")
	}

	ack, err := h.billingUC.HandleWebhook(c.Request().Context(), models.WebhookRequest{
		Provider: provider,
		Header:   c.Request().Header,
		Body:     body,
	})
	if err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.AppErrorResponse(c, err)
	}

	logger.InfoCtx(c.Request().Context(), "Webhook acknowledged",
		logger.String("provider", provider),
		logger.String("status", ack.Status))
	return c.JSON(http.StatusOK, ack)
}

// RunSweep triggers one reconciliation pass. Called by the scheduler with the service API key.
func (h *PaymentHandler) RunSweep(c echo.Context) error {
	nrpkg.SetTransactionName(nrpkg.FromEchoContext(c), "POST /internal/billing/sweep")

	report, err := h.billingUC.Sweep(c.Request().Context())
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Sweep finished", report)
}
