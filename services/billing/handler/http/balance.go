package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/thqlabel/thqlabel/internal/pkg/middleware"
	"github.com/thqlabel/thqlabel/internal/pkg/models"
	nrpkg "github.com/thqlabel/thqlabel/internal/pkg/newrelic"
	"github.com/thqlabel/thqlabel/internal/utils"
	"github.com/thqlabel/thqlabel/services/billing"
)

// BalanceHandler serves the caller's balance and history
type BalanceHandler struct {
	billingUC billing.BillingUC
}

// NewBalanceHandler creates a new balance handler
func NewBalanceHandler(billingUC billing.BillingUC) *BalanceHandler {
	return &BalanceHandler{
		billingUC: billingUC,
	}
}

// GetBalance returns the caller's balance
func (h *BalanceHandler) GetBalance(c echo.Context) error {
	nrpkg.SetTransactionName(nrpkg.FromEchoContext(c), "GET /api/v1/balance")

	userID, ok := middleware.UserID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}
	balance, err := h.billingUC.GetBalance(c.Request().Context(), userID)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Balance retrieved", balance)
}

// ListTransactions returns a page of the caller's transactions
func (h *BalanceHandler) ListTransactions(c echo.Context) error {
	nrpkg.SetTransactionName(nrpkg.FromEchoContext(c), "GET /api/v1/balance/transactions")

	userID, ok := middleware.UserID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}
	page, err := h.billingUC.ListTransactions(c.Request().Context(), userID, filterFromQuery(c))
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Transactions retrieved", page)
}

// GetTransaction returns a single transaction
func (h *BalanceHandler) GetTransaction(c echo.Context) error {
	nrpkg.SetTransactionName(nrpkg.FromEchoContext(c), "GET /api/v1/balance/transactions/:id")

	userID, ok := middleware.UserID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}
	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid transaction ID")
	}
	tx, err := h.billingUC.GetTransaction(c.Request().Context(), userID, transactionID)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Transaction retrieved", tx)
}

// filterFromQuery reads paging and filter parameters. Out-of-range paging is
// clamped by the use case.
func filterFromQuery(c echo.Context) models.TransactionFilter {
	return models.TransactionFilter{
		Kind:   models.TransactionKind(c.QueryParam("kind")),
		Status: models.TransactionStatus(c.QueryParam("status")),
		Page:   utils.QueryInt(c, "page", 1),
		Limit:  utils.QueryInt(c, "limit", models.DefaultPageLimit),
	}
}
