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

// AdminHandler handles staff and owner tooling
type AdminHandler struct {
	billingUC billing.BillingUC
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(billingUC billing.BillingUC) *AdminHandler {
	return &AdminHandler{
		billingUC: billingUC,
	}
}

// ListTransactions lists transactions across users, optionally for one user_id
func (h *AdminHandler) ListTransactions(c echo.Context) error {
	nrpkg.SetTransactionName(nrpkg.FromEchoContext(c), "GET /api/v1/admin/transactions")

	actorID, ok := middleware.UserID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}
	filter := filterFromQuery(c)
	if raw := c.QueryParam("user_id"); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			return utils.BadRequestResponse(c, "Invalid user ID")
		}
		filter.UserID = &userID
	}

	page, err := h.billingUC.AdminListTransactions(c.Request().Context(), actorID, filter)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Transactions retrieved", page)
}

// CreateAdjustment books a manual ledger entry
func (h *AdminHandler) CreateAdjustment(c echo.Context) error {
	nrpkg.SetTransactionName(nrpkg.FromEchoContext(c), "POST /api/v1/admin/transactions")

	actorID, ok := middleware.UserID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}
	var req models.AdjustmentRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	result, err := h.billingUC.CreateAdjustment(c.Request().Context(), actorID, req)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusCreated, "Adjustment applied", result)
}

// HideTransaction soft-hides the transaction named by the id query parameter
func (h *AdminHandler) HideTransaction(c echo.Context) error {
	nrpkg.SetTransactionName(nrpkg.FromEchoContext(c), "PATCH /api/v1/admin/transactions/hide")

	actorID, ok := middleware.UserID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}
	transactionID, err := uuid.Parse(c.QueryParam("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid transaction ID")
	}

	tx, err := h.billingUC.HideTransaction(c.Request().Context(), actorID, transactionID)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Transaction hidden", tx)
}

// BanUser bans the user in the path
func (h *AdminHandler) BanUser(c echo.Context) error {
	nrpkg.SetTransactionName(nrpkg.FromEchoContext(c), "POST /api/v1/admin/users/:id/ban")

	actorID, ok := middleware.UserID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid user ID")
	}
	var req models.BanRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	profile, err := h.billingUC.BanUser(c.Request().Context(), actorID, userID, req.Reason)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "User banned", profile)
}

// UnbanUser lifts the ban of the user in the path
func (h *AdminHandler) UnbanUser(c echo.Context) error {
	nrpkg.SetTransactionName(nrpkg.FromEchoContext(c), "POST /api/v1/admin/users/:id/unban")

	actorID, ok := middleware.UserID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid user ID")
	}

	profile, err := h.billingUC.UnbanUser(c.Request().Context(), actorID, userID)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "User unbanned", profile)
}

// Broadcast queues an announcement for every user
func (h *AdminHandler) Broadcast(c echo.Context) error {
	nrpkg.SetTransactionName(nrpkg.FromEchoContext(c), "POST /api/v1/admin/broadcast")

	actorID, ok := middleware.UserID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}
	var req models.BroadcastRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	broadcast, err := h.billingUC.Broadcast(c.Request().Context(), actorID, req)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusAccepted, "Broadcast queued", broadcast)
}

// SetMaintenance toggles maintenance mode
func (h *AdminHandler) SetMaintenance(c echo.Context) error {
	nrpkg.SetTransactionName(nrpkg.FromEchoContext(c), "PUT /api/v1/admin/maintenance")

	actorID, ok := middleware.UserID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}
	var req models.MaintenanceRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	state, err := h.billingUC.SetMaintenance(c.Request().Context(), actorID, req)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Maintenance updated", state)
}

// RunDiagnostics runs the ledger self-check
func (h *AdminHandler) RunDiagnostics(c echo.Context) error {
	nrpkg.SetTransactionName(nrpkg.FromEchoContext(c), "POST /api/v1/admin/diagnostics/ledger")

	actorID, ok := middleware.UserID(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	report, err := h.billingUC.RunDiagnostics(c.Request().Context(), actorID)
	if err != nil {
		return utils.AppErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Diagnostics finished", report)
}
