package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/thqlabel/thqlabel/internal/pkg/apperror"
	"github.com/thqlabel/thqlabel/internal/pkg/logger"
	"github.com/thqlabel/thqlabel/internal/pkg/models"
)

const diagnosticsRows = 3

// AdminListTransactions lists transactions across all users for staff
func (uc *BillingUC) AdminListTransactions(ctx context.Context, actorID uuid.UUID, filter models.TransactionFilter) (*models.TransactionPage, error) {
	actor, err := uc.requireRole(ctx, actorID, models.RoleAdmin, models.RoleOwner)
	if err != nil {
		return nil, err
	}
	filter.IncludeHidden = actor.Role == models.RoleOwner
	return uc.listTransactions(ctx, filter)
}

// CreateAdjustment books a manual ledger entry on a user's balance
func (uc *BillingUC) CreateAdjustment(ctx context.Context, actorID uuid.UUID, req models.AdjustmentRequest) (*models.LedgerResult, error) {
	if _, err := uc.requireRole(ctx, actorID, models.RoleAdmin, models.RoleOwner); err != nil {
		return nil, err
	}
	switch req.Kind {
	case models.KindAdjustment, models.KindBonus, models.KindPayout, models.KindFee:
	default:
		return nil, apperror.Validation("kind must be adjustment, bonus, payout or fee")
	}
	if req.Amount <= 0 {
		return nil, apperror.Validation("amount must be positive")
	}
	target, err := uc.billingRepo.GetProfile(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = fmt.Sprintf("Manual %s", req.Kind)
	}
	tx := &models.Transaction{
		ID:             newTransactionID(),
		UserID:         target.ID,
		Kind:           req.Kind,
		Amount:         req.Amount,
		Currency:       uc.baseCurrency(),
		ChargeAmount:   req.Amount,
		ChargeCurrency: uc.baseCurrency(),
		Status:         models.StatusPending,
		BalanceBefore:  target.Balance,
		Description:    description,
		PaymentMethod:  models.ProviderManual,
		Provider:       models.ProviderManual,
		Metadata:       models.Metadata{models.MetaCreatedBy: actorID.String()},
	}
	if err := uc.billingRepo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}
	uc.publishEvent(ctx, models.EventTransactionCreated, tx)
	return uc.ApplyCompleted(ctx, tx.ID)
}

// BanUser blocks a user from the cabinet. Owners cannot be banned.
func (uc *BillingUC) BanUser(ctx context.Context, actorID, userID uuid.UUID, reason string) (*models.Profile, error) {
	if _, err := uc.requireRole(ctx, actorID, models.RoleOwner); err != nil {
		return nil, err
	}
	if actorID == userID {
		return nil, apperror.Validation("cannot ban yourself")
	}
	target, err := uc.billingRepo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if target.Role == models.RoleOwner {
		return nil, apperror.Forbidden("owners cannot be banned")
	}

	profile, err := uc.billingRepo.SetBanned(ctx, userID, true, actorID, strings.TrimSpace(reason))
	if err != nil {
		return nil, err
	}
	uc.audit.Record(logger.AuditUserBanned, map[string]interface{}{
		"actor_id": actorID.String(),
		"user_id":  userID.String(),
		"reason":   profile.BanReason,
	})
	return profile, nil
}

// UnbanUser lifts a ban
func (uc *BillingUC) UnbanUser(ctx context.Context, actorID, userID uuid.UUID) (*models.Profile, error) {
	if _, err := uc.requireRole(ctx, actorID, models.RoleOwner); err != nil {
		return nil, err
	}
	profile, err := uc.billingRepo.SetBanned(ctx, userID, false, actorID, "")
	if err != nil {
		return nil, err
	}
	uc.audit.Record(logger.AuditUserUnbanned, map[string]interface{}{
		"actor_id": actorID.String(),
		"user_id":  userID.String(),
	})
	return profile, nil
}

// Broadcast queues an announcement for every user
func (uc *BillingUC) Broadcast(ctx context.Context, actorID uuid.UUID, req models.BroadcastRequest) (*models.Broadcast, error) {
	if _, err := uc.requireRole(ctx, actorID, models.RoleOwner); err != nil {
		return nil, err
	}
	title, message := strings.TrimSpace(req.Title), strings.TrimSpace(req.Message)
	if title == "" || message == "" {
		return nil, apperror.Validation("title and message are required")
	}

	broadcast := &models.Broadcast{
		ID:      uuid.New(),
		Title:   title,
		Message: message,
		SentBy:  actorID,
		SentAt:  uc.now(),
	}
	if err := uc.billingGW.PublishBroadcast(ctx, *broadcast); err != nil {
		return nil, apperror.Wrap(apperror.KindUnavailable, "failed to queue broadcast", err)
	}
	uc.audit.Record(logger.AuditBroadcastSent, map[string]interface{}{
		"actor_id":     actorID.String(),
		"broadcast_id": broadcast.ID.String(),
		"title":        title,
	})
	return broadcast, nil
}

// SetMaintenance toggles maintenance mode for the cabinet endpoints
func (uc *BillingUC) SetMaintenance(ctx context.Context, actorID uuid.UUID, req models.MaintenanceRequest) (*models.MaintenanceState, error) {
	if _, err := uc.requireRole(ctx, actorID, models.RoleOwner); err != nil {
		return nil, err
	}
	state := &models.MaintenanceState{
		Enabled:   req.Enabled,
		Message:   strings.TrimSpace(req.Message),
		UpdatedBy: actorID,
		UpdatedAt: uc.now(),
	}
	if err := uc.billingRepo.SetMaintenance(ctx, state); err != nil {
		return nil, err
	}
	uc.audit.Record(logger.AuditMaintenanceToggled, map[string]interface{}{
		"actor_id": actorID.String(),
		"enabled":  state.Enabled,
	})
	return state, nil
}

// MaintenanceState returns the current maintenance flag
func (uc *BillingUC) MaintenanceState(ctx context.Context) (*models.MaintenanceState, error) {
	return uc.billingRepo.GetMaintenance(ctx)
}

// RunDiagnostics writes, reads back and removes a few test rows to check the
// ledger tables are writable. Test rows never touch a balance.
func (uc *BillingUC) RunDiagnostics(ctx context.Context, actorID uuid.UUID) (*models.DiagnosticsReport, error) {
	actor, err := uc.requireRole(ctx, actorID, models.RoleOwner)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	report := &models.DiagnosticsReport{}

	ids := make([]uuid.UUID, 0, diagnosticsRows)
	var runErr error
	for i := 0; i < diagnosticsRows; i++ {
		tx := &models.Transaction{
			ID:             newTransactionID(),
			UserID:         actor.ID,
			Kind:           models.KindAdjustment,
			Currency:       uc.baseCurrency(),
			ChargeCurrency: uc.baseCurrency(),
			Status:         models.StatusTest,
			BalanceBefore:  actor.Balance,
			Description:    fmt.Sprintf("diagnostics %d/%d", i+1, diagnosticsRows),
			PaymentMethod:  models.ProviderDiagnostics,
			Provider:       models.ProviderDiagnostics,
			Metadata:       models.Metadata{models.MetaCreatedBy: actorID.String()},
		}
		if runErr = uc.billingRepo.CreateTransaction(ctx, tx); runErr != nil {
			break
		}
		ids = append(ids, tx.ID)
		if _, runErr = uc.billingRepo.GetTransaction(ctx, tx.ID); runErr != nil {
			break
		}
	}
	report.Inserted = len(ids)

	if len(ids) > 0 {
		// Test rows are removed even when the request is gone.
		removed, err := uc.billingRepo.DeleteTestTransactions(context.WithoutCancel(ctx), ids)
		if err != nil && runErr == nil {
			runErr = err
		}
		report.Removed = removed
	}
	report.Duration = time.Since(start)
	report.OK = runErr == nil && report.Inserted == diagnosticsRows && report.Removed == diagnosticsRows

	uc.audit.Record(logger.AuditDiagnosticsRun, map[string]interface{}{
		"actor_id": actorID.String(),
		"inserted": report.Inserted,
		"removed":  report.Removed,
		"ok":       report.OK,
	})
	if runErr != nil {
		logger.ErrorCtx(ctx, "Diagnostics run failed", logger.Err(runErr))
	}
	return report, nil
}
