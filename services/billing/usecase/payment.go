package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/thqlabel/thqlabel/internal/pkg/apperror"
	"github.com/thqlabel/thqlabel/internal/pkg/logger"
	"github.com/thqlabel/thqlabel/internal/pkg/models"
	nrpkg "github.com/thqlabel/thqlabel/internal/pkg/newrelic"
	"github.com/thqlabel/thqlabel/internal/utils"
	"github.com/thqlabel/thqlabel/services/billing"
)

// CreatePayment records a pending transaction and opens a provider session for it.
// Balance purchases are settled immediately through the ledger.
func (uc *BillingUC) CreatePayment(ctx context.Context, userID uuid.UUID, req models.PaymentRequest) (*models.PaymentResponse, error) {
	tx, err := uc.newPaymentTransaction(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	// the pending row must exist before the provider hears about it
	if err := uc.billingRepo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}
	uc.publishEvent(ctx, models.EventTransactionCreated, tx)

	logger.InfoCtx(ctx, "Payment initiated",
		logger.String("transaction_id", tx.ID.String()),
		logger.String("user_id", userID.String()),
		logger.String("method", tx.PaymentMethod),
		logger.Int64("amount", tx.Amount))

	if tx.Provider == models.ProviderBalance {
		result, err := uc.ApplyCompleted(ctx, tx.ID)
		if err != nil {
			return nil, err
		}
		return &models.PaymentResponse{
			SessionRef:    tx.ID.String(),
			TransactionID: tx.ID,
			Status:        result.Transaction.Status,
			Balance:       &result.Balance,
		}, nil
	}

	provider := uc.providers[tx.Provider]
	var session *models.Session
	err = nrpkg.WithSegment(ctx, "provider."+provider.Name()+".CreateSession", func() error {
		var sessionErr error
		session, sessionErr = provider.CreateSession(ctx, models.SessionRequest{
			TransactionID: tx.ID,
			UserID:        userID,
			Amount:        tx.ChargeAmount,
			Currency:      tx.ChargeCurrency,
			Method:        tx.PaymentMethod,
			Description:   tx.Description,
			ReturnURL:     req.ReturnURL,
		})
		return sessionErr
	})
	if err != nil {
		if _, failErr := uc.ApplyFailed(ctx, tx.ID, models.ReasonProviderError); failErr != nil {
			logger.ErrorCtx(ctx, "Failed to mark transaction failed after provider error",
				logger.String("transaction_id", tx.ID.String()),
				logger.Err(failErr))
		}
		if apperror.KindOf(err) == apperror.KindInternal {
			err = apperror.Provider("failed to create payment session", err)
		}
		return nil, err
	}

	// the order id travels in the provider metadata, so a missing reference is recoverable
	if err := uc.billingRepo.SetSession(ctx, tx.ID, session.ProviderRef, session.RedirectURL); err != nil {
		logger.ErrorCtx(ctx, "Failed to record payment session",
			logger.String("transaction_id", tx.ID.String()),
			logger.String("provider_ref", session.ProviderRef),
			logger.Err(err))
	}

	sessionRef := session.RedirectURL
	if sessionRef == "" {
		sessionRef = session.ProviderRef
	}
	return &models.PaymentResponse{
		SessionRef:    sessionRef,
		TransactionID: tx.ID,
		Status:        models.StatusPending,
	}, nil
}

// newPaymentTransaction validates a purchase request and builds its pending row
func (uc *BillingUC) newPaymentTransaction(ctx context.Context, userID uuid.UUID, req models.PaymentRequest) (*models.Transaction, error) {
	if req.Amount <= 0 {
		return nil, apperror.Validation("amount must be positive")
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = uc.baseCurrency()
	}
	if !uc.currencyAllowed(currency) {
		return nil, apperror.Validationf("currency %s is not supported", currency)
	}

	providerName, ok := uc.methods[req.Method]
	if !ok {
		return nil, apperror.Validationf("payment method %q is not supported", req.Method)
	}
	if providerName != models.ProviderBalance {
		if _, ok := uc.providers[providerName]; !ok {
			return nil, apperror.Unavailable("payment method is temporarily unavailable")
		}
	}

	kind := req.Kind
	if kind == "" {
		kind = models.KindDeposit
		if providerName == models.ProviderBalance {
			kind = models.KindPurchase
		}
	}
	switch {
	case kind != models.KindDeposit && kind != models.KindPurchase:
		return nil, apperror.Validation("kind must be deposit or purchase")
	case kind == models.KindDeposit && providerName == models.ProviderBalance:
		return nil, apperror.Validation("cannot top up the balance from the balance")
	}

	rule := uc.cfg.Billing.Rules.Providers[providerName]
	chargeCurrency := rule.Currency
	if chargeCurrency == "" {
		chargeCurrency = uc.baseCurrency()
	}
	ledgerAmount, err := uc.convert(req.Amount, currency, uc.baseCurrency())
	if err != nil {
		return nil, err
	}
	chargeAmount, err := uc.convert(req.Amount, currency, chargeCurrency)
	if err != nil {
		return nil, err
	}
	if ledgerAmount <= 0 || chargeAmount < rule.MinAmount {
		return nil, apperror.Validationf("minimum amount is %s %s", utils.FromMinorUnits(rule.MinAmount), chargeCurrency)
	}

	profile, err := uc.activeProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = defaultDescription(kind, req.Method)
	}

	return &models.Transaction{
		ID:             newTransactionID(),
		UserID:         userID,
		Kind:           kind,
		Amount:         ledgerAmount,
		Currency:       uc.baseCurrency(),
		ChargeAmount:   chargeAmount,
		ChargeCurrency: chargeCurrency,
		Status:         models.StatusPending,
		BalanceBefore:  profile.Balance,
		Description:    description,
		PaymentMethod:  req.Method,
		Provider:       providerName,
		Metadata:       models.Metadata{},
	}, nil
}

func defaultDescription(kind models.TransactionKind, method string) string {
	if kind == models.KindPurchase {
		return "Purchase"
	}
	return fmt.Sprintf("Balance top-up (%s)", method)
}

func (uc *BillingUC) currencyAllowed(currency string) bool {
	for _, c := range uc.cfg.Billing.AllowedCurrencies {
		if strings.EqualFold(c, currency) {
			return true
		}
	}
	return false
}

// convert moves an amount in minor units between currencies using the configured rates
func (uc *BillingUC) convert(amount int64, from, to string) (int64, error) {
	if from == to {
		return amount, nil
	}
	fromRate, ok := uc.cfg.Billing.Rules.Rates[from]
	if !ok {
		return 0, apperror.Validationf("no exchange rate for %s", from)
	}
	toRate, ok := uc.cfg.Billing.Rules.Rates[to]
	if !ok {
		return 0, apperror.Validationf("no exchange rate for %s", to)
	}
	converted, err := utils.ConvertMinorUnits(amount, fromRate, toRate)
	if err != nil {
		return 0, apperror.Wrap(apperror.KindInternal, "invalid exchange rate", err)
	}
	return converted, nil
}

// CheckPaymentStatus polls the provider of one of the caller's pending transactions
// and applies a final outcome through the ledger
func (uc *BillingUC) CheckPaymentStatus(ctx context.Context, userID, transactionID uuid.UUID) (*models.Transaction, error) {
	if _, err := uc.activeProfile(ctx, userID); err != nil {
		return nil, err
	}
	tx, err := uc.billingRepo.GetTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if tx.UserID != userID {
		return nil, billing.ErrTransactionNotFound
	}
	if tx.Status != models.StatusPending || tx.ProviderRef == nil {
		return tx, nil
	}
	provider, ok := uc.providers[tx.Provider]
	if !ok {
		return tx, nil
	}

	status, err := provider.CheckStatus(ctx, *tx.ProviderRef)
	if errors.Is(err, billing.ErrStatusUnsupported) {
		return tx, nil
	}
	if err != nil {
		return nil, err
	}
	return uc.reconcile(ctx, tx, status)
}

// reconcile applies a polled provider status to a pending transaction
func (uc *BillingUC) reconcile(ctx context.Context, tx *models.Transaction, status *models.PaymentStatus) (*models.Transaction, error) {
	switch status.Status {
	case models.RemoteSucceeded:
		if amountMismatch(tx, status.Amount, status.Currency) {
			return uc.ApplyFailed(ctx, tx.ID, models.ReasonAmountMismatch)
		}
		result, err := uc.ApplyCompleted(ctx, tx.ID)
		if errors.Is(err, billing.ErrInsufficientFunds) {
			return result.Transaction, nil
		}
		if err != nil {
			return nil, err
		}
		return result.Transaction, nil
	case models.RemoteCanceled:
		return uc.ApplyFailed(ctx, tx.ID, models.ReasonCanceled)
	default:
		return tx, nil
	}
}

// amountMismatch reports whether a provider-side amount contradicts the recorded charge.
// Providers that do not report an amount send zero.
func amountMismatch(tx *models.Transaction, amount int64, currency string) bool {
	if amount == 0 {
		return false
	}
	if currency != "" && tx.ChargeCurrency != "" && !strings.EqualFold(currency, tx.ChargeCurrency) {
		return true
	}
	return amount != tx.ChargeAmount
}
