package models

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Payment methods accepted by the purchase endpoint
const (
	MethodBalance  = "balance"
	MethodYooKassa = "yookassa"
	MethodSBP      = "sbp"
	MethodCardRU   = "card_ru"
	MethodYooMoney = "yoomoney"
	MethodCard     = "card"
	MethodCrypto   = "crypto"
	MethodLiqPay   = "liqpay"
)

// Provider names
const (
	ProviderBalance     = "balance"
	ProviderYooKassa    = "yookassa"
	ProviderStripe      = "stripe"
	ProviderCryptoCloud = "cryptocloud"
	ProviderLiqPay      = "liqpay"
	ProviderManual      = "manual"
	ProviderDiagnostics = "diagnostics"
)

// PaymentRequest is the body of a purchase request
type PaymentRequest struct {
	Amount      int64           `json:"amount"`
	Currency    string          `json:"currency"`
	Method      string          `json:"method"`
	Kind        TransactionKind `json:"kind,omitempty"`
	Description string          `json:"description,omitempty"`
	ReturnURL   string          `json:"return_url,omitempty"`
}

// PaymentResponse is returned by the purchase endpoint
type PaymentResponse struct {
	SessionRef    string            `json:"sessionRef"`
	TransactionID uuid.UUID         `json:"transactionId"`
	Status        TransactionStatus `json:"status"`
	Balance       *int64            `json:"balance,omitempty"`
}

// SessionRequest is what a provider needs to open a payment session
type SessionRequest struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
	Amount        int64
	Currency      string
	Method        string
	Description   string
	ReturnURL     string
}

// Session is a provider-side payment session
type Session struct {
	ProviderRef string
	RedirectURL string
}

// WebhookRequest is a raw provider callback as received
type WebhookRequest struct {
	Provider string
	Header   http.Header
	Body     []byte
}

// WebhookOutcome classifies a verified provider callback
type WebhookOutcome string

const (
	OutcomeSuccess  WebhookOutcome = "success"
	OutcomeFailure  WebhookOutcome = "failure"
	OutcomeReversal WebhookOutcome = "reversal"
	OutcomeIgnored  WebhookOutcome = "ignored"
)

// WebhookEvent is a provider callback after authentication
type WebhookEvent struct {
	Provider  string
	EventType string
	Outcome   WebhookOutcome
	// ProviderRef is the provider payment id
	ProviderRef string
	// TransactionID is our id echoed back by the provider, when present
	TransactionID *uuid.UUID
	Amount        int64
	Currency      string
	// ReversalRef identifies the refund for reversal events
	ReversalRef string
	Reason      string
}

// RemoteStatus is the state of a payment as reported by a provider
type RemoteStatus string

const (
	RemotePending   RemoteStatus = "pending"
	RemoteSucceeded RemoteStatus = "succeeded"
	RemoteCanceled  RemoteStatus = "canceled"
)

// PaymentStatus is the result of polling a provider
type PaymentStatus struct {
	Status   RemoteStatus
	Amount   int64
	Currency string
}

// WebhookAck is the body returned to providers
type WebhookAck struct {
	Received      bool       `json:"received"`
	Status        string     `json:"status"`
	TransactionID *uuid.UUID `json:"transaction_id,omitempty"`
}

// Webhook acknowledgement statuses
const (
	AckProcessed        = "processed"
	AckAlreadyProcessed = "already_processed"
	AckIgnored          = "ignored"
)

// PendingCursor marks the last row of a pending page; the next page starts after it
type PendingCursor struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

// SweepReport summarizes one reconciliation pass
type SweepReport struct {
	Checked   int           `json:"checked"`
	Completed int           `json:"completed"`
	Failed    int           `json:"failed"`
	Expired   int           `json:"expired"`
	Skipped   int           `json:"skipped"`
	Leader    bool          `json:"leader"`
	Duration  time.Duration `json:"duration_ns"`
}
