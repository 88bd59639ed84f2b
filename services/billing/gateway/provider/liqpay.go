package provider

import (
	"context"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/thqlabel/thqlabel/internal/pkg/apperror"
	"github.com/thqlabel/thqlabel/internal/pkg/models"
	"github.com/thqlabel/thqlabel/internal/utils"
)

const defaultLiqPayCheckoutURL = "https://www.liqpay.ua/api/3/checkout"

type liqPayCallback struct {
	Status        string      `json:"status"`
	OrderID       string      `json:"order_id"`
	PaymentID     json.Number `json:"payment_id"`
	LiqPayOrderID string      `json:"liqpay_order_id"`
	Amount        json.Number `json:"amount"`
	Currency      string      `json:"currency"`
	ErrCode       string      `json:"err_code"`
}

// LiqPay builds signed checkout links. Payments have no provider id until the
// first callback, so the transaction id doubles as the provider reference.
type LiqPay struct {
	cfg       models.LiqPayConfig
	publicURL string
}

// NewLiqPay creates a LiqPay provider
func NewLiqPay(cfg models.LiqPayConfig, publicURL string) *LiqPay {
	if cfg.CheckoutURL == "" {
		cfg.CheckoutURL = defaultLiqPayCheckoutURL
	}
	return &LiqPay{cfg: cfg, publicURL: strings.TrimRight(publicURL, "/")}
}

func (l *LiqPay) Name() string { return models.ProviderLiqPay }

// Sign returns base64(sha1(private_key + data + private_key))
func (l *LiqPay) Sign(data string) string {
	sum := sha1.Sum([]byte(l.cfg.PrivateKey + data + l.cfg.PrivateKey))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// CreateSession encodes a checkout request into a signed link
func (l *LiqPay) CreateSession(ctx context.Context, req models.SessionRequest) (*models.Session, error) {
	resultURL := req.ReturnURL
	if resultURL == "" {
		resultURL = l.publicURL + "/cabinet/balance?status=success"
	}
	payload := map[string]interface{}{
		"version":     3,
		"public_key":  l.cfg.PublicKey,
		"action":      "pay",
		"amount":      utils.FromMinorUnits(req.Amount),
		"currency":    req.Currency,
		"description": sessionTitle(req.Description),
		"order_id":    req.TransactionID.String(),
		"result_url":  resultURL,
		"server_url":  l.publicURL + "/webhooks/payments/" + models.ProviderLiqPay,
	}
	if l.cfg.Sandbox {
		payload["sandbox"] = 1
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode checkout: %w", err)
	}

	data := base64.StdEncoding.EncodeToString(raw)
	q := url.Values{}
	q.Set("data", data)
	q.Set("signature", l.Sign(data))

	return &models.Session{
		ProviderRef: req.TransactionID.String(),
		RedirectURL: l.cfg.CheckoutURL + "?" + q.Encode(),
	}, nil
}

// ParseWebhook verifies the form-encoded data/signature pair
func (l *LiqPay) ParseWebhook(ctx context.Context, req models.WebhookRequest) (*models.WebhookEvent, error) {
	if l.cfg.PrivateKey == "" {
		return nil, apperror.Auth("liqpay private key is not configured")
	}
	form, err := url.ParseQuery(string(req.Body))
	if err != nil {
		return nil, apperror.Validation("invalid callback body")
	}
	data, signature := form.Get("data"), form.Get("signature")
	if data == "" || signature == "" {
		return nil, apperror.Validation("missing data or signature")
	}
	if subtle.ConstantTimeCompare([]byte(signature), []byte(l.Sign(data))) != 1 {
		return nil, apperror.Auth("invalid liqpay signature")
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, apperror.Validation("invalid callback data")
	}
	var cb liqPayCallback
	if err := json.Unmarshal(raw, &cb); err != nil {
		return nil, apperror.Validation("invalid callback data")
	}

	event := &models.WebhookEvent{
		Provider:      models.ProviderLiqPay,
		EventType:     cb.Status,
		ProviderRef:   cb.OrderID,
		TransactionID: orderID(cb.OrderID),
		Currency:      strings.ToUpper(cb.Currency),
	}
	if cb.Amount != "" {
		amount, err := utils.ToMinorUnits(cb.Amount.String())
		if err != nil {
			return nil, apperror.Validation("invalid callback amount")
		}
		event.Amount = amount
	}

	switch cb.Status {
	case "success", "sandbox":
		event.Outcome = models.OutcomeSuccess
	case "failure", "error":
		event.Outcome = models.OutcomeFailure
		event.Reason = models.ReasonDeclined
	case "reversed":
		event.Outcome = models.OutcomeReversal
		event.ReversalRef = "reversed_" + cb.PaymentID.String()
		if cb.PaymentID == "" {
			event.ReversalRef = "reversed_" + cb.OrderID
		}
	default:
		event.Outcome = models.OutcomeIgnored
	}
	return event, nil
}

// CheckStatus is not offered for LiqPay checkouts
func (l *LiqPay) CheckStatus(ctx context.Context, providerRef string) (*models.PaymentStatus, error) {
	return nil, errStatusUnsupported
}
