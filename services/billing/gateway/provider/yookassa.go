package provider

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/thqlabel/thqlabel/internal/pkg/apperror"
	httpclient "github.com/thqlabel/thqlabel/internal/pkg/http"
	"github.com/thqlabel/thqlabel/internal/pkg/logger"
	"github.com/thqlabel/thqlabel/internal/pkg/models"
	"github.com/thqlabel/thqlabel/internal/utils"
)

const defaultYooKassaURL = "https://api.yookassa.ru/v3"

// YooKassa notification events
const (
	yooEventPaymentSucceeded = "payment.succeeded"
	yooEventPaymentCanceled  = "payment.canceled"
	yooEventRefundSucceeded  = "refund.succeeded"
)

// YooKassa payment statuses
const (
	yooStatusSucceeded = "succeeded"
	yooStatusCanceled  = "canceled"
)

var yooPaymentMethodTypes = map[string]string{
	models.MethodSBP:      "sbp",
	models.MethodCardRU:   "bank_card",
	models.MethodYooMoney: "yoo_money",
}

type yooAmount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

type yooPayment struct {
	ID           string            `json:"id"`
	Status       string            `json:"status"`
	Paid         bool              `json:"paid"`
	Amount       yooAmount         `json:"amount"`
	Metadata     map[string]string `json:"metadata"`
	Confirmation *struct {
		Type            string `json:"type"`
		ConfirmationURL string `json:"confirmation_url"`
	} `json:"confirmation,omitempty"`
	CancellationDetails *struct {
		Party  string `json:"party"`
		Reason string `json:"reason"`
	} `json:"cancellation_details,omitempty"`
}

type yooRefund struct {
	ID        string    `json:"id"`
	PaymentID string    `json:"payment_id"`
	Status    string    `json:"status"`
	Amount    yooAmount `json:"amount"`
}

type yooNotification struct {
	Type   string          `json:"type"`
	Event  string          `json:"event"`
	Object json.RawMessage `json:"object"`
}

// YooKassa creates redirect payments through the YooKassa v3 API. YooKassa
// notifications carry no signature, so each one is authenticated by fetching
// the object it names with the shop credentials.
type YooKassa struct {
	cfg       models.YooKassaConfig
	client    Doer
	publicURL string
}

// NewYooKassa creates a YooKassa provider
func NewYooKassa(cfg models.YooKassaConfig, client Doer, publicURL string) *YooKassa {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultYooKassaURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &YooKassa{cfg: cfg, client: client, publicURL: strings.TrimRight(publicURL, "/")}
}

func (y *YooKassa) Name() string { return models.ProviderYooKassa }

// testMode is on while the shop is configured with a placeholder secret
func (y *YooKassa) testMode() bool {
	return y.cfg.SecretKey == "" || strings.Contains(y.cfg.SecretKey, "*")
}

func (y *YooKassa) headers() http.Header {
	h := http.Header{}
	h.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(y.cfg.ShopID+":"+y.cfg.SecretKey)))
	h.Set("Content-Type", "application/json")
	return h
}

// CreateSession creates a payment with a redirect confirmation
func (y *YooKassa) CreateSession(ctx context.Context, req models.SessionRequest) (*models.Session, error) {
	if y.testMode() {
		q := url.Values{}
		q.Set("order_id", req.TransactionID.String())
		q.Set("amount", utils.FromMinorUnits(req.Amount))
		q.Set("method", req.Method)
		logger.WarnCtx(ctx, "YooKassa is in test mode", logger.String("transaction_id", req.TransactionID.String()))
		return &models.Session{
			ProviderRef: "test_" + req.TransactionID.String(),
			RedirectURL: y.publicURL + "/test-payment?" + q.Encode(),
		}, nil
	}

	returnURL := req.ReturnURL
	if returnURL == "" {
		returnURL = y.publicURL + "/cabinet/balance?status=success"
	}
	payload := map[string]interface{}{
		"amount":       yooAmount{Value: utils.FromMinorUnits(req.Amount), Currency: req.Currency},
		"capture":      true,
		"description":  req.Description,
		"confirmation": map[string]string{"type": "redirect", "return_url": returnURL},
		"metadata": map[string]string{
			"order_id": req.TransactionID.String(),
			"user_id":  req.UserID.String(),
		},
	}
	if methodType, ok := yooPaymentMethodTypes[req.Method]; ok {
		payload["payment_method_data"] = map[string]string{"type": methodType}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payment: %w", err)
	}

	headers := y.headers()
	headers.Set("Idempotence-Key", req.TransactionID.String())
	resp, err := y.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		URL:    y.cfg.BaseURL + "/payments",
		Header: headers,
		Body:   body,
	})
	if err != nil || !successful(resp) {
		return nil, callError("yookassa", resp, err)
	}

	var payment yooPayment
	if err := resp.DecodeJSON(&payment); err != nil {
		return nil, apperror.Provider("yookassa returned an invalid payment", err)
	}
	if payment.Confirmation == nil || payment.Confirmation.ConfirmationURL == "" {
		return nil, apperror.Provider("yookassa returned no confirmation url", nil)
	}

	return &models.Session{ProviderRef: payment.ID, RedirectURL: payment.Confirmation.ConfirmationURL}, nil
}

func (y *YooKassa) fetch(ctx context.Context, path string, out interface{}) error {
	resp, err := y.client.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		URL:    y.cfg.BaseURL + path,
		Header: y.headers(),
	})
	if err != nil {
		return callError("yookassa", resp, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return apperror.Auth("unknown yookassa object")
	}
	if !successful(resp) {
		return callError("yookassa", resp, nil)
	}
	return resp.DecodeJSON(out)
}

// ParseWebhook verifies a notification against the YooKassa API
func (y *YooKassa) ParseWebhook(ctx context.Context, req models.WebhookRequest) (*models.WebhookEvent, error) {
	var n yooNotification
	if err := json.Unmarshal(req.Body, &n); err != nil {
		return nil, apperror.Validation("invalid notification body")
	}
	var ref struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(n.Object, &ref); err != nil || ref.ID == "" {
		return nil, apperror.Validation("notification object has no id")
	}

	event := &models.WebhookEvent{Provider: models.ProviderYooKassa, EventType: n.Event}

	switch n.Event {
	case yooEventPaymentSucceeded, yooEventPaymentCanceled:
		var payment yooPayment
		if err := y.fetch(ctx, "/payments/"+url.PathEscape(ref.ID), &payment); err != nil {
			return nil, err
		}
		if err := fillFromYooPayment(event, &payment); err != nil {
			return nil, err
		}
		wantStatus := yooStatusSucceeded
		if n.Event == yooEventPaymentCanceled {
			wantStatus = yooStatusCanceled
		}
		if payment.Status != wantStatus {
			return nil, apperror.Auth("notification does not match payment state")
		}
		if payment.Status == yooStatusSucceeded {
			event.Outcome = models.OutcomeSuccess
		} else {
			event.Outcome = models.OutcomeFailure
			event.Reason = models.ReasonCanceled
		}

	case yooEventRefundSucceeded:
		var refund yooRefund
		if err := y.fetch(ctx, "/refunds/"+url.PathEscape(ref.ID), &refund); err != nil {
			return nil, err
		}
		if refund.Status != yooStatusSucceeded {
			return nil, apperror.Auth("notification does not match refund state")
		}
		amount, err := utils.ToMinorUnits(refund.Amount.Value)
		if err != nil {
			return nil, apperror.Provider("yookassa returned an invalid amount", err)
		}
		event.Outcome = models.OutcomeReversal
		event.ProviderRef = refund.PaymentID
		event.ReversalRef = refund.ID
		event.Amount = amount
		event.Currency = refund.Amount.Currency

	default:
		event.Outcome = models.OutcomeIgnored
		event.ProviderRef = ref.ID
	}

	return event, nil
}

func fillFromYooPayment(event *models.WebhookEvent, payment *yooPayment) error {
	amount, err := utils.ToMinorUnits(payment.Amount.Value)
	if err != nil {
		return apperror.Provider("yookassa returned an invalid amount", err)
	}
	event.ProviderRef = payment.ID
	event.Amount = amount
	event.Currency = payment.Amount.Currency
	event.TransactionID = orderID(payment.Metadata["order_id"])
	return nil
}

// CheckStatus polls a payment
func (y *YooKassa) CheckStatus(ctx context.Context, providerRef string) (*models.PaymentStatus, error) {
	if strings.HasPrefix(providerRef, "test_") {
		return &models.PaymentStatus{Status: models.RemotePending}, nil
	}

	var payment yooPayment
	if err := y.fetch(ctx, "/payments/"+url.PathEscape(providerRef), &payment); err != nil {
		return nil, err
	}
	amount, err := utils.ToMinorUnits(payment.Amount.Value)
	if err != nil {
		return nil, apperror.Provider("yookassa returned an invalid amount", err)
	}

	status := &models.PaymentStatus{Amount: amount, Currency: payment.Amount.Currency}
	switch payment.Status {
	case yooStatusSucceeded:
		status.Status = models.RemoteSucceeded
	case yooStatusCanceled:
		status.Status = models.RemoteCanceled
	default:
		status.Status = models.RemotePending
	}
	return status, nil
}
