package provider

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/thqlabel/thqlabel/internal/pkg/apperror"
	httpclient "github.com/thqlabel/thqlabel/internal/pkg/http"
	"github.com/thqlabel/thqlabel/internal/pkg/models"
	"github.com/thqlabel/thqlabel/internal/utils"
)

const (
	defaultCryptoCloudURL = "https://api.cryptocloud.plus/v2"
	cryptoCloudHMACHeader = "Hmac"
)

type cryptoCloudInvoiceResponse struct {
	Status string `json:"status"`
	Result struct {
		UUID string `json:"uuid"`
		Link string `json:"link"`
	} `json:"result"`
}

type cryptoCloudPostback struct {
	Status       string `json:"status"`
	InvoiceID    string `json:"invoice_id"`
	OrderID      string `json:"order_id"`
	AmountInFiat string `json:"amount_in_fiat"`
	Currency     string `json:"currency"`
}

// CryptoCloud issues crypto invoices priced in fiat
type CryptoCloud struct {
	cfg    models.CryptoCloudConfig
	client Doer
}

// NewCryptoCloud creates a CryptoCloud provider
func NewCryptoCloud(cfg models.CryptoCloudConfig, client Doer) *CryptoCloud {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultCryptoCloudURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &CryptoCloud{cfg: cfg, client: client}
}

func (c *CryptoCloud) Name() string { return models.ProviderCryptoCloud }

// CreateSession creates an invoice
func (c *CryptoCloud) CreateSession(ctx context.Context, req models.SessionRequest) (*models.Session, error) {
	body, err := json.Marshal(map[string]string{
		"shop_id":  c.cfg.ShopID,
		"amount":   utils.FromMinorUnits(req.Amount),
		"currency": req.Currency,
		"order_id": req.TransactionID.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode invoice: %w", err)
	}

	headers := http.Header{}
	headers.Set("Authorization", "Token "+c.cfg.APIKey)
	headers.Set("Content-Type", "application/json")
	resp, err := c.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		URL:    c.cfg.BaseURL + "/invoice/create",
		Header: headers,
		Body:   body,
	})
	if err != nil || !successful(resp) {
		return nil, callError("cryptocloud", resp, err)
	}

	var invoice cryptoCloudInvoiceResponse
	if err := resp.DecodeJSON(&invoice); err != nil {
		return nil, apperror.Provider("cryptocloud returned an invalid invoice", err)
	}
	if invoice.Status != "success" || invoice.Result.Link == "" {
		return nil, apperror.Provider("cryptocloud rejected the request", fmt.Errorf("invoice status %q", invoice.Status))
	}
	return &models.Session{ProviderRef: invoice.Result.UUID, RedirectURL: invoice.Result.Link}, nil
}

// Sign returns the hex HMAC-SHA256 of body under the shop secret
func (c *CryptoCloud) Sign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(c.cfg.SecretKey))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// ParseWebhook verifies the Hmac header over the raw postback body
func (c *CryptoCloud) ParseWebhook(ctx context.Context, req models.WebhookRequest) (*models.WebhookEvent, error) {
	if c.cfg.SecretKey == "" {
		return nil, apperror.Auth("cryptocloud secret is not configured")
	}
	got, err := hex.DecodeString(strings.TrimSpace(req.Header.Get(cryptoCloudHMACHeader)))
	if err != nil || len(got) == 0 {
		return nil, apperror.Auth("invalid cryptocloud signature")
	}
	want, _ := hex.DecodeString(c.Sign(req.Body))
	if !hmac.Equal(got, want) {
		return nil, apperror.Auth("invalid cryptocloud signature")
	}

	var postback cryptoCloudPostback
	if err := json.Unmarshal(req.Body, &postback); err != nil {
		return nil, apperror.Validation("invalid postback body")
	}

	event := &models.WebhookEvent{
		Provider:      models.ProviderCryptoCloud,
		EventType:     postback.Status,
		ProviderRef:   invoiceRef(postback.InvoiceID),
		TransactionID: orderID(postback.OrderID),
	}
	if postback.AmountInFiat != "" {
		amount, err := utils.ToMinorUnits(postback.AmountInFiat)
		if err != nil {
			return nil, apperror.Validation("invalid postback amount")
		}
		event.Amount = amount
		event.Currency = strings.ToUpper(strings.TrimSpace(postback.Currency))
		if event.Currency == "" {
			event.Currency = c.cfg.Currency
		}
	}

	switch postback.Status {
	case "success":
		event.Outcome = models.OutcomeSuccess
	case "canceled", "fail":
		event.Outcome = models.OutcomeFailure
		event.Reason = models.ReasonCanceled
	default:
		event.Outcome = models.OutcomeIgnored
	}
	return event, nil
}

// invoiceRef restores the INV- prefix postbacks strip from invoice ids
func invoiceRef(id string) string {
	if id == "" || strings.HasPrefix(id, "INV-") {
		return id
	}
	return "INV-" + id
}

// CheckStatus is not offered for CryptoCloud invoices
func (c *CryptoCloud) CheckStatus(ctx context.Context, providerRef string) (*models.PaymentStatus, error) {
	return nil, errStatusUnsupported
}
