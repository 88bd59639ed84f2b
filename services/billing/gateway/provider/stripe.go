package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
	"github.com/thqlabel/thqlabel/internal/pkg/apperror"
	"github.com/thqlabel/thqlabel/internal/pkg/logger"
	"github.com/thqlabel/thqlabel/internal/pkg/models"
)

// Stripe webhook events
const (
	stripeEventSessionCompleted    = "checkout.session.completed"
	stripeEventAsyncPaymentSuccess = "checkout.session.async_payment_succeeded"
	stripeEventAsyncPaymentFailed  = "checkout.session.async_payment_failed"
	stripeEventSessionExpired      = "checkout.session.expired"
)

// stripeSignatureHeader carries the signed timestamp and HMAC of the payload
const stripeSignatureHeader = "Stripe-Signature"

// Stripe creates hosted checkout sessions
type Stripe struct {
	api           *client.API
	webhookSecret string
	publicURL     string
}

// NewStripe creates a Stripe provider. A non-empty BaseURL points the API
// client at another host.
func NewStripe(cfg models.StripeConfig, httpClient *http.Client, log *logger.ZapLogger, publicURL string) *Stripe {
	backendCfg := &stripe.BackendConfig{
		HTTPClient:        httpClient,
		MaxNetworkRetries: stripe.Int64(2),
	}
	if log != nil {
		backendCfg.LeveledLogger = log.Sugar()
	}
	if cfg.BaseURL != "" {
		backendCfg.URL = stripe.String(strings.TrimRight(cfg.BaseURL, "/"))
	}

	api := &client.API{}
	api.Init(cfg.SecretKey, &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, backendCfg),
		Connect: stripe.GetBackendWithConfig(stripe.ConnectBackend, backendCfg),
		Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, backendCfg),
	})

	return &Stripe{
		api:           api,
		webhookSecret: cfg.WebhookSecret,
		publicURL:     strings.TrimRight(publicURL, "/"),
	}
}

func (s *Stripe) Name() string { return models.ProviderStripe }

// CreateSession opens a one-item checkout session for the charge amount
func (s *Stripe) CreateSession(ctx context.Context, req models.SessionRequest) (*models.Session, error) {
	successURL := req.ReturnURL
	if successURL == "" {
		successURL = s.publicURL + "/cabinet/balance?status=success"
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(successURL),
		CancelURL:         stripe.String(s.publicURL + "/cabinet/balance?status=cancelled"),
		ClientReferenceID: stripe.String(req.TransactionID.String()),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(req.Currency)),
					UnitAmount: stripe.Int64(req.Amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(sessionTitle(req.Description)),
					},
				},
			},
		},
	}
	params.Context = ctx
	params.AddMetadata("order_id", req.TransactionID.String())
	params.AddMetadata("user_id", req.UserID.String())
	params.SetIdempotencyKey(req.TransactionID.String())

	session, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, apperror.Provider("stripe rejected the request", err)
	}
	return &models.Session{ProviderRef: session.ID, RedirectURL: session.URL}, nil
}

func sessionTitle(description string) string {
	if description == "" {
		return "Balance top-up"
	}
	return description
}

// ParseWebhook verifies the Stripe-Signature header and classifies checkout events
func (s *Stripe) ParseWebhook(ctx context.Context, req models.WebhookRequest) (*models.WebhookEvent, error) {
	if s.webhookSecret == "" {
		return nil, apperror.Auth("stripe webhook secret is not configured")
	}
	evt, err := webhook.ConstructEventWithOptions(req.Body, req.Header.Get(stripeSignatureHeader), s.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, apperror.Wrap(apperror.KindAuth, "invalid stripe signature", err)
	}

	event := &models.WebhookEvent{Provider: models.ProviderStripe, EventType: string(evt.Type)}

	switch event.EventType {
	case stripeEventSessionCompleted, stripeEventAsyncPaymentSuccess, stripeEventAsyncPaymentFailed, stripeEventSessionExpired:
	default:
		event.Outcome = models.OutcomeIgnored
		return event, nil
	}

	if evt.Data == nil {
		return nil, apperror.Validation("stripe event has no data")
	}
	var session stripe.CheckoutSession
	if err := json.Unmarshal(evt.Data.Raw, &session); err != nil {
		return nil, apperror.Validation("invalid checkout session")
	}
	fillFromCheckoutSession(event, &session)

	switch event.EventType {
	case stripeEventSessionCompleted:
		// delayed payment methods complete the session before the money arrives
		if session.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
			event.Outcome = models.OutcomeIgnored
			return event, nil
		}
		event.Outcome = models.OutcomeSuccess
	case stripeEventAsyncPaymentSuccess:
		event.Outcome = models.OutcomeSuccess
	case stripeEventAsyncPaymentFailed:
		event.Outcome = models.OutcomeFailure
		event.Reason = models.ReasonDeclined
	case stripeEventSessionExpired:
		event.Outcome = models.OutcomeFailure
		event.Reason = models.ReasonExpired
	}
	return event, nil
}

func fillFromCheckoutSession(event *models.WebhookEvent, session *stripe.CheckoutSession) {
	event.ProviderRef = session.ID
	event.Amount = session.AmountTotal
	event.Currency = strings.ToUpper(string(session.Currency))
	if id := orderID(session.Metadata["order_id"]); id != nil {
		event.TransactionID = id
	} else {
		event.TransactionID = orderID(session.ClientReferenceID)
	}
}

// CheckStatus retrieves a checkout session
func (s *Stripe) CheckStatus(ctx context.Context, providerRef string) (*models.PaymentStatus, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	session, err := s.api.CheckoutSessions.Get(providerRef, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode == http.StatusNotFound {
			return nil, apperror.NotFound("unknown checkout session")
		}
		return nil, apperror.Provider("stripe is unavailable", err)
	}

	status := &models.PaymentStatus{
		Amount:   session.AmountTotal,
		Currency: strings.ToUpper(string(session.Currency)),
		Status:   models.RemotePending,
	}
	switch {
	case session.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid:
		status.Status = models.RemoteSucceeded
	case session.Status == stripe.CheckoutSessionStatusExpired:
		status.Status = models.RemoteCanceled
	}
	return status, nil
}
