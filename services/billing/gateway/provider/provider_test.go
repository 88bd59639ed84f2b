package provider

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76/webhook"
	"github.com/thqlabel/thqlabel/internal/pkg/apperror"
	httpclient "github.com/thqlabel/thqlabel/internal/pkg/http"
	"github.com/thqlabel/thqlabel/internal/pkg/logger"
	"github.com/thqlabel/thqlabel/internal/pkg/models"
	"github.com/thqlabel/thqlabel/services/billing"
)

func newTestClient() *httpclient.EnhancedClient {
	return httpclient.NewEnhancedClient(logger.NewNopLogger(), 2*time.Second)
}

func sessionRequest(method, currency string, amount int64) models.SessionRequest {
	return models.SessionRequest{
		TransactionID: uuid.New(),
		UserID:        uuid.New(),
		Amount:        amount,
		Currency:      currency,
		Method:        method,
		Description:   "Balance top-up",
	}
}

func TestYooKassa_CreateSession(t *testing.T) {
	req := sessionRequest(models.MethodSBP, "RUB", 15000)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v3/payments", r.URL.Path)
		assert.Equal(t, req.TransactionID.String(), r.Header.Get("Idempotence-Key"))
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "shop-1", user)
		assert.Equal(t, "live_secret", pass)

		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]interface{}{"value": "150.00", "currency": "RUB"}, body["amount"])
		assert.Equal(t, map[string]interface{}{"type": "sbp"}, body["payment_method_data"])
		assert.Equal(t, req.TransactionID.String(), body["metadata"].(map[string]interface{})["order_id"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"2c8f-yk","status":"pending","amount":{"value":"150.00","currency":"RUB"},
			"confirmation":{"type":"redirect","confirmation_url":"https://yoomoney.ru/checkout/2c8f-yk"}}`)
	}))
	defer server.Close()

	yk := NewYooKassa(models.YooKassaConfig{BaseURL: server.URL + "/v3", ShopID: "shop-1", SecretKey: "live_secret"},
		newTestClient(), "https://portal.test")

	session, err := yk.CreateSession(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "2c8f-yk", session.ProviderRef)
	assert.Equal(t, "https://yoomoney.ru/checkout/2c8f-yk", session.RedirectURL)
}

func TestYooKassa_CreateSession_TestMode(t *testing.T) {
	yk := NewYooKassa(models.YooKassaConfig{ShopID: "shop-1", SecretKey: "test_****"}, newTestClient(), "https://portal.test/")
	req := sessionRequest(models.MethodYooKassa, "RUB", 10000)

	session, err := yk.CreateSession(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "test_"+req.TransactionID.String(), session.ProviderRef)
	assert.True(t, strings.HasPrefix(session.RedirectURL, "https://portal.test/test-payment?"))

	status, err := yk.CheckStatus(context.Background(), session.ProviderRef)
	require.NoError(t, err)
	assert.Equal(t, models.RemotePending, status.Status)
}

func TestYooKassa_CreateSession_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"type":"error","code":"invalid_request"}`)
	}))
	defer server.Close()

	yk := NewYooKassa(models.YooKassaConfig{BaseURL: server.URL, ShopID: "s", SecretKey: "k"}, newTestClient(), "")

	_, err := yk.CreateSession(context.Background(), sessionRequest(models.MethodYooKassa, "RUB", 10000))

	assert.Equal(t, apperror.KindProvider, apperror.KindOf(err))
}

func yooKassaAPI(t *testing.T, payments map[string]string, refunds map[string]string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var table map[string]string
		var id string
		switch {
		case strings.HasPrefix(r.URL.Path, "/payments/"):
			table, id = payments, strings.TrimPrefix(r.URL.Path, "/payments/")
		case strings.HasPrefix(r.URL.Path, "/refunds/"):
			table, id = refunds, strings.TrimPrefix(r.URL.Path, "/refunds/")
		}
		body, ok := table[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}))
}

func TestYooKassa_ParseWebhook(t *testing.T) {
	txID := uuid.New()
	server := yooKassaAPI(t, map[string]string{
		"pay-ok": fmt.Sprintf(`{"id":"pay-ok","status":"succeeded","paid":true,
			"amount":{"value":"500.00","currency":"RUB"},"metadata":{"order_id":"%s"}}`, txID),
		"pay-cancel": `{"id":"pay-cancel","status":"canceled","amount":{"value":"500.00","currency":"RUB"},"metadata":{}}`,
	}, map[string]string{
		"rf-1": `{"id":"rf-1","payment_id":"pay-ok","status":"succeeded","amount":{"value":"200.00","currency":"RUB"}}`,
	})
	defer server.Close()

	yk := NewYooKassa(models.YooKassaConfig{BaseURL: server.URL, ShopID: "s", SecretKey: "k"}, newTestClient(), "")
	ctx := context.Background()
	notify := func(event, id string) models.WebhookRequest {
		return models.WebhookRequest{
			Provider: models.ProviderYooKassa,
			Body:     []byte(fmt.Sprintf(`{"type":"notification","event":"%s","object":{"id":"%s","status":"forged"}}`, event, id)),
		}
	}

	t.Run("payment succeeded", func(t *testing.T) {
		event, err := yk.ParseWebhook(ctx, notify("payment.succeeded", "pay-ok"))
		require.NoError(t, err)
		assert.Equal(t, models.OutcomeSuccess, event.Outcome)
		assert.Equal(t, "pay-ok", event.ProviderRef)
		assert.Equal(t, int64(50000), event.Amount)
		require.NotNil(t, event.TransactionID)
		assert.Equal(t, txID, *event.TransactionID)
	})

	t.Run("payment canceled", func(t *testing.T) {
		event, err := yk.ParseWebhook(ctx, notify("payment.canceled", "pay-cancel"))
		require.NoError(t, err)
		assert.Equal(t, models.OutcomeFailure, event.Outcome)
		assert.Equal(t, models.ReasonCanceled, event.Reason)
		assert.Nil(t, event.TransactionID)
	})

	t.Run("refund succeeded", func(t *testing.T) {
		event, err := yk.ParseWebhook(ctx, notify("refund.succeeded", "rf-1"))
		require.NoError(t, err)
		assert.Equal(t, models.OutcomeReversal, event.Outcome)
		assert.Equal(t, "pay-ok", event.ProviderRef)
		assert.Equal(t, "rf-1", event.ReversalRef)
		assert.Equal(t, int64(20000), event.Amount)
	})

	t.Run("event contradicts fetched state", func(t *testing.T) {
		_, err := yk.ParseWebhook(ctx, notify("payment.succeeded", "pay-cancel"))
		assert.Equal(t, apperror.KindAuth, apperror.KindOf(err))
	})

	t.Run("unknown payment", func(t *testing.T) {
		_, err := yk.ParseWebhook(ctx, notify("payment.succeeded", "pay-missing"))
		assert.Equal(t, apperror.KindAuth, apperror.KindOf(err))
	})

	t.Run("unhandled event", func(t *testing.T) {
		event, err := yk.ParseWebhook(ctx, notify("payment.waiting_for_capture", "pay-ok"))
		require.NoError(t, err)
		assert.Equal(t, models.OutcomeIgnored, event.Outcome)
	})

	t.Run("malformed body", func(t *testing.T) {
		_, err := yk.ParseWebhook(ctx, models.WebhookRequest{Body: []byte("not json")})
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("check status", func(t *testing.T) {
		status, err := yk.CheckStatus(ctx, "pay-ok")
		require.NoError(t, err)
		assert.Equal(t, models.RemoteSucceeded, status.Status)
		assert.Equal(t, int64(50000), status.Amount)
	})
}

func TestCryptoCloud_CreateSession(t *testing.T) {
	req := sessionRequest(models.MethodCrypto, "USD", 2500)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/invoice/create", r.URL.Path)
		assert.Equal(t, "Token api-key", r.Header.Get("Authorization"))
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "25.00", body["amount"])
		assert.Equal(t, req.TransactionID.String(), body["order_id"])
		_, _ = io.WriteString(w, `{"status":"success","result":{"uuid":"INV-ABC123","link":"https://pay.cryptocloud.plus/ABC123"}}`)
	}))
	defer server.Close()

	cc := NewCryptoCloud(models.CryptoCloudConfig{BaseURL: server.URL + "/v2", APIKey: "api-key", ShopID: "shop"}, newTestClient())

	session, err := cc.CreateSession(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "INV-ABC123", session.ProviderRef)
	assert.Equal(t, "https://pay.cryptocloud.plus/ABC123", session.RedirectURL)
}

func TestCryptoCloud_ParseWebhook(t *testing.T) {
	cc := NewCryptoCloud(models.CryptoCloudConfig{SecretKey: "cc-secret", Currency: "USD"}, nil)
	txID := uuid.New()
	body := []byte(fmt.Sprintf(`{"status":"success","invoice_id":"ABC123","order_id":"%s","amount_in_fiat":"25.00"}`, txID))

	t.Run("valid signature", func(t *testing.T) {
		header := http.Header{}
		header.Set("Hmac", cc.Sign(body))

		event, err := cc.ParseWebhook(context.Background(), models.WebhookRequest{Header: header, Body: body})

		require.NoError(t, err)
		assert.Equal(t, models.OutcomeSuccess, event.Outcome)
		assert.Equal(t, "INV-ABC123", event.ProviderRef)
		assert.Equal(t, int64(2500), event.Amount)
		assert.Equal(t, "USD", event.Currency)
		assert.Equal(t, txID, *event.TransactionID)
	})

	t.Run("postback currency", func(t *testing.T) {
		eur := []byte(fmt.Sprintf(`{"status":"success","invoice_id":"ABC124","order_id":"%s","amount_in_fiat":"25.00","currency":"eur"}`, txID))
		header := http.Header{}
		header.Set("Hmac", cc.Sign(eur))

		event, err := cc.ParseWebhook(context.Background(), models.WebhookRequest{Header: header, Body: eur})

		require.NoError(t, err)
		assert.Equal(t, "EUR", event.Currency)
		assert.Equal(t, int64(2500), event.Amount)
	})

	t.Run("tampered body", func(t *testing.T) {
		header := http.Header{}
		header.Set("Hmac", cc.Sign(body))
		tampered := []byte(strings.Replace(string(body), "25.00", "2500.00", 1))

		_, err := cc.ParseWebhook(context.Background(), models.WebhookRequest{Header: header, Body: tampered})

		assert.Equal(t, apperror.KindAuth, apperror.KindOf(err))
	})

	t.Run("missing header", func(t *testing.T) {
		_, err := cc.ParseWebhook(context.Background(), models.WebhookRequest{Header: http.Header{}, Body: body})
		assert.Equal(t, apperror.KindAuth, apperror.KindOf(err))
	})

	t.Run("status checks unsupported", func(t *testing.T) {
		_, err := cc.CheckStatus(context.Background(), "INV-ABC123")
		assert.ErrorIs(t, err, billing.ErrStatusUnsupported)
	})
}

func liqPayForm(l *LiqPay, payload map[string]interface{}) []byte {
	raw, _ := json.Marshal(payload)
	data := base64.StdEncoding.EncodeToString(raw)
	form := url.Values{}
	form.Set("data", data)
	form.Set("signature", l.Sign(data))
	return []byte(form.Encode())
}

func TestLiqPay_CreateSession(t *testing.T) {
	lp := NewLiqPay(models.LiqPayConfig{PublicKey: "pub", PrivateKey: "priv", Sandbox: true}, "https://portal.test")
	req := sessionRequest(models.MethodLiqPay, "UAH", 12050)

	session, err := lp.CreateSession(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, req.TransactionID.String(), session.ProviderRef)

	u, err := url.Parse(session.RedirectURL)
	require.NoError(t, err)
	data := u.Query().Get("data")
	assert.Equal(t, lp.Sign(data), u.Query().Get("signature"))

	raw, err := base64.StdEncoding.DecodeString(data)
	require.NoError(t, err)
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, "120.50", payload["amount"])
	assert.Equal(t, "UAH", payload["currency"])
	assert.Equal(t, float64(1), payload["sandbox"])
	assert.Equal(t, "https://portal.test/webhooks/payments/liqpay", payload["server_url"])
}

func TestLiqPay_ParseWebhook(t *testing.T) {
	lp := NewLiqPay(models.LiqPayConfig{PublicKey: "pub", PrivateKey: "priv"}, "")
	txID := uuid.New()

	tests := []struct {
		name    string
		status  string
		outcome models.WebhookOutcome
	}{
		{"success", "success", models.OutcomeSuccess},
		{"sandbox", "sandbox", models.OutcomeSuccess},
		{"failure", "failure", models.OutcomeFailure},
		{"reversed", "reversed", models.OutcomeReversal},
		{"processing", "processing", models.OutcomeIgnored},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := liqPayForm(lp, map[string]interface{}{
				"status":     tt.status,
				"order_id":   txID.String(),
				"payment_id": 987654,
				"amount":     120.5,
				"currency":   "UAH",
			})

			event, err := lp.ParseWebhook(context.Background(), models.WebhookRequest{Body: body})

			require.NoError(t, err)
			assert.Equal(t, tt.outcome, event.Outcome)
			assert.Equal(t, int64(12050), event.Amount)
			assert.Equal(t, txID, *event.TransactionID)
			if tt.outcome == models.OutcomeReversal {
				assert.Equal(t, "reversed_987654", event.ReversalRef)
			}
		})
	}

	t.Run("bad signature", func(t *testing.T) {
		other := NewLiqPay(models.LiqPayConfig{PrivateKey: "other"}, "")
		body := liqPayForm(other, map[string]interface{}{"status": "success", "order_id": txID.String()})

		_, err := lp.ParseWebhook(context.Background(), models.WebhookRequest{Body: body})

		assert.Equal(t, apperror.KindAuth, apperror.KindOf(err))
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := lp.ParseWebhook(context.Background(), models.WebhookRequest{Body: []byte("data=abc")})
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})
}

func stripeTestServer(t *testing.T, session string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v1/checkout/sessions":
			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "payment", r.PostForm.Get("mode"))
			assert.Equal(t, "usd", r.PostForm.Get("line_items[0][price_data][currency]"))
			assert.Equal(t, "1000", r.PostForm.Get("line_items[0][price_data][unit_amount]"))
			assert.NotEmpty(t, r.Header.Get("Idempotency-Key"))
			_, _ = io.WriteString(w, session)
		case r.Method == http.MethodGet && r.URL.Path == "/v1/checkout/sessions/cs_test_1":
			_, _ = io.WriteString(w, session)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"error":{"type":"invalid_request_error","message":"No such checkout session"}}`)
		}
	}))
}

func TestStripe_CreateSessionAndCheckStatus(t *testing.T) {
	server := stripeTestServer(t, `{"id":"cs_test_1","object":"checkout.session","url":"https://checkout.stripe.com/c/pay/cs_test_1",
		"status":"complete","payment_status":"paid","amount_total":1000,"currency":"usd"}`)
	defer server.Close()

	st := NewStripe(models.StripeConfig{SecretKey: "sk_test_123", BaseURL: server.URL}, server.Client(), nil, "https://portal.test")

	session, err := st.CreateSession(context.Background(), sessionRequest(models.MethodCard, "USD", 1000))
	require.NoError(t, err)
	assert.Equal(t, "cs_test_1", session.ProviderRef)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_1", session.RedirectURL)

	status, err := st.CheckStatus(context.Background(), "cs_test_1")
	require.NoError(t, err)
	assert.Equal(t, models.RemoteSucceeded, status.Status)
	assert.Equal(t, int64(1000), status.Amount)
	assert.Equal(t, "USD", status.Currency)

	_, err = st.CheckStatus(context.Background(), "cs_missing")
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func signedStripeRequest(secret, payload string) models.WebhookRequest {
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   []byte(payload),
		Secret:    secret,
		Timestamp: time.Now(),
	})
	header := http.Header{}
	header.Set("Stripe-Signature", signed.Header)
	return models.WebhookRequest{Provider: models.ProviderStripe, Header: header, Body: signed.Payload}
}

func TestStripe_ParseWebhook(t *testing.T) {
	st := NewStripe(models.StripeConfig{SecretKey: "sk_test", WebhookSecret: "whsec_test"}, http.DefaultClient, nil, "")
	txID := uuid.New()
	eventJSON := func(eventType, paymentStatus string) string {
		return fmt.Sprintf(`{"id":"evt_1","object":"event","type":"%s","data":{"object":{
			"id":"cs_test_1","object":"checkout.session","payment_status":"%s","status":"complete",
			"amount_total":1000,"currency":"usd","metadata":{"order_id":"%s"}}}}`, eventType, paymentStatus, txID)
	}

	t.Run("completed and paid", func(t *testing.T) {
		event, err := st.ParseWebhook(context.Background(), signedStripeRequest("whsec_test", eventJSON("checkout.session.completed", "paid")))
		require.NoError(t, err)
		assert.Equal(t, models.OutcomeSuccess, event.Outcome)
		assert.Equal(t, "cs_test_1", event.ProviderRef)
		assert.Equal(t, int64(1000), event.Amount)
		assert.Equal(t, "USD", event.Currency)
		assert.Equal(t, txID, *event.TransactionID)
	})

	t.Run("completed but unpaid", func(t *testing.T) {
		event, err := st.ParseWebhook(context.Background(), signedStripeRequest("whsec_test", eventJSON("checkout.session.completed", "unpaid")))
		require.NoError(t, err)
		assert.Equal(t, models.OutcomeIgnored, event.Outcome)
	})

	t.Run("expired", func(t *testing.T) {
		event, err := st.ParseWebhook(context.Background(), signedStripeRequest("whsec_test", eventJSON("checkout.session.expired", "unpaid")))
		require.NoError(t, err)
		assert.Equal(t, models.OutcomeFailure, event.Outcome)
		assert.Equal(t, models.ReasonExpired, event.Reason)
	})

	t.Run("other event", func(t *testing.T) {
		event, err := st.ParseWebhook(context.Background(), signedStripeRequest("whsec_test", `{"id":"evt_2","object":"event","type":"customer.created","data":{"object":{}}}`))
		require.NoError(t, err)
		assert.Equal(t, models.OutcomeIgnored, event.Outcome)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := st.ParseWebhook(context.Background(), signedStripeRequest("whsec_other", eventJSON("checkout.session.completed", "paid")))
		assert.Equal(t, apperror.KindAuth, apperror.KindOf(err))
	})
}
