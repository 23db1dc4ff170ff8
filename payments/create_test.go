package payments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpago/go-mpago/mercadopago"
)

func newTestClient(t *testing.T, url string) *mercadopago.Client {
	t.Helper()
	c, err := mercadopago.NewBuilder("TEST-TOKEN").BaseURL(url).Build()
	require.NoError(t, err)
	return c
}

func TestCreateBuilder_Build(t *testing.T) {
	req, err := NewCreateBuilder(validOptions()).Build()
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/v1/payments", req.Path)
	assert.NotEmpty(t, req.IdempotencyKey, "payment creation must carry an idempotency key")

	var body map[string]any
	require.NoError(t, json.Unmarshal(req.Body, &body))
	assert.Equal(t, "pix", body["payment_method_id"])
	assert.Equal(t, float64(10), body["transaction_amount"])
	assert.Equal(t, float64(1), body["installments"], "default installments applied")
	assert.NotContains(t, body, "token", "unset optional fields stay off the wire")
}

func TestCreateBuilder_DistinctIdempotencyKeys(t *testing.T) {
	first, err := NewCreateBuilder(validOptions()).Build()
	require.NoError(t, err)
	second, err := NewCreateBuilder(validOptions()).Build()
	require.NoError(t, err)

	assert.NotEqual(t, first.IdempotencyKey, second.IdempotencyKey)
}

func TestCreateBuilder_ExtraPassthrough(t *testing.T) {
	opts := validOptions()
	opts.Extra = map[string]any{
		"three_d_secure_mode": "optional",
		"description":         "must not override the typed field",
	}

	req, err := NewCreateBuilder(opts).Build()
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(req.Body, &body))
	assert.Equal(t, "optional", body["three_d_secure_mode"])
	assert.Equal(t, "Test product", body["description"])
}

func TestCreateBuilder_Items(t *testing.T) {
	price := mercadopago.NewAmount(1000, -2)
	b := NewCreateBuilder(validOptions()).
		AddItems(ProductItem{ID: "1", Title: "First", Quantity: "1", UnitPrice: &price})
	b = b.SetItems(ProductItem{ID: "2", Title: "Second", Quantity: "1", UnitPrice: &price})

	req, err := b.Build()
	require.NoError(t, err)

	var body struct {
		AdditionalInfo AdditionalInfo `json:"additional_info"`
	}
	require.NoError(t, json.Unmarshal(req.Body, &body))
	require.Len(t, body.AdditionalInfo.Items, 1, "SetItems replaces previous items")
	assert.Equal(t, "2", body.AdditionalInfo.Items[0].ID)
}

func TestCreateBuilder_Send(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/payments", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 100.5, body["transaction_amount"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{
			"id": 20359978,
			"date_created": "2024-01-01T10:00:00.000-04:00",
			"date_of_expiration": "2024-01-01T00:00:00Z",
			"operation_type": "regular_payment",
			"payment_method_id": "pix",
			"payment_type_id": "bank_transfer",
			"status": "pending",
			"status_detail": "pending_waiting_transfer",
			"currency_id": "BRL",
			"live_mode": false,
			"collector_id": 123456,
			"payer": {"email": "buyer@example.com"},
			"transaction_amount": 100.5,
			"taxes_amount": 0,
			"shipping_amount": 0,
			"installments": 1,
			"captured": false,
			"binary_mode": false,
			"processing_mode": "aggregator",
			"point_of_interaction": {
				"type": "bank_transfer",
				"transaction_data": {"qr_code": "00020126...", "ticket_url": "https://example.com/pix"}
			}
		}`))
	}))
	defer srv.Close()

	opts := validOptions()
	opts.TransactionAmount = mercadopago.NewAmount(10050, -2)
	opts.DateOfExpiration = "2024-01-01T00:00:00Z"

	payment, err := NewCreateBuilder(opts).Send(context.Background(), newTestClient(t, srv.URL))
	require.NoError(t, err)

	assert.Equal(t, int64(20359978), payment.ID)
	assert.Equal(t, StatusPending, payment.Status)
	assert.Equal(t, "100.5", payment.TransactionAmount.String())
	assert.Equal(t, mercadopago.CurrencyBRL, payment.CurrencyID)
	require.NotNil(t, payment.PointOfInteraction)
	require.NotNil(t, payment.PointOfInteraction.TransactionData)
	assert.NotEmpty(t, payment.PointOfInteraction.TransactionData.QRCode)
}

func TestCreateBuilder_ValidationStopsBeforeNetwork(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	opts := validOptions()
	opts.TransactionAmount = mercadopago.AmountFromFloat(-5)

	_, err := NewCreateBuilder(opts).Send(context.Background(), newTestClient(t, srv.URL))

	var verr *mercadopago.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "transaction_amount", verr.Field)
	assert.Equal(t, int32(0), calls.Load(), "no network call may happen on validation failure")
}

func TestCreateBuilder_APIErrorPropagated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid access token","error":"invalid_token","status":401}`))
	}))
	defer srv.Close()

	_, err := NewCreateBuilder(validOptions()).Send(context.Background(), newTestClient(t, srv.URL))

	var apiErr *mercadopago.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "invalid_token", apiErr.Code)
}

func TestCreateBuilder_TimeoutNeverYieldsPartialSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c, err := mercadopago.NewBuilder("TEST-TOKEN").
		BaseURL(srv.URL).
		HTTPClient(&http.Client{Timeout: 20 * time.Millisecond}).
		Build()
	require.NoError(t, err)

	payment, err := NewCreateBuilder(validOptions()).Send(context.Background(), c)

	var te *mercadopago.TransportError
	require.ErrorAs(t, err, &te)
	assert.True(t, te.Timeout)
	assert.Nil(t, payment)
}

func TestCreateBuilder_MalformedSuccessDetected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`<html>totally not json</html>`))
	}))
	defer srv.Close()

	_, err := NewCreateBuilder(validOptions()).Send(context.Background(), newTestClient(t, srv.URL))

	var malErr *mercadopago.MalformedSuccessError
	require.True(t, errors.As(err, &malErr), "schema drift must surface, got %v", err)
}
