package subscription

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

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

func validRecurring() AutoRecurring {
	return AutoRecurring{
		Frequency:         1,
		FrequencyType:     FrequencyMonths,
		CurrencyID:        mercadopago.CurrencyBRL,
		TransactionAmount: mercadopago.NewAmount(2990, -2),
	}
}

func TestCreateOptionsValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*CreateOptions)
		wantField string
	}{
		{
			name:   "valid without plan",
			mutate: func(o *CreateOptions) {},
		},
		{
			name: "valid with plan",
			mutate: func(o *CreateOptions) {
				o.AutoRecurring = nil
				o.PreapprovalPlanID = "plan-1"
				o.CardTokenID = "tok-1"
			},
		},
		{
			name:      "missing payer email",
			mutate:    func(o *CreateOptions) { o.PayerEmail = "" },
			wantField: "payer_email",
		},
		{
			name:      "missing back url",
			mutate:    func(o *CreateOptions) { o.BackURL = "" },
			wantField: "back_url",
		},
		{
			name: "neither recurrence nor plan",
			mutate: func(o *CreateOptions) {
				o.AutoRecurring = nil
			},
			wantField: "auto_recurring",
		},
		{
			name: "both recurrence and plan",
			mutate: func(o *CreateOptions) {
				o.PreapprovalPlanID = "plan-1"
				o.CardTokenID = "tok-1"
			},
			wantField: "preapproval_plan_id",
		},
		{
			name: "plan without card token",
			mutate: func(o *CreateOptions) {
				o.AutoRecurring = nil
				o.PreapprovalPlanID = "plan-1"
			},
			wantField: "card_token_id",
		},
		{
			name: "zero frequency",
			mutate: func(o *CreateOptions) {
				o.AutoRecurring.Frequency = 0
			},
			wantField: "auto_recurring.frequency",
		},
		{
			name: "bad frequency type",
			mutate: func(o *CreateOptions) {
				o.AutoRecurring.FrequencyType = "weeks"
			},
			wantField: "auto_recurring.frequency_type",
		},
		{
			name: "zero amount",
			mutate: func(o *CreateOptions) {
				o.AutoRecurring.TransactionAmount = mercadopago.NewAmount(0, 0)
			},
			wantField: "auto_recurring.transaction_amount",
		},
		{
			name: "decimals on zero-scale currency",
			mutate: func(o *CreateOptions) {
				o.AutoRecurring.CurrencyID = mercadopago.CurrencyCLP
			},
			wantField: "auto_recurring.transaction_amount",
		},
		{
			name: "free trial with bad frequency type",
			mutate: func(o *CreateOptions) {
				o.AutoRecurring.FreeTrial = &FreeTrial{Frequency: 7, FrequencyType: "weeks"}
			},
			wantField: "auto_recurring.free_trial.frequency_type",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := validRecurring()
			opts := CreateOptions{
				PayerEmail:    "payer@example.com",
				BackURL:       "https://example.com/back",
				AutoRecurring: &rec,
			}
			tc.mutate(&opts)

			err := opts.validate()
			if tc.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verr *mercadopago.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.wantField, verr.Field)
		})
	}
}

func TestCreateWithoutPlan_Build(t *testing.T) {
	req, err := CreateWithoutPlan("payer@example.com", "https://example.com/back", validRecurring()).
		SetReason("Gold tier").
		Build()
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/preapproval", req.Path)
	assert.NotEmpty(t, req.IdempotencyKey)

	var body map[string]any
	require.NoError(t, json.Unmarshal(req.Body, &body))
	assert.Equal(t, "payer@example.com", body["payer_email"])
	assert.Equal(t, "pending", body["status"])
	assert.Equal(t, "Gold tier", body["reason"])

	recurring, ok := body["auto_recurring"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 29.90, recurring["transaction_amount"], "amount travels as a bare number")
	assert.NotContains(t, body, "preapproval_plan_id")
}

func TestCreateWithPlan_Build(t *testing.T) {
	req, err := CreateWithPlan("payer@example.com", "https://example.com/back", "plan-1", "tok-1").Build()
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(req.Body, &body))
	assert.Equal(t, "plan-1", body["preapproval_plan_id"])
	assert.Equal(t, "tok-1", body["card_token_id"])
	assert.Equal(t, "authorized", body["status"])
	assert.NotContains(t, body, "auto_recurring")
}

func TestCreateBuilder_Send(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/preapproval", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Idempotency-Key"))

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{
			"id": "2c938084726fca480172750000000000",
			"status": "pending",
			"init_point": "https://www.mercadopago.com.br/subscriptions/checkout?preapproval_id=2c93",
			"payer_id": 123,
			"back_url": "https://example.com/back",
			"auto_recurring": {
				"frequency": 1,
				"frequency_type": "months",
				"currency_id": "BRL",
				"transaction_amount": 29.90
			}
		}`))
	}))
	defer srv.Close()

	sub, err := CreateWithoutPlan("payer@example.com", "https://example.com/back", validRecurring()).
		Send(context.Background(), newTestClient(t, srv.URL))
	require.NoError(t, err)

	assert.Equal(t, "2c938084726fca480172750000000000", sub.ID)
	assert.Equal(t, StatusPending, sub.Status)
	assert.Equal(t, "29.9", sub.AutoRecurring.TransactionAmount.String())
	assert.Contains(t, sub.InitPoint, "preapproval_id")
}

func TestCreateBuilder_ValidationStopsBeforeNetwork(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	_, err := NewCreateBuilder(CreateOptions{BackURL: "https://example.com/back"}).
		Send(context.Background(), newTestClient(t, srv.URL))

	var verr *mercadopago.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "payer_email", verr.Field)
	assert.Zero(t, calls, "invalid subscriptions never reach the wire")
}

func TestCreateBuilder_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Cannot infer the payment method","error":"bad_request","status":400}`))
	}))
	defer srv.Close()

	_, err := CreateWithoutPlan("payer@example.com", "https://example.com/back", validRecurring()).
		Send(context.Background(), newTestClient(t, srv.URL))

	var apiErr *mercadopago.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "bad_request", apiErr.Code)
}
