package subscription

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpago/go-mpago/mercadopago"
)

func subscriptionJSON(id string, status Status) string {
	return fmt.Sprintf(`{"id":%q,"status":%q,"payer_id":123,"reason":"Gold tier",
		"auto_recurring":{"frequency":1,"frequency_type":"months","currency_id":"BRL","transaction_amount":29.90}}`,
		id, status)
}

func TestSearchBuilder_Build(t *testing.T) {
	req, err := NewSearchBuilder(SearchOptions{
		Q:          "Gold",
		PayerEmail: "payer@example.com",
		Status:     StatusAuthorized,
		Limit:      10,
		Offset:     20,
	}).Build()
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/preapproval/search", req.Path)
	assert.Empty(t, req.IdempotencyKey, "searches carry no idempotency key")

	q := req.Query
	assert.Equal(t, "Gold", q.Get("q"))
	assert.Equal(t, "payer@example.com", q.Get("payer_email"))
	assert.Equal(t, "authorized", q.Get("status"))
	assert.Equal(t, "10", q.Get("limit"))
	assert.Equal(t, "20", q.Get("offset"))
}

func TestSearchBuilder_RejectsUnknownStatus(t *testing.T) {
	_, err := NewSearchBuilder(SearchOptions{Status: "running"}).Build()

	var verr *mercadopago.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "status", verr.Field)
}

func TestSearchBuilder_FetchAllWalksPages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/preapproval/search", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("limit"))

		var results string
		switch r.URL.Query().Get("offset") {
		case "":
			results = subscriptionJSON("sub-1", StatusAuthorized) + "," + subscriptionJSON("sub-2", StatusPaused)
		default:
			results = subscriptionJSON("sub-3", StatusAuthorized)
		}
		fmt.Fprintf(w, `{"paging":{"total":3,"limit":2,"offset":0},"results":[%s]}`, results)
	}))
	defer srv.Close()

	all, err := NewSearchBuilder(SearchOptions{Limit: 2}).
		FetchAll(context.Background(), newTestClient(t, srv.URL))
	require.NoError(t, err)

	require.Len(t, all, 3)
	assert.Equal(t, "sub-1", all[0].ID)
	assert.Equal(t, "sub-3", all[2].ID)
}

func TestUpdateBuilder_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		builder UpdateBuilder
		status  string
	}{
		{"pause", NewPauseBuilder("sub-1"), "paused"},
		{"resume", NewResumeBuilder("sub-1"), "authorized"},
		{"cancel", NewCancelBuilder("sub-1"), "cancelled"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req, err := tc.builder.Build()
			require.NoError(t, err)

			assert.Equal(t, http.MethodPut, req.Method)
			assert.Equal(t, "/preapproval/sub-1", req.Path)
			assert.Empty(t, req.IdempotencyKey, "updates carry no idempotency key")

			var body map[string]any
			require.NoError(t, json.Unmarshal(req.Body, &body))
			assert.Equal(t, tc.status, body["status"])
		})
	}
}

func TestUpdateBuilder_Send(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/preapproval/sub-1", r.URL.Path)
		fmt.Fprint(w, subscriptionJSON("sub-1", StatusCancelled))
	}))
	defer srv.Close()

	sub, err := NewCancelBuilder("sub-1").Send(context.Background(), newTestClient(t, srv.URL))
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, sub.Status)
}

func TestGetBuilder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/preapproval/sub-1", r.URL.Path)
		fmt.Fprint(w, subscriptionJSON("sub-1", StatusAuthorized))
	}))
	defer srv.Close()

	sub, err := NewGetBuilder("sub-1").Send(context.Background(), newTestClient(t, srv.URL))
	require.NoError(t, err)
	assert.Equal(t, StatusAuthorized, sub.Status)

	_, err = NewGetBuilder("").Build()
	var verr *mercadopago.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "id", verr.Field)
}
