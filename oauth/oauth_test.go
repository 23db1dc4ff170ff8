package oauth

import (
	"context"
	"encoding/json"
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

const accessJSON = `{
	"access_token": "APP_USR-4934588586838432-XXXXXXXX-241983636",
	"token_type": "bearer",
	"expires_in": 15552000,
	"scope": "offline_access read write",
	"user_id": 241983636,
	"refresh_token": "TG-XXXXXXXX-241983636",
	"public_key": "APP_USR-d0a26210-XXXXXXXX-479f0400869e",
	"live_mode": true
}`

func TestCreateAccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/oauth/token", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"), "token exchange must not carry the bearer header")

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "authorization_code", body["grant_type"])
		assert.Equal(t, "8971239781", body["client_id"])
		assert.Equal(t, "TG-817289123-241983636", body["code"])
		assert.Equal(t, "https://example.com/mercadopago/", body["redirect_uri"])

		w.Write([]byte(accessJSON))
	}))
	defer srv.Close()

	access, err := CreateAccess(context.Background(), newTestClient(t, srv.URL),
		"8971239781", "RcHGkCg2VTL6cxrxzBSDQydT", "TG-817289123-241983636", "https://example.com/mercadopago/")
	require.NoError(t, err)

	assert.Equal(t, "bearer", access.TokenType)
	assert.Equal(t, int64(15552000), access.ExpiresIn)
	assert.Equal(t, int64(241983636), access.UserID)
	assert.True(t, access.LiveMode)
}

func TestRefreshAccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "refresh_token", body["grant_type"])
		assert.Equal(t, "TG-78293722-241983636", body["refresh_token"])
		assert.NotContains(t, body, "code")

		w.Write([]byte(accessJSON))
	}))
	defer srv.Close()

	access, err := RefreshAccess(context.Background(), newTestClient(t, srv.URL),
		"8971239781", "RcHGkCg2VTL6cxrxzBSDQydT", "TG-78293722-241983636")
	require.NoError(t, err)
	assert.Equal(t, "TG-XXXXXXXX-241983636", access.RefreshToken)
}

func TestCreateAccess_Validation(t *testing.T) {
	_, err := CreateAccess(context.Background(), nil, "", "secret", "code", "uri")

	var verr *mercadopago.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "client_id", verr.Field)
}

func TestRefreshAccess_InvalidGrant(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"invalid refresh token","error":"invalid_grant","status":400}`))
	}))
	defer srv.Close()

	_, err := RefreshAccess(context.Background(), newTestClient(t, srv.URL),
		"8971239781", "RcHGkCg2VTL6cxrxzBSDQydT", "stale")

	var apiErr *mercadopago.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "invalid_grant", apiErr.Code)
}
