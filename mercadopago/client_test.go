package mercadopago

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_MissingToken(t *testing.T) {
	_, err := NewBuilder("").Build()
	if !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}

func TestBuild_Defaults(t *testing.T) {
	c, err := NewBuilder("TEST-TOKEN").Build()
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.BaseURL())
}

func TestBuild_TrimsTrailingSlash(t *testing.T) {
	c, err := NewBuilder("TEST-TOKEN").BaseURL("http://localhost:8080/").Build()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", c.BaseURL())
}

func TestCheckCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/payment_methods" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer TEST-TOKEN" {
			t.Errorf("unexpected Authorization header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"pix"}]`))
	}))
	defer srv.Close()

	c, err := NewBuilder("TEST-TOKEN").BaseURL(srv.URL).Build()
	require.NoError(t, err)
	require.NoError(t, c.CheckCredentials(context.Background()))
}

func TestCheckCredentials_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid access token","error":"invalid_token","status":401}`))
	}))
	defer srv.Close()

	c, err := NewBuilder("BAD-TOKEN").BaseURL(srv.URL).Build()
	require.NoError(t, err)

	err = c.CheckCredentials(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Status)
	assert.Equal(t, "invalid_token", apiErr.Code)
	assert.True(t, apiErr.IsUnauthorized())
}
