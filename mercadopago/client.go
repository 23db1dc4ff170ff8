package mercadopago

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the production MercadoPago API root.
const DefaultBaseURL = "https://api.mercadopago.com"

const defaultTimeout = 30 * time.Second

// Client holds the credentials and the long-lived HTTP connection pool
// shared by every operation. It is immutable after Build and safe for
// concurrent use.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
	logger      zerolog.Logger
}

// ClientBuilder assembles a Client. Zero-config usage:
//
//	client, err := mercadopago.NewBuilder(token).Build()
type ClientBuilder struct {
	accessToken string
	baseURL     string
	httpClient  *http.Client
	logger      zerolog.Logger
}

// NewBuilder starts a builder with the production base URL.
func NewBuilder(accessToken string) *ClientBuilder {
	return &ClientBuilder{
		accessToken: accessToken,
		baseURL:     DefaultBaseURL,
		logger:      zerolog.Nop(),
	}
}

// BaseURL overrides the API root, typically for sandbox or test servers.
func (b *ClientBuilder) BaseURL(url string) *ClientBuilder {
	b.baseURL = strings.TrimRight(url, "/")
	return b
}

// HTTPClient replaces the default *http.Client. The client is shared
// across all requests; pass one with the desired timeout and transport.
func (b *ClientBuilder) HTTPClient(h *http.Client) *ClientBuilder {
	b.httpClient = h
	return b
}

// Logger attaches a zerolog logger. Disabled by default.
func (b *ClientBuilder) Logger(l zerolog.Logger) *ClientBuilder {
	b.logger = l
	return b
}

// Build validates the builder and returns an immutable Client.
func (b *ClientBuilder) Build() (*Client, error) {
	if b.accessToken == "" {
		return nil, ErrMissingToken
	}
	h := b.httpClient
	if h == nil {
		h = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL:     b.baseURL,
		accessToken: b.accessToken,
		httpClient:  h,
		logger:      b.logger,
	}, nil
}

// BaseURL returns the API root the client targets.
func (c *Client) BaseURL() string { return c.baseURL }

// CheckCredentials verifies the access token by listing payment methods.
// Returns nil when the token is accepted, a typed error otherwise.
func (c *Client) CheckCredentials(ctx context.Context) error {
	req := NewRequest("mercadopago.check_credentials", http.MethodGet, "/v1/payment_methods")
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	return Resolve(resp, nil)
}
