// Package oauth exchanges authorization codes and refresh tokens for
// MercadoPago access tokens.
//
// Token requests go to POST /oauth/token without the bearer header: the
// caller is authenticating with the application's client credentials,
// not with an access token.
package oauth

import (
	"context"
	"net/http"

	"github.com/mpago/go-mpago/mercadopago"
)

// AccessResponse is the body returned by /oauth/token. ExpiresIn is in
// seconds and defaults to 180 days on MercadoPago's side.
type AccessResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	Scope        string `json:"scope"`
	UserID       int64  `json:"user_id"`
	RefreshToken string `json:"refresh_token"`
	PublicKey    string `json:"public_key"`
	LiveMode     bool   `json:"live_mode"`
}

type authorizationCodeBody struct {
	GrantType    string `json:"grant_type"`
	ClientSecret string `json:"client_secret"`
	ClientID     string `json:"client_id"`
	Code         string `json:"code"`
	RedirectURI  string `json:"redirect_uri"`
}

type refreshTokenBody struct {
	GrantType    string `json:"grant_type"`
	ClientSecret string `json:"client_secret"`
	ClientID     string `json:"client_id"`
	RefreshToken string `json:"refresh_token"`
}

// CreateAccess exchanges an authorization code granted during the OAuth
// redirect flow for an access token and its refresh token.
func CreateAccess(ctx context.Context, c *mercadopago.Client, clientID, clientSecret, code, redirectURI string) (*AccessResponse, error) {
	switch {
	case clientID == "":
		return nil, &mercadopago.ValidationError{Field: "client_id", Reason: "is required"}
	case clientSecret == "":
		return nil, &mercadopago.ValidationError{Field: "client_secret", Reason: "is required"}
	case code == "":
		return nil, &mercadopago.ValidationError{Field: "code", Reason: "is required"}
	case redirectURI == "":
		return nil, &mercadopago.ValidationError{Field: "redirect_uri", Reason: "is required"}
	}

	return send(ctx, c, "oauth.create", authorizationCodeBody{
		GrantType:    "authorization_code",
		ClientSecret: clientSecret,
		ClientID:     clientID,
		Code:         code,
		RedirectURI:  redirectURI,
	})
}

// RefreshAccess trades a refresh token for a new access token. Refresh
// tokens are single use; the response carries the replacement.
func RefreshAccess(ctx context.Context, c *mercadopago.Client, clientID, clientSecret, refreshToken string) (*AccessResponse, error) {
	switch {
	case clientID == "":
		return nil, &mercadopago.ValidationError{Field: "client_id", Reason: "is required"}
	case clientSecret == "":
		return nil, &mercadopago.ValidationError{Field: "client_secret", Reason: "is required"}
	case refreshToken == "":
		return nil, &mercadopago.ValidationError{Field: "refresh_token", Reason: "is required"}
	}

	return send(ctx, c, "oauth.refresh", refreshTokenBody{
		GrantType:    "refresh_token",
		ClientSecret: clientSecret,
		ClientID:     clientID,
		RefreshToken: refreshToken,
	})
}

func send(ctx context.Context, c *mercadopago.Client, op string, body any) (*AccessResponse, error) {
	req, err := mercadopago.NewJSONRequest(op, http.MethodPost, "/oauth/token", body, nil)
	if err != nil {
		return nil, err
	}
	req.NoAuth = true

	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	var access AccessResponse
	if err := mercadopago.Resolve(resp, &access); err != nil {
		return nil, err
	}
	return &access, nil
}
