// Package walletconnect creates Wallet Connect agreements, the opt-in
// flow that links a payer's MercadoPago wallet to the seller's
// application.
package walletconnect

import (
	"context"
	"net/http"
	"net/url"

	"github.com/mpago/go-mpago/mercadopago"
)

// Data describes the validation charge shown to the user while
// authorizing the agreement.
type Data struct {
	ValidationAmount mercadopago.Amount `json:"validation_amount"`
	Description      string             `json:"description"`
}

// ExternalUser identifies the user on the seller's side.
type ExternalUser struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// Agreement is the created resource. The URI is where the user
// authorizes or denies the connection.
type Agreement struct {
	AgreementID  string `json:"agreement_id"`
	AgreementURI string `json:"agreement_uri"`
}

type agreementBody struct {
	ReturnURL      string        `json:"return_url"`
	AgreementData  *Data         `json:"agreement_data,omitempty"`
	ExternalFlowID string        `json:"external_flow_id,omitempty"`
	ExternalUser   *ExternalUser `json:"external_user,omitempty"`
}

// AgreementBuilder assembles a Create Agreement request.
type AgreementBuilder struct {
	returnURL      string
	clientID       string
	platformID     string
	data           *Data
	externalFlowID string
	externalUser   *ExternalUser
}

// NewAgreementBuilder starts an agreement. After authorizing or denying
// the connection the user is redirected to returnURL.
func NewAgreementBuilder(returnURL string) AgreementBuilder {
	return AgreementBuilder{returnURL: returnURL}
}

// ClientID sets the application's client id, sent as the "client.id"
// query parameter.
func (b AgreementBuilder) ClientID(id string) AgreementBuilder {
	b.clientID = id
	return b
}

// PlatformID identifies the platform the integration is built on, sent
// as the X-Platform-ID header.
func (b AgreementBuilder) PlatformID(id string) AgreementBuilder {
	b.platformID = id
	return b
}

// AgreementData sets the validation charge details.
func (b AgreementBuilder) AgreementData(data Data) AgreementBuilder {
	b.data = &data
	return b
}

// ExternalFlowID tags the agreement with the caller's own lookup id. It
// is not the agreement id.
func (b AgreementBuilder) ExternalFlowID(id string) AgreementBuilder {
	b.externalFlowID = id
	return b
}

// ExternalUser attaches the seller-side identification of the user.
func (b AgreementBuilder) ExternalUser(user ExternalUser) AgreementBuilder {
	b.externalUser = &user
	return b
}

// Build validates and produces the wire request. Each call mints a
// fresh idempotency key.
func (b AgreementBuilder) Build() (*mercadopago.Request, error) {
	if b.returnURL == "" {
		return nil, &mercadopago.ValidationError{Field: "return_url", Reason: "is required"}
	}
	if b.data != nil && b.data.ValidationAmount.Negative() {
		return nil, &mercadopago.ValidationError{Field: "agreement_data.validation_amount", Reason: "must not be negative"}
	}

	body := agreementBody{
		ReturnURL:      b.returnURL,
		AgreementData:  b.data,
		ExternalFlowID: b.externalFlowID,
		ExternalUser:   b.externalUser,
	}
	req, err := mercadopago.NewJSONRequest("walletconnect.create", http.MethodPost, "/v2/wallet_connect/agreements", body, nil)
	if err != nil {
		return nil, err
	}
	if b.clientID != "" {
		req = req.WithQuery(url.Values{"client.id": {b.clientID}})
	}
	if b.platformID != "" {
		req = req.WithHeader("X-Platform-ID", b.platformID)
	}
	return req.Idempotent(), nil
}

// Send creates the agreement and returns its id and authorization URI.
func (b AgreementBuilder) Send(ctx context.Context, c *mercadopago.Client) (*Agreement, error) {
	req, err := b.Build()
	if err != nil {
		return nil, err
	}
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	var agreement Agreement
	if err := mercadopago.Resolve(resp, &agreement); err != nil {
		return nil, err
	}
	return &agreement, nil
}
