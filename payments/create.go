package payments

import (
	"context"
	"net/http"

	"github.com/mpago/go-mpago/mercadopago"
)

// CreateOptions is the request body for POST /v1/payments. Optional
// fields are omitted from the wire when unset. Fields the caller leaves
// zero are filled from DefaultCreateOptions, field by field, with
// caller-set values always winning.
type CreateOptions struct {
	AdditionalInfo        *AdditionalInfo     `json:"additional_info,omitempty"`
	ApplicationFee        *mercadopago.Amount `json:"application_fee,omitempty"`
	BinaryMode            *bool               `json:"binary_mode,omitempty"`
	CallbackURL           string              `json:"callback_url,omitempty"`
	CampaignID            int                 `json:"campaign_id,omitempty"`
	Capture               *bool               `json:"capture,omitempty"`
	CouponAmount          *mercadopago.Amount `json:"coupon_amount,omitempty"`
	CouponCode            string              `json:"coupon_code,omitempty"`
	DateOfExpiration      string              `json:"date_of_expiration,omitempty"`
	Description           string              `json:"description,omitempty"`
	DifferentialPricingID int                 `json:"differential_pricing_id,omitempty"`
	ExternalReference     string              `json:"external_reference,omitempty"`
	Installments          int                 `json:"installments,omitempty"`
	IssuerID              string              `json:"issuer_id,omitempty"`
	NotificationURL       string              `json:"notification_url,omitempty"`
	Payer                 Payer               `json:"payer"`
	PaymentMethodID       MethodID            `json:"payment_method_id"`
	StatementDescriptor   string              `json:"statement_descriptor,omitempty"`
	Token                 string              `json:"token,omitempty"`
	TransactionAmount     mercadopago.Amount  `json:"transaction_amount"`

	// Currency is not part of the wire body (the API infers it from the
	// collector account); when set it tightens the amount scale check.
	Currency mercadopago.CurrencyID `json:"-"`

	// Extra passes undocumented fields through to the wire body
	// untouched. Typed fields win on name collision.
	Extra map[string]any `json:"-"`
}

// DefaultCreateOptions supplies the fields a minimal payment can omit.
func DefaultCreateOptions() CreateOptions {
	return CreateOptions{
		Installments:    1,
		PaymentMethodID: MethodPix,
	}
}

// withDefaults merges o over DefaultCreateOptions, field by field.
func (o CreateOptions) withDefaults() CreateOptions {
	d := DefaultCreateOptions()
	if o.Installments == 0 {
		o.Installments = d.Installments
	}
	if o.PaymentMethodID == "" {
		o.PaymentMethodID = d.PaymentMethodID
	}
	return o
}

// CreateBuilder assembles one payment creation request. Construct it per
// call and consume it once with Send; the idempotency key minted at
// build time makes an accidental duplicate submission of the same built
// request harmless.
type CreateBuilder struct {
	opts CreateOptions
}

// NewCreateBuilder wraps a filled options struct.
func NewCreateBuilder(opts CreateOptions) CreateBuilder {
	return CreateBuilder{opts: opts}
}

// Create is a shorthand constructor covering the required fields.
func Create(description string, payer Payer, method MethodID, amount mercadopago.Amount) CreateBuilder {
	return CreateBuilder{opts: CreateOptions{
		Description:       description,
		Payer:             payer,
		PaymentMethodID:   method,
		TransactionAmount: amount,
	}}
}

// SetItems replaces the items under additional_info.
func (b CreateBuilder) SetItems(items ...ProductItem) CreateBuilder {
	if b.opts.AdditionalInfo == nil {
		b.opts.AdditionalInfo = &AdditionalInfo{}
	}
	b.opts.AdditionalInfo.Items = items
	return b
}

// AddItems appends items under additional_info.
func (b CreateBuilder) AddItems(items ...ProductItem) CreateBuilder {
	if b.opts.AdditionalInfo == nil {
		b.opts.AdditionalInfo = &AdditionalInfo{}
	}
	b.opts.AdditionalInfo.Items = append(b.opts.AdditionalInfo.Items, items...)
	return b
}

// Build validates the options and produces the wire-ready request. No
// network call happens here.
func (b CreateBuilder) Build() (*mercadopago.Request, error) {
	opts := b.opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	req, err := mercadopago.NewJSONRequest("payments.create", http.MethodPost, "/v1/payments", opts, opts.Extra)
	if err != nil {
		return nil, err
	}
	return req.Idempotent(), nil
}

// Send builds the request, performs the call and resolves the response
// into a Payment or a typed error.
func (b CreateBuilder) Send(ctx context.Context, c *mercadopago.Client) (*Payment, error) {
	req, err := b.Build()
	if err != nil {
		return nil, err
	}
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	var p Payment
	if err := mercadopago.Resolve(resp, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
