package payments

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mpago/go-mpago/mercadopago"
)

// UpdateOptions is the request body for PUT /v1/payments/{id}. Only the
// fields MercadoPago allows to change after creation are present.
type UpdateOptions struct {
	Capture           *bool               `json:"capture,omitempty"`
	DateOfExpiration  string              `json:"date_of_expiration,omitempty"`
	Status            Status              `json:"status,omitempty"`
	TransactionAmount *mercadopago.Amount `json:"transaction_amount,omitempty"`

	// Extra passes undocumented fields through to the wire body.
	Extra map[string]any `json:"-"`
}

// UpdateBuilder mutates an existing payment.
type UpdateBuilder struct {
	id   int64
	opts UpdateOptions
}

// NewUpdateBuilder wraps the target payment ID and the fields to change.
func NewUpdateBuilder(id int64, opts UpdateOptions) UpdateBuilder {
	return UpdateBuilder{id: id, opts: opts}
}

// NewCancelBuilder is an UpdateBuilder that sets status=cancelled.
func NewCancelBuilder(id int64) UpdateBuilder {
	return UpdateBuilder{id: id, opts: UpdateOptions{Status: StatusCancelled}}
}

// Build validates and produces the PUT request. Updates mutate an
// existing resource, so no idempotency key is attached.
func (b UpdateBuilder) Build() (*mercadopago.Request, error) {
	if b.id <= 0 {
		return nil, &mercadopago.ValidationError{Field: "id", Reason: "must be positive"}
	}
	if err := b.opts.validate(); err != nil {
		return nil, err
	}
	return mercadopago.NewJSONRequest("payments.update", http.MethodPut,
		fmt.Sprintf("/v1/payments/%d", b.id), b.opts, b.opts.Extra)
}

// Send performs the update and returns the refreshed payment.
func (b UpdateBuilder) Send(ctx context.Context, c *mercadopago.Client) (*Payment, error) {
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

// Cancel cancels this payment.
func (p *Payment) Cancel(ctx context.Context, c *mercadopago.Client) (*Payment, error) {
	return NewCancelBuilder(p.ID).Send(ctx, c)
}

// Cancel cancels the payment behind this search summary.
func (s PaymentSummary) Cancel(ctx context.Context, c *mercadopago.Client) (*Payment, error) {
	return NewCancelBuilder(s.ID).Send(ctx, c)
}
