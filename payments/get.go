package payments

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mpago/go-mpago/mercadopago"
)

// GetBuilder fetches one payment by ID.
type GetBuilder struct {
	id int64
}

// NewGetBuilder wraps a payment ID.
func NewGetBuilder(id int64) GetBuilder {
	return GetBuilder{id: id}
}

// Build produces the GET /v1/payments/{id} request.
func (b GetBuilder) Build() (*mercadopago.Request, error) {
	if b.id <= 0 {
		return nil, &mercadopago.ValidationError{Field: "id", Reason: "must be positive"}
	}
	return mercadopago.NewRequest("payments.get", http.MethodGet, fmt.Sprintf("/v1/payments/%d", b.id)), nil
}

// Send performs the fetch.
func (b GetBuilder) Send(ctx context.Context, c *mercadopago.Client) (*Payment, error) {
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

// FetchFull promotes a search summary to the full payment resource.
func (s PaymentSummary) FetchFull(ctx context.Context, c *mercadopago.Client) (*Payment, error) {
	return NewGetBuilder(s.ID).Send(ctx, c)
}
