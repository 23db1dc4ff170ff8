package subscription

import (
	"context"
	"net/http"

	"github.com/mpago/go-mpago/mercadopago"
)

// GetBuilder fetches one subscription by ID.
type GetBuilder struct {
	id string
}

// NewGetBuilder wraps the subscription ID.
func NewGetBuilder(id string) GetBuilder {
	return GetBuilder{id: id}
}

// Build produces the GET request.
func (b GetBuilder) Build() (*mercadopago.Request, error) {
	if b.id == "" {
		return nil, &mercadopago.ValidationError{Field: "id", Reason: "is required"}
	}
	return mercadopago.NewRequest("subscription.get", http.MethodGet, "/preapproval/"+b.id), nil
}

// Send fetches the subscription.
func (b GetBuilder) Send(ctx context.Context, c *mercadopago.Client) (*Subscription, error) {
	req, err := b.Build()
	if err != nil {
		return nil, err
	}
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	var sub Subscription
	if err := mercadopago.Resolve(resp, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}
