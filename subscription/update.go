package subscription

import (
	"context"
	"net/http"

	"github.com/mpago/go-mpago/mercadopago"
)

// UpdateOptions is the request body for PUT /preapproval/{id}. Status
// transitions drive pause, resume and cancellation.
type UpdateOptions struct {
	Reason            string         `json:"reason,omitempty"`
	ExternalReference string         `json:"external_reference,omitempty"`
	BackURL           string         `json:"back_url,omitempty"`
	AutoRecurring     *AutoRecurring `json:"auto_recurring,omitempty"`
	CardTokenID       string         `json:"card_token_id,omitempty"`
	Status            Status         `json:"status,omitempty"`

	// Extra passes undocumented fields through to the wire body.
	Extra map[string]any `json:"-"`
}

func (o UpdateOptions) validate() error {
	if o.Status != "" && !knownStatuses[o.Status] {
		return &mercadopago.ValidationError{Field: "status", Reason: "unknown status"}
	}
	if r := o.AutoRecurring; r != nil {
		if r.TransactionAmount.Negative() {
			return &mercadopago.ValidationError{Field: "auto_recurring.transaction_amount", Reason: "must not be negative"}
		}
		if r.CurrencyID != "" && r.TransactionAmount.Scale() > r.CurrencyID.MaxScale() {
			return &mercadopago.ValidationError{Field: "auto_recurring.transaction_amount", Reason: "has more decimal places than the currency allows"}
		}
	}
	return nil
}

// UpdateBuilder mutates an existing subscription.
type UpdateBuilder struct {
	id   string
	opts UpdateOptions
}

// NewUpdateBuilder wraps the target subscription ID and the fields to
// change.
func NewUpdateBuilder(id string, opts UpdateOptions) UpdateBuilder {
	return UpdateBuilder{id: id, opts: opts}
}

// NewPauseBuilder is an UpdateBuilder that sets status=paused.
func NewPauseBuilder(id string) UpdateBuilder {
	return UpdateBuilder{id: id, opts: UpdateOptions{Status: StatusPaused}}
}

// NewResumeBuilder is an UpdateBuilder that sets status=authorized.
func NewResumeBuilder(id string) UpdateBuilder {
	return UpdateBuilder{id: id, opts: UpdateOptions{Status: StatusAuthorized}}
}

// NewCancelBuilder is an UpdateBuilder that sets status=cancelled.
// Cancellation is terminal.
func NewCancelBuilder(id string) UpdateBuilder {
	return UpdateBuilder{id: id, opts: UpdateOptions{Status: StatusCancelled}}
}

// Build validates and produces the PUT request. Updates mutate an
// existing resource, so no idempotency key is attached.
func (b UpdateBuilder) Build() (*mercadopago.Request, error) {
	if b.id == "" {
		return nil, &mercadopago.ValidationError{Field: "id", Reason: "is required"}
	}
	if err := b.opts.validate(); err != nil {
		return nil, err
	}
	return mercadopago.NewJSONRequest("subscription.update", http.MethodPut,
		"/preapproval/"+b.id, b.opts, b.opts.Extra)
}

// Send performs the update and returns the refreshed subscription.
func (b UpdateBuilder) Send(ctx context.Context, c *mercadopago.Client) (*Subscription, error) {
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

// Pause suspends charging on this subscription.
func (s *Subscription) Pause(ctx context.Context, c *mercadopago.Client) (*Subscription, error) {
	return NewPauseBuilder(s.ID).Send(ctx, c)
}

// Cancel permanently cancels this subscription.
func (s *Subscription) Cancel(ctx context.Context, c *mercadopago.Client) (*Subscription, error) {
	return NewCancelBuilder(s.ID).Send(ctx, c)
}
