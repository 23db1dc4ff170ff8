package subscription

import (
	"context"
	"net/http"

	"github.com/mpago/go-mpago/mercadopago"
)

// CreateOptions carries the fields of a subscription creation. Exactly
// one of AutoRecurring or PreapprovalPlanID must be set: the former
// describes the recurrence inline, the latter defers it to a plan.
type CreateOptions struct {
	PayerEmail        string         `json:"payer_email"`
	BackURL           string         `json:"back_url"`
	Reason            string         `json:"reason,omitempty"`
	ExternalReference string         `json:"external_reference,omitempty"`
	AutoRecurring     *AutoRecurring `json:"auto_recurring,omitempty"`
	PreapprovalPlanID string         `json:"preapproval_plan_id,omitempty"`
	CardTokenID       string         `json:"card_token_id,omitempty"`
	Status            Status         `json:"status,omitempty"`

	// Extra is sent alongside the typed fields. Typed fields win on
	// key collision.
	Extra map[string]any `json:"-"`
}

func (o CreateOptions) validate() error {
	if o.PayerEmail == "" {
		return &mercadopago.ValidationError{Field: "payer_email", Reason: "is required"}
	}
	if o.BackURL == "" {
		return &mercadopago.ValidationError{Field: "back_url", Reason: "is required"}
	}
	if o.AutoRecurring == nil && o.PreapprovalPlanID == "" {
		return &mercadopago.ValidationError{Field: "auto_recurring", Reason: "either auto_recurring or preapproval_plan_id is required"}
	}
	if o.AutoRecurring != nil && o.PreapprovalPlanID != "" {
		return &mercadopago.ValidationError{Field: "preapproval_plan_id", Reason: "cannot be combined with auto_recurring"}
	}
	if o.PreapprovalPlanID != "" && o.CardTokenID == "" {
		return &mercadopago.ValidationError{Field: "card_token_id", Reason: "is required when subscribing to a plan"}
	}
	if o.Status != "" && !knownStatuses[o.Status] {
		return &mercadopago.ValidationError{Field: "status", Reason: "unknown status"}
	}
	if r := o.AutoRecurring; r != nil {
		if r.Frequency < 1 {
			return &mercadopago.ValidationError{Field: "auto_recurring.frequency", Reason: "must be at least 1"}
		}
		if r.FrequencyType != FrequencyDays && r.FrequencyType != FrequencyMonths {
			return &mercadopago.ValidationError{Field: "auto_recurring.frequency_type", Reason: "must be days or months"}
		}
		if !r.TransactionAmount.IsPositive() {
			return &mercadopago.ValidationError{Field: "auto_recurring.transaction_amount", Reason: "must be positive"}
		}
		if r.CurrencyID != "" && r.TransactionAmount.Scale() > r.CurrencyID.MaxScale() {
			return &mercadopago.ValidationError{Field: "auto_recurring.transaction_amount", Reason: "has more decimal places than the currency allows"}
		}
		if t := r.FreeTrial; t != nil {
			if t.Frequency < 1 {
				return &mercadopago.ValidationError{Field: "auto_recurring.free_trial.frequency", Reason: "must be at least 1"}
			}
			if t.FrequencyType != FrequencyDays && t.FrequencyType != FrequencyMonths {
				return &mercadopago.ValidationError{Field: "auto_recurring.free_trial.frequency_type", Reason: "must be days or months"}
			}
		}
	}
	return nil
}

// CreateBuilder assembles a subscription creation request.
type CreateBuilder struct {
	opts CreateOptions
}

// NewCreateBuilder starts from caller-provided options.
func NewCreateBuilder(opts CreateOptions) CreateBuilder {
	return CreateBuilder{opts: opts}
}

// CreateWithoutPlan starts a subscription whose recurrence is described
// inline. It comes up pending until the payer authorizes it through the
// init point.
func CreateWithoutPlan(payerEmail, backURL string, recurring AutoRecurring) CreateBuilder {
	return CreateBuilder{opts: CreateOptions{
		PayerEmail:    payerEmail,
		BackURL:       backURL,
		AutoRecurring: &recurring,
		Status:        StatusPending,
	}}
}

// CreateWithPlan subscribes the payer to an existing plan. The card
// token authorizes the first charge so the subscription starts
// authorized.
func CreateWithPlan(payerEmail, backURL, planID, cardTokenID string) CreateBuilder {
	return CreateBuilder{opts: CreateOptions{
		PayerEmail:        payerEmail,
		BackURL:           backURL,
		PreapprovalPlanID: planID,
		CardTokenID:       cardTokenID,
		Status:            StatusAuthorized,
	}}
}

// SetReason sets the free-form description shown to the payer.
func (b CreateBuilder) SetReason(reason string) CreateBuilder {
	b.opts.Reason = reason
	return b
}

// SetExternalReference tags the subscription with the caller's own id.
func (b CreateBuilder) SetExternalReference(ref string) CreateBuilder {
	b.opts.ExternalReference = ref
	return b
}

// Build validates the options and produces the wire request. Each call
// mints a fresh idempotency key.
func (b CreateBuilder) Build() (*mercadopago.Request, error) {
	if err := b.opts.validate(); err != nil {
		return nil, err
	}
	req, err := mercadopago.NewJSONRequest("subscription.create", http.MethodPost, "/preapproval", b.opts, b.opts.Extra)
	if err != nil {
		return nil, err
	}
	return req.Idempotent(), nil
}

// Send builds the request, executes it and resolves the response.
func (b CreateBuilder) Send(ctx context.Context, client *mercadopago.Client) (*Subscription, error) {
	req, err := b.Build()
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	var sub Subscription
	if err := mercadopago.Resolve(resp, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}
