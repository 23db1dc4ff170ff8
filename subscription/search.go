package subscription

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mpago/go-mpago/mercadopago"
)

// DefaultPageLimit is the page size used when the caller does not set
// one.
const DefaultPageLimit = 30

// SearchOptions are the query parameters of GET /preapproval/search.
// Q matches against reason and external reference.
type SearchOptions struct {
	Q                 string
	PayerID           int64
	PayerEmail        string
	PreapprovalPlanID string
	Status            Status
	Semaphore         Semaphore
	Sort              string
	Limit             int
	Offset            int
}

func (o SearchOptions) validate() error {
	if o.Status != "" && !knownStatuses[o.Status] {
		return &mercadopago.ValidationError{Field: "status", Reason: "unknown status"}
	}
	if o.Limit < 0 {
		return &mercadopago.ValidationError{Field: "limit", Reason: "must not be negative"}
	}
	if o.Offset < 0 {
		return &mercadopago.ValidationError{Field: "offset", Reason: "must not be negative"}
	}
	return nil
}

func (o SearchOptions) query() url.Values {
	q := url.Values{}
	if o.Q != "" {
		q.Set("q", o.Q)
	}
	if o.PayerID != 0 {
		q.Set("payer_id", strconv.FormatInt(o.PayerID, 10))
	}
	if o.PayerEmail != "" {
		q.Set("payer_email", o.PayerEmail)
	}
	if o.PreapprovalPlanID != "" {
		q.Set("preapproval_plan_id", o.PreapprovalPlanID)
	}
	if o.Status != "" {
		q.Set("status", string(o.Status))
	}
	if o.Semaphore != "" {
		q.Set("semaphore", string(o.Semaphore))
	}
	if o.Sort != "" {
		q.Set("sort", o.Sort)
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Offset > 0 {
		q.Set("offset", strconv.Itoa(o.Offset))
	}
	return q
}

// SearchBuilder searches subscriptions page by page.
type SearchBuilder struct {
	opts SearchOptions
}

// NewSearchBuilder wraps search options.
func NewSearchBuilder(opts SearchOptions) SearchBuilder {
	return SearchBuilder{opts: opts}
}

// Build produces the request for a single result page.
func (b SearchBuilder) Build() (*mercadopago.Request, error) {
	if err := b.opts.validate(); err != nil {
		return nil, err
	}
	req := mercadopago.NewRequest("subscription.search", http.MethodGet, "/preapproval/search")
	return req.WithQuery(b.opts.query()), nil
}

// Send fetches one page of results.
func (b SearchBuilder) Send(ctx context.Context, c *mercadopago.Client) (*SearchResult, error) {
	req, err := b.Build()
	if err != nil {
		return nil, err
	}
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	var page SearchResult
	if err := mercadopago.Resolve(resp, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// FetchAll walks every result page and returns the concatenated
// subscriptions.
func (b SearchBuilder) FetchAll(ctx context.Context, c *mercadopago.Client) ([]Subscription, error) {
	opts := b.opts
	if opts.Limit <= 0 {
		opts.Limit = DefaultPageLimit
	}

	var all []Subscription
	for {
		page, err := NewSearchBuilder(opts).Send(ctx, c)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Results...)

		opts.Offset += opts.Limit
		if opts.Offset >= page.Paging.Total || len(page.Results) == 0 {
			return all, nil
		}
	}
}
