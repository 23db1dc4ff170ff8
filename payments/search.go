package payments

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

// SearchSort names the field a payment search is ordered by.
type SearchSort string

const (
	SortDateApproved     SearchSort = "date_approved"
	SortDateCreated      SearchSort = "date_created"
	SortDateLastUpdated  SearchSort = "date_last_updated"
	SortID               SearchSort = "id"
	SortMoneyReleaseDate SearchSort = "money_release_date"
)

var knownSearchSorts = map[SearchSort]bool{
	SortDateApproved: true, SortDateCreated: true, SortDateLastUpdated: true,
	SortID: true, SortMoneyReleaseDate: true,
}

// SearchCriteria is the sort direction.
type SearchCriteria string

const (
	CriteriaAscending  SearchCriteria = "asc"
	CriteriaDescending SearchCriteria = "desc"
)

// SearchRange names the date field begin_date/end_date filter on.
type SearchRange string

const (
	RangeDateApproved     SearchRange = "date_approved"
	RangeDateCreated      SearchRange = "date_created"
	RangeDateLastUpdated  SearchRange = "date_last_updated"
	RangeMoneyReleaseDate SearchRange = "money_release_date"
)

var knownSearchRanges = map[SearchRange]bool{
	RangeDateApproved: true, RangeDateCreated: true,
	RangeDateLastUpdated: true, RangeMoneyReleaseDate: true,
}

// SearchOptions are the query parameters of GET /v1/payments/search.
// BeginDate and EndDate accept absolute ISO-8601 timestamps or relative
// dates such as "NOW-3MONTHS".
type SearchOptions struct {
	Sort              SearchSort
	Criteria          SearchCriteria
	Limit             int
	Offset            int
	ExternalReference string
	Range             SearchRange
	BeginDate         string
	EndDate           string
}

func (o SearchOptions) query() url.Values {
	q := url.Values{}
	if o.Sort != "" {
		q.Set("sort", string(o.Sort))
	}
	if o.Criteria != "" {
		q.Set("criteria", string(o.Criteria))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Offset > 0 {
		q.Set("offset", strconv.Itoa(o.Offset))
	}
	if o.ExternalReference != "" {
		q.Set("external_reference", o.ExternalReference)
	}
	if o.Range != "" {
		q.Set("range", string(o.Range))
	}
	if o.BeginDate != "" {
		q.Set("begin_date", o.BeginDate)
	}
	if o.EndDate != "" {
		q.Set("end_date", o.EndDate)
	}
	return q
}

// SearchBuilder searches payments page by page.
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
	req := mercadopago.NewRequest("payments.search", http.MethodGet, "/v1/payments/search")
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
// summaries. Pagination advances by the effective limit until the
// offset reaches the reported total.
func (b SearchBuilder) FetchAll(ctx context.Context, c *mercadopago.Client) ([]PaymentSummary, error) {
	opts := b.opts
	if opts.Limit <= 0 {
		opts.Limit = DefaultPageLimit
	}

	var all []PaymentSummary
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
