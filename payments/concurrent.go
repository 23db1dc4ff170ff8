package payments

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/mpago/go-mpago/mercadopago"
)

// DefaultFetchConcurrency bounds the simultaneous in-flight requests of
// FetchFullAll.
const DefaultFetchConcurrency = 10

// FetchFullAll promotes a batch of search summaries to full payments,
// fetching concurrently. Results keep the order of the input slice. The
// first failing fetch cancels the remaining ones.
func FetchFullAll(ctx context.Context, c *mercadopago.Client, summaries []PaymentSummary) ([]*Payment, error) {
	if len(summaries) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(DefaultFetchConcurrency)

	out := make([]*Payment, len(summaries))
	for i, s := range summaries {
		i, s := i, s
		g.Go(func() error {
			p, err := s.FetchFull(ctx, c)
			if err != nil {
				return err
			}
			out[i] = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
