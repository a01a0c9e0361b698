package lineage

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/leaplineage/pkg/catalog"
)

// ParseBatch runs ParseQueryWithOptions over a slice of statements with the
// given fan-out, preserving input order in the results. A malformed statement
// reports through its own ParsedQuery.Errors; it never fails the batch. The
// only error returned is the context's, when the caller cancels.
func ParseBatch(ctx context.Context, statements []string, symbols *catalog.SymbolTable, concurrency int, opts Options) ([]ParsedQuery, error) {
	if concurrency <= 0 {
		concurrency = 1
	}

	results := make([]ParsedQuery, len(statements))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, stmt := range statements {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = ParseQueryWithOptions(stmt, symbols, opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
