package search

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/catsearch/internal/domain/query"
	"github.com/kailas-cloud/catsearch/internal/domain/search/result"
)

// Fetcher adds the results of one lookup to the aggregate.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context, q *query.Query, agg *result.Aggregate) error
}

// Pipeline runs fetchers in order against one aggregate.
type Pipeline struct {
	fetchers []Fetcher
}

// NewPipeline creates a pipeline from fetchers in execution order.
func NewPipeline(fetchers ...Fetcher) *Pipeline {
	return &Pipeline{fetchers: fetchers}
}

// DefaultPipeline wires the standard fetchers over a catalog.
// Translations are matched in the query locale and in fallbackLocale.
func DefaultPipeline(c Catalog, fallbackLocale string) *Pipeline {
	return NewPipeline(
		&TranslationFetcher{catalog: c, fallbackLocale: fallbackLocale},
		&ItemFetcher{catalog: c},
		&RecipeFetcher{catalog: c},
		&DataFetcher{catalog: c},
		&ProductRecipeFetcher{catalog: c},
		CleanupFetcher{},
	)
}

// Run executes every fetcher and stops at the first error.
func (p *Pipeline) Run(ctx context.Context, q *query.Query, agg *result.Aggregate) error {
	for _, f := range p.fetchers {
		if err := f.Fetch(ctx, q, agg); err != nil {
			return fmt.Errorf("%s fetcher: %w", f.Name(), err)
		}
	}
	return nil
}
