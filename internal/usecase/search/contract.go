package search

import (
	"context"

	"github.com/google/uuid"

	domcat "github.com/kailas-cloud/catsearch/internal/domain/catalog"
	"github.com/kailas-cloud/catsearch/internal/domain/query"
	"github.com/kailas-cloud/catsearch/internal/domain/search/result"
)

// Catalog provides the raw records the fetchers turn into results.
type Catalog interface {
	ItemsByKeywords(ctx context.Context, combinationID uuid.UUID, keywords []string) ([]domcat.Item, error)
	ItemsByNames(ctx context.Context, combinationID uuid.UUID, names []string) ([]domcat.Item, error)
	ItemsByIDs(ctx context.Context, combinationID uuid.UUID, ids []uuid.UUID) ([]domcat.Item, error)
	RecipesByKeywords(ctx context.Context, combinationID uuid.UUID, keywords []string) ([]domcat.Recipe, error)
	RecipesByNames(ctx context.Context, combinationID uuid.UUID, names []string) ([]domcat.Recipe, error)
	RecipesByIDs(ctx context.Context, combinationID uuid.UUID, ids []uuid.UUID) ([]domcat.Recipe, error)
	RecipesByProducts(ctx context.Context, combinationID uuid.UUID, itemIDs []uuid.UUID) ([]domcat.ProductRecipe, error)
	Translations(ctx context.Context, combinationID uuid.UUID, locales, keywords []string) ([]domcat.Translation, error)
}

// Cache stores merged result sets by query hash.
type Cache interface {
	Lookup(ctx context.Context, combinationID uuid.UUID, locale string, hash uuid.UUID) *result.Paginated
	Store(ctx context.Context, q *query.Query, results *result.Paginated)
}
