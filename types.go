package catsearch

import (
	"github.com/google/uuid"

	"github.com/kailas-cloud/catsearch/internal/domain"
	"github.com/kailas-cloud/catsearch/internal/domain/search/result"
	searchuc "github.com/kailas-cloud/catsearch/internal/usecase/search"
)

// Errors returned by Search. Test with errors.Is.
var (
	ErrInvalidQuery        = domain.ErrInvalidQuery
	ErrCombinationRequired = domain.ErrCombinationRequired
	ErrQueryTooLong        = domain.ErrQueryTooLong
	ErrInvalidArgument     = domain.ErrInvalidArgument
)

// Result is an item or recipe match. Items carry ID and the recipes that
// produce them; recipes carry the ids of their normal and expensive mode.
// Results are ordered most relevant first.
type Result struct {
	Type              string
	Name              string
	ID                *string
	NormalRecipeID    *string
	ExpensiveRecipeID *string
	Recipes           []Result
}

// Page is one page of a search.
type Page struct {
	Hash    string
	Results []Result
	Total   int
	Page    int
	Limit   int
	Cached  bool
}

// IsItem reports whether r is an item (or fluid) rather than a recipe.
func (r Result) IsItem() bool { return r.Type != result.TypeRecipe }

func pageFromDomain(p *searchuc.Page) *Page {
	out := &Page{
		Hash:    p.Query.Hash().String(),
		Results: make([]Result, 0, len(p.Results)),
		Total:   p.Total,
		Page:    1,
		Limit:   p.Limit,
		Cached:  p.Cached,
	}
	if p.Limit > 0 {
		out.Page = p.Offset/p.Limit + 1
	}
	for _, r := range p.Results {
		out.Results = append(out.Results, resultFromDomain(r))
	}
	return out
}

func resultFromDomain(r result.Result) Result {
	out := Result{Type: r.Type(), Name: r.Name()}
	switch v := r.(type) {
	case *result.ItemResult:
		out.ID = idString(v.ID())
		for _, recipe := range v.Recipes().All() {
			out.Recipes = append(out.Recipes, resultFromDomain(recipe))
		}
	case *result.RecipeResult:
		out.NormalRecipeID = idString(v.NormalID())
		out.ExpensiveRecipeID = idString(v.ExpensiveID())
	}
	return out
}

func idString(id uuid.NullUUID) *string {
	if !id.Valid {
		return nil
	}
	s := id.UUID.String()
	return &s
}
