package search

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kailas-cloud/catsearch/internal/domain/search/result"
)

// hydrate restores display fields of cached results from the catalog.
// The cache payload carries ids only. Ids no longer in the catalog keep
// empty names.
func hydrate(ctx context.Context, c Catalog, combinationID uuid.UUID, results []result.Result) error {
	var (
		items     []*result.ItemResult
		recipes   []*result.RecipeResult
		itemIDs   []uuid.UUID
		recipeIDs []uuid.UUID
	)
	addRecipe := func(r *result.RecipeResult) {
		recipes = append(recipes, r)
		if r.NormalID().Valid {
			recipeIDs = append(recipeIDs, r.NormalID().UUID)
		}
		if r.ExpensiveID().Valid {
			recipeIDs = append(recipeIDs, r.ExpensiveID().UUID)
		}
	}

	for _, r := range results {
		switch v := r.(type) {
		case *result.ItemResult:
			items = append(items, v)
			if v.ID().Valid {
				itemIDs = append(itemIDs, v.ID().UUID)
			}
			for _, nested := range v.Recipes().All() {
				addRecipe(nested)
			}
		case *result.RecipeResult:
			addRecipe(v)
		}
	}

	if len(itemIDs) > 0 {
		found, err := c.ItemsByIDs(ctx, combinationID, itemIDs)
		if err != nil {
			return fmt.Errorf("items by ids: %w", err)
		}
		byID := make(map[uuid.UUID]int, len(found))
		for i, it := range found {
			byID[it.ID] = i
		}
		for _, it := range items {
			if i, ok := byID[it.ID().UUID]; ok {
				it.Identify(found[i].Type, found[i].Name)
			}
		}
	}

	if len(recipeIDs) > 0 {
		found, err := c.RecipesByIDs(ctx, combinationID, recipeIDs)
		if err != nil {
			return fmt.Errorf("recipes by ids: %w", err)
		}
		names := make(map[uuid.UUID]string, len(found))
		for _, rc := range found {
			names[rc.ID] = rc.Name
		}
		for _, r := range recipes {
			if name, ok := names[r.NormalID().UUID]; ok && r.NormalID().Valid {
				r.SetName(name)
			} else if name, ok := names[r.ExpensiveID().UUID]; ok && r.ExpensiveID().Valid {
				r.SetName(name)
			}
		}
	}
	return nil
}
