package search

import (
	"context"
	"strings"

	"github.com/google/uuid"

	domcat "github.com/kailas-cloud/catsearch/internal/domain/catalog"
	"github.com/kailas-cloud/catsearch/internal/domain/query"
	"github.com/kailas-cloud/catsearch/internal/domain/search/result"
)

// TranslationFetcher matches localized labels. Matches in the query locale
// rank above matches in the fallback locale.
type TranslationFetcher struct {
	catalog        Catalog
	fallbackLocale string
}

// Name implements Fetcher.
func (f *TranslationFetcher) Name() string { return "translation" }

// Fetch implements Fetcher.
func (f *TranslationFetcher) Fetch(ctx context.Context, q *query.Query, agg *result.Aggregate) error {
	locales := []string{q.Locale()}
	if f.fallbackLocale != "" && f.fallbackLocale != q.Locale() {
		locales = append(locales, f.fallbackLocale)
	}

	keywords := q.Keywords()
	translations, err := f.catalog.Translations(ctx, q.CombinationID(), locales, keywords)
	if err != nil {
		return err
	}

	for _, t := range translations {
		priority := result.PrioritySecondaryLocaleMatch
		if t.Locale == q.Locale() {
			priority = result.PriorityPrimaryLocaleMatch
		}
		if isExact(t.Value, keywords) {
			priority = result.PriorityExactMatch
		}
		if t.Type == result.TypeRecipe {
			agg.AddRecipe(result.NewRecipe(t.Name, priority))
		} else {
			agg.AddItem(result.NewItem(t.Type, t.Name, priority))
		}
	}
	return nil
}

// ItemFetcher matches item names.
type ItemFetcher struct {
	catalog Catalog
}

// Name implements Fetcher.
func (f *ItemFetcher) Name() string { return "item" }

// Fetch implements Fetcher.
func (f *ItemFetcher) Fetch(ctx context.Context, q *query.Query, agg *result.Aggregate) error {
	keywords := q.Keywords()
	items, err := f.catalog.ItemsByKeywords(ctx, q.CombinationID(), keywords)
	if err != nil {
		return err
	}
	for _, it := range items {
		r := result.NewItem(it.Type, it.Name, namePriority(it.Name, keywords))
		r.SetID(it.ID)
		agg.AddItem(r)
	}
	return nil
}

// RecipeFetcher matches recipe names.
type RecipeFetcher struct {
	catalog Catalog
}

// Name implements Fetcher.
func (f *RecipeFetcher) Name() string { return "recipe" }

// Fetch implements Fetcher.
func (f *RecipeFetcher) Fetch(ctx context.Context, q *query.Query, agg *result.Aggregate) error {
	keywords := q.Keywords()
	recipes, err := f.catalog.RecipesByKeywords(ctx, q.CombinationID(), keywords)
	if err != nil {
		return err
	}
	for _, rc := range recipes {
		agg.AddRecipe(recipeResult(rc, namePriority(rc.Name, keywords)))
	}
	return nil
}

// DataFetcher resolves the ids of results found by label only.
type DataFetcher struct {
	catalog Catalog
}

// Name implements Fetcher.
func (f *DataFetcher) Name() string { return "data" }

// Fetch implements Fetcher.
func (f *DataFetcher) Fetch(ctx context.Context, q *query.Query, agg *result.Aggregate) error {
	var itemNames []string
	for _, it := range agg.Items() {
		if !it.ID().Valid {
			itemNames = append(itemNames, it.Name())
		}
	}
	if len(itemNames) > 0 {
		items, err := f.catalog.ItemsByNames(ctx, q.CombinationID(), itemNames)
		if err != nil {
			return err
		}
		for _, it := range items {
			if r, ok := agg.Item(it.Type, it.Name); ok && !r.ID().Valid {
				r.SetID(it.ID)
			}
		}
	}

	unresolved := make(map[string][]*result.RecipeResult)
	collect := func(r *result.RecipeResult) {
		if !r.HasID() && r.Name() != "" {
			unresolved[r.Name()] = append(unresolved[r.Name()], r)
		}
	}
	for _, r := range agg.Recipes() {
		collect(r)
	}
	for _, it := range agg.Items() {
		for _, r := range it.Recipes().All() {
			collect(r)
		}
	}
	if len(unresolved) == 0 {
		return nil
	}

	names := make([]string, 0, len(unresolved))
	for name := range unresolved {
		names = append(names, name)
	}
	recipes, err := f.catalog.RecipesByNames(ctx, q.CombinationID(), names)
	if err != nil {
		return err
	}
	for _, rc := range recipes {
		for _, r := range unresolved[rc.Name] {
			setRecipeID(r, rc)
		}
	}
	return nil
}

// ProductRecipeFetcher attaches the recipes producing each matched item.
type ProductRecipeFetcher struct {
	catalog Catalog
}

// Name implements Fetcher.
func (f *ProductRecipeFetcher) Name() string { return "product_recipe" }

// Fetch implements Fetcher.
func (f *ProductRecipeFetcher) Fetch(ctx context.Context, q *query.Query, agg *result.Aggregate) error {
	byID := make(map[uuid.UUID][]*result.ItemResult)
	var ids []uuid.UUID
	for _, it := range agg.Items() {
		if !it.ID().Valid {
			continue
		}
		id := it.ID().UUID
		if _, seen := byID[id]; !seen {
			ids = append(ids, id)
		}
		byID[id] = append(byID[id], it)
	}
	if len(ids) == 0 {
		return nil
	}

	products, err := f.catalog.RecipesByProducts(ctx, q.CombinationID(), ids)
	if err != nil {
		return err
	}
	for _, p := range products {
		for _, it := range byID[p.ItemID] {
			it.AddRecipe(recipeResult(p.Recipe, it.Priority()))
		}
	}
	return nil
}

// CleanupFetcher drops results that cannot be cached: items without an id
// and recipes without any id.
type CleanupFetcher struct{}

// Name implements Fetcher.
func (CleanupFetcher) Name() string { return "cleanup" }

// Fetch implements Fetcher.
func (CleanupFetcher) Fetch(_ context.Context, _ *query.Query, agg *result.Aggregate) error {
	for _, it := range agg.Items() {
		if !it.ID().Valid {
			agg.RemoveItem(it)
			continue
		}
		recipes := it.Recipes()
		for _, r := range recipes.All() {
			if !r.HasID() {
				recipes.Remove(r)
			}
		}
	}
	for _, r := range agg.Recipes() {
		if !r.HasID() {
			agg.RemoveRecipe(r)
		}
	}
	return nil
}

func recipeResult(rc domcat.Recipe, priority int) *result.RecipeResult {
	r := result.NewRecipe(rc.Name, priority)
	setRecipeID(r, rc)
	return r
}

func setRecipeID(r *result.RecipeResult, rc domcat.Recipe) {
	switch rc.Mode {
	case domcat.ModeNormal:
		r.SetNormalID(rc.ID)
	case domcat.ModeExpensive:
		r.SetExpensiveID(rc.ID)
	}
}

func namePriority(name string, keywords []string) int {
	if isExact(name, keywords) {
		return result.PriorityExactMatch
	}
	return result.PriorityAnyMatch
}

var separators = strings.NewReplacer("-", " ", "_", " ")

// isExact reports whether value equals the keywords once case and word
// separators are ignored.
func isExact(value string, keywords []string) bool {
	return len(keywords) > 0 && normalizeWords(value) == normalizeWords(strings.Join(keywords, " "))
}

func normalizeWords(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(separators.Replace(s))), " ")
}
