package result

import "sort"

// Aggregate collects the partial results of one search execution in two
// buckets and produces the merged, ordered view of both.
type Aggregate struct {
	items   Collection[*ItemResult]
	recipes Collection[*RecipeResult]
}

// NewAggregate creates an empty aggregate.
func NewAggregate() *Aggregate {
	return &Aggregate{}
}

// AddItem adds or merges an item result.
func (a *Aggregate) AddItem(r *ItemResult) { a.items.Add(r) }

// RemoveItem removes an item result.
func (a *Aggregate) RemoveItem(r *ItemResult) { a.items.Remove(r) }

// Items returns the item results in insertion order.
func (a *Aggregate) Items() []*ItemResult { return a.items.All() }

// Item looks up an item result by type and name.
func (a *Aggregate) Item(typ, name string) (*ItemResult, bool) { return a.items.Get(typ, name) }

// AddRecipe adds or merges a recipe result.
func (a *Aggregate) AddRecipe(r *RecipeResult) { a.recipes.Add(r) }

// RemoveRecipe removes a recipe result.
func (a *Aggregate) RemoveRecipe(r *RecipeResult) { a.recipes.Remove(r) }

// Recipes returns the recipe results in insertion order.
func (a *Aggregate) Recipes() []*RecipeResult { return a.recipes.All() }

// Recipe looks up a recipe result by name.
func (a *Aggregate) Recipe(name string) (*RecipeResult, bool) { return a.recipes.Get(TypeRecipe, name) }

// MergedResults returns items followed by recipes, stable-sorted by
// priority, then name, then type.
func (a *Aggregate) MergedResults() []Result {
	out := make([]Result, 0, a.items.Len()+a.recipes.Len())
	for _, r := range a.items.All() {
		out = append(out, r)
	}
	for _, r := range a.recipes.All() {
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return Less(out[i], out[j])
	})
	return out
}

// Less orders results by priority asc, name asc, type asc.
func Less(a, b Result) bool {
	if a.Priority() != b.Priority() {
		return a.Priority() < b.Priority()
	}
	if a.Name() != b.Name() {
		return a.Name() < b.Name()
	}
	return a.Type() < b.Type()
}
