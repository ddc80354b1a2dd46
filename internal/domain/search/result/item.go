package result

import "github.com/google/uuid"

// ItemResult is a matched item or fluid together with the recipes found for it.
type ItemResult struct {
	typ      string
	name     string
	id       uuid.NullUUID
	priority int
	recipes  Collection[*RecipeResult]
}

// NewItem creates an item result without a resolved id.
func NewItem(typ, name string, priority int) *ItemResult {
	return &ItemResult{typ: typ, name: name, priority: priority}
}

// Type returns the item type, e.g. "item" or "fluid".
func (r *ItemResult) Type() string { return r.typ }

// Name returns the item name.
func (r *ItemResult) Name() string { return r.name }

// Priority returns the relevance of the match.
func (r *ItemResult) Priority() int { return r.priority }

// ID returns the resolved item id, if any.
func (r *ItemResult) ID() uuid.NullUUID { return r.id }

// SetID resolves the item id.
func (r *ItemResult) SetID(id uuid.UUID) {
	r.id = uuid.NullUUID{UUID: id, Valid: true}
}

// SetPriority overrides the priority.
func (r *ItemResult) SetPriority(p int) { r.priority = p }

// Identify fills in type and name, used when a result was restored from its id alone.
func (r *ItemResult) Identify(typ, name string) {
	r.typ = typ
	r.name = name
}

// Recipes returns the recipes attached to the item.
func (r *ItemResult) Recipes() *Collection[*RecipeResult] { return &r.recipes }

// AddRecipe attaches a recipe, merging it with an existing one of the same name.
func (r *ItemResult) AddRecipe(recipe *RecipeResult) { r.recipes.Add(recipe) }

// Merge folds other into r: a present id overwrites, recipes are merged in
// and the lower priority wins.
func (r *ItemResult) Merge(other *ItemResult) {
	if other.id.Valid {
		r.id = other.id
	}
	for _, recipe := range other.recipes.All() {
		r.recipes.Add(recipe)
	}
	r.priority = min(r.priority, other.priority)
}
