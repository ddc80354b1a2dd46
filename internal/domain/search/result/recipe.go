package result

import "github.com/google/uuid"

// RecipeResult is a matched recipe. A recipe may exist in a normal and an
// expensive variant, each with its own id.
type RecipeResult struct {
	name        string
	normalID    uuid.NullUUID
	expensiveID uuid.NullUUID
	priority    int
}

// NewRecipe creates a recipe result without resolved ids.
func NewRecipe(name string, priority int) *RecipeResult {
	return &RecipeResult{name: name, priority: priority}
}

// Type always returns TypeRecipe.
func (r *RecipeResult) Type() string { return TypeRecipe }

// Name returns the recipe name.
func (r *RecipeResult) Name() string { return r.name }

// Priority returns the relevance of the match.
func (r *RecipeResult) Priority() int { return r.priority }

// NormalID returns the id of the normal variant, if any.
func (r *RecipeResult) NormalID() uuid.NullUUID { return r.normalID }

// ExpensiveID returns the id of the expensive variant, if any.
func (r *RecipeResult) ExpensiveID() uuid.NullUUID { return r.expensiveID }

// SetNormalID resolves the normal variant.
func (r *RecipeResult) SetNormalID(id uuid.UUID) {
	r.normalID = uuid.NullUUID{UUID: id, Valid: true}
}

// SetExpensiveID resolves the expensive variant.
func (r *RecipeResult) SetExpensiveID(id uuid.UUID) {
	r.expensiveID = uuid.NullUUID{UUID: id, Valid: true}
}

// SetName fills in the name, used when a result was restored from its ids alone.
func (r *RecipeResult) SetName(name string) { r.name = name }

// HasID reports whether at least one variant is resolved.
func (r *RecipeResult) HasID() bool { return r.normalID.Valid || r.expensiveID.Valid }

// Merge folds other into r: present ids overwrite and the lower priority wins.
func (r *RecipeResult) Merge(other *RecipeResult) {
	if other.normalID.Valid {
		r.normalID = other.normalID
	}
	if other.expensiveID.Valid {
		r.expensiveID = other.expensiveID
	}
	r.priority = min(r.priority, other.priority)
}
