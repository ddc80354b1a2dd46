package result

// Priority constants. Lower values are more relevant.
const (
	// PriorityExactMatch marks a result whose name or translation equals the query.
	PriorityExactMatch = 100
	// PriorityPrimaryLocaleMatch marks a translation match in the query locale.
	PriorityPrimaryLocaleMatch = 200
	// PrioritySecondaryLocaleMatch marks a translation match in the fallback locale.
	PrioritySecondaryLocaleMatch = 300
	// PriorityAnyMatch marks a partial keyword match.
	PriorityAnyMatch = 1000
)

// TypeRecipe is the type of every RecipeResult.
const TypeRecipe = "recipe"

// Result is a single search hit. The set of implementations is closed:
// *ItemResult and *RecipeResult.
type Result interface {
	Type() string
	Name() string
	Priority() int
}

// key identifies the logical entity behind a result. Empty names have no key.
func key(r Result) (string, bool) {
	if r.Name() == "" {
		return "", false
	}
	return r.Type() + "|" + r.Name(), true
}

// Merge folds src into dst in place. Results of different concrete types
// are left untouched.
func Merge(dst, src Result) {
	switch d := dst.(type) {
	case *ItemResult:
		if s, ok := src.(*ItemResult); ok {
			d.Merge(s)
		}
	case *RecipeResult:
		if s, ok := src.(*RecipeResult); ok {
			d.Merge(s)
		}
	}
}
