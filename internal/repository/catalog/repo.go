// Package catalog reads items, recipes and translations from SQLite.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	domcat "github.com/kailas-cloud/catsearch/internal/domain/catalog"
)

// Repo implements the catalog lookups used by the search pipeline.
type Repo struct {
	db *sql.DB
}

// New creates a catalog repository over a migrated database.
func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Ping checks the database connection.
func (r *Repo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// ItemsByKeywords returns items whose name contains every keyword.
func (r *Repo) ItemsByKeywords(ctx context.Context, combinationID uuid.UUID, keywords []string) ([]domcat.Item, error) {
	if len(keywords) == 0 {
		return nil, nil
	}
	where, args := keywordClause("name", keywords)
	query := `SELECT id, type, name FROM catalog_item WHERE combination_id = ? AND ` + where + ` ORDER BY type, name`
	return r.queryItems(ctx, query, append([]any{combinationID.String()}, args...)...)
}

// ItemsByNames returns items of any type with one of the given names.
func (r *Repo) ItemsByNames(ctx context.Context, combinationID uuid.UUID, names []string) ([]domcat.Item, error) {
	if len(names) == 0 {
		return nil, nil
	}
	query := `SELECT id, type, name FROM catalog_item WHERE combination_id = ? AND name IN (` +
		placeholders(len(names)) + `) ORDER BY type, name`
	return r.queryItems(ctx, query, append([]any{combinationID.String()}, strArgs(names)...)...)
}

// ItemsByIDs returns items with the given ids.
func (r *Repo) ItemsByIDs(ctx context.Context, combinationID uuid.UUID, ids []uuid.UUID) ([]domcat.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT id, type, name FROM catalog_item WHERE combination_id = ? AND id IN (` +
		placeholders(len(ids)) + `)`
	return r.queryItems(ctx, query, append([]any{combinationID.String()}, idArgs(ids)...)...)
}

// RecipesByKeywords returns recipes whose name contains every keyword.
func (r *Repo) RecipesByKeywords(ctx context.Context, combinationID uuid.UUID, keywords []string) ([]domcat.Recipe, error) {
	if len(keywords) == 0 {
		return nil, nil
	}
	where, args := keywordClause("name", keywords)
	query := `SELECT id, name, mode FROM catalog_recipe WHERE combination_id = ? AND ` + where + ` ORDER BY name, mode`
	return r.queryRecipes(ctx, query, append([]any{combinationID.String()}, args...)...)
}

// RecipesByNames returns every mode of the named recipes.
func (r *Repo) RecipesByNames(ctx context.Context, combinationID uuid.UUID, names []string) ([]domcat.Recipe, error) {
	if len(names) == 0 {
		return nil, nil
	}
	query := `SELECT id, name, mode FROM catalog_recipe WHERE combination_id = ? AND name IN (` +
		placeholders(len(names)) + `) ORDER BY name, mode`
	return r.queryRecipes(ctx, query, append([]any{combinationID.String()}, strArgs(names)...)...)
}

// RecipesByIDs returns recipes with the given ids.
func (r *Repo) RecipesByIDs(ctx context.Context, combinationID uuid.UUID, ids []uuid.UUID) ([]domcat.Recipe, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT id, name, mode FROM catalog_recipe WHERE combination_id = ? AND id IN (` +
		placeholders(len(ids)) + `)`
	return r.queryRecipes(ctx, query, append([]any{combinationID.String()}, idArgs(ids)...)...)
}

// RecipesByProducts returns the recipes producing each of the given items.
func (r *Repo) RecipesByProducts(
	ctx context.Context, combinationID uuid.UUID, itemIDs []uuid.UUID,
) ([]domcat.ProductRecipe, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT p.item_id, r.id, r.name, r.mode
		FROM catalog_recipe_product p
		JOIN catalog_recipe r ON r.combination_id = p.combination_id AND r.id = p.recipe_id
		WHERE p.combination_id = ? AND p.item_id IN (` + placeholders(len(itemIDs)) + `)
		ORDER BY p.item_id, r.name, r.mode`

	rows, err := r.db.QueryContext(ctx, query, append([]any{combinationID.String()}, idArgs(itemIDs)...)...)
	if err != nil {
		return nil, fmt.Errorf("query product recipes: %w", err)
	}
	defer rows.Close()

	var out []domcat.ProductRecipe
	for rows.Next() {
		var (
			itemID, recipeID, mode string
			pr                     domcat.ProductRecipe
		)
		if err := rows.Scan(&itemID, &recipeID, &pr.Recipe.Name, &mode); err != nil {
			return nil, fmt.Errorf("scan product recipe: %w", err)
		}
		if pr.ItemID, err = uuid.Parse(itemID); err != nil {
			return nil, fmt.Errorf("invalid item id %q: %w", itemID, err)
		}
		if pr.Recipe.ID, err = uuid.Parse(recipeID); err != nil {
			return nil, fmt.Errorf("invalid recipe id %q: %w", recipeID, err)
		}
		pr.Recipe.Mode = domcat.RecipeMode(mode)
		out = append(out, pr)
	}
	return out, rows.Err()
}

// Translations returns translations in the given locales whose value
// contains every keyword.
func (r *Repo) Translations(
	ctx context.Context, combinationID uuid.UUID, locales, keywords []string,
) ([]domcat.Translation, error) {
	if len(locales) == 0 || len(keywords) == 0 {
		return nil, nil
	}
	where, kwArgs := keywordClause("value", keywords)
	query := `SELECT locale, type, name, value FROM catalog_translation
		WHERE combination_id = ? AND locale IN (` + placeholders(len(locales)) + `) AND ` + where + `
		ORDER BY locale, type, name`

	args := append([]any{combinationID.String()}, strArgs(locales)...)
	args = append(args, kwArgs...)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query translations: %w", err)
	}
	defer rows.Close()

	var out []domcat.Translation
	for rows.Next() {
		var t domcat.Translation
		if err := rows.Scan(&t.Locale, &t.Type, &t.Name, &t.Value); err != nil {
			return nil, fmt.Errorf("scan translation: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *Repo) queryItems(ctx context.Context, query string, args ...any) ([]domcat.Item, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var out []domcat.Item
	for rows.Next() {
		var (
			id   string
			item domcat.Item
		)
		if err := rows.Scan(&id, &item.Type, &item.Name); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		if item.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("invalid item id %q: %w", id, err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *Repo) queryRecipes(ctx context.Context, query string, args ...any) ([]domcat.Recipe, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recipes: %w", err)
	}
	defer rows.Close()

	var out []domcat.Recipe
	for rows.Next() {
		var (
			id, mode string
			recipe   domcat.Recipe
		)
		if err := rows.Scan(&id, &recipe.Name, &mode); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		if recipe.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("invalid recipe id %q: %w", id, err)
		}
		recipe.Mode = domcat.RecipeMode(mode)
		out = append(out, recipe)
	}
	return out, rows.Err()
}

// keywordClause matches column against every keyword as a substring.
// LIKE is case-insensitive for ASCII in SQLite.
func keywordClause(column string, keywords []string) (string, []any) {
	parts := make([]string, len(keywords))
	args := make([]any, len(keywords))
	for i, kw := range keywords {
		parts[i] = column + ` LIKE ? ESCAPE '\'`
		args[i] = "%" + escapeLike(kw) + "%"
	}
	return "(" + strings.Join(parts, " AND ") + ")", args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func strArgs(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func idArgs(ids []uuid.UUID) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
