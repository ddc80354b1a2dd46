package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	domcat "github.com/kailas-cloud/catsearch/internal/domain/catalog"
)

// Dump is a complete catalog for one combination.
type Dump struct {
	Items        []domcat.Item
	Recipes      []domcat.Recipe
	Products     []domcat.ProductRecipe
	Translations []domcat.Translation
}

// Import replaces the catalog of a combination in a single transaction.
func (r *Repo) Import(ctx context.Context, combinationID uuid.UUID, d Dump) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	comb := combinationID.String()
	for _, table := range []string{
		"catalog_item", "catalog_recipe", "catalog_recipe_product", "catalog_translation",
	} {
		if _, err = tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE combination_id = ?`, comb); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if err = execEach(ctx, tx,
		`INSERT INTO catalog_item (combination_id, id, type, name) VALUES (?, ?, ?, ?)`,
		len(d.Items), func(i int) []any {
			it := d.Items[i]
			return []any{comb, it.ID.String(), it.Type, it.Name}
		}); err != nil {
		return fmt.Errorf("insert items: %w", err)
	}

	if err = execEach(ctx, tx,
		`INSERT INTO catalog_recipe (combination_id, id, name, mode) VALUES (?, ?, ?, ?)`,
		len(d.Recipes), func(i int) []any {
			rc := d.Recipes[i]
			return []any{comb, rc.ID.String(), rc.Name, string(rc.Mode)}
		}); err != nil {
		return fmt.Errorf("insert recipes: %w", err)
	}

	if err = execEach(ctx, tx,
		`INSERT INTO catalog_recipe_product (combination_id, recipe_id, item_id) VALUES (?, ?, ?)`,
		len(d.Products), func(i int) []any {
			p := d.Products[i]
			return []any{comb, p.Recipe.ID.String(), p.ItemID.String()}
		}); err != nil {
		return fmt.Errorf("insert products: %w", err)
	}

	if err = execEach(ctx, tx,
		`INSERT INTO catalog_translation (combination_id, locale, type, name, value) VALUES (?, ?, ?, ?, ?)`,
		len(d.Translations), func(i int) []any {
			t := d.Translations[i]
			return []any{comb, t.Locale, t.Type, t.Name, t.Value}
		}); err != nil {
		return fmt.Errorf("insert translations: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	return nil
}

func execEach(ctx context.Context, tx *sql.Tx, query string, n int, args func(i int) []any) error {
	if n == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := range n {
		if _, err := stmt.ExecContext(ctx, args(i)...); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}
	return nil
}
