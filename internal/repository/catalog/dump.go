package catalog

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"

	domcat "github.com/kailas-cloud/catsearch/internal/domain/catalog"
)

type dumpFile struct {
	Items []struct {
		ID   uuid.UUID `json:"id"`
		Type string    `json:"type"`
		Name string    `json:"name"`
	} `json:"items"`
	Recipes []struct {
		ID   uuid.UUID         `json:"id"`
		Name string            `json:"name"`
		Mode domcat.RecipeMode `json:"mode"`
	} `json:"recipes"`
	Products []struct {
		ItemID   uuid.UUID `json:"item_id"`
		RecipeID uuid.UUID `json:"recipe_id"`
	} `json:"products"`
	Translations []struct {
		Locale string `json:"locale"`
		Type   string `json:"type"`
		Name   string `json:"name"`
		Value  string `json:"value"`
	} `json:"translations"`
}

// ReadDump decodes a JSON catalog export. Products must reference recipes
// present in the same file.
func ReadDump(r io.Reader) (Dump, error) {
	var f dumpFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return Dump{}, fmt.Errorf("decode catalog dump: %w", err)
	}

	var d Dump
	recipes := make(map[uuid.UUID]domcat.Recipe, len(f.Recipes))
	for _, rc := range f.Recipes {
		if rc.Mode != domcat.ModeNormal && rc.Mode != domcat.ModeExpensive {
			return Dump{}, fmt.Errorf("recipe %s: unknown mode %q", rc.Name, rc.Mode)
		}
		recipe := domcat.Recipe{ID: rc.ID, Name: rc.Name, Mode: rc.Mode}
		recipes[rc.ID] = recipe
		d.Recipes = append(d.Recipes, recipe)
	}
	for _, it := range f.Items {
		d.Items = append(d.Items, domcat.Item{ID: it.ID, Type: it.Type, Name: it.Name})
	}
	for _, p := range f.Products {
		recipe, ok := recipes[p.RecipeID]
		if !ok {
			return Dump{}, fmt.Errorf("product of item %s: unknown recipe %s", p.ItemID, p.RecipeID)
		}
		d.Products = append(d.Products, domcat.ProductRecipe{ItemID: p.ItemID, Recipe: recipe})
	}
	for _, t := range f.Translations {
		d.Translations = append(d.Translations, domcat.Translation(t))
	}
	return d, nil
}
