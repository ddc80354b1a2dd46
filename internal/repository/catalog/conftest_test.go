package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/catsearch/internal/db/sqlite"
	domcat "github.com/kailas-cloud/catsearch/internal/domain/catalog"
)

var (
	testCombination = uuid.MustParse("3b241101-e2bb-4255-8caf-4136c566a962")

	ironPlate = domcat.Item{ID: uuid.MustParse("11111111-0000-4000-8000-000000000001"), Type: "item", Name: "iron-plate"}
	ironGear  = domcat.Item{ID: uuid.MustParse("11111111-0000-4000-8000-000000000002"), Type: "item", Name: "iron-gear-wheel"}
	water     = domcat.Item{ID: uuid.MustParse("11111111-0000-4000-8000-000000000003"), Type: "fluid", Name: "water"}
	copper    = domcat.Item{ID: uuid.MustParse("11111111-0000-4000-8000-000000000004"), Type: "item", Name: "copper_cable"}

	plateNormal    = domcat.Recipe{ID: uuid.MustParse("22222222-0000-4000-8000-000000000001"), Name: "iron-plate", Mode: domcat.ModeNormal}
	plateExpensive = domcat.Recipe{ID: uuid.MustParse("22222222-0000-4000-8000-000000000002"), Name: "iron-plate", Mode: domcat.ModeExpensive}
	gearNormal     = domcat.Recipe{ID: uuid.MustParse("22222222-0000-4000-8000-000000000003"), Name: "iron-gear-wheel", Mode: domcat.ModeNormal}
)

func testDump() Dump {
	return Dump{
		Items:   []domcat.Item{ironPlate, ironGear, water, copper},
		Recipes: []domcat.Recipe{plateNormal, plateExpensive, gearNormal},
		Products: []domcat.ProductRecipe{
			{ItemID: ironPlate.ID, Recipe: plateNormal},
			{ItemID: ironPlate.ID, Recipe: plateExpensive},
			{ItemID: ironGear.ID, Recipe: gearNormal},
		},
		Translations: []domcat.Translation{
			{Locale: "en", Type: "item", Name: "iron-plate", Value: "Iron plate"},
			{Locale: "de", Type: "item", Name: "iron-plate", Value: "Eisenplatte"},
			{Locale: "en", Type: "item", Name: "iron-gear-wheel", Value: "Iron gear wheel"},
			{Locale: "en", Type: "recipe", Name: "iron-plate", Value: "Iron plate"},
			{Locale: "en", Type: "fluid", Name: "water", Value: "Water"},
		},
	}
}

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	db, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := New(db)
	require.NoError(t, repo.Import(context.Background(), testCombination, testDump()))
	return repo
}

func itemNames(items []domcat.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Type + "/" + it.Name
	}
	return out
}
