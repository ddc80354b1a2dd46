package search

import (
	"context"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/kailas-cloud/catsearch/internal/codec"
	domcat "github.com/kailas-cloud/catsearch/internal/domain/catalog"
	"github.com/kailas-cloud/catsearch/internal/domain/query"
	"github.com/kailas-cloud/catsearch/internal/domain/search/result"
)

var (
	testCombination = uuid.MustParse("3b241101-e2bb-4255-8caf-4136c566a962")

	ironPlate = domcat.Item{ID: uuid.MustParse("11111111-0000-4000-8000-000000000001"), Type: "item", Name: "iron-plate"}
	ironGear  = domcat.Item{ID: uuid.MustParse("11111111-0000-4000-8000-000000000002"), Type: "item", Name: "iron-gear-wheel"}
	water     = domcat.Item{ID: uuid.MustParse("11111111-0000-4000-8000-000000000003"), Type: "fluid", Name: "water"}

	plateNormal    = domcat.Recipe{ID: uuid.MustParse("22222222-0000-4000-8000-000000000001"), Name: "iron-plate", Mode: domcat.ModeNormal}
	plateExpensive = domcat.Recipe{ID: uuid.MustParse("22222222-0000-4000-8000-000000000002"), Name: "iron-plate", Mode: domcat.ModeExpensive}
	gearNormal     = domcat.Recipe{ID: uuid.MustParse("22222222-0000-4000-8000-000000000003"), Name: "iron-gear-wheel", Mode: domcat.ModeNormal}
)

// fakeCatalog answers catalog lookups from in-memory slices.
// Setting err makes every call fail.
type fakeCatalog struct {
	items        []domcat.Item
	recipes      []domcat.Recipe
	products     []domcat.ProductRecipe
	translations []domcat.Translation
	err          error

	mu    sync.Mutex
	calls []string
}

func (f *fakeCatalog) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		items:   []domcat.Item{ironPlate, ironGear, water},
		recipes: []domcat.Recipe{plateNormal, plateExpensive, gearNormal},
		products: []domcat.ProductRecipe{
			{ItemID: ironPlate.ID, Recipe: plateNormal},
			{ItemID: ironPlate.ID, Recipe: plateExpensive},
			{ItemID: ironGear.ID, Recipe: gearNormal},
		},
		translations: []domcat.Translation{
			{Locale: "en", Type: "item", Name: "iron-plate", Value: "Iron plate"},
			{Locale: "de", Type: "item", Name: "iron-plate", Value: "Eisenplatte"},
			{Locale: "en", Type: "item", Name: "iron-gear-wheel", Value: "Iron gear wheel"},
			{Locale: "en", Type: "recipe", Name: "iron-plate", Value: "Iron plate"},
			{Locale: "en", Type: "fluid", Name: "water", Value: "Water"},
			{Locale: "en", Type: "item", Name: "ghost", Value: "Ghost plate"},
		},
	}
}

func containsAll(s string, keywords []string) bool {
	s = strings.ToLower(s)
	for _, kw := range keywords {
		if !strings.Contains(s, strings.ToLower(kw)) {
			return false
		}
	}
	return true
}

func (f *fakeCatalog) ItemsByKeywords(_ context.Context, _ uuid.UUID, keywords []string) ([]domcat.Item, error) {
	f.record("ItemsByKeywords")
	var out []domcat.Item
	for _, it := range f.items {
		if containsAll(it.Name, keywords) {
			out = append(out, it)
		}
	}
	return out, f.err
}

func (f *fakeCatalog) ItemsByNames(_ context.Context, _ uuid.UUID, names []string) ([]domcat.Item, error) {
	f.record("ItemsByNames")
	var out []domcat.Item
	for _, it := range f.items {
		if slices.Contains(names, it.Name) {
			out = append(out, it)
		}
	}
	return out, f.err
}

func (f *fakeCatalog) ItemsByIDs(_ context.Context, _ uuid.UUID, ids []uuid.UUID) ([]domcat.Item, error) {
	f.record("ItemsByIDs")
	var out []domcat.Item
	for _, it := range f.items {
		if slices.Contains(ids, it.ID) {
			out = append(out, it)
		}
	}
	return out, f.err
}

func (f *fakeCatalog) RecipesByKeywords(_ context.Context, _ uuid.UUID, keywords []string) ([]domcat.Recipe, error) {
	f.record("RecipesByKeywords")
	var out []domcat.Recipe
	for _, rc := range f.recipes {
		if containsAll(rc.Name, keywords) {
			out = append(out, rc)
		}
	}
	return out, f.err
}

func (f *fakeCatalog) RecipesByNames(_ context.Context, _ uuid.UUID, names []string) ([]domcat.Recipe, error) {
	f.record("RecipesByNames")
	var out []domcat.Recipe
	for _, rc := range f.recipes {
		if slices.Contains(names, rc.Name) {
			out = append(out, rc)
		}
	}
	return out, f.err
}

func (f *fakeCatalog) RecipesByIDs(_ context.Context, _ uuid.UUID, ids []uuid.UUID) ([]domcat.Recipe, error) {
	f.record("RecipesByIDs")
	var out []domcat.Recipe
	for _, rc := range f.recipes {
		if slices.Contains(ids, rc.ID) {
			out = append(out, rc)
		}
	}
	return out, f.err
}

func (f *fakeCatalog) RecipesByProducts(_ context.Context, _ uuid.UUID, ids []uuid.UUID) ([]domcat.ProductRecipe, error) {
	f.record("RecipesByProducts")
	var out []domcat.ProductRecipe
	for _, p := range f.products {
		if slices.Contains(ids, p.ItemID) {
			out = append(out, p)
		}
	}
	return out, f.err
}

func (f *fakeCatalog) Translations(_ context.Context, _ uuid.UUID, locales, keywords []string) ([]domcat.Translation, error) {
	f.record("Translations")
	var out []domcat.Translation
	for _, t := range f.translations {
		if slices.Contains(locales, t.Locale) && containsAll(t.Value, keywords) {
			out = append(out, t)
		}
	}
	return out, f.err
}

// mockCache records writes and serves a preset lookup result.
type mockCache struct {
	mu      sync.Mutex
	hit     *result.Paginated
	stored  *result.Paginated
	lookups int
	stores  int
}

func (m *mockCache) Lookup(_ context.Context, _ uuid.UUID, _ string, _ uuid.UUID) *result.Paginated {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups++
	return m.hit
}

func (m *mockCache) Store(_ context.Context, _ *query.Query, results *result.Paginated) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stores++
	m.stored = results
}

func testConfig() Config {
	return Config{
		DefaultLocale:   "en",
		FallbackLocale:  "en",
		DefaultPageSize: 10,
		MaxPageSize:     50,
		MaxQueryLength:  32,
	}
}

func mustQuery(t *testing.T, locale, raw string) *query.Query {
	t.Helper()
	q, err := query.FromString(testCombination, locale, raw)
	if err != nil {
		t.Fatalf("build query: %v", err)
	}
	return q
}

func signature(rs []result.Result) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Type() + "|" + r.Name()
	}
	return out
}

// codecCache keeps only the encoded payload between calls, like the real
// cache service does.
type codecCache struct {
	mu      sync.Mutex
	payload []byte
}

func (c *codecCache) Lookup(_ context.Context, _ uuid.UUID, _ string, _ uuid.UUID) *result.Paginated {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.payload == nil {
		return nil
	}
	rs, err := codec.DeserializeSet(c.payload)
	if err != nil {
		return nil
	}
	p := result.NewPaginated(rs)
	p.MarkCached()
	return p
}

func (c *codecCache) Store(_ context.Context, _ *query.Query, results *result.Paginated) {
	data, err := codec.SerializeSet(results.All())
	if err != nil {
		return
	}
	c.mu.Lock()
	c.payload = data
	c.mu.Unlock()
}

// blockingCatalog holds Translations until release is closed or the
// calling context is done.
type blockingCatalog struct {
	*fakeCatalog
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func newBlockingCatalog() *blockingCatalog {
	return &blockingCatalog{
		fakeCatalog: newFakeCatalog(),
		entered:     make(chan struct{}),
		release:     make(chan struct{}),
	}
}

func (b *blockingCatalog) Translations(ctx context.Context, comb uuid.UUID, locales, keywords []string) ([]domcat.Translation, error) {
	b.once.Do(func() { close(b.entered) })
	select {
	case <-b.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return b.fakeCatalog.Translations(ctx, comb, locales, keywords)
}

// describe renders every field a caller can observe on a result.
func describe(r result.Result) string {
	s := r.Type() + "|" + r.Name()
	switch v := r.(type) {
	case *result.ItemResult:
		s += "|id=" + nullID(v.ID())
		for _, nested := range v.Recipes().All() {
			s += " [" + describe(nested) + "]"
		}
	case *result.RecipeResult:
		s += "|normal=" + nullID(v.NormalID()) + "|expensive=" + nullID(v.ExpensiveID())
	}
	return s
}

func nullID(id uuid.NullUUID) string {
	if !id.Valid {
		return "-"
	}
	return id.UUID.String()
}
