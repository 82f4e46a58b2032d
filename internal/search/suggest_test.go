package search

import (
	"fmt"
	"testing"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HCoreBeat/Buquenque/internal/domain"
)

func strPtr(s string) *string { return &s }

func testCatalog() []domain.Product {
	return []domain.Product{
		{ID: "p1", Name: "Café Especial", Category: "Bebidas", Available: true},
		{ID: "p2", Name: "Tomate Fresco", Category: "Vegetales", Available: true},
		{ID: "p3", Name: "Tomato", Category: "Vegetales", Available: true},
		{ID: "p4", Name: "Pan de Ajo", Description: strPtr("pan artesanal con tomate"), Category: "Panadería", Available: true},
		{ID: "p5", Name: "Tomate Seco", Category: "Vegetales", Available: false},
	}
}

func TestSuggestions_DiacriticsFoldInSubstringTier(t *testing.T) {
	got := Suggestions("cafe", testCatalog(), nil, DefaultOptions())

	require.Len(t, got, 1)
	assert.Equal(t, KindProduct, got[0].Kind)
	assert.Equal(t, "p1", got[0].Product.ID)
}

func TestSuggestions_ExactSubstringPrecedesFuzzy(t *testing.T) {
	// "p3" (Tomato) only matches at edit distance 1; every substring hit
	// must come first even though p3 sits earlier than p4 in the catalog.
	got := Suggestions("tomate", testCatalog(), nil, DefaultOptions())

	require.Len(t, got, 3)
	assert.Equal(t, "p2", got[0].Product.ID, "name substring, catalog order")
	assert.Equal(t, "p4", got[1].Product.ID, "description substring")
	assert.Equal(t, "p3", got[2].Product.ID, "fuzzy-only match comes last")
}

func TestSuggestions_UnavailableItemsNeverMatch(t *testing.T) {
	got := Suggestions("tomate", testCatalog(), nil, DefaultOptions())
	for _, s := range got {
		if s.Kind == KindProduct {
			assert.NotEqual(t, "p5", s.Product.ID)
			assert.True(t, s.Product.Available)
		}
	}
}

func TestSuggestions_CategoryTier(t *testing.T) {
	categories := []string{"all", "Bebidas", "Vegetales"}

	got := Suggestions("bebi", testCatalog(), categories, DefaultOptions())

	require.NotEmpty(t, got)
	// p1 carries category "Bebidas" so the substring tier finds it first,
	// then the category label itself.
	assert.Equal(t, KindProduct, got[0].Kind)
	assert.Equal(t, "p1", got[0].Product.ID)
	require.Len(t, got, 2)
	assert.Equal(t, KindCategory, got[1].Kind)
	assert.Equal(t, "Bebidas", got[1].Category)
}

func TestSuggestions_AllPseudoCategoryExcluded(t *testing.T) {
	got := Suggestions("all", nil, []string{"all"}, DefaultOptions())
	assert.Empty(t, got)
}

func TestSuggestions_DedupAcrossTiers(t *testing.T) {
	got := Suggestions("tomate", testCatalog(), []string{"Vegetales"}, DefaultOptions())

	seen := map[string]int{}
	for _, s := range got {
		key := string(s.Kind) + ":" + s.Category
		if s.Product != nil {
			key = string(s.Kind) + ":" + s.Product.ID
		}
		seen[key]++
	}
	for key, count := range seen {
		assert.Equal(t, 1, count, "duplicate suggestion %s", key)
	}
}

func TestSuggestions_LimitCapsResults(t *testing.T) {
	items := make([]domain.Product, 10)
	for i := range items {
		items[i] = domain.Product{
			ID:        fmt.Sprintf("m%d", i),
			Name:      fmt.Sprintf("Mango %d", i),
			Category:  "Frutas",
			Available: true,
		}
	}

	got := Suggestions("mango", items, nil, Options{Limit: 3})
	assert.Len(t, got, 3)

	// Default limit is 6.
	got = Suggestions("mango", items, nil, DefaultOptions())
	assert.Len(t, got, 6)
}

func TestSuggestions_EmptyQuery(t *testing.T) {
	assert.Empty(t, Suggestions("", testCatalog(), nil, DefaultOptions()))
	assert.Empty(t, Suggestions("   ", testCatalog(), nil, DefaultOptions()))
}

func TestLevenshteinExample(t *testing.T) {
	assert.Equal(t, 1, fuzzy.LevenshteinDistance("tomate", "tomatee"))

	items := []domain.Product{{ID: "t1", Name: "tomatee", Category: "Vegetales", Available: true}}
	got := Suggestions("tomate", items, nil, DefaultOptions())
	require.Len(t, got, 1)
	assert.Equal(t, "t1", got[0].Product.ID)
}

func TestDistanceThreshold(t *testing.T) {
	assert.Equal(t, 1, distanceThreshold(2, 0.35), "short queries keep the minimum of one edit")
	assert.Equal(t, 2, distanceThreshold(6, 0.35))
	assert.Equal(t, 2, distanceThreshold(6, 0.45))
	assert.Equal(t, 4, distanceThreshold(10, 0.45))
}

func TestSuggestions_FuzzyCategoryTier(t *testing.T) {
	// "vegetale" is one edit away from "vegetales" and also a substring;
	// "frutaz" needs the fuzzy tier to reach "Frutas".
	categories := []string{"Vegetales", "Frutas"}

	got := Suggestions("frutaz", nil, categories, DefaultOptions())
	require.Len(t, got, 1)
	assert.Equal(t, KindCategory, got[0].Kind)
	assert.Equal(t, "Frutas", got[0].Category)
}
