package search

import (
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/HCoreBeat/Buquenque/internal/domain"
)

// Kind tags what a suggestion points at.
type Kind string

const (
	KindProduct  Kind = "product"
	KindCategory Kind = "category"
)

// allCategory is the pseudo-category of the storefront's "show
// everything" filter; it is never suggested.
const allCategory = "all"

// Suggestion is one entry of a ranked suggestion list. Exactly one of
// Product and Category is set, according to Kind.
type Suggestion struct {
	Kind     Kind            `json:"kind"`
	Product  *domain.Product `json:"product,omitempty"`
	Category string          `json:"category,omitempty"`
}

// Options tunes a suggestion query. Zero fields fall back to the
// defaults below.
type Options struct {
	Limit                 int     // maximum suggestions returned
	ProductDistanceRatio  float64 // edit-distance threshold per query rune for products
	CategoryDistanceRatio float64 // edit-distance threshold per query rune for categories
}

const (
	defaultLimit                 = 6
	defaultProductDistanceRatio  = 0.35
	defaultCategoryDistanceRatio = 0.45
)

func DefaultOptions() Options {
	return Options{
		Limit:                 defaultLimit,
		ProductDistanceRatio:  defaultProductDistanceRatio,
		CategoryDistanceRatio: defaultCategoryDistanceRatio,
	}
}

func (o Options) withDefaults() Options {
	if o.Limit <= 0 {
		o.Limit = defaultLimit
	}
	if o.ProductDistanceRatio <= 0 {
		o.ProductDistanceRatio = defaultProductDistanceRatio
	}
	if o.CategoryDistanceRatio <= 0 {
		o.CategoryDistanceRatio = defaultCategoryDistanceRatio
	}
	return o
}

// Suggestions matches query against the catalog and the category labels
// and returns a ranked, deduplicated suggestion list capped at the
// configured limit. Tiers are evaluated in order and earlier tiers
// strictly precede later ones: exact substring over the normalized item
// fields, category-name substring, then a fuzzy fallback accepting
// bounded edit distance. Unavailable items never match; within a tier,
// catalog order is preserved.
func Suggestions(query string, items []domain.Product, categories []string, opts Options) []Suggestion {
	opts = opts.withDefaults()

	raw := strings.ToLower(strings.TrimSpace(query))
	q := Normalize(strings.TrimSpace(query))
	if q == "" {
		return []Suggestion{}
	}
	queryLen := utf8.RuneCountInString(raw)

	c := &collector{limit: opts.Limit, seen: make(map[string]bool), out: []Suggestion{}}

	// Tier 1: substring over normalized name/description/category.
	for i := range items {
		if c.full() {
			break
		}
		p := &items[i]
		if !p.Available {
			continue
		}
		name, description, category := normalized(p)
		if strings.Contains(name, q) || strings.Contains(description, q) || strings.Contains(category, q) {
			c.addProduct(p)
		}
	}

	// Tier 2: category names compared as standalone strings.
	for _, label := range categories {
		if c.full() {
			break
		}
		if strings.Contains(normalizedCategory(label), q) {
			c.addCategory(label)
		}
	}

	// Tier 3: fuzzy fallback over items, substring or bounded edit
	// distance on the raw lowercased name.
	productThreshold := distanceThreshold(queryLen, opts.ProductDistanceRatio)
	for i := range items {
		if c.full() {
			break
		}
		p := &items[i]
		if !p.Available {
			continue
		}
		name, _, _ := normalized(p)
		if strings.Contains(name, q) || withinDistance(raw, p.Name, productThreshold) {
			c.addProduct(p)
		}
	}

	// Tier 4: fuzzy fallback over category labels, with the looser
	// secondary-entity threshold.
	categoryThreshold := distanceThreshold(queryLen, opts.CategoryDistanceRatio)
	for _, label := range categories {
		if c.full() {
			break
		}
		norm := normalizedCategory(label)
		if norm == "" {
			continue
		}
		if strings.Contains(norm, q) || withinDistance(raw, label, categoryThreshold) {
			c.addCategory(label)
		}
	}

	return c.out
}

// normalizedCategory folds a category label for matching, mapping the
// "all" pseudo-category to "" so it never matches.
func normalizedCategory(label string) string {
	norm := Normalize(label)
	if norm == allCategory {
		return ""
	}
	return norm
}

// distanceThreshold is the maximum accepted edit distance for a query of
// queryLen runes: max(1, floor(ratio*queryLen)).
func distanceThreshold(queryLen int, ratio float64) int {
	t := int(ratio * float64(queryLen))
	if t < 1 {
		t = 1
	}
	return t
}

// withinDistance reports whether candidate is within threshold edits of
// the query. The distance is computed case-insensitively on the raw
// strings, independent of the diacritic folding the substring tiers use.
func withinDistance(rawQuery, candidate string, threshold int) bool {
	return fuzzy.LevenshteinDistance(rawQuery, strings.ToLower(candidate)) <= threshold
}

// collector accumulates suggestions up to a limit, deduplicating on
// kind + identity.
type collector struct {
	limit int
	seen  map[string]bool
	out   []Suggestion
}

func (c *collector) full() bool {
	return len(c.out) >= c.limit
}

func (c *collector) addProduct(p *domain.Product) {
	key := string(KindProduct) + ":" + p.ID
	if c.seen[key] || c.full() {
		return
	}
	c.seen[key] = true
	c.out = append(c.out, Suggestion{Kind: KindProduct, Product: p})
}

func (c *collector) addCategory(label string) {
	key := string(KindCategory) + ":" + Normalize(label)
	if c.seen[key] || c.full() {
		return
	}
	c.seen[key] = true
	c.out = append(c.out, Suggestion{Kind: KindCategory, Category: label})
}
