package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/HCoreBeat/Buquenque/internal/domain"
)

// diacriticStripper decomposes to NFD, drops the combining marks and
// recomposes, so "Café" folds to "Cafe".
var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases s and strips its diacritics. All substring
// comparisons in the matcher operate on normalized text.
func Normalize(s string) string {
	stripped, _, err := transform.String(diacriticStripper, s)
	if err != nil {
		stripped = s
	}
	return strings.ToLower(stripped)
}

// normalized returns the cached normalized fields of p, computing and
// caching them on first use.
func normalized(p *domain.Product) (name, description, category string) {
	if p.NormName == "" && p.Name != "" {
		p.NormName = Normalize(p.Name)
	}
	if p.NormDescription == "" && p.Description != nil {
		p.NormDescription = Normalize(*p.Description)
	}
	if p.NormCategory == "" && p.Category != "" {
		p.NormCategory = Normalize(p.Category)
	}
	return p.NormName, p.NormDescription, p.NormCategory
}

// NormalizeProducts precomputes the normalized text of every item, the
// matcher half of the once-per-load enrichment pass.
func NormalizeProducts(items []domain.Product) {
	for i := range items {
		normalized(&items[i])
	}
}
