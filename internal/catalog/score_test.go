package catalog

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/HCoreBeat/Buquenque/internal/domain"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestScore_UnavailableDominates(t *testing.T) {
	now := time.Now()
	p := &domain.Product{
		ID:              "p1",
		Name:            "Widget",
		Available:       false,
		BestSeller:      true,
		OnSale:          true,
		DiscountPercent: 50,
		CreatedAt:       timePtr(now), // maximally fresh, still must not matter
	}

	assert.Equal(t, float64(UnavailableScore), Score(p, now, DefaultOptions()))
	assert.Equal(t, float64(UnavailableScore), Score(p, now, BestSellerOptions()),
		"the flat adjustment must not touch unavailable items")
}

func TestScore_Deterministic(t *testing.T) {
	now := time.Now()
	p := &domain.Product{ID: "p2", Name: "Malanga", Available: true, BestSeller: true}

	first := Score(p, now, DefaultOptions())
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Score(p, now, DefaultOptions()))
	}
}

func TestScore_SaleAndBestSellerBonuses(t *testing.T) {
	now := time.Now()
	old := timePtr(now.Add(-100 * 24 * time.Hour)) // outside any boost window
	opts := DefaultOptions()

	base := Score(&domain.Product{ID: "k", Name: "A", Available: true, CreatedAt: old}, now, opts)
	bestSeller := Score(&domain.Product{ID: "k", Name: "A", Available: true, BestSeller: true, CreatedAt: old}, now, opts)
	onSale := Score(&domain.Product{ID: "k", Name: "A", Available: true, OnSale: true, DiscountPercent: 10, CreatedAt: old}, now, opts)

	assert.InDelta(t, 50, bestSeller-base, 1e-9)
	assert.InDelta(t, 20, onSale-base, 1e-9)
}

func TestScore_MalformedDiscountHasZeroEffect(t *testing.T) {
	now := time.Now()
	old := timePtr(now.Add(-100 * 24 * time.Hour))
	opts := DefaultOptions()

	base := Score(&domain.Product{ID: "k", Name: "A", Available: true, CreatedAt: old}, now, opts)

	for _, pct := range []float64{0, -5, 101, math.NaN()} {
		got := Score(&domain.Product{ID: "k", Name: "A", Available: true, OnSale: true, DiscountPercent: pct, CreatedAt: old}, now, opts)
		assert.Equal(t, base, got, "discount %v must have zero effect", pct)
	}
}

func TestScore_RoundTripExample(t *testing.T) {
	now := time.Now()
	p := &domain.Product{
		ID:              "p1",
		Name:            "Widget",
		Available:       true,
		OnSale:          true,
		DiscountPercent: 20,
		CreatedAt:       timePtr(now.Add(-time.Hour)),
	}

	expected := 20 + 100*(1-1.0/72)
	assert.InDelta(t, expected, Score(p, now, DefaultOptions()), 2.5+1e-9,
		"score must be 20 + 100*(1-1/72) up to the jitter bound")
}

func TestFreshnessBoost_DecayIsMonotonic(t *testing.T) {
	now := time.Now()
	opts := DefaultOptions()

	prev := math.Inf(1)
	for hours := 0; hours <= 72; hours++ {
		p := &domain.Product{
			ID:        "p3",
			Name:      "Boniato",
			Available: true,
			CreatedAt: timePtr(now.Add(-time.Duration(hours) * time.Hour)),
		}
		boost := freshnessBoost(p, now, opts)
		assert.LessOrEqual(t, boost, prev, "boost must be non-increasing at %dh", hours)
		prev = boost
	}

	stale := &domain.Product{
		ID:        "p3",
		Name:      "Boniato",
		Available: true,
		CreatedAt: timePtr(now.Add(-72 * time.Hour)),
	}
	assert.Equal(t, 0.0, freshnessBoost(stale, now, opts))
}

func TestFreshnessBoost_ZeroFadeWindowMeansNoBoost(t *testing.T) {
	now := time.Now()
	opts := DefaultOptions()
	opts.FadeWindow = 0

	p := &domain.Product{ID: "p4", Name: "Ajíes", Available: true, CreatedAt: timePtr(now)}
	boost := freshnessBoost(p, now, opts)

	assert.Equal(t, 0.0, boost)
	assert.False(t, math.IsNaN(boost) || math.IsInf(boost, 0))
}

func TestScore_BestSellerVariantSubtractsFlatAdjustment(t *testing.T) {
	now := time.Now()
	p := &domain.Product{ID: "p5", Name: "Frijoles", Available: true, BestSeller: true}

	general := Score(p, now, DefaultOptions())
	conservative := Score(p, now, BestSellerOptions())
	assert.InDelta(t, -50, conservative-general, 1e-9)
}

func TestJitter_Bounds(t *testing.T) {
	for _, id := range []string{"p1", "prod_1700000000000_0042", "", "zanahoria", "ñame"} {
		j := jitter(id)
		assert.GreaterOrEqual(t, j, -2.5)
		assert.LessOrEqual(t, j, 2.5)
		assert.Equal(t, j, jitter(id))
	}
}
