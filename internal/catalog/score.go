package catalog

import (
	"math"
	"time"

	"github.com/HCoreBeat/Buquenque/internal/domain"
)

const (
	// UnavailableScore is returned for any item that cannot be sold;
	// it sorts behind every reachable combination of boosts.
	UnavailableScore = -1000

	bestSellerBonus   = 50
	saleBonus         = 20
	freshnessBoostMax = 100
)

// RandSource supplies the randomness for the freshness shuffle. A
// *math/rand.Rand satisfies it; tests inject a seeded one to pin down
// shuffle outcomes.
type RandSource interface {
	Float64() float64
	Intn(n int) int
}

// Options carries the tunables of a ranking pass. The zero value is not
// usable; start from DefaultOptions or BestSellerOptions.
type Options struct {
	BoostWindow        time.Duration // age under which an item still receives the freshness boost
	FadeWindow         time.Duration // age at which the boost has decayed to zero
	ShufflePercent     float64       // chance in [0,100) that a pass shuffles its top items
	ShuffleCapFraction float64       // shuffled prefix as a fraction of the list
	ShuffleCapMax      int           // absolute ceiling on the shuffled prefix
	ScoreAdjust        float64       // flat adjustment applied to every available item
	Rand               RandSource    // nil means a time-seeded source
}

// DefaultOptions configures the general catalog view: 30% shuffle chance
// over at most the top 15 items.
func DefaultOptions() Options {
	return Options{
		BoostWindow:        48 * time.Hour,
		FadeWindow:         72 * time.Hour,
		ShufflePercent:     30,
		ShuffleCapFraction: 0.15,
		ShuffleCapMax:      15,
	}
}

// BestSellerOptions configures the more conservative best-sellers view:
// 15% shuffle chance over at most the top 5 items, with a flat -50 since
// top-seller status is considered independently fresh enough.
func BestSellerOptions() Options {
	return Options{
		BoostWindow:        48 * time.Hour,
		FadeWindow:         72 * time.Hour,
		ShufflePercent:     15,
		ShuffleCapFraction: 0.08,
		ShuffleCapMax:      5,
		ScoreAdjust:        -50,
	}
}

// Score computes the relevance score of a single item at the reference
// time now. Unavailable items score exactly UnavailableScore; everything
// else combines promotional bonuses, a linearly decaying freshness boost
// and a deterministic jitter in [-2.5, +2.5] that breaks structural ties.
func Score(p *domain.Product, now time.Time, opts Options) float64 {
	if !p.Available {
		return UnavailableScore
	}

	var score float64
	if p.BestSeller {
		score += bestSellerBonus
	}
	if p.OnSale && saleDiscount(p.DiscountPercent) > 0 {
		score += saleBonus
	}
	score += freshnessBoost(p, now, opts)
	score += jitter(p.ID)
	return score + opts.ScoreAdjust
}

// freshnessBoost decays linearly from freshnessBoostMax at age zero to
// nothing at FadeWindow. A fade window of zero disables the boost rather
// than dividing by it.
func freshnessBoost(p *domain.Product, now time.Time, opts Options) float64 {
	if opts.FadeWindow <= 0 {
		return 0
	}
	hoursOld := now.Sub(CreatedDate(p, now)).Hours()
	if hoursOld > opts.BoostWindow.Hours() {
		return 0
	}
	factor := 1 - hoursOld/opts.FadeWindow.Hours()
	if factor < 0 {
		factor = 0
	}
	return freshnessBoostMax * factor
}

// jitter maps an id to one of {-2.5, -1.5, -0.5, +0.5, +1.5}.
func jitter(id string) float64 {
	return float64(absHash(id)%5) - 2.5
}

// saleDiscount coerces a discount to its effective value: anything
// outside (0,100], or not a number at all, has zero effect.
func saleDiscount(pct float64) float64 {
	if math.IsNaN(pct) || pct <= 0 || pct > 100 {
		return 0
	}
	return pct
}
