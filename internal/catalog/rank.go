package catalog

import (
	"math/rand"
	"sort"
	"time"

	"github.com/HCoreBeat/Buquenque/internal/domain"
)

type scoredItem struct {
	product domain.Product
	score   float64
}

// Rank scores every item and returns a new slice in display order:
// stable-sorted by score descending, then occasionally perturbed by the
// freshness shuffle. The input slice is never reordered; an empty or nil
// input yields an empty slice.
func Rank(items []domain.Product, now time.Time, opts Options) []domain.Product {
	if len(items) == 0 {
		return []domain.Product{}
	}

	scored := make([]scoredItem, len(items))
	for i := range items {
		p := items[i]
		s := Score(&p, now, opts) // also caches the derived date on the copy
		scored[i] = scoredItem{product: p, score: s}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if rng.Float64()*100 < opts.ShufflePercent {
		shufflePrefix(scored, shuffleCount(len(scored), opts), rng)
	}

	ranked := make([]domain.Product, len(scored))
	for i, s := range scored {
		ranked[i] = s.product
	}
	return ranked
}

// shuffleCount bounds the shuffled prefix so a shuffle pass surfaces a
// different subset of top items without materially breaking relevance.
func shuffleCount(n int, opts Options) int {
	k := int(float64(n) * opts.ShuffleCapFraction)
	if k > opts.ShuffleCapMax {
		k = opts.ShuffleCapMax
	}
	if k > n {
		k = n
	}
	return k
}

// shufflePrefix applies a Fisher-Yates permutation to the first k items,
// leaving the remainder of the order untouched.
func shufflePrefix(scored []scoredItem, k int, rng RandSource) {
	for i := k - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		scored[i], scored[j] = scored[j], scored[i]
	}
}
