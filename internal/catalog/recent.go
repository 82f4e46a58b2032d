package catalog

import (
	"sort"
	"time"

	"github.com/HCoreBeat/Buquenque/internal/domain"
)

// Recent returns the newest available items: those whose derived
// creation date falls within the last windowDays, newest first, capped
// at limit. Used for the "recently added" storefront strip.
func Recent(items []domain.Product, now time.Time, windowDays, limit int) []domain.Product {
	if len(items) == 0 || limit <= 0 {
		return []domain.Product{}
	}

	recent := make([]domain.Product, 0, limit)
	for i := range items {
		p := items[i]
		if !p.Available {
			continue
		}
		if daysBetween(CreatedDate(&p, now), now) <= windowDays {
			recent = append(recent, p)
		}
	}

	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedDate.After(recent[j].CreatedDate)
	})

	if len(recent) > limit {
		recent = recent[:limit]
	}
	return recent
}
