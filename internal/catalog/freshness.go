package catalog

import (
	"regexp"
	"strconv"
	"time"

	"github.com/HCoreBeat/Buquenque/internal/domain"
)

// fallbackDaySpread bounds how far in the past a derived fallback date
// can land: abs(hash) mod 30 days before now.
const fallbackDaySpread = 30

// Ids and names created by the store embed an epoch-millisecond stamp,
// e.g. "prod_1757451023000_0042".
var embeddedStampPattern = regexp.MustCompile(`prod_(\d+)_`)

// CreatedDate returns a single stable creation date for p, caching the
// result on the item. Priority order: explicit CreatedAt, an epoch stamp
// embedded in the id or name, then a pseudo-random but deterministic
// offset from now derived by hashing the name. The same item with the
// same name always derives the same fallback date within a session.
func CreatedDate(p *domain.Product, now time.Time) time.Time {
	if !p.CreatedDate.IsZero() {
		return p.CreatedDate
	}
	p.CreatedDate = deriveCreatedDate(p, now)
	return p.CreatedDate
}

func deriveCreatedDate(p *domain.Product, now time.Time) time.Time {
	if p.CreatedAt != nil {
		return *p.CreatedAt
	}
	if ts, ok := embeddedStamp(p.ID); ok {
		return ts
	}
	if ts, ok := embeddedStamp(p.Name); ok {
		return ts
	}
	dayOffset := absHash(p.Name) % fallbackDaySpread
	return now.AddDate(0, 0, -int(dayOffset))
}

func embeddedStamp(s string) (time.Time, bool) {
	m := embeddedStampPattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	millis, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(millis), true
}

// Enrich populates the derived creation date of every item in place.
// Called once per catalog load so repeated renders agree on freshness.
func Enrich(items []domain.Product, now time.Time) {
	for i := range items {
		CreatedDate(&items[i], now)
	}
}

// daysBetween returns the whole days elapsed from a to b, rounded toward
// negative infinity.
func daysBetween(a, b time.Time) int {
	const msPerDay = 24 * 60 * 60 * 1000
	ms := b.UnixMilli() - a.UnixMilli()
	if ms < 0 {
		return int((ms - msPerDay + 1) / msPerDay)
	}
	return int(ms / msPerDay)
}
