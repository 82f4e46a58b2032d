package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HCoreBeat/Buquenque/internal/domain"
)

func TestCreatedDate_ExplicitTimestampWins(t *testing.T) {
	now := time.Now()
	explicit := now.Add(-90 * 24 * time.Hour)
	p := &domain.Product{
		ID:        "prod_1700000000000_0001", // embedded stamp must lose to CreatedAt
		Name:      "Guayaba",
		CreatedAt: &explicit,
	}

	got := CreatedDate(p, now)
	assert.True(t, got.Equal(explicit))
}

func TestCreatedDate_EmbeddedStampInID(t *testing.T) {
	now := time.Now()
	p := &domain.Product{ID: "prod_1700000000000_0042", Name: "Mango"}

	got := CreatedDate(p, now)
	assert.True(t, got.Equal(time.UnixMilli(1700000000000)))
}

func TestCreatedDate_EmbeddedStampInName(t *testing.T) {
	now := time.Now()
	p := &domain.Product{ID: "x1", Name: "prod_1650000000000_legacy"}

	got := CreatedDate(p, now)
	assert.True(t, got.Equal(time.UnixMilli(1650000000000)))
}

func TestCreatedDate_HashFallbackIsDeterministic(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	a := &domain.Product{ID: "a", Name: "Café Especial"}
	b := &domain.Product{ID: "b", Name: "Café Especial"}

	da := CreatedDate(a, now)
	db := CreatedDate(b, now)
	assert.True(t, da.Equal(db), "same name must derive the same fallback date")

	// Bounded to at most 29 days before now.
	require.False(t, da.After(now))
	assert.LessOrEqual(t, now.Sub(da), 30*24*time.Hour)
}

func TestCreatedDate_CachedWithinSession(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	p := &domain.Product{ID: "p9", Name: "Yuca"}

	first := CreatedDate(p, now)
	second := CreatedDate(p, now.Add(48*time.Hour)) // later "now" must not reshuffle the derived date
	assert.True(t, first.Equal(second))
}

func TestEnrich_PopulatesEveryItem(t *testing.T) {
	now := time.Now()
	items := []domain.Product{
		{ID: "prod_1700000000000_0001", Name: "Mango"},
		{ID: "p2", Name: "Piña"},
	}

	Enrich(items, now)

	for i := range items {
		assert.False(t, items[i].CreatedDate.IsZero())
	}
}

func TestDaysBetween(t *testing.T) {
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, daysBetween(base, base.Add(23*time.Hour)))
	assert.Equal(t, 1, daysBetween(base, base.Add(24*time.Hour)))
	assert.Equal(t, 7, daysBetween(base, base.Add(7*24*time.Hour+time.Minute)))
	assert.Equal(t, -1, daysBetween(base, base.Add(-time.Hour)))
}

func TestHash32_SignedOverflowSemantics(t *testing.T) {
	// hash*31 + char with int32 wraparound at every step; long strings
	// must overflow rather than widen.
	assert.Equal(t, int32('a'), hash32("a"))
	assert.Equal(t, int32('a')*31+int32('b'), hash32("ab"))

	long := "productos frescos del campo cubano con entrega a domicilio"
	assert.Equal(t, hash32(long), hash32(long))
	assert.NotEqual(t, hash32(long), hash32(long+"!"))
}
