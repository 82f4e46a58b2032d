package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HCoreBeat/Buquenque/internal/domain"
)

func TestRecent_FiltersSortsAndCaps(t *testing.T) {
	now := time.Now()
	items := []domain.Product{
		{ID: "r1", Name: "Viejo", Available: true, CreatedAt: timePtr(now.Add(-40 * 24 * time.Hour))},
		{ID: "r2", Name: "Ayer", Available: true, CreatedAt: timePtr(now.Add(-1 * 24 * time.Hour))},
		{ID: "r3", Name: "Semana", Available: true, CreatedAt: timePtr(now.Add(-6 * 24 * time.Hour))},
		{ID: "r4", Name: "Hoy", Available: true, CreatedAt: timePtr(now.Add(-2 * time.Hour))},
		{ID: "r5", Name: "Agotado", Available: false, CreatedAt: timePtr(now.Add(-1 * time.Hour))},
	}

	recent := Recent(items, now, 14, 5)

	require.Equal(t, []string{"r4", "r2", "r3"}, ids(recent),
		"newest first, outside-window and unavailable items excluded")

	capped := Recent(items, now, 14, 2)
	assert.Equal(t, []string{"r4", "r2"}, ids(capped))
}

func TestRecent_EmptyAndZeroLimit(t *testing.T) {
	now := time.Now()
	assert.Empty(t, Recent(nil, now, 14, 5))
	assert.Empty(t, Recent([]domain.Product{{ID: "x", Name: "X", Available: true}}, now, 14, 0))
}
