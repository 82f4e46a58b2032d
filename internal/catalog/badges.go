package catalog

import (
	"time"

	"github.com/HCoreBeat/Buquenque/internal/domain"
)

// Badge kinds emitted by Badges.
const (
	BadgeNewToday    = "new-today"
	BadgeNewThisWeek = "new-this-week"
	BadgeUpdated     = "updated"
)

// Badge is a time-bounded marker attached to an item for display.
// RemainingDays counts how many days the badge stays valid; it is
// informational only and never negative.
type Badge struct {
	Kind          string `json:"kind"`
	Label         string `json:"label"`
	RemainingDays int    `json:"remaining_days"`
}

// BadgeOptions holds the age thresholds, in days, for each badge kind.
type BadgeOptions struct {
	NewToday    int
	NewThisWeek int
	Updated     int
}

func DefaultBadgeOptions() BadgeOptions {
	return BadgeOptions{NewToday: 1, NewThisWeek: 7, Updated: 14}
}

// Badges derives the badges p carries at the reference time now. The two
// new-badges are mutually exclusive; "updated" can co-occur with either.
func Badges(p *domain.Product, now time.Time, opts BadgeOptions) []Badge {
	badges := []Badge{}

	daysOld := daysBetween(CreatedDate(p, now), now)
	if daysOld <= opts.NewToday {
		badges = append(badges, Badge{
			Kind:          BadgeNewToday,
			Label:         "New today",
			RemainingDays: opts.NewToday - daysOld,
		})
	} else if daysOld <= opts.NewThisWeek {
		badges = append(badges, Badge{
			Kind:          BadgeNewThisWeek,
			Label:         "New this week",
			RemainingDays: opts.NewThisWeek - daysOld,
		})
	}

	if p.ModifiedAt != nil {
		daysModified := daysBetween(*p.ModifiedAt, now)
		if daysModified <= opts.Updated {
			badges = append(badges, Badge{
				Kind:          BadgeUpdated,
				Label:         "Updated",
				RemainingDays: opts.Updated - daysModified,
			})
		}
	}

	return badges
}
