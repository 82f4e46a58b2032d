package domain

import (
	"time"
)

// Product represents one sellable entry in the catalog.
// The json tags correspond to the fields expected in API responses/requests.
type Product struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Description     *string    `json:"description,omitempty"` // Pointer for nullable fields, omitempty to exclude if nil
	Category        string     `json:"category"`              // Free-text label, used for grouping and as a matchable field
	Price           float64    `json:"price"`
	Available       bool       `json:"available"`
	BestSeller      bool       `json:"best_seller"`
	OnSale          bool       `json:"on_sale"`
	DiscountPercent float64    `json:"discount_percent"` // Meaningful only while OnSale is true
	Featured        bool       `json:"featured"`
	ImageURL        *string    `json:"image_url,omitempty"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`  // Optional; absent values are derived, see catalog.CreatedDate
	ModifiedAt      *time.Time `json:"modified_at,omitempty"` // Optional; feeds the "updated" badge only

	// Derived per-session cache. Populated on first use and never
	// invalidated within a session; recomputing always yields identical
	// values for fixed raw fields, so redundant writes are harmless.
	CreatedDate     time.Time `json:"-"`
	NormName        string    `json:"-"`
	NormDescription string    `json:"-"`
	NormCategory    string    `json:"-"`
}

// DescriptionText returns the description or "" when absent.
func (p *Product) DescriptionText() string {
	if p.Description == nil {
		return ""
	}
	return *p.Description
}
