package store

import (
	"context"

	"github.com/HCoreBeat/Buquenque/internal/domain"
)

// ListProductsParams holds parameters for listing products (for
// pagination, filtering, sorting).
type ListProductsParams struct {
	Limit       int
	Offset      int
	SearchQuery *string // ILIKE over name/description
	Category    *string
	Available   *bool
	BestSeller  *bool
	OnSale      *bool
	MinPrice    *float64
	MaxPrice    *float64
	SortBy      string // e.g. "price", "name", "created_at"
	SortOrder   string // "asc" or "desc"
}

// ProductStorer defines the database operations for catalog items.
type ProductStorer interface {
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetProductByID(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context, params ListProductsParams) ([]domain.Product, int, error) // Returns products and total count
	UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	// LoadCatalog fetches the full catalog in stored order for the
	// in-memory ranking and matching passes.
	LoadCatalog(ctx context.Context) ([]domain.Product, error)
	// ListCategories returns the distinct category labels in use.
	ListCategories(ctx context.Context) ([]string, error)
}
