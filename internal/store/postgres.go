package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/HCoreBeat/Buquenque/internal/domain"
)

// Predefined errors for store operations
var (
	ErrProductNotFound = errors.New("store: product not found")
	ErrProductIDExists = errors.New("store: product id already exists")
)

const productColumns = `id, name, description, category, price, discount_percent, available, best_seller, on_sale, featured, image_url, created_at, modified_at`

// PostgresStore implements the ProductStorer interface using PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgresStore instance.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// NewProductID mints an id in the `prod_<epochMillis>_<n>` convention.
// The embedded stamp doubles as the item's creation date whenever the
// created_at column is left NULL.
func NewProductID(now time.Time) string {
	return fmt.Sprintf("prod_%d_%04d", now.UnixMilli(), rand.Intn(10000))
}

func (s *PostgresStore) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product.ID == "" {
		product.ID = NewProductID(time.Now())
	}

	query := `
		INSERT INTO catalog.products
			(id, name, description, category, price, discount_percent, available, best_seller, on_sale, featured, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + productColumns + `;
	`
	row := s.db.QueryRowContext(ctx, query,
		product.ID, product.Name, product.Description, product.Category, product.Price,
		product.DiscountPercent, product.Available, product.BestSeller, product.OnSale,
		product.Featured, product.ImageURL, product.CreatedAt,
	)

	created, err := scanProduct(row)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // Unique violation
			if strings.Contains(pqErr.Constraint, "products_pkey") || strings.Contains(pqErr.Detail, "Key (id)") {
				return nil, ErrProductIDExists
			}
		}
		return nil, fmt.Errorf("store: CreateProduct failed to scan row: %w", err)
	}
	return created, nil
}

func (s *PostgresStore) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM catalog.products
		WHERE id = $1;
	`
	product, err := scanProduct(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("store: GetProductByID failed to scan row: %w", err)
	}
	return product, nil
}

func (s *PostgresStore) ListProducts(ctx context.Context, params ListProductsParams) ([]domain.Product, int, error) {
	var queryArgs []interface{}
	var whereClauses []string
	argID := 1

	if params.SearchQuery != nil && *params.SearchQuery != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", argID, argID+1))
		searchTerm := "%" + *params.SearchQuery + "%"
		queryArgs = append(queryArgs, searchTerm, searchTerm)
		argID += 2
	}
	if params.Category != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("category = $%d", argID))
		queryArgs = append(queryArgs, *params.Category)
		argID++
	}
	if params.Available != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("available = $%d", argID))
		queryArgs = append(queryArgs, *params.Available)
		argID++
	}
	if params.BestSeller != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("best_seller = $%d", argID))
		queryArgs = append(queryArgs, *params.BestSeller)
		argID++
	}
	if params.OnSale != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("on_sale = $%d", argID))
		queryArgs = append(queryArgs, *params.OnSale)
		argID++
	}
	if params.MinPrice != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("price >= $%d", argID))
		queryArgs = append(queryArgs, *params.MinPrice)
		argID++
	}
	if params.MaxPrice != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("price <= $%d", argID))
		queryArgs = append(queryArgs, *params.MaxPrice)
		argID++
	}

	whereCondition := ""
	if len(whereClauses) > 0 {
		whereCondition = " WHERE " + strings.Join(whereClauses, " AND ")
	}

	countQuery := "SELECT COUNT(*) FROM catalog.products" + whereCondition
	var totalCount int
	if err := s.db.QueryRowContext(ctx, countQuery, queryArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("store: ListProducts failed to count products: %w", err)
	}

	if totalCount == 0 {
		return []domain.Product{}, 0, nil
	}

	sortColumn := "name" // Default sort
	allowedSortColumns := map[string]string{
		"name":        "name",
		"price":       "price",
		"category":    "category",
		"created_at":  "created_at",
		"modified_at": "modified_at",
	}
	if col, ok := allowedSortColumns[strings.ToLower(params.SortBy)]; ok {
		sortColumn = col
	}

	sortOrder := "ASC" // Default order
	if strings.ToUpper(params.SortOrder) == "DESC" {
		sortOrder = "DESC"
	}

	dataQuery := fmt.Sprintf(
		"SELECT %s FROM catalog.products%s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		productColumns, whereCondition, sortColumn, sortOrder, argID, argID+1)

	finalQueryArgs := append(queryArgs, params.Limit, params.Offset)

	rows, err := s.db.QueryContext(ctx, dataQuery, finalQueryArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("store: ListProducts failed to query products: %w", err)
	}
	defer rows.Close()

	products, err := collectProducts(rows, params.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("store: ListProducts: %w", err)
	}
	return products, totalCount, nil
}

func (s *PostgresStore) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	// modified_at is stamped here so the "updated" freshness badge tracks
	// real catalog edits.
	query := `
		UPDATE catalog.products
		SET name = $1, description = $2, category = $3, price = $4, discount_percent = $5,
			available = $6, best_seller = $7, on_sale = $8, featured = $9, image_url = $10,
			modified_at = CURRENT_TIMESTAMP
		WHERE id = $11
		RETURNING ` + productColumns + `;
	`
	updated, err := scanProduct(s.db.QueryRowContext(ctx, query,
		product.Name, product.Description, product.Category, product.Price,
		product.DiscountPercent, product.Available, product.BestSeller, product.OnSale,
		product.Featured, product.ImageURL, product.ID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("store: UpdateProduct failed to scan row: %w", err)
	}
	return updated, nil
}

func (s *PostgresStore) DeleteProduct(ctx context.Context, id string) error {
	query := `DELETE FROM catalog.products WHERE id = $1;`
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("store: DeleteProduct failed to execute delete: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: DeleteProduct failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// LoadCatalog fetches every product in stored order. The ranking and
// matching passes operate on this in-memory sequence; unavailable items
// are included since the scorer itself sinks them.
func (s *PostgresStore) LoadCatalog(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM catalog.products
		ORDER BY name ASC;
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("store: LoadCatalog failed to query products: %w", err)
	}
	defer rows.Close()

	products, err := collectProducts(rows, 0)
	if err != nil {
		return nil, fmt.Errorf("store: LoadCatalog: %w", err)
	}
	return products, nil
}

func (s *PostgresStore) ListCategories(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT category
		FROM catalog.products
		WHERE category <> ''
		ORDER BY category ASC;
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("store: ListCategories failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("store: ListCategories failed to scan row: %w", err)
		}
		categories = append(categories, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListCategories iteration error: %w", err)
	}
	return categories, nil
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		log.Println("INFO: Closing database connection pool...")
		if err := s.db.Close(); err != nil {
			log.Printf("ERROR: Failed to close database connection pool: %v", err)
			return err
		}
	}
	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	var createdAt, modifiedAt sql.NullTime
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Category, &p.Price, &p.DiscountPercent,
		&p.Available, &p.BestSeller, &p.OnSale, &p.Featured, &p.ImageURL,
		&createdAt, &modifiedAt,
	)
	if err != nil {
		return nil, err
	}
	if createdAt.Valid {
		t := createdAt.Time
		p.CreatedAt = &t
	}
	if modifiedAt.Valid {
		t := modifiedAt.Time
		p.ModifiedAt = &t
	}
	return &p, nil
}

func collectProducts(rows *sql.Rows, sizeHint int) ([]domain.Product, error) {
	products := make([]domain.Product, 0, sizeHint)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iteration error: %w", err)
	}
	return products, nil
}
