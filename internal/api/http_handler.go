package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/HCoreBeat/Buquenque/internal/catalog"
	"github.com/HCoreBeat/Buquenque/internal/config"
	"github.com/HCoreBeat/Buquenque/internal/domain"
	"github.com/HCoreBeat/Buquenque/internal/search"
	"github.com/HCoreBeat/Buquenque/internal/store"
)

// HTTPHandler holds dependencies for HTTP handlers.
type HTTPHandler struct {
	productStore store.ProductStorer
	cfg          *config.Config
	validate     *validator.Validate
}

// NewHTTPHandler creates a new HTTPHandler with dependencies.
func NewHTTPHandler(ps store.ProductStorer, cfg *config.Config) *HTTPHandler {
	return &HTTPHandler{
		productStore: ps,
		cfg:          cfg,
		validate:     validator.New(),
	}
}

// --- Helpers ---

// ErrorResponse defines the structure for JSON error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil { // Avoid writing empty body for 204 No Content
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.Printf("ERROR: Failed to encode JSON response: %v", err)
			http.Error(w, `{"error": "Internal server error during JSON encoding"}`, http.StatusInternalServerError)
		}
	}
}

// rankOptions maps the ranking config onto the catalog view variants.
func (h *HTTPHandler) rankOptions(view string) catalog.Options {
	rc := h.cfg.Ranking
	opts := catalog.Options{
		BoostWindow:        time.Duration(rc.BoostWindowHours) * time.Hour,
		FadeWindow:         time.Duration(rc.FadeoutWindowHours) * time.Hour,
		ShufflePercent:     rc.ShufflePercent,
		ShuffleCapFraction: rc.ShuffleCapFraction,
		ShuffleCapMax:      rc.ShuffleCapMax,
	}
	if view == "best-sellers" {
		opts.ShufflePercent = rc.BestSellerShufflePercent
		opts.ShuffleCapFraction = rc.BestSellerShuffleCapFraction
		opts.ShuffleCapMax = rc.BestSellerShuffleCapMax
		opts.ScoreAdjust = rc.BestSellerScoreAdjust
	}
	return opts
}

func (h *HTTPHandler) badgeOptions() catalog.BadgeOptions {
	bc := h.cfg.Badges
	return catalog.BadgeOptions{
		NewToday:    bc.NewTodayDays,
		NewThisWeek: bc.NewThisWeekDays,
		Updated:     bc.UpdatedDays,
	}
}

// --- Catalog Views ---

// CatalogItemView is a catalog item plus its display badges.
type CatalogItemView struct {
	domain.Product
	Badges []catalog.Badge `json:"badges"`
}

func (h *HTTPHandler) itemViews(items []domain.Product, now time.Time) []CatalogItemView {
	badgeOpts := h.badgeOptions()
	views := make([]CatalogItemView, len(items))
	for i := range items {
		views[i] = CatalogItemView{
			Product: items[i],
			Badges:  catalog.Badges(&items[i], now, badgeOpts),
		}
	}
	return views
}

// GetCatalog serves the dynamically ordered storefront view. The
// best-sellers variant restricts candidates to flagged items and uses
// the conservative shuffle configuration.
func (h *HTTPHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	view := r.URL.Query().Get("view")
	if view == "" {
		view = "general"
	}
	if view != "general" && view != "best-sellers" {
		respondWithError(w, http.StatusBadRequest, "Invalid view. Allowed: general, best-sellers")
		return
	}

	items, err := h.productStore.LoadCatalog(r.Context())
	if err != nil {
		log.Printf("ERROR: GetCatalog failed to load catalog: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load catalog")
		return
	}

	if view == "best-sellers" {
		flagged := make([]domain.Product, 0, len(items))
		for _, p := range items {
			if p.BestSeller {
				flagged = append(flagged, p)
			}
		}
		items = flagged
	}

	now := time.Now()
	catalog.Enrich(items, now)
	ranked := catalog.Rank(items, now, h.rankOptions(view))

	respondWithJSON(w, http.StatusOK, struct {
		View string            `json:"view"`
		Data []CatalogItemView `json:"data"`
	}{View: view, Data: h.itemViews(ranked, now)})
}

// GetRecentProducts serves the "recently added" strip.
func (h *HTTPHandler) GetRecentProducts(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = h.cfg.Ranking.RecentCount
	}
	if limit > 20 {
		limit = 20
	}

	items, err := h.productStore.LoadCatalog(r.Context())
	if err != nil {
		log.Printf("ERROR: GetRecentProducts failed to load catalog: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load catalog")
		return
	}

	now := time.Now()
	recent := catalog.Recent(items, now, h.cfg.Ranking.RecentWindowDays, limit)
	respondWithJSON(w, http.StatusOK, h.itemViews(recent, now))
}

// --- Search ---

// GetSearchSuggestions serves the typeahead suggestion list.
func (h *HTTPHandler) GetSearchSuggestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondWithError(w, http.StatusBadRequest, "Missing required query parameter: q")
		return
	}

	opts := search.Options{
		Limit:                 h.cfg.Search.SuggestionLimit,
		ProductDistanceRatio:  h.cfg.Search.ProductDistanceRatio,
		CategoryDistanceRatio: h.cfg.Search.CategoryDistanceRatio,
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit <= 20 {
			opts.Limit = limit
		} else {
			respondWithError(w, http.StatusBadRequest, "Invalid limit: must be 1-20")
			return
		}
	}

	items, err := h.productStore.LoadCatalog(r.Context())
	if err != nil {
		log.Printf("ERROR: GetSearchSuggestions failed to load catalog: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load catalog")
		return
	}
	categories, err := h.productStore.ListCategories(r.Context())
	if err != nil {
		log.Printf("ERROR: GetSearchSuggestions failed to list categories: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to list categories")
		return
	}

	search.NormalizeProducts(items)
	suggestions := search.Suggestions(query, items, categories, opts)
	respondWithJSON(w, http.StatusOK, struct {
		Query string              `json:"query"`
		Data  []search.Suggestion `json:"data"`
	}{Query: query, Data: suggestions})
}

func (h *HTTPHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.productStore.ListCategories(r.Context())
	if err != nil {
		log.Printf("ERROR: ListCategories store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve categories")
		return
	}
	respondWithJSON(w, http.StatusOK, categories)
}

// --- Product Handlers ---

// ProductCreateInput defines the expected input for creating a product.
type ProductCreateInput struct {
	Name            string   `json:"name" validate:"required,max=255"`
	Description     *string  `json:"description" validate:"omitempty"`
	Category        string   `json:"category" validate:"required,max=100"`
	Price           float64  `json:"price" validate:"required,gte=0"`
	DiscountPercent *float64 `json:"discount_percent" validate:"omitempty,gt=0,lte=100"`
	Available       *bool    `json:"available"` // Pointer to distinguish between not set and false
	BestSeller      bool     `json:"best_seller"`
	OnSale          bool     `json:"on_sale"`
	Featured        bool     `json:"featured"`
	ImageURL        *string  `json:"image_url" validate:"omitempty,url,max=2048"`
}

func (h *HTTPHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var input ProductCreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	available := true // Default to true if not provided
	if input.Available != nil {
		available = *input.Available
	}
	var discount float64
	if input.DiscountPercent != nil {
		discount = *input.DiscountPercent
	}

	product := &domain.Product{
		Name:            input.Name,
		Description:     input.Description,
		Category:        input.Category,
		Price:           input.Price,
		DiscountPercent: discount,
		Available:       available,
		BestSeller:      input.BestSeller,
		OnSale:          input.OnSale,
		Featured:        input.Featured,
		ImageURL:        input.ImageURL,
	}

	createdProduct, err := h.productStore.CreateProduct(r.Context(), product)
	if err != nil {
		log.Printf("ERROR: CreateProduct store operation failed: %v", err)
		if errors.Is(err, store.ErrProductIDExists) {
			respondWithError(w, http.StatusConflict, store.ErrProductIDExists.Error())
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to create product")
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, createdProduct)
}

func (h *HTTPHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	qParams := r.URL.Query()

	limit, err := strconv.Atoi(qParams.Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	page, err := strconv.Atoi(qParams.Get("page"))
	if err != nil || page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	params := store.ListProductsParams{Limit: limit, Offset: offset}

	if q := qParams.Get("q"); q != "" {
		params.SearchQuery = &q
	}
	if c := qParams.Get("category"); c != "" {
		params.Category = &c
	}
	for name, dst := range map[string]**bool{
		"available":   &params.Available,
		"best_seller": &params.BestSeller,
		"on_sale":     &params.OnSale,
	} {
		if v := qParams.Get(name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				respondWithError(w, http.StatusBadRequest, "Invalid "+name+" value: must be true or false")
				return
			}
			*dst = &b
		}
	}
	if priceStr := qParams.Get("min_price"); priceStr != "" {
		if price, err := strconv.ParseFloat(priceStr, 64); err == nil && price >= 0 {
			params.MinPrice = &price
		} else {
			respondWithError(w, http.StatusBadRequest, "Invalid min_price format")
			return
		}
	}
	if priceStr := qParams.Get("max_price"); priceStr != "" {
		if price, err := strconv.ParseFloat(priceStr, 64); err == nil && price >= 0 {
			params.MaxPrice = &price
		} else {
			respondWithError(w, http.StatusBadRequest, "Invalid max_price format")
			return
		}
	}
	if params.MinPrice != nil && params.MaxPrice != nil && *params.MinPrice > *params.MaxPrice {
		respondWithError(w, http.StatusBadRequest, "min_price cannot exceed max_price")
		return
	}

	params.SortBy = qParams.Get("sort_by")
	params.SortOrder = qParams.Get("sort_order")

	products, totalCount, err := h.productStore.ListProducts(r.Context(), params)
	if err != nil {
		log.Printf("ERROR: ListProducts store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve products")
		return
	}

	totalPages := 0
	if totalCount > 0 {
		totalPages = (totalCount + limit - 1) / limit
	}
	respondWithJSON(w, http.StatusOK, struct {
		Data       []domain.Product `json:"data"`
		Pagination PaginationInfo   `json:"pagination"`
	}{
		Data: products,
		Pagination: PaginationInfo{
			Page:       page,
			Limit:      limit,
			TotalItems: totalCount,
			TotalPages: totalPages,
		},
	})
}

// PaginationInfo describes one page of a paginated listing.
type PaginationInfo struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

func (h *HTTPHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	if productID == "" {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	product, err := h.productStore.GetProductByID(r.Context(), productID)
	if err != nil {
		log.Printf("ERROR: GetProductByID store operation for ID %s failed: %v", productID, err)
		if errors.Is(err, store.ErrProductNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrProductNotFound.Error())
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to retrieve product")
		}
		return
	}

	now := time.Now()
	respondWithJSON(w, http.StatusOK, CatalogItemView{
		Product: *product,
		Badges:  catalog.Badges(product, now, h.badgeOptions()),
	})
}

// ProductUpdateInput defines the expected input for updating a product.
type ProductUpdateInput struct {
	Name            string   `json:"name" validate:"required,max=255"`
	Description     *string  `json:"description" validate:"omitempty"`
	Category        string   `json:"category" validate:"required,max=100"`
	Price           float64  `json:"price" validate:"required,gte=0"`
	DiscountPercent *float64 `json:"discount_percent" validate:"omitempty,gt=0,lte=100"`
	Available       *bool    `json:"available"`
	BestSeller      bool     `json:"best_seller"`
	OnSale          bool     `json:"on_sale"`
	Featured        bool     `json:"featured"`
	ImageURL        *string  `json:"image_url" validate:"omitempty,url,max=2048"`
}

func (h *HTTPHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	if productID == "" {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var input ProductUpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	available := true
	if input.Available != nil {
		available = *input.Available
	}
	var discount float64
	if input.DiscountPercent != nil {
		discount = *input.DiscountPercent
	}

	productToUpdate := &domain.Product{
		ID:              productID,
		Name:            input.Name,
		Description:     input.Description,
		Category:        input.Category,
		Price:           input.Price,
		DiscountPercent: discount,
		Available:       available,
		BestSeller:      input.BestSeller,
		OnSale:          input.OnSale,
		Featured:        input.Featured,
		ImageURL:        input.ImageURL,
	}

	updatedProduct, err := h.productStore.UpdateProduct(r.Context(), productToUpdate)
	if err != nil {
		log.Printf("ERROR: UpdateProduct store operation for ID %s failed: %v", productID, err)
		if errors.Is(err, store.ErrProductNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrProductNotFound.Error())
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to update product")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, updatedProduct)
}

func (h *HTTPHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	if productID == "" {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	err := h.productStore.DeleteProduct(r.Context(), productID)
	if err != nil {
		log.Printf("ERROR: DeleteProduct store operation for ID %s failed: %v", productID, err)
		if errors.Is(err, store.ErrProductNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrProductNotFound.Error())
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to delete product")
		}
		return
	}

	respondWithJSON(w, http.StatusNoContent, nil)
}

// --- Route Registration ---

// RegisterRoutes sets up the HTTP routes for the service.
func (h *HTTPHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/", h.GetCatalog)              // GET /api/v1/catalog?view=general|best-sellers
		r.Get("/recent", h.GetRecentProducts) // GET /api/v1/catalog/recent
	})

	r.Get("/api/v1/search/suggestions", h.GetSearchSuggestions)
	r.Get("/api/v1/categories", h.ListCategories)

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Post("/", h.CreateProduct) // POST /api/v1/products
		r.Get("/", h.ListProducts)   // GET /api/v1/products

		r.Route("/{productId}", func(r chi.Router) {
			r.Get("/", h.GetProductByID)   // GET /api/v1/products/{productId}
			r.Put("/", h.UpdateProduct)    // PUT /api/v1/products/{productId}
			r.Delete("/", h.DeleteProduct) // DELETE /api/v1/products/{productId}
		})
	})
}
