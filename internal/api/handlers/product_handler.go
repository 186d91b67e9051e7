package handlers

import (
	"net/http"

	"github.com/star-burger/backend/internal/application/services"
	"github.com/star-burger/backend/internal/domain/repositories"
)

// ProductHandler handles product catalog HTTP requests
type ProductHandler struct {
	productService *services.ProductService
	restaurantRepo repositories.RestaurantRepository
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *services.ProductService, restaurantRepo repositories.RestaurantRepository) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		restaurantRepo: restaurantRepo,
	}
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.ListAvailable(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"count":    len(products),
	})
}

// GetProduct handles GET /api/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("id")
	if productID == "" {
		respondWithError(w, http.StatusBadRequest, "product ID is required")
		return
	}

	product, err := h.productService.GetByID(r.Context(), productID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, product)
}

// productAvailabilityRow is one row of the manager's availability matrix
type productAvailabilityRow struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Availability map[string]bool `json:"availability"`
}

// ListProductAvailability handles GET /api/manager/products. For every
// product it reports which restaurants currently offer it.
func (h *ProductHandler) ListProductAvailability(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.List(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	restaurants, err := h.restaurantRepo.ListWithMenu(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list restaurants")
		return
	}

	rows := make([]productAvailabilityRow, 0, len(products))
	for _, product := range products {
		row := productAvailabilityRow{
			ProductID:    product.ID,
			ProductName:  product.Name,
			Availability: make(map[string]bool, len(restaurants)),
		}
		for _, restaurant := range restaurants {
			_, available := restaurant.AvailableProductSet()[product.ID]
			row.Availability[restaurant.ID] = available
		}
		rows = append(rows, row)
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"products": rows,
		"count":    len(rows),
	})
}
