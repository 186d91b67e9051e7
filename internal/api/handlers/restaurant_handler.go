package handlers

import (
	"net/http"

	"github.com/star-burger/backend/internal/domain/repositories"
)

// RestaurantHandler handles restaurant HTTP requests
type RestaurantHandler struct {
	restaurantRepo repositories.RestaurantRepository
}

// NewRestaurantHandler creates a new restaurant handler
func NewRestaurantHandler(restaurantRepo repositories.RestaurantRepository) *RestaurantHandler {
	return &RestaurantHandler{
		restaurantRepo: restaurantRepo,
	}
}

// ListRestaurants handles GET /api/restaurants
func (h *RestaurantHandler) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.restaurantRepo.List(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list restaurants")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"restaurants": restaurants,
		"count":       len(restaurants),
	})
}

// GetRestaurant handles GET /api/restaurants/{id}
func (h *RestaurantHandler) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	restaurantID := r.PathValue("id")
	if restaurantID == "" {
		respondWithError(w, http.StatusBadRequest, "restaurant ID is required")
		return
	}

	restaurant, err := h.restaurantRepo.GetByID(r.Context(), restaurantID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, restaurant)
}
