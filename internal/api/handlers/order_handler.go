package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/star-burger/backend/internal/application/services"
	"github.com/star-burger/backend/internal/domain/entities"
	"github.com/star-burger/backend/internal/domain/repositories"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *services.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// CreateOrder handles POST /api/order
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req services.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.orderService.Create(r.Context(), &req)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, order)
}

// GetOrder handles GET /api/order/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := r.PathValue("id")
	if orderID == "" {
		respondWithError(w, http.StatusBadRequest, "order ID is required")
		return
	}

	order, err := h.orderService.GetByID(r.Context(), orderID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, order)
}

type updateOrderRequest struct {
	Status       *string `json:"status,omitempty"`
	RestaurantID *string `json:"restaurant_id,omitempty"`
}

// UpdateOrder handles PATCH /api/manager/orders/{id}
func (h *OrderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	orderID := r.PathValue("id")
	if orderID == "" {
		respondWithError(w, http.StatusBadRequest, "order ID is required")
		return
	}

	var req updateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Status == nil && req.RestaurantID == nil {
		respondWithError(w, http.StatusBadRequest, "nothing to update")
		return
	}

	update := repositories.OrderUpdate{RestaurantID: req.RestaurantID}
	if req.Status != nil {
		status := entities.OrderStatus(*req.Status)
		update.Status = &status
	}
	if err := h.orderService.Update(r.Context(), orderID, update); err != nil {
		respondWithAppError(w, err)
		return
	}

	order, err := h.orderService.GetByID(r.Context(), orderID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, order)
}
