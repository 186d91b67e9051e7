package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/star-burger/backend/internal/api/handlers"
	"github.com/star-burger/backend/internal/application/services"
	"github.com/star-burger/backend/internal/domain/entities"
	apperrors "github.com/star-burger/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRestaurantRepo struct {
	restaurants []*entities.Restaurant
}

func (s *stubRestaurantRepo) Create(ctx context.Context, restaurant *entities.Restaurant) error {
	s.restaurants = append(s.restaurants, restaurant)
	return nil
}

func (s *stubRestaurantRepo) GetByID(ctx context.Context, id string) (*entities.Restaurant, error) {
	for _, restaurant := range s.restaurants {
		if restaurant.ID == id {
			return restaurant, nil
		}
	}
	return nil, apperrors.NewNotFoundError("restaurant not found")
}

func (s *stubRestaurantRepo) List(ctx context.Context) ([]*entities.Restaurant, error) {
	return s.restaurants, nil
}

func (s *stubRestaurantRepo) ListWithMenu(ctx context.Context) ([]*entities.Restaurant, error) {
	return s.restaurants, nil
}

func (s *stubRestaurantRepo) SetMenuItem(ctx context.Context, item *entities.RestaurantMenuItem) error {
	return nil
}

func TestDashboardHandler_ListOrders(t *testing.T) {
	near := &entities.Restaurant{
		ID:      "rest-near",
		Name:    "Near",
		Address: "Lenina 5",
		MenuItems: []entities.RestaurantMenuItem{
			{RestaurantID: "rest-near", ProductID: "p1", Availability: true},
		},
	}
	far := &entities.Restaurant{
		ID:      "rest-far",
		Name:    "Far",
		Address: "Mira 20",
		MenuItems: []entities.RestaurantMenuItem{
			{RestaurantID: "rest-far", ProductID: "p1", Availability: true},
		},
	}

	orders := newStubOrderRepo()
	orders.orders["order-1"] = &entities.Order{
		ID:          "order-1",
		Status:      entities.OrderStatusAccepted,
		Payment:     entities.PaymentCash,
		Firstname:   "Ivan",
		Lastname:    "Petrov",
		Phonenumber: "+79261234567",
		Address:     "Tverskaya 1",
		TotalAmount: decimal.NewFromInt(500),
		CreatedAt:   time.Now(),
		Items: []entities.OrderItem{
			{OrderID: "order-1", ProductID: "p1", Quantity: 1, Price: decimal.NewFromInt(500)},
		},
	}

	geocoder := &stubGeocoder{coords: map[string]*entities.Coordinates{
		"tverskaya 1": {Latitude: 55.75, Longitude: 37.61},
		"lenina 5":    {Latitude: 55.70, Longitude: 37.60},
		"mira 20":     {Latitude: 55.80, Longitude: 37.70},
	}}
	resolver := services.NewLocationResolverService(newStubLocationRepo(), geocoder)
	dashboard := services.NewDashboardService(orders, &stubRestaurantRepo{restaurants: []*entities.Restaurant{near, far}}, resolver, services.NewDispatchService())
	handler := handlers.NewDashboardHandler(dashboard)

	req := httptest.NewRequest("GET", "/api/manager/orders", nil)
	w := httptest.NewRecorder()

	handler.ListOrders(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Orders []services.DashboardRow `json:"orders"`
		Count  int                     `json:"count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.Equal(t, 1, response.Count)

	row := response.Orders[0]
	assert.Equal(t, "order-1", row.OrderID)
	assert.Equal(t, "Ivan Petrov", row.ClientName)
	assert.True(t, row.DistancesKnown)
	require.Len(t, row.Restaurants, 2)
	assert.Equal(t, "rest-near", row.Restaurants[0].Restaurant.ID)
	assert.Equal(t, "rest-far", row.Restaurants[1].Restaurant.ID)
}
