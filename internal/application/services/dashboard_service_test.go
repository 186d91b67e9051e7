package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/star-burger/backend/internal/application/services"
	"github.com/star-burger/backend/internal/domain/entities"
	apperrors "github.com/star-burger/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mocks

type MockRestaurantRepository struct {
	mock.Mock
}

func (m *MockRestaurantRepository) Create(ctx context.Context, restaurant *entities.Restaurant) error {
	return nil
}

func (m *MockRestaurantRepository) GetByID(ctx context.Context, id string) (*entities.Restaurant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Restaurant), args.Error(1)
}

func (m *MockRestaurantRepository) List(ctx context.Context) ([]*entities.Restaurant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Restaurant), args.Error(1)
}

func (m *MockRestaurantRepository) ListWithMenu(ctx context.Context) ([]*entities.Restaurant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Restaurant), args.Error(1)
}

func (m *MockRestaurantRepository) SetMenuItem(ctx context.Context, item *entities.RestaurantMenuItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

// Helpers

type dashboardFixture struct {
	service     *services.DashboardService
	orders      *MockOrderRepository
	restaurants *MockRestaurantRepository
	locations   *MockLocationRepository
	geocoder    *MockGeocodingProvider
}

func newDashboardFixture() *dashboardFixture {
	f := &dashboardFixture{
		orders:      new(MockOrderRepository),
		restaurants: new(MockRestaurantRepository),
		locations:   new(MockLocationRepository),
		geocoder:    new(MockGeocodingProvider),
	}
	resolver := services.NewLocationResolverService(f.locations, f.geocoder)
	f.service = services.NewDashboardService(f.orders, f.restaurants, resolver, services.NewDispatchService())
	return f
}

func (f *dashboardFixture) cacheAddress(address string, coords *entities.Coordinates) {
	f.locations.On("GetByAddress", mock.Anything, services.NormalizeAddress(address)).
		Return(entities.NewLocation(services.NormalizeAddress(address), coords, time.Now()), nil)
}

func activeOrder(id, address string, productIDs ...string) *entities.Order {
	order := &entities.Order{
		ID:          id,
		Status:      entities.OrderStatusAccepted,
		Payment:     entities.PaymentCash,
		Firstname:   "Ivan",
		Lastname:    "Petrov",
		Phonenumber: "+79261234567",
		Address:     address,
		TotalAmount: decimal.NewFromInt(1000),
		CreatedAt:   time.Now(),
	}
	for _, productID := range productIDs {
		order.Items = append(order.Items, entities.OrderItem{
			OrderID:   id,
			ProductID: productID,
			Quantity:  1,
			Price:     decimal.NewFromInt(500),
		})
	}
	return order
}

// Tests

func TestDashboardService_ListOrders_RanksEligibleRestaurants(t *testing.T) {
	f := newDashboardFixture()

	near := restaurantWithMenu("rest-near", "Near", "p1", "p2")
	near.Address = "Lenina 5"
	far := restaurantWithMenu("rest-far", "Far", "p1", "p2")
	far.Address = "Mira 20"
	partial := restaurantWithMenu("rest-partial", "Partial", "p1")
	partial.Address = "Sadovaya 3"

	f.restaurants.On("ListWithMenu", mock.Anything).
		Return([]*entities.Restaurant{near, far, partial}, nil)
	f.cacheAddress("Lenina 5", &entities.Coordinates{Latitude: 55.70, Longitude: 37.60})
	f.cacheAddress("Mira 20", &entities.Coordinates{Latitude: 55.80, Longitude: 37.70})
	f.cacheAddress("Sadovaya 3", &entities.Coordinates{Latitude: 55.76, Longitude: 37.62})

	f.orders.On("ListActive", mock.Anything).
		Return([]*entities.Order{activeOrder("order-1", "Tverskaya 1", "p1", "p2")}, nil)
	f.cacheAddress("Tverskaya 1", &entities.Coordinates{Latitude: 55.75, Longitude: 37.61})

	rows, err := f.service.ListOrders(context.Background())

	assert.NoError(t, err)
	assert.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "order-1", row.OrderID)
	assert.Equal(t, "Ivan Petrov", row.ClientName)
	assert.True(t, row.DistancesKnown)
	// Partial never qualifies regardless of distance; Near sorts before Far.
	assert.Len(t, row.Restaurants, 2)
	assert.Equal(t, "rest-near", row.Restaurants[0].Restaurant.ID)
	assert.Equal(t, "rest-far", row.Restaurants[1].Restaurant.ID)
	assert.Less(t, row.Restaurants[0].DistanceKm, row.Restaurants[1].DistanceKm)
}

func TestDashboardService_ListOrders_RestaurantResolutionFailureOnlyDropsThatRestaurant(t *testing.T) {
	f := newDashboardFixture()

	ok := restaurantWithMenu("rest-ok", "OK", "p1")
	ok.Address = "Lenina 5"
	broken := restaurantWithMenu("rest-broken", "Broken", "p1")
	broken.Address = "Unreachable 1"

	f.restaurants.On("ListWithMenu", mock.Anything).
		Return([]*entities.Restaurant{ok, broken}, nil)
	f.cacheAddress("Lenina 5", &entities.Coordinates{Latitude: 55.70, Longitude: 37.60})
	f.locations.On("GetByAddress", mock.Anything, "unreachable 1").
		Return(nil, apperrors.NewNotFoundError("location not found"))
	f.geocoder.On("Geocode", mock.Anything, "unreachable 1").
		Return(nil, apperrors.NewExternalError("geocoder timeout", nil))

	f.orders.On("ListActive", mock.Anything).
		Return([]*entities.Order{activeOrder("order-1", "Tverskaya 1", "p1")}, nil)
	f.cacheAddress("Tverskaya 1", &entities.Coordinates{Latitude: 55.75, Longitude: 37.61})

	rows, err := f.service.ListOrders(context.Background())

	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.True(t, rows[0].DistancesKnown)
	assert.Len(t, rows[0].Restaurants, 1)
	assert.Equal(t, "rest-ok", rows[0].Restaurants[0].Restaurant.ID)
}

func TestDashboardService_ListOrders_UnresolvableOrderAddressMeansDistancesUnknown(t *testing.T) {
	f := newDashboardFixture()

	r := restaurantWithMenu("rest-1", "R", "p1")
	r.Address = "Lenina 5"

	f.restaurants.On("ListWithMenu", mock.Anything).Return([]*entities.Restaurant{r}, nil)
	f.cacheAddress("Lenina 5", &entities.Coordinates{Latitude: 55.70, Longitude: 37.60})

	f.orders.On("ListActive", mock.Anything).
		Return([]*entities.Order{activeOrder("order-1", "Gibberish 99", "p1")}, nil)
	// Placeholder hit: the address is known to be unresolvable.
	f.cacheAddress("Gibberish 99", nil)

	rows, err := f.service.ListOrders(context.Background())

	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.False(t, rows[0].DistancesKnown)
	assert.Empty(t, rows[0].Restaurants)
}

func TestDashboardService_ListOrders_ResolvesEachRestaurantOncePerRender(t *testing.T) {
	f := newDashboardFixture()

	r := restaurantWithMenu("rest-1", "R", "p1")
	r.Address = "Lenina 5"

	f.restaurants.On("ListWithMenu", mock.Anything).Return([]*entities.Restaurant{r}, nil)
	f.cacheAddress("Lenina 5", &entities.Coordinates{Latitude: 55.70, Longitude: 37.60})

	f.orders.On("ListActive", mock.Anything).Return([]*entities.Order{
		activeOrder("order-1", "Tverskaya 1", "p1"),
		activeOrder("order-2", "Tverskaya 1", "p1"),
	}, nil)
	f.cacheAddress("Tverskaya 1", &entities.Coordinates{Latitude: 55.75, Longitude: 37.61})

	rows, err := f.service.ListOrders(context.Background())

	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	f.locations.AssertNumberOfCalls(t, "GetByAddress", 3)
	f.geocoder.AssertNotCalled(t, "Geocode", mock.Anything, mock.Anything)
}

func TestDashboardService_ListOrders_PropagatesRepositoryErrors(t *testing.T) {
	f := newDashboardFixture()

	f.restaurants.On("ListWithMenu", mock.Anything).
		Return(nil, apperrors.NewInternalError("db unavailable", nil))

	rows, err := f.service.ListOrders(context.Background())

	assert.Error(t, err)
	assert.Nil(t, rows)
}
