package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/star-burger/backend/internal/domain/entities"
	"github.com/star-burger/backend/internal/domain/repositories"
	"github.com/star-burger/backend/internal/infrastructure/observability"
)

// DashboardRow is the manager's view of one active order
type DashboardRow struct {
	OrderID        string             `json:"order_id"`
	Status         string             `json:"status"`
	Payment        string             `json:"payment"`
	TotalAmount    decimal.Decimal    `json:"total_amount"`
	ClientName     string             `json:"client_name"`
	Phonenumber    string             `json:"phonenumber"`
	Address        string             `json:"address"`
	Comment        string             `json:"comment,omitempty"`
	AssignedTo     *string            `json:"assigned_restaurant,omitempty"`
	Restaurants    []RankedRestaurant `json:"restaurants"`
	DistancesKnown bool               `json:"distances_known"`
}

// DashboardService assembles the manager's order dashboard: for each active
// order, the restaurants able to fulfill it ranked by distance from the
// delivery address
type DashboardService struct {
	orders      repositories.OrderRepository
	restaurants repositories.RestaurantRepository
	resolver    *LocationResolverService
	dispatch    *DispatchService
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	orders repositories.OrderRepository,
	restaurants repositories.RestaurantRepository,
	resolver *LocationResolverService,
	dispatch *DispatchService,
) *DashboardService {
	return &DashboardService{
		orders:      orders,
		restaurants: restaurants,
		resolver:    resolver,
		dispatch:    dispatch,
	}
}

// ListOrders builds dashboard rows for all active orders
func (s *DashboardService) ListOrders(ctx context.Context) ([]DashboardRow, error) {
	logger := observability.LoggerFromContext(ctx)

	restaurants, err := s.restaurants.ListWithMenu(ctx)
	if err != nil {
		return nil, err
	}

	// Each restaurant address is resolved once per render. A failed
	// resolution only drops that restaurant from the ranked output; the
	// render itself never aborts.
	restaurantCoords := make(map[string]*entities.Coordinates, len(restaurants))
	for _, restaurant := range restaurants {
		coords, err := s.resolver.Resolve(ctx, restaurant.Address)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("restaurant_id", restaurant.ID).
				Str("address", restaurant.Address).
				Msg("failed to resolve restaurant address")
			coords = nil
		}
		restaurantCoords[restaurant.ID] = coords
	}

	orders, err := s.orders.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]DashboardRow, 0, len(orders))
	for _, order := range orders {
		row := DashboardRow{
			OrderID:     order.ID,
			Status:      order.Status.Label(),
			Payment:     order.Payment.Label(),
			TotalAmount: order.TotalAmount,
			ClientName:  order.ClientName(),
			Phonenumber: order.Phonenumber,
			Address:     order.Address,
			Comment:     order.Comment,
			AssignedTo:  order.RestaurantID,
			Restaurants: []RankedRestaurant{},
		}

		eligible := s.dispatch.EligibleRestaurants(order.ProductIDs(), restaurants)

		orderCoords, err := s.resolver.Resolve(ctx, order.Address)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("order_id", order.ID).
				Str("address", order.Address).
				Msg("failed to resolve order address")
			orderCoords = nil
		}

		if orderCoords != nil {
			candidates := make([]RestaurantLocation, 0, len(eligible))
			for _, restaurant := range eligible {
				candidates = append(candidates, RestaurantLocation{
					Restaurant:  restaurant,
					Coordinates: restaurantCoords[restaurant.ID],
				})
			}
			row.Restaurants = s.dispatch.RankByDistance(*orderCoords, candidates)
			row.DistancesKnown = true
		}

		rows = append(rows, row)
	}

	return rows, nil
}
