package repositories

import (
	"context"

	"github.com/star-burger/backend/internal/domain/entities"
)

// RestaurantRepository defines the interface for restaurant data operations
type RestaurantRepository interface {
	// Create creates a new restaurant
	Create(ctx context.Context, restaurant *entities.Restaurant) error

	// GetByID retrieves a restaurant by ID
	GetByID(ctx context.Context, id string) (*entities.Restaurant, error)

	// List retrieves all restaurants ordered by name, without menu items
	List(ctx context.Context) ([]*entities.Restaurant, error)

	// ListWithMenu retrieves all restaurants with their menu items
	ListWithMenu(ctx context.Context) ([]*entities.Restaurant, error)

	// SetMenuItem upserts a (restaurant, product) availability flag
	SetMenuItem(ctx context.Context, item *entities.RestaurantMenuItem) error
}
