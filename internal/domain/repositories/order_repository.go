package repositories

import (
	"context"

	"github.com/star-burger/backend/internal/domain/entities"
)

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	// Create persists the order together with all its items in one
	// transaction; on any failure nothing is written.
	Create(ctx context.Context, order *entities.Order) error

	// GetByID retrieves an order with its items
	GetByID(ctx context.Context, id string) (*entities.Order, error)

	// ListActive retrieves non-terminal orders (status not completed or
	// canceled) ordered by status, with items and the total amount
	// aggregated in SQL from the frozen item prices.
	ListActive(ctx context.Context) ([]*entities.Order, error)

	// Update applies the non-nil fields in a single statement, so a partial
	// patch is never left behind on failure. NotFound error when no order
	// matches the id.
	Update(ctx context.Context, id string, update OrderUpdate) error
}

// OrderUpdate names the mutable order fields; nil fields stay unchanged.
type OrderUpdate struct {
	Status       *entities.OrderStatus
	RestaurantID *string
}
