package repositories

import (
	"context"

	"github.com/star-burger/backend/internal/domain/entities"
)

// ProductRepository defines the interface for product catalog operations
type ProductRepository interface {
	// Create creates a new product
	Create(ctx context.Context, product *entities.Product) error

	// GetByID retrieves a product by ID
	GetByID(ctx context.Context, id string) (*entities.Product, error)

	// GetByIDs retrieves multiple products by their IDs
	GetByIDs(ctx context.Context, ids []string) ([]*entities.Product, error)

	// ListAvailable retrieves products offered by at least one restaurant,
	// with their categories
	ListAvailable(ctx context.Context) ([]*entities.Product, error)

	// List retrieves all products with their categories
	List(ctx context.Context) ([]*entities.Product, error)
}
