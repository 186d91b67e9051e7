package services

import (
	"context"

	"github.com/star-burger/backend/internal/domain/entities"
	"github.com/star-burger/backend/internal/domain/repositories"
)

// ProductService exposes the product catalog
type ProductService struct {
	products repositories.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(products repositories.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// ListAvailable returns products offered by at least one restaurant
func (s *ProductService) ListAvailable(ctx context.Context) ([]*entities.Product, error) {
	return s.products.ListAvailable(ctx)
}

// List returns the full catalog including unlisted products
func (s *ProductService) List(ctx context.Context) ([]*entities.Product, error) {
	return s.products.List(ctx)
}

// GetByID retrieves a single product
func (s *ProductService) GetByID(ctx context.Context, id string) (*entities.Product, error) {
	return s.products.GetByID(ctx, id)
}
