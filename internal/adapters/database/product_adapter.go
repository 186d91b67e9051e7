package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/star-burger/backend/internal/domain/entities"
	"github.com/star-burger/backend/internal/domain/repositories"
	"github.com/star-burger/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/star-burger/backend/pkg/errors"
)

// ProductAdapter implements the ProductRepository interface
type ProductAdapter struct {
	client *postgres.Client
}

// NewProductAdapter creates a new product adapter
func NewProductAdapter(client *postgres.Client) repositories.ProductRepository {
	return &ProductAdapter{
		client: client,
	}
}

// Create creates a new product
func (a *ProductAdapter) Create(ctx context.Context, product *entities.Product) error {
	query := `
		INSERT INTO products (
			id, name, category_id, price, image_url, special_status, description
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := a.client.DB().ExecContext(ctx, query,
		product.ID,
		product.Name,
		nullString(product.CategoryID),
		product.Price,
		product.ImageURL,
		product.SpecialStatus,
		product.Description,
	)

	if err != nil {
		return apperrors.NewInternalError("failed to create product", err)
	}

	return nil
}

// GetByID retrieves a product by ID
func (a *ProductAdapter) GetByID(ctx context.Context, id string) (*entities.Product, error) {
	query := productSelect + ` WHERE p.id = $1`

	row := a.client.DB().QueryRowContext(ctx, query, id)
	product, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("product with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get product", err)
	}

	return product, nil
}

// GetByIDs retrieves multiple products by their IDs
func (a *ProductAdapter) GetByIDs(ctx context.Context, ids []string) ([]*entities.Product, error) {
	if len(ids) == 0 {
		return []*entities.Product{}, nil
	}

	query := productSelect + ` WHERE p.id = ANY($1)`

	rows, err := a.client.DB().QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get products by ids", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

// ListAvailable retrieves products offered by at least one restaurant
func (a *ProductAdapter) ListAvailable(ctx context.Context) ([]*entities.Product, error) {
	query := productSelect + `
		WHERE EXISTS (
			SELECT 1 FROM restaurant_menu_items m
			WHERE m.product_id = p.id AND m.availability
		)
		ORDER BY p.name
	`

	rows, err := a.client.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list available products", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

// List retrieves all products
func (a *ProductAdapter) List(ctx context.Context) ([]*entities.Product, error) {
	query := productSelect + ` ORDER BY p.name`

	rows, err := a.client.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list products", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

const productSelect = `
	SELECT
		p.id, p.name, p.category_id, p.price, p.image_url,
		p.special_status, p.description, c.name
	FROM products p
	LEFT JOIN product_categories c ON c.id = p.category_id
`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*entities.Product, error) {
	product := &entities.Product{}
	var categoryID, categoryName sql.NullString

	err := row.Scan(
		&product.ID,
		&product.Name,
		&categoryID,
		&product.Price,
		&product.ImageURL,
		&product.SpecialStatus,
		&product.Description,
		&categoryName,
	)
	if err != nil {
		return nil, err
	}

	if categoryID.Valid {
		product.CategoryID = &categoryID.String
		product.Category = &entities.ProductCategory{
			ID:   categoryID.String,
			Name: categoryName.String,
		}
	}

	return product, nil
}

func collectProducts(rows *sql.Rows) ([]*entities.Product, error) {
	var products []*entities.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan product", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate products", err)
	}
	return products, nil
}

func nullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}
