package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/star-burger/backend/internal/domain/entities"
	"github.com/star-burger/backend/internal/domain/repositories"
	"github.com/star-burger/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/star-burger/backend/pkg/errors"
)

// RestaurantAdapter implements the RestaurantRepository interface
type RestaurantAdapter struct {
	client *postgres.Client
}

// NewRestaurantAdapter creates a new restaurant adapter
func NewRestaurantAdapter(client *postgres.Client) repositories.RestaurantRepository {
	return &RestaurantAdapter{
		client: client,
	}
}

// Create creates a new restaurant
func (a *RestaurantAdapter) Create(ctx context.Context, restaurant *entities.Restaurant) error {
	query := `
		INSERT INTO restaurants (id, name, address, contact_phone)
		VALUES ($1, $2, $3, $4)
	`

	_, err := a.client.DB().ExecContext(ctx, query,
		restaurant.ID,
		restaurant.Name,
		restaurant.Address,
		restaurant.ContactPhone,
	)

	if err != nil {
		return apperrors.NewInternalError("failed to create restaurant", err)
	}

	return nil
}

// GetByID retrieves a restaurant by ID
func (a *RestaurantAdapter) GetByID(ctx context.Context, id string) (*entities.Restaurant, error) {
	query := `
		SELECT id, name, address, contact_phone
		FROM restaurants
		WHERE id = $1
	`

	restaurant := &entities.Restaurant{}
	err := a.client.DB().QueryRowContext(ctx, query, id).Scan(
		&restaurant.ID,
		&restaurant.Name,
		&restaurant.Address,
		&restaurant.ContactPhone,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("restaurant with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get restaurant", err)
	}

	return restaurant, nil
}

// List retrieves all restaurants ordered by name
func (a *RestaurantAdapter) List(ctx context.Context) ([]*entities.Restaurant, error) {
	query := `
		SELECT id, name, address, contact_phone
		FROM restaurants
		ORDER BY name
	`

	rows, err := a.client.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list restaurants", err)
	}
	defer rows.Close()

	var restaurants []*entities.Restaurant
	for rows.Next() {
		restaurant := &entities.Restaurant{}
		if err := rows.Scan(
			&restaurant.ID,
			&restaurant.Name,
			&restaurant.Address,
			&restaurant.ContactPhone,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan restaurant", err)
		}
		restaurants = append(restaurants, restaurant)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate restaurants", err)
	}

	return restaurants, nil
}

// ListWithMenu retrieves all restaurants with their menu items
func (a *RestaurantAdapter) ListWithMenu(ctx context.Context) ([]*entities.Restaurant, error) {
	restaurants, err := a.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(restaurants) == 0 {
		return restaurants, nil
	}

	query := `
		SELECT restaurant_id, product_id, availability
		FROM restaurant_menu_items
	`

	rows, err := a.client.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list menu items", err)
	}
	defer rows.Close()

	menus := make(map[string][]entities.RestaurantMenuItem)
	for rows.Next() {
		item := entities.RestaurantMenuItem{}
		if err := rows.Scan(&item.RestaurantID, &item.ProductID, &item.Availability); err != nil {
			return nil, apperrors.NewInternalError("failed to scan menu item", err)
		}
		menus[item.RestaurantID] = append(menus[item.RestaurantID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate menu items", err)
	}

	for _, restaurant := range restaurants {
		restaurant.MenuItems = menus[restaurant.ID]
	}

	return restaurants, nil
}

// SetMenuItem upserts a (restaurant, product) availability flag
func (a *RestaurantAdapter) SetMenuItem(ctx context.Context, item *entities.RestaurantMenuItem) error {
	query := `
		INSERT INTO restaurant_menu_items (restaurant_id, product_id, availability)
		VALUES ($1, $2, $3)
		ON CONFLICT (restaurant_id, product_id)
		DO UPDATE SET availability = EXCLUDED.availability
	`

	_, err := a.client.DB().ExecContext(ctx, query,
		item.RestaurantID,
		item.ProductID,
		item.Availability,
	)

	if err != nil {
		return apperrors.NewInternalError("failed to set menu item", err)
	}

	return nil
}
