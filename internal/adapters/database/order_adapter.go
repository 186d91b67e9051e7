package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"
	"github.com/star-burger/backend/internal/domain/entities"
	"github.com/star-burger/backend/internal/domain/repositories"
	"github.com/star-burger/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/star-burger/backend/pkg/errors"
)

// OrderAdapter implements the OrderRepository interface
type OrderAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewOrderAdapter creates a new order adapter
func NewOrderAdapter(client *postgres.Client) repositories.OrderRepository {
	return &OrderAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create persists the order and all its items in a single transaction
func (a *OrderAdapter) Create(ctx context.Context, order *entities.Order) error {
	orderQuery, orderArgs, err := a.db.Insert("orders").Rows(goqu.Record{
		"id":            order.ID,
		"status":        order.Status,
		"payment":       order.Payment,
		"firstname":     order.Firstname,
		"lastname":      order.Lastname,
		"phonenumber":   order.Phonenumber,
		"address":       order.Address,
		"comment":       order.Comment,
		"restaurant_id": nullString(order.RestaurantID),
		"created_at":    order.CreatedAt,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build order insert query", err)
	}

	itemRows := make([]interface{}, 0, len(order.Items))
	for _, item := range order.Items {
		itemRows = append(itemRows, goqu.Record{
			"id":         item.ID,
			"order_id":   item.OrderID,
			"product_id": item.ProductID,
			"quantity":   item.Quantity,
			"price":      item.Price,
		})
	}

	itemsQuery, itemsArgs, err := a.db.Insert("order_items").Rows(itemRows...).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build order items insert query", err)
	}

	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin transaction", err)
	}

	if _, err := tx.ExecContext(ctx, orderQuery, orderArgs...); err != nil {
		tx.Rollback()
		return apperrors.NewInternalError("failed to create order", err)
	}

	if _, err := tx.ExecContext(ctx, itemsQuery, itemsArgs...); err != nil {
		tx.Rollback()
		return apperrors.NewInternalError("failed to create order items", err)
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit order transaction", err)
	}

	return nil
}

// GetByID retrieves an order with its items
func (a *OrderAdapter) GetByID(ctx context.Context, id string) (*entities.Order, error) {
	query := orderSelect + ` WHERE o.id = $1 GROUP BY o.id`

	row := a.client.DB().QueryRowContext(ctx, query, id)
	order, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("order with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get order", err)
	}

	items, err := a.loadItems(ctx, []string{order.ID})
	if err != nil {
		return nil, err
	}
	order.Items = items[order.ID]

	return order, nil
}

// ListActive retrieves non-terminal orders ordered by status, with totals
// aggregated from the frozen item prices
func (a *OrderAdapter) ListActive(ctx context.Context) ([]*entities.Order, error) {
	query := orderSelect + `
		WHERE o.status NOT IN ($1, $2)
		GROUP BY o.id
		ORDER BY o.status, o.created_at
	`

	rows, err := a.client.DB().QueryContext(ctx, query,
		entities.OrderStatusCompleted,
		entities.OrderStatusCanceled,
	)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list active orders", err)
	}
	defer rows.Close()

	var orders []*entities.Order
	var ids []string
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan order", err)
		}
		orders = append(orders, order)
		ids = append(ids, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate orders", err)
	}

	if len(ids) == 0 {
		return orders, nil
	}

	items, err := a.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, order := range orders {
		order.Items = items[order.ID]
	}

	return orders, nil
}

// Update applies the non-nil fields of the patch in one UPDATE statement
func (a *OrderAdapter) Update(ctx context.Context, id string, update repositories.OrderUpdate) error {
	record := goqu.Record{}
	if update.Status != nil {
		record["status"] = *update.Status
	}
	if update.RestaurantID != nil {
		record["restaurant_id"] = *update.RestaurantID
	}
	if len(record) == 0 {
		return nil
	}
	return a.updateOrder(ctx, id, record)
}

func (a *OrderAdapter) updateOrder(ctx context.Context, id string, record goqu.Record) error {
	query, args, err := a.db.Update("orders").
		Set(record).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build order update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update order", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to read update result", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("order with id %s not found", id))
	}

	return nil
}

const orderSelect = `
	SELECT
		o.id, o.status, o.payment, o.firstname, o.lastname, o.phonenumber,
		o.address, o.comment, o.restaurant_id, o.created_at, o.called_at,
		o.delivered_at, COALESCE(SUM(i.price * i.quantity), 0) AS total_amount
	FROM orders o
	LEFT JOIN order_items i ON i.order_id = o.id
`

func scanOrder(row rowScanner) (*entities.Order, error) {
	order := &entities.Order{}
	var restaurantID sql.NullString
	var calledAt, deliveredAt sql.NullTime

	err := row.Scan(
		&order.ID,
		&order.Status,
		&order.Payment,
		&order.Firstname,
		&order.Lastname,
		&order.Phonenumber,
		&order.Address,
		&order.Comment,
		&restaurantID,
		&order.CreatedAt,
		&calledAt,
		&deliveredAt,
		&order.TotalAmount,
	)
	if err != nil {
		return nil, err
	}

	if restaurantID.Valid {
		order.RestaurantID = &restaurantID.String
	}
	if calledAt.Valid {
		order.CalledAt = &calledAt.Time
	}
	if deliveredAt.Valid {
		order.DeliveredAt = &deliveredAt.Time
	}

	return order, nil
}

func (a *OrderAdapter) loadItems(ctx context.Context, orderIDs []string) (map[string][]entities.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, quantity, price
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id
	`

	rows, err := a.client.DB().QueryContext(ctx, query, pq.Array(orderIDs))
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load order items", err)
	}
	defer rows.Close()

	items := make(map[string][]entities.OrderItem)
	for rows.Next() {
		item := entities.OrderItem{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price); err != nil {
			return nil, apperrors.NewInternalError("failed to scan order item", err)
		}
		items[item.OrderID] = append(items[item.OrderID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate order items", err)
	}

	return items, nil
}
