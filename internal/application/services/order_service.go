package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
	"github.com/shopspring/decimal"
	"github.com/star-burger/backend/internal/domain/entities"
	"github.com/star-burger/backend/internal/domain/providers"
	"github.com/star-burger/backend/internal/domain/repositories"
	"github.com/star-burger/backend/internal/infrastructure/observability"
	apperrors "github.com/star-burger/backend/pkg/errors"
)

// CreateOrderItem is one product line of an order request
type CreateOrderItem struct {
	ProductID string `json:"product"`
	Quantity  int    `json:"quantity"`
}

// CreateOrderRequest is the payload for placing an order
type CreateOrderRequest struct {
	Firstname   string            `json:"firstname"`
	Lastname    string            `json:"lastname"`
	Phonenumber string            `json:"phonenumber"`
	Address     string            `json:"address"`
	Comment     string            `json:"comment"`
	Products    []CreateOrderItem `json:"products"`
}

// OrderService handles order intake and management
type OrderService struct {
	orders      repositories.OrderRepository
	products    repositories.ProductRepository
	resolver    *LocationResolverService
	eventBus    providers.EventBus
	phoneRegion string
}

// NewOrderService creates a new order service
func NewOrderService(
	orders repositories.OrderRepository,
	products repositories.ProductRepository,
	resolver *LocationResolverService,
	eventBus providers.EventBus,
	phoneRegion string,
) *OrderService {
	return &OrderService{
		orders:      orders,
		products:    products,
		resolver:    resolver,
		eventBus:    eventBus,
		phoneRegion: phoneRegion,
	}
}

// Create validates the request and persists the order with all its items in
// one transaction. Item prices are frozen from the current catalog price so
// later price changes never alter historical totals.
func (s *OrderService) Create(ctx context.Context, req *CreateOrderRequest) (*entities.Order, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	catalog, err := s.loadProducts(ctx, req.Products)
	if err != nil {
		return nil, err
	}

	order := &entities.Order{
		ID:          uuid.NewString(),
		Status:      entities.OrderStatusAccepted,
		Payment:     entities.PaymentUnspecified,
		Firstname:   strings.TrimSpace(req.Firstname),
		Lastname:    strings.TrimSpace(req.Lastname),
		Phonenumber: strings.TrimSpace(req.Phonenumber),
		Address:     strings.TrimSpace(req.Address),
		Comment:     strings.TrimSpace(req.Comment),
		CreatedAt:   time.Now().UTC(),
	}

	total := order.TotalAmount
	for _, line := range req.Products {
		product := catalog[line.ProductID]
		item := entities.OrderItem{
			ID:        uuid.NewString(),
			OrderID:   order.ID,
			ProductID: product.ID,
			Quantity:  line.Quantity,
			Price:     product.Price,
		}
		order.Items = append(order.Items, item)
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	order.TotalAmount = total

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	// Warm the location cache for the delivery address. Failures are logged
	// only: the order is already committed and a transient geocoder outage
	// must not fail the request (nor leave a poisoned cache entry).
	if _, err := s.resolver.Resolve(ctx, order.Address); err != nil {
		observability.LoggerFromContext(ctx).Warn().
			Err(err).
			Str("order_id", order.ID).
			Msg("failed to resolve delivery address")
	}

	s.publish(ctx, entities.NewOrderEvent(order.ID, entities.OrderEventTypeCreated, map[string]interface{}{
		"status": string(order.Status),
	}))

	return order, nil
}

// GetByID retrieves an order with its items
func (s *OrderService) GetByID(ctx context.Context, id string) (*entities.Order, error) {
	return s.orders.GetByID(ctx, id)
}

// Update applies a partial update. Both fields are persisted through a
// single repository call, so a failure never leaves half the patch applied.
func (s *OrderService) Update(ctx context.Context, id string, update repositories.OrderUpdate) error {
	changed := map[string]interface{}{}
	if update.Status != nil {
		if !update.Status.Valid() {
			return apperrors.NewValidationError(fmt.Sprintf("unknown order status %q", *update.Status))
		}
		changed["status"] = string(*update.Status)
	}
	if update.RestaurantID != nil {
		if strings.TrimSpace(*update.RestaurantID) == "" {
			return apperrors.NewValidationError("restaurant id is required")
		}
		changed["restaurant_id"] = *update.RestaurantID
	}
	if len(changed) == 0 {
		return apperrors.NewValidationError("nothing to update")
	}

	if err := s.orders.Update(ctx, id, update); err != nil {
		return err
	}

	s.publish(ctx, entities.NewOrderEvent(id, entities.OrderEventTypeUpdated, changed))
	return nil
}

// UpdateStatus moves an order to a new status
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status entities.OrderStatus) error {
	return s.Update(ctx, id, repositories.OrderUpdate{Status: &status})
}

// AssignRestaurant assigns the restaurant preparing the order
func (s *OrderService) AssignRestaurant(ctx context.Context, id string, restaurantID string) error {
	return s.Update(ctx, id, repositories.OrderUpdate{RestaurantID: &restaurantID})
}

func (s *OrderService) validate(req *CreateOrderRequest) error {
	if strings.TrimSpace(req.Firstname) == "" {
		return apperrors.NewValidationError("firstname must be a non-empty string")
	}
	if strings.TrimSpace(req.Lastname) == "" {
		return apperrors.NewValidationError("lastname must be a non-empty string")
	}
	if strings.TrimSpace(req.Address) == "" {
		return apperrors.NewValidationError("address must be a non-empty string")
	}
	if len(req.Products) == 0 {
		return apperrors.NewValidationError("products must be a non-empty list")
	}
	for _, line := range req.Products {
		if strings.TrimSpace(line.ProductID) == "" {
			return apperrors.NewValidationError("product id is required for every order item")
		}
		if line.Quantity < 1 {
			return apperrors.NewValidationError(fmt.Sprintf("quantity for product %s must be at least 1", line.ProductID))
		}
	}

	phone := strings.TrimSpace(req.Phonenumber)
	if phone == "" {
		return apperrors.NewValidationError("phonenumber must be a non-empty string")
	}
	parsed, err := phonenumbers.Parse(phone, s.phoneRegion)
	if err != nil || !phonenumbers.IsValidNumberForRegion(parsed, s.phoneRegion) {
		return apperrors.NewValidationError(fmt.Sprintf("phonenumber %q is not a valid %s number", phone, s.phoneRegion))
	}

	return nil
}

// loadProducts fetches every referenced product and rejects the request if
// any id is unknown
func (s *OrderService) loadProducts(ctx context.Context, lines []CreateOrderItem) (map[string]*entities.Product, error) {
	ids := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.ProductID]; ok {
			continue
		}
		seen[line.ProductID] = struct{}{}
		ids = append(ids, line.ProductID)
	}

	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	catalog := make(map[string]*entities.Product, len(products))
	for _, product := range products {
		catalog[product.ID] = product
	}
	for _, id := range ids {
		if _, ok := catalog[id]; !ok {
			return nil, apperrors.NewValidationError(fmt.Sprintf("product %s does not exist", id))
		}
	}

	return catalog, nil
}

func (s *OrderService) publish(ctx context.Context, event *entities.OrderEvent) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, providers.EventChannelOrderUpdates, event); err != nil {
		observability.LoggerFromContext(ctx).Warn().
			Err(err).
			Str("order_id", event.OrderID).
			Msg("failed to publish order event")
	}
}
