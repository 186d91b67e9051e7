package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusAccepted   OrderStatus = "accepted"
	OrderStatusPrepared   OrderStatus = "prepared"
	OrderStatusDelivering OrderStatus = "delivering"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCanceled   OrderStatus = "canceled"
)

var orderStatusLabels = map[OrderStatus]string{
	OrderStatusAccepted:   "Accepted",
	OrderStatusPrepared:   "Being prepared",
	OrderStatusDelivering: "Out for delivery",
	OrderStatusCompleted:  "Completed",
	OrderStatusCanceled:   "Canceled",
}

// Label returns the display label for the status
func (s OrderStatus) Label() string {
	if label, ok := orderStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Valid reports whether the status is one of the known states
func (s OrderStatus) Valid() bool {
	_, ok := orderStatusLabels[s]
	return ok
}

// Terminal reports whether the order left the active pipeline
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCanceled
}

// PaymentMethod represents how an order is paid
type PaymentMethod string

const (
	PaymentUnspecified PaymentMethod = "unspecified"
	PaymentCash        PaymentMethod = "cash"
	PaymentElectronic  PaymentMethod = "electronic"
)

var paymentLabels = map[PaymentMethod]string{
	PaymentUnspecified: "Not specified",
	PaymentCash:        "Cash",
	PaymentElectronic:  "Electronic",
}

// Label returns the display label for the payment method
func (p PaymentMethod) Label() string {
	if label, ok := paymentLabels[p]; ok {
		return label
	}
	return string(p)
}

// Order represents a customer order
type Order struct {
	ID           string          `json:"id" db:"id"`
	Status       OrderStatus     `json:"status" db:"status"`
	Payment      PaymentMethod   `json:"payment" db:"payment"`
	Firstname    string          `json:"firstname" db:"firstname"`
	Lastname     string          `json:"lastname" db:"lastname"`
	Phonenumber  string          `json:"phonenumber" db:"phonenumber"`
	Address      string          `json:"address" db:"address"`
	Comment      string          `json:"comment" db:"comment"`
	RestaurantID *string         `json:"restaurant_id,omitempty" db:"restaurant_id"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	CalledAt     *time.Time      `json:"called_at,omitempty" db:"called_at"`
	DeliveredAt  *time.Time      `json:"delivered_at,omitempty" db:"delivered_at"`
	Items        []OrderItem     `json:"items,omitempty" db:"-"`
	TotalAmount  decimal.Decimal `json:"total_amount" db:"-"`
}

// OrderItem represents one product line of an order. Price is the unit price
// frozen at order-creation time, independent of later catalog changes.
type OrderItem struct {
	ID        string          `json:"id" db:"id"`
	OrderID   string          `json:"order_id" db:"order_id"`
	ProductID string          `json:"product_id" db:"product_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	Price     decimal.Decimal `json:"price" db:"price"`
}

// ClientName returns the customer's display name
func (o *Order) ClientName() string {
	return o.Firstname + " " + o.Lastname
}

// ProductIDs returns the distinct product ids of the order's items
func (o *Order) ProductIDs() []string {
	seen := make(map[string]struct{}, len(o.Items))
	ids := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}
