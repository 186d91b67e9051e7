package entities

import (
	"github.com/shopspring/decimal"
)

// ProductCategory groups products on the customer-facing menu
type ProductCategory struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Product represents a menu product. Price is the current catalog price;
// orders snapshot it into OrderItem.Price at creation time.
type Product struct {
	ID            string           `json:"id" db:"id"`
	Name          string           `json:"name" db:"name"`
	CategoryID    *string          `json:"category_id,omitempty" db:"category_id"`
	Category      *ProductCategory `json:"category,omitempty" db:"-"`
	Price         decimal.Decimal  `json:"price" db:"price"`
	ImageURL      string           `json:"image" db:"image_url"`
	SpecialStatus bool             `json:"special_status" db:"special_status"`
	Description   string           `json:"description" db:"description"`
}
