package entities

// Restaurant represents a restaurant that can fulfill orders
type Restaurant struct {
	ID           string               `json:"id" db:"id"`
	Name         string               `json:"name" db:"name"`
	Address      string               `json:"address" db:"address"`
	ContactPhone string               `json:"contact_phone" db:"contact_phone"`
	MenuItems    []RestaurantMenuItem `json:"menu_items,omitempty" db:"-"`
}

// RestaurantMenuItem defines whether a restaurant currently offers a product.
// Unique per (restaurant, product).
type RestaurantMenuItem struct {
	RestaurantID string `json:"restaurant_id" db:"restaurant_id"`
	ProductID    string `json:"product_id" db:"product_id"`
	Availability bool   `json:"availability" db:"availability"`
}

// AvailableProductSet returns the set of product ids the restaurant offers
func (r *Restaurant) AvailableProductSet() map[string]struct{} {
	set := make(map[string]struct{}, len(r.MenuItems))
	for _, item := range r.MenuItems {
		if item.Availability {
			set[item.ProductID] = struct{}{}
		}
	}
	return set
}
