package entities

import "time"

// Coordinates represents geographical coordinates
type Coordinates struct {
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}

// Location is a cached geocoding result keyed by address. Nil latitude and
// longitude mark an address the geocoder definitively could not resolve;
// the placeholder prevents repeated upstream calls for the same address.
type Location struct {
	Address   string    `json:"address" db:"address"`
	Latitude  *float64  `json:"latitude,omitempty" db:"latitude"`
	Longitude *float64  `json:"longitude,omitempty" db:"longitude"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Coordinates returns the cached coordinate pair, or nil for a placeholder record
func (l *Location) Coordinates() *Coordinates {
	if l.Latitude == nil || l.Longitude == nil {
		return nil
	}
	return &Coordinates{Latitude: *l.Latitude, Longitude: *l.Longitude}
}

// NewLocation builds a location record for the given address and coordinates.
// Pass nil coords to record an unresolvable-address placeholder.
func NewLocation(address string, coords *Coordinates, updatedAt time.Time) *Location {
	loc := &Location{Address: address, UpdatedAt: updatedAt}
	if coords != nil {
		lat, lon := coords.Latitude, coords.Longitude
		loc.Latitude = &lat
		loc.Longitude = &lon
	}
	return loc
}
