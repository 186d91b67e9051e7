package repositories

import (
	"context"

	"github.com/star-burger/backend/internal/domain/entities"
)

// LocationRepository is the persistent geocoding cache keyed by address.
// Records never expire; callers populate the cache on miss.
type LocationRepository interface {
	// GetByAddress retrieves the cached record for an address.
	// Returns a NotFound error on cache miss.
	GetByAddress(ctx context.Context, address string) (*entities.Location, error)

	// Upsert inserts or updates the record for location.Address in a single
	// atomic statement, so concurrent resolutions of the same address cannot
	// produce duplicates.
	Upsert(ctx context.Context, location *entities.Location) error
}
