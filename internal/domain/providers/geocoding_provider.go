package providers

import (
	"context"

	"github.com/star-burger/backend/internal/domain/entities"
)

// GeocodingProvider resolves free-text addresses against an external
// geocoding service.
//
// Geocode returns the coordinates of the single most relevant match.
// A run that completed but matched nothing yields a NotFound error from
// pkg/errors; transport failures, timeouts, non-2xx statuses and malformed
// bodies yield an External error. Callers rely on that distinction: NotFound
// is a permanent, cacheable outcome, External is transient.
type GeocodingProvider interface {
	Geocode(ctx context.Context, address string) (*entities.Coordinates, error)
}
