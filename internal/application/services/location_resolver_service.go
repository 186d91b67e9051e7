package services

import (
	"context"
	"strings"
	"time"

	"github.com/star-burger/backend/internal/domain/entities"
	"github.com/star-burger/backend/internal/domain/providers"
	"github.com/star-burger/backend/internal/domain/repositories"
	"github.com/star-burger/backend/internal/infrastructure/observability"
	apperrors "github.com/star-burger/backend/pkg/errors"
)

// LocationResolverService resolves free-text addresses to coordinates through
// the persistent location cache, falling back to the geocoding provider on
// miss. The three outcomes are kept apart:
//
//   - (coords, nil): the address resolved, from cache or upstream;
//   - (nil, nil): the geocoder definitively found nothing; the placeholder is
//     cached so the address is never sent upstream again;
//   - (nil, err): the upstream call failed transiently; nothing is cached and
//     the caller decides how to degrade.
type LocationResolverService struct {
	repo     repositories.LocationRepository
	geocoder providers.GeocodingProvider
}

// NewLocationResolverService creates a new location resolver service
func NewLocationResolverService(repo repositories.LocationRepository, geocoder providers.GeocodingProvider) *LocationResolverService {
	return &LocationResolverService{
		repo:     repo,
		geocoder: geocoder,
	}
}

// NormalizeAddress produces the cache key for an address: trimmed, inner
// whitespace collapsed, case-folded. Distinct spellings of the same address
// therefore share one cache entry.
func NormalizeAddress(address string) string {
	return strings.ToLower(strings.Join(strings.Fields(address), " "))
}

// Resolve resolves an address to coordinates or a definitive "not found"
func (s *LocationResolverService) Resolve(ctx context.Context, address string) (*entities.Coordinates, error) {
	key := NormalizeAddress(address)
	if key == "" {
		return nil, apperrors.NewValidationError("address is required")
	}

	location, err := s.repo.GetByAddress(ctx, key)
	if err == nil {
		return location.Coordinates(), nil
	}
	if !apperrors.IsNotFound(err) {
		return nil, err
	}

	coords, err := s.geocoder.Geocode(ctx, key)
	switch {
	case err == nil:
		s.store(ctx, key, coords)
		return coords, nil
	case apperrors.IsNotFound(err):
		// A clean "no such place" answer is cached as a placeholder so the
		// address is not geocoded again on every render.
		s.store(ctx, key, nil)
		return nil, nil
	default:
		// Transient upstream failure: never cached, or a temporary outage
		// would poison the cache permanently.
		return nil, err
	}
}

func (s *LocationResolverService) store(ctx context.Context, key string, coords *entities.Coordinates) {
	location := entities.NewLocation(key, coords, time.Now().UTC())
	if err := s.repo.Upsert(ctx, location); err != nil {
		// The resolution itself succeeded; a failed cache write only costs
		// an extra upstream call next time.
		observability.LoggerFromContext(ctx).Warn().
			Err(err).
			Str("address", key).
			Msg("failed to cache resolved location")
	}
}
