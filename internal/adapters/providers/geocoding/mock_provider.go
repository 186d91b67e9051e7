package geocoding

import (
	"context"
	"strings"

	"github.com/star-burger/backend/internal/domain/entities"
	"github.com/star-burger/backend/internal/domain/providers"
	apperrors "github.com/star-burger/backend/pkg/errors"
)

// MockGeocodingProvider implements a mock geocoding provider for local
// development and tests
type MockGeocodingProvider struct{}

// NewMockGeocodingProvider creates a new mock geocoding provider
func NewMockGeocodingProvider() providers.GeocodingProvider {
	return &MockGeocodingProvider{}
}

// Geocode converts an address to coordinates (mock implementation)
func (m *MockGeocodingProvider) Geocode(ctx context.Context, address string) (*entities.Coordinates, error) {
	mockCoordinates := map[string]entities.Coordinates{
		"Moscow":           {Latitude: 55.7558, Longitude: 37.6173},
		"Saint Petersburg": {Latitude: 59.9343, Longitude: 30.3351},
		"Kazan":            {Latitude: 55.7963, Longitude: 49.1088},
		"Novosibirsk":      {Latitude: 55.0084, Longitude: 82.9357},
		"Yekaterinburg":    {Latitude: 56.8389, Longitude: 60.6057},
	}

	for city, coords := range mockCoordinates {
		if strings.Contains(strings.ToLower(address), strings.ToLower(city)) {
			c := coords
			return &c, nil
		}
	}

	return nil, apperrors.NewNotFoundError("no results for address")
}
