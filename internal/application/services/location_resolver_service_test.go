package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/star-burger/backend/internal/application/services"
	"github.com/star-burger/backend/internal/domain/entities"
	apperrors "github.com/star-burger/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mocks

type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) GetByAddress(ctx context.Context, address string) (*entities.Location, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Location), args.Error(1)
}

func (m *MockLocationRepository) Upsert(ctx context.Context, location *entities.Location) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

type MockGeocodingProvider struct {
	mock.Mock
}

func (m *MockGeocodingProvider) Geocode(ctx context.Context, address string) (*entities.Coordinates, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Coordinates), args.Error(1)
}

// Tests

func TestNormalizeAddress(t *testing.T) {
	assert.Equal(t, "москва, ул. тверская 1", services.NormalizeAddress("  Москва,   ул. Тверская 1 "))
	assert.Equal(t, "moscow", services.NormalizeAddress("MOSCOW"))
	assert.Equal(t, "", services.NormalizeAddress("   "))
}

func TestLocationResolverService_Resolve_CacheHit(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLocationRepository)
	geocoder := new(MockGeocodingProvider)
	resolver := services.NewLocationResolverService(repo, geocoder)

	cached := entities.NewLocation("moscow, tverskaya 1",
		&entities.Coordinates{Latitude: 55.75, Longitude: 37.61}, time.Now())

	repo.On("GetByAddress", mock.Anything, "moscow, tverskaya 1").Return(cached, nil)

	coords, err := resolver.Resolve(ctx, "  Moscow,  Tverskaya 1 ")

	assert.NoError(t, err)
	assert.NotNil(t, coords)
	assert.Equal(t, 55.75, coords.Latitude)
	assert.Equal(t, 37.61, coords.Longitude)
	geocoder.AssertNotCalled(t, "Geocode", mock.Anything, mock.Anything)
}

func TestLocationResolverService_Resolve_MissGeocodesAndCaches(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLocationRepository)
	geocoder := new(MockGeocodingProvider)
	resolver := services.NewLocationResolverService(repo, geocoder)

	repo.On("GetByAddress", mock.Anything, "moscow").
		Return(nil, apperrors.NewNotFoundError("location not found"))
	geocoder.On("Geocode", mock.Anything, "moscow").
		Return(&entities.Coordinates{Latitude: 55.75, Longitude: 37.61}, nil).Once()
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(l *entities.Location) bool {
		return l.Address == "moscow" && l.Coordinates() != nil
	})).Return(nil)

	coords, err := resolver.Resolve(ctx, "Moscow")

	assert.NoError(t, err)
	assert.NotNil(t, coords)
	assert.Equal(t, 55.75, coords.Latitude)
	repo.AssertExpectations(t)
	geocoder.AssertExpectations(t)
}

func TestLocationResolverService_Resolve_RepeatHitsCacheOnly(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLocationRepository)
	geocoder := new(MockGeocodingProvider)
	resolver := services.NewLocationResolverService(repo, geocoder)

	coords := &entities.Coordinates{Latitude: 55.75, Longitude: 37.61}

	// First lookup misses, second finds what the first stored.
	repo.On("GetByAddress", mock.Anything, "moscow").
		Return(nil, apperrors.NewNotFoundError("location not found")).Once()
	geocoder.On("Geocode", mock.Anything, "moscow").Return(coords, nil).Once()
	repo.On("Upsert", mock.Anything, mock.Anything).Return(nil).Once()
	repo.On("GetByAddress", mock.Anything, "moscow").
		Return(entities.NewLocation("moscow", coords, time.Now()), nil).Once()

	first, err := resolver.Resolve(ctx, "Moscow")
	assert.NoError(t, err)
	second, err := resolver.Resolve(ctx, "moscow")
	assert.NoError(t, err)

	assert.Equal(t, first, second)
	geocoder.AssertNumberOfCalls(t, "Geocode", 1)
}

func TestLocationResolverService_Resolve_NotFoundCachesPlaceholder(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLocationRepository)
	geocoder := new(MockGeocodingProvider)
	resolver := services.NewLocationResolverService(repo, geocoder)

	repo.On("GetByAddress", mock.Anything, "nowhere street 0").
		Return(nil, apperrors.NewNotFoundError("location not found"))
	geocoder.On("Geocode", mock.Anything, "nowhere street 0").
		Return(nil, apperrors.NewNotFoundError("no results for address"))
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(l *entities.Location) bool {
		return l.Address == "nowhere street 0" && l.Coordinates() == nil
	})).Return(nil).Once()

	coords, err := resolver.Resolve(ctx, "Nowhere Street 0")

	assert.NoError(t, err)
	assert.Nil(t, coords)
	repo.AssertExpectations(t)
}

func TestLocationResolverService_Resolve_PlaceholderHitSkipsGeocoder(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLocationRepository)
	geocoder := new(MockGeocodingProvider)
	resolver := services.NewLocationResolverService(repo, geocoder)

	placeholder := entities.NewLocation("nowhere street 0", nil, time.Now())
	repo.On("GetByAddress", mock.Anything, "nowhere street 0").Return(placeholder, nil)

	coords, err := resolver.Resolve(ctx, "Nowhere Street 0")

	assert.NoError(t, err)
	assert.Nil(t, coords)
	geocoder.AssertNotCalled(t, "Geocode", mock.Anything, mock.Anything)
}

func TestLocationResolverService_Resolve_TransientErrorNotCached(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLocationRepository)
	geocoder := new(MockGeocodingProvider)
	resolver := services.NewLocationResolverService(repo, geocoder)

	repo.On("GetByAddress", mock.Anything, "moscow").
		Return(nil, apperrors.NewNotFoundError("location not found"))
	geocoder.On("Geocode", mock.Anything, "moscow").
		Return(nil, apperrors.NewExternalError("geocoder unavailable", nil))

	coords, err := resolver.Resolve(ctx, "Moscow")

	assert.Error(t, err)
	assert.True(t, apperrors.IsExternal(err))
	assert.Nil(t, coords)
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestLocationResolverService_Resolve_EmptyAddress(t *testing.T) {
	resolver := services.NewLocationResolverService(new(MockLocationRepository), new(MockGeocodingProvider))

	coords, err := resolver.Resolve(context.Background(), "   ")

	assert.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Nil(t, coords)
}

func TestLocationResolverService_Resolve_CacheWriteFailureStillResolves(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLocationRepository)
	geocoder := new(MockGeocodingProvider)
	resolver := services.NewLocationResolverService(repo, geocoder)

	repo.On("GetByAddress", mock.Anything, "moscow").
		Return(nil, apperrors.NewNotFoundError("location not found"))
	geocoder.On("Geocode", mock.Anything, "moscow").
		Return(&entities.Coordinates{Latitude: 55.75, Longitude: 37.61}, nil)
	repo.On("Upsert", mock.Anything, mock.Anything).
		Return(apperrors.NewInternalError("db unavailable", nil))

	coords, err := resolver.Resolve(ctx, "Moscow")

	assert.NoError(t, err)
	assert.NotNil(t, coords)
}
