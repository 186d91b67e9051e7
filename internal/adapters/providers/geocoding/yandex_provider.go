package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/star-burger/backend/internal/domain/entities"
	"github.com/star-burger/backend/internal/infrastructure/observability"
	apperrors "github.com/star-burger/backend/pkg/errors"
)

const (
	yandexGeocodeURL   = "https://geocode-maps.yandex.ru/1.x"
	defaultHTTPTimeout = 8 * time.Second
)

// Outcome labels recorded on the geocoder request counter.
const (
	geocodeOutcomeResolved = "resolved"
	geocodeOutcomeNotFound = "not_found"
	geocodeOutcomeError    = "error"
)

// YandexGeocodingProvider implements GeocodingProvider using the Yandex
// geocoder HTTP API.
type YandexGeocodingProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	metrics    *observability.Metrics
}

// NewYandexGeocodingProvider creates a new Yandex geocoding provider
func NewYandexGeocodingProvider(apiKey string) *YandexGeocodingProvider {
	return NewYandexGeocodingProviderWithOptions(apiKey, yandexGeocodeURL, nil)
}

// NewYandexGeocodingProviderWithOptions allows overriding base URL and HTTP client (used for tests)
func NewYandexGeocodingProviderWithOptions(apiKey, baseURL string, httpClient *http.Client) *YandexGeocodingProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = yandexGeocodeURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &YandexGeocodingProvider{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// WithMetrics enables outcome counting on every upstream call
func (g *YandexGeocodingProvider) WithMetrics(metrics *observability.Metrics) *YandexGeocodingProvider {
	g.metrics = metrics
	return g
}

// yandexGeocodeResponse mirrors the nested structure of the Yandex geocoder
// payload; only the fields we read are declared.
type yandexGeocodeResponse struct {
	Response struct {
		GeoObjectCollection struct {
			FeatureMember []struct {
				GeoObject struct {
					Point struct {
						Pos string `json:"pos"`
					} `json:"Point"`
				} `json:"GeoObject"`
			} `json:"featureMember"`
		} `json:"GeoObjectCollection"`
	} `json:"response"`
}

// Geocode converts an address to coordinates. The first (most relevant)
// result of the provider's list is used, the rest are discarded.
func (g *YandexGeocodingProvider) Geocode(ctx context.Context, address string) (*entities.Coordinates, error) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return nil, apperrors.NewValidationError("address is required")
	}
	if g.apiKey == "" {
		return nil, apperrors.NewValidationError("yandex geocoder api key is required")
	}

	params := url.Values{}
	params.Set("geocode", trimmed)
	params.Set("apikey", g.apiKey)
	params.Set("format", "json")

	reqURL := fmt.Sprintf("%s?%s", g.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build geocode request", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		// Covers transport failures and client timeouts alike.
		g.recordOutcome(ctx, geocodeOutcomeError)
		return nil, apperrors.NewExternalError("geocode request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		g.recordOutcome(ctx, geocodeOutcomeError)
		return nil, apperrors.NewExternalError(fmt.Sprintf("geocode request returned status %d", resp.StatusCode), nil)
	}

	var payload yandexGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		g.recordOutcome(ctx, geocodeOutcomeError)
		return nil, apperrors.NewExternalError("failed to decode geocode response", err)
	}

	found := payload.Response.GeoObjectCollection.FeatureMember
	if len(found) == 0 {
		g.recordOutcome(ctx, geocodeOutcomeNotFound)
		return nil, apperrors.NewNotFoundError("no results for address")
	}

	mostRelevant := found[0]
	coords, err := parsePos(mostRelevant.GeoObject.Point.Pos)
	if err != nil {
		g.recordOutcome(ctx, geocodeOutcomeError)
		return nil, apperrors.NewExternalError("malformed geocode response", err)
	}

	g.recordOutcome(ctx, geocodeOutcomeResolved)
	return coords, nil
}

func (g *YandexGeocodingProvider) recordOutcome(ctx context.Context, outcome string) {
	if g.metrics != nil {
		observability.RecordGeocodeRequest(ctx, g.metrics, outcome)
	}
}

// parsePos parses the Yandex "pos" field, a space-separated "<lon> <lat>" pair
func parsePos(pos string) (*entities.Coordinates, error) {
	parts := strings.Fields(pos)
	if len(parts) != 2 {
		return nil, fmt.Errorf("unexpected point format %q", pos)
	}

	lon, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude %q: %w", parts[0], err)
	}
	lat, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude %q: %w", parts[1], err)
	}

	return &entities.Coordinates{Latitude: lat, Longitude: lon}, nil
}
