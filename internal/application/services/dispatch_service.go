package services

import (
	"math"
	"sort"

	"github.com/star-burger/backend/internal/domain/entities"
)

// RestaurantLocation pairs a restaurant with its resolved coordinates.
// Nil coordinates mean the restaurant's address could not be placed on the
// map this render.
type RestaurantLocation struct {
	Restaurant  *entities.Restaurant
	Coordinates *entities.Coordinates
}

// RankedRestaurant is a restaurant ranked by distance from a delivery address
type RankedRestaurant struct {
	Restaurant *entities.Restaurant `json:"restaurant"`
	DistanceKm float64              `json:"distance_km"`
}

// DispatchService decides which restaurants can fulfill an order and ranks
// them by distance from the delivery address
type DispatchService struct{}

// NewDispatchService creates a new dispatch service
func NewDispatchService() *DispatchService {
	return &DispatchService{}
}

// EligibleRestaurants returns the restaurants whose available menu covers
// every distinct ordered product. Quantities never matter, only product
// identity. Runs in O(restaurants × products) over pre-indexed availability
// sets.
func (s *DispatchService) EligibleRestaurants(productIDs []string, restaurants []*entities.Restaurant) []*entities.Restaurant {
	var eligible []*entities.Restaurant

	for _, restaurant := range restaurants {
		available := restaurant.AvailableProductSet()
		covered := true
		for _, productID := range productIDs {
			if _, ok := available[productID]; !ok {
				covered = false
				break
			}
		}
		if covered {
			eligible = append(eligible, restaurant)
		}
	}

	return eligible
}

// RankByDistance orders candidates by ascending great-circle distance from
// origin, rounded to 3 decimal places of kilometers. Candidates without
// coordinates are excluded. The sort is stable: equal distances keep the
// input order.
func (s *DispatchService) RankByDistance(origin entities.Coordinates, candidates []RestaurantLocation) []RankedRestaurant {
	var ranked []RankedRestaurant

	for _, candidate := range candidates {
		if candidate.Coordinates == nil {
			continue
		}
		ranked = append(ranked, RankedRestaurant{
			Restaurant: candidate.Restaurant,
			DistanceKm: roundKm(haversineKm(origin, *candidate.Coordinates)),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	})

	return ranked
}

// haversineKm computes the great-circle distance between two points in kilometers
func haversineKm(from, to entities.Coordinates) float64 {
	const earthRadiusKm = 6371.0

	dLat := degreesToRadians(to.Latitude - from.Latitude)
	dLon := degreesToRadians(to.Longitude - from.Longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degreesToRadians(from.Latitude))*math.Cos(degreesToRadians(to.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

func roundKm(km float64) float64 {
	return math.Round(km*1000) / 1000
}
