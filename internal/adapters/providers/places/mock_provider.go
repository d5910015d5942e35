package places

import (
	"context"
	"strings"

	"github.com/cravemap/backend/internal/domain/entities"
	"github.com/cravemap/backend/internal/domain/providers"
)

// MockPlacesProvider serves a fixed candidate set per city so the engine can
// run without a database or an external places lookup. IDs are stable across
// calls, which the signature cache relies on.
type MockPlacesProvider struct{}

// NewMockPlacesProvider creates a new mock places provider
func NewMockPlacesProvider() providers.CandidateProvider {
	return &MockPlacesProvider{}
}

// Hotspots returns the hotspot candidates for a city
func (m *MockPlacesProvider) Hotspots(ctx context.Context, city string) ([]entities.Hotspot, error) {
	key := normalizeCity(city)
	if spots, ok := mockHotspots[key]; ok {
		return copyHotspots(spots), nil
	}
	return copyHotspots(mockHotspots["lagos"]), nil
}

// Restaurants returns the restaurant candidates for a city
func (m *MockPlacesProvider) Restaurants(ctx context.Context, city string) ([]entities.Restaurant, error) {
	key := normalizeCity(city)
	if spots, ok := mockRestaurants[key]; ok {
		return copyRestaurants(spots), nil
	}
	return copyRestaurants(mockRestaurants["lagos"]), nil
}

func normalizeCity(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

func copyHotspots(src []entities.Hotspot) []entities.Hotspot {
	out := make([]entities.Hotspot, len(src))
	copy(out, src)
	return out
}

func copyRestaurants(src []entities.Restaurant) []entities.Restaurant {
	out := make([]entities.Restaurant, len(src))
	copy(out, src)
	return out
}

var mockHotspots = map[string][]entities.Hotspot{
	"lagos": {
		{ID: "hs-lag-001", Name: "Victoria Island Waterfront", Tags: []string{"nightlife", "rooftop", "views"}, Address: "Ahmadu Bello Way", City: "Lagos", Category: "nightlife", Location: entities.Location{Latitude: 6.4281, Longitude: 3.4219}, Rating: 4.6, ReviewCount: 9400},
		{ID: "hs-lag-002", Name: "Lekki Arts Market", Tags: []string{"art", "craft", "shopping"}, Address: "Lekki Phase 1", City: "Lagos", Category: "culture", Location: entities.Location{Latitude: 6.4478, Longitude: 3.4723}, Rating: 4.4, ReviewCount: 7200},
		{ID: "hs-lag-003", Name: "Freedom Park", Tags: []string{"live music", "history", "chill"}, Address: "Broad Street", City: "Lagos", Category: "park", Location: entities.Location{Latitude: 6.4500, Longitude: 3.3958}, Rating: 4.5, ReviewCount: 8600},
		{ID: "hs-lag-004", Name: "Tarkwa Bay Beach", Tags: []string{"beach", "surf", "relaxed"}, Address: "Tarkwa Bay", City: "Lagos", Category: "beach", Location: entities.Location{Latitude: 6.4084, Longitude: 3.3890}, Rating: 4.2, ReviewCount: 5100},
		{ID: "hs-lag-005", Name: "Nike Art Gallery", Tags: []string{"art", "gallery", "quiet"}, Address: "Lekki", City: "Lagos", Category: "culture", Location: entities.Location{Latitude: 6.4433, Longitude: 3.5086}, Rating: 4.7, ReviewCount: 6700},
		{ID: "hs-lag-006", Name: "New Afrika Shrine", Tags: []string{"live music", "afrobeat", "nightlife"}, Address: "Ikeja", City: "Lagos", Category: "nightlife", Location: entities.Location{Latitude: 6.6166, Longitude: 3.3566}, Rating: 4.5, ReviewCount: 8900},
		{ID: "hs-lag-007", Name: "Jhalobia Gardens", Tags: []string{"garden", "quiet", "romantic"}, Address: "Airport Road", City: "Lagos", Category: "park", Location: entities.Location{Latitude: 6.5765, Longitude: 3.3211}, Rating: 4.3, ReviewCount: 2300},
	},
	"abuja": {
		{ID: "hs-abj-001", Name: "Jabi Lake Waterfront", Tags: []string{"views", "chill", "boating"}, Address: "Jabi", City: "Abuja", Category: "park", Location: entities.Location{Latitude: 9.0765, Longitude: 7.3986}, Rating: 4.4, ReviewCount: 6100},
		{ID: "hs-abj-002", Name: "Millennium Park", Tags: []string{"garden", "quiet", "family"}, Address: "Maitama", City: "Abuja", Category: "park", Location: entities.Location{Latitude: 9.0820, Longitude: 7.4951}, Rating: 4.3, ReviewCount: 5400},
		{ID: "hs-abj-003", Name: "Art and Craft Village", Tags: []string{"art", "craft", "shopping"}, Address: "Central Area", City: "Abuja", Category: "culture", Location: entities.Location{Latitude: 9.0574, Longitude: 7.4898}, Rating: 4.1, ReviewCount: 3200},
	},
}

var mockRestaurants = map[string][]entities.Restaurant{
	"lagos": {
		{ID: "rs-lag-001", Name: "Pronto Pizza", Tags: []string{"pizza", "quick", "casual"}, Address: "Admiralty Way", City: "Lagos", Cuisine: "italian", Location: entities.Location{Latitude: 6.4430, Longitude: 3.4530}, Rating: 4.3, ReviewCount: 2100, PriceLevel: 2},
		{ID: "rs-lag-002", Name: "Mama Put Kitchen", Tags: []string{"nigerian", "jollof", "spicy"}, Address: "Surulere", City: "Lagos", Cuisine: "nigerian", Location: entities.Location{Latitude: 6.5005, Longitude: 3.3542}, Rating: 4.6, ReviewCount: 4800, PriceLevel: 1},
		{ID: "rs-lag-003", Name: "Sakura House", Tags: []string{"sushi", "japanese", "date night"}, Address: "Victoria Island", City: "Lagos", Cuisine: "japanese", Location: entities.Location{Latitude: 6.4298, Longitude: 3.4216}, Rating: 4.5, ReviewCount: 1700, PriceLevel: 3},
		{ID: "rs-lag-004", Name: "Smoke and Fire BBQ", Tags: []string{"bbq", "grill", "suya"}, Address: "Ikoyi", City: "Lagos", Cuisine: "grill", Location: entities.Location{Latitude: 6.4541, Longitude: 3.4350}, Rating: 4.4, ReviewCount: 3300, PriceLevel: 2},
		{ID: "rs-lag-005", Name: "Green Bowl", Tags: []string{"vegan", "salads", "healthy"}, Address: "Lekki Phase 1", City: "Lagos", Cuisine: "vegan", Location: entities.Location{Latitude: 6.4470, Longitude: 3.4700}, Rating: 4.2, ReviewCount: 900, PriceLevel: 2},
		{ID: "rs-lag-006", Name: "Dragon Wok", Tags: []string{"chinese", "noodles", "quick"}, Address: "Yaba", City: "Lagos", Cuisine: "chinese", Location: entities.Location{Latitude: 6.5095, Longitude: 3.3711}, Rating: 4.1, ReviewCount: 1500, PriceLevel: 1},
		{ID: "rs-lag-007", Name: "Burger Republic", Tags: []string{"burger", "fries", "casual"}, Address: "Victoria Island", City: "Lagos", Cuisine: "american", Location: entities.Location{Latitude: 6.4310, Longitude: 3.4180}, Rating: 4.0, ReviewCount: 2600, PriceLevel: 2},
		{ID: "rs-lag-008", Name: "Bangkok Street", Tags: []string{"thai", "spicy", "noodles"}, Address: "Ikeja GRA", City: "Lagos", Cuisine: "thai", Location: entities.Location{Latitude: 6.5833, Longitude: 3.3500}, Rating: 4.3, ReviewCount: 1100, PriceLevel: 2},
	},
	"abuja": {
		{ID: "rs-abj-001", Name: "Wakkis", Tags: []string{"indian", "curry", "spicy"}, Address: "Wuse 2", City: "Abuja", Cuisine: "indian", Location: entities.Location{Latitude: 9.0820, Longitude: 7.4800}, Rating: 4.5, ReviewCount: 3900, PriceLevel: 2},
		{ID: "rs-abj-002", Name: "Nkoyo", Tags: []string{"nigerian", "jollof", "fine dining"}, Address: "Ceddi Plaza", City: "Abuja", Cuisine: "nigerian", Location: entities.Location{Latitude: 9.0574, Longitude: 7.4898}, Rating: 4.4, ReviewCount: 2800, PriceLevel: 3},
		{ID: "rs-abj-003", Name: "Pizzeria Centrale", Tags: []string{"pizza", "pasta", "casual"}, Address: "Maitama", City: "Abuja", Cuisine: "italian", Location: entities.Location{Latitude: 9.0901, Longitude: 7.4922}, Rating: 4.2, ReviewCount: 1600, PriceLevel: 2},
	},
}
