package entities

// Restaurant represents a single eatery eligible for recommendation.
type Restaurant struct {
	ID          string   `json:"id" db:"id"`
	Name        string   `json:"name" db:"name"`
	Tags        []string `json:"tags,omitempty" db:"-"`
	Address     string   `json:"address" db:"address"`
	City        string   `json:"city" db:"city"`
	Cuisine     string   `json:"cuisine" db:"cuisine"`
	Location    Location `json:"location" db:"-"`
	Rating      float64  `json:"rating" db:"rating"`
	ReviewCount int      `json:"review_count" db:"review_count"`
	PriceLevel  int      `json:"price_level" db:"price_level"`
}

// RankedRestaurant is a restaurant paired with the reasoning that put it
// in the ranked list.
type RankedRestaurant struct {
	Restaurant
	Reasoning string `json:"reasoning"`
}
