package entities

// Hotspot represents a lively area or venue cluster in a city.
type Hotspot struct {
	ID          string   `json:"id" db:"id"`
	Name        string   `json:"name" db:"name"`
	Tags        []string `json:"tags,omitempty" db:"-"`
	Address     string   `json:"address" db:"address"`
	City        string   `json:"city" db:"city"`
	Category    string   `json:"category" db:"category"`
	Location    Location `json:"location" db:"-"`
	Rating      float64  `json:"rating" db:"rating"`
	ReviewCount int      `json:"review_count" db:"review_count"`
}

// Location represents geographical coordinates
type Location struct {
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}
