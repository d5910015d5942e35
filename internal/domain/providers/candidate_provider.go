package providers

import (
	"context"

	"github.com/cravemap/backend/internal/domain/entities"
)

// CandidateProvider supplies the canonical candidate snapshots the
// recommendation engine ranks. Implementations may read seeded tables or
// return generated data; the engine treats the result as read-only.
type CandidateProvider interface {
	// Hotspots returns the hotspot candidates for a city
	Hotspots(ctx context.Context, city string) ([]entities.Hotspot, error)

	// Restaurants returns the restaurant candidates for a city
	Restaurants(ctx context.Context, city string) ([]entities.Restaurant, error)
}
