package providers

import (
	"context"

	"github.com/cravemap/backend/internal/domain/entities"
)

// RankedRef is one entry of a raw ranking: a candidate identity in ranked
// order, with optional reasoning text for restaurants.
type RankedRef struct {
	ID        string `json:"id"`
	Reasoning string `json:"reasoning,omitempty"`
}

// RankingProvider defines the interface for remote candidate ranking.
// Implementations make a single attempt; callers own the fallback strategy.
type RankingProvider interface {
	// RankHotspots asks the remote ranker to order hotspot candidates
	RankHotspots(ctx context.Context, intent entities.Intent, candidates []entities.Hotspot) ([]RankedRef, error)

	// RankRestaurants asks the remote ranker to order restaurant candidates
	RankRestaurants(ctx context.Context, intent entities.Intent, candidates []entities.Restaurant) ([]RankedRef, error)
}
