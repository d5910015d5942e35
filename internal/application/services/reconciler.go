package services

import (
	"github.com/cravemap/backend/internal/domain/entities"
	"github.com/cravemap/backend/internal/domain/providers"
)

// maxReasoningLength bounds the reasoning text attached to a ranked
// restaurant, whichever path produced it.
const maxReasoningLength = 120

// ReconcileHotspots joins ranked identifiers back to the canonical hotspot
// snapshot. Identifiers absent from the snapshot are dropped silently;
// duplicate identifiers collapse to the first occurrence.
func ReconcileHotspots(refs []providers.RankedRef, candidates []entities.Hotspot) []entities.Hotspot {
	byID := make(map[string]entities.Hotspot, len(candidates))
	for _, h := range candidates {
		byID[h.ID] = h
	}

	seen := make(map[string]bool, len(refs))
	out := make([]entities.Hotspot, 0, len(refs))
	for _, ref := range refs {
		if seen[ref.ID] {
			continue
		}
		h, ok := byID[ref.ID]
		if !ok {
			continue
		}
		seen[ref.ID] = true
		out = append(out, h)
	}
	return out
}

// ReconcileRestaurants joins ranked identifiers back to the canonical
// restaurant snapshot, merging each identifier's reasoning onto the
// canonical record. Orphans are dropped; first occurrence wins.
func ReconcileRestaurants(refs []providers.RankedRef, candidates []entities.Restaurant) []entities.RankedRestaurant {
	byID := make(map[string]entities.Restaurant, len(candidates))
	for _, r := range candidates {
		byID[r.ID] = r
	}

	seen := make(map[string]bool, len(refs))
	out := make([]entities.RankedRestaurant, 0, len(refs))
	for _, ref := range refs {
		if seen[ref.ID] {
			continue
		}
		r, ok := byID[ref.ID]
		if !ok {
			continue
		}
		seen[ref.ID] = true
		out = append(out, entities.RankedRestaurant{
			Restaurant: r,
			Reasoning:  truncateReasoning(ref.Reasoning),
		})
	}
	return out
}

func truncateReasoning(s string) string {
	runes := []rune(s)
	if len(runes) <= maxReasoningLength {
		return s
	}
	return string(runes[:maxReasoningLength])
}
