package handlers

import (
	"net/http"

	"github.com/cravemap/backend/internal/domain/providers"
)

// CandidateHandler exposes the raw candidate snapshots
type CandidateHandler struct {
	candidates  providers.CandidateProvider
	defaultCity string
}

// NewCandidateHandler creates a new candidate handler
func NewCandidateHandler(candidates providers.CandidateProvider, defaultCity string) *CandidateHandler {
	return &CandidateHandler{
		candidates:  candidates,
		defaultCity: defaultCity,
	}
}

// ListHotspots handles GET /api/hotspots
func (h *CandidateHandler) ListHotspots(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	if city == "" {
		city = h.defaultCity
	}

	hotspots, err := h.candidates.Hotspots(r.Context(), city)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list hotspots")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"hotspots": hotspots,
		"count":    len(hotspots),
	})
}

// ListRestaurants handles GET /api/restaurants
func (h *CandidateHandler) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	if city == "" {
		city = h.defaultCity
	}

	restaurants, err := h.candidates.Restaurants(r.Context(), city)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list restaurants")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"restaurants": restaurants,
		"count":       len(restaurants),
	})
}
