package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/cravemap/backend/internal/application/services"
	"github.com/cravemap/backend/internal/domain/entities"
	"github.com/cravemap/backend/internal/domain/providers"
	"github.com/cravemap/backend/internal/infrastructure/observability"
)

// RecommendationHandler handles recommendation HTTP requests
type RecommendationHandler struct {
	candidates  providers.CandidateProvider
	recommender *services.RecommendationService
	defaultCity string
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(
	candidates providers.CandidateProvider,
	recommender *services.RecommendationService,
	defaultCity string,
) *RecommendationHandler {
	return &RecommendationHandler{
		candidates:  candidates,
		recommender: recommender,
		defaultCity: defaultCity,
	}
}

type recommendationRequest struct {
	Mood     string           `json:"mood"`
	Cravings string           `json:"cravings"`
	City     string           `json:"city,omitempty"`
	Profile  entities.Profile `json:"profile"`
}

type recommendationResponse struct {
	Hotspots    []entities.Hotspot          `json:"hotspots"`
	Restaurants []entities.RankedRestaurant `json:"restaurants"`
}

// GetRecommendations handles POST /api/recommendations
func (h *RecommendationHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	var req recommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Mood) == "" || strings.TrimSpace(req.Cravings) == "" {
		respondWithError(w, http.StatusBadRequest, "mood and cravings are required")
		return
	}

	city := req.City
	if city == "" {
		city = h.defaultCity
	}

	ctx := r.Context()
	logger := observability.LoggerFromContext(ctx)

	intent := entities.Intent{
		Mood:     req.Mood,
		Cravings: req.Cravings,
		Profile:  req.Profile,
	}

	hotspots, err := h.candidates.Hotspots(ctx, city)
	if err != nil {
		logger.Error().Err(err).Str("city", city).Msg("failed to load hotspot candidates")
		respondWithError(w, http.StatusInternalServerError, "failed to load candidates")
		return
	}
	restaurants, err := h.candidates.Restaurants(ctx, city)
	if err != nil {
		logger.Error().Err(err).Str("city", city).Msg("failed to load restaurant candidates")
		respondWithError(w, http.StatusInternalServerError, "failed to load candidates")
		return
	}

	// Both resolutions run independently; one falling back to the local
	// scorer never delays or degrades the other
	var wg sync.WaitGroup
	var rankedHotspots []entities.Hotspot
	var rankedRestaurants []entities.RankedRestaurant

	wg.Add(2)
	go func() {
		defer wg.Done()
		rankedHotspots = h.recommender.ResolveHotspots(ctx, intent, hotspots)
	}()
	go func() {
		defer wg.Done()
		rankedRestaurants = h.recommender.ResolveRestaurants(ctx, intent, restaurants)
	}()
	wg.Wait()

	respondWithJSON(w, http.StatusOK, recommendationResponse{
		Hotspots:    rankedHotspots,
		Restaurants: rankedRestaurants,
	})
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
