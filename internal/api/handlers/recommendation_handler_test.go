package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cravemap/backend/internal/adapters/providers/places"
	"github.com/cravemap/backend/internal/application/services"
)

func newTestHandler() *RecommendationHandler {
	provider := places.NewMockPlacesProvider()
	recommender := services.NewRecommendationService(
		nil,
		services.NewFallbackRankingService(),
		nil,
		nil,
	)
	return NewRecommendationHandler(provider, recommender, "Lagos")
}

func TestGetRecommendations_Success(t *testing.T) {
	handler := newTestHandler()

	body := `{"mood": "celebratory", "cravings": "pizza", "profile": {"name": "Ada", "age": 28}}`
	req := httptest.NewRequest(http.MethodPost, "/api/recommendations", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.GetRecommendations(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp recommendationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Hotspots)
	assert.NotEmpty(t, resp.Restaurants)
	for _, r := range resp.Restaurants {
		assert.NotEmpty(t, r.Reasoning)
	}
}

func TestGetRecommendations_MissingMood(t *testing.T) {
	handler := newTestHandler()

	body := `{"mood": "  ", "cravings": "pizza"}`
	req := httptest.NewRequest(http.MethodPost, "/api/recommendations", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.GetRecommendations(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRecommendations_MissingCravings(t *testing.T) {
	handler := newTestHandler()

	body := `{"mood": "happy", "cravings": ""}`
	req := httptest.NewRequest(http.MethodPost, "/api/recommendations", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.GetRecommendations(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRecommendations_InvalidBody(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/recommendations", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	handler.GetRecommendations(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRecommendations_UnknownCityFallsBack(t *testing.T) {
	handler := newTestHandler()

	body := `{"mood": "curious", "cravings": "sushi", "city": "Atlantis"}`
	req := httptest.NewRequest(http.MethodPost, "/api/recommendations", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.GetRecommendations(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp recommendationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Hotspots)
}

func TestListHotspots(t *testing.T) {
	handler := NewCandidateHandler(places.NewMockPlacesProvider(), "Lagos")

	req := httptest.NewRequest(http.MethodGet, "/api/hotspots", nil)
	rec := httptest.NewRecorder()

	handler.ListHotspots(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Hotspots []json.RawMessage `json:"hotspots"`
		Count    int               `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, len(resp.Hotspots), resp.Count)
	assert.NotZero(t, resp.Count)
}

func TestListRestaurants_CityParam(t *testing.T) {
	handler := NewCandidateHandler(places.NewMockPlacesProvider(), "Lagos")

	req := httptest.NewRequest(http.MethodGet, "/api/restaurants?city=Abuja", nil)
	rec := httptest.NewRecorder()

	handler.ListRestaurants(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotZero(t, resp.Count)
}
