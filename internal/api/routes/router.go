package routes

import (
	"net/http"

	"github.com/cravemap/backend/internal/api/handlers"
	"github.com/cravemap/backend/internal/api/middleware"
	"github.com/cravemap/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	recommendationHandler *handlers.RecommendationHandler
	candidateHandler      *handlers.CandidateHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	recommendationHandler *handlers.RecommendationHandler,
	candidateHandler *handlers.CandidateHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                   http.NewServeMux(),
		recommendationHandler: recommendationHandler,
		candidateHandler:      candidateHandler,
		metrics:               metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Recommendation endpoint
	r.mux.HandleFunc("POST /api/recommendations", r.recommendationHandler.GetRecommendations)

	// Candidate listing endpoints
	r.mux.HandleFunc("GET /api/hotspots", r.candidateHandler.ListHotspots)
	r.mux.HandleFunc("GET /api/restaurants", r.candidateHandler.ListRestaurants)

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so preflight requests short-circuit early
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
