package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	otelruntime "go.opentelemetry.io/contrib/instrumentation/runtime"

	"github.com/cravemap/backend/internal/adapters/cache"
	"github.com/cravemap/backend/internal/adapters/providers/places"
	"github.com/cravemap/backend/internal/api/handlers"
	"github.com/cravemap/backend/internal/api/routes"
	"github.com/cravemap/backend/internal/application/services"
	"github.com/cravemap/backend/internal/domain/providers"
	"github.com/cravemap/backend/internal/infrastructure/clients/postgres"
	"github.com/cravemap/backend/internal/infrastructure/clients/ranker"
	"github.com/cravemap/backend/internal/infrastructure/clients/redis"
	"github.com/cravemap/backend/internal/infrastructure/observability"
	"github.com/cravemap/backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			if err := otelruntime.Start(); err != nil {
				log.Warn().Err(err).Msg("failed to start runtime instrumentation")
			}
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Initialize Redis; the application works without it, falling back to
	// the in-process cache
	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, using in-memory ranking cache")
		cacheProvider = cache.NewMemoryAdapter()
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		log.Info().Msg("Redis ranking cache initialized")
	}

	// Initialize Postgres only when the candidate source needs it
	var pgClient *postgres.Client
	if cfg.Places.Provider == "postgres" {
		pgClient, err = postgres.NewClient(&cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
		}
		defer pgClient.Close()
	}

	candidateProvider, err := places.NewCandidateProvider(&cfg.Places, pgClient)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize candidate provider")
	}
	log.Info().Str("provider", cfg.Places.Provider).Msg("candidate provider initialized")

	// Remote ranker is optional; without it every resolution uses the
	// local scorer
	var rankingProvider providers.RankingProvider
	if cfg.Ranker.BaseURL != "" {
		rankerClient, err := ranker.NewClient(&cfg.Ranker)
		if err != nil {
			log.Warn().Err(err).Msg("failed to initialize ranking client, local scorer only")
		} else {
			rankingProvider = rankerClient
			log.Info().Str("base_url", cfg.Ranker.BaseURL).Msg("remote ranking client initialized")
		}
	} else {
		log.Info().Msg("no ranker configured, local scorer only")
	}

	// Initialize services
	fallbackService := services.NewFallbackRankingService()
	recommendationService := services.NewRecommendationService(
		rankingProvider,
		fallbackService,
		cacheProvider,
		metrics,
	)

	// Initialize handlers
	recommendationHandler := handlers.NewRecommendationHandler(
		candidateProvider,
		recommendationService,
		cfg.Places.DefaultCity,
	)
	candidateHandler := handlers.NewCandidateHandler(candidateProvider, cfg.Places.DefaultCity)

	// Set up router
	router := routes.NewRouter(recommendationHandler, candidateHandler, metrics)
	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("server stopped")
}
