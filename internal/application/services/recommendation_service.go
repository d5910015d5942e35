package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cravemap/backend/internal/domain/entities"
	"github.com/cravemap/backend/internal/domain/providers"
	"github.com/cravemap/backend/internal/infrastructure/observability"
)

// rankCacheTTLSeconds is how long a resolved ranking stays valid for an
// identical intent signature.
const rankCacheTTLSeconds = 300

// RecommendationService resolves an intent against a candidate snapshot.
// Resolution order: signature cache, remote ranker, local fallback scorer.
// Ranking failures never reach the caller; the fallback path is pure and
// always produces a result.
type RecommendationService struct {
	ranker   providers.RankingProvider
	fallback *FallbackRankingService
	cache    providers.CacheProvider
	metrics  *observability.Metrics
}

// NewRecommendationService creates a new recommendation service. ranker and
// cache may be nil; the service degrades to fallback-only, uncached
// resolution.
func NewRecommendationService(
	ranker providers.RankingProvider,
	fallback *FallbackRankingService,
	cache providers.CacheProvider,
	metrics *observability.Metrics,
) *RecommendationService {
	return &RecommendationService{
		ranker:   ranker,
		fallback: fallback,
		cache:    cache,
		metrics:  metrics,
	}
}

// ResolveHotspots returns the hotspot candidates reordered for the intent.
// The full candidate set always comes back; hotspots are never filtered.
func (s *RecommendationService) ResolveHotspots(ctx context.Context, intent entities.Intent, candidates []entities.Hotspot) []entities.Hotspot {
	if len(candidates) == 0 {
		return []entities.Hotspot{}
	}

	key := signatureKey("hotspot", intent)
	if refs, ok := s.cachedRefs(ctx, key, "hotspot"); ok {
		return ReconcileHotspots(refs, candidates)
	}

	refs := s.remoteHotspotRefs(ctx, intent, candidates)
	if refs == nil {
		ranked := s.fallback.RankHotspots(intent, candidates)
		refs = make([]providers.RankedRef, len(ranked))
		for i, h := range ranked {
			refs[i] = providers.RankedRef{ID: h.ID}
		}
	}

	result := ReconcileHotspots(refs, candidates)
	s.storeRefs(ctx, key, hotspotRefs(result))
	return result
}

// ResolveRestaurants returns the restaurants matching the intent, each with
// reasoning text. Non-matching restaurants are excluded.
func (s *RecommendationService) ResolveRestaurants(ctx context.Context, intent entities.Intent, candidates []entities.Restaurant) []entities.RankedRestaurant {
	if len(candidates) == 0 {
		return []entities.RankedRestaurant{}
	}

	key := signatureKey("restaurant", intent)
	if refs, ok := s.cachedRefs(ctx, key, "restaurant"); ok {
		return ReconcileRestaurants(refs, candidates)
	}

	refs := s.remoteRestaurantRefs(ctx, intent, candidates)
	if refs == nil {
		ranked := s.fallback.RankRestaurants(intent, candidates)
		refs = make([]providers.RankedRef, len(ranked))
		for i, r := range ranked {
			refs[i] = providers.RankedRef{ID: r.ID, Reasoning: r.Reasoning}
		}
	}

	result := ReconcileRestaurants(refs, candidates)
	s.storeRefs(ctx, key, restaurantRefs(result))
	return result
}

func (s *RecommendationService) remoteHotspotRefs(ctx context.Context, intent entities.Intent, candidates []entities.Hotspot) []providers.RankedRef {
	if s.ranker == nil {
		return nil
	}
	refs, err := s.ranker.RankHotspots(ctx, intent, candidates)
	if err != nil {
		s.recordFallback(ctx, "hotspot", err)
		return nil
	}
	return refs
}

func (s *RecommendationService) remoteRestaurantRefs(ctx context.Context, intent entities.Intent, candidates []entities.Restaurant) []providers.RankedRef {
	if s.ranker == nil {
		return nil
	}
	refs, err := s.ranker.RankRestaurants(ctx, intent, candidates)
	if err != nil {
		s.recordFallback(ctx, "restaurant", err)
		return nil
	}
	return refs
}

func (s *RecommendationService) recordFallback(ctx context.Context, kind string, err error) {
	logger := observability.LoggerFromContext(ctx)
	logger.Warn().
		Str("kind", kind).
		Err(err).
		Msg("remote ranking failed, using local scorer")
	if s.metrics != nil {
		observability.RecordFallback(ctx, s.metrics, kind, err.Error())
	}
}

func (s *RecommendationService) cachedRefs(ctx context.Context, key, kind string) ([]providers.RankedRef, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if s.metrics != nil {
			observability.RecordCacheMiss(ctx, s.metrics, kind)
		}
		return nil, false
	}
	var refs []providers.RankedRef
	if err := json.Unmarshal(data, &refs); err != nil {
		return nil, false
	}
	if s.metrics != nil {
		observability.RecordCacheHit(ctx, s.metrics, kind)
	}
	return refs, true
}

func (s *RecommendationService) storeRefs(ctx context.Context, key string, refs []providers.RankedRef) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(refs)
	if err != nil {
		return
	}
	_ = s.cache.Set(ctx, key, data, rankCacheTTLSeconds)
}

// signatureKey builds the cache key from the intent as supplied. Mood and
// cravings are length-prefixed so a ':' typed inside either field cannot
// make two different intents share a key.
func signatureKey(kind string, intent entities.Intent) string {
	return fmt.Sprintf("rank:%s:%d:%s:%d:%s",
		kind, len(intent.Mood), intent.Mood, len(intent.Cravings), intent.Cravings)
}

func hotspotRefs(hotspots []entities.Hotspot) []providers.RankedRef {
	refs := make([]providers.RankedRef, len(hotspots))
	for i, h := range hotspots {
		refs[i] = providers.RankedRef{ID: h.ID}
	}
	return refs
}

func restaurantRefs(restaurants []entities.RankedRestaurant) []providers.RankedRef {
	refs := make([]providers.RankedRef, len(restaurants))
	for i, r := range restaurants {
		refs[i] = providers.RankedRef{ID: r.ID, Reasoning: r.Reasoning}
	}
	return refs
}
