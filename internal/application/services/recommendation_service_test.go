package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cravemap/backend/internal/domain/entities"
	"github.com/cravemap/backend/internal/domain/providers"
)

type stubRanker struct {
	hotspotRefs     []providers.RankedRef
	restaurantRefs  []providers.RankedRef
	err             error
	hotspotCalls    int
	restaurantCalls int
}

func (s *stubRanker) RankHotspots(ctx context.Context, intent entities.Intent, candidates []entities.Hotspot) ([]providers.RankedRef, error) {
	s.hotspotCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.hotspotRefs, nil
}

func (s *stubRanker) RankRestaurants(ctx context.Context, intent entities.Intent, candidates []entities.Restaurant) ([]providers.RankedRef, error) {
	s.restaurantCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.restaurantRefs, nil
}

type stubCache struct {
	entries map[string][]byte
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string][]byte)}
}

func (c *stubCache) Get(ctx context.Context, key string) ([]byte, error) {
	data, ok := c.entries[key]
	if !ok {
		return nil, fmt.Errorf("key not found: %s", key)
	}
	return data, nil
}

func (c *stubCache) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	c.entries[key] = value
	return nil
}

func (c *stubCache) Delete(ctx context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

func (c *stubCache) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := c.entries[key]
	return ok, nil
}

func testRestaurants() []entities.Restaurant {
	return []entities.Restaurant{
		{ID: "r1", Name: "Pronto Pizza", Tags: []string{"pizza", "quick"}},
		{ID: "r2", Name: "Dragon Wok", Tags: []string{"chinese", "noodles"}},
		{ID: "r3", Name: "Green Bowl", Tags: []string{"vegan", "salads"}},
	}
}

func testHotspots() []entities.Hotspot {
	return []entities.Hotspot{
		{ID: "h1", Name: "Freedom Park", Tags: []string{"live music"}, ReviewCount: 8600},
		{ID: "h2", Name: "Skyline Lounge", Tags: []string{"rooftop"}, ReviewCount: 1200},
	}
}

func TestResolveRestaurants_RemoteRankingUsed(t *testing.T) {
	ranker := &stubRanker{
		restaurantRefs: []providers.RankedRef{
			{ID: "r2", Reasoning: "noodles fit the mood"},
			{ID: "r1", Reasoning: "classic comfort"},
		},
	}
	svc := NewRecommendationService(ranker, NewFallbackRankingService(), newStubCache(), nil)

	intent := entities.Intent{Mood: "cozy", Cravings: "noodles"}
	out := svc.ResolveRestaurants(context.Background(), intent, testRestaurants())

	require.Len(t, out, 2)
	assert.Equal(t, "r2", out[0].ID)
	assert.Equal(t, "noodles fit the mood", out[0].Reasoning)
	assert.Equal(t, 1, ranker.restaurantCalls)
}

func TestResolveRestaurants_FallsBackOnRemoteError(t *testing.T) {
	ranker := &stubRanker{err: errors.New("status 500")}
	svc := NewRecommendationService(ranker, NewFallbackRankingService(), newStubCache(), nil)

	intent := entities.Intent{Mood: "hungry", Cravings: "pizza"}
	out := svc.ResolveRestaurants(context.Background(), intent, testRestaurants())

	require.NotEmpty(t, out)
	assert.Equal(t, "r1", out[0].ID)
	assert.Equal(t, 1, ranker.restaurantCalls)
}

func TestResolveRestaurants_RemoteOrphansDropped(t *testing.T) {
	ranker := &stubRanker{
		restaurantRefs: []providers.RankedRef{
			{ID: "r1", Reasoning: "good"},
			{ID: "r99", Reasoning: "hallucinated"},
		},
	}
	svc := NewRecommendationService(ranker, NewFallbackRankingService(), newStubCache(), nil)

	intent := entities.Intent{Mood: "fine", Cravings: "pizza"}
	out := svc.ResolveRestaurants(context.Background(), intent, testRestaurants())

	require.Len(t, out, 1)
	assert.Equal(t, "r1", out[0].ID)
}

func TestResolveRestaurants_CacheHitSkipsRemote(t *testing.T) {
	ranker := &stubRanker{
		restaurantRefs: []providers.RankedRef{{ID: "r1", Reasoning: "cached run"}},
	}
	svc := NewRecommendationService(ranker, NewFallbackRankingService(), newStubCache(), nil)

	intent := entities.Intent{Mood: "happy", Cravings: "pizza"}
	first := svc.ResolveRestaurants(context.Background(), intent, testRestaurants())
	second := svc.ResolveRestaurants(context.Background(), intent, testRestaurants())

	assert.Equal(t, first, second)
	assert.Equal(t, 1, ranker.restaurantCalls)
}

func TestResolveRestaurants_CachedIDsFilteredAgainstCurrentSet(t *testing.T) {
	ranker := &stubRanker{
		restaurantRefs: []providers.RankedRef{
			{ID: "r1", Reasoning: "a"},
			{ID: "r2", Reasoning: "b"},
		},
	}
	svc := NewRecommendationService(ranker, NewFallbackRankingService(), newStubCache(), nil)

	intent := entities.Intent{Mood: "happy", Cravings: "noodles"}
	first := svc.ResolveRestaurants(context.Background(), intent, testRestaurants())
	require.Len(t, first, 2)

	// r2 disappears from the canonical set; the cached ranking must not
	// resurrect it
	shrunk := []entities.Restaurant{
		{ID: "r1", Name: "Pronto Pizza", Tags: []string{"pizza", "quick"}},
	}
	second := svc.ResolveRestaurants(context.Background(), intent, shrunk)

	require.Len(t, second, 1)
	assert.Equal(t, "r1", second[0].ID)
	assert.Equal(t, 1, ranker.restaurantCalls)
}

func TestResolveRestaurants_EmptyCandidates(t *testing.T) {
	ranker := &stubRanker{}
	svc := NewRecommendationService(ranker, NewFallbackRankingService(), newStubCache(), nil)

	intent := entities.Intent{Mood: "happy", Cravings: "pizza"}
	out := svc.ResolveRestaurants(context.Background(), intent, nil)

	assert.Empty(t, out)
	assert.Equal(t, 0, ranker.restaurantCalls)
}

func TestResolveHotspots_RemoteRankingUsed(t *testing.T) {
	ranker := &stubRanker{
		hotspotRefs: []providers.RankedRef{{ID: "h2"}, {ID: "h1"}},
	}
	svc := NewRecommendationService(ranker, NewFallbackRankingService(), newStubCache(), nil)

	intent := entities.Intent{Mood: "romantic", Cravings: "cocktails"}
	out := svc.ResolveHotspots(context.Background(), intent, testHotspots())

	require.Len(t, out, 2)
	assert.Equal(t, "h2", out[0].ID)
	assert.Equal(t, 1, ranker.hotspotCalls)
}

func TestResolveHotspots_FallbackKeepsAllCandidates(t *testing.T) {
	ranker := &stubRanker{err: errors.New("timeout")}
	svc := NewRecommendationService(ranker, NewFallbackRankingService(), newStubCache(), nil)

	intent := entities.Intent{Mood: "curious", Cravings: "street food"}
	out := svc.ResolveHotspots(context.Background(), intent, testHotspots())

	assert.Len(t, out, len(testHotspots()))
}

func TestResolveHotspots_NoRankerConfigured(t *testing.T) {
	svc := NewRecommendationService(nil, NewFallbackRankingService(), nil, nil)

	intent := entities.Intent{Mood: "upbeat", Cravings: "live music"}
	out := svc.ResolveHotspots(context.Background(), intent, testHotspots())

	require.Len(t, out, 2)
	assert.Equal(t, "h1", out[0].ID)
}

func TestResolve_ColonInIntentDoesNotCollide(t *testing.T) {
	cache := newStubCache()
	svc := NewRecommendationService(nil, NewFallbackRankingService(), cache, nil)

	// "a:b"/"c" and "a"/"b:c" concatenate identically; the key encoding
	// must still keep them apart
	svc.ResolveRestaurants(context.Background(), entities.Intent{Mood: "a:b", Cravings: "c"}, testRestaurants())
	svc.ResolveRestaurants(context.Background(), entities.Intent{Mood: "a", Cravings: "b:c"}, testRestaurants())

	assert.Len(t, cache.entries, 2)
}

func TestResolve_SignaturesAreKindScoped(t *testing.T) {
	cache := newStubCache()
	svc := NewRecommendationService(nil, NewFallbackRankingService(), cache, nil)

	intent := entities.Intent{Mood: "happy", Cravings: "pizza"}
	svc.ResolveHotspots(context.Background(), intent, testHotspots())
	svc.ResolveRestaurants(context.Background(), intent, testRestaurants())

	assert.Len(t, cache.entries, 2)
}
