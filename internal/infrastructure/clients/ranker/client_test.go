package ranker

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cravemap/backend/internal/domain/entities"
	"github.com/cravemap/backend/pkg/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(&config.RankerConfig{BaseURL: server.URL, TimeoutSeconds: 5})
	require.NoError(t, err)
	return client
}

func hotspotCandidates(n int) []entities.Hotspot {
	out := make([]entities.Hotspot, n)
	for i := range out {
		out[i] = entities.Hotspot{ID: fmt.Sprintf("h%d", i), Name: fmt.Sprintf("Spot %d", i)}
	}
	return out
}

func restaurantCandidates(n int) []entities.Restaurant {
	out := make([]entities.Restaurant, n)
	for i := range out {
		out[i] = entities.Restaurant{ID: fmt.Sprintf("r%d", i), Name: fmt.Sprintf("Place %d", i)}
	}
	return out
}

var testIntent = entities.Intent{Mood: "celebratory", Cravings: "suya"}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient(&config.RankerConfig{})
	assert.Error(t, err)

	_, err = NewClient(nil)
	assert.Error(t, err)
}

func TestRankHotspots_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rank", r.URL.Path)
		fmt.Fprint(w, `{"hotspots": [4, 2, 0, 1, 3]}`)
	})

	refs, err := client.RankHotspots(context.Background(), testIntent, hotspotCandidates(5))

	require.NoError(t, err)
	require.Len(t, refs, 5)
	assert.Equal(t, "h4", refs[0].ID)
	assert.Equal(t, "h2", refs[1].ID)
}

func TestRankHotspots_DropsOutOfRangeIndices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"hotspots": [1, 57, -1, 0, 2]}`)
	})

	refs, err := client.RankHotspots(context.Background(), testIntent, hotspotCandidates(3))

	require.NoError(t, err)
	require.Len(t, refs, 3)
	assert.Equal(t, "h1", refs[0].ID)
	assert.Equal(t, "h0", refs[1].ID)
	assert.Equal(t, "h2", refs[2].ID)
}

func TestRankHotspots_TooFewValidIndicesIsMalformed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"hotspots": [0, 1, 99]}`)
	})

	_, err := client.RankHotspots(context.Background(), testIntent, hotspotCandidates(8))

	var rankErr *RemoteRankingError
	require.ErrorAs(t, err, &rankErr)
	assert.Equal(t, ReasonMalformed, rankErr.Reason)
}

func TestRankHotspots_SmallCandidateListSkipsMinimum(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"hotspots": [1, 0]}`)
	})

	refs, err := client.RankHotspots(context.Background(), testIntent, hotspotCandidates(2))

	require.NoError(t, err)
	assert.Len(t, refs, 2)
}

func TestRankHotspots_MissingArrayIsMalformed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"something_else": true}`)
	})

	_, err := client.RankHotspots(context.Background(), testIntent, hotspotCandidates(3))

	var rankErr *RemoteRankingError
	require.ErrorAs(t, err, &rankErr)
	assert.Equal(t, ReasonMalformed, rankErr.Reason)
}

func TestRankHotspots_NonJSONBodyIsMalformed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not json at all`)
	})

	_, err := client.RankHotspots(context.Background(), testIntent, hotspotCandidates(3))

	var rankErr *RemoteRankingError
	require.ErrorAs(t, err, &rankErr)
	assert.Equal(t, ReasonMalformed, rankErr.Reason)
}

func TestRankHotspots_ExplicitFallback(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"fallback": true, "message": "model unavailable"}`)
	})

	_, err := client.RankHotspots(context.Background(), testIntent, hotspotCandidates(3))

	var rankErr *RemoteRankingError
	require.ErrorAs(t, err, &rankErr)
	assert.Equal(t, ReasonExplicitFallback, rankErr.Reason)
	assert.Equal(t, http.StatusInternalServerError, rankErr.Status)
}

func TestRankHotspots_HTTPStatusError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, `upstream exploded`)
	})

	_, err := client.RankHotspots(context.Background(), testIntent, hotspotCandidates(3))

	var rankErr *RemoteRankingError
	require.ErrorAs(t, err, &rankErr)
	assert.Equal(t, ReasonHTTPStatus, rankErr.Reason)
	assert.Equal(t, http.StatusBadGateway, rankErr.Status)
}

func TestRankHotspots_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(3 * time.Second):
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(&config.RankerConfig{BaseURL: server.URL, TimeoutSeconds: 1})
	require.NoError(t, err)

	_, err = client.RankHotspots(context.Background(), testIntent, hotspotCandidates(3))

	var rankErr *RemoteRankingError
	require.ErrorAs(t, err, &rankErr)
	assert.Equal(t, ReasonTimeout, rankErr.Reason)
}

func TestRankRestaurants_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"restaurants": [
			{"index": 2, "reasoning": "best match for suya"},
			{"index": 0, "reasoning": "close second"}
		]}`)
	})

	refs, err := client.RankRestaurants(context.Background(), testIntent, restaurantCandidates(3))

	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, "r2", refs[0].ID)
	assert.Equal(t, "best match for suya", refs[0].Reasoning)
	assert.Equal(t, "r0", refs[1].ID)
}

func TestRankRestaurants_DropsOutOfRangePicks(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"restaurants": [
			{"index": 9, "reasoning": "no such place"},
			{"index": 1, "reasoning": "real"}
		]}`)
	})

	refs, err := client.RankRestaurants(context.Background(), testIntent, restaurantCandidates(2))

	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "r1", refs[0].ID)
}

func TestRecordRankerMetric_ConcurrentFirstUse(t *testing.T) {
	// Hotspot and restaurant resolutions share a request, so the first two
	// metric records can land at the same time; registration must not race
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			recordRankerMetric(context.Background(), "hotspot", http.StatusOK, time.Millisecond, nil)
			recordRankerMetric(context.Background(), "restaurant", http.StatusBadGateway, time.Millisecond, errors.New("status 502"))
		}()
	}
	wg.Wait()
}

func TestRankRestaurants_MissingArrayIsMalformed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	})

	_, err := client.RankRestaurants(context.Background(), testIntent, restaurantCandidates(2))

	var rankErr *RemoteRankingError
	require.ErrorAs(t, err, &rankErr)
	assert.Equal(t, ReasonMalformed, rankErr.Reason)
}
