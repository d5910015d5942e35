package ranker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/cravemap/backend/internal/domain/entities"
	"github.com/cravemap/backend/internal/domain/providers"
	"github.com/cravemap/backend/pkg/config"
)

const (
	defaultTimeout = 10 * time.Second

	// minHotspotRanking is the shortest hotspot ranking the remote service
	// is expected to produce when the candidate list has at least that many
	// entries. Shorter responses are treated as malformed.
	minHotspotRanking = 5
)

// FailureReason classifies why a remote ranking attempt failed.
type FailureReason string

const (
	ReasonTimeout          FailureReason = "timeout"
	ReasonExplicitFallback FailureReason = "explicit_fallback"
	ReasonHTTPStatus       FailureReason = "http_status"
	ReasonMalformed        FailureReason = "malformed"
)

// RemoteRankingError is returned for every failed ranking attempt. Callers
// recover from all variants the same way: by running the local scorer.
type RemoteRankingError struct {
	Reason FailureReason
	Status int
	Err    error
}

// Error implements the error interface
func (e *RemoteRankingError) Error() string {
	switch e.Reason {
	case ReasonHTTPStatus:
		return fmt.Sprintf("remote ranking failed with status %d", e.Status)
	case ReasonTimeout:
		return "remote ranking timed out"
	case ReasonExplicitFallback:
		return "remote ranking requested fallback"
	default:
		if e.Err != nil {
			return fmt.Sprintf("remote ranking returned malformed response: %v", e.Err)
		}
		return "remote ranking returned malformed response"
	}
}

// Unwrap implements the unwrap interface
func (e *RemoteRankingError) Unwrap() error {
	return e.Err
}

// Client calls the remote ranking service over HTTP. One attempt per call,
// bounded by the configured timeout; the caller's fallback is the retry
// strategy.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient creates a new ranking client
func NewClient(cfg *config.RankerConfig) (*Client, error) {
	if cfg == nil || cfg.BaseURL == "" {
		return nil, errors.New("ranker base url is required")
	}

	timeout := defaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}

	return &Client{
		baseURL: cfg.BaseURL,
		timeout: timeout,
		// The http.Client timeout stays slightly above the context deadline
		// so the context is always the one that fires
		httpClient: &http.Client{
			Timeout: timeout + time.Second,
		},
	}, nil
}

type errorBody struct {
	Fallback bool   `json:"fallback"`
	Message  string `json:"message"`
}

type hotspotRanking struct {
	Hotspots []int `json:"hotspots"`
}

type restaurantPick struct {
	Index     int    `json:"index"`
	Reasoning string `json:"reasoning"`
}

type restaurantRanking struct {
	Restaurants []restaurantPick `json:"restaurants"`
}

// RankHotspots asks the remote ranker to order hotspot candidates. The
// response carries 0-based indices into the candidate list; out-of-range
// indices are dropped.
func (c *Client) RankHotspots(ctx context.Context, intent entities.Intent, candidates []entities.Hotspot) ([]providers.RankedRef, error) {
	payload := map[string]interface{}{
		"mood":     intent.Mood,
		"cravings": intent.Cravings,
		"profile":  intent.Profile,
		"hotspots": candidates,
	}

	body, err := c.post(ctx, "hotspot", payload)
	if err != nil {
		return nil, err
	}

	var ranking hotspotRanking
	if err := json.Unmarshal(body, &ranking); err != nil || ranking.Hotspots == nil {
		recordRankerMetric(ctx, "hotspot", http.StatusOK, 0, errMalformed(err))
		return nil, &RemoteRankingError{Reason: ReasonMalformed, Err: err}
	}

	refs := make([]providers.RankedRef, 0, len(ranking.Hotspots))
	for _, idx := range ranking.Hotspots {
		if idx < 0 || idx >= len(candidates) {
			continue
		}
		refs = append(refs, providers.RankedRef{ID: candidates[idx].ID})
	}

	if len(candidates) >= minHotspotRanking && len(refs) < minHotspotRanking {
		return nil, &RemoteRankingError{Reason: ReasonMalformed, Err: fmt.Errorf("only %d valid indices for %d candidates", len(refs), len(candidates))}
	}

	return refs, nil
}

// RankRestaurants asks the remote ranker to order restaurant candidates.
// Each pick carries free-text reasoning alongside its candidate index.
func (c *Client) RankRestaurants(ctx context.Context, intent entities.Intent, candidates []entities.Restaurant) ([]providers.RankedRef, error) {
	payload := map[string]interface{}{
		"mood":        intent.Mood,
		"cravings":    intent.Cravings,
		"profile":     intent.Profile,
		"restaurants": candidates,
	}

	body, err := c.post(ctx, "restaurant", payload)
	if err != nil {
		return nil, err
	}

	var ranking restaurantRanking
	if err := json.Unmarshal(body, &ranking); err != nil || ranking.Restaurants == nil {
		recordRankerMetric(ctx, "restaurant", http.StatusOK, 0, errMalformed(err))
		return nil, &RemoteRankingError{Reason: ReasonMalformed, Err: err}
	}

	refs := make([]providers.RankedRef, 0, len(ranking.Restaurants))
	for _, pick := range ranking.Restaurants {
		if pick.Index < 0 || pick.Index >= len(candidates) {
			continue
		}
		refs = append(refs, providers.RankedRef{
			ID:        candidates[pick.Index].ID,
			Reasoning: pick.Reasoning,
		})
	}

	return refs, nil
}

// post sends one ranking request and returns the raw success body.
func (c *Client) post(ctx context.Context, kind string, payload map[string]interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &RemoteRankingError{Reason: ReasonMalformed, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rank", bytes.NewReader(body))
	if err != nil {
		return nil, &RemoteRankingError{Reason: ReasonMalformed, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			recordRankerMetric(ctx, kind, 0, time.Since(start), err)
			return nil, &RemoteRankingError{Reason: ReasonTimeout, Err: err}
		}
		recordRankerMetric(ctx, kind, 0, time.Since(start), err)
		return nil, &RemoteRankingError{Reason: ReasonHTTPStatus, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		recordRankerMetric(ctx, kind, resp.StatusCode, time.Since(start), fmt.Errorf("status %d", resp.StatusCode))
		var eb errorBody
		if decodeErr := json.NewDecoder(resp.Body).Decode(&eb); decodeErr == nil && eb.Fallback {
			return nil, &RemoteRankingError{Reason: ReasonExplicitFallback, Status: resp.StatusCode}
		}
		return nil, &RemoteRankingError{Reason: ReasonHTTPStatus, Status: resp.StatusCode}
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		recordRankerMetric(ctx, kind, resp.StatusCode, time.Since(start), err)
		return nil, &RemoteRankingError{Reason: ReasonMalformed, Err: err}
	}

	recordRankerMetric(ctx, kind, resp.StatusCode, time.Since(start), nil)
	return raw, nil
}

func errMalformed(err error) error {
	if err != nil {
		return err
	}
	return errors.New("missing ranking array")
}

type rankerMetrics struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestErrors   metric.Int64Counter
}

var (
	rankerMetricsOnce sync.Once
	rankerMetricsReg  rankerMetrics
	rankerMetricsOK   bool
)

// ensureRankerMetrics registers the ranker instruments exactly once. Hotspot
// and restaurant resolutions run concurrently within a request, so the first
// two calls can arrive at the same time.
func ensureRankerMetrics() {
	rankerMetricsOnce.Do(registerRankerMetrics)
}

func registerRankerMetrics() {
	meter := otel.Meter("github.com/cravemap/backend/ranker")

	requestCount, err := meter.Int64Counter(
		"ai.ranker.request.count",
		metric.WithDescription("Number of remote ranking requests"),
	)
	if err != nil {
		return
	}
	requestDuration, err := meter.Float64Histogram(
		"ai.ranker.request.duration",
		metric.WithDescription("Remote ranking request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}
	requestErrors, err := meter.Int64Counter(
		"ai.ranker.request.errors",
		metric.WithDescription("Number of remote ranking request errors"),
	)
	if err != nil {
		return
	}

	rankerMetricsReg = rankerMetrics{
		requestCount:    requestCount,
		requestDuration: requestDuration,
		requestErrors:   requestErrors,
	}
	rankerMetricsOK = true
}

func recordRankerMetric(ctx context.Context, kind string, statusCode int, duration time.Duration, err error) {
	ensureRankerMetrics()
	if !rankerMetricsOK {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("ranking.kind", kind),
	}
	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	rankerMetricsReg.requestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	rankerMetricsReg.requestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if err != nil {
		rankerMetricsReg.requestErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}
