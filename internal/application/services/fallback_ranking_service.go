package services

import (
	"math"
	"sort"
	"strings"

	"github.com/cravemap/backend/internal/domain/entities"
)

// Scoring weights for the lexical matcher. Craving matches outweigh mood
// matches; name matches outweigh tag matches.
const (
	wTagCraving  = 2.0
	wTagMood     = 1.5
	wTagPhrase   = 4.0
	wNameCraving = 3.0
	wNameMood    = 2.0
	wNamePhrase  = 3.0

	// Minimum score assigned when only the cuisine keyword scan matched
	keywordFloorScore = 0.1

	minTokenLen = 3
)

// cuisineKeywords is the vocabulary scanned when nothing in the intent
// matched a restaurant directly.
var cuisineKeywords = []string{
	"pizza", "chinese", "mexican", "bbq", "vegan",
	"sushi", "burger", "thai", "italian", "spicy",
}

// FallbackRankingService scores candidates locally when the remote ranker
// is unavailable. Pure and deterministic: same intent and candidates always
// produce the same ordering.
type FallbackRankingService struct{}

// NewFallbackRankingService creates a new fallback ranking service
func NewFallbackRankingService() *FallbackRankingService {
	return &FallbackRankingService{}
}

type scoredHotspot struct {
	hotspot entities.Hotspot
	score   float64
}

type scoredRestaurant struct {
	restaurant  entities.Restaurant
	score       float64
	directMatch bool
	matchedTags []string
	nameWord    string
	keyword     string
}

// RankHotspots reorders all hotspots by lexical match score. Hotspots are
// never filtered out, only reordered; every one keeps a popularity-derived
// baseline so ordering stays total.
func (s *FallbackRankingService) RankHotspots(intent entities.Intent, hotspots []entities.Hotspot) []entities.Hotspot {
	if len(hotspots) == 0 {
		return []entities.Hotspot{}
	}

	cravingTokens := tokenize(intent.Cravings)
	moodTokens := tokenize(intent.Mood)

	scored := make([]scoredHotspot, len(hotspots))
	for i, h := range hotspots {
		score := 0.0
		name := strings.ToLower(h.Name)

		for _, tag := range h.Tags {
			t := strings.ToLower(tag)
			for _, tok := range cravingTokens {
				if containsEither(t, tok) {
					score += wTagCraving
				}
			}
			for _, tok := range moodTokens {
				if containsEither(t, tok) {
					score += wTagMood
				}
			}
		}

		for _, tok := range cravingTokens {
			if strings.Contains(name, tok) {
				score += wNameCraving
			}
		}
		for _, tok := range moodTokens {
			if strings.Contains(name, tok) {
				score += wNameMood
			}
		}

		if h.ReviewCount > 8000 {
			score += 2
		} else if h.ReviewCount > 6000 {
			score += 1
		}

		if score == 0 {
			rc := h.ReviewCount
			if rc < 1 {
				rc = 1
			}
			score = math.Log(float64(rc)) / 10
		}

		scored[i] = scoredHotspot{hotspot: h, score: score}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	ranked := make([]entities.Hotspot, len(scored))
	for i, sh := range scored {
		ranked[i] = sh.hotspot
	}
	return ranked
}

// RankRestaurants scores restaurants against the intent and returns only
// those that matched, ordered direct matches first, then by score.
func (s *FallbackRankingService) RankRestaurants(intent entities.Intent, restaurants []entities.Restaurant) []entities.RankedRestaurant {
	if len(restaurants) == 0 {
		return []entities.RankedRestaurant{}
	}

	cravingPhrase := strings.ToLower(strings.TrimSpace(intent.Cravings))
	cravingTokens := tokenize(intent.Cravings)
	moodTokens := tokenize(intent.Mood)

	scored := make([]scoredRestaurant, 0, len(restaurants))
	for _, r := range restaurants {
		sr := scoredRestaurant{restaurant: r}
		name := strings.ToLower(r.Name)

		for _, tag := range r.Tags {
			t := strings.ToLower(tag)
			tagHit := false
			for _, tok := range cravingTokens {
				if containsEither(t, tok) {
					sr.score += wTagCraving
					tagHit = true
				}
			}
			for _, tok := range moodTokens {
				if containsEither(t, tok) {
					sr.score += wTagMood
					tagHit = true
				}
			}
			if cravingPhrase != "" && containsEither(t, cravingPhrase) {
				sr.score += wTagPhrase
				tagHit = true
			}
			if tagHit {
				sr.directMatch = true
				sr.matchedTags = append(sr.matchedTags, t)
			}
		}

		for _, tok := range cravingTokens {
			if strings.Contains(name, tok) {
				sr.score += wNameCraving
				sr.directMatch = true
				if sr.nameWord == "" {
					sr.nameWord = tok
				}
			}
		}
		for _, tok := range moodTokens {
			if strings.Contains(name, tok) {
				sr.score += wNameMood
				sr.directMatch = true
				if sr.nameWord == "" {
					sr.nameWord = tok
				}
			}
		}
		if cravingPhrase != "" && strings.Contains(name, cravingPhrase) {
			sr.score += wNamePhrase
			sr.directMatch = true
			if sr.nameWord == "" {
				sr.nameWord = cravingPhrase
			}
		}

		// Keyword floor: a restaurant with no match at all still surfaces
		// when it serves a recognizable cuisine
		if sr.score == 0 {
			for _, tag := range r.Tags {
				t := strings.ToLower(tag)
				for _, kw := range cuisineKeywords {
					if strings.Contains(t, kw) {
						sr.score = keywordFloorScore
						sr.keyword = kw
						break
					}
				}
				if sr.keyword != "" {
					break
				}
			}
		}

		scored = append(scored, sr)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].directMatch != scored[j].directMatch {
			return scored[i].directMatch
		}
		return scored[i].score > scored[j].score
	})

	ranked := make([]entities.RankedRestaurant, 0, len(scored))
	for _, sr := range scored {
		if sr.score <= 0 {
			continue
		}
		ranked = append(ranked, entities.RankedRestaurant{
			Restaurant: sr.restaurant,
			Reasoning:  truncateReasoning(composeReasoning(sr)),
		})
	}
	return ranked
}

// tokenize lower-cases the input, splits on whitespace, and drops tokens
// too short to match meaningfully.
func tokenize(s string) []string {
	fields := strings.Fields(strings.ToLower(s))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) >= minTokenLen {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// containsEither reports a substring hit in either direction, so "pizza"
// matches the tag "pizzeria" and the tag "bbq" matches "korean bbq".
func containsEither(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func composeReasoning(sr scoredRestaurant) string {
	name := sr.restaurant.Name

	if len(sr.matchedTags) > 0 {
		tags := sr.matchedTags
		if len(tags) > 2 {
			tags = tags[:2]
		}
		return name + " serves " + strings.Join(tags, " & ")
	}
	if sr.nameWord != "" {
		return name + " specializes in " + sr.nameWord
	}
	if sr.keyword != "" {
		return name + " serves " + sr.keyword
	}
	return name
}
