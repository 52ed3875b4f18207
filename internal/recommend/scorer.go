// Package recommend implements the recommendation core: a pluggable
// affinity scorer and the engine that ranks events and musicians for a
// user based on shared music-genre tags.
package recommend

import (
	"context"
	"math"
)

// Weight applied to the popularity signal so well-received candidates
// rank above purely tag-matched ones of equal textual relevance.
const popularityWeight = 0.1

// Scorer computes the affinity between a user's interest tags and a
// candidate's tags, blended with a popularity count.
type Scorer interface {
	Score(ctx context.Context, userTags, candidateTags []string, popularity int) float64
}

// TagScorer is the baseline scorer: set overlap with cosine-like
// normalization over binary tag vectors. Pure and deterministic.
type TagScorer struct{}

func (TagScorer) Score(_ context.Context, userTags, candidateTags []string, popularity int) float64 {
	return Similarity(userTags, candidateTags) + float64(popularity)*popularityWeight
}

// Similarity returns |intersection| / sqrt(|a| * |b|), or 0 when either
// set is empty. Duplicate tags within a set are counted once.
func Similarity(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	setA := make(map[string]struct{}, len(a))
	for _, tag := range a {
		setA[tag] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, tag := range b {
		setB[tag] = struct{}{}
	}
	intersection := 0
	for tag := range setA {
		if _, ok := setB[tag]; ok {
			intersection++
		}
	}
	return float64(intersection) / math.Sqrt(float64(len(setA))*float64(len(setB)))
}
