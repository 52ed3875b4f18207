package recommend

import (
	"context"
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSimilarityDisjointSetsIsZero(t *testing.T) {
	if got := Similarity([]string{"rock", "jazz"}, []string{"cumbia", "salsa"}); got != 0 {
		t.Fatalf("expected 0 for disjoint sets, got %v", got)
	}
}

func TestSimilarityEqualSetsIsOne(t *testing.T) {
	tags := []string{"rock", "jazz", "metal"}
	if got := Similarity(tags, tags); !almostEqual(got, 1) {
		t.Fatalf("expected 1 for equal sets, got %v", got)
	}
}

func TestSimilarityEmptySetsNeverDivideByZero(t *testing.T) {
	if got := Similarity(nil, []string{"rock"}); got != 0 {
		t.Fatalf("expected 0 for empty user set, got %v", got)
	}
	if got := Similarity([]string{"rock"}, nil); got != 0 {
		t.Fatalf("expected 0 for empty candidate set, got %v", got)
	}
	if got := Similarity(nil, nil); got != 0 {
		t.Fatalf("expected 0 for two empty sets, got %v", got)
	}
}

func TestSimilarityIsSymmetric(t *testing.T) {
	a := []string{"rock", "jazz", "blues"}
	b := []string{"jazz", "cumbia"}
	if x, y := Similarity(a, b), Similarity(b, a); !almostEqual(x, y) {
		t.Fatalf("similarity not symmetric: %v vs %v", x, y)
	}
}

func TestTagScorerSymmetricWithEqualPopularity(t *testing.T) {
	s := TagScorer{}
	ctx := context.Background()
	a := []string{"rock", "jazz"}
	b := []string{"jazz", "metal", "blues"}
	if x, y := s.Score(ctx, a, b, 7), s.Score(ctx, b, a, 7); !almostEqual(x, y) {
		t.Fatalf("score not symmetric: %v vs %v", x, y)
	}
}

func TestTagScorerPopularityBonus(t *testing.T) {
	s := TagScorer{}
	ctx := context.Background()
	base := s.Score(ctx, []string{"rock"}, []string{"rock"}, 0)
	boosted := s.Score(ctx, []string{"rock"}, []string{"rock"}, 10)
	if !almostEqual(boosted-base, 1.0) {
		t.Fatalf("expected popularity bonus of 1.0 for 10 likes, got %v", boosted-base)
	}
}

// Popularity alone must not outrank a stronger tag match when the
// popular candidate's overlap plus bonus is still lower.
func TestTagScorerFullOverlapBeatsPartialWithFewLikes(t *testing.T) {
	s := TagScorer{}
	ctx := context.Background()
	user := []string{"rock", "jazz"}
	partial := s.Score(ctx, user, []string{"rock"}, 2)      // 1/sqrt(2) + 0.2
	full := s.Score(ctx, user, []string{"jazz", "rock"}, 0) // 1.0
	if full <= partial {
		t.Fatalf("expected full overlap (%v) to beat partial+likes (%v)", full, partial)
	}
}

func TestSimilarityIgnoresDuplicateTags(t *testing.T) {
	if got := Similarity([]string{"rock", "rock"}, []string{"rock"}); !almostEqual(got, 1) {
		t.Fatalf("expected duplicates to count once, got %v", got)
	}
}
