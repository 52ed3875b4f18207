package recommend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCosine(t *testing.T) {
	cases := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 0}, []float64{1, 0}, 1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1},
		{"length mismatch", []float64{1, 0}, []float64{1}, 0},
		{"zero vector", []float64{0, 0}, []float64{1, 1}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := cosine(tc.a, tc.b); !almostEqual(got, tc.want) {
				t.Fatalf("cosine(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestHTTPEmbeddingProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Input string `json:"input"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string][]float64{"embedding": {0.1, 0.2, 0.3}})
	}))
	defer srv.Close()

	p := NewHTTPEmbeddingProvider(srv.URL)
	vec, err := p.Embed(context.Background(), "rock jazz")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(vec) != 3 {
		t.Fatalf("expected 3-dim vector, got %v", vec)
	}
}

func TestHTTPEmbeddingProviderBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := NewHTTPEmbeddingProvider(srv.URL)
	if _, err := p.Embed(context.Background(), "rock"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

type staticProvider struct {
	vectors map[string][]float64
}

func (p staticProvider) Embed(_ context.Context, text string) ([]float64, error) {
	return p.vectors[text], nil
}

type failingProvider struct{}

func (failingProvider) Embed(context.Context, string) ([]float64, error) {
	return nil, context.DeadlineExceeded
}

func TestEmbeddingScorerCosineWithBonus(t *testing.T) {
	s := NewEmbeddingScorer(staticProvider{vectors: map[string][]float64{
		"rock jazz": {1, 0},
		"rock":      {1, 0},
	}})

	got := s.Score(context.Background(), []string{"rock", "jazz"}, []string{"rock"}, 3)
	if !almostEqual(got, 1.3) {
		t.Fatalf("expected cosine 1.0 plus 0.3 bonus, got %v", got)
	}
}

func TestEmbeddingScorerFallsBackOnProviderError(t *testing.T) {
	s := NewEmbeddingScorer(failingProvider{})

	tags := []string{"rock"}
	got := s.Score(context.Background(), tags, tags, 0)
	want := TagScorer{}.Score(context.Background(), tags, tags, 0)
	if !almostEqual(got, want) {
		t.Fatalf("expected fallback to tag scorer (%v), got %v", want, got)
	}
}

func TestEmbeddingScorerEmptyTagsSkipsProvider(t *testing.T) {
	// The provider must not be consulted when either side has no tags.
	s := NewEmbeddingScorer(failingProvider{})
	if got := s.Score(context.Background(), nil, []string{"rock"}, 5); !almostEqual(got, 0.5) {
		t.Fatalf("expected bare popularity bonus 0.5, got %v", got)
	}
}
