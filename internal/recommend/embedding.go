package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"strings"
	"time"
)

const embeddingTimeout = 5 * time.Second

// EmbeddingProvider turns text into a fixed-length numeric vector.
type EmbeddingProvider interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// HTTPEmbeddingProvider calls an external embedding service. Every call
// is bounded by a fixed timeout so a stuck provider cannot hang a
// request.
type HTTPEmbeddingProvider struct {
	URL    string
	Client *http.Client
}

func NewHTTPEmbeddingProvider(url string) *HTTPEmbeddingProvider {
	return &HTTPEmbeddingProvider{
		URL:    url,
		Client: &http.Client{Timeout: embeddingTimeout},
	}
}

func (p *HTTPEmbeddingProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	body, err := json.Marshal(map[string]string{"input": text})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.URL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedding provider request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embedding provider returned status %d", resp.StatusCode)
	}

	var out struct {
		Embedding []float64 `json:"embedding"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("embedding provider response: %w", err)
	}
	if len(out.Embedding) == 0 {
		return nil, fmt.Errorf("embedding provider returned empty vector")
	}
	return out.Embedding, nil
}

// EmbeddingScorer scores candidates by cosine similarity between
// embedded tag strings. It fails open: any provider error degrades to
// the local tag scorer instead of failing the request.
type EmbeddingScorer struct {
	Provider EmbeddingProvider
	Fallback Scorer
}

func NewEmbeddingScorer(provider EmbeddingProvider) *EmbeddingScorer {
	return &EmbeddingScorer{Provider: provider, Fallback: TagScorer{}}
}

func (s *EmbeddingScorer) Score(ctx context.Context, userTags, candidateTags []string, popularity int) float64 {
	if len(userTags) == 0 || len(candidateTags) == 0 {
		return float64(popularity) * popularityWeight
	}
	userVec, err := s.Provider.Embed(ctx, strings.Join(userTags, " "))
	if err != nil {
		log.Printf("[Recs] Embedding provider unavailable, falling back to tag scorer: %v", err)
		return s.Fallback.Score(ctx, userTags, candidateTags, popularity)
	}
	candVec, err := s.Provider.Embed(ctx, strings.Join(candidateTags, " "))
	if err != nil {
		log.Printf("[Recs] Embedding provider unavailable, falling back to tag scorer: %v", err)
		return s.Fallback.Score(ctx, userTags, candidateTags, popularity)
	}
	return cosine(userVec, candVec) + float64(popularity)*popularityWeight
}

// cosine returns the cosine similarity of two vectors, 0 when their
// lengths differ or either has zero magnitude.
func cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
