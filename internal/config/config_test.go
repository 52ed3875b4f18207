package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "3950" {
		t.Errorf("default port: got %q", cfg.Port)
	}
	if cfg.RecommendScorer != "tags" {
		t.Errorf("default scorer: got %q", cfg.RecommendScorer)
	}
	if cfg.RecommendMinScore != 0 || cfg.RecommendFilterLocation {
		t.Error("baseline policy should not filter by score or location")
	}
	if !cfg.Development() {
		t.Error("default env should be development")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("APP_ENV", "production")
	t.Setenv("RECOMMEND_SCORER", "embedding")
	t.Setenv("RECOMMEND_MIN_SCORE", "0.5")
	t.Setenv("RECOMMEND_LOCATION_FILTER", "true")
	t.Setenv("RATE_LIMIT_BURST", "5")

	cfg := Load()
	if cfg.Port != "8080" || cfg.Env != "production" {
		t.Errorf("env overrides ignored: %+v", cfg)
	}
	if cfg.RecommendScorer != "embedding" || cfg.RecommendMinScore != 0.5 || !cfg.RecommendFilterLocation {
		t.Errorf("recommendation policy not loaded: %+v", cfg)
	}
	if cfg.RateLimitBurst != 5 {
		t.Errorf("burst not loaded: %d", cfg.RateLimitBurst)
	}
	if cfg.Development() {
		t.Error("production env reported as development")
	}
}

func TestLoadInvalidNumbersFallBack(t *testing.T) {
	t.Setenv("RECOMMEND_MIN_SCORE", "mucho")
	t.Setenv("RATE_LIMIT_BURST", "pocos")

	cfg := Load()
	if cfg.RecommendMinScore != 0 {
		t.Errorf("expected fallback min score, got %v", cfg.RecommendMinScore)
	}
	if cfg.RateLimitBurst != 30 {
		t.Errorf("expected fallback burst, got %d", cfg.RateLimitBurst)
	}
}
