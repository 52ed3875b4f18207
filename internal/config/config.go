package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings, loaded from the environment with
// an optional .env file. Defaults keep a local dev setup working with
// no environment at all.
type Config struct {
	Port        string
	Env         string // development | production
	JWTSecret   string
	DatabaseURL string // postgres DSN; empty selects the in-memory stores
	ValkeyAddr  string // enables the cross-instance broadcast relay when set

	AllowedOrigin string

	// Recommendation policy. Two scorer variants and two event filters
	// exist; both are configuration, not code forks.
	RecommendScorer         string  // tags | embedding
	RecommendMinScore       float64 // candidates must score strictly above this
	RecommendFilterLocation bool    // restrict event pool to the user's location
	EmbeddingURL            string  // embedding provider endpoint, optional

	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads .env (if present) and assembles the Config.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[Config] No .env file found, using environment only")
	}

	cfg := &Config{
		Port:                    getEnv("PORT", "3950"),
		Env:                     getEnv("APP_ENV", "development"),
		JWTSecret:               getEnv("JWT_SECRET", "supersecretoseguro"),
		DatabaseURL:             getEnv("DATABASE_URL", ""),
		ValkeyAddr:              getEnv("VALKEY_ADDR", ""),
		AllowedOrigin:           getEnv("ALLOWED_ORIGIN", "*"),
		RecommendScorer:         getEnv("RECOMMEND_SCORER", "tags"),
		RecommendMinScore:       getEnvFloat("RECOMMEND_MIN_SCORE", 0),
		RecommendFilterLocation: getEnvBool("RECOMMEND_LOCATION_FILTER", false),
		EmbeddingURL:            getEnv("EMBEDDING_URL", ""),
		RateLimitRPS:            getEnvFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst:          getEnvInt("RATE_LIMIT_BURST", 30),
	}

	log.Printf("[Config] port=%s env=%s scorer=%s locationFilter=%v db=%v valkey=%v",
		cfg.Port, cfg.Env, cfg.RecommendScorer, cfg.RecommendFilterLocation,
		cfg.DatabaseURL != "", cfg.ValkeyAddr != "")
	return cfg
}

// Development reports whether error detail should be exposed in responses.
func (c *Config) Development() bool {
	return c.Env != "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("[Config] Invalid integer for %s: %q, using %d", key, v, fallback)
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("[Config] Invalid number for %s: %q, using %g", key, v, fallback)
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("[Config] Invalid boolean for %s: %q, using %v", key, v, fallback)
	}
	return fallback
}
