package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var ErrMissingBaseURL = errors.New("SERVER_BASE_URL is not set")

type Config struct {
	Addr    string
	Env     string
	BaseURL string
	// AllowedRedirectHosts is the allow-list for backend-provided
	// destinations.
	AllowedRedirectHosts []string
	VisitTTL             time.Duration
	// MaxVisits caps the open visits held in memory.
	MaxVisits int
	// RateLimit is requests per minute allowed per client IP, with RateBurst
	// on top.
	RateLimit int
	RateBurst int
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (Config, error) {
	ttl, err := time.ParseDuration(getEnv("VISIT_TTL", "30m"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid VISIT_TTL: %w", err)
	}
	if ttl <= 0 {
		return Config{}, fmt.Errorf("invalid VISIT_TTL %q: must be positive", ttl)
	}
	maxVisits, err := getPositiveInt("VISIT_MAX", 10000)
	if err != nil {
		return Config{}, err
	}
	rateLimit, err := getPositiveInt("RATE_LIMIT_PER_MINUTE", 120)
	if err != nil {
		return Config{}, err
	}
	rateBurst, err := getPositiveInt("RATE_LIMIT_BURST", 30)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Addr:                 getEnv("ADDR", ":8080"),
		Env:                  getEnv("APP_ENV", "development"),
		BaseURL:              strings.TrimRight(os.Getenv("SERVER_BASE_URL"), "/"),
		AllowedRedirectHosts: splitList(getEnv("ALLOWED_REDIRECT_HOSTS", "checkout.stripe.com")),
		VisitTTL:             ttl,
		MaxVisits:            maxVisits,
		RateLimit:            rateLimit,
		RateBurst:            rateBurst,
	}

	if cfg.BaseURL == "" {
		return Config{}, ErrMissingBaseURL
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Config{}, fmt.Errorf("invalid SERVER_BASE_URL %q", cfg.BaseURL)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getPositiveInt(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive integer", key, v)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
