package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config contains all runtime settings for the knowledge bot service.
type Config struct {
	BindAddr                 string
	ShutdownTimeout          time.Duration
	SessionInactivityTimeout time.Duration
	MetricsNamespace         string

	AllowAnyOrigin bool

	HistoryWindow    int
	SearchLimit      int
	SummarySentences int

	WikiAPIURL    string
	WikiUserAgent string
	WikiTimeout   time.Duration

	// CEOSeedNames is the optional weak signal for the executive
	// acceptance filter: "default" loads the built-in seed list,
	// "none" disables it, anything else is a comma-separated override.
	CEOSeedNames string

	DatabaseURL string
}

// Load reads environment variables and applies safe defaults.
func Load() (Config, error) {
	cfg := Config{
		BindAddr:                 envOrDefault("APP_BIND_ADDR", ":8080"),
		MetricsNamespace:         envOrDefault("APP_METRICS_NAMESPACE", "knowbot"),
		AllowAnyOrigin:           false,
		HistoryWindow:            10,
		SearchLimit:              10,
		SummarySentences:         5,
		WikiAPIURL:               envOrDefault("WIKI_API_URL", "https://en.wikipedia.org/w/api.php"),
		WikiUserAgent:            stringsTrimSpace("WIKI_USER_AGENT"),
		WikiTimeout:              15 * time.Second,
		CEOSeedNames:             envOrDefault("CEO_SEED_NAMES", "default"),
		DatabaseURL:              stringsTrimSpace("DATABASE_URL"),
		ShutdownTimeout:          15 * time.Second,
		SessionInactivityTimeout: 10 * time.Minute,
	}
	var err error
	cfg.ShutdownTimeout, err = durationFromEnv("APP_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.SessionInactivityTimeout, err = durationFromEnv("APP_SESSION_INACTIVITY_TIMEOUT", cfg.SessionInactivityTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.WikiTimeout, err = durationFromEnv("WIKI_HTTP_TIMEOUT", cfg.WikiTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.HistoryWindow, err = intFromEnv("CHAT_HISTORY_WINDOW", cfg.HistoryWindow)
	if err != nil {
		return Config{}, err
	}
	cfg.SearchLimit, err = intFromEnv("WIKI_SEARCH_LIMIT", cfg.SearchLimit)
	if err != nil {
		return Config{}, err
	}
	cfg.SummarySentences, err = intFromEnv("WIKI_SUMMARY_SENTENCES", cfg.SummarySentences)
	if err != nil {
		return Config{}, err
	}
	cfg.AllowAnyOrigin, err = boolFromEnv("APP_ALLOW_ANY_ORIGIN", cfg.AllowAnyOrigin)
	if err != nil {
		return Config{}, err
	}

	if cfg.SessionInactivityTimeout < 5*time.Second {
		return Config{}, fmt.Errorf("APP_SESSION_INACTIVITY_TIMEOUT must be at least 5s")
	}
	if cfg.HistoryWindow <= 0 {
		return Config{}, fmt.Errorf("CHAT_HISTORY_WINDOW must be positive")
	}
	if cfg.SearchLimit <= 0 {
		return Config{}, fmt.Errorf("WIKI_SEARCH_LIMIT must be positive")
	}
	if cfg.SummarySentences <= 0 {
		return Config{}, fmt.Errorf("WIKI_SUMMARY_SENTENCES must be positive")
	}

	return cfg, nil
}

// SeedNames resolves the CEO_SEED_NAMES setting into the seed list for
// the executive filter.
func (c Config) SeedNames(defaults []string) []string {
	v := strings.TrimSpace(c.CEOSeedNames)
	switch strings.ToLower(v) {
	case "", "none", "off":
		return nil
	case "default":
		return defaults
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envOrDefault(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func stringsTrimSpace(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := stringsTrimSpace(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return d, nil
}

func intFromEnv(key string, fallback int) (int, error) {
	v := stringsTrimSpace(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return n, nil
}

func boolFromEnv(key string, fallback bool) (bool, error) {
	v := strings.ToLower(stringsTrimSpace(key))
	if v == "" {
		return fallback, nil
	}
	switch v {
	case "1", "true", "t", "yes", "y", "on":
		return true, nil
	case "0", "false", "f", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("%s parse error: expected bool", key)
	}
}
