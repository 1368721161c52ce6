package engine

import (
	"net/http"
	"time"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	YouTubeAPIBase string
	YouTubeAPIKey  string

	GeminiAPIBase string
	GeminiAPIKey  string
	GeminiModel   string

	CobaltAPIURL string

	// Summary generation retry: attempts include the first call.
	GenMaxAttempts    int
	GenInitialBackoff time.Duration

	// Minimum spacing between generation calls in a batch run.
	BatchInterval time.Duration

	SettingsPath string // sqlite settings db; empty = $HOME/.go_tube/settings.db

	CacheMaxEntries      int
	CacheCleanupInterval time.Duration

	HTTPClient *http.Client
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages and tools.
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
// Zero-valued tunables fall back to production defaults.
func Init(c Config) {
	if c.YouTubeAPIBase == "" {
		c.YouTubeAPIBase = "https://www.googleapis.com/youtube/v3"
	}
	if c.GeminiAPIBase == "" {
		c.GeminiAPIBase = "https://generativelanguage.googleapis.com/v1beta"
	}
	if c.GeminiModel == "" {
		c.GeminiModel = "gemini-2.5-flash"
	}
	if c.CobaltAPIURL == "" {
		c.CobaltAPIURL = "https://co.wuk.sh/api/json"
	}
	if c.GenMaxAttempts <= 0 {
		c.GenMaxAttempts = 3
	}
	if c.GenInitialBackoff <= 0 {
		c.GenInitialBackoff = 2 * time.Second
	}
	if c.BatchInterval <= 0 {
		// ~3 generation calls per minute, conservative for free-tier quotas.
		c.BatchInterval = 20100 * time.Millisecond
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	cfg = c
	Cfg = &cfg
}

// YouTubeKey returns the per-call override when non-empty, else the configured key.
func YouTubeKey(override string) string {
	if override != "" {
		return override
	}
	return cfg.YouTubeAPIKey
}

// GeminiKey returns the per-call override when non-empty, else the configured key.
func GeminiKey(override string) string {
	if override != "" {
		return override
	}
	return cfg.GeminiAPIKey
}
