// go_tube — YouTube lookup & fictional-link generation MCP server.
//
// Exposes tools for resolving YouTube videos, channels, and playlists via the
// Data API v3, generating illustrative "download link" text with Gemini
// (single-shot or rate-paced batch), resolving media URLs through a
// cobalt-compatible service, and building yt-dlp command strings locally.
// Runs as HTTP MCP server or stdio transport.
package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/anatolykoptev/go_tube/internal/engine"
	"github.com/anatolykoptev/go_tube/internal/tubeserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var (
	version = "dev"
	mcpPort = env.Str("MCP_PORT", "8895")
)

func main() {
	initEngine()

	slog.Info("starting go_tube",
		slog.String("port", mcpPort),
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_tube",
		Version: version,
	}, nil)

	tubeserver.RegisterTools(server)
	slog.Info("tools registered", slog.Int("count", 6))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:    "go_tube",
		Version: version,
		Port:    mcpPort,
		// Batch runs pace generation calls ~20s apart; keep writes open long
		// enough for a full playlist pass.
		WriteTimeout: 3600 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func initEngine() {
	c := engine.Config{
		YouTubeAPIBase:       env.Str("YOUTUBE_API_BASE", ""),
		YouTubeAPIKey:        env.Str("YOUTUBE_API_KEY", ""),
		GeminiAPIBase:        env.Str("GEMINI_API_BASE", ""),
		GeminiAPIKey:         env.Str("GEMINI_API_KEY", ""),
		GeminiModel:          env.Str("GEMINI_MODEL", "gemini-2.5-flash"),
		CobaltAPIURL:         env.Str("COBALT_API_URL", ""),
		GenMaxAttempts:       env.Int("GEN_MAX_ATTEMPTS", 3),
		GenInitialBackoff:    env.Duration("GEN_INITIAL_BACKOFF", 2*time.Second),
		BatchInterval:        env.Duration("BATCH_INTERVAL", 20100*time.Millisecond),
		SettingsPath:         env.Str("SETTINGS_PATH", ""),
		CacheMaxEntries:      env.Int("CACHE_MAX_ENTRIES", 1000),
		CacheCleanupInterval: env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}
	engine.Init(c)

	if err := engine.LoadStoredKeys(); err != nil {
		slog.Warn("stored API keys unavailable", slog.Any("error", err))
	}

	cacheTTL := env.Duration("CACHE_TTL", 15*time.Minute)
	engine.InitCache(env.Str("REDIS_URL", ""), cacheTTL, c.CacheMaxEntries, c.CacheCleanupInterval)
}
