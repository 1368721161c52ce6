package engine

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	LookupRequests  atomic.Int64
	YouTubeRequests atomic.Int64
	YouTubeErrors   atomic.Int64
	GeminiCalls     atomic.Int64
	GeminiErrors    atomic.Int64
	CobaltRequests  atomic.Int64
	CobaltErrors    atomic.Int64
	BatchRuns       atomic.Int64
	BatchItems      atomic.Int64
}

// IncrLookup increments the lookup counter; called by the tool layer.
func IncrLookup() { metrics.LookupRequests.Add(1) }

// IncrBatchRun records one batch driver run over n items.
func IncrBatchRun(n int) {
	metrics.BatchRuns.Add(1)
	metrics.BatchItems.Add(int64(n))
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"lookup_requests":  metrics.LookupRequests.Load(),
		"youtube_requests": metrics.YouTubeRequests.Load(),
		"youtube_errors":   metrics.YouTubeErrors.Load(),
		"gemini_calls":     metrics.GeminiCalls.Load(),
		"gemini_errors":    metrics.GeminiErrors.Load(),
		"cobalt_requests":  metrics.CobaltRequests.Load(),
		"cobalt_errors":    metrics.CobaltErrors.Load(),
		"batch_runs":       metrics.BatchRuns.Load(),
		"batch_items":      metrics.BatchItems.Load(),
		"cache_hits":       hits,
		"cache_misses":     misses,
	}
}

// FormatMetrics returns metrics as a simple text format for the HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"lookup_requests",
		"youtube_requests", "youtube_errors",
		"gemini_calls", "gemini_errors",
		"cobalt_requests", "cobalt_errors",
		"batch_runs", "batch_items",
		"cache_hits", "cache_misses",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}
