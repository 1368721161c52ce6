package engine

import (
	"context"
	"log/slog"

	"golang.org/x/time/rate"
)

// RunBatch generates fictional-link summaries for every item, strictly in
// list order, one item fully finished before the next starts. Generation
// calls are paced at one per Config.BatchInterval (~3/minute) with the first
// item running immediately. Per-item failures are recorded on the item and
// never abort the run; re-invoking reprocesses every item unconditionally.
//
// Cancellation is cooperative: the context is checked between items, and an
// in-flight generation call is never abandoned mid-item. Returns the context
// error when a run stops early, nil otherwise.
func RunBatch(ctx context.Context, items []*BatchItem, quality, apiKey string) error {
	limiter := rate.NewLimiter(rate.Every(cfg.BatchInterval), 1)

	for i, item := range items {
		if err := limiter.Wait(ctx); err != nil {
			slog.Warn("batch run stopped",
				slog.Int("completed", i),
				slog.Int("total", len(items)),
				slog.Any("error", err))
			return err
		}

		item.Loading = true
		item.Err = ""

		summary, err := GenerateLinks(ctx, &item.Video, quality, apiKey)
		if err != nil {
			slog.Warn("batch item failed",
				slog.String("video", item.Video.ID),
				slog.Any("error", err))
			item.Err = "Failed: " + err.Error()
		} else {
			item.Summary = summary
		}
		item.Loading = false
	}
	return nil
}
