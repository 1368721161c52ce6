package tubeserver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anatolykoptev/go_tube/internal/engine"
	"github.com/anatolykoptev/go_tube/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerGenerateLinks(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_links",
		Description: "Resolve one long-form YouTube video and generate illustrative fictional download-link text for it via the Gemini API. The links are placeholders, not real resources. Optionally biased toward a quality bucket (8K, 4K, 1440p, 1080p, 720p). Rate-limit errors are retried with backoff.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.GenerateLinksInput) (*mcp.CallToolResult, engine.GenerateLinksOutput, error) {
		if input.Query == "" {
			return nil, engine.GenerateLinksOutput{}, fmt.Errorf("query is required")
		}
		ytKey, err := requireYouTubeKey(input.YouTubeAPIKey)
		if err != nil {
			return nil, engine.GenerateLinksOutput{}, err
		}
		genKey := engine.GeminiKey(input.GeminiAPIKey)
		if genKey == "" {
			return nil, engine.GenerateLinksOutput{}, fmt.Errorf("%w: Gemini API key is required (set_api_keys or pass gemini_api_key)", engine.ErrInvalidInput)
		}

		video, err := resolveSingleVideo(ctx, input.Query, ytKey)
		if err != nil {
			return nil, engine.GenerateLinksOutput{}, err
		}

		summary, err := engine.GenerateLinks(ctx, video, toolutil.NormQuality(input.Quality), genKey)
		if err != nil {
			return nil, engine.GenerateLinksOutput{}, fmt.Errorf("generation failed: %w", err)
		}
		return nil, engine.GenerateLinksOutput{Video: *video, Summary: *summary}, nil
	})
}

func registerGenerateLinksBatch(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_links_batch",
		Description: "Resolve a playlist or channel and generate fictional download-link text for each of its long-form videos, strictly one at a time with ~20s pacing between generation calls (about 3/minute). Per-video failures are reported per item and do not abort the run. Expect long runtimes for large listings.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.BatchGenerateInput) (*mcp.CallToolResult, engine.BatchGenerateOutput, error) {
		if input.Query == "" {
			return nil, engine.BatchGenerateOutput{}, fmt.Errorf("query is required")
		}
		ytKey, err := requireYouTubeKey(input.YouTubeAPIKey)
		if err != nil {
			return nil, engine.BatchGenerateOutput{}, err
		}
		genKey := engine.GeminiKey(input.GeminiAPIKey)
		if genKey == "" {
			return nil, engine.BatchGenerateOutput{}, fmt.Errorf("%w: Gemini API key is required (set_api_keys or pass gemini_api_key)", engine.ErrInvalidInput)
		}

		out, err := resolveLookup(ctx, input.Query, ytKey)
		if err != nil {
			return nil, engine.BatchGenerateOutput{}, err
		}
		if out.Kind == engine.LookupVideo {
			return nil, engine.BatchGenerateOutput{}, fmt.Errorf("query resolved to a single video; use generate_links instead")
		}
		videos := out.Videos
		if input.MaxVideos > 0 && len(videos) > input.MaxVideos {
			videos = videos[:input.MaxVideos]
		}
		if len(videos) == 0 {
			return nil, engine.BatchGenerateOutput{}, fmt.Errorf("no long-form videos to process")
		}

		items := make([]*engine.BatchItem, len(videos))
		for i, v := range videos {
			items[i] = &engine.BatchItem{Video: v}
		}

		slog.Info("batch generation starting",
			slog.Int("videos", len(items)),
			slog.String("quality", toolutil.NormQuality(input.Quality)))
		engine.IncrBatchRun(len(items))
		if err := engine.RunBatch(ctx, items, toolutil.NormQuality(input.Quality), genKey); err != nil {
			return nil, engine.BatchGenerateOutput{}, err
		}

		result := engine.BatchGenerateOutput{Total: len(items)}
		result.Items = make([]engine.BatchResult, len(items))
		for i, item := range items {
			result.Items[i] = engine.BatchResult{
				VideoID: item.Video.ID,
				Title:   item.Video.Title,
				Summary: item.Summary,
				Error:   item.Err,
			}
			if item.Err != "" {
				result.Failed++
			} else {
				result.Succeeded++
			}
		}
		return nil, result, nil
	})
}

// resolveSingleVideo resolves a query that must end at one long-form video:
// a direct video reference, or a search whose first hit is a video.
func resolveSingleVideo(ctx context.Context, query, apiKey string) (*engine.VideoRecord, error) {
	ref := engine.Classify(query)
	switch ref.Kind {
	case engine.RefVideo:
		v, err := engine.VideoByID(ctx, ref.Value, apiKey)
		if err != nil {
			return nil, err
		}
		if err := engine.CheckLongForm(v); err != nil {
			return nil, err
		}
		return v, nil
	case engine.RefSearch:
		hit, err := engine.SearchFirst(ctx, ref.Value, apiKey)
		if err != nil {
			return nil, err
		}
		if hit.Kind != engine.LookupVideo {
			return nil, fmt.Errorf("query resolved to a channel, not a video")
		}
		if err := engine.CheckLongForm(hit.Video); err != nil {
			return nil, err
		}
		return hit.Video, nil
	default:
		return nil, fmt.Errorf("query resolved to a playlist or channel; use generate_links_batch instead")
	}
}
