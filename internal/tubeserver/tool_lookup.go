package tubeserver

import (
	"context"
	"fmt"

	"github.com/anatolykoptev/go_tube/internal/engine"
	"github.com/anatolykoptev/go_tube/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerLookup(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "lookup",
		Description: "Look up a YouTube video, channel, or playlist from a URL, @handle, or free-text search query. Returns full metadata; for channels and playlists also returns their long-form 16:9 videos in playlist order. Short (<=60s) and non-landscape videos are rejected for single lookups and silently dropped from listings.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.LookupInput) (*mcp.CallToolResult, engine.LookupOutput, error) {
		if input.Query == "" {
			return nil, engine.LookupOutput{}, fmt.Errorf("query is required")
		}
		apiKey, err := requireYouTubeKey(input.YouTubeAPIKey)
		if err != nil {
			return nil, engine.LookupOutput{}, err
		}

		cacheKey := engine.CacheKey("lookup", input.Query, apiKey)
		if out, ok := toolutil.CacheLoadJSON[engine.LookupOutput](ctx, cacheKey); ok {
			return nil, out, nil
		}

		engine.IncrLookup()
		out, err := resolveLookup(ctx, input.Query, apiKey)
		if err != nil {
			return nil, engine.LookupOutput{}, err
		}

		toolutil.CacheStoreJSON(ctx, cacheKey, *out)
		return nil, *out, nil
	})
}
