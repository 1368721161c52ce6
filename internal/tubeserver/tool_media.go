package tubeserver

import (
	"context"
	"fmt"

	"github.com/anatolykoptev/go_tube/internal/engine"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerResolveMedia(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve_media",
		Description: "Resolve a media URL into direct stream candidates via a cobalt-compatible resolution service. Returns one candidate for a direct stream or a list of {url, quality, type} picker entries, plus ffmpeg stream-copy remux commands for them. Supports a quality hint and audio-only mode.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.ResolveMediaInput) (*mcp.CallToolResult, engine.ResolveMediaOutput, error) {
		candidates, err := engine.ResolveMedia(ctx, input.URL, input.Quality, input.AudioOnly)
		if err != nil {
			return nil, engine.ResolveMediaOutput{}, err
		}

		title := input.Title
		if title == "" {
			title = "video"
		}
		out := engine.ResolveMediaOutput{Candidates: candidates}
		if len(candidates) == 1 {
			out.FFmpegCommands = engine.FFmpegCopyCommand(candidates[0].URL, title)
		} else {
			urls := make([]string, len(candidates))
			for i, c := range candidates {
				urls[i] = c.URL
			}
			out.FFmpegCommands = engine.FFmpegCopyCommands(urls, title)
		}
		return nil, out, nil
	})
}

func registerBuildCommand(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "build_download_command",
		Description: "Build a yt-dlp command string for a media URL: quality-capped format selector, container format, audio-only mp3 mode, and a sanitized output filename. Purely local; nothing is executed or downloaded.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.BuildCommandInput) (*mcp.CallToolResult, engine.BuildCommandOutput, error) {
		command, err := engine.BuildYtdlpCommand(input)
		if err != nil {
			return nil, engine.BuildCommandOutput{}, err
		}
		return nil, engine.BuildCommandOutput{Command: command}, nil
	})
}

func registerSetAPIKeys(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "set_api_keys",
		Description: "Store the YouTube Data API and/or Gemini API keys for later calls. Keys persist across restarts; either may still be overridden per call. YouTube keys are validated for shape (AIza…, 39 chars).",
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.SetAPIKeysInput) (*mcp.CallToolResult, engine.SetAPIKeysResult, error) {
		if err := engine.SaveAPIKeys(input.YouTubeAPIKey, input.GeminiAPIKey); err != nil {
			return nil, engine.SetAPIKeysResult{}, err
		}
		return nil, engine.SetAPIKeysResult{Message: fmt.Sprintf("stored %d key(s)", countKeys(input))}, nil
	})
}

func countKeys(input engine.SetAPIKeysInput) int {
	n := 0
	if input.YouTubeAPIKey != "" {
		n++
	}
	if input.GeminiAPIKey != "" {
		n++
	}
	return n
}
