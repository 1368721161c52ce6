// Package tubeserver registers the go_tube MCP tools: YouTube lookup,
// fictional-link generation (single and batch), media resolution, local
// download-command generation, and API-key management.
package tubeserver

import (
	"context"
	"fmt"

	"github.com/anatolykoptev/go_tube/internal/engine"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterTools registers all tools on the given MCP server.
func RegisterTools(server *mcp.Server) {
	registerLookup(server)
	registerGenerateLinks(server)
	registerGenerateLinksBatch(server)
	registerResolveMedia(server)
	registerBuildCommand(server)
	registerSetAPIKeys(server)
}

// requireYouTubeKey resolves the effective Data API key and validates its shape.
func requireYouTubeKey(override string) (string, error) {
	key := engine.YouTubeKey(override)
	if key == "" {
		return "", fmt.Errorf("%w: YouTube API key is required (set_api_keys or pass youtube_api_key)", engine.ErrInvalidInput)
	}
	if err := engine.ValidateYouTubeKey(key); err != nil {
		return "", err
	}
	return key, nil
}

// resolveLookup routes a classified query to the matching resolver path.
// The switch over Reference kinds is exhaustive: precedence is decided by
// Classify, never re-checked here.
func resolveLookup(ctx context.Context, query, apiKey string) (*engine.LookupOutput, error) {
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
		return &engine.LookupOutput{Kind: engine.LookupVideo, Video: v}, nil

	case engine.RefPlaylist:
		pl, err := engine.PlaylistByID(ctx, ref.Value, apiKey)
		if err != nil {
			return nil, err
		}
		videos, err := engine.PlaylistVideos(ctx, ref.Value, apiKey)
		if err != nil {
			return nil, err
		}
		return &engine.LookupOutput{Kind: engine.LookupPlaylist, Playlist: pl, Videos: videos}, nil

	case engine.RefChannelID, engine.RefChannelHandle:
		var ch *engine.ChannelRecord
		var err error
		if ref.Kind == engine.RefChannelID {
			ch, err = engine.ChannelByID(ctx, ref.Value, apiKey)
		} else {
			ch, err = engine.ChannelByHandle(ctx, ref.Value, apiKey)
		}
		if err != nil {
			return nil, err
		}
		videos, err := engine.ChannelVideos(ctx, ch, apiKey)
		if err != nil {
			return nil, err
		}
		return &engine.LookupOutput{Kind: engine.LookupChannel, Channel: ch, Videos: videos}, nil

	case engine.RefSearch:
		hit, err := engine.SearchFirst(ctx, ref.Value, apiKey)
		if err != nil {
			return nil, err
		}
		if hit.Kind == engine.LookupVideo {
			if err := engine.CheckLongForm(hit.Video); err != nil {
				return nil, err
			}
			return &engine.LookupOutput{Kind: engine.LookupVideo, Video: hit.Video}, nil
		}
		videos, err := engine.ChannelVideos(ctx, hit.Channel, apiKey)
		if err != nil {
			return nil, err
		}
		return &engine.LookupOutput{Kind: engine.LookupChannel, Channel: hit.Channel, Videos: videos}, nil
	}
	return nil, fmt.Errorf("%w: unclassifiable query", engine.ErrInvalidInput)
}
