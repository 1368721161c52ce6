package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// YouTube Data API v3 client: single video/channel/playlist lookup, uploads
// listing with pagination + batched detail fetch, and first-result search.

const (
	ytPageSize   = 50 // playlistItems page size, API maximum
	ytDetailMax  = 50 // ids per /videos call, API maximum
	userAgentBot = "GoTube/1.0"
)

// --- Data API wire types ---

type ytThumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ytSnippet struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	ChannelTitle string   `json:"channelTitle"`
	PublishedAt  string   `json:"publishedAt"`
	CustomURL    string   `json:"customUrl"`
	Tags         []string `json:"tags"`
	CategoryID   string   `json:"categoryId"`
	Thumbnails   struct {
		Medium ytThumbnail `json:"medium"`
	} `json:"thumbnails"`
	ResourceID struct {
		VideoID string `json:"videoId"`
	} `json:"resourceId"`
}

type ytStatistics struct {
	ViewCount       string `json:"viewCount"`
	LikeCount       string `json:"likeCount"`
	CommentCount    string `json:"commentCount"`
	SubscriberCount string `json:"subscriberCount"`
	VideoCount      string `json:"videoCount"`
}

type ytItem struct {
	ID             string       `json:"id"`
	Snippet        ytSnippet    `json:"snippet"`
	Statistics     ytStatistics `json:"statistics"`
	ContentDetails struct {
		Duration         string `json:"duration"`
		RelatedPlaylists struct {
			Uploads string `json:"uploads"`
		} `json:"relatedPlaylists"`
	} `json:"contentDetails"`
}

type ytListResp struct {
	Items         []ytItem `json:"items"`
	NextPageToken string   `json:"nextPageToken"`
}

type ytSearchResp struct {
	Items []struct {
		ID struct {
			Kind      string `json:"kind"`
			VideoID   string `json:"videoId"`
			ChannelID string `json:"channelId"`
		} `json:"id"`
	} `json:"items"`
}

type ytErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ytGet issues one Data API call and decodes the items payload into out.
func ytGet(ctx context.Context, path string, params url.Values, out any) error {
	metrics.YouTubeRequests.Add(1)
	apiURL := cfg.YouTubeAPIBase + path + "?" + params.Encode()

	resp, err := RetryHTTP(ctx, DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgentBot)
		return cfg.HTTPClient.Do(req)
	})
	if err != nil {
		metrics.YouTubeErrors.Add(1)
		var statusErr *httpStatusError
		if errors.As(err, &statusErr) {
			return &APIError{StatusCode: statusErr.StatusCode}
		}
		return fmt.Errorf("youtube data API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		metrics.YouTubeErrors.Add(1)
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		var eb ytErrorBody
		_ = json.Unmarshal(body, &eb)
		return &APIError{StatusCode: resp.StatusCode, Message: eb.Error.Message}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode youtube data API: %w", err)
	}
	return nil
}

// --- Record mapping ---

func videoFromItem(it ytItem) VideoRecord {
	return VideoRecord{
		ID:              it.ID,
		URL:             "https://www.youtube.com/watch?v=" + it.ID,
		Title:           it.Snippet.Title,
		Description:     it.Snippet.Description,
		ChannelTitle:    it.Snippet.ChannelTitle,
		PublishedAt:     it.Snippet.PublishedAt,
		Tags:            it.Snippet.Tags,
		Category:        CategoryName(it.Snippet.CategoryID),
		Duration:        it.ContentDetails.Duration,
		DurationSeconds: DurationSeconds(it.ContentDetails.Duration),
		ThumbnailURL:    it.Snippet.Thumbnails.Medium.URL,
		ThumbnailWidth:  it.Snippet.Thumbnails.Medium.Width,
		ThumbnailHeight: it.Snippet.Thumbnails.Medium.Height,
		ViewCount:       it.Statistics.ViewCount,
		LikeCount:       it.Statistics.LikeCount,
		CommentCount:    it.Statistics.CommentCount,
	}
}

func channelFromItem(it ytItem) ChannelRecord {
	return ChannelRecord{
		ID:              it.ID,
		Title:           it.Snippet.Title,
		Description:     it.Snippet.Description,
		CustomURL:       it.Snippet.CustomURL,
		ThumbnailURL:    it.Snippet.Thumbnails.Medium.URL,
		SubscriberCount: it.Statistics.SubscriberCount,
		VideoCount:      it.Statistics.VideoCount,
		ViewCount:       it.Statistics.ViewCount,
		UploadsPlaylist: it.ContentDetails.RelatedPlaylists.Uploads,
	}
}

func playlistFromItem(it ytItem) PlaylistRecord {
	return PlaylistRecord{
		ID:           it.ID,
		Title:        it.Snippet.Title,
		Description:  it.Snippet.Description,
		ChannelTitle: it.Snippet.ChannelTitle,
		ThumbnailURL: it.Snippet.Thumbnails.Medium.URL,
	}
}

// --- Resolvers ---

// VideoByID fetches full details for one video.
func VideoByID(ctx context.Context, id, apiKey string) (*VideoRecord, error) {
	params := url.Values{}
	params.Set("part", "snippet,statistics,contentDetails")
	params.Set("id", id)
	params.Set("key", apiKey)

	var resp ytListResp
	if err := ytGet(ctx, "/videos", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("video %q: %w", id, ErrNotFound)
	}
	v := videoFromItem(resp.Items[0])
	return &v, nil
}

// ChannelByID fetches full details for one channel.
func ChannelByID(ctx context.Context, id, apiKey string) (*ChannelRecord, error) {
	params := url.Values{}
	params.Set("part", "snippet,statistics,contentDetails,brandingSettings")
	params.Set("id", id)
	params.Set("key", apiKey)

	var resp ytListResp
	if err := ytGet(ctx, "/channels", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("channel %q: %w", id, ErrNotFound)
	}
	c := channelFromItem(resp.Items[0])
	return &c, nil
}

// ChannelByHandle resolves an @handle to a channel id, then fetches full details.
func ChannelByHandle(ctx context.Context, handle, apiKey string) (*ChannelRecord, error) {
	params := url.Values{}
	params.Set("part", "id")
	params.Set("forHandle", handle)
	params.Set("key", apiKey)

	var resp ytListResp
	if err := ytGet(ctx, "/channels", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("channel @%s: %w", handle, ErrNotFound)
	}
	return ChannelByID(ctx, resp.Items[0].ID, apiKey)
}

// PlaylistByID fetches playlist metadata.
func PlaylistByID(ctx context.Context, id, apiKey string) (*PlaylistRecord, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("id", id)
	params.Set("key", apiKey)

	var resp ytListResp
	if err := ytGet(ctx, "/playlists", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("playlist %q: %w", id, ErrNotFound)
	}
	p := playlistFromItem(resp.Items[0])
	return &p, nil
}

// PlaylistVideos lists a playlist's members as filtered long-form videos,
// in original playlist order.
//
// Membership is paged 50 ids at a time until the API stops returning a
// continuation token; details are then fetched in batches of 50. Videos
// dropped by the filter, or missing from the detail results, are silently
// absent from the output.
func PlaylistVideos(ctx context.Context, playlistID, apiKey string) ([]VideoRecord, error) {
	var ids []string
	pageToken := ""
	for {
		params := url.Values{}
		params.Set("part", "snippet")
		params.Set("playlistId", playlistID)
		params.Set("maxResults", strconv.Itoa(ytPageSize))
		params.Set("key", apiKey)
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		var resp ytListResp
		if err := ytGet(ctx, "/playlistItems", params, &resp); err != nil {
			return nil, err
		}
		for _, it := range resp.Items {
			if id := it.Snippet.ResourceID.VideoID; id != "" {
				ids = append(ids, id)
			}
		}
		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	if len(ids) == 0 {
		return nil, nil
	}

	var all []VideoRecord
	for start := 0; start < len(ids); start += ytDetailMax {
		end := start + ytDetailMax
		if end > len(ids) {
			end = len(ids)
		}
		batch, err := videosByIDs(ctx, ids[start:end], apiKey)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
	}

	filtered := FilterLongForm(all)
	byID := make(map[string]VideoRecord, len(filtered))
	for _, v := range filtered {
		byID[v.ID] = v
	}

	ordered := make([]VideoRecord, 0, len(filtered))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			ordered = append(ordered, v)
		}
	}
	return ordered, nil
}

// videosByIDs fetches full details for up to ytDetailMax ids in one call.
// The API may return items in any order; callers reassemble.
func videosByIDs(ctx context.Context, ids []string, apiKey string) ([]VideoRecord, error) {
	params := url.Values{}
	params.Set("part", "snippet,statistics,contentDetails")
	params.Set("id", strings.Join(ids, ","))
	params.Set("key", apiKey)

	var resp ytListResp
	if err := ytGet(ctx, "/videos", params, &resp); err != nil {
		return nil, err
	}
	out := make([]VideoRecord, 0, len(resp.Items))
	for _, it := range resp.Items {
		out = append(out, videoFromItem(it))
	}
	return out, nil
}

// ChannelVideos lists a channel's uploads via its uploads playlist.
func ChannelVideos(ctx context.Context, ch *ChannelRecord, apiKey string) ([]VideoRecord, error) {
	if ch.UploadsPlaylist == "" {
		return nil, &ShapeError{What: "channel has no uploads playlist"}
	}
	return PlaylistVideos(ctx, ch.UploadsPlaylist, apiKey)
}

// SearchHit is the resolved first result of a free-text search.
type SearchHit struct {
	Kind    LookupKind
	Video   *VideoRecord
	Channel *ChannelRecord
}

// SearchFirst issues a single search call for at most one result and
// resolves full details for that hit by its declared kind.
func SearchFirst(ctx context.Context, query, apiKey string) (*SearchHit, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", query)
	params.Set("maxResults", "1")
	params.Set("key", apiKey)

	var resp ytSearchResp
	if err := ytGet(ctx, "/search", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("search %q: %w", query, ErrNoResults)
	}

	hit := resp.Items[0]
	switch hit.ID.Kind {
	case "youtube#video":
		v, err := VideoByID(ctx, hit.ID.VideoID, apiKey)
		if err != nil {
			return nil, err
		}
		return &SearchHit{Kind: LookupVideo, Video: v}, nil
	case "youtube#channel":
		c, err := ChannelByID(ctx, hit.ID.ChannelID, apiKey)
		if err != nil {
			return nil, err
		}
		return &SearchHit{Kind: LookupChannel, Channel: c}, nil
	default:
		return nil, &ShapeError{What: "search result kind " + hit.ID.Kind}
	}
}
