package engine

// --- Domain records ---

// VideoRecord is the flattened video payload used downstream.
// Read-only to consumers once resolved.
type VideoRecord struct {
	ID              string   `json:"id"`
	URL             string   `json:"url"`
	Title           string   `json:"title"`
	Description     string   `json:"description,omitempty"`
	ChannelTitle    string   `json:"channel_title,omitempty"`
	PublishedAt     string   `json:"published_at,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	Category        string   `json:"category,omitempty"`
	Duration        string   `json:"duration,omitempty"` // raw ISO-8601
	DurationSeconds int      `json:"duration_seconds"`
	ThumbnailURL    string   `json:"thumbnail_url,omitempty"`
	ThumbnailWidth  int      `json:"thumbnail_width,omitempty"`
	ThumbnailHeight int      `json:"thumbnail_height,omitempty"`
	ViewCount       string   `json:"view_count,omitempty"`
	LikeCount       string   `json:"like_count,omitempty"`
	CommentCount    string   `json:"comment_count,omitempty"`
}

// ChannelRecord holds channel metadata plus the uploads playlist id
// used as the entry point for channel video listings.
type ChannelRecord struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	CustomURL       string `json:"custom_url,omitempty"`
	ThumbnailURL    string `json:"thumbnail_url,omitempty"`
	SubscriberCount string `json:"subscriber_count,omitempty"`
	VideoCount      string `json:"video_count,omitempty"`
	ViewCount       string `json:"view_count,omitempty"`
	UploadsPlaylist string `json:"uploads_playlist,omitempty"`
}

// PlaylistRecord holds playlist metadata.
type PlaylistRecord struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	ChannelTitle string `json:"channel_title,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

// SummaryResult is the generated fictional-link text for one video.
// Never mutated after creation, only replaced on regeneration.
type SummaryResult struct {
	Text  string   `json:"text"`
	Links []string `json:"links"`
}

// BatchItem wraps a VideoRecord with mutable per-run state.
// Mutated exclusively by RunBatch; at most one item has Loading=true.
type BatchItem struct {
	Video   VideoRecord    `json:"video"`
	Summary *SummaryResult `json:"summary,omitempty"`
	Loading bool           `json:"loading"`
	Err     string         `json:"error,omitempty"`
}

// --- Tool input types ---

type LookupInput struct {
	Query         string `json:"query" jsonschema:"YouTube URL (video, playlist, channel, @handle) or free-text search query"`
	YouTubeAPIKey string `json:"youtube_api_key,omitempty" jsonschema:"YouTube Data API v3 key; overrides the stored key"`
}

type GenerateLinksInput struct {
	Query         string `json:"query" jsonschema:"YouTube video URL, video id, or search query resolving to a video"`
	Quality       string `json:"quality,omitempty" jsonschema:"Preferred quality bucket: 8K, 4K, 1440p, 1080p, 720p. Default: Best Available"`
	YouTubeAPIKey string `json:"youtube_api_key,omitempty" jsonschema:"YouTube Data API v3 key; overrides the stored key"`
	GeminiAPIKey  string `json:"gemini_api_key,omitempty" jsonschema:"Gemini API key; overrides the stored key"`
}

type BatchGenerateInput struct {
	Query         string `json:"query" jsonschema:"Playlist or channel URL (or search query resolving to a channel)"`
	Quality       string `json:"quality,omitempty" jsonschema:"Preferred quality bucket: 8K, 4K, 1440p, 1080p, 720p. Default: Best Available"`
	MaxVideos     int    `json:"max_videos,omitempty" jsonschema:"Cap on videos to process (default: all). Each video costs one paced generation call"`
	YouTubeAPIKey string `json:"youtube_api_key,omitempty" jsonschema:"YouTube Data API v3 key; overrides the stored key"`
	GeminiAPIKey  string `json:"gemini_api_key,omitempty" jsonschema:"Gemini API key; overrides the stored key"`
}

type ResolveMediaInput struct {
	URL       string `json:"url" jsonschema:"Media URL to resolve"`
	Quality   string `json:"quality,omitempty" jsonschema:"Video quality hint (e.g. 1080). Default: max"`
	AudioOnly bool   `json:"audio_only,omitempty" jsonschema:"Resolve audio stream only"`
	Title     string `json:"title,omitempty" jsonschema:"Video title used for remux output filenames. Default: video"`
}

type BuildCommandInput struct {
	URL       string `json:"url" jsonschema:"Media URL to download"`
	Filename  string `json:"filename,omitempty" jsonschema:"Output filename; extension appended when missing. Default: video title template"`
	Quality   string `json:"quality,omitempty" jsonschema:"Max video height: best, 2160, 1440, 1080, 720. Default: 1080"`
	Format    string `json:"format,omitempty" jsonschema:"Container format: mp4, mkv, webm, avi. Default: mp4"`
	AudioOnly bool   `json:"audio_only,omitempty" jsonschema:"Audio-only mp3 download"`
}

type SetAPIKeysInput struct {
	YouTubeAPIKey string `json:"youtube_api_key,omitempty" jsonschema:"YouTube Data API v3 key to store (AIza…, 39 chars)"`
	GeminiAPIKey  string `json:"gemini_api_key,omitempty" jsonschema:"Gemini API key to store"`
}

// --- Tool output types ---

// LookupKind tags which entity a lookup resolved to.
type LookupKind string

const (
	LookupVideo    LookupKind = "video"
	LookupChannel  LookupKind = "channel"
	LookupPlaylist LookupKind = "playlist"
)

type LookupOutput struct {
	Kind     LookupKind      `json:"kind"`
	Video    *VideoRecord    `json:"video,omitempty"`
	Channel  *ChannelRecord  `json:"channel,omitempty"`
	Playlist *PlaylistRecord `json:"playlist,omitempty"`
	// Filtered long-form 16:9 uploads, in original playlist order.
	Videos []VideoRecord `json:"videos,omitempty"`
}

type GenerateLinksOutput struct {
	Video   VideoRecord   `json:"video"`
	Summary SummaryResult `json:"summary"`
}

// BatchResult is one item's outcome in a batch run.
type BatchResult struct {
	VideoID string         `json:"video_id"`
	Title   string         `json:"title"`
	Summary *SummaryResult `json:"summary,omitempty"`
	Error   string         `json:"error,omitempty"`
}

type BatchGenerateOutput struct {
	Total     int           `json:"total"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Items     []BatchResult `json:"items"`
}

// MediaCandidate is one resolved download candidate.
type MediaCandidate struct {
	URL     string `json:"url"`
	Quality string `json:"quality"`
	Type    string `json:"type"`
}

type ResolveMediaOutput struct {
	Candidates []MediaCandidate `json:"candidates"`
	// One ffmpeg stream-copy remux command per candidate, newline-joined.
	FFmpegCommands string `json:"ffmpeg_commands,omitempty"`
}

type BuildCommandOutput struct {
	Command string `json:"command"`
}

type SetAPIKeysResult struct {
	Message string `json:"message"`
}

// youtubeCategories maps Data API categoryId values to display names.
var youtubeCategories = map[string]string{
	"1": "Film & Animation", "2": "Autos & Vehicles", "10": "Music", "15": "Pets & Animals",
	"17": "Sports", "18": "Short Movies", "19": "Travel & Events", "20": "Gaming",
	"21": "Videoblogging", "22": "People & Blogs", "23": "Comedy", "24": "Entertainment",
	"25": "News & Politics", "26": "Howto & Style", "27": "Education", "28": "Science & Technology",
	"29": "Nonprofits & Activism", "30": "Movies", "31": "Anime/Animation", "32": "Action/Adventure",
	"33": "Classics", "34": "Comedy", "35": "Documentary", "36": "Drama", "37": "Family",
	"38": "Foreign", "39": "Horror", "40": "Sci-Fi/Fantasy", "41": "Thriller", "42": "Shorts",
	"43": "Shows", "44": "Trailers",
}

// CategoryName resolves a Data API categoryId to a display name.
func CategoryName(id string) string {
	if name, ok := youtubeCategories[id]; ok {
		return name
	}
	return "Unknown"
}
