package engine

import (
	"regexp"
	"strings"
)

// RefKind tags the outcome of classifying a user-supplied query string.
type RefKind int

const (
	RefSearch RefKind = iota // free text, resolved via search
	RefVideo
	RefPlaylist
	RefChannelID
	RefChannelHandle
)

// Reference is a classified query: a pointer to a video, playlist, or channel,
// or the raw text for a search fallback. Immutable once produced.
type Reference struct {
	Kind  RefKind
	Value string
}

var (
	videoIDRE      = regexp.MustCompile(`(?:youtu\.be/|/v/|/u/\w/|embed/|watch\?v=|[?&]v=)([^#&?]*)`)
	shortVideoRE   = regexp.MustCompile(`youtu\.be/([^#&?]{11})`)
	playlistIDRE   = regexp.MustCompile(`[?&]list=([^#&?]+)`)
	channelIDRE    = regexp.MustCompile(`youtube\.com/channel/([a-zA-Z0-9_-]+)`)
	channelHandleRE = regexp.MustCompile(`youtube\.com/@([a-zA-Z0-9_.-]+)`)
)

// Classify parses a free-form query into a tagged Reference.
// Precedence when a URL matches several patterns: video, then playlist,
// then channel id, then handle. Anything else is treated as search text.
func Classify(text string) Reference {
	text = strings.TrimSpace(text)
	if text == "" {
		return Reference{Kind: RefSearch}
	}

	if id := ExtractVideoID(text); id != "" {
		return Reference{Kind: RefVideo, Value: id}
	}
	if m := playlistIDRE.FindStringSubmatch(text); m != nil {
		return Reference{Kind: RefPlaylist, Value: m[1]}
	}
	if m := channelIDRE.FindStringSubmatch(text); m != nil {
		return Reference{Kind: RefChannelID, Value: m[1]}
	}
	if m := channelHandleRE.FindStringSubmatch(text); m != nil {
		return Reference{Kind: RefChannelHandle, Value: m[1]}
	}
	return Reference{Kind: RefSearch, Value: text}
}

// ExtractVideoID pulls an 11-char video id out of any supported URL shape.
// Returns "" when no exact 11-char id is present.
func ExtractVideoID(text string) string {
	if m := videoIDRE.FindStringSubmatch(text); m != nil && len(m[1]) == 11 {
		return m[1]
	}
	if m := shortVideoRE.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}
