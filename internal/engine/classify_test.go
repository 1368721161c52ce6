package engine

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		kind  RefKind
		value string
	}{
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", RefVideo, "dQw4w9WgXcQ"},
		{"short url", "https://youtu.be/dQw4w9WgXcQ", RefVideo, "dQw4w9WgXcQ"},
		{"embed url", "https://www.youtube.com/embed/dQw4w9WgXcQ", RefVideo, "dQw4w9WgXcQ"},
		{"watch url with extra params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", RefVideo, "dQw4w9WgXcQ"},
		{"video in playlist context wins", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PLabc123", RefVideo, "dQw4w9WgXcQ"},
		{"playlist url", "https://www.youtube.com/playlist?list=PLH0Szjgn5K9y8eX1bTUY3ZJtnrBpAy4bK", RefPlaylist, "PLH0Szjgn5K9y8eX1bTUY3ZJtnrBpAy4bK"},
		{"channel id url", "https://www.youtube.com/channel/UC_x5XG1OV2P6uZZ5FSM9Ttw", RefChannelID, "UC_x5XG1OV2P6uZZ5FSM9Ttw"},
		{"handle url", "https://www.youtube.com/@GoogleDevelopers", RefChannelHandle, "GoogleDevelopers"},
		{"handle with dots", "https://youtube.com/@some.channel-name", RefChannelHandle, "some.channel-name"},
		{"free text", "golang concurrency talk", RefSearch, "golang concurrency talk"},
		{"whitespace trimmed", "  gophercon keynote  ", RefSearch, "gophercon keynote"},
		{"empty", "", RefSearch, ""},
		{"truncated video id falls to search", "https://www.youtube.com/watch?v=short", RefSearch, "https://www.youtube.com/watch?v=short"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.text)
			if got.Kind != tt.kind {
				t.Errorf("Classify(%q).Kind = %v, want %v", tt.text, got.Kind, tt.kind)
			}
			if got.Value != tt.value {
				t.Errorf("Classify(%q).Value = %q, want %q", tt.text, got.Value, tt.value)
			}
		})
	}
}

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"watch", "https://www.youtube.com/watch?v=jNQXAC9IVRw", "jNQXAC9IVRw"},
		{"short link", "https://youtu.be/jNQXAC9IVRw", "jNQXAC9IVRw"},
		{"short link with query", "https://youtu.be/jNQXAC9IVRw?t=10", "jNQXAC9IVRw"},
		{"second query param", "https://www.youtube.com/watch?feature=share&v=jNQXAC9IVRw", "jNQXAC9IVRw"},
		{"wrong length", "https://www.youtube.com/watch?v=abc", ""},
		{"no id", "https://www.youtube.com/@handle", ""},
		{"plain text", "just some words", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractVideoID(tt.text); got != tt.want {
				t.Errorf("ExtractVideoID(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
