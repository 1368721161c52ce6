package engine

import (
	"fmt"
	"strings"
)

// Local command-string generation for external media tools. Purely
// illustrative text for the caller to copy; nothing is executed here.

var filenameReplacer = strings.NewReplacer(
	"<", "_", ">", "_", ":", "_", `"`, "_",
	"/", "_", `\`, "_", "|", "_", "?", "_", "*", "_",
)

// SanitizeFilename replaces characters that are invalid in file names.
func SanitizeFilename(name string) string {
	return filenameReplacer.Replace(name)
}

// BuildYtdlpCommand assembles a yt-dlp invocation for the given options.
// Quality "best" (or empty) leaves format selection unconstrained; otherwise
// the value caps the video height. AudioOnly produces an mp3 extraction.
func BuildYtdlpCommand(in BuildCommandInput) (string, error) {
	mediaURL := strings.TrimSpace(in.URL)
	if mediaURL == "" {
		return "", fmt.Errorf("%w: url is required", ErrInvalidInput)
	}

	format := in.Format
	if format == "" {
		format = "mp4"
	}
	quality := in.Quality
	if quality == "" {
		quality = "1080"
	}

	var sb strings.Builder
	sb.WriteString("yt-dlp")

	if in.AudioOnly {
		sb.WriteString(` -f bestaudio -x --audio-format mp3`)
	} else {
		selector := "bv*+ba/b"
		if quality != "best" {
			selector = fmt.Sprintf("bv*[height<=%s]+ba/b[height<=%s]", quality, quality)
		}
		fmt.Fprintf(&sb, ` -f %q --merge-output-format %s`, selector, format)
	}

	if name := strings.TrimSpace(in.Filename); name != "" {
		if !strings.Contains(name, ".") {
			ext := format
			if in.AudioOnly {
				ext = "mp3"
			}
			name = name + "." + ext
		}
		fmt.Fprintf(&sb, ` -o %q`, name)
	} else {
		sb.WriteString(` -o "%(title)s.%(ext)s"`)
	}

	fmt.Fprintf(&sb, " %q", mediaURL)
	return sb.String(), nil
}

// FFmpegCopyCommand builds a stream-copy remux command for one link.
func FFmpegCopyCommand(link, videoTitle string) string {
	return fmt.Sprintf(`ffmpeg -i %q -c copy %q`, link, SanitizeFilename(videoTitle)+".mp4")
}

// FFmpegCopyCommands builds one remux command per link, indexed to avoid
// filename collisions, joined by newlines.
func FFmpegCopyCommands(links []string, videoTitle string) string {
	title := SanitizeFilename(videoTitle)
	cmds := make([]string, 0, len(links))
	for i, link := range links {
		cmds = append(cmds, fmt.Sprintf(`ffmpeg -i %q -c copy %q`, link, fmt.Sprintf("%s_%d.mp4", title, i+1)))
	}
	return strings.Join(cmds, "\n")
}
