package engine

import (
	"math"
	"regexp"
	"strconv"
)

// minLongFormSeconds is the long-form boundary: videos at or under it are rejected.
const minLongFormSeconds = 60

// aspectTolerance is the allowed deviation from 16:9.
const aspectTolerance = 0.02

var isoDurationRE = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// DurationSeconds parses the PT#H#M#S subset of ISO-8601.
// Absent components contribute 0; an unrecognizable string yields 0.
func DurationSeconds(iso string) int {
	m := isoDurationRE.FindStringSubmatch(iso)
	if m == nil {
		return 0
	}
	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	s, _ := strconv.Atoi(m[3])
	return h*3600 + min*60 + s
}

// IsLandscape reports whether the thumbnail is approximately 16:9.
// Missing or non-positive dimensions pass: thumbnail metadata is optional
// upstream and its absence must not reject a video.
func IsLandscape(width, height int) bool {
	if width <= 0 || height <= 0 {
		return true
	}
	ratio := float64(width) / float64(height)
	return math.Abs(ratio-16.0/9.0) < aspectTolerance
}

// CheckLongForm gates a single resolved video: long-form and landscape only.
func CheckLongForm(v *VideoRecord) error {
	if v.DurationSeconds <= minLongFormSeconds {
		return &TooShortError{Seconds: v.DurationSeconds}
	}
	if !IsLandscape(v.ThumbnailWidth, v.ThumbnailHeight) {
		return &AspectRatioError{Ratio: float64(v.ThumbnailWidth) / float64(v.ThumbnailHeight)}
	}
	return nil
}

// FilterLongForm silently drops videos failing the long-form or aspect
// predicates, preserving input order.
func FilterLongForm(videos []VideoRecord) []VideoRecord {
	out := make([]VideoRecord, 0, len(videos))
	for _, v := range videos {
		if CheckLongForm(&v) == nil {
			out = append(out, v)
		}
	}
	return out
}
