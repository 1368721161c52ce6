package engine

import (
	"errors"
	"fmt"
)

// Sentinel errors for empty API result sets.
var (
	ErrNotFound  = errors.New("not found")
	ErrNoResults = errors.New("no results found")
)

// ErrInvalidInput marks missing or malformed caller input (keys, queries).
var ErrInvalidInput = errors.New("invalid input")

// TooShortError rejects a video at or under the long-form boundary.
type TooShortError struct {
	Seconds int
}

func (e *TooShortError) Error() string {
	return fmt.Sprintf("video is %ds long; long-form videos only (over 60 seconds)", e.Seconds)
}

// AspectRatioError rejects a non-landscape video.
type AspectRatioError struct {
	Ratio float64
}

func (e *AspectRatioError) Error() string {
	return fmt.Sprintf("aspect ratio %.3f is not 16:9; landscape videos only", e.Ratio)
}

// APIError carries an upstream HTTP failure with a user-facing category.
type APIError struct {
	StatusCode int
	Message    string // upstream error message, may be empty
}

func (e *APIError) Error() string {
	switch e.StatusCode {
	case 400:
		return withDetail("bad request: check your inputs and API key", e.Message)
	case 403:
		return withDetail("forbidden: API key invalid, restricted, or over quota", e.Message)
	case 404:
		return withDetail("not found: the requested item could not be located", e.Message)
	case 429:
		return withDetail("too many requests: upstream is rate-limiting", e.Message)
	case 500, 502, 503, 504:
		return withDetail("service temporarily unavailable, try again later", e.Message)
	default:
		return withDetail(fmt.Sprintf("unexpected API error (status %d)", e.StatusCode), e.Message)
	}
}

func withDetail(base, detail string) string {
	if detail == "" {
		return base
	}
	return base + ": " + detail
}

// RateLimitError is a generation-API 429, retried before being surfaced.
type RateLimitError struct {
	Message string
}

func (e *RateLimitError) Error() string { return e.Message }

// ShapeError marks an upstream payload missing expected fields.
type ShapeError struct {
	What string
}

func (e *ShapeError) Error() string {
	return "unexpected response shape: " + e.What
}
