package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Media-resolution client: a single POST against a cobalt-compatible API,
// normalizing its stream / picker / error response shapes.

type cobaltRequest struct {
	URL         string `json:"url"`
	VQuality    string `json:"vQuality"`
	IsAudioOnly bool   `json:"isAudioOnly"`
}

type cobaltResponse struct {
	Status string `json:"status"`
	URL    string `json:"url"`
	Text   string `json:"text"`
	Picker []struct {
		URL     string `json:"url"`
		Quality string `json:"quality"`
		Type    string `json:"type"`
	} `json:"picker"`
}

// ResolveMedia asks the media-resolution API for direct stream candidates.
// A "stream" response yields one candidate, a "picker" response one per entry;
// an "error" response surfaces the service's message.
func ResolveMedia(ctx context.Context, mediaURL, quality string, audioOnly bool) ([]MediaCandidate, error) {
	if strings.TrimSpace(mediaURL) == "" {
		return nil, fmt.Errorf("%w: url is required", ErrInvalidInput)
	}
	if quality == "" {
		quality = "max"
	}
	metrics.CobaltRequests.Add(1)

	payload, err := json.Marshal(cobaltRequest{
		URL:         strings.TrimSpace(mediaURL),
		VQuality:    quality,
		IsAudioOnly: audioOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("encode media request: %w", err)
	}

	resp, err := RetryHTTP(ctx, DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, "POST", cfg.CobaltAPIURL, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", userAgentBot)
		return cfg.HTTPClient.Do(req)
	})
	if err != nil {
		metrics.CobaltErrors.Add(1)
		var statusErr *httpStatusError
		if errors.As(err, &statusErr) {
			return nil, &APIError{StatusCode: statusErr.StatusCode}
		}
		return nil, fmt.Errorf("media resolution API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		metrics.CobaltErrors.Add(1)
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		var out cobaltResponse
		if json.Unmarshal(body, &out) == nil && out.Text != "" {
			return nil, &APIError{StatusCode: resp.StatusCode, Message: out.Text}
		}
		return nil, &APIError{StatusCode: resp.StatusCode}
	}

	var out cobaltResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode media response: %w", err)
	}

	switch out.Status {
	case "stream":
		if out.URL == "" {
			return nil, &ShapeError{What: "stream response without url"}
		}
		return []MediaCandidate{{URL: out.URL, Quality: "Best", Type: "Video"}}, nil
	case "picker":
		if len(out.Picker) == 0 {
			return nil, &ShapeError{What: "picker response without entries"}
		}
		candidates := make([]MediaCandidate, 0, len(out.Picker))
		for _, p := range out.Picker {
			q := p.Quality
			if q == "" {
				q = "N/A"
			}
			candidates = append(candidates, MediaCandidate{URL: p.URL, Quality: q, Type: p.Type})
		}
		return candidates, nil
	case "error":
		msg := out.Text
		if msg == "" {
			msg = "the download service could not process the URL"
		}
		return nil, fmt.Errorf("media resolution: %s", msg)
	default:
		return nil, &ShapeError{What: "media resolution status " + out.Status}
	}
}
