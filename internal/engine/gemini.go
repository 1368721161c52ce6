package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Summary generator: one generateContent call per attempt, rate-limit-aware
// retry with doubling backoff, all other errors surfaced immediately.

// QualityBestAvailable is the default quality hint.
const QualityBestAvailable = "Best Available"

type genRequest struct {
	Contents []genContent `json:"contents"`
}

type genContent struct {
	Parts []genPart `json:"parts"`
}

type genPart struct {
	Text string `json:"text"`
}

type genResponse struct {
	Candidates []struct {
		Content struct {
			Parts []genPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type genErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// buildLinkPrompt embeds the video identity and a quality instruction.
func buildLinkPrompt(v *VideoRecord, quality string) string {
	instruction := qualityGeneric
	if quality != "" && quality != QualityBestAvailable {
		instruction = fmt.Sprintf(qualityPreferred, quality)
	}
	return fmt.Sprintf(linkPromptBase, instruction, v.Title, v.ID)
}

// GenerateLinks asks the generation API for fictional download-link text for
// one video. Rate-limited attempts back off starting at Config.GenInitialBackoff
// and doubling; any other failure, or exhausting Config.GenMaxAttempts, fails
// immediately with the extracted upstream message.
func GenerateLinks(ctx context.Context, v *VideoRecord, quality, apiKey string) (*SummaryResult, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: generation API key is required", ErrInvalidInput)
	}
	prompt := buildLinkPrompt(v, quality)

	backoff := cfg.GenInitialBackoff
	var lastErr error
	for attempt := 1; attempt <= cfg.GenMaxAttempts; attempt++ {
		text, err := generateContent(ctx, prompt, apiKey)
		if err == nil {
			text = strings.TrimSpace(text)
			return &SummaryResult{Text: text, Links: ExtractLinks(text)}, nil
		}
		lastErr = err
		metrics.GeminiErrors.Add(1)

		var rl *RateLimitError
		if !errors.As(err, &rl) || attempt == cfg.GenMaxAttempts {
			return nil, err
		}

		slog.Debug("generation rate-limited, backing off",
			slog.Int("attempt", attempt),
			slog.Duration("wait", backoff),
			slog.String("video", v.ID))
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		backoff *= 2
	}
	return nil, lastErr
}

// generateContent issues a single generation call. No retry here: the retry
// policy belongs to GenerateLinks.
func generateContent(ctx context.Context, prompt, apiKey string) (string, error) {
	metrics.GeminiCalls.Add(1)

	payload, err := json.Marshal(genRequest{
		Contents: []genContent{{Parts: []genPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("encode generation request: %w", err)
	}

	apiURL := fmt.Sprintf("%s/models/%s:generateContent?key=%s", cfg.GeminiAPIBase, cfg.GeminiModel, apiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgentBot)

	resp, err := cfg.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", classifyGenError(resp.StatusCode, string(body))
	}

	var out genResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode generation response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", &ShapeError{What: "generation response has no candidates"}
	}

	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}

// classifyGenError inspects an error payload. A structured body carrying a
// numeric 429 code classifies as rate-limited; otherwise the human-readable
// message is extracted, falling back to a generic one. Parse failure of the
// payload is not itself an error.
func classifyGenError(status int, raw string) error {
	code, message := parseGenError(raw)
	if message == "" {
		message = "could not generate download options"
	}
	if code == 429 || status == 429 {
		return &RateLimitError{Message: message}
	}
	return &APIError{StatusCode: status, Message: message}
}

// parseGenError decodes a {"error":{"code":…,"message":…}} body. The payload
// may arrive embedded mid-string, so a brace-walking extraction is tried when
// direct decoding finds nothing.
func parseGenError(raw string) (code int, message string) {
	var eb genErrorBody
	if err := json.Unmarshal([]byte(raw), &eb); err == nil && (eb.Error.Code != 0 || eb.Error.Message != "") {
		return eb.Error.Code, eb.Error.Message
	}
	if idx := strings.Index(raw, "{"); idx >= 0 {
		if obj := extractJSON([]byte(raw[idx:])); obj != nil {
			eb = genErrorBody{}
			if err := json.Unmarshal(obj, &eb); err == nil && (eb.Error.Code != 0 || eb.Error.Message != "") {
				return eb.Error.Code, eb.Error.Message
			}
		}
	}
	if trimmed := strings.TrimSpace(raw); trimmed != "" {
		return 0, trimmed
	}
	return 0, ""
}

// extractJSON extracts a complete JSON object starting at b[0] == '{' by tracking brace depth.
func extractJSON(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inStr := false
	var prev byte
	for i, c := range b {
		if inStr {
			if c == '"' && prev != '\\' {
				inStr = false
			}
		} else {
			switch c {
			case '"':
				inStr = true
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					return b[:i+1]
				}
			}
		}
		prev = c
	}
	return nil
}

// ExtractLinks returns the lines of text whose trimmed form starts with the
// https:// convention used for fictional links.
func ExtractLinks(text string) []string {
	var links []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "https://") {
			links = append(links, line)
		}
	}
	return links
}
