package engine

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func genTestConfig(base string) Config {
	return Config{
		GeminiAPIBase:     base,
		GeminiModel:       "test-model",
		GenMaxAttempts:    3,
		GenInitialBackoff: time.Millisecond,
	}
}

func genSuccessBody(text string) string {
	return fmt.Sprintf(`{"candidates":[{"content":{"parts":[{"text":%q}]}}]}`, text)
}

func TestGenerateLinksSuccess(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if !strings.Contains(r.URL.Path, "test-model:generateContent") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		fmt.Fprint(w, genSuccessBody("Here you go:\nhttps://fictional-stream-link.com/abc/1080p\nhttps://fictional-stream-link.com/abc/720p"))
	}))
	defer srv.Close()
	Init(genTestConfig(srv.URL))

	v := &VideoRecord{ID: "abc12345678", Title: "Test Video"}
	got, err := GenerateLinks(context.Background(), v, QualityBestAvailable, "key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("expected 1 call, got %d", calls.Load())
	}
	if len(got.Links) != 2 {
		t.Fatalf("expected 2 extracted links, got %d", len(got.Links))
	}
	if got.Links[0] != "https://fictional-stream-link.com/abc/1080p" {
		t.Errorf("unexpected first link %q", got.Links[0])
	}
}

func TestGenerateLinksRetriesRateLimit(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(429)
			fmt.Fprint(w, `{"error":{"code":429,"message":"quota exceeded"}}`)
			return
		}
		fmt.Fprint(w, genSuccessBody("https://fictional-stream-link.com/x/best"))
	}))
	defer srv.Close()
	Init(genTestConfig(srv.URL))

	v := &VideoRecord{ID: "abc12345678", Title: "Test Video"}
	got, err := GenerateLinks(context.Background(), v, "", "key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 calls (2 rate-limited + 1 success), got %d", calls.Load())
	}
	if len(got.Links) != 1 {
		t.Errorf("expected 1 link, got %d", len(got.Links))
	}
}

func TestGenerateLinksExhaustsRateLimit(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(429)
		fmt.Fprint(w, `{"error":{"code":429,"message":"quota exceeded"}}`)
	}))
	defer srv.Close()
	Init(genTestConfig(srv.URL))

	v := &VideoRecord{ID: "abc12345678", Title: "Test Video"}
	_, err := GenerateLinks(context.Background(), v, "", "key")
	var rl *RateLimitError
	if !errors.As(err, &rl) {
		t.Fatalf("expected RateLimitError, got %v", err)
	}
	if rl.Message != "quota exceeded" {
		t.Errorf("Message = %q, want %q", rl.Message, "quota exceeded")
	}
	if calls.Load() != 3 {
		t.Errorf("expected exactly 3 attempts, got %d", calls.Load())
	}
}

func TestGenerateLinksNoRetryOnOtherErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(400)
		fmt.Fprint(w, `{"error":{"code":400,"message":"invalid argument"}}`)
	}))
	defer srv.Close()
	Init(genTestConfig(srv.URL))

	v := &VideoRecord{ID: "abc12345678", Title: "Test Video"}
	_, err := GenerateLinks(context.Background(), v, "", "key")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "invalid argument" {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if calls.Load() != 1 {
		t.Errorf("expected 1 attempt for non-rate-limit failure, got %d", calls.Load())
	}
}

func TestGenerateLinksRequiresKey(t *testing.T) {
	Init(genTestConfig("http://unused"))
	v := &VideoRecord{ID: "abc12345678"}
	_, err := GenerateLinks(context.Background(), v, "", "")
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestBuildLinkPromptQuality(t *testing.T) {
	v := &VideoRecord{ID: "abc12345678", Title: "Test Video"}

	generic := buildLinkPrompt(v, QualityBestAvailable)
	if strings.Contains(generic, "Prioritize") {
		t.Errorf("generic prompt should not prioritize a quality: %s", generic)
	}
	if !strings.Contains(generic, "Test Video") || !strings.Contains(generic, "abc12345678") {
		t.Errorf("prompt missing video identity: %s", generic)
	}

	preferred := buildLinkPrompt(v, "1440p")
	if !strings.Contains(preferred, "Prioritize") || !strings.Contains(preferred, "1440p resolution") {
		t.Errorf("preferred prompt should prioritize the quality: %s", preferred)
	}
}

func TestParseGenError(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		code    int
		message string
	}{
		{"structured", `{"error":{"code":429,"message":"quota"}}`, 429, "quota"},
		{"embedded mid-string", `error 429: {"error":{"code":429,"message":"slow down"}} (details)`, 429, "slow down"},
		{"plain text", "upstream unavailable", 0, "upstream unavailable"},
		{"empty", "", 0, ""},
		{"json without error field", `{"status":"bad"}`, 0, `{"status":"bad"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, message := parseGenError(tt.raw)
			if code != tt.code {
				t.Errorf("code = %d, want %d", code, tt.code)
			}
			if message != tt.message {
				t.Errorf("message = %q, want %q", message, tt.message)
			}
		})
	}
}

func TestClassifyGenError(t *testing.T) {
	t.Run("embedded 429 code classifies as rate limit even on 500", func(t *testing.T) {
		err := classifyGenError(500, `{"error":{"code":429,"message":"quota"}}`)
		var rl *RateLimitError
		if !errors.As(err, &rl) {
			t.Fatalf("expected RateLimitError, got %v", err)
		}
	})

	t.Run("opaque body falls back to generic message", func(t *testing.T) {
		err := classifyGenError(500, "")
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected APIError, got %v", err)
		}
		if apiErr.Message != "could not generate download options" {
			t.Errorf("Message = %q", apiErr.Message)
		}
	})
}

func TestExtractLinks(t *testing.T) {
	text := "Download options:\n  https://fictional-stream-link.com/a/4K  \nnot a link\nhttps://fictional-stream-link.com/a/audio"
	links := ExtractLinks(text)
	if len(links) != 2 {
		t.Fatalf("expected 2 links, got %d: %v", len(links), links)
	}
	if links[0] != "https://fictional-stream-link.com/a/4K" {
		t.Errorf("link not trimmed: %q", links[0])
	}
	if got := ExtractLinks("no links here"); got != nil {
		t.Errorf("expected nil for linkless text, got %v", got)
	}
}
