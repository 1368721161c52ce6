package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestResolveMediaStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req cobaltRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req.URL != "https://youtu.be/jNQXAC9IVRw" {
			t.Errorf("url = %q", req.URL)
		}
		if req.VQuality != "max" {
			t.Errorf("vQuality = %q, want default max", req.VQuality)
		}
		fmt.Fprint(w, `{"status":"stream","url":"https://cdn.example/direct"}`)
	}))
	defer srv.Close()
	Init(Config{CobaltAPIURL: srv.URL})

	candidates, err := ResolveMedia(context.Background(), " https://youtu.be/jNQXAC9IVRw ", "", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	c := candidates[0]
	if c.URL != "https://cdn.example/direct" || c.Quality != "Best" || c.Type != "Video" {
		t.Errorf("unexpected candidate: %+v", c)
	}
}

func TestResolveMediaPicker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"picker","picker":[
			{"url":"https://cdn.example/a","quality":"1080","type":"video"},
			{"url":"https://cdn.example/b","type":"photo"}
		]}`)
	}))
	defer srv.Close()
	Init(Config{CobaltAPIURL: srv.URL})

	candidates, err := ResolveMedia(context.Background(), "https://example.com/post", "720", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}
	if candidates[0].Quality != "1080" {
		t.Errorf("quality = %q", candidates[0].Quality)
	}
	if candidates[1].Quality != "N/A" {
		t.Errorf("missing quality should map to N/A, got %q", candidates[1].Quality)
	}
}

func TestResolveMediaErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"error","text":"unsupported service"}`)
	}))
	defer srv.Close()
	Init(Config{CobaltAPIURL: srv.URL})

	_, err := ResolveMedia(context.Background(), "https://example.com/x", "", false)
	if err == nil || !strings.Contains(err.Error(), "unsupported service") {
		t.Errorf("expected service message surfaced, got %v", err)
	}
}

func TestResolveMediaUnknownStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"tunnel"}`)
	}))
	defer srv.Close()
	Init(Config{CobaltAPIURL: srv.URL})

	var shapeErr *ShapeError
	_, err := ResolveMedia(context.Background(), "https://example.com/x", "", false)
	if !errors.As(err, &shapeErr) {
		t.Errorf("expected ShapeError, got %v", err)
	}
}

func TestResolveMediaHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(400)
		fmt.Fprint(w, `{"status":"error","text":"invalid url"}`)
	}))
	defer srv.Close()
	Init(Config{CobaltAPIURL: srv.URL})

	var apiErr *APIError
	_, err := ResolveMedia(context.Background(), "https://example.com/x", "", false)
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "invalid url" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestResolveMediaEmptyURL(t *testing.T) {
	Init(Config{})
	_, err := ResolveMedia(context.Background(), "   ", "", false)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
