package engine

import (
	"strings"
	"testing"
)

func TestAPIErrorCategories(t *testing.T) {
	tests := []struct {
		name   string
		err    *APIError
		wantIn string
	}{
		{"bad request", &APIError{StatusCode: 400}, "bad request"},
		{"forbidden", &APIError{StatusCode: 403}, "forbidden"},
		{"not found", &APIError{StatusCode: 404}, "not found"},
		{"rate limited", &APIError{StatusCode: 429}, "too many requests"},
		{"server error", &APIError{StatusCode: 503}, "temporarily unavailable"},
		{"unknown status", &APIError{StatusCode: 418}, "status 418"},
		{"detail appended", &APIError{StatusCode: 403, Message: "quotaExceeded"}, "quotaExceeded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); !strings.Contains(got, tt.wantIn) {
				t.Errorf("Error() = %q, want substring %q", got, tt.wantIn)
			}
		})
	}
}
