package llm

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFromStatusCode(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{400, "*llm.InvalidRequestError"},
		{401, "*llm.AuthenticationError"},
		{403, "*llm.AuthenticationError"},
		{404, "*llm.InvalidRequestError"},
		{408, "*llm.RequestTimeoutError"},
		{413, "*llm.ContextLengthError"},
		{429, "*llm.RateLimitError"},
		{500, "*llm.ServerError"},
		{503, "*llm.ServerError"},
		{418, "*llm.ProviderError"},
	}

	for _, tt := range tests {
		err := ErrorFromStatusCode(tt.status, "boom", "openai")
		if got := fmt.Sprintf("%T", err); got != tt.want {
			t.Errorf("status %d: expected %s, got %s", tt.status, tt.want, got)
		}
	}
}

func TestProviderErrorMessage(t *testing.T) {
	err := ErrorFromStatusCode(429, "rate limited", "anthropic")

	var rle *RateLimitError
	if !errors.As(err, &rle) {
		t.Fatalf("expected RateLimitError, got %T", err)
	}
	if rle.Provider != "anthropic" {
		t.Errorf("expected provider %q, got %q", "anthropic", rle.Provider)
	}
	if rle.StatusCode != 429 {
		t.Errorf("expected status 429, got %d", rle.StatusCode)
	}
	if rle.Error() != "[anthropic] rate limited (status=429)" {
		t.Errorf("unexpected error string: %q", rle.Error())
	}
}

func TestClientErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &NetworkError{ClientError: ClientError{Message: "request failed", Cause: cause}}

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
	if err.Error() != "request failed: connection refused" {
		t.Errorf("unexpected error string: %q", err.Error())
	}
}
