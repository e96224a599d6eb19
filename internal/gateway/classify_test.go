package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"testing"

	gopenai "github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

func TestIsRequestError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "openai model not found", err: &gopenai.APIError{HTTPStatusCode: http.StatusNotFound}, want: true},
		{name: "openai bad request wrapped", err: fmt.Errorf("failed to create chat completion: %w", &gopenai.APIError{HTTPStatusCode: http.StatusBadRequest}), want: true},
		{name: "openai request error", err: &gopenai.RequestError{HTTPStatusCode: http.StatusNotFound, Err: io.EOF}, want: true},
		{name: "openai rate limited", err: &gopenai.APIError{HTTPStatusCode: http.StatusTooManyRequests}, want: false},
		{name: "openai unauthorized", err: &gopenai.APIError{HTTPStatusCode: http.StatusUnauthorized}, want: false},
		{name: "openai server error", err: &gopenai.APIError{HTTPStatusCode: http.StatusInternalServerError}, want: false},
		{name: "gemini not found", err: fmt.Errorf("failed to generate content: %w", genai.APIError{Code: http.StatusNotFound}), want: true},
		{name: "gemini invalid argument", err: &genai.APIError{Code: http.StatusBadRequest}, want: true},
		{name: "gemini quota", err: genai.APIError{Code: http.StatusTooManyRequests}, want: false},
		{name: "gemini unavailable", err: genai.APIError{Code: http.StatusServiceUnavailable}, want: false},
		{name: "network", err: io.ErrUnexpectedEOF, want: false},
		{name: "deadline", err: context.DeadlineExceeded, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := isRequestError(tt.err); got != tt.want {
				t.Errorf("isRequestError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
