package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/astralab/astrax/internal/core"
)

func TestOpenAIInfer(t *testing.T) {
	t.Parallel()

	var gotBody map[string]any
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "a reply"}},
			},
		})
	}))
	defer server.Close()

	reply, err := NewOpenAI(server.URL, "sk-test", "gpt-4-1106-preview", 0).Infer(context.Background(), testPrompt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "a reply" {
		t.Errorf("reply = %q, want %q", reply, "a reply")
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("Authorization = %q", gotAuth)
	}

	// The chat completions API takes the structured message list.
	messages, ok := gotBody["messages"].([]any)
	if !ok || len(messages) != len(testPrompt) {
		t.Fatalf("messages = %v", gotBody["messages"])
	}
	first, _ := messages[0].(map[string]any)
	if first["role"] != "system" || first["content"] != "you are helpful" {
		t.Errorf("first message = %v", first)
	}
}

func TestOpenAIInferMissingCredential(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	_, err := NewOpenAI(server.URL, "", "gpt-4-1106-preview", 0).Infer(context.Background(), testPrompt)
	if !errors.Is(err, core.ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
	if calls.Load() != 0 {
		t.Errorf("expected no network call, got %d", calls.Load())
	}
}

func TestOpenAIInferNon2xx(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := NewOpenAI(server.URL, "sk-test", "gpt-4-1106-preview", 0).Infer(context.Background(), testPrompt)

	var unavailable *core.BackendUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected BackendUnavailableError, got %v", err)
	}
}

func TestOpenAIInferMalformedReply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "empty choices", body: `{"choices":[]}`},
		{name: "missing content", body: `{"choices":[{"message":{"role":"assistant"}}]}`},
		{name: "not json", body: `<html>gateway error</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewOpenAI(server.URL, "sk-test", "gpt-4-1106-preview", 0).Infer(context.Background(), testPrompt)

			var protocol *core.BackendProtocolError
			if !errors.As(err, &protocol) {
				t.Fatalf("expected BackendProtocolError, got %v", err)
			}
		})
	}
}
