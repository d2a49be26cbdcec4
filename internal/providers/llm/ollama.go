package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/astralab/astrax/internal/core"
)

// Ollama talks to a local Ollama instance through its /api/generate
// endpoint. The generate API takes a single text blob, not a structured
// message list, so the prompt is flattened into "role: content" lines.
type Ollama struct {
	baseProvider
}

func NewOllama(baseURL, model string, timeout time.Duration) *Ollama {
	return &Ollama{
		baseProvider: newBaseProvider(strings.TrimRight(baseURL, "/"), "", model, timeout),
	}
}

func (o *Ollama) Infer(ctx context.Context, prompt []core.PromptMessage) (string, error) {
	lines := make([]string, 0, len(prompt))
	for _, m := range prompt {
		lines = append(lines, fmt.Sprintf("%s: %s", m.Role, m.Content))
	}

	payload := map[string]any{
		"model":  o.model,
		"prompt": strings.Join(lines, "\n"),
		"stream": false,
	}

	resp, err := o.doRequest(ctx, http.MethodPost, "/api/generate", payload, nil)
	if err != nil {
		return "", &core.BackendUnavailableError{Backend: "ollama", Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &core.BackendUnavailableError{Backend: "ollama", Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &core.BackendUnavailableError{Backend: "ollama", Err: fmt.Errorf("http %d: %s", resp.StatusCode, string(data))}
	}

	var result struct {
		Response *string `json:"response"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", &core.BackendProtocolError{Backend: "ollama", Err: fmt.Errorf("decode: %w", err)}
	}
	if result.Response == nil {
		return "", &core.BackendProtocolError{Backend: "ollama", Err: fmt.Errorf("no response field: %s", string(data))}
	}

	return *result.Response, nil
}
