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

// OpenAI talks to the hosted Chat Completions API with the structured
// message list as-is.
type OpenAI struct {
	baseProvider
}

func NewOpenAI(baseURL, apiKey, model string, timeout time.Duration) *OpenAI {
	return &OpenAI{
		baseProvider: newBaseProvider(strings.TrimRight(baseURL, "/"), apiKey, model, timeout),
	}
}

func (o *OpenAI) Infer(ctx context.Context, prompt []core.PromptMessage) (string, error) {
	// Checked before any network call so a misconfigured deployment
	// fails fast instead of burning a request.
	if o.apiKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY is not set: %w", core.ErrMissingCredential)
	}

	payload := map[string]any{
		"model":    o.model,
		"messages": prompt,
		"stream":   false,
	}
	headers := map[string]string{
		"Authorization": "Bearer " + o.apiKey,
	}

	resp, err := o.doRequest(ctx, http.MethodPost, "/v1/chat/completions", payload, headers)
	if err != nil {
		return "", &core.BackendUnavailableError{Backend: "openai", Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &core.BackendUnavailableError{Backend: "openai", Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &core.BackendUnavailableError{Backend: "openai", Err: fmt.Errorf("http %d: %s", resp.StatusCode, string(data))}
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content *string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", &core.BackendProtocolError{Backend: "openai", Err: fmt.Errorf("decode: %w", err)}
	}
	if len(result.Choices) == 0 || result.Choices[0].Message.Content == nil {
		return "", &core.BackendProtocolError{Backend: "openai", Err: fmt.Errorf("empty choices: %s", string(data))}
	}

	return *result.Choices[0].Message.Content, nil
}
