package llm

import (
	"fmt"
	"strings"
	"time"

	"github.com/astralab/astrax/internal/config"
	"github.com/astralab/astrax/internal/core"
)

// newBackend maps the configured provider name onto a backend variant.
// Adding a provider means adding a case here and a variant next to it.
func newBackend(provider string, ollama *config.OllamaConfig, openai *config.OpenAIConfig, timeout time.Duration) (core.Backend, error) {
	switch strings.ToLower(provider) {
	case "ollama":
		return NewOllama(ollama.Host, ollama.Model, timeout), nil
	case "openai":
		return NewOpenAI(openai.BaseURL, openai.APIKey, openai.Model, timeout), nil
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedBackend, provider)
	}
}
