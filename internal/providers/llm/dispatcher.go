package llm

import (
	"context"

	"github.com/astralab/astrax/internal/config"
	"github.com/astralab/astrax/internal/core"
	"github.com/astralab/astrax/pkg/log"
)

// Dispatcher routes an assembled prompt to the configured backend. The
// provider selection is resolved on every call, so no backend instance
// is cached across calls. Retries, if any, belong to the caller.
type Dispatcher struct {
	appCfg    *config.AppConfig
	ollamaCfg *config.OllamaConfig
	openaiCfg *config.OpenAIConfig
}

func NewDispatcher(appCfg *config.AppConfig, ollamaCfg *config.OllamaConfig, openaiCfg *config.OpenAIConfig) *Dispatcher {
	return &Dispatcher{
		appCfg:    appCfg,
		ollamaCfg: ollamaCfg,
		openaiCfg: openaiCfg,
	}
}

func (d *Dispatcher) Infer(ctx context.Context, prompt []core.PromptMessage) (string, error) {
	backend, err := newBackend(d.appCfg.LLMProvider, d.ollamaCfg, d.openaiCfg, d.appCfg.LLMTimeout)
	if err != nil {
		return "", err
	}

	log.FromCtx(ctx).Debug().
		Str("provider", d.appCfg.LLMProvider).
		Int("entries", len(prompt)).
		Msg("dispatching inference")

	return backend.Infer(ctx, prompt)
}
