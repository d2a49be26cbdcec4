package config

import (
	"context"

	"github.com/caarlos0/env/v11"

	"github.com/astralab/astrax/pkg/log"
)

// OpenAIConfig carries the hosted backend settings. APIKey is not marked
// required here: an empty key must surface as a missing-credential
// failure on the inference path, not as a startup crash, so that a
// deployment running on Ollama never needs the variable at all.
type OpenAIConfig struct {
	APIKey  string `env:"OPENAI_API_KEY"`
	Model   string `env:"OPENAI_MODEL" envDefault:"gpt-4-1106-preview"`
	BaseURL string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com"`
}

func NewOpenAIConfig(ctx context.Context) *OpenAIConfig {
	c := &OpenAIConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse OpenAI config")
	}
	return c
}
