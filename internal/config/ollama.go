package config

import (
	"context"

	"github.com/caarlos0/env/v11"

	"github.com/astralab/astrax/pkg/log"
)

type OllamaConfig struct {
	Host  string `env:"OLLAMA_HOST" envDefault:"http://host.docker.internal:11434"`
	Model string `env:"OLLAMA_MODEL" envDefault:"llama3"`
}

func NewOllamaConfig(ctx context.Context) *OllamaConfig {
	c := &OllamaConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Ollama config")
	}
	return c
}
