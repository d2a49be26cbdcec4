package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v9"

	"github.com/astralab/astrax/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"ASTRAX_RUNTIME_PATH" envDefault:".astrax"`
	// Allow selecting the provider
	LLMProvider string `env:"LLM_PROVIDER" envDefault:"ollama"`

	// HTTP transport
	ListenAddr  string `env:"LISTEN_ADDR" envDefault:":8080"`
	ChatbotName string `env:"CHATBOT_NAME" envDefault:"ASTRA-X-Aggregator"`

	// Context Management
	ShortWindow  time.Duration `env:"SHORT_WINDOW" envDefault:"15m"`
	SummaryLimit int           `env:"SUMMARY_LIMIT" envDefault:"30"`

	// Backend call bound. Zero keeps the call unbounded, which is the
	// default so slow local inference is never cut off.
	LLMTimeout time.Duration `env:"LLM_TIMEOUT" envDefault:"0"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "astrax.db")
}
