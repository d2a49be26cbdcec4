package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v11"

	"github.com/astralab/astrax/pkg/log"
)

// PromptConfig locates the two instruction files and carries the optional
// runtime override. The files are read on every prompt assembly so edits
// take effect without a restart.
type PromptConfig struct {
	StaticPath    string `env:"PROMPT_STATIC_PATH"`
	StructurePath string `env:"PROMPT_STRUCTURE_PATH"`
	Override      string `env:"SYSTEM_PROMPT"`
}

func NewPromptConfig(ctx context.Context, runtimePath string) *PromptConfig {
	c := &PromptConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Prompt config")
	}
	if c.StaticPath == "" {
		c.StaticPath = filepath.Join(runtimePath, "STATIC.md")
	}
	if c.StructurePath == "" {
		c.StructurePath = filepath.Join(runtimePath, "STRUCTURE.md")
	}
	return c
}
