package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/astralab/astrax/internal/config"
	"github.com/astralab/astrax/internal/core"
	"github.com/astralab/astrax/pkg/log"
)

var (
	debug bool
)

var rootCmd = &cobra.Command{
	Use:     "astrax",
	Short:   core.AppName + " — event and chat aggregation agent",
	Long:    core.AppName + ` ingests chat messages and monitoring webhooks, keeps them in an append-only log and answers through a configured LLM backend.`,
	Version: core.AppVersion,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags available to all subcommands
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", config.IsDebug(), "enable debug logging")
}

func setupLogger(ctx context.Context) (context.Context, func()) {
	isDebug := debug || config.IsDebug()
	return log.NewContextWithLogger(ctx, isDebug)
}
