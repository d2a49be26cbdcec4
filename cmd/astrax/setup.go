package main

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/astralab/astrax/internal/config"
	"github.com/astralab/astrax/internal/providers/llm"
	"github.com/astralab/astrax/internal/service/chat"
	"github.com/astralab/astrax/internal/service/prompt"
	"github.com/astralab/astrax/internal/storage/sqlite"
	transport "github.com/astralab/astrax/internal/transport/http"
	"github.com/astralab/astrax/pkg/log"
	"github.com/astralab/astrax/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	promptCfg := config.NewPromptConfig(ctx, appCfg.RuntimePath)
	ollamaCfg := config.NewOllamaConfig(ctx)
	openaiCfg := config.NewOpenAIConfig(ctx)

	// 2. Storage
	db, messages, summaries, err := initStorage(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup(db.Close))

	// 3. Context assembly
	instructions := prompt.NewInstructions(promptCfg)
	assembler := prompt.NewAssembler(messages, summaries, instructions, appCfg.ShortWindow, appCfg.SummaryLimit)

	// 4. Inference dispatch
	dispatcher := llm.NewDispatcher(appCfg, ollamaCfg, openaiCfg)

	// 5. Chat pipeline
	chatSvc := chat.NewService(messages, assembler, dispatcher, appCfg.LLMProvider)

	// 6. HTTP transport
	services = append(services, transport.NewServer(appCfg, messages, chatSvc))

	return services
}

func initStorage(ctx context.Context, cfg *config.AppConfig) (*sql.DB, *sqlite.MessageLog, *sqlite.SummaryStore, error) {
	db, err := sqlite.NewDB(ctx, cfg.GetDatabasePath())
	if err != nil {
		return nil, nil, nil, err
	}
	return db, sqlite.NewMessageLog(db), sqlite.NewSummaryStore(db), nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
