// Command serve exposes the graph-backed detector over HTTP.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/modai-labs/paritycheck/internal/api"
	"github.com/modai-labs/paritycheck/internal/artifacts"
	"github.com/modai-labs/paritycheck/internal/backend"
	"github.com/modai-labs/paritycheck/internal/config"
	"github.com/modai-labs/paritycheck/internal/ortgraph"
	"github.com/modai-labs/paritycheck/internal/progress"
	"github.com/modai-labs/paritycheck/internal/tokenize"
	"github.com/modai-labs/paritycheck/internal/utils/logger"
)

func main() {
	logger.Init()
	log.Info().Msg("starting detection API...")

	cfg, err := config.LoadConfig(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load environment configuration")
	}

	err = artifacts.EnsureLocal(context.Background(), cfg.ArtifactBaseURL,
		cfg.GraphPath, cfg.ConfigPath, cfg.WeightsPath, cfg.TokenizerPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to fetch model artifacts")
	}

	modelCfg, err := artifacts.LoadModelConfig(cfg.ConfigPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.ConfigPath).Msg("failed to load model config artifact")
	}

	tok, err := tokenize.NewFromFile(cfg.TokenizerPath, modelCfg.MaxLength)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.TokenizerPath).Msg("failed to load tokenizer")
	}

	if err := ortgraph.InitRuntime(cfg.OrtLibraryPath); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize graph runtime")
	}
	defer ortgraph.DestroyRuntime()

	stop := progress.Start(context.Background(), "loading detector graph", 2*time.Second)
	session, err := ortgraph.NewFullSession(cfg.GraphPath, modelCfg.MaxLength)
	stop()
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.GraphPath).Msg("failed to load detector graph")
	}
	defer session.Close()

	b, err := backend.NewGraphBackend(tok, session, modelCfg.Threshold)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build graph backend")
	}

	server, err := api.NewServer(&cfg.ServerEnvConfig, b)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build server")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		if err := server.Shutdown(); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	if err := server.Start(); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}
