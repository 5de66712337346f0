// Command detector runs a single inference through the portable graph
// backend and prints the result in both the structured RESULT form and
// the legacy labelled-line form, so it can serve as the external
// executable of a comparison run.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"

	"github.com/modai-labs/paritycheck/internal/artifacts"
	"github.com/modai-labs/paritycheck/internal/backend"
	"github.com/modai-labs/paritycheck/internal/config"
	"github.com/modai-labs/paritycheck/internal/ortgraph"
	"github.com/modai-labs/paritycheck/internal/tokenize"
	"github.com/modai-labs/paritycheck/internal/utils/logger"
)

func main() {
	text := flag.String("text", "", "text to classify")
	logger.Init()

	if *text == "" {
		fmt.Fprintln(os.Stderr, "usage: detector --text \"<input>\"")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load environment configuration")
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

	session, err := ortgraph.NewFullSession(cfg.GraphPath, modelCfg.MaxLength)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.GraphPath).Msg("failed to load detector graph")
	}
	defer session.Close()

	b, err := backend.NewGraphBackend(tok, session, modelCfg.Threshold)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build graph backend")
	}

	res, err := b.Infer(context.Background(), *text)
	if err != nil {
		log.Fatal().Err(err).Msg("inference failed")
	}

	structured, err := sonic.MarshalString(res)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to marshal result")
	}

	fmt.Printf("Probability: %.6f\n", res.Probability)
	fmt.Printf("Label: %s\n", res.Label)
	fmt.Printf("RESULT %s\n", structured)
}
