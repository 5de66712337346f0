// Command compare drives the registered detector backends over a set
// of texts and reports cross-backend probability parity. It always
// exits zero on a completed run: the verdict is reported, not enforced
// through the process status.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/modai-labs/paritycheck/internal/artifacts"
	"github.com/modai-labs/paritycheck/internal/backend"
	"github.com/modai-labs/paritycheck/internal/classifier"
	"github.com/modai-labs/paritycheck/internal/config"
	"github.com/modai-labs/paritycheck/internal/harness"
	"github.com/modai-labs/paritycheck/internal/ortgraph"
	"github.com/modai-labs/paritycheck/internal/progress"
	"github.com/modai-labs/paritycheck/internal/tokenize"
	"github.com/modai-labs/paritycheck/internal/utils/logger"
)

func main() {
	var (
		graphPath        = flag.String("graph", "", "path to the exported detector graph")
		encoderGraphPath = flag.String("encoder-graph", "", "path to the encoder-only graph used by the native backend")
		configPath       = flag.String("config", "", "path to model_config.json")
		weightsPath      = flag.String("weights", "", "path to the classifier head weights")
		tokenizerPath    = flag.String("tokenizer", "", "path to tokenizer.json")
		externalExe      = flag.String("external", "", "optional path to an external detector executable")
		text             = flag.String("text", "", "single text to compare (default: built-in sample set)")
		concurrent       = flag.Bool("concurrent", false, "run backends concurrently per text")
	)
	logger.Init()

	cfg, err := config.LoadConfig(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load environment configuration")
	}
	applyFlagOverrides(cfg, *graphPath, *encoderGraphPath, *configPath, *weightsPath, *tokenizerPath, *externalExe)

	err = artifacts.EnsureLocal(context.Background(), cfg.ArtifactBaseURL,
		cfg.GraphPath, cfg.EncoderGraphPath, cfg.ConfigPath, cfg.WeightsPath, cfg.TokenizerPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to fetch model artifacts")
	}

	modelCfg, err := artifacts.LoadModelConfig(cfg.ConfigPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.ConfigPath).Msg("failed to load model config artifact")
	}

	head, err := artifacts.LoadHeadWeights(cfg.WeightsPath, modelCfg.HiddenSize)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.WeightsPath).Msg("failed to load classifier head weights")
	}

	tok, err := tokenize.NewFromFile(cfg.TokenizerPath, modelCfg.MaxLength)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.TokenizerPath).Msg("failed to load tokenizer")
	}

	if err := ortgraph.InitRuntime(cfg.OrtLibraryPath); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize graph runtime")
	}
	defer ortgraph.DestroyRuntime()

	stop := progress.Start(context.Background(), "loading graph sessions", 2*time.Second)
	fullSession, err := ortgraph.NewFullSession(cfg.GraphPath, modelCfg.MaxLength)
	if err != nil {
		stop()
		log.Fatal().Err(err).Str("path", cfg.GraphPath).Msg("failed to load detector graph")
	}
	defer fullSession.Close()

	encoderSession, err := ortgraph.NewEncoderSession(cfg.EncoderGraphPath, modelCfg.MaxLength, modelCfg.HiddenSize)
	stop()
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.EncoderGraphPath).Msg("failed to load encoder graph")
	}
	defer encoderSession.Close()

	cls := classifier.New(head, classifier.WithThreshold(modelCfg.Threshold))

	native, err := backend.NewNativeBackend(tok, encoderSession, cls)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build native backend")
	}
	graph, err := backend.NewGraphBackend(tok, fullSession, modelCfg.Threshold)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build graph backend")
	}

	backends := []backend.Backend{native, graph}
	if cfg.ExternalExecutable != "" {
		sub, err := backend.NewSubprocessBackend(cfg.ExternalExecutable, backend.WithTimeout(cfg.SubprocessTimeout))
		if err != nil {
			log.Warn().Err(err).Str("path", cfg.ExternalExecutable).Msg("external executable not usable, skipping subprocess backend")
		} else {
			backends = append(backends, sub)
		}
	}

	texts := harness.SampleTexts
	if *text != "" {
		texts = []string{*text}
	}

	h := harness.New(backends,
		harness.WithTolerance(cfg.Tolerance),
		harness.WithConcurrency(*concurrent || cfg.Concurrent),
	)

	report, err := h.Run(context.Background(), texts)
	if err != nil {
		log.Fatal().Err(err).Msg("comparison run failed")
	}

	if err := report.Render(os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("failed to render report")
	}
}

// applyFlagOverrides lets command-line flags win over environment
// configuration.
func applyFlagOverrides(cfg *config.AppConfig, graph, encoderGraph, modelCfg, weights, tokenizer, external string) {
	if graph != "" {
		cfg.GraphPath = graph
	}
	if encoderGraph != "" {
		cfg.EncoderGraphPath = encoderGraph
	}
	if modelCfg != "" {
		cfg.ConfigPath = modelCfg
	}
	if weights != "" {
		cfg.WeightsPath = weights
	}
	if tokenizer != "" {
		cfg.TokenizerPath = tokenizer
	}
	if external != "" {
		cfg.ExternalExecutable = external
	}
}
