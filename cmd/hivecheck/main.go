// Command hivecheck verifies the configured Hive moderation API key
// with a single authenticated request and exits non-zero if the key is
// rejected or the API is unreachable.
package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/modai-labs/paritycheck/internal/config"
	"github.com/modai-labs/paritycheck/internal/hive"
	"github.com/modai-labs/paritycheck/internal/utils/logger"
)

func main() {
	logger.Init()

	cfg, err := config.LoadConfig(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load environment configuration")
	}

	client, err := hive.NewClient(&cfg.HiveEnvConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build hive client")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HiveTimeout)
	defer cancel()

	result, err := client.CheckKey(ctx)
	if err != nil {
		log.Error().Err(err).Msg("hive key check failed")
		os.Exit(1)
	}

	if !result.OK() {
		log.Error().
			Int("status", result.StatusCode).
			Str("category", string(result.Category)).
			Msg("hive API key rejected")
		os.Exit(1)
	}

	log.Info().Int("status", result.StatusCode).Msg("hive API key is working correctly")
}
