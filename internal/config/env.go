// Package config defines environment configuration structs and loaders.
package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type AppConfig struct {
	ModelEnvConfig
	CompareEnvConfig
	HiveEnvConfig
	ServerEnvConfig
}

func LoadConfig(ctx context.Context) (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := envconfig.Process(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ModelEnvConfig locates the exported model artifacts.
type ModelEnvConfig struct {
	GraphPath        string `env:"DETECTOR_GRAPH_PATH, default=models/ai_detector.onnx"`
	EncoderGraphPath string `env:"DETECTOR_ENCODER_GRAPH_PATH, default=models/ai_detector_encoder.onnx"`
	ConfigPath       string `env:"DETECTOR_CONFIG_PATH, default=models/model_config.json"`
	WeightsPath      string `env:"DETECTOR_WEIGHTS_PATH, default=models/classifier_head.json"`
	TokenizerPath    string `env:"DETECTOR_TOKENIZER_PATH, default=models/tokenizer.json"`
	OrtLibraryPath   string `env:"ORT_LIBRARY_PATH"`
	// ArtifactBaseURL, when set, is an HTTP prefix that missing model
	// artifacts are downloaded from before a run.
	ArtifactBaseURL string `env:"DETECTOR_ARTIFACT_BASE_URL"`
}

// CompareEnvConfig configures the equivalence harness.
type CompareEnvConfig struct {
	ExternalExecutable string        `env:"DETECTOR_EXTERNAL_EXE"`
	SubprocessTimeout  time.Duration `env:"DETECTOR_SUBPROCESS_TIMEOUT, default=30s"`
	Tolerance          float64       `env:"DETECTOR_TOLERANCE, default=0.001"`
	Concurrent         bool          `env:"DETECTOR_CONCURRENT, default=false"`
}

// HiveEnvConfig configures the moderation API key check.
type HiveEnvConfig struct {
	HiveAPIKey  string        `env:"MODAI_HIVE_API_KEY"`
	HiveBaseURL string        `env:"HIVE_BASE_URL, default=https://api.thehive.ai"`
	HiveTimeout time.Duration `env:"HIVE_TIMEOUT, default=10s"`
}

// ServerEnvConfig configures the detection HTTP API.
type ServerEnvConfig struct {
	Address       string `env:"SERVER_ADDRESS, default=127.0.0.1"`
	Port          int    `env:"SERVER_PORT, default=8080"`
	BodySizeLimit int    `env:"SERVER_BODY_LIMIT, default=1048576"`
	CacheSize     int    `env:"SERVER_CACHE_SIZE, default=1024"`
}
