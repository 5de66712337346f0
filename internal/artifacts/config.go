// Package artifacts loads and persists the files exported alongside
// the portable inference graph: the model configuration and the linear
// classifier head weights. It can also fetch missing artifacts over
// HTTP.
package artifacts

import (
	"errors"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
)

var ErrBadConfig = errors.New("bad model config")

// ModelConfig is the configuration artifact persisted next to the
// exported graph. Threshold must equal the classifier decision
// threshold or the graph and native labels are not comparable.
type ModelConfig struct {
	MaxLength  int     `json:"max_length"`
	ModelName  string  `json:"model_name"`
	VocabSize  int     `json:"vocab_size"`
	HiddenSize int     `json:"hidden_size"`
	Threshold  float64 `json:"threshold"`
}

// Validate checks the artifact invariants.
func (c ModelConfig) Validate() error {
	if c.MaxLength <= 0 {
		return fmt.Errorf("%w: max_length %d must be positive", ErrBadConfig, c.MaxLength)
	}
	if c.HiddenSize <= 0 {
		return fmt.Errorf("%w: hidden_size %d must be positive", ErrBadConfig, c.HiddenSize)
	}
	if c.VocabSize <= 0 {
		return fmt.Errorf("%w: vocab_size %d must be positive", ErrBadConfig, c.VocabSize)
	}
	if c.Threshold <= 0 || c.Threshold >= 1 {
		return fmt.Errorf("%w: threshold %v outside (0,1)", ErrBadConfig, c.Threshold)
	}
	return nil
}

// LoadModelConfig reads and validates the config artifact.
func LoadModelConfig(path string) (*ModelConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model config: %w", err)
	}

	var cfg ModelConfig
	if err := sonic.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse model config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveModelConfig writes the config artifact.
func SaveModelConfig(path string, cfg ModelConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	raw, err := sonic.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal model config: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write model config: %w", err)
	}
	return nil
}
