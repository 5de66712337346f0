package artifacts

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"

	"github.com/modai-labs/paritycheck/internal/classifier"
)

// headWeightsFile is the on-disk form of the linear head.
type headWeightsFile struct {
	Weight []float64 `json:"weight"`
	Bias   float64   `json:"bias"`
}

// LoadHeadWeights reads the classifier head artifact and checks its
// dimensionality against the model config's hidden size.
func LoadHeadWeights(path string, hiddenSize int) (classifier.Head, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return classifier.Head{}, fmt.Errorf("read head weights: %w", err)
	}

	var file headWeightsFile
	if err := sonic.Unmarshal(raw, &file); err != nil {
		return classifier.Head{}, fmt.Errorf("parse head weights: %w", err)
	}
	if len(file.Weight) != hiddenSize {
		return classifier.Head{}, fmt.Errorf("head weights: %d weights vs hidden size %d", len(file.Weight), hiddenSize)
	}
	return classifier.Head{Weight: file.Weight, Bias: file.Bias}, nil
}

// SaveHeadWeights writes the classifier head artifact.
func SaveHeadWeights(path string, head classifier.Head) error {
	raw, err := sonic.MarshalIndent(headWeightsFile{Weight: head.Weight, Bias: head.Bias}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal head weights: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write head weights: %w", err)
	}
	return nil
}
