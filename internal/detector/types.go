// Package detector defines the shared types and external collaborator
// interfaces for the AI-text-detector inference pipeline.
package detector

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Label is the binary classification outcome of a detector backend.
type Label string

const (
	LabelAIGenerated  Label = "AI-generated"
	LabelHumanWritten Label = "Human-written"
)

// DefaultThreshold is the probability cutoff separating the two labels.
// It must match the threshold persisted in the model config artifact.
const DefaultThreshold = 0.5

// LabelFor maps a probability to a label. The boundary p == threshold
// maps to LabelAIGenerated.
func LabelFor(probability, threshold float64) Label {
	if probability >= threshold {
		return LabelAIGenerated
	}
	return LabelHumanWritten
}

// InferenceResult is the output of one backend for one input text.
// It is immutable once produced.
type InferenceResult struct {
	Probability float64 `json:"probability"`
	Label       Label   `json:"label"`
}

// EncodedInput is the tokenizer output for a single text: fixed-length
// token ids and a 0/1 attention mask of identical length.
type EncodedInput struct {
	InputIDs      []int64
	AttentionMask []int64
}

// Validate checks the EncodedInput shape invariants.
func (e EncodedInput) Validate() error {
	if len(e.InputIDs) != len(e.AttentionMask) {
		return fmt.Errorf("encoded input shape mismatch: %d input ids vs %d mask entries", len(e.InputIDs), len(e.AttentionMask))
	}
	if len(e.InputIDs) == 0 {
		return fmt.Errorf("encoded input is empty")
	}
	for i, m := range e.AttentionMask {
		if m != 0 && m != 1 {
			return fmt.Errorf("attention mask entry %d is %d, want 0 or 1", i, m)
		}
	}
	return nil
}

// SeqLen returns the padded sequence length.
func (e EncodedInput) SeqLen() int {
	return len(e.InputIDs)
}

// Tokenizer is the external tokenization collaborator. Implementations
// must apply max-length padding and truncation so that every backend
// sees identical encodings.
type Tokenizer interface {
	Tokenize(text string) (EncodedInput, error)
	MaxLength() int
}

// Encoder is the external transformer encoder collaborator. It maps an
// encoded input to per-token hidden states, one row per sequence
// position.
type Encoder interface {
	Encode(ctx context.Context, input EncodedInput) (*mat.Dense, error)
}
