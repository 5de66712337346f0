package backend

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/modai-labs/paritycheck/internal/classifier"
	"github.com/modai-labs/paritycheck/internal/detector"
)

// NativeBackend runs the reference path in-process: external tokenizer
// and encoder collaborators feed the Go classifier head. It is treated
// as ground truth by the harness.
type NativeBackend struct {
	tokenizer  detector.Tokenizer
	encoder    detector.Encoder
	classifier *classifier.Classifier
}

// NewNativeBackend wires the collaborators together. All three are
// required; a missing one is a configuration error caught here rather
// than at inference time.
func NewNativeBackend(tok detector.Tokenizer, enc detector.Encoder, cls *classifier.Classifier) (*NativeBackend, error) {
	if tok == nil {
		return nil, fmt.Errorf("native backend: tokenizer cannot be nil")
	}
	if enc == nil {
		return nil, fmt.Errorf("native backend: encoder cannot be nil")
	}
	if cls == nil {
		return nil, fmt.Errorf("native backend: classifier cannot be nil")
	}
	return &NativeBackend{tokenizer: tok, encoder: enc, classifier: cls}, nil
}

func (b *NativeBackend) Name() string {
	return NameNative
}

func (b *NativeBackend) Infer(ctx context.Context, text string) (detector.InferenceResult, error) {
	encoded, err := b.tokenizer.Tokenize(text)
	if err != nil {
		return detector.InferenceResult{}, fmt.Errorf("native tokenize: %w", err)
	}
	if err := encoded.Validate(); err != nil {
		return detector.InferenceResult{}, fmt.Errorf("native tokenize: %w", err)
	}

	hidden, err := b.encoder.Encode(ctx, encoded)
	if err != nil {
		return detector.InferenceResult{}, fmt.Errorf("native encode: %w", err)
	}

	result, err := b.classifier.Predict(hidden, encoded.AttentionMask)
	if err != nil {
		return detector.InferenceResult{}, fmt.Errorf("native classify: %w", err)
	}

	log.Debug().Float64("probability", result.Probability).Str("label", string(result.Label)).Msg("native inference complete")
	return result, nil
}
