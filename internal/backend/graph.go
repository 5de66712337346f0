package backend

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/modai-labs/paritycheck/internal/detector"
)

// GraphBackend runs the exported portable inference graph end to end.
// It must tokenize with the same padding and truncation policy as the
// native path, otherwise divergence is not attributable to the graph.
type GraphBackend struct {
	tokenizer detector.Tokenizer
	runner    GraphRunner
	threshold float64
}

func NewGraphBackend(tok detector.Tokenizer, runner GraphRunner, threshold float64) (*GraphBackend, error) {
	if tok == nil {
		return nil, fmt.Errorf("graph backend: tokenizer cannot be nil")
	}
	if runner == nil {
		return nil, fmt.Errorf("graph backend: runner cannot be nil")
	}
	if threshold <= 0 || threshold >= 1 {
		return nil, fmt.Errorf("graph backend: threshold %v outside (0,1)", threshold)
	}
	return &GraphBackend{tokenizer: tok, runner: runner, threshold: threshold}, nil
}

func (b *GraphBackend) Name() string {
	return NameGraph
}

func (b *GraphBackend) Infer(ctx context.Context, text string) (detector.InferenceResult, error) {
	encoded, err := b.tokenizer.Tokenize(text)
	if err != nil {
		return detector.InferenceResult{}, fmt.Errorf("graph tokenize: %w", err)
	}
	if err := encoded.Validate(); err != nil {
		return detector.InferenceResult{}, fmt.Errorf("graph tokenize: %w", err)
	}

	logit, probability, err := b.runner.Run(ctx, encoded)
	if err != nil {
		return detector.InferenceResult{}, fmt.Errorf("graph run: %w", err)
	}

	log.Debug().Float64("logit", logit).Float64("probability", probability).Msg("graph inference complete")
	return detector.InferenceResult{
		Probability: probability,
		Label:       detector.LabelFor(probability, b.threshold),
	}, nil
}
