// Package classifier implements the masked mean-pooling classification
// head: pooling over per-token hidden states, a linear projection, and
// a numerically stable sigmoid. It owns the only model math in this
// repository; the transformer encoder itself is an external
// collaborator.
package classifier

import (
	"gonum.org/v1/gonum/mat"

	"github.com/modai-labs/paritycheck/internal/detector"
	"github.com/modai-labs/paritycheck/internal/utils/logger"
)

type Classifier struct {
	head      Head
	threshold float64
}

type ClassifierOption func(*Classifier)

func WithThreshold(threshold float64) ClassifierOption {
	return func(c *Classifier) {
		c.threshold = threshold
	}
}

func WithHead(head Head) ClassifierOption {
	return func(c *Classifier) {
		c.head = head
	}
}

// New builds a Classifier with the default decision threshold unless
// overridden by options.
func New(head Head, opts ...ClassifierOption) *Classifier {
	c := &Classifier{
		head:      head,
		threshold: detector.DefaultThreshold,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Threshold returns the decision threshold in use.
func (c *Classifier) Threshold() float64 {
	return c.threshold
}

// Predict runs the full transform on encoder output: masked mean
// pooling, linear projection, sigmoid, and thresholding. hidden is L×D,
// mask has length L. The call has no side effects and is deterministic
// for fixed weights and input.
func (c *Classifier) Predict(hidden *mat.Dense, mask []int64) (detector.InferenceResult, error) {
	pooled, err := MaskedMeanPool(hidden, mask)
	if err != nil {
		return detector.InferenceResult{}, err
	}

	logit, err := c.head.Logit(pooled)
	if err != nil {
		return detector.InferenceResult{}, err
	}

	probability := Sigmoid(logit)
	logger.Sugar().Debugw("classifier prediction", "logit", logit, "probability", probability)

	return detector.InferenceResult{
		Probability: probability,
		Label:       detector.LabelFor(probability, c.threshold),
	}, nil
}
