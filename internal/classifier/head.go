package classifier

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// ErrShapeMismatch reports encoder output dimensions that disagree with
// the mask or head weights. Callers must treat it as fatal for that
// inference call, never silently truncate or pad.
var ErrShapeMismatch = errors.New("shape mismatch")

// Head is the linear classification head applied to the pooled vector:
// logit = pooled · Weight + Bias.
type Head struct {
	Weight []float64
	Bias   float64
}

// Logit projects a pooled vector through the head.
func (h Head) Logit(pooled []float64) (float64, error) {
	if len(pooled) != len(h.Weight) {
		return 0, fmt.Errorf("%w: pooled dim %d vs head dim %d", ErrShapeMismatch, len(pooled), len(h.Weight))
	}
	return floats.Dot(pooled, h.Weight) + h.Bias, nil
}
