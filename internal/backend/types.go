// Package backend wraps the three detector execution paths behind a
// uniform inference contract so the equivalence harness can drive them
// interchangeably.
package backend

import (
	"context"
	"errors"

	"github.com/modai-labs/paritycheck/internal/detector"
)

// Backend is one independent execution path producing an inference
// result for an input text. Backends hold no shared mutable state, so
// the harness may call distinct backends concurrently.
type Backend interface {
	Name() string
	Infer(ctx context.Context, text string) (detector.InferenceResult, error)
}

// ErrUnavailable marks a per-call degraded state: the backend could not
// produce a result for this text (timeout, crash, unparsable output).
// The harness records it and continues, it never aborts the run.
var ErrUnavailable = errors.New("backend unavailable")

// GraphRunner executes the portable inference graph for one encoded
// input and returns the logit and probability heads.
type GraphRunner interface {
	Run(ctx context.Context, input detector.EncodedInput) (logit, probability float64, err error)
}

// Canonical backend names used in comparison reports.
const (
	NameNative     = "native"
	NameGraph      = "graph"
	NameSubprocess = "subprocess"
)
