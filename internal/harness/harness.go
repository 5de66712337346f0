// Package harness drives the registered detector backends over a set
// of input texts, computes pairwise probability differences, and
// renders a tolerance verdict per backend pair. Per-backend failures
// are recorded as unavailable and never abort the run.
package harness

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/modai-labs/paritycheck/internal/backend"
	"github.com/modai-labs/paritycheck/internal/detector"
)

type Harness struct {
	backends   []backend.Backend
	tolerance  float64
	concurrent bool
}

type HarnessOption func(*Harness)

// WithTolerance overrides the pass/warning difference threshold.
func WithTolerance(tolerance float64) HarnessOption {
	return func(h *Harness) {
		h.tolerance = tolerance
	}
}

// WithConcurrency runs the backends for each text in parallel. Backends
// share no mutable state so this only changes latency, not results.
func WithConcurrency(enabled bool) HarnessOption {
	return func(h *Harness) {
		h.concurrent = enabled
	}
}

// New builds a harness over the given backends. Zero or one backend is
// a valid degenerate configuration: the run completes and the report
// simply contains no pairwise diffs.
func New(backends []backend.Backend, opts ...HarnessOption) *Harness {
	h := &Harness{
		backends:  backends,
		tolerance: DefaultTolerance,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Run compares all backends over the given texts.
func (h *Harness) Run(ctx context.Context, texts []string) (*Report, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("harness: no input texts")
	}

	names := make([]string, len(h.backends))
	for i, b := range h.backends {
		names[i] = b.Name()
	}

	report := &Report{Backends: names, Tolerance: h.tolerance}
	for i, text := range texts {
		log.Info().Int("case", i+1).Int("total", len(texts)).Msg("running comparison case")
		record := h.runCase(ctx, text)
		report.Records = append(report.Records, record)
	}

	report.Verdicts = h.verdicts(report)
	return report, nil
}

// runCase collects one result per backend, keyed by backend name. With
// concurrency enabled each backend runs in its own goroutine and the
// shared map is written only under the mutex.
func (h *Harness) runCase(ctx context.Context, text string) ComparisonRecord {
	record := ComparisonRecord{
		TextExcerpt: excerpt(text),
		Results:     make(map[string]*detector.InferenceResult, len(h.backends)),
		Diffs:       make(map[Pair]float64),
	}

	if h.concurrent {
		var (
			wg sync.WaitGroup
			mu sync.Mutex
		)
		for _, b := range h.backends {
			wg.Add(1)
			go func(b backend.Backend) {
				defer wg.Done()
				res := h.inferOne(ctx, b, text)
				mu.Lock()
				record.Results[b.Name()] = res
				mu.Unlock()
			}(b)
		}
		wg.Wait()
	} else {
		for _, b := range h.backends {
			record.Results[b.Name()] = h.inferOne(ctx, b, text)
		}
	}

	for i := range h.backends {
		for j := i + 1; j < len(h.backends); j++ {
			a, b := h.backends[i].Name(), h.backends[j].Name()
			ra, rb := record.Results[a], record.Results[b]
			if ra == nil || rb == nil {
				continue
			}
			record.Diffs[Pair{A: a, B: b}] = math.Abs(ra.Probability - rb.Probability)
		}
	}

	return record
}

func (h *Harness) inferOne(ctx context.Context, b backend.Backend, text string) *detector.InferenceResult {
	res, err := b.Infer(ctx, text)
	if err != nil {
		log.Warn().Err(err).Str("backend", b.Name()).Msg("backend unavailable for this case")
		return nil
	}
	return &res
}

// verdicts aggregates the per-case diffs for every pair anchored on the
// first (ground truth) backend. Pairs with no overlapping availability
// get a NO DATA verdict.
func (h *Harness) verdicts(report *Report) []Verdict {
	if len(h.backends) < 2 {
		return nil
	}

	primary := h.backends[0].Name()
	verdicts := make([]Verdict, 0, len(h.backends)-1)
	for _, b := range h.backends[1:] {
		pair := Pair{A: primary, B: b.Name()}
		v := Verdict{Pair: pair, Status: VerdictNoData}
		for _, record := range report.Records {
			diff, ok := record.Diffs[pair]
			if !ok {
				continue
			}
			v.Cases++
			if diff > v.MaxDiff {
				v.MaxDiff = diff
			}
		}
		if v.Cases > 0 {
			if v.MaxDiff < h.tolerance {
				v.Status = VerdictPass
			} else {
				v.Status = VerdictWarning
			}
		}
		verdicts = append(verdicts, v)
	}
	return verdicts
}
