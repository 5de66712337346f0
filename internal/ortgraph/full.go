package ortgraph

import (
	"context"
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/modai-labs/paritycheck/internal/detector"
)

// Graph input/output names fixed by the export step.
const (
	inputIDsName      = "input_ids"
	attentionMaskName = "attention_mask"
	logitsName        = "logits"
	probabilityName   = "probability"
)

// FullSession runs the complete exported detector graph
// (input_ids, attention_mask) -> (logits, probability). It implements
// backend.GraphRunner.
type FullSession struct {
	mu            sync.Mutex
	session       *ort.AdvancedSession
	inputIDs      *ort.Tensor[int64]
	attentionMask *ort.Tensor[int64]
	logits        *ort.Tensor[float32]
	probability   *ort.Tensor[float32]
	seqLen        int
}

// NewFullSession loads the graph and binds fixed [1, seqLen] input
// tensors. A bad graph path fails here, before any comparison starts.
func NewFullSession(graphPath string, seqLen int) (*FullSession, error) {
	if seqLen <= 0 {
		return nil, fmt.Errorf("full session: sequence length %d must be positive", seqLen)
	}

	inputShape := ort.NewShape(1, int64(seqLen))
	outputShape := ort.NewShape(1, 1)

	inputIDs, err := ort.NewEmptyTensor[int64](inputShape)
	if err != nil {
		return nil, fmt.Errorf("full session: input_ids tensor: %w", err)
	}
	attentionMask, err := ort.NewEmptyTensor[int64](inputShape)
	if err != nil {
		destroyAll(inputIDs)
		return nil, fmt.Errorf("full session: attention_mask tensor: %w", err)
	}
	logits, err := ort.NewEmptyTensor[float32](outputShape)
	if err != nil {
		destroyAll(inputIDs, attentionMask)
		return nil, fmt.Errorf("full session: logits tensor: %w", err)
	}
	probability, err := ort.NewEmptyTensor[float32](outputShape)
	if err != nil {
		destroyAll(inputIDs, attentionMask, logits)
		return nil, fmt.Errorf("full session: probability tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(graphPath,
		[]string{inputIDsName, attentionMaskName},
		[]string{logitsName, probabilityName},
		[]ort.ArbitraryTensor{inputIDs, attentionMask},
		[]ort.ArbitraryTensor{logits, probability},
		nil)
	if err != nil {
		destroyAll(inputIDs, attentionMask, logits, probability)
		return nil, fmt.Errorf("full session: load graph %s: %w", graphPath, err)
	}

	return &FullSession{
		session:       session,
		inputIDs:      inputIDs,
		attentionMask: attentionMask,
		logits:        logits,
		probability:   probability,
		seqLen:        seqLen,
	}, nil
}

// Run executes the graph for one encoded input. The session owns the
// bound tensors, so calls are serialized with the mutex.
func (s *FullSession) Run(ctx context.Context, input detector.EncodedInput) (float64, float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}
	if input.SeqLen() != s.seqLen {
		return 0, 0, fmt.Errorf("full session: input length %d vs session length %d", input.SeqLen(), s.seqLen)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copy(s.inputIDs.GetData(), input.InputIDs)
	copy(s.attentionMask.GetData(), input.AttentionMask)

	if err := s.session.Run(); err != nil {
		return 0, 0, fmt.Errorf("full session: run: %w", err)
	}

	return float64(s.logits.GetData()[0]), float64(s.probability.GetData()[0]), nil
}

// Close releases the session and its tensors.
func (s *FullSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.session.Destroy()
	destroyAll(s.inputIDs, s.attentionMask, s.logits, s.probability)
	if err != nil {
		return fmt.Errorf("full session: destroy: %w", err)
	}
	return nil
}
