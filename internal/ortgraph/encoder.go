package ortgraph

import (
	"context"
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
	"gonum.org/v1/gonum/mat"

	"github.com/modai-labs/paritycheck/internal/detector"
)

const hiddenStatesName = "last_hidden_state"

// EncoderSession runs an encoder-only graph producing per-token hidden
// states. It implements detector.Encoder for the native backend, which
// applies the Go classifier head on top.
type EncoderSession struct {
	mu            sync.Mutex
	session       *ort.AdvancedSession
	inputIDs      *ort.Tensor[int64]
	attentionMask *ort.Tensor[int64]
	hidden        *ort.Tensor[float32]
	seqLen        int
	hiddenSize    int
}

func NewEncoderSession(graphPath string, seqLen, hiddenSize int) (*EncoderSession, error) {
	if seqLen <= 0 || hiddenSize <= 0 {
		return nil, fmt.Errorf("encoder session: invalid dims %dx%d", seqLen, hiddenSize)
	}

	inputShape := ort.NewShape(1, int64(seqLen))

	inputIDs, err := ort.NewEmptyTensor[int64](inputShape)
	if err != nil {
		return nil, fmt.Errorf("encoder session: input_ids tensor: %w", err)
	}
	attentionMask, err := ort.NewEmptyTensor[int64](inputShape)
	if err != nil {
		destroyAll(inputIDs)
		return nil, fmt.Errorf("encoder session: attention_mask tensor: %w", err)
	}
	hidden, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(seqLen), int64(hiddenSize)))
	if err != nil {
		destroyAll(inputIDs, attentionMask)
		return nil, fmt.Errorf("encoder session: hidden tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(graphPath,
		[]string{inputIDsName, attentionMaskName},
		[]string{hiddenStatesName},
		[]ort.ArbitraryTensor{inputIDs, attentionMask},
		[]ort.ArbitraryTensor{hidden},
		nil)
	if err != nil {
		destroyAll(inputIDs, attentionMask, hidden)
		return nil, fmt.Errorf("encoder session: load graph %s: %w", graphPath, err)
	}

	return &EncoderSession{
		session:       session,
		inputIDs:      inputIDs,
		attentionMask: attentionMask,
		hidden:        hidden,
		seqLen:        seqLen,
		hiddenSize:    hiddenSize,
	}, nil
}

// Encode returns the L×D hidden-state matrix for one encoded input.
func (s *EncoderSession) Encode(ctx context.Context, input detector.EncodedInput) (*mat.Dense, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if input.SeqLen() != s.seqLen {
		return nil, fmt.Errorf("encoder session: input length %d vs session length %d", input.SeqLen(), s.seqLen)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copy(s.inputIDs.GetData(), input.InputIDs)
	copy(s.attentionMask.GetData(), input.AttentionMask)

	if err := s.session.Run(); err != nil {
		return nil, fmt.Errorf("encoder session: run: %w", err)
	}

	raw := s.hidden.GetData()
	out := mat.NewDense(s.seqLen, s.hiddenSize, nil)
	for t := 0; t < s.seqLen; t++ {
		row := out.RawRowView(t)
		base := t * s.hiddenSize
		for d := 0; d < s.hiddenSize; d++ {
			row[d] = float64(raw[base+d])
		}
	}
	return out, nil
}

// Close releases the session and its tensors.
func (s *EncoderSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.session.Destroy()
	destroyAll(s.inputIDs, s.attentionMask, s.hidden)
	if err != nil {
		return fmt.Errorf("encoder session: destroy: %w", err)
	}
	return nil
}
