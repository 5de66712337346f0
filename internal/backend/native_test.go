package backend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/modai-labs/paritycheck/internal/classifier"
	"github.com/modai-labs/paritycheck/internal/detector"
)

// stubTokenizer pads every text to a fixed length with a mask covering
// the first two positions.
type stubTokenizer struct {
	maxLen int
}

func (s stubTokenizer) Tokenize(string) (detector.EncodedInput, error) {
	ids := make([]int64, s.maxLen)
	m := make([]int64, s.maxLen)
	ids[0], ids[1] = 101, 102
	m[0], m[1] = 1, 1
	return detector.EncodedInput{InputIDs: ids, AttentionMask: m}, nil
}

func (s stubTokenizer) MaxLength() int { return s.maxLen }

// stubEncoder emits synthetic hidden states: row t is filled with
// float64(t+1).
type stubEncoder struct {
	dim int
}

func (s stubEncoder) Encode(_ context.Context, in detector.EncodedInput) (*mat.Dense, error) {
	h := mat.NewDense(in.SeqLen(), s.dim, nil)
	for t := 0; t < in.SeqLen(); t++ {
		for d := 0; d < s.dim; d++ {
			h.Set(t, d, float64(t+1))
		}
	}
	return h, nil
}

func TestNativeBackend(t *testing.T) {
	tok := stubTokenizer{maxLen: 8}
	enc := stubEncoder{dim: 4}
	cls := classifier.New(classifier.Head{Weight: []float64{0.5, 0.5, 0.5, 0.5}, Bias: -2.0})

	t.Run("nil collaborators rejected", func(t *testing.T) {
		_, err := NewNativeBackend(nil, enc, cls)
		assert.Error(t, err)
		_, err = NewNativeBackend(tok, nil, cls)
		assert.Error(t, err)
		_, err = NewNativeBackend(tok, enc, nil)
		assert.Error(t, err)
	})

	t.Run("runs the full pipeline", func(t *testing.T) {
		b, err := NewNativeBackend(tok, enc, cls)
		require.NoError(t, err)

		res, err := b.Infer(context.Background(), "anything")
		require.NoError(t, err)
		// Mask covers rows 0 and 1, pooled value is 1.5 per dim,
		// logit = 4*0.75 - 2 = 1.
		assert.InDelta(t, classifier.Sigmoid(1.0), res.Probability, 1e-12)
		assert.Equal(t, detector.LabelAIGenerated, res.Label)
	})

	t.Run("repeated calls are identical", func(t *testing.T) {
		b, err := NewNativeBackend(tok, enc, cls)
		require.NoError(t, err)

		first, err := b.Infer(context.Background(), "anything")
		require.NoError(t, err)
		second, err := b.Infer(context.Background(), "anything")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

// stubRunner reproduces the classifier math so graph and native paths
// can be compared in-process.
type stubRunner struct {
	cls *classifier.Classifier
	enc stubEncoder
}

func (s stubRunner) Run(ctx context.Context, in detector.EncodedInput) (float64, float64, error) {
	hidden, err := s.enc.Encode(ctx, in)
	if err != nil {
		return 0, 0, err
	}
	res, err := s.cls.Predict(hidden, in.AttentionMask)
	if err != nil {
		return 0, 0, err
	}
	return 0, res.Probability, nil
}

func TestGraphBackendParityWithNative(t *testing.T) {
	tok := stubTokenizer{maxLen: 8}
	enc := stubEncoder{dim: 4}
	cls := classifier.New(classifier.Head{Weight: []float64{0.1, 0.2, 0.3, 0.4}, Bias: 0.05})

	native, err := NewNativeBackend(tok, enc, cls)
	require.NoError(t, err)
	graph, err := NewGraphBackend(tok, stubRunner{cls: cls, enc: enc}, detector.DefaultThreshold)
	require.NoError(t, err)

	for _, text := range []string{
		"The quick brown fox jumps over the lazy dog. This is a simple test sentence.",
		"another input",
	} {
		nRes, err := native.Infer(context.Background(), text)
		require.NoError(t, err)
		gRes, err := graph.Infer(context.Background(), text)
		require.NoError(t, err)

		assert.InDelta(t, nRes.Probability, gRes.Probability, 0.001)
		assert.Equal(t, nRes.Label, gRes.Label)
	}
}

func TestGraphBackendValidation(t *testing.T) {
	tok := stubTokenizer{maxLen: 4}
	runner := stubRunner{cls: classifier.New(classifier.Head{Weight: make([]float64, 4)}), enc: stubEncoder{dim: 4}}

	_, err := NewGraphBackend(nil, runner, 0.5)
	assert.Error(t, err)
	_, err = NewGraphBackend(tok, nil, 0.5)
	assert.Error(t, err)
	_, err = NewGraphBackend(tok, runner, 1.5)
	assert.Error(t, err)
}
