// Package tokenize adapts a HuggingFace-format tokenizer file to the
// detector.Tokenizer interface with the padding and truncation policy
// every backend must share: truncate and pad to a fixed max length.
package tokenize

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"

	"github.com/modai-labs/paritycheck/internal/detector"
)

type FixedLengthTokenizer struct {
	tk        *tokenizer.Tokenizer
	maxLength int
}

// NewFromFile loads tokenizer.json from path and configures fixed
// max-length padding and truncation. A missing or malformed file fails
// here, at construction.
func NewFromFile(path string, maxLength int) (*FixedLengthTokenizer, error) {
	if maxLength <= 0 {
		return nil, fmt.Errorf("tokenizer: max length %d must be positive", maxLength)
	}

	tk, err := pretrained.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("tokenizer: load %s: %w", path, err)
	}

	tk.WithTruncation(&tokenizer.TruncationParams{
		MaxLength: maxLength,
		Strategy:  tokenizer.LongestFirst,
	})

	padStrategy := tokenizer.NewPaddingStrategy(tokenizer.WithFixed(maxLength))
	tk.WithPadding(&tokenizer.PaddingParams{
		Strategy:  *padStrategy,
		Direction: tokenizer.Right,
		PadToken:  "[PAD]",
	})

	log.Debug().Str("path", path).Int("max_length", maxLength).Msg("tokenizer loaded")
	return &FixedLengthTokenizer{tk: tk, maxLength: maxLength}, nil
}

func (t *FixedLengthTokenizer) MaxLength() int {
	return t.maxLength
}

// Tokenize encodes one text into fixed-length ids and attention mask.
func (t *FixedLengthTokenizer) Tokenize(text string) (detector.EncodedInput, error) {
	encoding, err := t.tk.EncodeSingle(text, true)
	if err != nil {
		return detector.EncodedInput{}, fmt.Errorf("tokenizer: encode: %w", err)
	}

	if len(encoding.Ids) != t.maxLength || len(encoding.AttentionMask) != t.maxLength {
		return detector.EncodedInput{}, fmt.Errorf("tokenizer: got %d ids and %d mask entries, want %d",
			len(encoding.Ids), len(encoding.AttentionMask), t.maxLength)
	}

	encoded := detector.EncodedInput{
		InputIDs:      make([]int64, t.maxLength),
		AttentionMask: make([]int64, t.maxLength),
	}
	for i, id := range encoding.Ids {
		encoded.InputIDs[i] = int64(id)
	}
	for i, m := range encoding.AttentionMask {
		encoded.AttentionMask[i] = int64(m)
	}
	return encoded, nil
}
