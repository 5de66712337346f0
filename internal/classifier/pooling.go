package classifier

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// maskEpsilon floors the mask sum so an all-padding mask divides by a
// tiny positive value instead of zero.
const maskEpsilon = 1e-9

// MaskedMeanPool averages the rows of hidden weighted by a 0/1 attention
// mask. hidden is L×D (one row per token position), mask has length L.
//
// Accumulation order is part of the contract: positions are summed
// left to right (t = 0..L-1) so every backend reproducing this pooling
// accumulates in the same order and floating-point drift stays bounded.
func MaskedMeanPool(hidden *mat.Dense, mask []int64) ([]float64, error) {
	rows, cols := hidden.Dims()
	if rows != len(mask) {
		return nil, fmt.Errorf("%w: %d hidden rows vs %d mask entries", ErrShapeMismatch, rows, len(mask))
	}

	pooled := make([]float64, cols)
	maskSum := 0.0
	for t := 0; t < rows; t++ {
		if mask[t] == 0 {
			continue
		}
		floats.Add(pooled, hidden.RawRowView(t))
		maskSum++
	}

	floats.Scale(1.0/math.Max(maskSum, maskEpsilon), pooled)
	return pooled, nil
}
