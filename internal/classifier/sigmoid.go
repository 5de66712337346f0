package classifier

import "math"

// Sigmoid computes 1/(1+exp(-x)) with the usual branch on the sign of x
// so large |x| never overflows exp.
func Sigmoid(x float64) float64 {
	if x >= 0 {
		return 1.0 / (1.0 + math.Exp(-x))
	}
	e := math.Exp(x)
	return e / (1.0 + e)
}
