package harness

import (
	"fmt"

	"github.com/modai-labs/paritycheck/internal/detector"
)

// DefaultTolerance is the pairwise absolute probability difference
// below which two backends are considered equivalent.
const DefaultTolerance = 0.001

// excerptLen bounds the text excerpt carried in reports.
const excerptLen = 50

// Pair identifies an ordered backend pair in a comparison.
type Pair struct {
	A string
	B string
}

func (p Pair) String() string {
	return fmt.Sprintf("%s-%s", p.A, p.B)
}

// ComparisonRecord holds one test case's per-backend results and the
// pairwise absolute probability differences. A nil entry in Results
// means that backend was unavailable for this case.
type ComparisonRecord struct {
	TextExcerpt string
	Results     map[string]*detector.InferenceResult
	Diffs       map[Pair]float64
}

// VerdictStatus is the outcome of a tolerance check for one pair.
type VerdictStatus string

const (
	VerdictPass    VerdictStatus = "PASS"
	VerdictWarning VerdictStatus = "WARNING"
	// VerdictNoData means no case had both backends available.
	VerdictNoData VerdictStatus = "NO DATA"
)

// Verdict is the aggregate tolerance determination for one backend
// pair across all cases.
type Verdict struct {
	Pair    Pair
	Status  VerdictStatus
	MaxDiff float64
	Cases   int // cases where both backends were available
}

// Report is the outcome of a comparison run.
type Report struct {
	Backends  []string
	Tolerance float64
	Records   []ComparisonRecord
	Verdicts  []Verdict
}

func excerpt(text string) string {
	if len(text) <= excerptLen {
		return text
	}
	return text[:excerptLen] + "..."
}
