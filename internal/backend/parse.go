package backend

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/modai-labs/paritycheck/internal/detector"
)

// resultLinePrefix marks the structured output line emitted by the
// first-party detector binary: `RESULT {"probability":...,"label":"..."}`.
const resultLinePrefix = "RESULT "

// ParseOutput extracts an inference result from free-form subprocess
// output.
//
// The structured RESULT line is authoritative when present; the last
// one wins. Otherwise the legacy `Probability: <float>` and
// `Label: <string>` lines are used, again taking the last occurrence of
// each so diagnostic chatter earlier in the output cannot shadow the
// real values. Both legacy fields must be present.
func ParseOutput(output string) (detector.InferenceResult, error) {
	var (
		structured  *detector.InferenceResult
		probability float64
		label       string
		haveProb    bool
		haveLabel   bool
	)

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if payload, ok := strings.CutPrefix(line, resultLinePrefix); ok {
			var res detector.InferenceResult
			if err := sonic.UnmarshalString(payload, &res); err == nil {
				structured = &res
			}
			continue
		}

		if rest, ok := strings.CutPrefix(line, "Probability:"); ok {
			if p, err := strconv.ParseFloat(strings.TrimSpace(rest), 64); err == nil {
				probability = p
				haveProb = true
			}
			continue
		}

		if rest, ok := strings.CutPrefix(line, "Label:"); ok {
			label = strings.TrimSpace(rest)
			haveLabel = true
		}
	}
	if err := scanner.Err(); err != nil {
		return detector.InferenceResult{}, fmt.Errorf("scan output: %w", err)
	}

	if structured != nil {
		if structured.Probability < 0 || structured.Probability > 1 {
			return detector.InferenceResult{}, fmt.Errorf("structured probability %v outside [0,1]", structured.Probability)
		}
		return *structured, nil
	}

	if !haveProb || !haveLabel {
		return detector.InferenceResult{}, fmt.Errorf("output missing Probability/Label lines")
	}
	if probability < 0 || probability > 1 {
		return detector.InferenceResult{}, fmt.Errorf("probability %v outside [0,1]", probability)
	}
	return detector.InferenceResult{
		Probability: probability,
		Label:       detector.Label(label),
	}, nil
}
