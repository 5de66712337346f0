package harness

import (
	"fmt"
	"io"
)

// SampleTexts is the built-in comparison set used when no input text is
// supplied on the command line.
var SampleTexts = []string{
	"AI detection refers to the process of identifying whether a given piece of content, such as text, images, or audio, has been generated by artificial intelligence. This is achieved using various machine learning techniques, including perplexity analysis, entropy measurements, linguistic pattern recognition, and neural network classifiers trained on human and AI-generated data.",
	"It is estimated that a major part of the content in the internet will be generated by AI / LLMs by 2025. This leads to a lot of misinformation and credibility related issues. That is why if is important to have accurate tools to identify if a content is AI generated or human written.",
	"The quick brown fox jumps over the lazy dog. This is a simple test sentence.",
}

// Render writes the row-per-case summary table and the per-pair
// verdict lines. Unavailable results and pairs render as N/A.
func (r *Report) Render(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s\nSUMMARY\n%s\n\n", rule('='), rule('=')); err != nil {
		return err
	}

	fmt.Fprintf(w, "%-8s", "Case")
	for _, name := range r.Backends {
		fmt.Fprintf(w, " %-14s", name)
	}
	for _, pair := range r.pairs() {
		fmt.Fprintf(w, " %-20s", pair.String()+" diff")
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule('-'))

	for i, record := range r.Records {
		fmt.Fprintf(w, "%-8d", i+1)
		for _, name := range r.Backends {
			if res := record.Results[name]; res != nil {
				fmt.Fprintf(w, " %-14.4f", res.Probability)
			} else {
				fmt.Fprintf(w, " %-14s", "N/A")
			}
		}
		for _, pair := range r.pairs() {
			if diff, ok := record.Diffs[pair]; ok {
				fmt.Fprintf(w, " %-20.6f", diff)
			} else {
				fmt.Fprintf(w, " %-20s", "N/A")
			}
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)

	for _, v := range r.Verdicts {
		switch v.Status {
		case VerdictPass:
			fmt.Fprintf(w, "PASS: %s and %s outputs match (difference < %g over %d cases)\n", v.Pair.A, v.Pair.B, r.Tolerance, v.Cases)
		case VerdictWarning:
			fmt.Fprintf(w, "WARNING: %s and %s differ by up to %.6f\n", v.Pair.A, v.Pair.B, v.MaxDiff)
		case VerdictNoData:
			fmt.Fprintf(w, "NO DATA: %s vs %s had no case with both backends available\n", v.Pair.A, v.Pair.B)
		}
	}
	return nil
}

// pairs lists the primary-anchored pairs in backend registration order.
func (r *Report) pairs() []Pair {
	if len(r.Backends) < 2 {
		return nil
	}
	pairs := make([]Pair, 0, len(r.Backends)-1)
	for _, name := range r.Backends[1:] {
		pairs = append(pairs, Pair{A: r.Backends[0], B: name})
	}
	return pairs
}

func rule(c rune) string {
	s := make([]rune, 60)
	for i := range s {
		s[i] = c
	}
	return string(s)
}
