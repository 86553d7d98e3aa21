package entities

import (
	"slices"
	"strings"
)

// Status tells whether both diff invocations behind a record succeeded.
type Status string

const (
	StatusComplete   Status = "complete"
	StatusIncomplete Status = "incomplete"
)

// Verdict is the classifier output for one pair of diffs.
type Verdict struct {
	Discrepancy bool
	Status      Status
}

// Normalize splits raw diff text into lines, trims surrounding whitespace
// and drops blank lines. Order is preserved.
func Normalize(raw string) []string {
	if raw == "" {
		return []string{}
	}
	return NormalizeLines(strings.Split(raw, "\n"))
}

// NormalizeLines applies the same canonicalization to already split lines.
func NormalizeLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// HasDiscrepancy compares two raw diffs after normalization, as ordered sequences.
func HasDiscrepancy(rawA, rawB string) bool {
	return !slices.Equal(Normalize(rawA), Normalize(rawB))
}

// Classify compares the Myers and Histogram results. The textual comparison
// is applied even when an invocation failed (its text is empty), but the
// verdict is then marked incomplete: two failures are indistinguishable from
// two identical diffs otherwise.
func Classify(myers, histogram DiffResult) Verdict {
	status := StatusComplete
	if !myers.OK() || !histogram.OK() {
		status = StatusIncomplete
	}
	return Verdict{
		Discrepancy: HasDiscrepancy(myers.Text, histogram.Text),
		Status:      status,
	}
}
