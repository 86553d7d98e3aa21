package entities

import (
	"strings"
	"time"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
)

// Algorithm is a line-matching strategy understood by the differencing engine.
type Algorithm string

const (
	AlgorithmMyers     Algorithm = "myers"
	AlgorithmHistogram Algorithm = "histogram"
)

// DiffResult is the outcome of one engine invocation. A non-empty Failure
// means the invocation did not produce a usable diff and Text is empty.
type DiffResult struct {
	Algorithm Algorithm
	Text      string
	Failure   string
	Elapsed   time.Duration
}

// Succeeded builds a successful result.
func Succeeded(alg Algorithm, text string) DiffResult {
	return DiffResult{Algorithm: alg, Text: text}
}

// Failed builds a failed result carrying the reason.
func Failed(alg Algorithm, reason string) DiffResult {
	if reason == "" {
		reason = "unknown failure"
	}
	return DiffResult{Algorithm: alg, Failure: reason}
}

// OK reports whether the invocation succeeded.
func (r DiffResult) OK() bool {
	return r.Failure == ""
}

// DiffStats summarizes the hunks of a unified diff.
type DiffStats struct {
	Hunks   int
	Added   int
	Deleted int
}

// Changed is the number of added plus deleted lines.
func (s DiffStats) Changed() int {
	return s.Added + s.Deleted
}

// Stats parses the diff text and counts its hunks and changed lines.
// Text that does not parse as a git diff yields zero stats.
func (r DiffResult) Stats() DiffStats {
	var stats DiffStats
	if strings.TrimSpace(r.Text) == "" {
		return stats
	}

	files, _, err := gitdiff.Parse(strings.NewReader(r.Text))
	if err != nil {
		return stats
	}

	for _, file := range files {
		for _, frag := range file.TextFragments {
			stats.Hunks++
			for _, line := range frag.Lines {
				switch line.Op {
				case gitdiff.OpAdd:
					stats.Added++
				case gitdiff.OpDelete:
					stats.Deleted++
				}
			}
		}
	}
	return stats
}
