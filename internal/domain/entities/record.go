package entities

// DefaultSnippetLength bounds the diff text kept in each record.
const DefaultSnippetLength = 500

// Record is one row of the discrepancy dataset: a single MODIFY file of a
// single commit diffed against its first parent with both algorithms.
type Record struct {
	Repository       string
	FilePath         string
	Category         Category
	CommitHash       string
	ParentHash       string
	Title            string
	MyersSnippet     string
	HistogramSnippet string
	Discrepancy      bool
	Status           Status
	MyersStats       DiffStats
	HistogramStats   DiffStats
}

// NewRecord builds the record for a candidate once both invocations finished.
func NewRecord(candidate Candidate, myers, histogram DiffResult, snippetLength int) Record {
	if snippetLength <= 0 {
		snippetLength = DefaultSnippetLength
	}

	verdict := Classify(myers, histogram)
	path := candidate.File.Path()

	return Record{
		Repository:       candidate.Repository.Identifier(),
		FilePath:         path,
		Category:         Categorize(path),
		CommitHash:       candidate.Commit.Hash,
		ParentHash:       candidate.ParentHash,
		Title:            candidate.Commit.Title(),
		MyersSnippet:     Truncate(myers.Text, snippetLength),
		HistogramSnippet: Truncate(histogram.Text, snippetLength),
		Discrepancy:      verdict.Discrepancy,
		Status:           verdict.Status,
		MyersStats:       myers.Stats(),
		HistogramStats:   histogram.Stats(),
	}
}

// Truncate keeps at most limit runes of s.
func Truncate(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}

	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}
