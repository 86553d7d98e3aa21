package entities

import "strings"

// ChangeKind classifies how a file was touched by a commit.
type ChangeKind string

const (
	ChangeAdd     ChangeKind = "ADD"
	ChangeModify  ChangeKind = "MODIFY"
	ChangeDelete  ChangeKind = "DELETE"
	ChangeRename  ChangeKind = "RENAME"
	ChangeUnknown ChangeKind = "UNKNOWN"
)

// ModifiedFile describes one file entry of a commit relative to its first parent.
type ModifiedFile struct {
	OldPath string // empty for additions
	NewPath string // empty for deletions
	Kind    ChangeKind
}

// Path returns the new path, falling back to the old one for deletions.
func (f ModifiedFile) Path() string {
	if f.NewPath != "" {
		return f.NewPath
	}
	return f.OldPath
}

// Commit is a single revision as yielded by the history collaborator.
type Commit struct {
	Hash    string
	Parents []string // ordered, first parent first
	Message string
	Files   []ModifiedFile
}

// IsRoot reports whether the commit has nothing to diff against.
func (c *Commit) IsRoot() bool {
	return len(c.Parents) == 0
}

// FirstParent returns the baseline revision, or "" for root commits.
func (c *Commit) FirstParent() string {
	if c.IsRoot() {
		return ""
	}
	return c.Parents[0]
}

// Title returns the first line of the commit message.
func (c *Commit) Title() string {
	title, _, _ := strings.Cut(c.Message, "\n")
	return strings.TrimRight(title, "\r")
}

// Candidate is a (commit, parent, modified file) triple ready to be diffed.
// RepositoryIndex is the position of Repository in the configured list.
type Candidate struct {
	Repository      Repository
	RepositoryIndex int
	Commit          *Commit
	ParentHash      string
	File            ModifiedFile
}
