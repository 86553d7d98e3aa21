//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/diffaudit/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// CommitBuilder helps create test commits with a fluent interface.
type CommitBuilder struct {
	*testkit.BaseBuilder
	hash    string
	parents []string
	message string
	files   []entities.ModifiedFile
}

// NewCommitBuilder creates a new commit builder with sensible defaults:
// a single-parent commit without files.
func NewCommitBuilder() *CommitBuilder {
	return &CommitBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		hash:        "c0ffee0000000000000000000000000000000001",
		parents:     []string{"c0ffee0000000000000000000000000000000000"},
		message:     "fix: handle empty input\n\nLonger body.",
	}
}

// WithHash sets the commit hash.
func (b *CommitBuilder) WithHash(hash string) *CommitBuilder {
	b.hash = hash
	return b
}

// WithParents sets the parent hashes; none makes a root commit.
func (b *CommitBuilder) WithParents(parents ...string) *CommitBuilder {
	b.parents = parents
	return b
}

// WithMessage sets the commit message.
func (b *CommitBuilder) WithMessage(message string) *CommitBuilder {
	b.message = message
	return b
}

// WithModified adds a MODIFY entry for path.
func (b *CommitBuilder) WithModified(path string) *CommitBuilder {
	return b.WithFile(entities.ModifiedFile{OldPath: path, NewPath: path, Kind: entities.ChangeModify})
}

// WithFile adds an arbitrary file entry.
func (b *CommitBuilder) WithFile(file entities.ModifiedFile) *CommitBuilder {
	b.files = append(b.files, file)
	return b
}

// Build creates the commit (satisfies testkit.Builder interface).
func (b *CommitBuilder) Build() interface{} {
	return b.BuildCommit()
}

// BuildCommit creates the commit with a concrete return type.
func (b *CommitBuilder) BuildCommit() *entities.Commit {
	return &entities.Commit{
		Hash:    b.hash,
		Parents: append([]string(nil), b.parents...),
		Message: b.message,
		Files:   append([]entities.ModifiedFile(nil), b.files...),
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *CommitBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	fresh := NewCommitBuilder()
	b.hash = fresh.hash
	b.parents = fresh.parents
	b.message = fresh.message
	b.files = nil
	return b
}

// Clone creates a deep copy of the CommitBuilder.
func (b *CommitBuilder) Clone() testkit.Builder {
	return &CommitBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		hash:        b.hash,
		parents:     append([]string(nil), b.parents...),
		message:     b.message,
		files:       append([]entities.ModifiedFile(nil), b.files...),
	}
}
