//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/diffaudit/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// RecordBuilder helps create dataset records with a fluent interface.
type RecordBuilder struct {
	*testkit.BaseBuilder
	repository  string
	filePath    string
	category    entities.Category
	discrepancy bool
	status      entities.Status
}

// NewRecordBuilder creates a new record builder: a complete, non-discrepant
// source file record.
func NewRecordBuilder() *RecordBuilder {
	return &RecordBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		repository:  "repositories/httpie",
		filePath:    "httpie/core.py",
		category:    entities.CategorySource,
		status:      entities.StatusComplete,
	}
}

// WithRepository sets the repository identifier.
func (b *RecordBuilder) WithRepository(repository string) *RecordBuilder {
	b.repository = repository
	return b
}

// WithFilePath sets the path and derives the category from it.
func (b *RecordBuilder) WithFilePath(path string) *RecordBuilder {
	b.filePath = path
	b.category = entities.Categorize(path)
	return b
}

// WithCategory forces a category regardless of the path.
func (b *RecordBuilder) WithCategory(category entities.Category) *RecordBuilder {
	b.category = category
	return b
}

// WithDiscrepancy sets the discrepancy flag.
func (b *RecordBuilder) WithDiscrepancy(discrepancy bool) *RecordBuilder {
	b.discrepancy = discrepancy
	return b
}

// WithStatus sets the record status.
func (b *RecordBuilder) WithStatus(status entities.Status) *RecordBuilder {
	b.status = status
	return b
}

// Build creates the record (satisfies testkit.Builder interface).
func (b *RecordBuilder) Build() interface{} {
	return b.BuildRecord()
}

// BuildRecord creates the record with a concrete return type.
func (b *RecordBuilder) BuildRecord() entities.Record {
	return entities.Record{
		Repository:  b.repository,
		FilePath:    b.filePath,
		Category:    b.category,
		CommitHash:  "c0ffee0000000000000000000000000000000001",
		ParentHash:  "c0ffee0000000000000000000000000000000000",
		Title:       "fix: handle empty input",
		Discrepancy: b.discrepancy,
		Status:      b.status,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *RecordBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.repository = "repositories/httpie"
	b.filePath = "httpie/core.py"
	b.category = entities.CategorySource
	b.discrepancy = false
	b.status = entities.StatusComplete
	return b
}

// Clone creates a deep copy of the RecordBuilder.
func (b *RecordBuilder) Clone() testkit.Builder {
	return &RecordBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		repository:  b.repository,
		filePath:    b.filePath,
		category:    b.category,
		discrepancy: b.discrepancy,
		status:      b.status,
	}
}
